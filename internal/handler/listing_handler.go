package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/juvenstu/real-estate-marketplace/internal/apperr"
	"github.com/juvenstu/real-estate-marketplace/internal/httpx"
	"github.com/juvenstu/real-estate-marketplace/internal/middleware"
	"github.com/juvenstu/real-estate-marketplace/internal/models"
	"github.com/juvenstu/real-estate-marketplace/internal/query"
	"github.com/juvenstu/real-estate-marketplace/internal/service"
)

type ListingHandler struct {
	listingService *service.ListingService
}

func NewListingHandler(listingService *service.ListingService) *ListingHandler {
	return &ListingHandler{
		listingService: listingService,
	}
}

// ListingRequest is the create/update payload. Field-level validation
// happens in the service so the error messages stay in one place.
type ListingRequest struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Address       string   `json:"address"`
	ImageURLs     []string `json:"imageUrls"`
	Type          string   `json:"type"`
	Bedrooms      int      `json:"bedrooms"`
	Bathrooms     int      `json:"bathrooms"`
	RegularPrice  int      `json:"regularPrice"`
	DiscountPrice int      `json:"discountPrice"`
	Offer         bool     `json:"offer"`
	Parking       bool     `json:"parking"`
	Furnished     bool     `json:"furnished"`
	UserRef       string   `json:"userRef"`
}

func (r *ListingRequest) toModel() (*models.Listing, error) {
	listing := &models.Listing{
		Title:         r.Title,
		Description:   r.Description,
		Address:       r.Address,
		ImageURLs:     r.ImageURLs,
		Type:          models.ListingType(r.Type),
		Bedrooms:      r.Bedrooms,
		Bathrooms:     r.Bathrooms,
		RegularPrice:  r.RegularPrice,
		DiscountPrice: r.DiscountPrice,
		Offer:         r.Offer,
		Parking:       r.Parking,
		Furnished:     r.Furnished,
	}
	if r.UserRef != "" {
		userRef, err := uuid.Parse(r.UserRef)
		if err != nil {
			return nil, apperr.BadRequest("invalid userRef")
		}
		listing.UserRef = userRef
	}
	return listing, nil
}

// POST /api/listing/create
func (h *ListingHandler) CreateListing(c *gin.Context) {
	callerID, ok := middleware.UserID(c)
	if !ok {
		httpx.Error(c, apperr.Unauthenticated("Unauthorized"))
		return
	}

	var req ListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Error(c, apperr.BadRequest("Invalid request body"))
		return
	}

	listing, err := req.toModel()
	if err != nil {
		httpx.Error(c, err)
		return
	}

	created, err := h.listingService.CreateListing(callerID, listing)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GET /api/listing/get/:id
func (h *ListingHandler) GetListing(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpx.Error(c, apperr.BadRequest("invalid listing id"))
		return
	}

	listing, err := h.listingService.GetListing(id)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// GET /api/listing/get
//
// Query parameters: searchTerm, type (all|sale|rent), offer, furnished,
// parking (checkbox tri-state), limit, startIndex, sort, order.
func (h *ListingHandler) SearchListings(c *gin.Context) {
	q, err := query.Parse(c.Request.URL.Query())
	if err != nil {
		httpx.Error(c, err)
		return
	}

	listings, err := h.listingService.SearchListings(q)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, listings)
}

// PUT /api/listing/update/:id
func (h *ListingHandler) UpdateListing(c *gin.Context) {
	callerID, ok := middleware.UserID(c)
	if !ok {
		httpx.Error(c, apperr.Unauthenticated("Unauthorized"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpx.Error(c, apperr.BadRequest("invalid listing id"))
		return
	}

	var req ListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Error(c, apperr.BadRequest("Invalid request body"))
		return
	}

	in, err := req.toModel()
	if err != nil {
		httpx.Error(c, err)
		return
	}

	updated, err := h.listingService.UpdateListing(callerID, id, in)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DELETE /api/listing/delete/:id
func (h *ListingHandler) DeleteListing(c *gin.Context) {
	callerID, ok := middleware.UserID(c)
	if !ok {
		httpx.Error(c, apperr.Unauthenticated("Unauthorized"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpx.Error(c, apperr.BadRequest("invalid listing id"))
		return
	}

	if err := h.listingService.DeleteListing(callerID, id); err != nil {
		httpx.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "The listing has been deleted"})
}
