package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/juvenstu/real-estate-marketplace/internal/apperr"
	"github.com/juvenstu/real-estate-marketplace/internal/httpx"
	"github.com/juvenstu/real-estate-marketplace/internal/middleware"
	"github.com/juvenstu/real-estate-marketplace/internal/service"
)

type UserHandler struct {
	userService  *service.UserService
	secureCookie bool
}

func NewUserHandler(userService *service.UserService, secureCookie bool) *UserHandler {
	return &UserHandler{
		userService:  userService,
		secureCookie: secureCookie,
	}
}

// GET /api/user/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpx.Error(c, apperr.BadRequest("invalid user id"))
		return
	}

	user, err := h.userService.GetUser(id)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// POST /api/user/update/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	callerID, ok := middleware.UserID(c)
	if !ok {
		httpx.Error(c, apperr.Unauthenticated("Unauthorized"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpx.Error(c, apperr.BadRequest("invalid user id"))
		return
	}

	var req service.UpdateUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Error(c, apperr.BadRequest("Invalid request body"))
		return
	}

	user, err := h.userService.UpdateUser(callerID, id, req)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// DELETE /api/user/delete/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	callerID, ok := middleware.UserID(c)
	if !ok {
		httpx.Error(c, apperr.Unauthenticated("Unauthorized"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpx.Error(c, apperr.BadRequest("invalid user id"))
		return
	}

	if err := h.userService.DeleteUser(callerID, id); err != nil {
		httpx.Error(c, err)
		return
	}

	clearSessionCookie(c, h.secureCookie)
	c.JSON(http.StatusOK, gin.H{"message": "User has been deleted"})
}

// GET /api/user/listings/:id
func (h *UserHandler) GetUserListings(c *gin.Context) {
	callerID, ok := middleware.UserID(c)
	if !ok {
		httpx.Error(c, apperr.Unauthenticated("Unauthorized"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpx.Error(c, apperr.BadRequest("invalid user id"))
		return
	}

	listings, err := h.userService.OwnedListings(callerID, id)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, listings)
}
