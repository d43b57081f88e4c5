package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/juvenstu/real-estate-marketplace/internal/apperr"
	"github.com/juvenstu/real-estate-marketplace/internal/broker"
	"github.com/juvenstu/real-estate-marketplace/internal/journal"
	"github.com/juvenstu/real-estate-marketplace/internal/models"
	"github.com/juvenstu/real-estate-marketplace/internal/query"
	"github.com/juvenstu/real-estate-marketplace/internal/repository"
	"github.com/juvenstu/real-estate-marketplace/internal/utils"
	"github.com/juvenstu/real-estate-marketplace/pkg/logger"
)

var ErrListingNotFound = apperr.NotFound("The requested listing could not be found.")

type ListingService struct {
	listingRepo *repository.ListingRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	journal     *journal.Journal
	events      broker.EventBroker
}

func NewListingService(
	listingRepo *repository.ListingRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
	jrnl *journal.Journal,
	events broker.EventBroker,
) *ListingService {
	return &ListingService{
		listingRepo: listingRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
		journal:     jrnl,
		events:      events,
	}
}

// CreateListing persists a new listing. The caller may only create listings
// referencing their own account.
func (s *ListingService) CreateListing(callerID uuid.UUID, listing *models.Listing) (*models.Listing, error) {
	if listing.UserRef != callerID {
		return nil, apperr.Forbidden("Creating a listing is restricted to accounts that you own.")
	}

	if err := validateListing(listing); err != nil {
		logger.Log.Warn("Listing validation failed",
			zap.String("user_id", callerID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	listing.ID = uuid.New()

	if err := s.listingRepo.CreateListing(listing); err != nil {
		logger.Log.Error("Failed to create listing",
			zap.String("user_id", callerID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	s.recordMutation(listing, journal.ActionCreated, broker.EventListingCreated)

	logger.Log.Info("Listing created",
		zap.String("listing_id", listing.ID.String()),
		zap.String("user_id", callerID.String()),
	)

	return listing, nil
}

// GetListing fetches one listing, served read-through from the cache.
func (s *ListingService) GetListing(id uuid.UUID) (*models.Listing, error) {
	ctx := context.Background()
	key := cacheKey(id)

	var cached models.Listing
	found, err := utils.GetCache(ctx, s.cache, key, &cached)
	if err != nil {
		// A cache failure degrades to a database read.
		logger.Log.Warn("Listing cache read failed",
			zap.String("listing_id", id.String()),
			zap.Error(err),
		)
	} else if found {
		return &cached, nil
	}

	listing, err := s.listingRepo.GetListingByID(id)
	if err != nil {
		logger.Log.Error("Failed to fetch listing",
			zap.String("listing_id", id.String()),
			zap.Error(err),
		)
		return nil, err
	}
	if listing == nil {
		return nil, ErrListingNotFound
	}

	if err := utils.SetCache(ctx, s.cache, key, listing, s.cacheTTL); err != nil {
		logger.Log.Warn("Listing cache write failed",
			zap.String("listing_id", id.String()),
			zap.Error(err),
		)
	}

	return listing, nil
}

// SearchListings executes a validated search query.
func (s *ListingService) SearchListings(q *query.ListingQuery) ([]models.Listing, error) {
	listings, err := s.listingRepo.Search(q)
	if err != nil {
		logger.Log.Error("Listing search failed", zap.Error(err))
		return nil, err
	}
	if listings == nil {
		listings = []models.Listing{}
	}
	return listings, nil
}

// UpdateListing replaces the mutable fields of a listing the caller owns.
func (s *ListingService) UpdateListing(callerID, id uuid.UUID, in *models.Listing) (*models.Listing, error) {
	listing, err := s.listingRepo.GetListingByID(id)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, ErrListingNotFound
	}
	if listing.UserRef != callerID {
		return nil, apperr.Forbidden("Modification of a listing is restricted to the owner only.")
	}

	listing.Title = in.Title
	listing.Description = in.Description
	listing.Address = in.Address
	listing.ImageURLs = in.ImageURLs
	listing.Type = in.Type
	listing.Bedrooms = in.Bedrooms
	listing.Bathrooms = in.Bathrooms
	listing.RegularPrice = in.RegularPrice
	listing.DiscountPrice = in.DiscountPrice
	listing.Offer = in.Offer
	listing.Parking = in.Parking
	listing.Furnished = in.Furnished

	if err := validateListing(listing); err != nil {
		return nil, err
	}

	if err := s.listingRepo.UpdateListing(listing); err != nil {
		logger.Log.Error("Failed to update listing",
			zap.String("listing_id", id.String()),
			zap.Error(err),
		)
		return nil, err
	}

	s.invalidate(id)
	s.recordMutation(listing, journal.ActionUpdated, broker.EventListingUpdated)

	logger.Log.Info("Listing updated",
		zap.String("listing_id", id.String()),
		zap.String("user_id", callerID.String()),
	)

	return listing, nil
}

// DeleteListing permanently removes a listing the caller owns.
func (s *ListingService) DeleteListing(callerID, id uuid.UUID) error {
	listing, err := s.listingRepo.GetListingByID(id)
	if err != nil {
		return err
	}
	if listing == nil {
		return ErrListingNotFound
	}
	if listing.UserRef != callerID {
		return apperr.Forbidden("Deletion of a listing is restricted to the owner only.")
	}

	if err := s.listingRepo.DeleteListing(id); err != nil {
		logger.Log.Error("Failed to delete listing",
			zap.String("listing_id", id.String()),
			zap.Error(err),
		)
		return err
	}

	s.invalidate(id)

	deleted := &models.Listing{ID: id, UserRef: listing.UserRef}
	s.recordMutation(deleted, journal.ActionDeleted, broker.EventListingDeleted)

	logger.Log.Info("Listing deleted",
		zap.String("listing_id", id.String()),
		zap.String("user_id", callerID.String()),
	)

	return nil
}

// recordMutation appends the mutation to the audit journal and broadcasts
// it to live feed subscribers. Neither failure aborts the mutation itself.
func (s *ListingService) recordMutation(listing *models.Listing, action journal.Action, eventType broker.EventType) {
	entry := journal.Entry{
		ListingID: listing.ID.String(),
		UserID:    listing.UserRef.String(),
		Action:    action,
		Timestamp: time.Now(),
	}
	if err := s.journal.Append(entry); err != nil {
		logger.Log.Error("Failed to journal listing mutation",
			zap.String("listing_id", listing.ID.String()),
			zap.Error(err),
		)
	}

	event := broker.ListingEvent{
		Type:      eventType,
		ListingID: listing.ID.String(),
		Timestamp: entry.Timestamp,
	}
	if eventType != broker.EventListingDeleted {
		event.Listing = listing
	}
	if err := s.events.Publish(event); err != nil {
		logger.Log.Error("Failed to publish listing event",
			zap.String("listing_id", listing.ID.String()),
			zap.Error(err),
		)
	}
}

func (s *ListingService) invalidate(id uuid.UUID) {
	if err := utils.DeleteCache(context.Background(), s.cache, cacheKey(id)); err != nil {
		logger.Log.Warn("Listing cache invalidation failed",
			zap.String("listing_id", id.String()),
			zap.Error(err),
		)
	}
}

func cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("listing:%s", id)
}

func validateListing(l *models.Listing) error {
	if l.Title == "" {
		return apperr.BadRequest("title is required")
	}
	if len(l.Title) > 62 {
		return apperr.BadRequest("title must be at most 62 characters")
	}
	if len(l.ImageURLs) < 1 || len(l.ImageURLs) > 6 {
		return apperr.BadRequest("a listing needs between 1 and 6 images")
	}
	if l.Type != models.ListingSale && l.Type != models.ListingRent {
		return apperr.BadRequest("type must be either sale or rent")
	}
	if l.Bedrooms < 1 {
		return apperr.BadRequest("bedrooms must be at least 1")
	}
	if l.Bathrooms < 1 {
		return apperr.BadRequest("bathrooms must be at least 1")
	}
	if l.RegularPrice < 50 {
		return apperr.BadRequest("regular price must be at least 50")
	}
	if l.Offer {
		if l.DiscountPrice < 0 {
			return apperr.BadRequest("discount price cannot be negative")
		}
		if l.DiscountPrice >= l.RegularPrice {
			return apperr.BadRequest("discount price must be lower than regular price")
		}
	}
	return nil
}
