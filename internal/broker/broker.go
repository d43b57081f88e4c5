package broker

import (
	"time"

	"github.com/juvenstu/real-estate-marketplace/internal/models"
)

type EventType string

const (
	EventListingCreated EventType = "listing_created"
	EventListingUpdated EventType = "listing_updated"
	EventListingDeleted EventType = "listing_deleted"
)

// ListingEvent is broadcast on every listing mutation. Listing is nil for
// delete events.
type ListingEvent struct {
	Type      EventType       `json:"type"`
	ListingID string          `json:"listingId"`
	Listing   *models.Listing `json:"listing,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// EventBroker fans listing mutations out to live feed subscribers.
type EventBroker interface {
	Publish(event ListingEvent) error
	Subscribe() (<-chan ListingEvent, error)
	Close() error
}
