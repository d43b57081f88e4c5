package models

import (
	"time"

	"github.com/google/uuid"
)

type ListingType string

const (
	ListingSale ListingType = "sale"
	ListingRent ListingType = "rent"
)

// Listing is a property offered for sale or rent. UserRef points at the
// owning account but is intentionally not a database-level foreign key:
// deleting a user leaves their listings behind, referencing a vanished id.
type Listing struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string      `gorm:"type:varchar(62);not null" json:"title"`
	Description   string      `gorm:"type:text" json:"description"`
	Address       string      `gorm:"type:varchar(255)" json:"address"`
	ImageURLs     []string    `gorm:"serializer:json" json:"imageUrls"`
	Type          ListingType `gorm:"type:varchar(10);not null;index" json:"type"`
	Bedrooms      int         `gorm:"not null" json:"bedrooms"`
	Bathrooms     int         `gorm:"not null" json:"bathrooms"`
	RegularPrice  int         `gorm:"not null" json:"regularPrice"`
	DiscountPrice int         `json:"discountPrice"` // meaningful only when Offer is true
	Offer         bool        `gorm:"index" json:"offer"`
	Parking       bool        `json:"parking"`
	Furnished     bool        `json:"furnished"`
	UserRef       uuid.UUID   `gorm:"type:uuid;index" json:"userRef"`
	CreatedAt     time.Time   `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}
