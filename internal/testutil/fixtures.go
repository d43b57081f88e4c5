package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/juvenstu/real-estate-marketplace/internal/models"
	"github.com/juvenstu/real-estate-marketplace/internal/utils"
)

// CreateTestUser creates a user with a hashed password.
func CreateTestUser(username, email, password string) (*models.User, error) {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		Avatar:       models.DefaultAvatarURL,
	}, nil
}

// DefaultTestUser returns a default test user.
func DefaultTestUser() (*models.User, error) {
	return CreateTestUser("testuser", "test@example.com", "Test123456")
}

// CreateTestListing builds a valid listing owned by userRef. Callers tweak
// individual fields afterwards.
func CreateTestListing(userRef uuid.UUID, title string, listingType models.ListingType) *models.Listing {
	return &models.Listing{
		ID:           uuid.New(),
		Title:        title,
		Description:  "A lovely place",
		Address:      "1 Main Street",
		ImageURLs:    []string{"https://images.example.com/1.jpg"},
		Type:         listingType,
		Bedrooms:     2,
		Bathrooms:    1,
		RegularPrice: 1200,
		UserRef:      userRef,
	}
}

// SeedSearchDataset inserts a fixed ten-listing dataset with staggered
// creation times, spanning both types and all checkbox combinations. Used
// by the search and pagination tests.
func SeedSearchDataset(t *testing.T, db *gorm.DB, userRef uuid.UUID) []models.Listing {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	rows := []struct {
		title     string
		typ       models.ListingType
		offer     bool
		furnished bool
		parking   bool
		price     int
	}{
		{"Downtown loft", models.ListingRent, true, true, false, 1500},
		{"Suburban family home", models.ListingSale, false, false, true, 250000},
		{"Beach house", models.ListingSale, true, true, true, 480000},
		{"Compact studio", models.ListingRent, false, true, false, 800},
		{"Country cottage", models.ListingSale, false, false, false, 175000},
		{"City apartment", models.ListingRent, true, false, true, 1900},
		{"Penthouse suite", models.ListingRent, false, true, true, 4200},
		{"Garden bungalow", models.ListingSale, true, false, false, 210000},
		{"Riverside duplex", models.ListingRent, false, false, true, 1300},
		{"Mountain cabin", models.ListingSale, false, true, false, 98000},
	}

	listings := make([]models.Listing, 0, len(rows))
	for i, row := range rows {
		l := CreateTestListing(userRef, row.title, row.typ)
		l.Offer = row.offer
		l.Furnished = row.furnished
		l.Parking = row.parking
		l.RegularPrice = row.price
		if row.offer {
			l.DiscountPrice = row.price - 50
		}
		l.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		l.UpdatedAt = l.CreatedAt

		if err := db.Create(l).Error; err != nil {
			t.Fatalf("Failed to seed listing %q: %v", row.title, err)
		}
		listings = append(listings, *l)
	}

	return listings
}
