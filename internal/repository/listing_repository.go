package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/juvenstu/real-estate-marketplace/internal/models"
	"github.com/juvenstu/real-estate-marketplace/internal/query"
)

type ListingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

func (r *ListingRepository) CreateListing(listing *models.Listing) error {
	return r.db.Create(listing).Error
}

func (r *ListingRepository) GetListingByID(id uuid.UUID) (*models.Listing, error) {
	var listing models.Listing
	err := r.db.Where("id = ?", id).First(&listing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &listing, nil
}

// GetListingsByUserRef returns every listing owned by the given user,
// newest first.
func (r *ListingRepository) GetListingsByUserRef(userRef uuid.UUID) ([]models.Listing, error) {
	var listings []models.Listing
	err := r.db.
		Where("user_ref = ?", userRef).
		Order("created_at DESC").
		Find(&listings).Error
	return listings, err
}

// Search executes a validated listing query and returns the matching page.
func (r *ListingRepository) Search(q *query.ListingQuery) ([]models.Listing, error) {
	var listings []models.Listing
	err := r.db.Scopes(q.Scope()).Find(&listings).Error
	return listings, err
}

// UpdateListing persists the already-merged listing record.
func (r *ListingRepository) UpdateListing(listing *models.Listing) error {
	return r.db.Save(listing).Error
}

// DeleteListing removes the listing permanently; there is no soft delete.
func (r *ListingRepository) DeleteListing(id uuid.UUID) error {
	return r.db.Delete(&models.Listing{}, "id = ?", id).Error
}
