package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/juvenstu/real-estate-marketplace/internal/models"
)

// Connect opens the Postgres connection. The returned handle is passed
// explicitly into repositories; there is no package-level shared instance.
func Connect(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs the schema migrations for all persisted models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Listing{})
}
