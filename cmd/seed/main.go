package main

import (
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/juvenstu/real-estate-marketplace/internal/config"
	"github.com/juvenstu/real-estate-marketplace/internal/database"
	"github.com/juvenstu/real-estate-marketplace/internal/models"
	"github.com/juvenstu/real-estate-marketplace/internal/utils"
)

// Seeds a demo owner account plus a spread of listings covering both types
// and every checkbox combination, for local development.
func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect database:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migration failed:", err)
	}

	demoEmail := os.Getenv("DEMO_EMAIL")
	demoPassword := os.Getenv("DEMO_PASSWORD")
	if demoEmail == "" || demoPassword == "" {
		log.Fatal("Missing environment variables: DEMO_EMAIL, DEMO_PASSWORD")
	}

	var owner models.User
	result := db.Where("email = ?", demoEmail).First(&owner)
	if result.Error == nil {
		log.Println("Demo owner already exists:", owner.Username)
		return
	}

	passwordHash, err := utils.HashPassword(demoPassword)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	owner = models.User{
		ID:           uuid.New(),
		Username:     "demo-owner",
		Email:        demoEmail,
		PasswordHash: passwordHash,
		Avatar:       models.DefaultAvatarURL,
	}
	if err := db.Create(&owner).Error; err != nil {
		log.Fatal("Failed to create demo owner:", err)
	}

	listings := []models.Listing{
		{Title: "Downtown loft", Type: models.ListingRent, Offer: true, Furnished: true, RegularPrice: 1500, DiscountPrice: 1350},
		{Title: "Suburban family home", Type: models.ListingSale, Parking: true, RegularPrice: 250000},
		{Title: "Beach house", Type: models.ListingSale, Offer: true, Furnished: true, Parking: true, RegularPrice: 480000, DiscountPrice: 455000},
		{Title: "Compact studio", Type: models.ListingRent, Furnished: true, RegularPrice: 800},
		{Title: "Country cottage", Type: models.ListingSale, RegularPrice: 175000},
		{Title: "City apartment", Type: models.ListingRent, Offer: true, Parking: true, RegularPrice: 1900, DiscountPrice: 1700},
		{Title: "Penthouse suite", Type: models.ListingRent, Furnished: true, Parking: true, RegularPrice: 4200},
		{Title: "Garden bungalow", Type: models.ListingSale, Offer: true, RegularPrice: 210000, DiscountPrice: 195000},
		{Title: "Riverside duplex", Type: models.ListingRent, Parking: true, RegularPrice: 1300},
		{Title: "Mountain cabin", Type: models.ListingSale, Furnished: true, RegularPrice: 98000},
	}

	for i := range listings {
		l := &listings[i]
		l.ID = uuid.New()
		l.UserRef = owner.ID
		l.Description = "Seeded demo listing"
		l.Address = "1 Demo Street"
		l.ImageURLs = []string{"https://images.example.com/demo.jpg"}
		l.Bedrooms = 2
		l.Bathrooms = 1

		if err := db.Create(l).Error; err != nil {
			log.Fatal("Failed to seed listing:", err)
		}
	}

	log.Println("Seeded demo owner and", len(listings), "listings")
	log.Println("   Email:", owner.Email)
}
