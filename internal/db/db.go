package db

import (
	"log"
	"os"

	"blogium/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=blogium port=5432 sslmode=disable"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	err = DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Location{},
		&models.Post{},
		&models.Comment{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	seedCategories()
	seedLocations()
}

// Category and location lifecycle is administrator-managed; seeding
// only provides a starting set for an empty database.
func seedCategories() {
	var count int64
	DB.Model(&models.Category{}).Count(&count)
	if count > 0 {
		return
	}

	categories := []models.Category{
		{Title: "Travel", Slug: "travel", Description: "Trips, routes and places worth seeing", IsPublished: true},
		{Title: "Food", Slug: "food", Description: "Recipes, restaurants and everything edible", IsPublished: true},
		{Title: "Tech", Slug: "tech", Description: "Software, hardware and the people behind them", IsPublished: true},
		{Title: "Notes", Slug: "notes", Description: "Everything that fits nowhere else", IsPublished: true},
	}

	for _, category := range categories {
		if err := DB.Create(&category).Error; err != nil {
			log.Printf("Failed to create category %s: %v", category.Slug, err)
		}
	}
	log.Println("Initial categories created")
}

func seedLocations() {
	var count int64
	DB.Model(&models.Location{}).Count(&count)
	if count > 0 {
		return
	}

	locations := []models.Location{
		{Name: "Home", IsPublished: true},
		{Name: "On the road", IsPublished: true},
	}

	for _, location := range locations {
		if err := DB.Create(&location).Error; err != nil {
			log.Printf("Failed to create location %s: %v", location.Name, err)
		}
	}
	log.Println("Initial locations created")
}
