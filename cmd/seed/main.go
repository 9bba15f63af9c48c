package main

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"foodshare/internal/config"
	"foodshare/internal/db"
	"foodshare/internal/model"
	"foodshare/internal/repository"
)

// fixtures are pre-geocoded so seeding never needs the geocoding provider.
var fixtures = []model.Food{
	{
		Name:        "Hotel Taj Kitchen",
		Quantity:    40,
		Description: "Leftover lunch buffet: rice, dal, mixed vegetables and rotis.",
		Phone:       "(212) 555-0147",
		Email:       "kitchen@tajhotel.example",
		Location: model.Location{
			Latitude:         40.748441,
			Longitude:        -73.985664,
			FormattedAddress: "350 5th Ave, New York, NY, 10118, US",
			Street:           "350 5th Ave",
			City:             "New York",
			State:            "NY",
			Zipcode:          "10118",
			Country:          "US",
		},
	},
	{
		Name:        "Green Leaf Cafe",
		Quantity:    12,
		Description: "Unsold sandwiches and salads, packed and refrigerated.",
		Phone:       "(212) 555-0199",
		Location: model.Location{
			Latitude:         40.741061,
			Longitude:        -73.989699,
			FormattedAddress: "200 5th Ave, New York, NY, 10010, US",
			Street:           "200 5th Ave",
			City:             "New York",
			State:            "NY",
			Zipcode:          "10010",
			Country:          "US",
		},
	},
	{
		Name:        "Sunrise Banquet Hall",
		Quantity:    80,
		Description: "Surplus wedding catering: biryani, curries and desserts.",
		Phone:       "(718) 555-0123",
		Email:       "events@sunrisebanquet.example",
		Location: model.Location{
			Latitude:         40.678178,
			Longitude:        -73.944158,
			FormattedAddress: "1000 Dean St, Brooklyn, NY, 11238, US",
			Street:           "1000 Dean St",
			City:             "Brooklyn",
			State:            "NY",
			Zipcode:          "11238",
			Country:          "US",
		},
	},
}

func main() {
	log.Println("Starting seed script...")

	_ = godotenv.Load()
	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.Food{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	foodRepo := repository.NewFoodRepository(gormDB)
	ctx := context.Background()

	log.Println("Seeding listings into database...")
	seeded, updated, err := seedFoods(ctx, foodRepo, fixtures)
	if err != nil {
		log.Fatalf("Failed to seed listings: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New listings created: %d", seeded)
	log.Printf("  - Existing listings updated: %d", updated)
	log.Printf("  - Total listings processed: %d", seeded+updated)
}

// seedFoods upserts the fixture listings, keyed by their unique name.
func seedFoods(ctx context.Context, repo repository.FoodRepository, foods []model.Food) (seeded int, updated int, err error) {
	for _, food := range foods {
		existing, err := repo.FindByName(ctx, food.Name)
		if err != nil && err != gorm.ErrRecordNotFound {
			return seeded, updated, fmt.Errorf("error checking listing %q: %w", food.Name, err)
		}

		if existing != nil {
			existing.Quantity = food.Quantity
			existing.Description = food.Description
			existing.Phone = food.Phone
			existing.Email = food.Email
			existing.Location = food.Location
			if err := repo.Update(ctx, existing); err != nil {
				return seeded, updated, fmt.Errorf("error updating listing %q: %w", food.Name, err)
			}
			updated++
		} else {
			food.ID = uuid.New()
			food.Slug = slug.Make(food.Name)
			food.Photo = model.DefaultPhoto
			if err := repo.Create(ctx, &food); err != nil {
				return seeded, updated, fmt.Errorf("error creating listing %q: %w", food.Name, err)
			}
			seeded++
		}
	}

	return seeded, updated, nil
}
