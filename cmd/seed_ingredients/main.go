package main

import (
	"log"

	"github.com/google/uuid"

	"github.com/pageza/forkcast/backend/config"
	"github.com/pageza/forkcast/backend/internal/database"
	"github.com/pageza/forkcast/backend/internal/models"
	"github.com/pageza/forkcast/backend/internal/service"
)

// Seeds the ingredient price table with the built-in cost model. Safe to run
// repeatedly; existing rows are left untouched.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewGorm(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	costs := service.DefaultCostModel()
	seeded := 0
	for name, price := range costs.Prices {
		var count int64
		if err := db.Model(&models.IngredientPrice{}).Where("name = ?", name).Count(&count).Error; err != nil {
			log.Fatalf("Failed to check ingredient %q: %v", name, err)
		}
		if count > 0 {
			continue
		}

		row := models.IngredientPrice{
			ID:        uuid.New(),
			Name:      name,
			UnitPrice: price,
		}
		if err := db.Create(&row).Error; err != nil {
			log.Fatalf("Failed to seed ingredient %q: %v", name, err)
		}
		seeded++
	}

	log.Printf("Seeded %d ingredient prices (%d already present)", seeded, len(costs.Prices)-seeded)
}
