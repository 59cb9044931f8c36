package database

import (
	"gorm.io/gorm"

	"github.com/pageza/forkcast/backend/internal/models"
)

// RunMigrations brings the schema up to date for all persisted models.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.SavedRecipe{},
		&models.IngredientPrice{},
		&models.SearchLog{},
	)
}
