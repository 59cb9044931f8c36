package models

import (
	"time"

	"github.com/google/uuid"
)

// IngredientPrice is one row of the cost table: average unit price in KES
// for an ingredient. Names are stored lowercase.
type IngredientPrice struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	UnitPrice int       `gorm:"not null" json:"unit_price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (IngredientPrice) TableName() string {
	return "ingredient_prices"
}
