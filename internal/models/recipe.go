package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// SavedRecipe is a normalized recipe persisted after a search, so results
// can be re-served without another provider round trip.
type SavedRecipe struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	ProviderID     *int             `gorm:"index" json:"provider_id"`
	Title          string           `gorm:"size:255;not null" json:"title"`
	Ingredients    JSONBStringArray `gorm:"type:jsonb" json:"ingredients"`
	Instructions   JSONBStringArray `gorm:"type:jsonb" json:"instructions"`
	ReadyInMinutes *int             `json:"ready_in_minutes"`
	SourceURL      string           `gorm:"size:512" json:"source_url"`
	Image          string           `gorm:"size:512" json:"image"`
	EstimatedCost  int              `json:"estimated_cost"`
	ProteinScore   *float64         `json:"protein_score"`
	ProteinPerCost *float64         `json:"protein_per_cost"`
	Popularity     int              `json:"popularity"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	DeletedAt      gorm.DeletedAt   `gorm:"index" json:"-"`
}

func (SavedRecipe) TableName() string {
	return "saved_recipes"
}
