package models

import (
	"time"

	"github.com/google/uuid"
)

// SearchLog records one search request: the raw query, how many results were
// returned and which constraints had to be relaxed to get them.
type SearchLog struct {
	ID                uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Query             string           `gorm:"type:text;not null" json:"query"`
	ResultCount       int              `json:"result_count"`
	RelaxationApplied JSONBStringArray `gorm:"type:jsonb" json:"relaxation_applied"`
	CreatedAt         time.Time        `json:"created_at"`
}

func (SearchLog) TableName() string {
	return "search_logs"
}
