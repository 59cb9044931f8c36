package service

import (
	"context"

	"github.com/pageza/forkcast/backend/internal/types"
)

// SearchFilters is the filter set passed to the retrieval provider for one
// attempt. The relaxation controller rebuilds it between attempts.
type SearchFilters struct {
	Query          string
	Diet           string
	Cuisine        string
	Intolerances   []string
	MaxCalories    *int
	MaxPrice       *float64
	MaxTimeMinutes *int
	RecipeType     string
	Limit          int
}

// RecipeRetriever is the retrieval capability consumed by the search
// pipeline. Implementations are treated as black boxes; provider-side
// ranking is never inspected.
type RecipeRetriever interface {
	Search(ctx context.Context, filters SearchFilters) ([]types.RawRecipe, error)
}

// ParsedIntent is the two-variant result of intent extraction. Fallback is
// true when extraction failed and the intent carries only the raw query.
type ParsedIntent struct {
	Intent   types.Intent
	Fallback bool
}

// IntentExtractor turns free text into a structured intent. Extraction
// failures are absorbed into a fallback ParsedIntent, never returned as
// errors.
type IntentExtractor interface {
	ExtractIntent(ctx context.Context, query string) ParsedIntent
}
