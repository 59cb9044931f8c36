package types

// RawRecipe is the provider payload from a Spoonacular complexSearch call.
// Only the fields the normalizer reads are declared; everything is optional.
type RawRecipe struct {
	ID                   *int                  `json:"id"`
	Title                string                `json:"title"`
	ExtendedIngredients  []RawIngredient       `json:"extendedIngredients"`
	AnalyzedInstructions []RawInstructionBlock `json:"analyzedInstructions"`
	Instructions         string                `json:"instructions"`
	ReadyInMinutes       *int                  `json:"readyInMinutes"`
	SourceURL            string                `json:"sourceUrl"`
	Image                string                `json:"image"`
	Nutrition            *RawNutrition         `json:"nutrition"`
	AggregateLikes       int                   `json:"aggregateLikes"`
}

// RawIngredient is a single entry of a provider ingredient list.
type RawIngredient struct {
	Name string `json:"name"`
}

// RawInstructionBlock is one block of step-structured instructions.
type RawInstructionBlock struct {
	Steps []RawInstructionStep `json:"steps"`
}

// RawInstructionStep is a single instruction step.
type RawInstructionStep struct {
	Step string `json:"step"`
}

// RawNutrition is the provider nutrition payload.
type RawNutrition struct {
	Nutrients []RawNutrient `json:"nutrients"`
}

// RawNutrient is a single nutrition fact entry.
type RawNutrient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// Recipe is the stable internal recipe shape produced by the normalizer.
// Ingredients are lowercase, deduplicated and sorted; Instructions are never
// empty. EstimatedCost, ProteinScore and ProteinPerCost are derived fields.
type Recipe struct {
	ID             *int     `json:"id"`
	Title          string   `json:"title"`
	Ingredients    []string `json:"ingredients"`
	Instructions   []string `json:"instructions"`
	ReadyInMinutes *int     `json:"ready_in_minutes"`
	SourceURL      string   `json:"source_url,omitempty"`
	Image          string   `json:"image,omitempty"`
	EstimatedCost  int      `json:"estimated_cost"`
	ProteinScore   *float64 `json:"protein_score"`
	ProteinPerCost *float64 `json:"protein_per_cost"`
	Popularity     int      `json:"popularity"`
}

// ScoredRecipe is a Recipe with its match score and the human-readable
// reasons behind it. Reasons is never empty.
type ScoredRecipe struct {
	Recipe
	MatchScore float64  `json:"match_score"`
	Reasons    []string `json:"reasons"`
}
