package types

// Intent is the structured form of a user's recipe request. Every filter
// field is an advisory hint forwarded to the retrieval provider; nothing in
// this service validates them against a fixed vocabulary.
type Intent struct {
	Query          string   `json:"query"`
	Diet           string   `json:"diet,omitempty"`
	Cuisine        string   `json:"cuisine,omitempty"`
	Intolerances   []string `json:"intolerances,omitempty"`
	MaxCalories    *int     `json:"max_calories,omitempty"`
	MaxPrice       *float64 `json:"max_price,omitempty"`
	MaxTimeMinutes *int     `json:"max_time_minutes,omitempty"`
	RecipeType     string   `json:"recipe_type,omitempty"`
}
