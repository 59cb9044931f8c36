package types

// SearchRequest is the body of POST /api/v1/recipes/search.
type SearchRequest struct {
	Query string `json:"query" binding:"required"`
}

// SearchResponse is the pipeline output contract. RelaxationApplied lists the
// constraint names dropped during retrieval retries, in the order they were
// dropped; it is empty when the first attempt returned records. ParsedIntent
// is the intent as used for the final (possibly relaxed) provider query.
type SearchResponse struct {
	Recipes           []ScoredRecipe `json:"recipes"`
	Message           string         `json:"message"`
	ParsedIntent      Intent         `json:"parsed_intent"`
	RelaxationApplied []string       `json:"relaxation_applied"`
}
