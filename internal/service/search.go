package service

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/forkcast/backend/internal/models"
	"github.com/pageza/forkcast/backend/internal/types"
)

// defaultResultLimit is the per-attempt result cap requested from the
// provider.
const defaultResultLimit = 15

// Relaxable constraint names, in the order they are dropped. Diet, cuisine,
// intolerances and price are harder preferences and are never relaxed.
const (
	relaxMaxTime     = "max_time_minutes"
	relaxMaxCalories = "max_calories"
)

var wordPattern = regexp.MustCompile(`[a-zA-Z]+`)

// SearchService orchestrates the search pipeline: intent extraction and
// normalization, relaxed retrieval, record normalization, dedup and ranking.
type SearchService struct {
	retriever   RecipeRetriever
	extractor   IntentExtractor
	costs       CostModel
	db          *gorm.DB
	resultLimit int
}

// NewSearchService creates a SearchService. db may be nil; search logging is
// then skipped.
func NewSearchService(retriever RecipeRetriever, extractor IntentExtractor, costs CostModel, db *gorm.DB) *SearchService {
	return &SearchService{
		retriever:   retriever,
		extractor:   extractor,
		costs:       costs,
		db:          db,
		resultLimit: defaultResultLimit,
	}
}

// Search runs the full pipeline for one free-text request. The only hard
// failure is a retrieval error; extraction failures degrade to a query-only
// intent and an empty result set is a normal terminal state.
func (s *SearchService) Search(ctx context.Context, query string) (*types.SearchResponse, error) {
	parsed := s.extractor.ExtractIntent(ctx, query)
	if parsed.Fallback {
		log.Printf("intent extraction fell back to query-only intent for %q", query)
	}

	// Normalized exactly once per request; the time buffer is additive and
	// must not be applied twice.
	intent := NormalizeIntent(parsed.Intent)

	raw, relaxed, err := s.retrieveWithRelaxation(ctx, intent)
	if err != nil {
		return nil, fmt.Errorf("recipe retrieval failed: %w", err)
	}

	// The intent as used for the final provider call: relaxed constraints
	// removed. This is also the ranker's constraint context, so a filter the
	// pipeline gave up on is not reintroduced as a penalty.
	finalIntent := intent
	for _, name := range relaxed {
		switch name {
		case relaxMaxTime:
			finalIntent.MaxTimeMinutes = nil
		case relaxMaxCalories:
			finalIntent.MaxCalories = nil
		}
	}

	normalized := make([]types.Recipe, 0, len(raw))
	for _, record := range raw {
		normalized = append(normalized, NormalizeRecipe(record, s.costs))
	}
	unique := DedupRecipes(normalized)

	ranked := RankRecipes(unique, queryTerms(intent.Query), RankConstraints{
		MaxTimeMinutes: finalIntent.MaxTimeMinutes,
	})

	response := &types.SearchResponse{
		Recipes:           ranked,
		Message:           searchMessage(len(ranked), relaxed),
		ParsedIntent:      finalIntent,
		RelaxationApplied: relaxed,
	}

	s.logSearch(query, response)
	return response, nil
}

// retrieveWithRelaxation issues the provider call with the full filter set,
// then retries with max_time_minutes and then max_calories removed as long
// as attempts come back empty. It stops after those two steps regardless of
// outcome. Transport errors are returned as-is, never treated as an empty
// result.
func (s *SearchService) retrieveWithRelaxation(ctx context.Context, intent types.Intent) ([]types.RawRecipe, []string, error) {
	filters := SearchFilters{
		Query:          intent.Query,
		Diet:           intent.Diet,
		Cuisine:        intent.Cuisine,
		Intolerances:   intent.Intolerances,
		MaxCalories:    intent.MaxCalories,
		MaxPrice:       intent.MaxPrice,
		MaxTimeMinutes: intent.MaxTimeMinutes,
		RecipeType:     intent.RecipeType,
		Limit:          s.resultLimit,
	}

	relaxed := []string{}
	records, err := s.retriever.Search(ctx, filters)
	if err != nil {
		return nil, nil, err
	}

	if len(records) == 0 && filters.MaxTimeMinutes != nil {
		filters.MaxTimeMinutes = nil
		relaxed = append(relaxed, relaxMaxTime)
		log.Printf("no results, relaxing %s", relaxMaxTime)

		records, err = s.retriever.Search(ctx, filters)
		if err != nil {
			return nil, nil, err
		}
	}

	if len(records) == 0 && filters.MaxCalories != nil {
		filters.MaxCalories = nil
		relaxed = append(relaxed, relaxMaxCalories)
		log.Printf("no results, relaxing %s", relaxMaxCalories)

		records, err = s.retriever.Search(ctx, filters)
		if err != nil {
			return nil, nil, err
		}
	}

	return records, relaxed, nil
}

func searchMessage(resultCount int, relaxed []string) string {
	switch {
	case resultCount == 0:
		return "No recipes found"
	case len(relaxed) > 0:
		return fmt.Sprintf("Recipes found after broadening your search (removed: %s)", strings.Join(relaxed, ", "))
	default:
		return "Recipes fetched successfully"
	}
}

// queryTerms tokenizes the query into lowercase words, skipping short filler
// tokens.
func queryTerms(query string) []string {
	words := wordPattern.FindAllString(strings.ToLower(query), -1)
	terms := make([]string, 0, len(words))
	for _, word := range words {
		if len(word) > 2 {
			terms = append(terms, word)
		}
	}
	return terms
}

// logSearch records the request for later analysis. Failures are logged and
// ignored; logging never affects the response.
func (s *SearchService) logSearch(query string, response *types.SearchResponse) {
	if s.db == nil {
		return
	}
	entry := models.SearchLog{
		ID:                uuid.New(),
		Query:             query,
		ResultCount:       len(response.Recipes),
		RelaxationApplied: models.JSONBStringArray(response.RelaxationApplied),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("failed to record search log: %v", err)
	}
}
