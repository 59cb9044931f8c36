package service

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/pageza/forkcast/backend/internal/types"
)

const (
	// defaultMaxReadyTime is the time ceiling used when the request carries
	// none.
	defaultMaxReadyTime = 30
	// topRecipes caps the ranked output length.
	topRecipes = 5
)

// RankConstraints is the constraint context for scoring. It is built from
// the final intent, after relaxation, so a constraint the pipeline gave up
// on is never reintroduced as a penalty.
type RankConstraints struct {
	MaxTimeMinutes *int
}

// RankRecipes scores each recipe against the query terms and constraints,
// sorts by score descending and truncates to the top results. Every term is
// soft: a poor fit lowers the score but never rejects the recipe. Input must
// already be deduplicated; ties keep their input order (the sort is stable),
// which is what makes repeated runs deterministic.
func RankRecipes(recipes []types.Recipe, queryTerms []string, constraints RankConstraints) []types.ScoredRecipe {
	querySet := make(map[string]struct{}, len(queryTerms))
	for _, term := range queryTerms {
		querySet[strings.ToLower(term)] = struct{}{}
	}

	maxTime := defaultMaxReadyTime
	if constraints.MaxTimeMinutes != nil {
		maxTime = *constraints.MaxTimeMinutes
	}

	scored := make([]types.ScoredRecipe, 0, len(recipes))
	for _, recipe := range recipes {
		score, reasons := scoreRecipe(recipe, querySet, maxTime)
		scored = append(scored, types.ScoredRecipe{
			Recipe:     recipe,
			MatchScore: math.Round(score*100) / 100,
			Reasons:    reasons,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].MatchScore > scored[j].MatchScore
	})

	if len(scored) > topRecipes {
		scored = scored[:topRecipes]
	}
	return scored
}

func scoreRecipe(recipe types.Recipe, querySet map[string]struct{}, maxTime int) (float64, []string) {
	var score float64
	var reasons []string

	// Time: bonus within the ceiling, capped penalty past it, flat penalty
	// when unknown.
	switch {
	case recipe.ReadyInMinutes == nil:
		score -= 2
		reasons = append(reasons, "Preparation time unknown")
	case *recipe.ReadyInMinutes <= maxTime:
		score += 8
		reasons = append(reasons, fmt.Sprintf("Ready in %d minutes", *recipe.ReadyInMinutes))
	default:
		overshoot := float64(*recipe.ReadyInMinutes-maxTime) / 5
		score -= math.Min(overshoot, 5)
		reasons = append(reasons, fmt.Sprintf("Ready in %d minutes", *recipe.ReadyInMinutes))
	}

	// Simplicity: short ingredient lists win.
	ingredientCount := len(recipe.Ingredients)
	score += math.Max(0, float64(6-ingredientCount))
	if ingredientCount <= 6 {
		reasons = append(reasons, fmt.Sprintf("Only %d ingredients", ingredientCount))
	}

	// Protein, capped so a single macro cannot dominate.
	if recipe.ProteinScore != nil && *recipe.ProteinScore > 0 {
		score += math.Min(*recipe.ProteinScore*0.15, 5)
		reasons = append(reasons, "High protein")
	}

	// Query match: fraction of query terms present in the ingredient list.
	if len(querySet) > 0 {
		matched := 0
		for _, ingredient := range recipe.Ingredients {
			if _, ok := querySet[ingredient]; ok {
				matched++
			}
		}
		score += float64(matched) / float64(len(querySet)) * 5
		if matched > 0 {
			reasons = append(reasons, fmt.Sprintf("Uses %d of your ingredients", matched))
		}
	}

	// Cost: cheaper recipes get a small boost, no reason text.
	if recipe.EstimatedCost > 0 {
		score += math.Max(0, 4-float64(recipe.EstimatedCost)/150)
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "Well balanced and practical")
	}
	return score, reasons
}
