package service

import (
	"math"
	"sort"
	"strings"

	"github.com/pageza/forkcast/backend/internal/types"
)

// noInstructions is the placeholder emitted when a record carries no usable
// instructions in either format.
const noInstructions = "No instructions provided."

// CostModel estimates recipe cost from ingredient names. Prices are keyed by
// lowercase ingredient name in KES; DefaultPrice covers anything not in the
// table. The model is deliberately rough.
type CostModel struct {
	Prices       map[string]int
	DefaultPrice int
}

// DefaultCostModel returns the built-in price table.
func DefaultCostModel() CostModel {
	return CostModel{
		Prices: map[string]int{
			"chicken": 400,
			"rice":    200,
			"egg":     30,
			"onion":   20,
			"tomato":  20,
			"garlic":  10,
			"beans":   150,
			"potato":  30,
			"beef":    500,
			"fish":    450,
		},
		DefaultPrice: 50,
	}
}

// RecipeCost sums per-ingredient prices over an already-normalized
// ingredient list.
func (m CostModel) RecipeCost(ingredients []string) int {
	total := 0
	for _, ingredient := range ingredients {
		if price, ok := m.Prices[strings.ToLower(ingredient)]; ok {
			total += price
		} else {
			total += m.DefaultPrice
		}
	}
	return total
}

// NormalizeRecipe maps a raw provider record into the stable internal shape.
// It is total: missing fields degrade to defaults, never to errors.
func NormalizeRecipe(raw types.RawRecipe, costs CostModel) types.Recipe {
	ingredients := normalizeIngredients(raw.ExtendedIngredients)
	instructions := normalizeInstructions(raw)

	title := raw.Title
	if title == "" {
		title = "Untitled Recipe"
	}

	estimatedCost := costs.RecipeCost(ingredients)
	proteinScore := proteinFromNutrition(raw.Nutrition)

	var proteinPerCost *float64
	if proteinScore != nil && estimatedCost > 0 {
		ratio := math.Round(*proteinScore/float64(estimatedCost)*10000) / 10000
		proteinPerCost = &ratio
	}

	return types.Recipe{
		ID:             raw.ID,
		Title:          title,
		Ingredients:    ingredients,
		Instructions:   instructions,
		ReadyInMinutes: raw.ReadyInMinutes,
		SourceURL:      raw.SourceURL,
		Image:          raw.Image,
		EstimatedCost:  estimatedCost,
		ProteinScore:   proteinScore,
		ProteinPerCost: proteinPerCost,
		Popularity:     raw.AggregateLikes,
	}
}

// normalizeIngredients lowercases, trims and deduplicates ingredient names.
// Sorted output is a presentation contract, not a ranking signal.
func normalizeIngredients(raw []types.RawIngredient) []string {
	set := make(map[string]struct{})
	for _, ingredient := range raw {
		name := strings.ToLower(strings.TrimSpace(ingredient.Name))
		if name != "" {
			set[name] = struct{}{}
		}
	}

	ingredients := make([]string, 0, len(set))
	for name := range set {
		ingredients = append(ingredients, name)
	}
	sort.Strings(ingredients)
	return ingredients
}

// normalizeInstructions prefers the step-structured list, falls back to
// splitting the flat instructions string on periods, and finally to a single
// placeholder sentence.
func normalizeInstructions(raw types.RawRecipe) []string {
	var instructions []string

	for _, block := range raw.AnalyzedInstructions {
		for _, step := range block.Steps {
			text := strings.TrimSpace(step.Step)
			if text != "" {
				instructions = append(instructions, text)
			}
		}
	}

	if len(instructions) == 0 && raw.Instructions != "" {
		for _, segment := range strings.Split(raw.Instructions, ".") {
			segment = strings.TrimSpace(segment)
			if segment != "" {
				instructions = append(instructions, segment)
			}
		}
	}

	if len(instructions) == 0 {
		instructions = []string{noInstructions}
	}
	return instructions
}

// proteinFromNutrition finds the protein entry in the nutrition payload, if
// any.
func proteinFromNutrition(nutrition *types.RawNutrition) *float64 {
	if nutrition == nil {
		return nil
	}
	for _, nutrient := range nutrition.Nutrients {
		if strings.EqualFold(nutrient.Name, "protein") {
			amount := nutrient.Amount
			return &amount
		}
	}
	return nil
}
