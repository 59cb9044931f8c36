package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/forkcast/backend/internal/models"
	"github.com/pageza/forkcast/backend/internal/types"
)

// RecipeStore handles persistence of normalized recipes and the ingredient
// price table.
type RecipeStore struct {
	db *gorm.DB
}

// NewRecipeStore creates a new RecipeStore instance.
func NewRecipeStore(db *gorm.DB) *RecipeStore {
	return &RecipeStore{db: db}
}

// SaveResults persists ranked results so they can be re-served without
// another provider round trip. Records already stored under the same
// provider ID are skipped.
func (s *RecipeStore) SaveResults(ctx context.Context, recipes []types.ScoredRecipe) error {
	for _, recipe := range recipes {
		if recipe.ID != nil {
			var count int64
			if err := s.db.WithContext(ctx).Model(&models.SavedRecipe{}).
				Where("provider_id = ?", *recipe.ID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
		}

		saved := models.SavedRecipe{
			ID:             uuid.New(),
			ProviderID:     recipe.ID,
			Title:          recipe.Title,
			Ingredients:    models.JSONBStringArray(recipe.Ingredients),
			Instructions:   models.JSONBStringArray(recipe.Instructions),
			ReadyInMinutes: recipe.ReadyInMinutes,
			SourceURL:      recipe.SourceURL,
			Image:          recipe.Image,
			EstimatedCost:  recipe.EstimatedCost,
			ProteinScore:   recipe.ProteinScore,
			ProteinPerCost: recipe.ProteinPerCost,
			Popularity:     recipe.Popularity,
		}
		if err := s.db.WithContext(ctx).Create(&saved).Error; err != nil {
			return err
		}
	}
	return nil
}

// ListRecipes lists saved recipes, newest first.
func (s *RecipeStore) ListRecipes(ctx context.Context) ([]models.SavedRecipe, error) {
	var recipes []models.SavedRecipe
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetRecipe retrieves a saved recipe by ID.
func (s *RecipeStore) GetRecipe(ctx context.Context, id uuid.UUID) (*models.SavedRecipe, error) {
	var recipe models.SavedRecipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// LoadCostModel builds a CostModel from the ingredient price table, falling
// back to the built-in table when the database has no rows yet.
func (s *RecipeStore) LoadCostModel(ctx context.Context) (CostModel, error) {
	var prices []models.IngredientPrice
	if err := s.db.WithContext(ctx).Find(&prices).Error; err != nil {
		return CostModel{}, err
	}
	if len(prices) == 0 {
		return DefaultCostModel(), nil
	}

	model := CostModel{
		Prices:       make(map[string]int, len(prices)),
		DefaultPrice: DefaultCostModel().DefaultPrice,
	}
	for _, price := range prices {
		model.Prices[strings.ToLower(price.Name)] = price.UnitPrice
	}
	return model, nil
}
