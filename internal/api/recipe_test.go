package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/forkcast/backend/internal/models"
	"github.com/pageza/forkcast/backend/internal/service"
	"github.com/pageza/forkcast/backend/internal/testdb"
	"github.com/pageza/forkcast/backend/internal/types"
)

func recipeRouter(t *testing.T, store *service.RecipeStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	NewRecipeHandler(store).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func seedRecipe(t *testing.T, store *service.RecipeStore, providerID int, title string) models.SavedRecipe {
	t.Helper()
	err := store.SaveResults(context.Background(), []types.ScoredRecipe{{
		Recipe: types.Recipe{
			ID:          &providerID,
			Title:       title,
			Ingredients: []string{"egg"},
		},
	}})
	require.NoError(t, err)

	recipes, err := store.ListRecipes(context.Background())
	require.NoError(t, err)
	for _, r := range recipes {
		if r.Title == title {
			return r
		}
	}
	t.Fatalf("seeded recipe %q not found", title)
	return models.SavedRecipe{}
}

func TestRecipeHandler_ListRecipes(t *testing.T) {
	store := service.NewRecipeStore(testdb.New(t))
	seedRecipe(t, store, 1, "Egg Fried Rice")
	seedRecipe(t, store, 2, "Pilau")
	router := recipeRouter(t, store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Recipes []models.SavedRecipe `json:"recipes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Recipes, 2)
}

func TestRecipeHandler_GetRecipe(t *testing.T) {
	store := service.NewRecipeStore(testdb.New(t))
	saved := seedRecipe(t, store, 1, "Egg Fried Rice")
	router := recipeRouter(t, store)

	t.Run("returns a saved recipe by ID", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/recipes/"+saved.ID.String(), nil))
		require.Equal(t, http.StatusOK, w.Code)

		var recipe models.SavedRecipe
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recipe))
		assert.Equal(t, "Egg Fried Rice", recipe.Title)
	})

	t.Run("unknown ID is a 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/recipes/"+uuid.NewString(), nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed ID is a 400", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/recipes/not-a-uuid", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
