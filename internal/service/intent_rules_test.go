package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/forkcast/backend/internal/types"
)

func intPtr(i int) *int {
	return &i
}

func TestNormalizeIntent(t *testing.T) {
	t.Run("breakfast query sets recipe type", func(t *testing.T) {
		intent := NormalizeIntent(types.Intent{Query: "quick Breakfast with eggs"})
		assert.Equal(t, "breakfast", intent.RecipeType)
	})

	t.Run("breakfast does not override an existing recipe type", func(t *testing.T) {
		intent := NormalizeIntent(types.Intent{Query: "breakfast bowl", RecipeType: "brunch"})
		assert.Equal(t, "brunch", intent.RecipeType)
	})

	t.Run("extracted time limit gets the buffer", func(t *testing.T) {
		intent := NormalizeIntent(types.Intent{Query: "fast dinner", MaxTimeMinutes: intPtr(20)})
		require.NotNil(t, intent.MaxTimeMinutes)
		assert.Equal(t, 25, *intent.MaxTimeMinutes)
	})

	t.Run("under N in the query sets a buffered limit", func(t *testing.T) {
		intent := NormalizeIntent(types.Intent{Query: "something under 10 minutes"})
		require.NotNil(t, intent.MaxTimeMinutes)
		assert.Equal(t, 15, *intent.MaxTimeMinutes)
	})

	t.Run("no time hints leaves the limit unset", func(t *testing.T) {
		intent := NormalizeIntent(types.Intent{Query: "hearty stew"})
		assert.Nil(t, intent.MaxTimeMinutes)
	})

	t.Run("healthy never synthesizes a calorie ceiling", func(t *testing.T) {
		intent := NormalizeIntent(types.Intent{Query: "healthy lunch ideas"})
		assert.Nil(t, intent.MaxCalories)
	})

	t.Run("explicit calorie limit survives a healthy query", func(t *testing.T) {
		intent := NormalizeIntent(types.Intent{Query: "healthy lunch", MaxCalories: intPtr(600)})
		require.NotNil(t, intent.MaxCalories)
		assert.Equal(t, 600, *intent.MaxCalories)
	})

	t.Run("untouched fields pass through", func(t *testing.T) {
		in := types.Intent{
			Query:        "vegan pasta",
			Diet:         "vegan",
			Cuisine:      "italian",
			Intolerances: []string{"gluten"},
		}
		out := NormalizeIntent(in)
		assert.Equal(t, in.Diet, out.Diet)
		assert.Equal(t, in.Cuisine, out.Cuisine)
		assert.Equal(t, in.Intolerances, out.Intolerances)
	})

	t.Run("input intent is not mutated", func(t *testing.T) {
		in := types.Intent{Query: "dinner under 30", MaxTimeMinutes: intPtr(20)}
		_ = NormalizeIntent(in)
		assert.Equal(t, 20, *in.MaxTimeMinutes)
	})
}
