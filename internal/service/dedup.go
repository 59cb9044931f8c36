package service

import (
	"strings"

	"github.com/pageza/forkcast/backend/internal/types"
)

// DedupRecipes drops records that are the same underlying recipe, preserving
// the original relative order. A record is a duplicate if its provider ID was
// already seen, or if its lowercase title+source_url pair was. Records
// without an ID still participate via the composite key, which catches
// title/URL variants the provider assigns distinct IDs to.
func DedupRecipes(recipes []types.Recipe) []types.Recipe {
	seenIDs := make(map[int]struct{})
	seenKeys := make(map[string]struct{})

	unique := make([]types.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		key := strings.ToLower(strings.TrimSpace(recipe.Title)) + "|" + strings.ToLower(recipe.SourceURL)

		if recipe.ID != nil {
			if _, dup := seenIDs[*recipe.ID]; dup {
				continue
			}
		}
		if _, dup := seenKeys[key]; dup {
			continue
		}

		if recipe.ID != nil {
			seenIDs[*recipe.ID] = struct{}{}
		}
		seenKeys[key] = struct{}{}
		unique = append(unique, recipe)
	}
	return unique
}
