package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pageza/forkcast/backend/internal/types"
)

// retrievalTimeout bounds each provider attempt. Exceeding it is a retrieval
// failure, not an empty result.
const retrievalTimeout = 10 * time.Second

// SpoonacularClient implements RecipeRetriever against the Spoonacular
// complexSearch endpoint.
type SpoonacularClient struct {
	apiKey string
	apiURL string
	client *http.Client
}

// NewSpoonacularClient creates a client from SPOONACULAR_API_KEY (or
// SPOONACULAR_API_KEY_FILE) and SPOONACULAR_API_URL.
func NewSpoonacularClient() (*SpoonacularClient, error) {
	apiKey := os.Getenv("SPOONACULAR_API_KEY")
	if apiKey == "" {
		apiKeyFile := os.Getenv("SPOONACULAR_API_KEY_FILE")
		if apiKeyFile == "" {
			return nil, fmt.Errorf("SPOONACULAR_API_KEY or SPOONACULAR_API_KEY_FILE must be set")
		}

		apiKeyBytes, err := os.ReadFile(apiKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read API key file: %w", err)
		}

		apiKey = strings.TrimSpace(string(apiKeyBytes))
		if apiKey == "" {
			return nil, fmt.Errorf("API key file is empty")
		}
	}

	apiURL := os.Getenv("SPOONACULAR_API_URL")
	if apiURL == "" {
		apiURL = "https://api.spoonacular.com/recipes/complexSearch"
	}

	return &SpoonacularClient{
		apiKey: apiKey,
		apiURL: apiURL,
		client: &http.Client{Timeout: retrievalTimeout},
	}, nil
}

// searchResults is the envelope around complexSearch results.
type searchResults struct {
	Results []types.RawRecipe `json:"results"`
}

// Search issues one complexSearch call with the given filter set. All filter
// fields are forwarded as-is; the provider owns retrieval ranking.
func (c *SpoonacularClient) Search(ctx context.Context, filters SearchFilters) ([]types.RawRecipe, error) {
	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("query", filters.Query)
	params.Set("addRecipeInformation", "true")
	params.Set("fillIngredients", "true")
	params.Set("number", strconv.Itoa(filters.Limit))
	params.Set("sort", "popularity")

	if filters.Diet != "" {
		params.Set("diet", filters.Diet)
	}
	if filters.Cuisine != "" {
		params.Set("cuisine", filters.Cuisine)
	}
	if len(filters.Intolerances) > 0 {
		params.Set("intolerances", strings.Join(filters.Intolerances, ","))
	}
	if filters.MaxCalories != nil {
		params.Set("maxCalories", strconv.Itoa(*filters.MaxCalories))
	}
	if filters.MaxPrice != nil {
		// Spoonacular prices are per serving, in cents.
		params.Set("maxPricePerServing", strconv.Itoa(int(*filters.MaxPrice*100)))
	}
	if filters.MaxTimeMinutes != nil {
		params.Set("maxReadyTime", strconv.Itoa(*filters.MaxTimeMinutes))
	}
	if filters.RecipeType != "" {
		params.Set("type", filters.RecipeType)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("spoonacular request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spoonacular returned status %d", resp.StatusCode)
	}

	var results searchResults
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode spoonacular response: %w", err)
	}

	return results.Results, nil
}
