package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/forkcast/backend/internal/types"
)

const intentCacheTTL = time.Hour

var jsonObjectPattern = regexp.MustCompile(`\{[\s\S]*\}`)

const intentSystemPrompt = `You extract structured search intent from recipe requests.
Return JSON ONLY with these fields (omit any you cannot infer):
{"query": "", "diet": "", "cuisine": "", "intolerances": [], "max_calories": 0, "max_price": 0, "max_time_minutes": 0, "recipe_type": ""}
Do not invent constraints the user did not state. In particular, "healthy" is not a calorie limit.`

// IntentService extracts structured intents via the DeepSeek API, with a
// Redis cache in front. It implements IntentExtractor: extraction failures
// degrade to a query-only fallback intent, never to an error.
type IntentService struct {
	apiKey string
	apiURL string
	client *http.Client
	redis  *redis.Client
}

// NewIntentService creates an IntentService from DEEPSEEK_API_KEY (or
// DEEPSEEK_API_KEY_FILE) and DEEPSEEK_API_URL. redisClient may be nil to
// disable caching.
func NewIntentService(redisClient *redis.Client) (*IntentService, error) {
	apiKey := os.Getenv("DEEPSEEK_API_KEY")
	if apiKey == "" {
		apiKeyFile := os.Getenv("DEEPSEEK_API_KEY_FILE")
		if apiKeyFile == "" {
			return nil, fmt.Errorf("DEEPSEEK_API_KEY or DEEPSEEK_API_KEY_FILE must be set")
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

	apiURL := os.Getenv("DEEPSEEK_API_URL")
	if apiURL == "" {
		apiURL = "https://api.deepseek.com/v1/chat/completions"
	}

	return &IntentService{
		apiKey: apiKey,
		apiURL: apiURL,
		client: &http.Client{Timeout: 30 * time.Second},
		redis:  redisClient,
	}, nil
}

// Message represents a message in the chat.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is a request to the DeepSeek API.
type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
	Temperature    float64           `json:"temperature"`
}

// chatResponse is the subset of the DeepSeek response we read.
type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// ExtractIntent parses free text into an Intent. On any failure (transport,
// malformed completion, missing API response) it returns a fallback intent
// whose only populated field is the raw query, so the pipeline proceeds
// unchanged.
func (s *IntentService) ExtractIntent(ctx context.Context, query string) ParsedIntent {
	if cached, ok := s.cachedIntent(ctx, query); ok {
		return ParsedIntent{Intent: cached}
	}

	intent, err := s.callExtractor(ctx, query)
	if err != nil {
		log.Printf("intent extraction failed, using query-only fallback: %v", err)
		return ParsedIntent{
			Intent:   types.Intent{Query: query},
			Fallback: true,
		}
	}

	// The extractor sometimes drops the query field; the pipeline needs it.
	if intent.Query == "" {
		intent.Query = query
	}

	s.cacheIntent(ctx, query, intent)
	return ParsedIntent{Intent: intent}
}

func (s *IntentService) callExtractor(ctx context.Context, query string) (types.Intent, error) {
	reqBody := chatRequest{
		Model: "deepseek-chat",
		Messages: []Message{
			{Role: "system", Content: intentSystemPrompt},
			{Role: "user", Content: query},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
		Temperature:    0.0,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return types.Intent{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return types.Intent{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return types.Intent{}, fmt.Errorf("extraction request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return types.Intent{}, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return types.Intent{}, fmt.Errorf("extractor returned status %d: %s", resp.StatusCode, string(body))
	}

	var completion chatResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return types.Intent{}, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return types.Intent{}, fmt.Errorf("extractor returned no choices")
	}

	return parseIntentJSON(completion.Choices[0].Message.Content)
}

// parseIntentJSON pulls the first JSON object out of the completion text and
// decodes it. Models occasionally wrap the object in prose or code fences.
func parseIntentJSON(content string) (types.Intent, error) {
	match := jsonObjectPattern.FindString(content)
	if match == "" {
		return types.Intent{}, fmt.Errorf("no JSON object in completion")
	}

	var intent types.Intent
	if err := json.Unmarshal([]byte(match), &intent); err != nil {
		return types.Intent{}, fmt.Errorf("failed to unmarshal intent: %w", err)
	}
	return intent, nil
}

func intentCacheKey(query string) string {
	return fmt.Sprintf("intent:%x", sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(query)))))
}

func (s *IntentService) cachedIntent(ctx context.Context, query string) (types.Intent, bool) {
	if s.redis == nil {
		return types.Intent{}, false
	}

	data, err := s.redis.Get(ctx, intentCacheKey(query)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("intent cache read failed: %v", err)
		}
		return types.Intent{}, false
	}

	var intent types.Intent
	if err := json.Unmarshal(data, &intent); err != nil {
		return types.Intent{}, false
	}
	return intent, true
}

func (s *IntentService) cacheIntent(ctx context.Context, query string, intent types.Intent) {
	if s.redis == nil {
		return
	}

	data, err := json.Marshal(intent)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, intentCacheKey(query), data, intentCacheTTL).Err(); err != nil {
		log.Printf("intent cache write failed: %v", err)
	}
}
