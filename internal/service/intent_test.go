package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIntentService(t *testing.T, serverURL string) *IntentService {
	t.Helper()
	t.Setenv("DEEPSEEK_API_KEY", "test-api-key")
	t.Setenv("DEEPSEEK_API_URL", serverURL)

	svc, err := NewIntentService(nil)
	require.NoError(t, err)
	return svc
}

func completionBody(content string) string {
	resp := map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	}
	data, _ := json.Marshal(resp)
	return string(data)
}

func TestNewIntentService(t *testing.T) {
	t.Run("should fail without API key", func(t *testing.T) {
		t.Setenv("DEEPSEEK_API_KEY", "")
		t.Setenv("DEEPSEEK_API_KEY_FILE", "")

		svc, err := NewIntentService(nil)
		assert.Error(t, err)
		assert.Nil(t, svc)
	})

	t.Run("should read API key from file", func(t *testing.T) {
		keyFile := filepath.Join(t.TempDir(), "deepseek_key")
		require.NoError(t, os.WriteFile(keyFile, []byte("file-key\n"), 0o600))
		t.Setenv("DEEPSEEK_API_KEY", "")
		t.Setenv("DEEPSEEK_API_KEY_FILE", keyFile)

		svc, err := NewIntentService(nil)
		require.NoError(t, err)
		assert.Equal(t, "file-key", svc.apiKey)
	})

	t.Run("should fail on empty API key file", func(t *testing.T) {
		keyFile := filepath.Join(t.TempDir(), "deepseek_key")
		require.NoError(t, os.WriteFile(keyFile, []byte("  \n"), 0o600))
		t.Setenv("DEEPSEEK_API_KEY", "")
		t.Setenv("DEEPSEEK_API_KEY_FILE", keyFile)

		_, err := NewIntentService(nil)
		assert.Error(t, err)
	})
}

func TestIntentService_ExtractIntent(t *testing.T) {
	ctx := context.Background()

	t.Run("parses a clean completion", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))
			w.Write([]byte(completionBody(`{"query":"vegan lunch","diet":"vegan","max_time_minutes":20}`)))
		}))
		defer server.Close()

		svc := newTestIntentService(t, server.URL)
		parsed := svc.ExtractIntent(ctx, "quick vegan lunch")

		assert.False(t, parsed.Fallback)
		assert.Equal(t, "vegan lunch", parsed.Intent.Query)
		assert.Equal(t, "vegan", parsed.Intent.Diet)
		require.NotNil(t, parsed.Intent.MaxTimeMinutes)
		assert.Equal(t, 20, *parsed.Intent.MaxTimeMinutes)
	})

	t.Run("fills the query when the completion drops it", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(completionBody(`{"diet":"keto"}`)))
		}))
		defer server.Close()

		svc := newTestIntentService(t, server.URL)
		parsed := svc.ExtractIntent(ctx, "keto dinner ideas")

		assert.False(t, parsed.Fallback)
		assert.Equal(t, "keto dinner ideas", parsed.Intent.Query)
		assert.Equal(t, "keto", parsed.Intent.Diet)
	})

	t.Run("falls back to a query-only intent on server errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		svc := newTestIntentService(t, server.URL)
		parsed := svc.ExtractIntent(ctx, "cheap dinner")

		assert.True(t, parsed.Fallback)
		assert.Equal(t, "cheap dinner", parsed.Intent.Query)
		assert.Empty(t, parsed.Intent.Diet)
		assert.Nil(t, parsed.Intent.MaxTimeMinutes)
	})

	t.Run("falls back on a completion with no JSON", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(completionBody("I could not parse that request.")))
		}))
		defer server.Close()

		svc := newTestIntentService(t, server.URL)
		parsed := svc.ExtractIntent(ctx, "something odd")

		assert.True(t, parsed.Fallback)
		assert.Equal(t, "something odd", parsed.Intent.Query)
	})
}

func TestParseIntentJSON(t *testing.T) {
	t.Run("strips code fences and prose", func(t *testing.T) {
		content := "Here you go:\n```json\n{\"query\": \"ugali\", \"cuisine\": \"african\"}\n```\nEnjoy!"
		intent, err := parseIntentJSON(content)
		require.NoError(t, err)
		assert.Equal(t, "ugali", intent.Query)
		assert.Equal(t, "african", intent.Cuisine)
	})

	t.Run("rejects content without an object", func(t *testing.T) {
		_, err := parseIntentJSON("no json here")
		assert.Error(t, err)
	})

	t.Run("rejects malformed objects", func(t *testing.T) {
		_, err := parseIntentJSON(`{"query": `)
		assert.Error(t, err)
	})
}

func TestIntentCacheKey(t *testing.T) {
	assert.Equal(t, intentCacheKey("Vegan Lunch"), intentCacheKey("  vegan lunch "))
	assert.NotEqual(t, intentCacheKey("vegan lunch"), intentCacheKey("vegan dinner"))
}
