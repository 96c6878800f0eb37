package agent

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromReader(t *testing.T) {
	t.Setenv(envAPIKey, "override-key")
	t.Setenv(envTimeout, "45s")

	data := `
base_url: "https://example.com"
api_key: "${CLINICODE_AGENT_API_KEY}"
model: "gpt-4o-mini"
timeout: "30s"
log_level: "debug"
`

	cfg, err := LoadConfigFromReader(strings.NewReader(data))
	require.NoError(t, err)

	require.Equal(t, "https://example.com", cfg.BaseURL)
	require.Equal(t, "override-key", cfg.APIKey)
	require.Equal(t, "gpt-4o-mini", cfg.Model)
	require.Equal(t, 45*time.Second, cfg.Timeout)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigDefaults(t *testing.T) {
	data := `
api_key: "key"
model: "gpt-4o-mini"
`
	cfg, err := LoadConfigFromReader(strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, defaultBaseURL, cfg.BaseURL)
	require.Equal(t, defaultTimeout, cfg.Timeout)
}

func TestLoadConfigRejectsMissingKey(t *testing.T) {
	_, err := LoadConfigFromReader(strings.NewReader(`model: "gpt-4o-mini"`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "api_key")
}

func TestClientComplete(t *testing.T) {
	var (
		mu        sync.Mutex
		lastBody  []byte
		lastPath  string
		callCount int
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		callCount++
		lastPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		lastBody = body

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id":"chatcmpl-1",
			"object":"chat.completion",
			"created":1730366400,
			"model":"gpt-4o-mini",
			"choices":[
				{
					"index":0,
					"finish_reason":"stop",
					"logprobs":null,
					"message":{
						"role":"assistant",
						"content":"[{\"code\":\"I10\"}]",
						"tool_calls":[]
					}
				}
			],
			"usage":{
				"prompt_tokens":10,
				"completion_tokens":12,
				"total_tokens":22
			}
		}`))
	}))
	defer server.Close()

	cfg := &Config{
		BaseURL:  server.URL,
		APIKey:   "test-key",
		Model:    "gpt-4o-mini",
		Timeout:  5 * time.Second,
		LogLevel: "error",
	}

	client, err := NewClient(cfg, WithHTTPClient(server.Client()))
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	resp, err := client.Complete(ctx, &CompletionRequest{
		Messages: []Message{
			{Role: "system", Content: "You extract diagnostic codes."},
			{Role: "user", Content: "HTA"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, `[{"code":"I10"}]`, resp.Content)
	require.Equal(t, 22, resp.Usage.TotalTokens)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, 1, callCount)
	require.Equal(t, "/chat/completions", lastPath)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(lastBody, &sent))
	require.Equal(t, "gpt-4o-mini", sent["model"])
	msgs, ok := sent["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
}

func TestClientCompleteServerErrorIsTerminal(t *testing.T) {
	var callCount int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount++
		http.Error(w, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := &Config{
		BaseURL:  server.URL,
		APIKey:   "test-key",
		Model:    "gpt-4o-mini",
		Timeout:  2 * time.Second,
		LogLevel: "error",
	}
	client, err := NewClient(cfg, WithHTTPClient(server.Client()))
	require.NoError(t, err)
	defer client.Close()

	_, err = client.Complete(context.Background(), &CompletionRequest{
		Messages: []Message{{Role: "user", Content: "note"}},
	})
	require.Error(t, err)
	// Single attempt: no SDK-level retries.
	require.Equal(t, 1, callCount)
}

func TestClientCompleteValidation(t *testing.T) {
	cfg := &Config{
		BaseURL:  "https://example.com",
		APIKey:   "test-key",
		Model:    "gpt-4o-mini",
		Timeout:  time.Second,
		LogLevel: "error",
	}
	client, err := NewClient(cfg)
	require.NoError(t, err)
	defer client.Close()

	_, err = client.Complete(context.Background(), nil)
	require.Error(t, err)

	_, err = client.Complete(context.Background(), &CompletionRequest{})
	require.Error(t, err)
}
