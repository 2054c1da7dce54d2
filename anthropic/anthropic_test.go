package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/ratekit/provider"
)

func successBody() string {
	return `{
		"id": "msg_01",
		"model": "claude-sonnet-4-20250514",
		"content": [{"type": "text", "text": "Hello from Claude"}],
		"stop_reason": "end_turn",
		"usage": {
			"input_tokens": 42,
			"output_tokens": 17,
			"cache_creation_input_tokens": 8,
			"cache_read_input_tokens": 300
		}
	}`
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(provider.Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})
	require.NoError(t, err)
	return client, server
}

func TestNewRequiresAPIKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	_, err := New(provider.Config{})
	assert.True(t, errors.Is(err, provider.ErrAuthentication))
}

func TestNewFallsBackToEnvKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "env-key")

	client, err := New(provider.Config{})
	require.NoError(t, err)
	assert.Equal(t, "env-key", client.apiKey)
	assert.Equal(t, defaultBaseURL, client.baseURL)
}

func TestCompleteSuccess(t *testing.T) {
	var gotReq apiRequest
	var gotPath, gotKey, gotVersion string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(successBody()))
	})

	resp, err := client.Complete(context.Background(), provider.Request{
		Model:  "claude-sonnet-4-20250514",
		System: "Be brief.",
		Messages: []provider.Message{
			provider.NewTextMessage(provider.RoleUser, "Hi"),
		},
		MaxTokens:   256,
		Temperature: 0.5,
	})
	require.NoError(t, err)

	// Wire format checks.
	assert.Equal(t, "/v1/messages", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, apiVersion, gotVersion)
	assert.Equal(t, "claude-sonnet-4-20250514", gotReq.Model)
	assert.Equal(t, "Be brief.", gotReq.System, "system prompt travels outside messages")
	assert.Equal(t, 256, gotReq.MaxTokens)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)
	require.Len(t, gotReq.Messages[0].Content, 1)
	assert.Equal(t, "Hi", gotReq.Messages[0].Content[0].Text)

	// Response mapping.
	assert.Equal(t, "Hello from Claude", resp.Content)
	assert.Equal(t, "claude-sonnet-4-20250514", resp.Model)
	assert.Equal(t, "end_turn", resp.StopReason)
	assert.Equal(t, 42, resp.Usage.InputTokens)
	assert.Equal(t, 17, resp.Usage.OutputTokens)
	assert.Equal(t, 8, resp.Usage.CacheCreationInputTokens)
	assert.Equal(t, 300, resp.Usage.CacheReadInputTokens)
	assert.Equal(t, 50, resp.Usage.BillableInputTokens())
	assert.Greater(t, resp.Duration.Nanoseconds(), int64(0))
}

func TestCompleteDefaultsMaxTokens(t *testing.T) {
	var gotReq apiRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write([]byte(successBody()))
	})

	_, err := client.Complete(context.Background(), provider.Request{
		Model:    "claude-sonnet-4",
		Messages: []provider.Message{provider.NewTextMessage(provider.RoleUser, "Hi")},
	})
	require.NoError(t, err)
	assert.Equal(t, defaultMaxTokens, gotReq.MaxTokens)
}

func TestCompleteUsesConfigModel(t *testing.T) {
	var gotReq apiRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write([]byte(successBody()))
	}))
	defer server.Close()

	client, err := New(provider.Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "claude-haiku-4-5",
	})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), provider.Request{
		Messages: []provider.Message{provider.NewTextMessage(provider.RoleUser, "Hi")},
	})
	require.NoError(t, err)
	assert.Equal(t, "claude-haiku-4-5", gotReq.Model)
}

func TestCompleteValidatesRequest(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("server must not be reached for an invalid request")
	})

	// No model anywhere.
	_, err := client.Complete(context.Background(), provider.Request{
		Messages: []provider.Message{provider.NewTextMessage(provider.RoleUser, "Hi")},
	})
	assert.True(t, errors.Is(err, provider.ErrInvalidRequest))

	// No messages.
	_, err = client.Complete(context.Background(), provider.Request{Model: "claude-sonnet-4"})
	assert.True(t, errors.Is(err, provider.ErrInvalidRequest))
}

func TestCompleteStructuredContent(t *testing.T) {
	var gotReq apiRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write([]byte(successBody()))
	})

	_, err := client.Complete(context.Background(), provider.Request{
		Model: "claude-sonnet-4",
		Messages: []provider.Message{
			{
				Role: provider.RoleUser,
				ContentParts: []provider.ContentPart{
					{Type: "text", Text: "What is in this image?"},
					{Type: "image", Source: "aGVsbG8=", MediaType: "image/png"},
				},
			},
		},
	})
	require.NoError(t, err)

	require.Len(t, gotReq.Messages, 1)
	require.Len(t, gotReq.Messages[0].Content, 2)
	assert.Equal(t, "text", gotReq.Messages[0].Content[0].Type)
	assert.Equal(t, "image", gotReq.Messages[0].Content[1].Type)
	require.NotNil(t, gotReq.Messages[0].Content[1].Source)
	assert.Equal(t, "base64", gotReq.Messages[0].Content[1].Source.Type)
	assert.Equal(t, "image/png", gotReq.Messages[0].Content[1].Source.MediaType)
}

func TestCompleteStatusMapping(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		sentinel  error
		retryable bool
	}{
		{"unauthorized", http.StatusUnauthorized, provider.ErrAuthentication, false},
		{"forbidden", http.StatusForbidden, provider.ErrAuthentication, false},
		{"rate limited", http.StatusTooManyRequests, provider.ErrOverloaded, true},
		{"overloaded", 529, provider.ErrOverloaded, true},
		{"server error", http.StatusInternalServerError, provider.ErrUnavailable, true},
		{"bad request", http.StatusBadRequest, provider.ErrInvalidRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"error": {"type": "test", "message": "nope"}}`))
			})

			_, err := client.Complete(context.Background(), provider.Request{
				Model:    "claude-sonnet-4",
				Messages: []provider.Message{provider.NewTextMessage(provider.RoleUser, "Hi")},
			})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel), "expected %v in chain, got %v", tt.sentinel, err)
			assert.Equal(t, tt.retryable, provider.IsRetryable(err))
			assert.Contains(t, err.Error(), "nope")
		})
	}
}

func TestCompleteConcatenatesTextBlocks(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"model": "claude-sonnet-4",
			"content": [
				{"type": "text", "text": "part one"},
				{"type": "tool_use"},
				{"type": "text", "text": " part two"}
			],
			"usage": {"input_tokens": 1, "output_tokens": 1}
		}`))
	})

	resp, err := client.Complete(context.Background(), provider.Request{
		Model:    "claude-sonnet-4",
		Messages: []provider.Message{provider.NewTextMessage(provider.RoleUser, "Hi")},
	})
	require.NoError(t, err)
	assert.Equal(t, "part one part two", resp.Content)
}

func TestClientInterface(t *testing.T) {
	var _ provider.Client = (*Client)(nil)
}
