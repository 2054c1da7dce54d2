// Package anthropic implements the provider contract over the Anthropic
// Messages HTTP API.
//
// The Anthropic API differs from OpenAI-style APIs in a few ways that
// matter here: authentication uses the x-api-key header rather than a
// Bearer token, the system prompt travels outside the messages array, and
// the usage block reports prompt-cache activity
// (cache_creation_input_tokens / cache_read_input_tokens) that the
// admission layer's billable-input rule depends on.
//
// # Usage
//
//	client, err := anthropic.New(provider.Config{
//	    APIKey: os.Getenv("ANTHROPIC_API_KEY"),
//	})
//
// Or via the registry after a blank import of ratekit/providers:
//
//	client, err := provider.New("anthropic", provider.FromEnv())
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/randalmurphal/ratekit/provider"
)

const (
	// Name is the provider registry key.
	Name = "anthropic"

	defaultBaseURL = "https://api.anthropic.com"
	defaultTimeout = 60 * time.Second

	// apiVersion is the pinned Anthropic API version header value.
	apiVersion = "2023-06-01"

	// defaultMaxTokens applies when a request carries no output ceiling;
	// the API rejects requests without max_tokens.
	defaultMaxTokens = 1024
)

// Client calls the Anthropic Messages API. It implements provider.Client
// and is safe for concurrent use.
type Client struct {
	cfg        provider.Config
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// New creates an Anthropic client from the given configuration.
// Falls back to the ANTHROPIC_API_KEY environment variable when
// cfg.APIKey is empty.
func New(cfg provider.Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: no API key in config or ANTHROPIC_API_KEY", provider.ErrAuthentication)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &Client{
		cfg:        cfg,
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Provider returns the registry name.
func (c *Client) Provider() string { return Name }

// Close releases client resources. The underlying http.Client needs no
// explicit teardown, so this is a no-op.
func (c *Client) Close() error { return nil }

// Wire types for the Messages API.

type apiMessage struct {
	Role    string            `json:"role"`
	Content []apiContentBlock `json:"content"`
}

type apiContentBlock struct {
	Type   string          `json:"type"`
	Text   string          `json:"text,omitempty"`
	Source *apiImageSource `json:"source,omitempty"`
}

type apiImageSource struct {
	Type      string `json:"type"` // "base64" or "url"
	MediaType string `json:"media_type,omitempty"`
	Data      string `json:"data,omitempty"`
	URL       string `json:"url,omitempty"`
}

type apiRequest struct {
	Model       string       `json:"model"`
	Messages    []apiMessage `json:"messages"`
	System      string       `json:"system,omitempty"`
	MaxTokens   int          `json:"max_tokens"`
	Temperature float64      `json:"temperature,omitempty"`
	TopP        float64      `json:"top_p,omitempty"`
	StopSeqs    []string     `json:"stop_sequences,omitempty"`
}

type apiUsage struct {
	InputTokens              int `json:"input_tokens"`
	OutputTokens             int `json:"output_tokens"`
	CacheCreationInputTokens int `json:"cache_creation_input_tokens"`
	CacheReadInputTokens     int `json:"cache_read_input_tokens"`
}

type apiResponse struct {
	ID         string            `json:"id"`
	Model      string            `json:"model"`
	Content    []apiContentBlock `json:"content"`
	StopReason string            `json:"stop_reason"`
	Usage      apiUsage          `json:"usage"`
}

type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends one Messages API call and returns the response with its
// usage counters.
func (c *Client) Complete(ctx context.Context, req provider.Request) (*provider.Response, error) {
	body, err := c.buildRequest(req)
	if err != nil {
		return nil, provider.NewError(Name, "complete", err, false)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, provider.NewError(Name, "complete", err, false)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return nil, provider.NewError(Name, "complete", err, false)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", apiVersion)

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, provider.NewError(Name, "complete", provider.ErrTimeout, true)
		}
		return nil, provider.NewError(Name, "complete", err, true)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, provider.NewError(Name, "complete", err, true)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, c.statusError(httpResp.StatusCode, data)
	}

	var ar apiResponse
	if err := json.Unmarshal(data, &ar); err != nil {
		return nil, provider.NewError(Name, "complete", fmt.Errorf("decode response: %w", err), false)
	}

	var text strings.Builder
	for _, block := range ar.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	return &provider.Response{
		Content:    text.String(),
		Model:      ar.Model,
		StopReason: ar.StopReason,
		Usage: provider.TokenUsage{
			InputTokens:              ar.Usage.InputTokens,
			OutputTokens:             ar.Usage.OutputTokens,
			CacheCreationInputTokens: ar.Usage.CacheCreationInputTokens,
			CacheReadInputTokens:     ar.Usage.CacheReadInputTokens,
		},
		Duration: time.Since(start),
	}, nil
}

// buildRequest converts the provider-agnostic request to the wire format.
func (c *Client) buildRequest(req provider.Request) (*apiRequest, error) {
	model := req.Model
	if model == "" {
		model = c.cfg.Model
	}
	if model == "" {
		return nil, fmt.Errorf("%w: no model in request or config", provider.ErrInvalidRequest)
	}
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("%w: at least one message required", provider.ErrInvalidRequest)
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	messages := make([]apiMessage, 0, len(req.Messages))
	for _, msg := range req.Messages {
		messages = append(messages, apiMessage{
			Role:    string(msg.Role),
			Content: contentBlocks(msg),
		})
	}

	out := &apiRequest{
		Model:       model,
		Messages:    messages,
		System:      req.System,
		MaxTokens:   maxTokens,
		Temperature: req.Temperature,
	}

	// Passthrough options the Messages API understands directly.
	if v, ok := req.Options["top_p"].(float64); ok {
		out.TopP = v
	}
	if v, ok := req.Options["stop_sequences"].([]string); ok {
		out.StopSeqs = v
	}
	return out, nil
}

// contentBlocks maps a message's content to API content blocks.
func contentBlocks(msg provider.Message) []apiContentBlock {
	if !msg.IsStructured() {
		return []apiContentBlock{{Type: "text", Text: msg.Content}}
	}

	blocks := make([]apiContentBlock, 0, len(msg.ContentParts))
	for _, part := range msg.ContentParts {
		switch part.Type {
		case "text":
			blocks = append(blocks, apiContentBlock{Type: "text", Text: part.Text})
		case "image":
			src := &apiImageSource{MediaType: part.MediaType}
			if strings.HasPrefix(part.Source, "http://") || strings.HasPrefix(part.Source, "https://") {
				src.Type = "url"
				src.URL = part.Source
			} else {
				src.Type = "base64"
				src.Data = part.Source
			}
			blocks = append(blocks, apiContentBlock{Type: "image", Source: src})
		}
	}
	return blocks
}

// statusError maps API error responses to provider sentinel errors.
func (c *Client) statusError(status int, data []byte) error {
	msg := "unknown error"
	var ae apiError
	if err := json.Unmarshal(data, &ae); err == nil && ae.Error.Message != "" {
		msg = ae.Error.Message
	}

	var sentinel error
	retryable := false
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		sentinel = provider.ErrAuthentication
	case status == http.StatusTooManyRequests:
		sentinel = provider.ErrOverloaded
		retryable = true
	case status == 529: // Anthropic's overloaded_error status
		sentinel = provider.ErrOverloaded
		retryable = true
	case status >= 500:
		sentinel = provider.ErrUnavailable
		retryable = true
	default:
		sentinel = provider.ErrInvalidRequest
	}

	return provider.NewError(Name, "complete", fmt.Errorf("%w: status %d: %s", sentinel, status, msg), retryable)
}
