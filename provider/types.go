package provider

import "time"

// Request configures a completion call.
type Request struct {
	// Model specifies which model to use (provider-specific name).
	// Example: "claude-sonnet-4-20250514"
	Model string `json:"model"`

	// System sets the system prompt that guides the model's behavior.
	System string `json:"system,omitempty"`

	// Messages is the conversation history to send to the model.
	Messages []Message `json:"messages"`

	// MaxTokens is the output token ceiling for the response. Required by
	// most providers; the admission layer reserves this full amount from
	// the output-token quota before dispatching.
	MaxTokens int `json:"max_tokens"`

	// Temperature controls response randomness (0.0 = deterministic).
	Temperature float64 `json:"temperature,omitempty"`

	// Options holds provider-specific configuration passed through
	// unmodified. See each provider's documentation for available fields.
	Options map[string]any `json:"options,omitempty"`
}

// Message is a conversation turn. For simple text use Content; for
// structured content (text plus images or other media) use ContentParts,
// which takes precedence when set.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content,omitempty"`

	// ContentParts enables structured content. Only text-typed parts
	// contribute to token estimation.
	ContentParts []ContentPart `json:"content_parts,omitempty"`
}

// ContentPart is a piece of structured message content.
type ContentPart struct {
	// Type indicates the content type: "text" or "image".
	Type string `json:"type"`

	// Text content (when Type == "text").
	Text string `json:"text,omitempty"`

	// Source holds media data for non-text parts (base64 or URL).
	Source string `json:"source,omitempty"`

	// MediaType is the MIME type for non-text parts (e.g. "image/png").
	MediaType string `json:"media_type,omitempty"`
}

// NewTextMessage creates a simple text message.
func NewTextMessage(role Role, content string) Message {
	return Message{Role: role, Content: content}
}

// IsStructured returns true if the message uses typed content parts.
func (m Message) IsStructured() bool {
	return len(m.ContentParts) > 0
}

// Text returns the message's text content. For structured messages it
// concatenates the text-typed parts and ignores everything else.
func (m Message) Text() string {
	if !m.IsStructured() {
		return m.Content
	}
	var text string
	for _, part := range m.ContentParts {
		if part.Type == "text" {
			text += part.Text
		}
	}
	return text
}

// Role identifies the message sender.
type Role string

// Standard message roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Response is the output of a completion call.
type Response struct {
	// Content is the text response from the model.
	Content string `json:"content"`

	// Model is the model that produced the response (may differ from
	// the requested name).
	Model string `json:"model"`

	// StopReason indicates why the model stopped generating.
	// Common values: "end_turn", "max_tokens", "stop_sequence"
	StopReason string `json:"stop_reason,omitempty"`

	// Usage holds the actual token consumption reported by the provider.
	Usage TokenUsage `json:"usage"`

	// Duration is the wall time taken by the call.
	Duration time.Duration `json:"duration,omitempty"`
}

// TokenUsage carries the usage counters a provider reports for one call.
type TokenUsage struct {
	// InputTokens is the number of regular (non-cached) input tokens.
	InputTokens int `json:"input_tokens"`

	// OutputTokens is the number of tokens generated.
	OutputTokens int `json:"output_tokens"`

	// CacheCreationInputTokens counts input tokens written to the prompt
	// cache. These are billed, and count against input-token limits.
	CacheCreationInputTokens int `json:"cache_creation_input_tokens,omitempty"`

	// CacheReadInputTokens counts input tokens served from the prompt
	// cache. These do NOT count against input-token limits.
	CacheReadInputTokens int `json:"cache_read_input_tokens,omitempty"`
}

// BillableInputTokens returns the input tokens that count against
// input-token-per-minute limits: regular input plus cache creation.
// Cache reads are explicitly excluded.
func (u TokenUsage) BillableInputTokens() int {
	return u.InputTokens + u.CacheCreationInputTokens
}

// TotalTokens returns billable input plus output tokens.
func (u TokenUsage) TotalTokens() int {
	return u.BillableInputTokens() + u.OutputTokens
}

// Add combines token usage from another TokenUsage.
func (u *TokenUsage) Add(other TokenUsage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
	u.CacheCreationInputTokens += other.CacheCreationInputTokens
	u.CacheReadInputTokens += other.CacheReadInputTokens
}
