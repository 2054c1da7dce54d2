package provider

import (
	"fmt"
	"os"
	"time"
)

// Config holds configuration for creating a transport client.
// Common fields apply to all providers; use Options for provider-specific
// settings.
type Config struct {
	// APIKey authenticates against the provider. Providers may fall back
	// to their conventional environment variable when empty (e.g.
	// ANTHROPIC_API_KEY).
	APIKey string `json:"api_key" yaml:"api_key" toml:"api_key"`

	// BaseURL overrides the provider's default API endpoint.
	// Useful for proxies and tests.
	BaseURL string `json:"base_url" yaml:"base_url" toml:"base_url"`

	// Model is the default model when a request doesn't name one.
	// Example: "claude-sonnet-4-20250514"
	Model string `json:"model" yaml:"model" toml:"model"`

	// Timeout is the maximum duration for a completion request.
	// 0 uses the provider default.
	Timeout time.Duration `json:"timeout" yaml:"timeout" toml:"timeout"`

	// Options holds provider-specific configuration.
	// See each provider's documentation for available fields.
	Options map[string]any `json:"options" yaml:"options" toml:"options"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Timeout: 2 * time.Minute,
	}
}

// LoadFromEnv populates config fields from environment variables.
// Variables use the RATEKIT_ prefix and take precedence over existing
// values.
//
// Supported variables:
//   - RATEKIT_API_KEY: API key
//   - RATEKIT_BASE_URL: API endpoint override
//   - RATEKIT_MODEL: Default model name
//   - RATEKIT_TIMEOUT: Request timeout (e.g. "2m")
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("RATEKIT_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("RATEKIT_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("RATEKIT_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("RATEKIT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = d
		}
	}
}

// FromEnv creates a Config from environment variables with defaults.
func FromEnv() Config {
	cfg := DefaultConfig()
	cfg.LoadFromEnv()
	return cfg
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %v", c.Timeout)
	}
	return nil
}

// GetStringOption retrieves a string option, returning defaultVal if not set.
func (c Config) GetStringOption(key, defaultVal string) string {
	if c.Options == nil {
		return defaultVal
	}
	if v, ok := c.Options[key].(string); ok {
		return v
	}
	return defaultVal
}

// GetBoolOption retrieves a bool option, returning defaultVal if not set.
func (c Config) GetBoolOption(key string, defaultVal bool) bool {
	if c.Options == nil {
		return defaultVal
	}
	if v, ok := c.Options[key].(bool); ok {
		return v
	}
	return defaultVal
}
