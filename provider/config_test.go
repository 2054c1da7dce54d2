package provider

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
	require.NoError(t, cfg.Validate())
}

func TestConfigLoadFromEnv(t *testing.T) {
	t.Setenv("RATEKIT_API_KEY", "env-key")
	t.Setenv("RATEKIT_BASE_URL", "https://proxy.example.com")
	t.Setenv("RATEKIT_MODEL", "claude-haiku-4-5")
	t.Setenv("RATEKIT_TIMEOUT", "30s")

	var cfg Config
	cfg.LoadFromEnv()

	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "https://proxy.example.com", cfg.BaseURL)
	assert.Equal(t, "claude-haiku-4-5", cfg.Model)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestConfigLoadFromEnvIgnoresBadTimeout(t *testing.T) {
	t.Setenv("RATEKIT_TIMEOUT", "not-a-duration")

	cfg := Config{Timeout: time.Minute}
	cfg.LoadFromEnv()

	assert.Equal(t, time.Minute, cfg.Timeout)
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{Timeout: -time.Second}
	assert.Error(t, cfg.Validate())

	cfg.Timeout = 0
	assert.NoError(t, cfg.Validate())
}

func TestConfigOptions(t *testing.T) {
	cfg := Config{
		Options: map[string]any{
			"region": "us-east-1",
			"debug":  true,
		},
	}

	assert.Equal(t, "us-east-1", cfg.GetStringOption("region", "default"))
	assert.Equal(t, "default", cfg.GetStringOption("missing", "default"))
	assert.True(t, cfg.GetBoolOption("debug", false))
	assert.False(t, cfg.GetBoolOption("missing", false))

	var empty Config
	assert.Equal(t, "fallback", empty.GetStringOption("any", "fallback"))
	assert.True(t, empty.GetBoolOption("any", true))
}
