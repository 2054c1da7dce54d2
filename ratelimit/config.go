package ratelimit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/ratekit/model"
)

// ModelLimits holds the per-minute token limits for one model family.
type ModelLimits struct {
	// InputTokensPerMinute caps billable input tokens per minute.
	InputTokensPerMinute float64 `json:"input_tokens_per_minute" yaml:"input_tokens_per_minute" toml:"input_tokens_per_minute"`

	// OutputTokensPerMinute caps generated tokens per minute.
	OutputTokensPerMinute float64 `json:"output_tokens_per_minute" yaml:"output_tokens_per_minute" toml:"output_tokens_per_minute"`
}

// Limits is a rate-limit profile: one shared request-per-minute limit plus
// per-family token limits. Families absent from Models are not gated on
// the token dimensions.
type Limits struct {
	// RequestsPerMinute caps requests per minute across all models.
	RequestsPerMinute float64 `json:"requests_per_minute" yaml:"requests_per_minute" toml:"requests_per_minute"`

	// Models maps family keys to their token limits.
	Models map[model.Family]ModelLimits `json:"models" yaml:"models" toml:"models"`
}

// DefaultLimits returns the standard tier-1 profile (as of 2026-01):
// 50 requests/minute shared, 30K/8K input/output tokens per minute for
// sonnet-4 and opus-4, 50K/10K for haiku-4.
func DefaultLimits() Limits {
	return Limits{
		RequestsPerMinute: 50,
		Models: map[model.Family]ModelLimits{
			model.FamilySonnet: {InputTokensPerMinute: 30000, OutputTokensPerMinute: 8000},
			model.FamilyHaiku:  {InputTokensPerMinute: 50000, OutputTokensPerMinute: 10000},
			model.FamilyOpus:   {InputTokensPerMinute: 30000, OutputTokensPerMinute: 8000},
		},
	}
}

// Validate checks that every configured limit is positive.
func (l Limits) Validate() error {
	if l.RequestsPerMinute <= 0 {
		return fmt.Errorf("%w: requests_per_minute must be > 0, got %v", ErrInvalidLimits, l.RequestsPerMinute)
	}
	for family, ml := range l.Models {
		if ml.InputTokensPerMinute <= 0 {
			return fmt.Errorf("%w: %s input_tokens_per_minute must be > 0, got %v", ErrInvalidLimits, family, ml.InputTokensPerMinute)
		}
		if ml.OutputTokensPerMinute <= 0 {
			return fmt.Errorf("%w: %s output_tokens_per_minute must be > 0, got %v", ErrInvalidLimits, family, ml.OutputTokensPerMinute)
		}
	}
	return nil
}

// LoadLimits reads a limits profile from a YAML or TOML file, chosen by
// extension (".toml" for TOML, anything else parsed as YAML), and
// validates it.
func LoadLimits(path string) (Limits, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Limits{}, fmt.Errorf("read limits file: %w", err)
	}

	var limits Limits
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, &limits); err != nil {
			return Limits{}, fmt.Errorf("%w: parse TOML: %v", ErrInvalidLimits, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &limits); err != nil {
			return Limits{}, fmt.Errorf("%w: parse YAML: %v", ErrInvalidLimits, err)
		}
	}

	if err := limits.Validate(); err != nil {
		return Limits{}, err
	}
	return limits, nil
}
