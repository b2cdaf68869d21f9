// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the static descriptors for models, tokenizers,
// and generation parameters.
package model

// =============================================================================
// GENERATION CONFIG
// =============================================================================

// Documented bounds for sampling parameters. Values outside these ranges
// are rejected by the validator, never clamped.
const (
	TemperatureMin = 0.0
	TemperatureMax = 2.0
	TopPMin        = 0.0
	TopPMax        = 1.0
	PenaltyMin     = -2.0
	PenaltyMax     = 2.0
)

// GenerationConfig holds per-request sampling parameters.
//
// Every field is optional. A nil pointer means "use the provider
// default", which is distinct from an explicit zero and survives
// serialization. StopSequences is order-significant: the first matching
// sequence wins (matching happens in the provider adapter).
type GenerationConfig struct {
	// Sampling parameters
	Temperature      *float64 `json:"temperature,omitempty" toml:"temperature" yaml:"temperature"`
	TopP             *float64 `json:"top_p,omitempty" toml:"top_p" yaml:"top_p"`
	TopK             *int     `json:"top_k,omitempty" toml:"top_k" yaml:"top_k"`
	FrequencyPenalty *float64 `json:"frequency_penalty,omitempty" toml:"frequency_penalty" yaml:"frequency_penalty"`
	PresencePenalty  *float64 `json:"presence_penalty,omitempty" toml:"presence_penalty" yaml:"presence_penalty"`

	// Output limits
	MaxTokens      *int `json:"max_tokens,omitempty" toml:"max_tokens" yaml:"max_tokens"`
	NumCompletions *int `json:"num_completions,omitempty" toml:"num_completions" yaml:"num_completions"`

	// Stopping
	StopSequences []string `json:"stop_sequences,omitempty" toml:"stop_sequences" yaml:"stop_sequences"`

	// Seed for reproducibility
	Seed *int `json:"seed,omitempty" toml:"seed" yaml:"seed"`
}

// Clone returns a deep copy so mutation of one config never leaks into
// another through shared pointers.
func (g GenerationConfig) Clone() GenerationConfig {
	clone := GenerationConfig{
		Temperature:      copyFloat(g.Temperature),
		TopP:             copyFloat(g.TopP),
		TopK:             copyInt(g.TopK),
		FrequencyPenalty: copyFloat(g.FrequencyPenalty),
		PresencePenalty:  copyFloat(g.PresencePenalty),
		MaxTokens:        copyInt(g.MaxTokens),
		NumCompletions:   copyInt(g.NumCompletions),
		Seed:             copyInt(g.Seed),
	}
	if g.StopSequences != nil {
		clone.StopSequences = append([]string(nil), g.StopSequences...)
	}
	return clone
}

// IsZero returns true if no field is set.
func (g GenerationConfig) IsZero() bool {
	return g.Temperature == nil &&
		g.TopP == nil &&
		g.TopK == nil &&
		g.FrequencyPenalty == nil &&
		g.PresencePenalty == nil &&
		g.MaxTokens == nil &&
		g.NumCompletions == nil &&
		len(g.StopSequences) == 0 &&
		g.Seed == nil
}

// =============================================================================
// POINTER HELPERS
// =============================================================================

// Float returns a pointer to v, for building configs with explicit values.
func Float(v float64) *float64 {
	return &v
}

// Int returns a pointer to v, for building configs with explicit values.
func Int(v int) *int {
	return &v
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
