// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the static descriptors for models, tokenizers,
// and generation parameters.
package model

import (
	"fmt"
	"strings"
)

// =============================================================================
// MODEL TYPE
// =============================================================================

// ModelType identifies the architecture family of a model.
//
// The known values cover the common architectures; any other non-empty
// string is a valid provider-specific extension and is carried through
// unchanged.
type ModelType string

const (
	TypeTransformer ModelType = "transformer"
	TypeMoE         ModelType = "moe"
	TypeHybrid      ModelType = "hybrid"
)

// String returns the string representation of the model type.
func (t ModelType) String() string {
	return string(t)
}

// Known returns true if the type is one of the documented architectures.
func (t ModelType) Known() bool {
	switch t {
	case TypeTransformer, TypeMoE, TypeHybrid:
		return true
	}
	return false
}

// DisplayName returns a human-readable name for the model type.
func (t ModelType) DisplayName() string {
	switch t {
	case TypeTransformer:
		return "Transformer"
	case TypeMoE:
		return "Mixture of Experts"
	case TypeHybrid:
		return "Hybrid"
	default:
		return string(t)
	}
}

// =============================================================================
// MODEL CONFIG
// =============================================================================

// ModelConfig describes a model's identity, capabilities, and limits.
//
// Instances are built once by configuration loading and treated as
// read-only afterwards. ID is the unique key used for registry lookups
// and request correlation; Provider is a free-form dispatch key consumed
// by provider adapters.
type ModelConfig struct {
	// Identity
	ID       string    `json:"model_id" toml:"model_id" yaml:"model_id"`
	Name     string    `json:"name" toml:"name" yaml:"name"`
	Version  string    `json:"version,omitempty" toml:"version" yaml:"version"`
	Type     ModelType `json:"type,omitempty" toml:"type" yaml:"type"`
	Provider string    `json:"provider,omitempty" toml:"provider" yaml:"provider"`

	// Scale and limits
	ParameterCount  int64 `json:"parameter_count,omitempty" toml:"parameter_count" yaml:"parameter_count"`
	ContextWindow   int   `json:"context_window" toml:"context_window" yaml:"context_window"`
	MaxOutputTokens int   `json:"max_output_tokens" toml:"max_output_tokens" yaml:"max_output_tokens"`

	// Capabilities
	SupportsStreaming bool `json:"supports_streaming,omitempty" toml:"supports_streaming" yaml:"supports_streaming"`
	SupportsFunctions bool `json:"supports_functions,omitempty" toml:"supports_functions" yaml:"supports_functions"`

	// Metadata is an open key/value bag passed through opaquely.
	Metadata map[string]any `json:"metadata,omitempty" toml:"metadata" yaml:"metadata"`
}

// Clone returns a copy of the config with its own metadata map.
func (m ModelConfig) Clone() ModelConfig {
	clone := m
	if m.Metadata != nil {
		clone.Metadata = make(map[string]any, len(m.Metadata))
		for k, v := range m.Metadata {
			clone.Metadata[k] = v
		}
	}
	return clone
}

// CapabilitiesString returns a comma-separated list of model capabilities.
func (m ModelConfig) CapabilitiesString() string {
	caps := []string{}

	if m.ContextWindow >= 100000 {
		caps = append(caps, "Long context")
	} else if m.ContextWindow >= 32000 {
		caps = append(caps, "Extended context")
	}

	if m.SupportsStreaming {
		caps = append(caps, "Streaming")
	}
	if m.SupportsFunctions {
		caps = append(caps, "Function calling")
	}
	if m.Type == TypeMoE {
		caps = append(caps, "Mixture of Experts")
	}

	if len(caps) == 0 {
		return "General purpose"
	}
	return strings.Join(caps, ", ")
}

// ContextString returns a formatted context window string.
func (m ModelConfig) ContextString() string {
	if m.ContextWindow >= 1000000 {
		return fmt.Sprintf("%.1fM tokens", float64(m.ContextWindow)/1000000)
	}
	if m.ContextWindow >= 1000 {
		return fmt.Sprintf("%dK tokens", m.ContextWindow/1000)
	}
	return fmt.Sprintf("%d tokens", m.ContextWindow)
}

// OutputFitsContext reports whether MaxOutputTokens is within the
// context window. The ordering is recommended rather than required, so
// violations surface as warnings, not hard failures.
func (m ModelConfig) OutputFitsContext() bool {
	return m.MaxOutputTokens <= m.ContextWindow
}
