// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the static descriptors for models, tokenizers,
// and generation parameters.
package model

import "strings"

// =============================================================================
// MODEL REGISTRY
// =============================================================================

// Models is the registry of well-known models with their descriptors,
// keyed by short name. This covers common cloud API models and local
// models; deployments extend the set through catalog files.
var Models = map[string]ModelConfig{
	// Anthropic Claude models
	"haiku": {
		ID:                "claude-3-haiku-20240307",
		Name:              "Claude 3 Haiku",
		Provider:          "anthropic",
		Type:              TypeTransformer,
		ContextWindow:     200000,
		MaxOutputTokens:   4096,
		SupportsStreaming: true,
		SupportsFunctions: true,
	},
	"sonnet": {
		ID:                "claude-3-5-sonnet-20241022",
		Name:              "Claude 3.5 Sonnet",
		Provider:          "anthropic",
		Type:              TypeTransformer,
		ContextWindow:     200000,
		MaxOutputTokens:   8192,
		SupportsStreaming: true,
		SupportsFunctions: true,
	},
	"opus": {
		ID:                "claude-3-opus-20240229",
		Name:              "Claude 3 Opus",
		Provider:          "anthropic",
		Type:              TypeTransformer,
		ContextWindow:     200000,
		MaxOutputTokens:   4096,
		SupportsStreaming: true,
		SupportsFunctions: true,
	},

	// OpenAI models
	"gpt-4o": {
		ID:                "gpt-4o",
		Name:              "GPT-4o",
		Provider:          "openai",
		Type:              TypeTransformer,
		ContextWindow:     128000,
		MaxOutputTokens:   16384,
		SupportsStreaming: true,
		SupportsFunctions: true,
	},
	"gpt-4o-mini": {
		ID:                "gpt-4o-mini",
		Name:              "GPT-4o Mini",
		Provider:          "openai",
		Type:              TypeTransformer,
		ContextWindow:     128000,
		MaxOutputTokens:   16384,
		SupportsStreaming: true,
		SupportsFunctions: true,
	},

	// Local Ollama models (commonly used)
	"llama3.1": {
		ID:                "llama3.1",
		Name:              "Llama 3.1",
		Provider:          "local",
		Type:              TypeTransformer,
		ParameterCount:    8_000_000_000,
		ContextWindow:     128000,
		MaxOutputTokens:   4096,
		SupportsStreaming: true,
	},
	"qwen2.5-coder": {
		ID:                "qwen2.5-coder",
		Name:              "Qwen 2.5 Coder",
		Provider:          "local",
		Type:              TypeTransformer,
		ParameterCount:    14_000_000_000,
		ContextWindow:     32768,
		MaxOutputTokens:   4096,
		SupportsStreaming: true,
	},
	"mixtral": {
		ID:                "mixtral",
		Name:              "Mixtral 8x7B",
		Provider:          "local",
		Type:              TypeMoE,
		ParameterCount:    46_700_000_000,
		ContextWindow:     32768,
		MaxOutputTokens:   4096,
		SupportsStreaming: true,
	},
	"mistral": {
		ID:                "mistral",
		Name:              "Mistral",
		Provider:          "local",
		Type:              TypeTransformer,
		ParameterCount:    7_000_000_000,
		ContextWindow:     32768,
		MaxOutputTokens:   4096,
		SupportsStreaming: true,
	},
	"jamba": {
		ID:              "jamba-1.5-mini",
		Name:            "Jamba 1.5 Mini",
		Provider:        "ai21",
		Type:            TypeHybrid,
		ContextWindow:   256000,
		MaxOutputTokens: 4096,
	},
}

// =============================================================================
// MODEL LOOKUP FUNCTIONS
// =============================================================================

// Get looks up a model by short name or full ID.
// Returns the ModelConfig and true if found.
func Get(nameOrID string) (ModelConfig, bool) {
	if cfg, ok := Models[nameOrID]; ok {
		return cfg, true
	}

	for _, cfg := range Models {
		if cfg.ID == nameOrID {
			return cfg, true
		}
	}

	// Fall back to a partial match on name or ID
	lower := strings.ToLower(nameOrID)
	for _, cfg := range Models {
		if strings.Contains(strings.ToLower(cfg.Name), lower) ||
			strings.Contains(strings.ToLower(cfg.ID), lower) {
			return cfg, true
		}
	}

	return ModelConfig{}, false
}

// ByProvider returns all registered models from a specific provider.
func ByProvider(provider string) []ModelConfig {
	result := []ModelConfig{}
	lower := strings.ToLower(provider)

	for _, cfg := range Models {
		if strings.ToLower(cfg.Provider) == lower {
			result = append(result, cfg)
		}
	}

	return result
}

// ByType returns all registered models of a specific architecture.
func ByType(t ModelType) []ModelConfig {
	result := []ModelConfig{}

	for _, cfg := range Models {
		if cfg.Type == t {
			result = append(result, cfg)
		}
	}

	return result
}

// ShortNames returns the short names of all registered models.
func ShortNames() []string {
	names := make([]string, 0, len(Models))
	for name := range Models {
		names = append(names, name)
	}
	return names
}
