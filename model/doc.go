// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the static descriptors for models, tokenizers,
// and generation parameters.
//
// This package holds the read-only configuration half of the data
// contract: what a model can do, how its tokenizer is shaped, and which
// sampling knobs a caller wants turned. The mutable conversational state
// lives in package chat and the request/response envelopes in package
// exchange.
//
// # Key Types
//
//   - ModelConfig: capabilities and limits of a single model
//   - GenerationConfig: per-request sampling parameters, all optional
//   - TokenizerConfig: vocabulary size and special-token IDs
//   - ModelType: architecture enumeration (transformer, moe, hybrid)
//
// # Unset vs Zero
//
// Every optional numeric field on GenerationConfig is a pointer. A nil
// field means "use the provider default" and is preserved through JSON,
// TOML, and YAML round trips; it is never collapsed into a concrete
// default value. Callers who want the explicit value 0.0 set a pointer
// to 0.0.
//
// # Usage
//
// Look up a well-known model:
//
//	cfg, ok := model.Get("claude-3-5-sonnet-20241022")
//	fmt.Printf("%s: %d token context\n", cfg.Name, cfg.ContextWindow)
//
// Build generation parameters:
//
//	gen := model.GenerationConfig{
//	    Temperature: model.Float(0.7),
//	    MaxTokens:   model.Int(1024),
//	}
package model
