// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package catalog loads and indexes model and tokenizer descriptors.
//
// A catalog is the admission point for descriptors coming from
// configuration: every descriptor passes through the validator before
// it is registered, so downstream code can treat anything found in a
// catalog as well-formed. Descriptor files may be TOML, YAML, or JSON,
// selected by extension:
//
//	[[models]]
//	model_id = "claude-3-5-sonnet-20241022"
//	name = "Claude 3.5 Sonnet"
//	context_window = 200000
//	max_output_tokens = 8192
//
//	[[tokenizers]]
//	name = "cl100k_base"
//	vocab_size = 100277
package catalog
