// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the static descriptors for models, tokenizers,
// and generation parameters.
package model

// =============================================================================
// TOKENIZER CONFIG
// =============================================================================

// TokenizerConfig describes a model's tokenizer vocabulary and special
// tokens. The encode/decode algorithm itself lives with the tokenizer
// implementation; this core only carries the descriptor.
//
// Special-token IDs are optional. When set, each must fall in
// [0, VocabSize). Instances are immutable once loaded.
type TokenizerConfig struct {
	Name      string `json:"name,omitempty" toml:"name" yaml:"name"`
	VocabSize int    `json:"vocab_size" toml:"vocab_size" yaml:"vocab_size"`

	// Special token IDs
	PadToken *int `json:"pad_token,omitempty" toml:"pad_token" yaml:"pad_token"`
	UnkToken *int `json:"unk_token,omitempty" toml:"unk_token" yaml:"unk_token"`
	BosToken *int `json:"bos_token,omitempty" toml:"bos_token" yaml:"bos_token"`
	EosToken *int `json:"eos_token,omitempty" toml:"eos_token" yaml:"eos_token"`
}

// Clone returns a copy with its own special-token pointers.
func (t TokenizerConfig) Clone() TokenizerConfig {
	return TokenizerConfig{
		Name:      t.Name,
		VocabSize: t.VocabSize,
		PadToken:  copyInt(t.PadToken),
		UnkToken:  copyInt(t.UnkToken),
		BosToken:  copyInt(t.BosToken),
		EosToken:  copyInt(t.EosToken),
	}
}

// SpecialTokens returns the set special-token IDs keyed by field name.
// Used by the validator to range-check each one uniformly.
func (t TokenizerConfig) SpecialTokens() map[string]*int {
	return map[string]*int{
		"pad_token": t.PadToken,
		"unk_token": t.UnkToken,
		"bos_token": t.BosToken,
		"eos_token": t.EosToken,
	}
}
