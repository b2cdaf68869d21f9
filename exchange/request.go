// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package exchange defines the request/response envelopes exchanged
// with a provider adapter.
package exchange

import (
	"time"

	"github.com/jeranaias/llmcore/chat"
	"github.com/jeranaias/llmcore/model"
)

// =============================================================================
// RETRY CONFIG
// =============================================================================

// RetryConfig carries advisory retry parameters for the external retry
// engine. Nothing in this module retries; the fields are validated for
// basic sanity and passed through.
type RetryConfig struct {
	MaxRetries int           `json:"max_retries"`
	RetryDelay time.Duration `json:"retry_delay_ns"`
}

// =============================================================================
// INFERENCE REQUEST
// =============================================================================

// InferenceRequest is one unit of inference work sent to a provider
// adapter.
//
// Prior turns come from exactly one source: ConversationContext or
// Messages. When both are populated, Messages is the authoritative
// override; the validator surfaces a warning when the two disagree
// rather than resolving the conflict silently.
type InferenceRequest struct {
	// Identity. RequestID is caller-supplied, or generated during
	// validation when absent. Must be unique per outstanding request.
	RequestID string    `json:"request_id,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`

	// Target model ID
	Model string `json:"model"`

	// Conversation sources
	ConversationContext *chat.ConversationContext `json:"conversation_context,omitempty"`
	Messages            []chat.Message            `json:"messages,omitempty"`

	// System prompt override (optional)
	SystemPrompt string `json:"system_prompt,omitempty"`

	// Sampling parameters (optional; nil means provider defaults)
	GenerationConfig *model.GenerationConfig `json:"generation_config,omitempty"`

	// Streaming flag, honored only by providers that support it
	Stream bool `json:"stream,omitempty"`

	// Advisory retry parameters for the external retry engine
	Retry *RetryConfig `json:"retry,omitempty"`

	// Metadata is an open key/value bag passed through opaquely.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// EffectiveMessages returns the prior turns the provider should see,
// applying the precedence rule: Messages overrides ConversationContext
// when both are present.
func (r *InferenceRequest) EffectiveMessages() []chat.Message {
	if len(r.Messages) > 0 {
		return r.Messages
	}
	if r.ConversationContext != nil {
		return r.ConversationContext.Messages
	}
	return nil
}

// HasBothSources returns true when both conversation sources are
// populated.
func (r *InferenceRequest) HasBothSources() bool {
	return len(r.Messages) > 0 && r.ConversationContext != nil && !r.ConversationContext.IsEmpty()
}

// RoleSequence returns the ordered roles of the effective messages.
func (r *InferenceRequest) RoleSequence() []chat.Role {
	msgs := r.EffectiveMessages()
	roles := make([]chat.Role, len(msgs))
	for i, msg := range msgs {
		roles[i] = msg.Role
	}
	return roles
}

// Clone returns a deep copy of the request.
func (r *InferenceRequest) Clone() *InferenceRequest {
	clone := &InferenceRequest{
		RequestID:    r.RequestID,
		CreatedAt:    r.CreatedAt,
		Model:        r.Model,
		SystemPrompt: r.SystemPrompt,
		Stream:       r.Stream,
	}

	if r.ConversationContext != nil {
		clone.ConversationContext = r.ConversationContext.Clone()
	}
	if r.Messages != nil {
		clone.Messages = make([]chat.Message, len(r.Messages))
		for i, msg := range r.Messages {
			clone.Messages[i] = msg.Clone()
		}
	}
	if r.GenerationConfig != nil {
		gc := r.GenerationConfig.Clone()
		clone.GenerationConfig = &gc
	}
	if r.Retry != nil {
		rc := *r.Retry
		clone.Retry = &rc
	}
	if r.Metadata != nil {
		clone.Metadata = make(map[string]any, len(r.Metadata))
		for k, v := range r.Metadata {
			clone.Metadata[k] = v
		}
	}

	return clone
}
