// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat contains the conversational state of the data contract.
package chat

import (
	"errors"
	"fmt"
	"time"

	"github.com/jeranaias/llmcore/model"
)

// ErrTimestampRegression is returned when an appended message carries a
// timestamp earlier than the conversation's last message.
var ErrTimestampRegression = errors.New("message timestamp precedes last message")

// ErrTimestampBeforeCreation is returned when an appended message
// carries a timestamp earlier than the conversation's creation time.
var ErrTimestampBeforeCreation = errors.New("message timestamp precedes conversation creation")

// =============================================================================
// CONVERSATION CONTEXT
// =============================================================================

// ConversationContext holds an ordered, append-only message history
// together with optional snapshot configuration.
//
// Insertion order is the conversational order and is load-bearing. The
// bound ModelConfig and GenerationConfig are snapshots taken at context
// creation; they are not updated when the source configuration changes.
type ConversationContext struct {
	// Identity
	ConversationID string     `json:"conversation_id"`
	CreatedAt      time.Time  `json:"created_at"`
	LastMessageAt  *time.Time `json:"last_message_at,omitempty"`

	// Messages, in conversational order. Append-only.
	Messages []Message `json:"messages"`

	// System prompt (optional)
	SystemPrompt string `json:"system_prompt,omitempty"`

	// Configuration snapshots (optional)
	ModelConfig      *model.ModelConfig      `json:"model_config,omitempty"`
	GenerationConfig *model.GenerationConfig `json:"generation_config,omitempty"`
}

// NewConversation creates a new conversation context with a generated ID.
func NewConversation() *ConversationContext {
	return &ConversationContext{
		ConversationID: generateID("conv"),
		CreatedAt:      time.Now(),
		Messages:       make([]Message, 0),
	}
}

// NewConversationWithModel creates a new context bound to a model
// configuration snapshot.
func NewConversationWithModel(cfg model.ModelConfig) *ConversationContext {
	conv := NewConversation()
	snapshot := cfg.Clone()
	conv.ModelConfig = &snapshot
	return conv
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// Append adds a message to the conversation, enforcing timestamp
// monotonicity. On rejection the context is left completely untouched;
// on success the message is stored and LastMessageAt advances in the
// same step, so the sequence and LastMessageAt never disagree.
//
// A message without a timestamp is admitted unconditionally and stamps
// LastMessageAt with the current time.
func (c *ConversationContext) Append(msg Message) error {
	return c.AppendAt(msg, time.Now())
}

// AppendAt is Append with an explicit "current time", so callers with an
// injected clock stay deterministic.
func (c *ConversationContext) AppendAt(msg Message, now time.Time) error {
	effective := now
	if msg.Timestamp != nil {
		if !c.CreatedAt.IsZero() && msg.Timestamp.Before(c.CreatedAt) {
			return fmt.Errorf("%w: message at %s, created at %s",
				ErrTimestampBeforeCreation,
				msg.Timestamp.Format(time.RFC3339Nano),
				c.CreatedAt.Format(time.RFC3339Nano))
		}
		if c.LastMessageAt != nil && msg.Timestamp.Before(*c.LastMessageAt) {
			return fmt.Errorf("%w: message at %s, last at %s",
				ErrTimestampRegression,
				msg.Timestamp.Format(time.RFC3339Nano),
				c.LastMessageAt.Format(time.RFC3339Nano))
		}
		effective = *msg.Timestamp
	}

	c.Messages = append(c.Messages, msg)
	c.LastMessageAt = &effective
	return nil
}

// AddUserMessage creates and appends a user message.
func (c *ConversationContext) AddUserMessage(content string) (Message, error) {
	msg := NewUserMessage(content)
	return msg, c.Append(msg)
}

// AddAssistantMessage creates and appends an assistant message.
func (c *ConversationContext) AddAssistantMessage(content string) (Message, error) {
	msg := NewAssistantMessage(content)
	return msg, c.Append(msg)
}

// LastMessage returns the most recent message and true, or false if the
// conversation is empty.
func (c *ConversationContext) LastMessage() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}

// LastMessageByRole returns the most recent message with the given role.
func (c *ConversationContext) LastMessageByRole(role Role) (Message, bool) {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == role {
			return c.Messages[i], true
		}
	}
	return Message{}, false
}

// RoleSequence returns the ordered roles of the message history. Used
// for comparing conversation sources on a request.
func (c *ConversationContext) RoleSequence() []Role {
	roles := make([]Role, len(c.Messages))
	for i, msg := range c.Messages {
		roles[i] = msg.Role
	}
	return roles
}

// MessageCount returns the number of messages.
func (c *ConversationContext) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty returns true if there are no messages.
func (c *ConversationContext) IsEmpty() bool {
	return len(c.Messages) == 0
}

// =============================================================================
// TOKEN TRACKING
// =============================================================================

// EstimateTokens estimates the total token count of the conversation,
// including the system prompt and a small per-message overhead.
func (c *ConversationContext) EstimateTokens() int {
	total := 0

	if c.SystemPrompt != "" {
		total += (len(c.SystemPrompt) + 3) / 4
	}

	for _, msg := range c.Messages {
		total += msg.EstimateTokens()
		// Overhead for message structure (~4 tokens per message)
		total += 4
	}

	return total
}

// =============================================================================
// SERIALIZATION HELPERS
// =============================================================================

// Clone creates a deep copy of the conversation context.
func (c *ConversationContext) Clone() *ConversationContext {
	clone := &ConversationContext{
		ConversationID: c.ConversationID,
		CreatedAt:      c.CreatedAt,
		SystemPrompt:   c.SystemPrompt,
		Messages:       make([]Message, len(c.Messages)),
	}

	if c.LastMessageAt != nil {
		ts := *c.LastMessageAt
		clone.LastMessageAt = &ts
	}
	if c.ModelConfig != nil {
		mc := c.ModelConfig.Clone()
		clone.ModelConfig = &mc
	}
	if c.GenerationConfig != nil {
		gc := c.GenerationConfig.Clone()
		clone.GenerationConfig = &gc
	}
	for i, msg := range c.Messages {
		clone.Messages[i] = msg.Clone()
	}

	return clone
}

// Preview returns a short preview of the conversation.
func (c *ConversationContext) Preview() string {
	if len(c.Messages) == 0 {
		return "Empty conversation"
	}

	if msg, ok := c.LastMessageByRole(RoleUser); ok {
		return msg.Preview(100)
	}
	return c.Messages[0].Preview(100)
}

// Meta returns lightweight metadata about the conversation for listing.
func (c *ConversationContext) Meta() ConversationMeta {
	meta := ConversationMeta{
		ConversationID: c.ConversationID,
		MessageCount:   len(c.Messages),
		CreatedAt:      c.CreatedAt,
		LastMessageAt:  c.LastMessageAt,
		Preview:        c.Preview(),
	}
	if c.ModelConfig != nil {
		meta.Model = c.ModelConfig.ID
	}
	return meta
}

// ConversationMeta holds lightweight metadata for listing.
type ConversationMeta struct {
	ConversationID string     `json:"conversation_id"`
	Model          string     `json:"model,omitempty"`
	MessageCount   int        `json:"message_count"`
	CreatedAt      time.Time  `json:"created_at"`
	LastMessageAt  *time.Time `json:"last_message_at,omitempty"`
	Preview        string     `json:"preview"`
}
