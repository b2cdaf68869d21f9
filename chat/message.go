// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat contains the conversational state of the data contract.
package chat

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
//
// The known roles cover standard conversation turns. Any other non-empty
// string is a valid provider-specific extension and passes through
// unchanged.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// Known returns true if the role is one of the standard roles.
func (r Role) Known() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	case RoleSystem:
		return "System"
	default:
		return string(r)
	}
}

// =============================================================================
// FUNCTION CALL TYPES
// =============================================================================

// FunctionCall is a single function invocation requested by the model.
// Arguments is an open key/value mapping carried through opaquely.
type FunctionCall struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// FunctionResult is the outcome of one executed function call.
type FunctionResult struct {
	Name   string `json:"name"`
	Result any    `json:"result,omitempty"`
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a conversation. Messages are
// immutable once appended to a context.
//
// A message may carry FunctionCalls (requested by the assistant) or a
// FunctionResult (reporting one execution). Carrying both is
// structurally possible but semantically contradictory; the validator
// flags it as a warning rather than resolving it silently.
type Message struct {
	// Identity
	ID        string     `json:"id,omitempty"`
	Role      Role       `json:"role"`
	Timestamp *time.Time `json:"timestamp,omitempty"`

	// Content
	Content string `json:"content"`

	// Name optionally tags the author within a role (e.g. a tool name).
	Name string `json:"name,omitempty"`

	// Function calling
	FunctionCalls  []FunctionCall  `json:"function_calls,omitempty"`
	FunctionResult *FunctionResult `json:"function_result,omitempty"`

	// Token statistics
	TokenCount *int `json:"token_count,omitempty"`
}

// NewMessage creates a new message with a generated ID and the current
// time as its timestamp.
func NewMessage(role Role, content string) Message {
	now := time.Now()
	return Message{
		ID:        generateID("msg"),
		Role:      role,
		Content:   content,
		Timestamp: &now,
	}
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) Message {
	return NewMessage(RoleUser, content)
}

// NewAssistantMessage creates a new assistant message.
func NewAssistantMessage(content string) Message {
	return NewMessage(RoleAssistant, content)
}

// NewSystemMessage creates a new system message.
func NewSystemMessage(content string) Message {
	return NewMessage(RoleSystem, content)
}

// =============================================================================
// MESSAGE METHODS
// =============================================================================

// HasFunctionCalls returns true if the message requests function calls.
func (m Message) HasFunctionCalls() bool {
	return len(m.FunctionCalls) > 0
}

// HasFunctionResult returns true if the message reports a function result.
func (m Message) HasFunctionResult() bool {
	return m.FunctionResult != nil
}

// IsEmpty returns true if the message has no content and no function
// payload.
func (m Message) IsEmpty() bool {
	return m.Content == "" && !m.HasFunctionCalls() && !m.HasFunctionResult()
}

// Preview returns a truncated preview of the message content.
// Uses rune-based truncation to handle Unicode correctly.
func (m Message) Preview(maxLen int) string {
	runes := []rune(m.Content)
	if len(runes) <= maxLen {
		return m.Content
	}
	cut := maxLen - 3
	if cut < 0 {
		cut = 0
	}
	return string(runes[:cut]) + "..."
}

// EstimateTokens gives a rough estimate of token count.
// Uses the approximation of ~4 characters per token.
func (m Message) EstimateTokens() int {
	if m.TokenCount != nil {
		return *m.TokenCount
	}
	return (len(m.Content) + 3) / 4
}

// Clone returns a deep copy of the message.
func (m Message) Clone() Message {
	clone := m
	if m.Timestamp != nil {
		ts := *m.Timestamp
		clone.Timestamp = &ts
	}
	if m.TokenCount != nil {
		tc := *m.TokenCount
		clone.TokenCount = &tc
	}
	if m.FunctionCalls != nil {
		clone.FunctionCalls = make([]FunctionCall, len(m.FunctionCalls))
		for i, fc := range m.FunctionCalls {
			clone.FunctionCalls[i] = fc.clone()
		}
	}
	if m.FunctionResult != nil {
		fr := *m.FunctionResult
		clone.FunctionResult = &fr
	}
	return clone
}

func (f FunctionCall) clone() FunctionCall {
	clone := FunctionCall{Name: f.Name}
	if f.Arguments != nil {
		clone.Arguments = make(map[string]any, len(f.Arguments))
		for k, v := range f.Arguments {
			clone.Arguments[k] = v
		}
	}
	return clone
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateID creates a unique prefixed ID for messages and conversations.
func generateID(prefix string) string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return prefix + "_" + hex.EncodeToString(bytes)
}
