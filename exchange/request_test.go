// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package exchange defines the request/response envelopes exchanged
// with a provider adapter.
package exchange

import (
	"testing"
	"time"

	"github.com/jeranaias/llmcore/chat"
	"github.com/jeranaias/llmcore/model"
)

func boundContext(t *testing.T, contents ...string) *chat.ConversationContext {
	t.Helper()
	conv := chat.NewConversation()
	for i, content := range contents {
		role := chat.RoleUser
		if i%2 == 1 {
			role = chat.RoleAssistant
		}
		if err := conv.Append(chat.Message{Role: role, Content: content}); err != nil {
			t.Fatal(err)
		}
	}
	return conv
}

// =============================================================================
// REQUEST TESTS
// =============================================================================

func TestRequest_EffectiveMessages(t *testing.T) {
	ctx := boundContext(t, "from context")
	override := []chat.Message{{Role: chat.RoleUser, Content: "from override"}}

	tests := []struct {
		name string
		req  InferenceRequest
		want string
	}{
		{
			name: "context only",
			req:  InferenceRequest{ConversationContext: ctx},
			want: "from context",
		},
		{
			name: "messages only",
			req:  InferenceRequest{Messages: override},
			want: "from override",
		},
		{
			name: "messages override context",
			req:  InferenceRequest{ConversationContext: ctx, Messages: override},
			want: "from override",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			msgs := tc.req.EffectiveMessages()
			if len(msgs) == 0 {
				t.Fatal("no effective messages")
			}
			if msgs[0].Content != tc.want {
				t.Errorf("EffectiveMessages()[0].Content = %q, want %q", msgs[0].Content, tc.want)
			}
		})
	}

	empty := InferenceRequest{}
	if empty.EffectiveMessages() != nil {
		t.Error("request without sources should have no effective messages")
	}
}

func TestRequest_HasBothSources(t *testing.T) {
	ctx := boundContext(t, "hi")
	override := []chat.Message{{Role: chat.RoleUser, Content: "hi"}}

	if (&InferenceRequest{ConversationContext: ctx}).HasBothSources() {
		t.Error("context alone is not both sources")
	}
	if !(&InferenceRequest{ConversationContext: ctx, Messages: override}).HasBothSources() {
		t.Error("both populated sources should be detected")
	}

	// An empty bound context does not count as a competing source
	emptyCtx := chat.NewConversation()
	if (&InferenceRequest{ConversationContext: emptyCtx, Messages: override}).HasBothSources() {
		t.Error("empty context should not count as a source")
	}
}

func TestRequest_RoleSequence(t *testing.T) {
	req := InferenceRequest{Messages: []chat.Message{
		{Role: chat.RoleSystem},
		{Role: chat.RoleUser},
	}}

	seq := req.RoleSequence()
	if len(seq) != 2 || seq[0] != chat.RoleSystem || seq[1] != chat.RoleUser {
		t.Errorf("RoleSequence() = %v", seq)
	}
}

func TestRequest_Clone(t *testing.T) {
	orig := &InferenceRequest{
		RequestID: "req_1",
		Model:     "sonnet",
		CreatedAt: time.Unix(1000, 0),
		Messages:  []chat.Message{{Role: chat.RoleUser, Content: "original"}},
		GenerationConfig: &model.GenerationConfig{
			Temperature: model.Float(0.7),
		},
		Retry:    &RetryConfig{MaxRetries: 3, RetryDelay: time.Second},
		Metadata: map[string]any{"trace": "abc"},
	}

	clone := orig.Clone()
	clone.Messages[0].Content = "mutated"
	*clone.GenerationConfig.Temperature = 2.0
	clone.Retry.MaxRetries = 9
	clone.Metadata["trace"] = "xyz"

	if orig.Messages[0].Content != "original" {
		t.Error("Clone should not share messages")
	}
	if *orig.GenerationConfig.Temperature != 0.7 {
		t.Error("Clone should not share generation config")
	}
	if orig.Retry.MaxRetries != 3 {
		t.Error("Clone should not share retry config")
	}
	if orig.Metadata["trace"] != "abc" {
		t.Error("Clone should not share metadata")
	}
}
