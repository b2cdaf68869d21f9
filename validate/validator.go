// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package validate enforces the cross-field invariants of the data
// contract.
package validate

import (
	"fmt"
	"sort"
	"time"

	"github.com/jeranaias/llmcore/chat"
	"github.com/jeranaias/llmcore/exchange"
	"github.com/jeranaias/llmcore/model"
)

// =============================================================================
// VALIDATOR
// =============================================================================

// Validator checks and normalizes contract entities. It holds no
// mutable state beyond its injected services, so one instance may be
// shared across goroutines freely.
type Validator struct {
	ids   IDGenerator
	clock Clock
}

// Option configures a Validator.
type Option func(*Validator)

// WithIDGenerator replaces the request-ID generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(v *Validator) {
		if g != nil {
			v.ids = g
		}
	}
}

// WithClock replaces the clock.
func WithClock(c Clock) Option {
	return func(v *Validator) {
		if c != nil {
			v.clock = c
		}
	}
}

// New creates a Validator with production defaults: UUID request IDs
// and the system clock.
func New(opts ...Option) *Validator {
	v := &Validator{
		ids:   UUIDGenerator{},
		clock: SystemClock(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// =============================================================================
// REQUEST SET
// =============================================================================

// RequestSet is the set of currently outstanding request IDs, supplied
// by the caller when validating responses. The validator never stores
// one; correlation state belongs to the caller.
type RequestSet map[string]struct{}

// NewRequestSet builds a set from the given IDs.
func NewRequestSet(ids ...string) RequestSet {
	s := make(RequestSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add records an outstanding request ID.
func (s RequestSet) Add(id string) {
	s[id] = struct{}{}
}

// Remove resolves an outstanding request ID.
func (s RequestSet) Remove(id string) {
	delete(s, id)
}

// Contains reports whether the ID is outstanding.
func (s RequestSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// =============================================================================
// DESCRIPTOR VALIDATION
// =============================================================================

// ValidateModelConfig checks a model descriptor. An output limit larger
// than the context window is surfaced as a warning, not a failure.
func (v *Validator) ValidateModelConfig(cfg model.ModelConfig) Result[model.ModelConfig] {
	var vs Violations

	if cfg.ID == "" {
		vs = append(vs, Violation{
			Kind: KindShape, Field: "model_id",
			Message: "model ID is required",
		})
	}
	if cfg.ParameterCount < 0 {
		vs = append(vs, Violation{
			Kind: KindRange, Field: "parameter_count",
			Message: fmt.Sprintf("must be non-negative, got %d", cfg.ParameterCount),
			Value:   cfg.ParameterCount,
		})
	}
	if cfg.ContextWindow <= 0 {
		vs = append(vs, Violation{
			Kind: KindRange, Field: "context_window",
			Message: fmt.Sprintf("must be positive, got %d", cfg.ContextWindow),
			Value:   cfg.ContextWindow,
		})
	}
	if cfg.MaxOutputTokens <= 0 {
		vs = append(vs, Violation{
			Kind: KindRange, Field: "max_output_tokens",
			Message: fmt.Sprintf("must be positive, got %d", cfg.MaxOutputTokens),
			Value:   cfg.MaxOutputTokens,
		})
	}
	if cfg.ContextWindow > 0 && cfg.MaxOutputTokens > cfg.ContextWindow {
		vs = append(vs, Violation{
			Kind: KindLimitExceedsContext, Field: "max_output_tokens",
			Message: fmt.Sprintf("exceeds context window (%d > %d)", cfg.MaxOutputTokens, cfg.ContextWindow),
			Value:   cfg.MaxOutputTokens,
		})
	}

	if vs.HasFatal() {
		return rejected[model.ModelConfig](vs.Fatal(), vs.Warnings())
	}
	return accepted(cfg.Clone(), vs.Warnings())
}

// ValidateGenerationConfig checks sampling parameters against their
// documented bounds. Out-of-range values are rejected, never clamped.
func (v *Validator) ValidateGenerationConfig(cfg model.GenerationConfig) Result[model.GenerationConfig] {
	vs := checkGeneration(cfg, "")

	if vs.HasFatal() {
		return rejected[model.GenerationConfig](vs.Fatal(), vs.Warnings())
	}
	return accepted(cfg.Clone(), vs.Warnings())
}

// ValidateTokenizerConfig checks a tokenizer descriptor: positive
// vocabulary and every special token inside [0, vocab_size).
func (v *Validator) ValidateTokenizerConfig(cfg model.TokenizerConfig) Result[model.TokenizerConfig] {
	var vs Violations

	if cfg.VocabSize <= 0 {
		vs = append(vs, Violation{
			Kind: KindRange, Field: "vocab_size",
			Message: fmt.Sprintf("must be positive, got %d", cfg.VocabSize),
			Value:   cfg.VocabSize,
		})
	} else {
		tokens := cfg.SpecialTokens()
		fields := make([]string, 0, len(tokens))
		for field := range tokens {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			id := tokens[field]
			if id == nil {
				continue
			}
			if *id < 0 || *id >= cfg.VocabSize {
				vs = append(vs, Violation{
					Kind: KindRange, Field: field,
					Message: fmt.Sprintf("must be in [0, %d), got %d", cfg.VocabSize, *id),
					Value:   *id,
				})
			}
		}
	}

	if vs.HasFatal() {
		return rejected[model.TokenizerConfig](vs.Fatal(), vs.Warnings())
	}
	return accepted(cfg.Clone(), vs.Warnings())
}

// =============================================================================
// CONVERSATIONAL VALIDATION
// =============================================================================

// ValidateMessage checks a single message. A message carrying both
// function calls and a function result is flagged as a warning since
// the combination is structurally legal but semantically contradictory.
func (v *Validator) ValidateMessage(msg chat.Message) Result[chat.Message] {
	vs := checkMessage(msg, "")

	if vs.HasFatal() {
		return rejected[chat.Message](vs.Fatal(), vs.Warnings())
	}
	return accepted(msg.Clone(), vs.Warnings())
}

// ValidateContext checks an entire conversation context: identity,
// timestamp ordering across the message sequence, and every message.
func (v *Validator) ValidateContext(ctx *chat.ConversationContext) Result[*chat.ConversationContext] {
	if ctx == nil {
		return rejected[*chat.ConversationContext](Violations{{
			Kind: KindShape, Field: "conversation_context",
			Message: "conversation context is required",
		}}, nil)
	}

	vs := checkContext(ctx, "")

	if vs.HasFatal() {
		return rejected[*chat.ConversationContext](vs.Fatal(), vs.Warnings())
	}
	return accepted(ctx.Clone(), vs.Warnings())
}

// AppendMessage validates msg and returns a copy of ctx with the
// message appended and LastMessageAt advanced, or the violations with
// ctx untouched. There is no intermediate state: rejection leaves the
// caller's context exactly as it was.
func (v *Validator) AppendMessage(ctx *chat.ConversationContext, msg chat.Message) Result[*chat.ConversationContext] {
	if ctx == nil {
		return rejected[*chat.ConversationContext](Violations{{
			Kind: KindShape, Field: "conversation_context",
			Message: "conversation context is required",
		}}, nil)
	}

	vs := checkMessage(msg, "message")

	if msg.Timestamp != nil && !ctx.CreatedAt.IsZero() && msg.Timestamp.Before(ctx.CreatedAt) {
		vs = append(vs, Violation{
			Kind: KindRange, Field: "message.timestamp",
			Message: fmt.Sprintf("must not precede created_at %s, got %s",
				ctx.CreatedAt.Format(time.RFC3339Nano),
				msg.Timestamp.Format(time.RFC3339Nano)),
			Value: *msg.Timestamp,
		})
	}
	if msg.Timestamp != nil && ctx.LastMessageAt != nil && msg.Timestamp.Before(*ctx.LastMessageAt) {
		vs = append(vs, Violation{
			Kind: KindRange, Field: "message.timestamp",
			Message: fmt.Sprintf("must not precede last message at %s, got %s",
				ctx.LastMessageAt.Format(time.RFC3339Nano),
				msg.Timestamp.Format(time.RFC3339Nano)),
			Value: *msg.Timestamp,
		})
	}

	if vs.HasFatal() {
		return rejected[*chat.ConversationContext](vs.Fatal(), vs.Warnings())
	}

	clone := ctx.Clone()
	if err := clone.AppendAt(msg.Clone(), v.clock.Now()); err != nil {
		return rejected[*chat.ConversationContext](Violations{{
			Kind: KindRange, Field: "message.timestamp",
			Message: err.Error(),
		}}, vs.Warnings())
	}
	return accepted(clone, vs.Warnings())
}

// =============================================================================
// ENVELOPE VALIDATION
// =============================================================================

// ValidateRequest checks and normalizes an inference request.
// Normalization assigns a generated RequestID only when one is absent
// and defaults CreatedAt from the clock; validating an already
// normalized request changes nothing.
func (v *Validator) ValidateRequest(req *exchange.InferenceRequest) Result[*exchange.InferenceRequest] {
	if req == nil {
		return rejected[*exchange.InferenceRequest](Violations{{
			Kind: KindShape, Field: "request",
			Message: "request is required",
		}}, nil)
	}

	var vs Violations

	if req.Model == "" {
		vs = append(vs, Violation{
			Kind: KindShape, Field: "model",
			Message: "model ID is required",
		})
	}

	if req.Retry != nil {
		if req.Retry.MaxRetries < 0 {
			vs = append(vs, Violation{
				Kind: KindRange, Field: "retry.max_retries",
				Message: fmt.Sprintf("must be non-negative, got %d", req.Retry.MaxRetries),
				Value:   req.Retry.MaxRetries,
			})
		}
		if req.Retry.RetryDelay < 0 {
			vs = append(vs, Violation{
				Kind: KindRange, Field: "retry.retry_delay",
				Message: fmt.Sprintf("must be non-negative, got %s", req.Retry.RetryDelay),
				Value:   req.Retry.RetryDelay,
			})
		}
	}

	if req.GenerationConfig != nil {
		vs = append(vs, checkGeneration(*req.GenerationConfig, "generation_config")...)
	}
	for i, msg := range req.Messages {
		vs = append(vs, checkMessage(msg, fmt.Sprintf("messages[%d]", i))...)
	}
	if req.ConversationContext != nil {
		vs = append(vs, checkContext(req.ConversationContext, "conversation_context")...)
	}

	// Both history sources populated: Messages wins, but disagreement on
	// the trailing role sequence is surfaced rather than silently resolved.
	if req.HasBothSources() {
		override := rolesOf(req.Messages)
		bound := req.ConversationContext.RoleSequence()
		if !trailingRolesAgree(override, bound) {
			vs = append(vs, Violation{
				Kind: KindAmbiguousSource, Field: "messages",
				Message: "messages and conversation_context disagree on the trailing role sequence; messages takes precedence",
			})
		}
	}

	if vs.HasFatal() {
		return rejected[*exchange.InferenceRequest](vs.Fatal(), vs.Warnings())
	}

	clone := req.Clone()
	if clone.RequestID == "" {
		id, err := v.ids.NewID()
		if err != nil || id == "" {
			return rejected[*exchange.InferenceRequest](Violations{{
				Kind: KindDependency, Field: "request_id",
				Message: fmt.Sprintf("ID generator failed: %v", err),
			}}, vs.Warnings())
		}
		clone.RequestID = id
	}
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = v.clock.Now()
	}

	return accepted(clone, vs.Warnings())
}

// ValidateResponse checks an inference response against the set of
// outstanding request IDs and the token accounting invariant. A nil
// outstanding set skips the correlation check (the caller supplies
// correlation state; this core stores none).
func (v *Validator) ValidateResponse(resp *exchange.InferenceResponse, outstanding RequestSet) Result[*exchange.InferenceResponse] {
	if resp == nil {
		return rejected[*exchange.InferenceResponse](Violations{{
			Kind: KindShape, Field: "response",
			Message: "response is required",
		}}, nil)
	}

	var vs Violations

	if resp.RequestID == "" {
		vs = append(vs, Violation{
			Kind: KindShape, Field: "request_id",
			Message: "request ID is required",
		})
	} else if outstanding != nil && !outstanding.Contains(resp.RequestID) {
		vs = append(vs, Violation{
			Kind: KindCorrelation, Field: "request_id",
			Message: fmt.Sprintf("no outstanding request with ID %q", resp.RequestID),
			Value:   resp.RequestID,
		})
	}

	vs = append(vs, checkTokenCount("usage.input_tokens", resp.Usage.InputTokens)...)
	vs = append(vs, checkTokenCount("usage.output_tokens", resp.Usage.OutputTokens)...)
	vs = append(vs, checkTokenCount("usage.total_tokens", resp.Usage.TotalTokens)...)

	if !resp.Usage.Consistent() {
		vs = append(vs, Violation{
			Kind: KindTokenAccounting, Field: "usage.total_tokens",
			Message: fmt.Sprintf("must equal input_tokens + output_tokens (%d + %d = %d), got %d",
				*resp.Usage.InputTokens, *resp.Usage.OutputTokens,
				*resp.Usage.InputTokens+*resp.Usage.OutputTokens,
				*resp.Usage.TotalTokens),
			Value: *resp.Usage.TotalTokens,
		})
	}

	if resp.LatencyMs != nil && *resp.LatencyMs < 0 {
		vs = append(vs, Violation{
			Kind: KindRange, Field: "latency_ms",
			Message: fmt.Sprintf("must be non-negative, got %g", *resp.LatencyMs),
			Value:   *resp.LatencyMs,
		})
	}

	if vs.HasFatal() {
		return rejected[*exchange.InferenceResponse](vs.Fatal(), vs.Warnings())
	}
	return accepted(resp.Clone(), vs.Warnings())
}

// =============================================================================
// SHARED CHECKS
// =============================================================================

// checkGeneration collects every bound violation in one pass.
func checkGeneration(cfg model.GenerationConfig, prefix string) Violations {
	var vs Violations

	checkFloatBounds(&vs, join(prefix, "temperature"), cfg.Temperature, model.TemperatureMin, model.TemperatureMax)
	checkFloatBounds(&vs, join(prefix, "top_p"), cfg.TopP, model.TopPMin, model.TopPMax)
	checkFloatBounds(&vs, join(prefix, "frequency_penalty"), cfg.FrequencyPenalty, model.PenaltyMin, model.PenaltyMax)
	checkFloatBounds(&vs, join(prefix, "presence_penalty"), cfg.PresencePenalty, model.PenaltyMin, model.PenaltyMax)

	if cfg.TopK != nil && *cfg.TopK <= 0 {
		vs = append(vs, Violation{
			Kind: KindRange, Field: join(prefix, "top_k"),
			Message: fmt.Sprintf("must be positive, got %d", *cfg.TopK),
			Value:   *cfg.TopK,
		})
	}
	if cfg.MaxTokens != nil && *cfg.MaxTokens <= 0 {
		vs = append(vs, Violation{
			Kind: KindRange, Field: join(prefix, "max_tokens"),
			Message: fmt.Sprintf("must be positive, got %d", *cfg.MaxTokens),
			Value:   *cfg.MaxTokens,
		})
	}
	if cfg.NumCompletions != nil && *cfg.NumCompletions < 1 {
		vs = append(vs, Violation{
			Kind: KindRange, Field: join(prefix, "num_completions"),
			Message: fmt.Sprintf("must be at least 1, got %d", *cfg.NumCompletions),
			Value:   *cfg.NumCompletions,
		})
	}

	return vs
}

func checkMessage(msg chat.Message, prefix string) Violations {
	var vs Violations

	if msg.Role == "" {
		vs = append(vs, Violation{
			Kind: KindShape, Field: join(prefix, "role"),
			Message: "role is required",
		})
	}
	for i, fc := range msg.FunctionCalls {
		if fc.Name == "" {
			vs = append(vs, Violation{
				Kind: KindShape, Field: join(prefix, fmt.Sprintf("function_calls[%d].name", i)),
				Message: "function name is required",
			})
		}
	}
	if msg.HasFunctionCalls() && msg.HasFunctionResult() {
		vs = append(vs, Violation{
			Kind: KindAmbiguousFunctionState, Field: join(prefix, "function_result"),
			Message: "message carries both function calls and a function result",
		})
	}

	return vs
}

func checkContext(ctx *chat.ConversationContext, prefix string) Violations {
	var vs Violations

	if ctx.ConversationID == "" {
		vs = append(vs, Violation{
			Kind: KindShape, Field: join(prefix, "conversation_id"),
			Message: "conversation ID is required",
		})
	}
	if ctx.LastMessageAt != nil && !ctx.CreatedAt.IsZero() && ctx.LastMessageAt.Before(ctx.CreatedAt) {
		vs = append(vs, Violation{
			Kind: KindRange, Field: join(prefix, "last_message_at"),
			Message: fmt.Sprintf("must not precede created_at %s, got %s",
				ctx.CreatedAt.Format(time.RFC3339Nano),
				ctx.LastMessageAt.Format(time.RFC3339Nano)),
			Value: *ctx.LastMessageAt,
		})
	}

	var prev *time.Time
	for i, msg := range ctx.Messages {
		vs = append(vs, checkMessage(msg, join(prefix, fmt.Sprintf("messages[%d]", i)))...)
		if msg.Timestamp == nil {
			continue
		}
		if prev != nil && msg.Timestamp.Before(*prev) {
			vs = append(vs, Violation{
				Kind: KindRange, Field: join(prefix, fmt.Sprintf("messages[%d].timestamp", i)),
				Message: fmt.Sprintf("must not precede previous message timestamp %s, got %s",
					prev.Format(time.RFC3339Nano),
					msg.Timestamp.Format(time.RFC3339Nano)),
				Value: *msg.Timestamp,
			})
		}
		prev = msg.Timestamp
	}

	return vs
}

func checkFloatBounds(vs *Violations, field string, p *float64, lo, hi float64) {
	if p == nil {
		return
	}
	if *p < lo || *p > hi {
		*vs = append(*vs, Violation{
			Kind: KindRange, Field: field,
			Message: fmt.Sprintf("must be in [%g, %g], got %g", lo, hi, *p),
			Value:   *p,
		})
	}
}

func checkTokenCount(field string, p *int) Violations {
	if p == nil || *p >= 0 {
		return nil
	}
	return Violations{{
		Kind: KindRange, Field: field,
		Message: fmt.Sprintf("must be non-negative, got %d", *p),
		Value:   *p,
	}}
}

func rolesOf(msgs []chat.Message) []chat.Role {
	roles := make([]chat.Role, len(msgs))
	for i, msg := range msgs {
		roles[i] = msg.Role
	}
	return roles
}

// trailingRolesAgree compares the overlapping suffix of two role
// sequences. Histories of different length agree as long as the shorter
// one is a suffix of the longer.
func trailingRolesAgree(a, b []chat.Role) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 1; i <= n; i++ {
		if a[len(a)-i] != b[len(b)-i] {
			return false
		}
	}
	return true
}

func join(prefix, field string) string {
	if prefix == "" {
		return field
	}
	return prefix + "." + field
}
