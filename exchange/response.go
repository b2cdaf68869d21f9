// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package exchange defines the request/response envelopes exchanged
// with a provider adapter.
package exchange

import "time"

// =============================================================================
// STOP REASON
// =============================================================================

// StopReason describes why generation ended.
//
// The known values cover the common cases; any other non-empty string
// is a valid provider-specific extension.
type StopReason string

const (
	StopReasonStop          StopReason = "stop"
	StopReasonLength        StopReason = "length"
	StopReasonFunctionCall  StopReason = "function_call"
	StopReasonContentFilter StopReason = "content_filter"
	StopReasonError         StopReason = "error"
)

// String returns the string representation of the stop reason.
func (s StopReason) String() string {
	return string(s)
}

// Known returns true if the reason is one of the documented values.
func (s StopReason) Known() bool {
	switch s {
	case StopReasonStop, StopReasonLength, StopReasonFunctionCall,
		StopReasonContentFilter, StopReasonError:
		return true
	}
	return false
}

// =============================================================================
// USAGE
// =============================================================================

// Usage holds the token accounting for one exchange. Fields are
// pointers because a provider may omit any of them; an absent operand
// exempts the sum invariant rather than failing it.
type Usage struct {
	InputTokens  *int `json:"input_tokens,omitempty"`
	OutputTokens *int `json:"output_tokens,omitempty"`
	TotalTokens  *int `json:"total_tokens,omitempty"`
}

// Consistent reports whether TotalTokens equals InputTokens plus
// OutputTokens. Returns true when any operand needed for the check is
// absent.
func (u Usage) Consistent() bool {
	if u.InputTokens == nil || u.OutputTokens == nil || u.TotalTokens == nil {
		return true
	}
	return *u.TotalTokens == *u.InputTokens+*u.OutputTokens
}

// Derived returns the total token count, deriving it from the operands
// when TotalTokens is absent. Returns false when nothing is known.
func (u Usage) Derived() (int, bool) {
	if u.TotalTokens != nil {
		return *u.TotalTokens, true
	}
	if u.InputTokens != nil && u.OutputTokens != nil {
		return *u.InputTokens + *u.OutputTokens, true
	}
	return 0, false
}

// Clone returns a copy with its own pointers.
func (u Usage) Clone() Usage {
	return Usage{
		InputTokens:  copyInt(u.InputTokens),
		OutputTokens: copyInt(u.OutputTokens),
		TotalTokens:  copyInt(u.TotalTokens),
	}
}

// =============================================================================
// INFERENCE RESPONSE
// =============================================================================

// Alternative is one complete alternative completion. Order among
// alternatives is the provider-assigned rank, best first by convention.
type Alternative struct {
	Index      int        `json:"index"`
	Content    string     `json:"content"`
	StopReason StopReason `json:"stop_reason,omitempty"`
}

// InferenceResponse is the result of one exchange, correlated 1:1 with
// a prior InferenceRequest by RequestID.
//
// Error and Content are not structurally exclusive, but a non-empty
// Error marks the exchange as failed: content and usage then describe
// partial or truncated work at best.
type InferenceResponse struct {
	// Correlation
	RequestID string    `json:"request_id"`
	Model     string    `json:"model,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`

	// Result
	Content      string        `json:"content,omitempty"`
	StopReason   StopReason    `json:"stop_reason,omitempty"`
	Alternatives []Alternative `json:"alternatives,omitempty"`

	// Accounting
	Usage     Usage    `json:"usage,omitempty"`
	LatencyMs *float64 `json:"latency_ms,omitempty"`

	// Failure. Non-empty means the exchange failed.
	Error string `json:"error,omitempty"`
}

// Failed returns true if the response represents a failed exchange.
func (r *InferenceResponse) Failed() bool {
	return r.Error != ""
}

// BestAlternative returns the top-ranked alternative completion, or the
// primary content when no alternatives are present.
func (r *InferenceResponse) BestAlternative() string {
	if len(r.Alternatives) > 0 {
		return r.Alternatives[0].Content
	}
	return r.Content
}

// Clone returns a deep copy of the response.
func (r *InferenceResponse) Clone() *InferenceResponse {
	clone := *r
	clone.Usage = r.Usage.Clone()
	if r.LatencyMs != nil {
		v := *r.LatencyMs
		clone.LatencyMs = &v
	}
	if r.Alternatives != nil {
		clone.Alternatives = append([]Alternative(nil), r.Alternatives...)
	}
	return &clone
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
