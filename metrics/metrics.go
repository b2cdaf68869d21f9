// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package metrics folds completed exchanges into per-model rollups.
package metrics

import (
	"sync"
	"time"

	"github.com/jeranaias/llmcore/exchange"
)

// =============================================================================
// MODEL METRICS
// =============================================================================

// ModelMetrics is a rollup of completed exchanges for one model.
//
// SuccessRate is absent (nil) when no requests have been folded; it is
// never NaN. Timestamp records when the most recent exchange was
// folded, not the largest timestamp among the data.
type ModelMetrics struct {
	ModelID string `json:"model_id"`

	// Counts
	TotalRequests int64 `json:"total_requests"`
	ErrorCount    int64 `json:"error_count"`

	// Token totals
	TotalInputTokens  int64 `json:"total_input_tokens"`
	TotalOutputTokens int64 `json:"total_output_tokens"`

	// Latency, milliseconds
	MinLatencyMs     float64 `json:"min_latency_ms"`
	MaxLatencyMs     float64 `json:"max_latency_ms"`
	AverageLatencyMs float64 `json:"average_latency_ms"`

	// Derived
	SuccessRate *float64 `json:"success_rate,omitempty"`

	// Timestamp of the most recent fold
	Timestamp time.Time `json:"timestamp"`
}

// =============================================================================
// ACCUMULATOR
// =============================================================================

// Accumulator folds a stream of completed exchanges into running
// totals. Safe for concurrent use: each Record call is a single
// critical section, so the min/max/sum group updates atomically as one.
type Accumulator struct {
	mu sync.Mutex

	modelID string
	now     func() time.Time

	// Running state
	totalRequests int64
	errorCount    int64
	inputTokens   int64
	outputTokens  int64

	latencySum float64
	latencyMin float64
	latencyMax float64
	latencyN   int64

	lastFold time.Time
}

// Option configures an Accumulator.
type Option func(*Accumulator)

// WithClock replaces the wall clock, for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(a *Accumulator) {
		if now != nil {
			a.now = now
		}
	}
}

// NewAccumulator creates an accumulator for the given model.
func NewAccumulator(modelID string, opts ...Option) *Accumulator {
	a := &Accumulator{
		modelID: modelID,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Record folds one completed exchange into the running totals.
// latencyMs is the end-to-end latency observed by the caller; pass a
// negative value when latency was not measured.
func (a *Accumulator) Record(resp *exchange.InferenceResponse, latencyMs float64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.totalRequests++
	if resp.Failed() {
		a.errorCount++
	}

	if resp.Usage.InputTokens != nil {
		a.inputTokens += int64(*resp.Usage.InputTokens)
	}
	if resp.Usage.OutputTokens != nil {
		a.outputTokens += int64(*resp.Usage.OutputTokens)
	}

	if latencyMs >= 0 {
		if a.latencyN == 0 || latencyMs < a.latencyMin {
			a.latencyMin = latencyMs
		}
		if a.latencyN == 0 || latencyMs > a.latencyMax {
			a.latencyMax = latencyMs
		}
		a.latencySum += latencyMs
		a.latencyN++
	}

	a.lastFold = a.now()
}

// Snapshot derives a ModelMetrics from the current running state.
func (a *Accumulator) Snapshot() ModelMetrics {
	a.mu.Lock()
	defer a.mu.Unlock()

	m := ModelMetrics{
		ModelID:           a.modelID,
		TotalRequests:     a.totalRequests,
		ErrorCount:        a.errorCount,
		TotalInputTokens:  a.inputTokens,
		TotalOutputTokens: a.outputTokens,
		Timestamp:         a.lastFold,
	}

	if a.latencyN > 0 {
		m.MinLatencyMs = a.latencyMin
		m.MaxLatencyMs = a.latencyMax
		m.AverageLatencyMs = a.latencySum / float64(a.latencyN)
	}

	// Guard the zero-request case: SuccessRate stays absent, never NaN.
	if a.totalRequests > 0 {
		rate := float64(a.totalRequests-a.errorCount) / float64(a.totalRequests)
		m.SuccessRate = &rate
	}

	return m
}

// Reset clears the running state, keeping the model ID and clock.
func (a *Accumulator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.totalRequests = 0
	a.errorCount = 0
	a.inputTokens = 0
	a.outputTokens = 0
	a.latencySum = 0
	a.latencyMin = 0
	a.latencyMax = 0
	a.latencyN = 0
	a.lastFold = time.Time{}
}

// =============================================================================
// BATCH COMPUTATION
// =============================================================================

// Compute folds a batch of completed exchanges in one pass. The result
// equals streaming the same exchanges through an Accumulator in any
// order, except for Timestamp, which tracks fold time.
//
// latencies must be parallel to responses; entries for unmeasured
// exchanges are negative.
func Compute(modelID string, responses []*exchange.InferenceResponse, latencies []float64, opts ...Option) ModelMetrics {
	a := NewAccumulator(modelID, opts...)
	for i, resp := range responses {
		latency := -1.0
		if i < len(latencies) {
			latency = latencies[i]
		}
		a.Record(resp, latency)
	}
	return a.Snapshot()
}
