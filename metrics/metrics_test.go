// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package metrics folds completed exchanges into per-model rollups.
package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/llmcore/exchange"
	"github.com/jeranaias/llmcore/model"
)

func response(input, output int, failed bool) *exchange.InferenceResponse {
	resp := &exchange.InferenceResponse{
		RequestID: "r",
		Usage: exchange.Usage{
			InputTokens:  model.Int(input),
			OutputTokens: model.Int(output),
			TotalTokens:  model.Int(input + output),
		},
	}
	if failed {
		resp.Error = "provider unavailable"
	}
	return resp
}

// fixedClock is a deterministic clock that advances one second per read.
type fixedClock struct {
	t time.Time
}

func (c *fixedClock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

// =============================================================================
// ACCUMULATOR TESTS
// =============================================================================

func TestAccumulator_Snapshot(t *testing.T) {
	a := NewAccumulator("sonnet")

	a.Record(response(100, 50, false), 200)
	a.Record(response(30, 20, false), 100)
	a.Record(response(10, 0, true), 800)

	m := a.Snapshot()
	assert.Equal(t, "sonnet", m.ModelID)
	assert.Equal(t, int64(3), m.TotalRequests)
	assert.Equal(t, int64(1), m.ErrorCount)
	assert.Equal(t, int64(140), m.TotalInputTokens)
	assert.Equal(t, int64(70), m.TotalOutputTokens)
	assert.Equal(t, 100.0, m.MinLatencyMs)
	assert.Equal(t, 800.0, m.MaxLatencyMs)
	assert.InDelta(t, (200.0+100.0+800.0)/3, m.AverageLatencyMs, 1e-9)

	require.NotNil(t, m.SuccessRate)
	assert.InDelta(t, 2.0/3.0, *m.SuccessRate, 1e-9)

	// min <= avg <= max
	assert.LessOrEqual(t, m.MinLatencyMs, m.AverageLatencyMs)
	assert.LessOrEqual(t, m.AverageLatencyMs, m.MaxLatencyMs)
}

func TestAccumulator_ZeroRequests(t *testing.T) {
	m := NewAccumulator("sonnet").Snapshot()

	// No divide-by-zero, no NaN: the rate is simply absent
	assert.Nil(t, m.SuccessRate)
	assert.Equal(t, int64(0), m.TotalRequests)
	assert.Equal(t, 0.0, m.AverageLatencyMs)
}

func TestAccumulator_OrderIndependence(t *testing.T) {
	responses := []*exchange.InferenceResponse{
		response(100, 50, false),
		response(30, 20, true),
		response(10, 5, false),
	}
	latencies := []float64{200, 100, 800}

	forward := Compute("m", responses, latencies)

	shuffledResponses := []*exchange.InferenceResponse{responses[2], responses[0], responses[1]}
	shuffledLatencies := []float64{latencies[2], latencies[0], latencies[1]}
	shuffled := Compute("m", shuffledResponses, shuffledLatencies)

	assert.Equal(t, forward.TotalRequests, shuffled.TotalRequests)
	assert.Equal(t, forward.ErrorCount, shuffled.ErrorCount)
	assert.Equal(t, forward.TotalInputTokens, shuffled.TotalInputTokens)
	assert.Equal(t, forward.TotalOutputTokens, shuffled.TotalOutputTokens)
	assert.Equal(t, forward.MinLatencyMs, shuffled.MinLatencyMs)
	assert.Equal(t, forward.MaxLatencyMs, shuffled.MaxLatencyMs)
	assert.InDelta(t, forward.AverageLatencyMs, shuffled.AverageLatencyMs, 1e-9)
}

func TestAccumulator_TimestampTracksFoldTime(t *testing.T) {
	clock := &fixedClock{t: time.Unix(1000, 0)}
	a := NewAccumulator("m", WithClock(clock.now))

	a.Record(response(1, 1, false), 10)
	first := a.Snapshot().Timestamp

	a.Record(response(1, 1, false), 10)
	second := a.Snapshot().Timestamp

	assert.True(t, second.After(first), "timestamp should advance with each fold")
}

func TestAccumulator_UnmeasuredLatency(t *testing.T) {
	a := NewAccumulator("m")
	a.Record(response(1, 1, false), -1) // latency not measured
	a.Record(response(1, 1, false), 50)

	m := a.Snapshot()
	assert.Equal(t, int64(2), m.TotalRequests)
	assert.Equal(t, 50.0, m.MinLatencyMs, "unmeasured latency should not pollute min")
	assert.Equal(t, 50.0, m.MaxLatencyMs)
}

func TestAccumulator_PartialUsage(t *testing.T) {
	a := NewAccumulator("m")
	a.Record(&exchange.InferenceResponse{RequestID: "r"}, 10) // no usage at all

	m := a.Snapshot()
	assert.Equal(t, int64(1), m.TotalRequests)
	assert.Equal(t, int64(0), m.TotalInputTokens)
}

func TestAccumulator_Concurrent(t *testing.T) {
	a := NewAccumulator("m")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.Record(response(10, 5, false), 100)
		}()
	}
	wg.Wait()

	m := a.Snapshot()
	assert.Equal(t, int64(50), m.TotalRequests)
	assert.Equal(t, int64(500), m.TotalInputTokens)
	assert.Equal(t, int64(250), m.TotalOutputTokens)
}

func TestAccumulator_Reset(t *testing.T) {
	a := NewAccumulator("m")
	a.Record(response(10, 5, false), 100)
	a.Reset()

	m := a.Snapshot()
	assert.Equal(t, int64(0), m.TotalRequests)
	assert.Nil(t, m.SuccessRate)
}

// =============================================================================
// BATCH TESTS
// =============================================================================

func TestCompute_MatchesStreaming(t *testing.T) {
	responses := []*exchange.InferenceResponse{
		response(10, 5, false),
		response(20, 10, true),
	}
	latencies := []float64{30, 60}

	batch := Compute("m", responses, latencies)

	a := NewAccumulator("m")
	for i, resp := range responses {
		a.Record(resp, latencies[i])
	}
	streamed := a.Snapshot()

	assert.Equal(t, streamed.TotalRequests, batch.TotalRequests)
	assert.Equal(t, streamed.ErrorCount, batch.ErrorCount)
	assert.Equal(t, streamed.TotalInputTokens, batch.TotalInputTokens)
	assert.Equal(t, streamed.MinLatencyMs, batch.MinLatencyMs)
	assert.Equal(t, streamed.MaxLatencyMs, batch.MaxLatencyMs)
}
