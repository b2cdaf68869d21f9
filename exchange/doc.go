// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package exchange defines the request/response envelopes exchanged
// with a provider adapter.
//
// An exchange is one InferenceRequest paired with one
// InferenceResponse, correlated by RequestID. The envelopes are plain
// value objects: the transport that executes them, the retry engine
// that re-issues them, and the billing that prices them all live
// outside this module and only pass these values around.
//
// # Key Types
//
//   - InferenceRequest: one unit of inference work
//   - InferenceResponse: the correlated result, possibly failed
//   - Usage: token accounting for a completed exchange
//   - StopReason: why generation ended
package exchange
