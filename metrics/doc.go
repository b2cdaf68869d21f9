// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package metrics folds completed exchanges into per-model rollups.
//
// ModelMetrics is a derived, read-mostly snapshot; callers do not
// hand-construct it in normal operation. The Accumulator maintains
// running sums and min/max without rescanning history, and a full
// Record call is one critical section so concurrent producers can share
// a single accumulator safely.
package metrics
