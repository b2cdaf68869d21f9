// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package validate enforces the cross-field invariants of the data
// contract before an entity crosses a boundary: sent to a provider,
// persisted, or folded into metrics.
//
// The contract is total: every Validate method returns either a
// normalized copy of its input or a non-empty list of violations, never
// both and never neither. Inputs are never mutated in place. All
// violations for an entity are collected in one pass so a caller can
// report every problem at once, and non-fatal findings travel
// separately as warnings.
//
// Out-of-range values are rejected, not clamped: the violation names
// the field, the offending value, and the documented bound, and the
// validator does not guess a corrected value.
//
// A Validator carries two injected services, an ID generator and a
// clock. Both have production defaults and are replaceable for
// deterministic testing. Beyond those, a Validator holds no state, so
// it is safe for concurrent use.
package validate
