// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package validate enforces the cross-field invariants of the data
// contract.
package validate

import (
	"fmt"
	"strings"
)

// =============================================================================
// VIOLATION KINDS
// =============================================================================

// Kind classifies a validation finding.
type Kind string

const (
	// Fatal kinds
	KindRange           Kind = "range_violation"
	KindShape           Kind = "shape_violation"
	KindCorrelation     Kind = "correlation_error"
	KindTokenAccounting Kind = "token_accounting_error"
	KindDependency      Kind = "dependency_failure"

	// Warning kinds (non-fatal)
	KindAmbiguousSource        Kind = "ambiguous_source"
	KindAmbiguousFunctionState Kind = "ambiguous_function_state"
	KindLimitExceedsContext    Kind = "limit_exceeds_context"
)

// Fatal returns true if findings of this kind reject the entity.
// Warning kinds accompany a normalized value instead.
func (k Kind) Fatal() bool {
	switch k {
	case KindAmbiguousSource, KindAmbiguousFunctionState, KindLimitExceedsContext:
		return false
	}
	return true
}

// =============================================================================
// VIOLATION TYPE
// =============================================================================

// Violation is one validation finding: the kind, the field it names,
// a human-readable message, and the offending value when there is one.
type Violation struct {
	Kind    Kind   `json:"kind"`
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

func (v Violation) Error() string {
	if v.Field == "" {
		return fmt.Sprintf("%s: %s", v.Kind, v.Message)
	}
	return fmt.Sprintf("%s: %s: %s", v.Kind, v.Field, v.Message)
}

// Violations is a collection of validation findings.
type Violations []Violation

func (vs Violations) Error() string {
	if len(vs) == 0 {
		return "no violations"
	}
	msgs := make([]string, len(vs))
	for i, v := range vs {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "; ")
}

// HasFatal returns true if any finding is fatal.
func (vs Violations) HasFatal() bool {
	for _, v := range vs {
		if v.Kind.Fatal() {
			return true
		}
	}
	return false
}

// Fatal returns only the fatal findings.
func (vs Violations) Fatal() Violations {
	var out Violations
	for _, v := range vs {
		if v.Kind.Fatal() {
			out = append(out, v)
		}
	}
	return out
}

// Warnings returns only the non-fatal findings.
func (vs Violations) Warnings() Violations {
	var out Violations
	for _, v := range vs {
		if !v.Kind.Fatal() {
			out = append(out, v)
		}
	}
	return out
}

// ByKind returns the findings of one kind.
func (vs Violations) ByKind(k Kind) Violations {
	var out Violations
	for _, v := range vs {
		if v.Kind == k {
			out = append(out, v)
		}
	}
	return out
}

// Fields returns the field names of all findings, in order.
func (vs Violations) Fields() []string {
	fields := make([]string, len(vs))
	for i, v := range vs {
		fields[i] = v.Field
	}
	return fields
}

// =============================================================================
// RESULT TYPE
// =============================================================================

// Result is the outcome of validating one entity. Exactly one of the
// two states holds: Ok() with a normalized Value (warnings allowed), or
// a non-empty Violations list with a zero Value.
type Result[T any] struct {
	Value      T
	Violations Violations
	Warnings   Violations
}

// Ok returns true when the entity was admitted.
func (r Result[T]) Ok() bool {
	return len(r.Violations) == 0
}

// Err returns the violations as an error, or nil when the entity was
// admitted.
func (r Result[T]) Err() error {
	if len(r.Violations) == 0 {
		return nil
	}
	return r.Violations
}

// accepted builds a successful result carrying value and any warnings.
func accepted[T any](value T, warnings Violations) Result[T] {
	return Result[T]{Value: value, Warnings: warnings}
}

// rejected builds a failed result: the value is absent (zero).
func rejected[T any](fatal, warnings Violations) Result[T] {
	return Result[T]{Violations: fatal, Warnings: warnings}
}
