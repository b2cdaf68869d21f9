// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package validate enforces the cross-field invariants of the data
// contract.
package validate

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// INJECTED SERVICES
// =============================================================================

// IDGenerator supplies globally-unique request IDs on demand.
// Replaceable for deterministic testing.
type IDGenerator interface {
	NewID() (string, error)
}

// Clock supplies the current time for timestamp defaulting.
// Replaceable for deterministic testing.
type Clock interface {
	Now() time.Time
}

// =============================================================================
// PRODUCTION DEFAULTS
// =============================================================================

// UUIDGenerator generates request IDs backed by random UUIDs.
type UUIDGenerator struct{}

// NewID returns a new request ID.
func (UUIDGenerator) NewID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return "req_" + id.String(), nil
}

// systemClock reads the wall clock.
type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock {
	return systemClock{}
}
