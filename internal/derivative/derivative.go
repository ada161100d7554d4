// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package derivative estimates jerk and snap from sampled acceleration.
package derivative

import (
	"errors"
	"fmt"
)

var (
	// ErrNonMonotonicTime is returned when a time delta is zero or negative.
	ErrNonMonotonicTime = errors.New("timestamps must be strictly increasing")

	// ErrLengthInvariant signals an internal bug: jerk must be one longer than snap.
	ErrLengthInvariant = errors.New("jerk and snap lengths are inconsistent")
)

// Series holds the first (jerk) and second (snap) time-derivatives of
// acceleration. len(Jerk) == len(Snap)+1 unless both are empty.
type Series struct {
	Jerk []float64
	Snap []float64
}

// Compute derives jerk and snap from acceleration values sampled at the
// given timestamps. Snap divides by the second time delta so that its
// indices line up with the one-shorter jerk sequence.
func Compute(timestamps, acc []float64) (Series, error) {
	if len(timestamps) != len(acc) {
		return Series{}, fmt.Errorf("derivative: %d timestamps for %d values", len(timestamps), len(acc))
	}
	if len(acc) < 2 {
		return Series{Jerk: []float64{}, Snap: []float64{}}, nil
	}

	dt := make([]float64, len(timestamps)-1)
	for i := range dt {
		dt[i] = timestamps[i+1] - timestamps[i]
		if dt[i] <= 0 {
			return Series{}, fmt.Errorf("derivative: dt[%d] = %g: %w", i, dt[i], ErrNonMonotonicTime)
		}
	}

	jerk := make([]float64, len(dt))
	for i := range jerk {
		jerk[i] = (acc[i+1] - acc[i]) / dt[i]
	}

	snap := make([]float64, len(jerk)-1)
	for i := range snap {
		snap[i] = (jerk[i+1] - jerk[i]) / dt[i+1]
	}

	if len(jerk) != len(snap)+1 {
		return Series{}, fmt.Errorf("derivative: jerk=%d snap=%d: %w", len(jerk), len(snap), ErrLengthInvariant)
	}
	return Series{Jerk: jerk, Snap: snap}, nil
}
