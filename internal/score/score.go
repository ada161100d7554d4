// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package score turns per-attempt acceleration peaks into a recovery score.
//
// Two regression models are used:
//
//	SA (single attempt):      rs = exp(SACoefficient * sa_2axes)
//	UA (unsuccessful attempts): rs = UACoefficient * sumua^UAExponent
//
// where sa_2axes is the planar peak magnitude of the successful attempt and
// sumua is the sum of the 3-axis peak magnitudes of every failed attempt.
package score

import (
	"math"

	"github.com/relabs-tech/recovery_score/internal/features"
)

// Model holds the fitted regression coefficients.
type Model struct {
	SACoefficient float64
	UACoefficient float64
	UAExponent    float64
}

// DefaultModel returns the long-term regression fit.
func DefaultModel() Model {
	return Model{
		SACoefficient: 0.080714,
		UACoefficient: 7.0312,
		UAExponent:    0.278,
	}
}

// Kind names the model that produced a score.
type Kind string

const (
	KindSA Kind = "SA"
	KindUA Kind = "UA"
)

// Score is the outcome of Calculate. SumUA is nil when the SA model was
// used, which keeps "no failed attempts" apart from "sumua is zero".
type Score struct {
	Kind    Kind
	Value   float64
	SA2Axes float64
	SumUA   *float64
}

// SA returns the single-attempt score.
func (m Model) SA(sa2Axes float64) float64 {
	return math.Exp(m.SACoefficient * sa2Axes)
}

// UA returns the unsuccessful-attempts score.
func (m Model) UA(sumua float64) float64 {
	return m.UACoefficient * math.Pow(sumua, m.UAExponent)
}

// SA2Axes is the planar peak magnitude of the last (successful) attempt.
func SA2Axes(peaks []features.AxisPeaks) float64 {
	if len(peaks) == 0 {
		return 0
	}
	return peaks[len(peaks)-1].Planar()
}

// SumUA sums the 3-axis peak magnitude of every attempt except the last.
func SumUA(peaks []features.AxisPeaks) float64 {
	var sum float64
	for i := 0; i < len(peaks)-1; i++ {
		sum += peaks[i].Magnitude()
	}
	return sum
}

// Calculate picks the model from the failed attempt count and scores peaks.
func (m Model) Calculate(peaks []features.AxisPeaks, failedAttempts int) Score {
	sa := SA2Axes(peaks)
	if failedAttempts >= 1 {
		sumua := SumUA(peaks)
		return Score{
			Kind:    KindUA,
			Value:   m.UA(sumua),
			SA2Axes: sa,
			SumUA:   &sumua,
		}
	}
	return Score{
		Kind:    KindSA,
		Value:   m.SA(sa),
		SA2Axes: sa,
	}
}
