// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package pipeline

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// JerkCalibration summarizes the jerk signal for recalibrating the jerk
// threshold by hand.
type JerkCalibration struct {
	Mean      float64
	Std       float64
	Threshold float64 // max(Mean + factor*Std, percentile)
}

// JerkStats computes the calibration values. An empty jerk yields zeros.
func JerkStats(jerk []float64, factor, percentile float64) JerkCalibration {
	if len(jerk) == 0 {
		return JerkCalibration{}
	}
	mean, std := stat.PopMeanStdDev(jerk, nil)
	return JerkCalibration{
		Mean:      mean,
		Std:       std,
		Threshold: math.Max(mean+factor*std, Percentile(jerk, percentile)),
	}
}

// Percentile returns the p-th percentile (0..100) of data, interpolating
// linearly between the two closest ranks.
func Percentile(data []float64, p float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo < 0 {
		return sorted[0]
	}
	if hi >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
