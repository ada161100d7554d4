// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package features reduces each detected region to its per-axis peak acceleration.
package features

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/relabs-tech/recovery_score/internal/accel"
	"github.com/relabs-tech/recovery_score/internal/roi"
)

// AxisPeaks holds the maximum absolute acceleration per axis over one region.
type AxisPeaks struct {
	X float64
	Y float64
	Z float64
}

// Extract maps each region back onto the truncated series and returns its
// per-axis peaks. Output order matches region order, so the last entry
// belongs to the successful attempt. Regions that fall outside the series
// yield zero peaks.
func Extract(s accel.Series, regions []roi.Region, windowSize, stepSize int) []AxisPeaks {
	peaks := make([]AxisPeaks, len(regions))
	for i, r := range regions {
		start, end := r.Span(windowSize, stepSize)
		peaks[i] = Peaks(s.Slice(start, end))
	}
	return peaks
}

// Peaks returns max|Acc_X|, max|Acc_Y| and max|Acc_Z| over s.
func Peaks(s accel.Series) AxisPeaks {
	return AxisPeaks{
		X: maxAbs(s.Column(accel.AxisX)),
		Y: maxAbs(s.Column(accel.AxisY)),
		Z: maxAbs(s.Column(accel.AxisZ)),
	}
}

// Planar is the magnitude over the X and Y axes.
func (p AxisPeaks) Planar() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Magnitude is the magnitude over all three axes.
func (p AxisPeaks) Magnitude() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

func maxAbs(col []float64) float64 {
	if len(col) == 0 {
		return 0
	}
	for i, v := range col {
		col[i] = math.Abs(v)
	}
	return floats.Max(col)
}
