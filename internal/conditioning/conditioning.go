// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package conditioning truncates a raw recording to the span after the
// animal first reaches sternal recumbency and smooths each axis.
package conditioning

import (
	"gonum.org/v1/gonum/floats"

	"github.com/relabs-tech/recovery_score/internal/accel"
)

// KalmanParams configures the scalar constant-model Kalman filter.
type KalmanParams struct {
	Q  float64 // process variance
	R  float64 // measurement variance
	P0 float64 // initial error covariance
}

// Params holds the conditioning settings.
type Params struct {
	TargetValue         float64 // Acc_Z level that marks sternal recumbency
	MovingAverageWindow int
	Kalman              KalmanParams
}

// Result is the output of Condition. MovingAverage feeds the derivative
// step; Kalman is a diagnostic view only.
type Result struct {
	Truncated     accel.Series
	MovingAverage accel.Series
	Kalman        accel.Series
	Found         bool // false when Acc_Z never exceeded the target value
}

// Condition runs truncation followed by both smoothing passes.
func Condition(raw accel.Series, p Params) Result {
	truncated, found := Truncate(raw, p.TargetValue)
	return Result{
		Truncated:     truncated,
		MovingAverage: SmoothMovingAverage(truncated, p.MovingAverageWindow),
		Kalman:        SmoothKalman(truncated, p.Kalman),
		Found:         found,
	}
}

// Truncate drops every sample before the first one whose Acc_Z exceeds
// target. When no sample does, the series is returned unchanged and found
// is false.
func Truncate(s accel.Series, target float64) (out accel.Series, found bool) {
	for i, v := range s {
		if v.AccZ > target {
			return s.Slice(i, len(s)), true
		}
	}
	return s.Slice(0, len(s)), false
}

// MovingAverage replaces each value with the mean of itself and up to
// window-1 preceding values. The first values use a shorter window.
func MovingAverage(data []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}
	out := make([]float64, len(data))
	for i := range data {
		lo := i - window + 1
		if lo < 0 {
			lo = 0
		}
		w := data[lo : i+1]
		out[i] = floats.Sum(w) / float64(len(w))
	}
	return out
}

// Kalman runs a 1-D Kalman filter with a constant state model over data.
func Kalman(data []float64, p KalmanParams) []float64 {
	xhat := make([]float64, len(data))
	if len(data) == 0 {
		return xhat
	}

	xhat[0] = data[0]
	P := p.P0
	for k := 1; k < len(data); k++ {
		// time update
		xminus := xhat[k-1]
		Pminus := P + p.Q

		// measurement update
		K := Pminus / (Pminus + p.R)
		xhat[k] = xminus + K*(data[k]-xminus)
		P = (1 - K) * Pminus
	}
	return xhat
}

// SmoothMovingAverage applies MovingAverage to each axis independently.
func SmoothMovingAverage(s accel.Series, window int) accel.Series {
	return perAxis(s, func(col []float64) []float64 {
		return MovingAverage(col, window)
	})
}

// SmoothKalman applies Kalman to each axis independently.
func SmoothKalman(s accel.Series, p KalmanParams) accel.Series {
	return perAxis(s, func(col []float64) []float64 {
		return Kalman(col, p)
	})
}

func perAxis(s accel.Series, f func([]float64) []float64) accel.Series {
	var cols [3][]float64
	for i, a := range accel.Axes {
		cols[i] = f(s.Column(a))
	}
	return s.WithAxes(cols[0], cols[1], cols[2])
}
