// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package pipeline chains the analysis stages for one recording:
// conditioning, derivatives, region detection, peak extraction and
// scoring. Every stage receives its settings explicitly through Params.
package pipeline

import (
	"fmt"

	"github.com/relabs-tech/recovery_score/internal/accel"
	"github.com/relabs-tech/recovery_score/internal/conditioning"
	"github.com/relabs-tech/recovery_score/internal/derivative"
	"github.com/relabs-tech/recovery_score/internal/features"
	"github.com/relabs-tech/recovery_score/internal/roi"
	"github.com/relabs-tech/recovery_score/internal/score"
)

// Params is the immutable configuration of a run.
type Params struct {
	Conditioning conditioning.Params

	// Jerk calibration (diagnostic only, never gates detection)
	JerkThreshold  float64 // configured value, recorded as-is
	JerkFactor     float64
	JerkPercentile float64

	// Region detection
	WindowSize  int
	StepSize    int
	SDThreshold float64

	Model score.Model
}

// Result carries the recovery score and every scalar used to produce it.
type Result struct {
	JerkThreshold    float64
	MeanJerk         float64
	StdJerk          float64
	JerkThresholdCal float64
	SDThreshold      float64
	FailedAttempts   int
	Regions          int
	Score            score.Score
}

// Output is everything a run produced. The intermediate series are kept for
// plotting; nothing downstream feeds back into an earlier stage.
type Output struct {
	Conditioned conditioning.Result
	Derivatives derivative.Series
	WindowSD    []float64
	Regions     []roi.Region
	Peaks       []features.AxisPeaks
	Result      Result
}

// Run executes the full analysis over raw. The only fatal condition is a
// non-increasing timestamp; an empty recording flows through and scores
// the single zero region.
func Run(raw accel.Series, p Params) (Output, error) {
	cond := conditioning.Condition(raw, p.Conditioning)

	avg := cond.MovingAverage
	deriv, err := derivative.Compute(avg.Timestamps(), avg.Column(accel.AxisZ))
	if err != nil {
		return Output{}, fmt.Errorf("derivatives: %w", err)
	}

	jerk := JerkStats(deriv.Jerk, p.JerkFactor, p.JerkPercentile)

	sd := roi.WindowSD(deriv.Jerk, p.WindowSize, p.StepSize)
	regions := roi.Detect(sd, p.SDThreshold)
	failed := roi.FailedAttempts(regions)

	peaks := features.Extract(cond.Truncated, regions, p.WindowSize, p.StepSize)
	sc := p.Model.Calculate(peaks, failed)

	return Output{
		Conditioned: cond,
		Derivatives: deriv,
		WindowSD:    sd,
		Regions:     regions,
		Peaks:       peaks,
		Result: Result{
			JerkThreshold:    p.JerkThreshold,
			MeanJerk:         jerk.Mean,
			StdJerk:          jerk.Std,
			JerkThresholdCal: jerk.Threshold,
			SDThreshold:      p.SDThreshold,
			FailedAttempts:   failed,
			Regions:          len(regions),
			Score:            sc,
		},
	}, nil
}
