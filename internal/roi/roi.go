// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package roi finds the regions of a jerk signal where the animal is
// attempting to stand. A region is a run of adjacent scan windows whose
// standard deviation exceeds twice the configured threshold.
package roi

import (
	"gonum.org/v1/gonum/stat"
)

// Region is one detected attempt. WindowIndex refers to the scan window,
// not to a sample; use Span to map it back to sample indices.
type Region struct {
	WindowIndex int
	Peak        float64
}

// Span returns the sample range [start, end) covered by the region's
// window. end is not clamped to any series length.
func (r Region) Span(windowSize, stepSize int) (start, end int) {
	start = r.WindowIndex * stepSize
	return start, start + windowSize
}

// WindowSD computes the population standard deviation of each full window
// of data starting at 0, step, 2*step, ...
func WindowSD(data []float64, windowSize, stepSize int) []float64 {
	if windowSize < 1 || stepSize < 1 {
		return []float64{}
	}
	sd := []float64{}
	for i := 0; i+windowSize <= len(data); i += stepSize {
		_, std := stat.PopMeanStdDev(data[i:i+windowSize], nil)
		sd = append(sd, std)
	}
	return sd
}

// Detect reduces a windowed standard deviation sequence to regions.
//
// Windows whose value exceeds 2*threshold are kept. Consecutive kept
// windows that are index-adjacent form one run; a run is emitted when a
// gap closes it. A final region is always appended for whatever run is
// still held, so the result is never empty. When nothing qualifies that
// final region is the zero Region{0, 0}.
func Detect(sd []float64, threshold float64) []Region {
	var kept []Region
	for i, v := range sd {
		if v > threshold*2 {
			kept = append(kept, Region{WindowIndex: i, Peak: v})
		}
	}

	var (
		regions []Region
		run     Region
	)
	for j := 0; j+1 < len(kept); j++ {
		cur, next := kept[j], kept[j+1]
		switch {
		case cur.WindowIndex+1 == next.WindowIndex:
			run = extendRun(run, cur, next)
		case run.Peak > 0:
			regions = append(regions, run)
			run = Region{}
		}
	}
	return append(regions, run)
}

// extendRun folds an adjacent pair into the held run. The left window
// wins when it beats the run; the right one is only looked at otherwise.
func extendRun(run, cur, next Region) Region {
	if cur.Peak > run.Peak {
		return cur
	}
	if next.Peak > run.Peak {
		return next
	}
	return run
}

// FailedAttempts counts every region except the last, which is by
// convention the successful attempt.
func FailedAttempts(regions []Region) int {
	if len(regions) == 0 {
		return 0
	}
	return len(regions) - 1
}
