// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package plot

import (
	"fmt"
	"path/filepath"

	"github.com/relabs-tech/recovery_score/internal/accel"
	"github.com/relabs-tech/recovery_score/internal/pipeline"
)

const (
	chartWidth       = 1500
	chartPanelHeight = 330
)

// Acceleration plots the truncated, moving-average and Kalman series.
func Acceleration(truncated, avg, kalman accel.Series) Chart {
	return stack(
		axesPanel("Filtered Acceleration Data", truncated),
		axesPanel("Moving Average Filtered Acceleration Data", avg),
		axesPanel("Kalman Filtered Acceleration Data", kalman),
	)
}

// JerkSnap plots the two derivatives.
func JerkSnap(jerk, snap []float64) Chart {
	return stack(
		Panel{Title: "Jerk (dAcc_Z/dt)", Traces: []Trace{{Label: "Jerk", Values: jerk, Color: Blue}}},
		Panel{Title: "Snap (d2Acc_Z/dt2)", Traces: []Trace{{Label: "Snap", Values: snap, Color: Orange}}},
	)
}

// Regions plots the jerk signal with every detected region shaded, above
// the windowed standard deviation it was detected from.
func Regions(out pipeline.Output, windowSize, stepSize int) Chart {
	jerkSpans := make([]Span, 0, len(out.Regions))
	sdSpans := make([]Span, 0, len(out.Regions))
	for _, r := range out.Regions {
		start, end := r.Span(windowSize, stepSize)
		jerkSpans = append(jerkSpans, Span{Start: start, End: end})
		sdSpans = append(sdSpans, Span{Start: r.WindowIndex, End: r.WindowIndex + 1})
	}

	return stack(
		Panel{
			Title:  fmt.Sprintf("Jerk with %d regions of interest", len(out.Regions)),
			Traces: []Trace{{Label: "Jerk", Values: out.Derivatives.Jerk, Color: Blue}},
			Spans:  jerkSpans,
		},
		Panel{
			Title:  "Windowed SD of Jerk",
			Traces: []Trace{{Label: "SD", Values: out.WindowSD, Color: Red}},
			Spans:  sdSpans,
		},
	)
}

// SaveAll renders the three review charts into dir, prefixing file names
// with the case number. It returns the written paths.
func SaveAll(dir, caseNumber string, out pipeline.Output, windowSize, stepSize int) ([]string, error) {
	prefix := filepath.Base(caseNumber)
	charts := []struct {
		name  string
		chart Chart
	}{
		{"acceleration", Acceleration(out.Conditioned.Truncated, out.Conditioned.MovingAverage, out.Conditioned.Kalman)},
		{"jerk_snap", JerkSnap(out.Derivatives.Jerk, out.Derivatives.Snap)},
		{"roi_sd", Regions(out, windowSize, stepSize)},
	}

	paths := make([]string, 0, len(charts))
	for _, c := range charts {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", prefix, c.name))
		img, err := c.chart.Render()
		if err != nil {
			return paths, fmt.Errorf("%s: %w", c.name, err)
		}
		if err := WritePNG(path, img); err != nil {
			return paths, fmt.Errorf("%s: %w", c.name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func axesPanel(title string, s accel.Series) Panel {
	return Panel{
		Title: title,
		Traces: []Trace{
			{Label: accel.AxisX.String(), Values: s.Column(accel.AxisX), Color: Blue},
			{Label: accel.AxisY.String(), Values: s.Column(accel.AxisY), Color: Green},
			{Label: accel.AxisZ.String(), Values: s.Column(accel.AxisZ), Color: Red},
		},
	}
}

func stack(panels ...Panel) Chart {
	return Chart{
		Width:  chartWidth,
		Height: chartPanelHeight * len(panels),
		Panels: panels,
	}
}
