// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package accel

// Sample represents a single tri-axial accelerometer reading.
// Timestamp is in nanoseconds since the Unix epoch.
type Sample struct {
	Timestamp float64

	AccX float64 // m/s²
	AccY float64
	AccZ float64
}

// Axis selects one accelerometer column.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Axes lists the three axes in column order.
var Axes = [3]Axis{AxisX, AxisY, AxisZ}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "Acc_X"
	case AxisY:
		return "Acc_Y"
	case AxisZ:
		return "Acc_Z"
	}
	return "unknown"
}

// Series is an ordered recording, one Sample per tick.
// Series values are never modified in place; helpers return fresh slices.
type Series []Sample

// Timestamps returns a copy of the timestamp column.
func (s Series) Timestamps() []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = v.Timestamp
	}
	return out
}

// Column returns a copy of one acceleration column.
func (s Series) Column(a Axis) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = v.value(a)
	}
	return out
}

// Slice returns a copy of s[start:end] with bounds clamped to the series.
func (s Series) Slice(start, end int) Series {
	if start < 0 {
		start = 0
	}
	if end > len(s) {
		end = len(s)
	}
	if start >= end {
		return Series{}
	}
	out := make(Series, end-start)
	copy(out, s[start:end])
	return out
}

// WithAxes returns a new series that keeps the timestamps of s and takes
// acceleration values from x, y and z. All columns must have len(s) values.
func (s Series) WithAxes(x, y, z []float64) Series {
	out := make(Series, len(s))
	for i := range s {
		out[i] = Sample{
			Timestamp: s[i].Timestamp,
			AccX:      x[i],
			AccY:      y[i],
			AccZ:      z[i],
		}
	}
	return out
}

func (v Sample) value(a Axis) float64 {
	switch a {
	case AxisX:
		return v.AccX
	case AxisY:
		return v.AccY
	default:
		return v.AccZ
	}
}
