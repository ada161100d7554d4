// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package conditioning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/recovery_score/internal/accel"
)

func zSeries(z ...float64) accel.Series {
	s := make(accel.Series, len(z))
	for i, v := range z {
		s[i] = accel.Sample{Timestamp: float64(i), AccX: float64(i) * 0.1, AccY: -float64(i), AccZ: v}
	}
	return s
}

func TestTruncateStartsAtFirstValueAboveTarget(t *testing.T) {
	raw := zSeries(1, 5, 9, 9.5, 3, 10)

	out, found := Truncate(raw, 9)

	require.True(t, found)
	require.Len(t, out, 3)
	assert.Equal(t, 9.5, out[0].AccZ)
	assert.Equal(t, float64(3), out[0].Timestamp)
	assert.Equal(t, raw[3:], out)
}

func TestTruncateWithoutMatchReturnsInput(t *testing.T) {
	raw := zSeries(1, 2, 3)

	out, found := Truncate(raw, 9)

	assert.False(t, found)
	assert.Equal(t, raw, out)

	out[0].AccZ = 42
	assert.Equal(t, 1.0, raw[0].AccZ, "truncation must not alias its input")
}

func TestMovingAverage(t *testing.T) {
	data := []float64{1, 2, 3, 4}

	assert.Equal(t, []float64{1, 1.5, 2.5, 3.5}, MovingAverage(data, 2))
	assert.Equal(t, []float64{1, 1.5, 2, 3}, MovingAverage(data, 3))
	assert.Equal(t, data, MovingAverage(data, 1))
	assert.Equal(t, []float64{1, 1.5, 2, 2.5}, MovingAverage(data, 10))
	assert.Empty(t, MovingAverage(nil, 4))
}

func TestKalman(t *testing.T) {
	p := KalmanParams{Q: 0, R: 1, P0: 1}

	out := Kalman([]float64{0, 2, 2}, p)

	require.Len(t, out, 3)
	assert.Equal(t, 0.0, out[0])
	assert.InDelta(t, 1.0, out[1], 1e-12)
	assert.InDelta(t, 4.0/3.0, out[2], 1e-12)
}

func TestKalmanConstantSignalIsUnchanged(t *testing.T) {
	p := KalmanParams{Q: 1e-5, R: 1e-1, P0: 1}

	out := Kalman([]float64{9.81, 9.81, 9.81, 9.81}, p)

	for _, v := range out {
		assert.InDelta(t, 9.81, v, 1e-12)
	}
	assert.Empty(t, Kalman(nil, p))
}

func TestSmoothingIsPerAxis(t *testing.T) {
	s := accel.Series{
		{Timestamp: 10, AccX: 1, AccY: 2, AccZ: 0},
		{Timestamp: 20, AccX: 3, AccY: 4, AccZ: 0},
	}

	out := SmoothMovingAverage(s, 2)

	assert.Equal(t, accel.Series{
		{Timestamp: 10, AccX: 1, AccY: 2, AccZ: 0},
		{Timestamp: 20, AccX: 2, AccY: 3, AccZ: 0},
	}, out)
	assert.Equal(t, 3.0, s[1].AccX)
}

func TestCondition(t *testing.T) {
	raw := zSeries(0, 0, 10, 12, 14)
	p := Params{
		TargetValue:         9,
		MovingAverageWindow: 2,
		Kalman:              KalmanParams{Q: 1e-5, R: 1e-1, P0: 1},
	}

	res := Condition(raw, p)

	require.True(t, res.Found)
	require.Len(t, res.Truncated, 3)
	require.Len(t, res.MovingAverage, 3)
	require.Len(t, res.Kalman, 3)
	assert.Equal(t, []float64{10, 11, 13}, res.MovingAverage.Column(accel.AxisZ))
	assert.Equal(t, 10.0, res.Kalman[0].AccZ)
	assert.Equal(t, res.Truncated.Timestamps(), res.Kalman.Timestamps())
}

func TestConditionEmpty(t *testing.T) {
	res := Condition(accel.Series{}, Params{TargetValue: 9, MovingAverageWindow: 10})

	assert.False(t, res.Found)
	assert.Empty(t, res.Truncated)
	assert.Empty(t, res.MovingAverage)
	assert.Empty(t, res.Kalman)
}
