// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package roi

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowSD(t *testing.T) {
	tests := []struct {
		name   string
		data   []float64
		window int
		step   int
		want   []float64
	}{
		{"disjoint windows", []float64{0, 2, 0, 2, 4, 4}, 2, 2, []float64{1, 1, 0}},
		{"overlapping windows", []float64{0, 2, 0, 2, 4, 4}, 4, 1, []float64{1, math.Sqrt2, math.Sqrt(2.75)}},
		{"partial tail dropped", []float64{0, 2, 0, 0, 4, 9, 9}, 2, 3, []float64{1, 2}},
		{"window longer than data", []float64{1, 2, 3}, 4, 1, []float64{}},
		{"empty", nil, 2, 1, []float64{}},
		{"zero step", []float64{1, 2, 3}, 2, 0, []float64{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := WindowSD(tc.data, tc.window, tc.step)
			require.Len(t, got, len(tc.want))
			assert.InDeltaSlice(t, tc.want, got, 1e-12)
		})
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		sd   []float64
		want []Region
	}{
		{"quiet signal", []float64{0, 0.5, 1, 0}, []Region{{0, 0}}},
		{"empty", nil, []Region{{0, 0}}},
		{"value at twice threshold is not kept", []float64{2, 2, 2}, []Region{{0, 0}}},
		{"single run", []float64{0, 5, 6, 0}, []Region{{1, 5}}},
		{"two runs", []float64{0, 5, 6, 0, 0, 7, 8, 0}, []Region{{1, 5}, {5, 7}}},
		{"left window of later pair wins", []float64{5, 6, 7}, []Region{{1, 6}}},
		{"isolated windows are dropped", []float64{5, 0, 6, 0}, []Region{{0, 0}}},
		{"trailing singleton leaves zero region", []float64{5, 6, 0, 7}, []Region{{0, 5}, {0, 0}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Detect(tc.sd, 1))
		})
	}
}

func TestDetectIsNeverEmpty(t *testing.T) {
	for n := 0; n < 20; n++ {
		sd := make([]float64, n)
		for i := range sd {
			sd[i] = float64((i * 7) % 5)
		}
		assert.NotEmpty(t, Detect(sd, 1))
	}
}

func TestSpan(t *testing.T) {
	start, end := Region{WindowIndex: 3}.Span(5000, 1000)

	assert.Equal(t, 3000, start)
	assert.Equal(t, 8000, end)
}

func TestFailedAttempts(t *testing.T) {
	assert.Equal(t, 0, FailedAttempts(nil))
	assert.Equal(t, 0, FailedAttempts([]Region{{0, 0}}))
	assert.Equal(t, 2, FailedAttempts([]Region{{1, 5}, {5, 7}, {9, 3}}))
}
