// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package plot

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/recovery_score/internal/accel"
	"github.com/relabs-tech/recovery_score/internal/conditioning"
	"github.com/relabs-tech/recovery_score/internal/derivative"
	"github.com/relabs-tech/recovery_score/internal/pipeline"
	"github.com/relabs-tech/recovery_score/internal/roi"
)

func ramp(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) / float64(n-1)
	}
	return out
}

func near(a, b color.Color) bool {
	r1, g1, b1, _ := a.RGBA()
	r2, g2, b2, _ := b.RGBA()
	d := func(x, y uint32) bool { return max(x, y)-min(x, y) <= 0x0a00 }
	return d(r1, r2) && d(g1, g2) && d(b1, b2)
}

func count(img image.Image, c color.Color) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if near(img.At(x, y), c) {
				n++
			}
		}
	}
	return n
}

func TestRenderEmptyChart(t *testing.T) {
	c, err := Chart{Width: 10, Height: 10}.Render()
	require.NoError(t, err)

	img := c.Image()
	assert.Equal(t, 10, img.Bounds().Dx())
	assert.True(t, near(img.At(5, 5), color.White))
}

func TestRenderPanel(t *testing.T) {
	c := Chart{
		Width:  400,
		Height: 300,
		Panels: []Panel{{
			Title:  "ramp",
			Traces: []Trace{{Label: "Jerk", Values: ramp(100), Color: Blue}},
			Spans:  []Span{{Start: 0, End: 50}},
		}},
	}

	canvas, err := c.Render()
	require.NoError(t, err)
	img := canvas.Image()

	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
	assert.True(t, near(img.At(0, 0), color.White))
	assert.Positive(t, count(img, Blue), "trace drawn")
	assert.Positive(t, count(img, shade), "span shaded")
}

func TestPanelRanges(t *testing.T) {
	p := Panel{
		Traces: []Trace{
			{Values: []float64{-2, 0, 1, 3, 0, 0, 0, 0, 0, 0}, Color: Blue},
			{Values: []float64{5, 4}, Color: Red},
		},
		Spans: []Span{{Start: 5, End: 5000}, {Start: 20, End: 25}},
	}

	plt, err := p.Plot()
	require.NoError(t, err)

	assert.Equal(t, 0.0, plt.X.Min)
	assert.Equal(t, 9.0, plt.X.Max, "spans are clipped to the last sample")
	assert.Equal(t, -2.0, plt.Y.Min)
	assert.Equal(t, 5.0, plt.Y.Max)
}

func TestPanelWithoutValues(t *testing.T) {
	plt, err := Panel{Title: "empty", Traces: []Trace{{Label: "Jerk"}}}.Plot()
	require.NoError(t, err)

	assert.Equal(t, "empty", plt.Title.Text)
	assert.Equal(t, 0.0, plt.X.Min)
	assert.Equal(t, 1.0, plt.X.Max)
}

func TestSaveAll(t *testing.T) {
	s := accel.Series{}
	for i := 0; i < 50; i++ {
		s = append(s, accel.Sample{Timestamp: float64(i), AccX: float64(i % 3), AccY: 1, AccZ: 10})
	}
	out := pipeline.Output{
		Conditioned: conditioning.Result{Truncated: s, MovingAverage: s, Kalman: s, Found: true},
		Derivatives: derivative.Series{Jerk: ramp(49), Snap: ramp(48)},
		WindowSD:    ramp(10),
		Regions:     []roi.Region{{WindowIndex: 2, Peak: 0.2}, {WindowIndex: 7, Peak: 0.7}},
	}
	dir := t.TempDir()

	paths, err := SaveAll(dir, "1042", out, 8, 4)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "1042_acceleration.png"),
		filepath.Join(dir, "1042_jerk_snap.png"),
		filepath.Join(dir, "1042_roi_sd.png"),
	}, paths)

	heights := []int{3 * chartPanelHeight, 2 * chartPanelHeight, 2 * chartPanelHeight}
	for i, p := range paths {
		f, err := os.Open(p)
		require.NoError(t, err)
		cfg, err := png.DecodeConfig(f)
		f.Close()
		require.NoError(t, err)
		assert.Equal(t, chartWidth, cfg.Width)
		assert.Equal(t, heights[i], cfg.Height)
	}
}

func TestSaveAllBadDir(t *testing.T) {
	_, err := SaveAll(filepath.Join(t.TempDir(), "missing"), "1", pipeline.Output{}, 4, 2)

	require.Error(t, err)
}
