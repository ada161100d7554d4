// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package plot renders analysis series as stacked line charts in PNG form,
// for visual review of the filters and detected regions.
package plot

import (
	"fmt"
	"image/color"
	"os"

	"golang.org/x/image/colornames"
	"gonum.org/v1/gonum/floats"
	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var (
	Blue   = colornames.Steelblue
	Green  = colornames.Seagreen
	Red    = colornames.Firebrick
	Orange = colornames.Darkorange

	shade = colornames.Moccasin
)

const (
	traceWidth = vg.Length(2)
	dpi        = 72 // one point per pixel
)

// Trace is one line in a panel. Values are plotted against their index.
type Trace struct {
	Label  string
	Values []float64
	Color  color.RGBA
}

// Span shades the index range [Start, End) of a panel.
type Span struct {
	Start, End int
}

// Panel is one sub-plot.
type Panel struct {
	Title  string
	Traces []Trace
	Spans  []Span
}

// Chart stacks panels vertically. Width and Height are in pixels.
type Chart struct {
	Width, Height int
	Panels        []Panel
}

// Plot builds the panel. Spans are drawn under the traces and clipped to
// the last sample index.
func (p Panel) Plot() (*gplot.Plot, error) {
	plt := gplot.New()
	plt.Title.Text = p.Title
	plt.X.Label.Text = "sample"
	plt.Legend.Top = true
	plt.Add(plotter.NewGrid())

	lo, hi, ok := p.bounds()
	if !ok {
		plt.X.Min, plt.X.Max = 0, 1
		plt.Y.Min, plt.Y.Max = 0, 1
		return plt, nil
	}

	last := float64(p.length() - 1)
	for _, s := range p.Spans {
		x0 := min(float64(s.Start), last)
		x1 := min(float64(s.End), last)
		if x1 <= x0 {
			continue
		}
		poly, err := plotter.NewPolygon(plotter.XYs{
			{X: x0, Y: lo}, {X: x1, Y: lo},
			{X: x1, Y: hi}, {X: x0, Y: hi},
		})
		if err != nil {
			return nil, fmt.Errorf("span %d-%d: %w", s.Start, s.End, err)
		}
		poly.Color = shade
		poly.LineStyle.Width = 0
		plt.Add(poly)
	}

	for _, t := range p.Traces {
		if len(t.Values) == 0 {
			continue
		}
		line, err := plotter.NewLine(indexed(t.Values))
		if err != nil {
			return nil, fmt.Errorf("trace %q: %w", t.Label, err)
		}
		line.LineStyle.Color = t.Color
		line.LineStyle.Width = traceWidth
		plt.Add(line)
		if t.Label != "" {
			plt.Legend.Add(t.Label, line)
		}
	}
	return plt, nil
}

// Render draws the chart.
func (c Chart) Render() (*vgimg.Canvas, error) {
	img := vgimg.NewWith(
		vgimg.UseWH(vg.Length(c.Width), vg.Length(c.Height)),
		vgimg.UseDPI(dpi),
	)
	if len(c.Panels) == 0 {
		return img, nil
	}

	plots := make([][]*gplot.Plot, len(c.Panels))
	for i, p := range c.Panels {
		plt, err := p.Plot()
		if err != nil {
			return nil, fmt.Errorf("panel %q: %w", p.Title, err)
		}
		plots[i] = []*gplot.Plot{plt}
	}

	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      1,
		PadY:      vg.Points(16),
		PadTop:    vg.Points(8),
		PadBottom: vg.Points(8),
		PadLeft:   vg.Points(8),
		PadRight:  vg.Points(16),
	}
	canvases := gplot.Align(plots, tiles, draw.New(img))
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}
	return img, nil
}

func (p Panel) length() int {
	n := 0
	for _, t := range p.Traces {
		n = max(n, len(t.Values))
	}
	return n
}

// bounds returns the value range over every trace; ok is false when the
// panel has no values.
func (p Panel) bounds() (lo, hi float64, ok bool) {
	var all []float64
	for _, t := range p.Traces {
		all = append(all, t.Values...)
	}
	if len(all) == 0 {
		return 0, 0, false
	}
	return floats.Min(all), floats.Max(all), true
}

func indexed(values []float64) plotter.XYs {
	xys := make(plotter.XYs, len(values))
	for i, v := range values {
		xys[i] = plotter.XY{X: float64(i), Y: v}
	}
	return xys
}

// WritePNG encodes the rendered chart to path.
func WritePNG(path string, c *vgimg.Canvas) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create plot: %w", err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("encode plot: %w", err)
	}
	return f.Close()
}
