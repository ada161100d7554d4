// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package synth generates synthetic recovery recordings: a short lateral
// phase, a quiet sternal phase and a number of standing attempts, the last
// of which succeeds. The output uses the sensor export layout so it can be
// fed to the analyzer like a real case.
package synth

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"math/rand"
	"strconv"
	"time"

	"github.com/relabs-tech/recovery_score/internal/accel"
	"github.com/relabs-tech/recovery_score/internal/recording"
)

const gravity = 9.81

// Params shapes a synthetic recording.
type Params struct {
	Start      time.Time
	SampleRate float64 // Hz

	Lying time.Duration // lateral recumbency, Acc_Z near 0
	Lead  time.Duration // quiet sternal recumbency before the first attempt
	Burst time.Duration // length of one attempt
	Gap   time.Duration // quiet time between attempts
	Tail  time.Duration // quiet standing after the last attempt

	Attempts  int
	Amplitude float64 // m/s²
	Frequency float64 // Hz
	Noise     float64 // standard deviation of the additive noise, m/s²
	Seed      int64
}

// DefaultParams returns a 200 Hz recording whose attempts are far enough
// apart to be told apart with a 25 s scan window.
func DefaultParams() Params {
	return Params{
		Start:      time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		SampleRate: 200,
		Lying:      2 * time.Second,
		Lead:       30 * time.Second,
		Burst:      5 * time.Second,
		Gap:        45 * time.Second,
		Tail:       30 * time.Second,
		Attempts:   1,
		Amplitude:  8,
		Frequency:  3,
		Noise:      0.001,
		Seed:       1,
	}
}

// Duration is the total length of the recording.
func (p Params) Duration() time.Duration {
	n := time.Duration(max(p.Attempts, 0))
	gaps := time.Duration(max(p.Attempts-1, 0))
	return p.Lying + p.Lead + n*p.Burst + gaps*p.Gap + p.Tail
}

// Generate builds the recording.
func Generate(p Params) (accel.Series, error) {
	if p.SampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %g", p.SampleRate)
	}
	if p.Attempts < 1 {
		return nil, fmt.Errorf("at least one attempt is required, got %d", p.Attempts)
	}

	rng := rand.New(rand.NewSource(p.Seed))
	period := time.Duration(float64(time.Second) / p.SampleRate)
	n := int(p.Duration() / period)

	s := make(accel.Series, n)
	for i := range s {
		elapsed := time.Duration(i) * period
		x, y, z := p.pose(elapsed)
		s[i] = accel.Sample{
			Timestamp: float64(p.Start.Add(elapsed).UnixNano()),
			AccX:      x + rng.NormFloat64()*p.Noise,
			AccY:      y + rng.NormFloat64()*p.Noise,
			AccZ:      z + rng.NormFloat64()*p.Noise,
		}
	}
	return s, nil
}

// pose returns the noiseless acceleration at elapsed.
func (p Params) pose(elapsed time.Duration) (x, y, z float64) {
	if elapsed < p.Lying {
		return gravity, 0, 0
	}

	rel := elapsed - p.Lying - p.Lead
	if rel < 0 {
		return 0, 0, gravity
	}
	cycle := p.Burst + p.Gap
	k := int(rel / cycle)
	off := rel - time.Duration(k)*cycle
	if k >= p.Attempts || off >= p.Burst {
		return 0, 0, gravity
	}

	phase := 2 * math.Pi * p.Frequency * off.Seconds()
	return 0.5 * p.Amplitude * math.Cos(phase*0.5),
		0.3 * p.Amplitude * math.Sin(phase*1.5),
		gravity + p.Amplitude*math.Sin(phase)
}

// Write encodes s in the sensor export layout read by recording.Read with
// recording.DefaultOptions.
func Write(w io.Writer, s accel.Series) error {
	cw := csv.NewWriter(w)
	preamble := [][]string{
		{"sep=", ""},
		recording.Columns,
		{"", "m/s2", "m/s2", "m/s2"},
	}
	if err := cw.WriteAll(preamble); err != nil {
		return fmt.Errorf("write preamble: %w", err)
	}

	for _, v := range s {
		record := []string{
			time.Unix(0, int64(v.Timestamp)).UTC().Format(time.RFC3339Nano),
			formatValue(v.AccX),
			formatValue(v.AccY),
			formatValue(v.AccZ),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write sample: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
