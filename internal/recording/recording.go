// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package recording loads accelerometer recordings exported as CSV.
//
// The export starts with a preamble (a "sep=," line, a header line and a
// units line) followed by one row per sample. Only the timestamp and the
// three acceleration columns are read.
package recording

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/relvacode/iso8601"

	"github.com/relabs-tech/recovery_score/internal/accel"
)

var (
	// ErrInputUnavailable is returned when the recording cannot be opened or parsed.
	ErrInputUnavailable = errors.New("recording unavailable")

	// ErrMissingColumn is returned when a required column is absent.
	ErrMissingColumn = errors.New("missing required column")
)

// Columns are the required column names, in positional order.
var Columns = []string{"timeStamp", "Acc_X", "Acc_Y", "Acc_Z"}

// Options describes the file layout.
type Options struct {
	SkipRows  int // preamble lines before the first sample
	HeaderRow int // 1-based preamble line holding column names; 0 means positional
}

// DefaultOptions matches the sensor export format.
func DefaultOptions() Options {
	return Options{SkipRows: 3, HeaderRow: 2}
}

// extra layouts tried after ISO-8601
var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"01/02/2006 15:04:05.999999999",
	"02.01.2006 15:04:05.999999999",
}

// CaseFile returns the recording file name for a case number.
func CaseFile(caseID string) string {
	if strings.HasSuffix(caseID, ".csv") {
		return caseID
	}
	return caseID + ".csv"
}

// CaseID strips the .csv extension from a recording path.
func CaseID(path string) string {
	return strings.TrimSuffix(path, ".csv")
}

// Load opens and parses the recording at path.
func Load(path string, opts Options) (accel.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputUnavailable, err)
	}
	defer f.Close()

	return Read(f, opts)
}

// Read parses a recording from r.
func Read(r io.Reader, opts Options) (accel.Series, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	index := []int{0, 1, 2, 3}
	for line := 1; line <= opts.SkipRows; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			return accel.Series{}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: preamble line %d: %v", ErrInputUnavailable, line, err)
		}
		if line == opts.HeaderRow {
			if index, err = columnIndex(record); err != nil {
				return nil, err
			}
		}
	}

	series := accel.Series{}
	line := opts.SkipRows
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInputUnavailable, line, err)
		}
		if isBlank(record) {
			continue
		}

		s, err := parseRecord(record, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		series = append(series, s)
	}
	return series, nil
}

func columnIndex(header []string) ([]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.ToLower(strings.TrimSpace(h))] = i
	}

	index := make([]int, len(Columns))
	for i, col := range Columns {
		idx, ok := pos[strings.ToLower(col)]
		switch {
		case ok:
			index[i] = idx
		case i == 0:
			// exports name the clock column differently; it is always first
			index[i] = 0
		default:
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	return index, nil
}

func parseRecord(record []string, index []int) (accel.Sample, error) {
	var vals [4]float64
	for i, idx := range index {
		if idx >= len(record) {
			return accel.Sample{}, fmt.Errorf("%w: %s", ErrMissingColumn, Columns[i])
		}
		field := strings.TrimSpace(record[idx])
		if i == 0 {
			ts, err := ParseTimestamp(field)
			if err != nil {
				return accel.Sample{}, fmt.Errorf("%w: %v", ErrInputUnavailable, err)
			}
			vals[0] = ts
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return accel.Sample{}, fmt.Errorf("%w: invalid %s %q", ErrInputUnavailable, Columns[i], field)
		}
		vals[i] = v
	}

	return accel.Sample{
		Timestamp: vals[0],
		AccX:      vals[1],
		AccY:      vals[2],
		AccZ:      vals[3],
	}, nil
}

// ParseTimestamp converts a timestamp field to nanoseconds since the Unix
// epoch. A bare number is taken as seconds; date-time strings are tried as
// ISO-8601 first, then a few export layouts.
func ParseTimestamp(field string) (float64, error) {
	if secs, err := strconv.ParseFloat(field, 64); err == nil {
		return secs * float64(time.Second), nil
	}
	if t, err := iso8601.ParseString(field); err == nil {
		return float64(t.UnixNano()), nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, field); err == nil {
			return float64(t.UnixNano()), nil
		}
	}
	return 0, fmt.Errorf("invalid timestamp %q", field)
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
