// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package resultlog appends one row per analyzed case to a CSV log.
package resultlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/relabs-tech/recovery_score/internal/pipeline"
)

// DateFormat is the layout of the Date column.
const DateFormat = "2006-01-02_15.04"

// Columns is the header of the log, in order.
var Columns = []string{
	"Date",
	"Case_Number",
	"jerk_threshold",
	"mean_jerk",
	"std_jerk",
	"jerk_threshold_cal",
	"threshold",
	"Number_failed_attempts",
	"sa_2axes_py",
	"sumua_py",
	"rs_2axes_py",
}

// Entry is one logged run. SumUA is nil for single-attempt cases and is
// written as an empty field.
type Entry struct {
	Date             string   `json:"date"`
	CaseNumber       string   `json:"case_number"`
	JerkThreshold    float64  `json:"jerk_threshold"`
	MeanJerk         float64  `json:"mean_jerk"`
	StdJerk          float64  `json:"std_jerk"`
	JerkThresholdCal float64  `json:"jerk_threshold_cal"`
	Threshold        float64  `json:"threshold"`
	FailedAttempts   int      `json:"failed_attempts"`
	SA2Axes          float64  `json:"sa_2axes"`
	SumUA            *float64 `json:"sumua"`
	RecoveryScore    float64  `json:"recovery_score"`
}

// NewEntry builds the log row for a pipeline result.
func NewEntry(at time.Time, caseNumber string, r pipeline.Result) Entry {
	return Entry{
		Date:             at.Format(DateFormat),
		CaseNumber:       caseNumber,
		JerkThreshold:    r.JerkThreshold,
		MeanJerk:         r.MeanJerk,
		StdJerk:          r.StdJerk,
		JerkThresholdCal: r.JerkThresholdCal,
		Threshold:        r.SDThreshold,
		FailedAttempts:   r.FailedAttempts,
		SA2Axes:          r.Score.SA2Axes,
		SumUA:            r.Score.SumUA,
		RecoveryScore:    r.Score.Value,
	}
}

// Log is an append-only CSV file.
type Log struct {
	path string
}

// Open returns a Log backed by path. The file is created on first Append.
func Open(path string) *Log {
	return &Log{path: path}
}

// Path returns the backing file path.
func (l *Log) Path() string {
	return l.path
}

// Append writes e, adding the header first when the file is new or empty.
func (l *Log) Append(e Entry) error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open result log: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat result log: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(Columns); err != nil {
			return fmt.Errorf("write result log header: %w", err)
		}
	}
	if err := w.Write(e.record()); err != nil {
		return fmt.Errorf("write result log entry: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush result log: %w", err)
	}
	return nil
}

// ReadAll returns every logged entry. A missing file yields no entries.
func (l *Log) ReadAll() ([]Entry, error) {
	f, err := os.Open(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open result log: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(Columns)

	entries := []Entry{}
	for row := 0; ; row++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read result log: %w", err)
		}
		if row == 0 && record[0] == Columns[0] {
			continue
		}
		e, err := parseEntry(record)
		if err != nil {
			return nil, fmt.Errorf("result log row %d: %w", row+1, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (e Entry) record() []string {
	sumua := ""
	if e.SumUA != nil {
		sumua = formatFloat(*e.SumUA)
	}
	return []string{
		e.Date,
		e.CaseNumber,
		formatFloat(e.JerkThreshold),
		formatFloat(e.MeanJerk),
		formatFloat(e.StdJerk),
		formatFloat(e.JerkThresholdCal),
		formatFloat(e.Threshold),
		strconv.Itoa(e.FailedAttempts),
		formatFloat(e.SA2Axes),
		sumua,
		formatFloat(e.RecoveryScore),
	}
}

func parseEntry(record []string) (Entry, error) {
	var (
		e    Entry
		errs []error
	)
	f := func(i int) float64 {
		v, err := strconv.ParseFloat(record[i], 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", Columns[i], err))
		}
		return v
	}

	e.Date = record[0]
	e.CaseNumber = record[1]
	e.JerkThreshold = f(2)
	e.MeanJerk = f(3)
	e.StdJerk = f(4)
	e.JerkThresholdCal = f(5)
	e.Threshold = f(6)
	n, err := strconv.Atoi(record[7])
	if err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", Columns[7], err))
	}
	e.FailedAttempts = n
	e.SA2Axes = f(8)
	if record[9] != "" {
		v := f(9)
		e.SumUA = &v
	}
	e.RecoveryScore = f(10)

	return e, errors.Join(errs...)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
