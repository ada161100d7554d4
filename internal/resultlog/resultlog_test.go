// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package resultlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/recovery_score/internal/pipeline"
	"github.com/relabs-tech/recovery_score/internal/score"
)

func float(v float64) *float64 {
	return &v
}

func TestNewEntry(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 5, 59, 0, time.UTC)
	res := pipeline.Result{
		JerkThreshold:    4.64e-07,
		MeanJerk:         1e-9,
		StdJerk:          2e-9,
		JerkThresholdCal: 3e-8,
		SDThreshold:      1e-08,
		FailedAttempts:   1,
		Regions:          2,
		Score: score.Score{
			Kind:    score.KindUA,
			Value:   14.1,
			SA2Axes: 5,
			SumUA:   float(12.3),
		},
	}

	e := NewEntry(at, "1042", res)

	assert.Equal(t, Entry{
		Date:             "2024-03-01_09.05",
		CaseNumber:       "1042",
		JerkThreshold:    4.64e-07,
		MeanJerk:         1e-9,
		StdJerk:          2e-9,
		JerkThresholdCal: 3e-8,
		Threshold:        1e-08,
		FailedAttempts:   1,
		SA2Axes:          5,
		SumUA:            float(12.3),
		RecoveryScore:    14.1,
	}, e)
}

func TestAppendAndReadAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "RS_output.csv")
	l := Open(path)

	sa := Entry{Date: "2024-03-01_09.05", CaseNumber: "1", Threshold: 1e-08, SA2Axes: 3, RecoveryScore: 1.2739750844345756}
	ua := Entry{Date: "2024-03-01_09.06", CaseNumber: "2", FailedAttempts: 2, SA2Axes: 1.5, SumUA: float(10), RecoveryScore: 13.336118673219813}

	require.NoError(t, l.Append(sa))
	require.NoError(t, l.Append(ua))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(Columns, ","), lines[0])
	assert.Equal(t, "2024-03-01_09.05,1,0,0,0,0,1e-08,0,3,,1.2739750844345756", lines[1])
	assert.Equal(t, "2024-03-01_09.06,2,0,0,0,0,0,2,1.5,10,13.336118673219813", lines[2])

	entries, err := l.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []Entry{sa, ua}, entries)
	assert.Equal(t, path, l.Path())
}

func TestReadAllMissingFile(t *testing.T) {
	entries, err := Open(filepath.Join(t.TempDir(), "none.csv")).ReadAll()

	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReadAllBadRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "RS_output.csv")
	content := strings.Join(Columns, ",") + "\nd,1,x,0,0,0,0,0,0,,0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Open(path).ReadAll()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "jerk_threshold")
}

func TestAppendUnwritable(t *testing.T) {
	err := Open(filepath.Join(t.TempDir(), "missing", "RS_output.csv")).Append(Entry{})

	require.Error(t, err)
}
