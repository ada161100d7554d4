// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/recovery_score/internal/score"
)

func TestFormatResult(t *testing.T) {
	assert.Equal(t,
		"[RESULT] 2024-03-01_09.05 case=1042 failed=1 sa_2axes=5.0000 sumua=12.5000 model=UA RS=14.1000",
		formatResult(sampleResult("1042")))

	sa := sampleResult("7")
	sa.Model = score.KindSA
	sa.FailedAttempts = 0
	sa.SumUA = nil
	sa.RecoveryScore = 1.27
	assert.Equal(t,
		"[RESULT] 2024-03-01_09.05 case=7 failed=0 sa_2axes=5.0000 sumua=- model=SA RS=1.2700",
		formatResult(sa))
}

func TestResultPayload(t *testing.T) {
	payload, err := json.Marshal(sampleResult("1042"))
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(payload, &fields))
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, []string{
		"run_id", "model", "date", "case_number", "jerk_threshold", "mean_jerk", "std_jerk",
		"jerk_threshold_cal", "threshold", "failed_attempts", "sa_2axes", "sumua", "recovery_score",
	}, keys)
	assert.Equal(t, "run-1042", fields["run_id"])
	assert.Equal(t, "UA", fields["model"])
	assert.Equal(t, "1042", fields["case_number"])
	assert.Equal(t, 12.5, fields["sumua"])

	msg, err := DecodeResult(payload)
	require.NoError(t, err)
	assert.Equal(t, sampleResult("1042"), msg)

	_, err = DecodeResult([]byte("[]"))
	require.Error(t, err)
}
