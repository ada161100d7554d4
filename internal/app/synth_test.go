// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/recovery_score/internal/score"
	"github.com/relabs-tech/recovery_score/internal/synth"
)

func TestSyntheticCasesScore(t *testing.T) {
	for _, attempts := range []int{1, 3} {
		cfg := testConfig(t)
		p := synth.DefaultParams()
		p.Attempts = attempts

		_, err := WriteSynthCase(cfg, "synthetic", p)
		require.NoError(t, err)

		msg, out, err := Analyze(cfg, "synthetic", time.Now())
		require.NoError(t, err)

		assert.Len(t, out.Regions, attempts)
		assert.Equal(t, attempts-1, msg.FailedAttempts)
		if attempts == 1 {
			assert.Equal(t, score.KindSA, msg.Model)
			assert.Nil(t, msg.SumUA)
		} else {
			assert.Equal(t, score.KindUA, msg.Model)
			require.NotNil(t, msg.SumUA)
			assert.Greater(t, *msg.SumUA, 0.0)
		}
		assert.Greater(t, msg.SA2Axes, 0.0)
	}
}
