// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/relabs-tech/recovery_score/internal/config"
	"github.com/relabs-tech/recovery_score/internal/recording"
	"github.com/relabs-tech/recovery_score/internal/synth"
)

// RunSynth writes a synthetic recording for caseArg into the case directory.
func RunSynth(caseArg string, p synth.Params) error {
	cfg := config.Get()
	if cfg == nil {
		return fmt.Errorf("config not initialized")
	}

	path, err := WriteSynthCase(cfg, caseArg, p)
	if err != nil {
		return err
	}
	log.Printf("synth: wrote %s (%d attempts, %s)", path, p.Attempts, p.Duration())
	return nil
}

// WriteSynthCase generates a recording and stores it where Analyze looks
// for caseArg. It returns the written path.
func WriteSynthCase(cfg *config.Config, caseArg string, p synth.Params) (string, error) {
	s, err := synth.Generate(p)
	if err != nil {
		return "", fmt.Errorf("generate recording: %w", err)
	}

	path := filepath.Join(cfg.CaseDir, recording.CaseFile(caseArg))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create recording: %w", err)
	}
	if err := synth.Write(f, s); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}
