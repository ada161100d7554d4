// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"flag"
	"log"

	"github.com/relabs-tech/recovery_score/internal/app"
	"github.com/relabs-tech/recovery_score/internal/config"
	"github.com/relabs-tech/recovery_score/internal/synth"
)

func main() {
	configPath := flag.String("config", "./recovery_config.txt", "path to configuration file")
	caseArg := flag.String("case", "synthetic", "case number to write")
	attempts := flag.Int("attempts", 1, "number of standing attempts, the last one succeeds")
	seed := flag.Int64("seed", 1, "noise seed")
	flag.Parse()

	log.Println("starting recovery-score synthetic recording generator")

	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	p := synth.DefaultParams()
	p.Attempts = *attempts
	p.Seed = *seed

	if err := app.RunSynth(*caseArg, p); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
