// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/relabs-tech/recovery_score/internal/app"
	"github.com/relabs-tech/recovery_score/internal/config"
)

func main() {
	configPath := flag.String("config", "./recovery_config.txt", "path to configuration file")
	caseArg := flag.String("case", "", "case number (recording file name without .csv)")
	plots := flag.Bool("plots", true, "render review plots")
	flag.Parse()

	log.Println("starting recovery-score analyzer")

	// Load configuration
	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if *caseArg == "" {
		fmt.Print("Enter case number: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			log.Fatalf("failed to read case number: %v", err)
		}
		*caseArg = strings.TrimSpace(line)
	}
	if *caseArg == "" {
		log.Fatal("case number is required")
	}

	if err := app.RunAnalysis(*caseArg, *plots); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
