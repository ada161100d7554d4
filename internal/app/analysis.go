// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/relabs-tech/recovery_score/internal/config"
	"github.com/relabs-tech/recovery_score/internal/pipeline"
	"github.com/relabs-tech/recovery_score/internal/plot"
	"github.com/relabs-tech/recovery_score/internal/recording"
	"github.com/relabs-tech/recovery_score/internal/resultlog"
)

// RunAnalysis scores one case using the global configuration, appends the
// result to the log, renders review plots and publishes the result when a
// broker is configured.
func RunAnalysis(caseArg string, renderPlots bool) error {
	cfg := config.Get()
	if cfg == nil {
		return fmt.Errorf("config not initialized")
	}

	msg, out, err := Analyze(cfg, caseArg, time.Now())
	if err != nil {
		return err
	}

	if renderPlots {
		if err := os.MkdirAll(cfg.PlotDir, 0o755); err != nil {
			log.Printf("analysis: plot dir error: %v", err)
		} else if paths, err := plot.SaveAll(cfg.PlotDir, msg.CaseNumber, out, cfg.WindowSize, cfg.StepSize); err != nil {
			log.Printf("analysis: plot error: %v", err)
		} else {
			log.Printf("analysis: wrote %d plots to %s", len(paths), cfg.PlotDir)
		}
	}

	if cfg.MQTTBroker != "" {
		if err := PublishResult(cfg, msg); err != nil {
			log.Printf("analysis: MQTT publish error: %v", err)
		} else {
			log.Printf("analysis: published result to %s", cfg.TopicResult)
		}
	}

	printSummary(msg, out)
	return nil
}

// Analyze loads the case recording, runs the pipeline and appends the
// result to the log. Nothing is logged when any step fails.
func Analyze(cfg *config.Config, caseArg string, now time.Time) (ResultMessage, pipeline.Output, error) {
	path := filepath.Join(cfg.CaseDir, recording.CaseFile(caseArg))
	log.Printf("analysis: reading %s", path)

	raw, err := recording.Load(path, cfg.RecordingOptions())
	if err != nil {
		return ResultMessage{}, pipeline.Output{}, fmt.Errorf("load recording: %w", err)
	}
	log.Printf("analysis: read %d samples", len(raw))

	out, err := pipeline.Run(raw, cfg.Pipeline())
	if err != nil {
		return ResultMessage{}, pipeline.Output{}, fmt.Errorf("analyze %s: %w", caseArg, err)
	}
	logStages(cfg, out)

	msg := ResultMessage{
		RunID: uuid.NewString(),
		Model: out.Result.Score.Kind,
		Entry: resultlog.NewEntry(now, recording.CaseID(caseArg), out.Result),
	}
	if err := resultlog.Open(cfg.ResultLog).Append(msg.Entry); err != nil {
		return ResultMessage{}, pipeline.Output{}, err
	}
	log.Printf("analysis: entry added to %s", cfg.ResultLog)

	return msg, out, nil
}

func logStages(cfg *config.Config, out pipeline.Output) {
	cond := out.Conditioned
	if cond.Found {
		log.Printf("analysis: initial filter kept %d samples (Acc_Z > %g)", len(cond.Truncated), cfg.TargetValue)
	} else {
		log.Printf("analysis: no Acc_Z value greater than %g, using the full recording", cfg.TargetValue)
	}
	log.Printf("analysis: jerk=%d snap=%d samples", len(out.Derivatives.Jerk), len(out.Derivatives.Snap))
	log.Printf("analysis: %d SD windows, %d regions of interest", len(out.WindowSD), len(out.Regions))
	for i, r := range out.Regions {
		log.Printf("analysis: region %d window=%d sd=%g peaks=%+v", i, r.WindowIndex, r.Peak, out.Peaks[i])
	}
}

func printSummary(msg ResultMessage, out pipeline.Output) {
	e := msg.Entry
	fmt.Println("results are:")
	fmt.Printf("case number: %s\n", e.CaseNumber)
	fmt.Printf("jerk_threshold: %g\n", e.JerkThreshold)
	fmt.Printf("mean_jerk: %g\n", e.MeanJerk)
	fmt.Printf("std_jerk: %g\n", e.StdJerk)
	fmt.Printf("jerk_threshold_cal: %g\n", e.JerkThresholdCal)
	fmt.Printf("threshold set at: %g\n", e.Threshold)
	fmt.Printf("regions of interest: %d\n", len(out.Regions))
	fmt.Printf("number of failed attempts: %d\n", e.FailedAttempts)
	fmt.Printf("sa_2axes = %g\n", e.SA2Axes)
	if e.SumUA != nil {
		fmt.Printf("sumua = %g\n", *e.SumUA)
	} else {
		fmt.Println("sumua = (none)")
	}
	fmt.Printf("recovery score (%s) = %g\n", msg.Model, e.RecoveryScore)
}
