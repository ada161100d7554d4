// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/relabs-tech/recovery_score/internal/conditioning"
	"github.com/relabs-tech/recovery_score/internal/pipeline"
	"github.com/relabs-tech/recovery_score/internal/recording"
	"github.com/relabs-tech/recovery_score/internal/score"
)

// Config holds all application configuration values.
type Config struct {
	// Files
	CaseDir   string // directory holding <case>.csv recordings
	ResultLog string
	PlotDir   string

	// Recording layout
	SkipRows  int
	HeaderRow int // 1-based preamble line with column names, 0 = positional

	// Initial filter: Acc_Z level signalling sternal recumbency
	TargetValue float64

	// Moving average filter
	MovingAvgWindow int

	// Kalman filter
	KalmanQ  float64 // process variance
	KalmanR  float64 // measurement variance
	KalmanP0 float64 // initial error covariance

	// Jerk threshold calibration (diagnostic)
	JerkFactor     float64
	JerkPercentile float64
	JerkThreshold  float64

	// ROI SD method
	// each cell is 5ms: 5000 cells span 25s, a 1000 cell step is 5s
	WindowSize  int
	StepSize    int
	SDThreshold float64

	// Recovery score regression
	RSSACoefficient float64
	RSUACoefficient float64
	RSUAExponent    float64

	// MQTT (optional for the analyzer)
	MQTTBroker           string
	MQTTClientIDAnalyzer string
	MQTTClientIDWeb      string
	MQTTClientIDConsole  string
	TopicResult          string

	// Web Server
	WebServerPort int
}

// Package-level unexported variables for the singleton used by the cmd
// entry points. The analysis stages never read it; they receive
// pipeline.Params built by Config.Pipeline.
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Default returns the configuration used when a key is not set.
func Default() *Config {
	model := score.DefaultModel()
	opts := recording.DefaultOptions()
	return &Config{
		CaseDir:   ".",
		ResultLog: "RS_output.csv",
		PlotDir:   "plots",

		SkipRows:  opts.SkipRows,
		HeaderRow: opts.HeaderRow,

		TargetValue:     9.0,
		MovingAvgWindow: 10,

		KalmanQ:  1e-5,
		KalmanR:  1e-1,
		KalmanP0: 1.0,

		JerkFactor:     8.0,
		JerkPercentile: 95.0,
		JerkThreshold:  4.64e-07,

		WindowSize:  5000,
		StepSize:    1000,
		SDThreshold: 1e-08,

		RSSACoefficient: model.SACoefficient,
		RSUACoefficient: model.UACoefficient,
		RSUAExponent:    model.UAExponent,

		MQTTClientIDAnalyzer: "recovery-analyzer",
		MQTTClientIDWeb:      "recovery-web-subscriber",
		MQTTClientIDConsole:  "recovery-console-subscriber",
		TopicResult:          "recovery/result",

		WebServerPort: 8080,
	}
}

// Load reads the configuration file and returns a Config struct.
// Keys missing from the file keep their Default value.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	cfg := Default()
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	// Files
	case "CASE_DIR":
		c.CaseDir = value
	case "RESULT_LOG":
		c.ResultLog = value
	case "PLOT_DIR":
		c.PlotDir = value

	// Recording layout
	case "SKIP_ROWS":
		return parseInt(key, value, 0, 1000, &c.SkipRows)
	case "HEADER_ROW":
		return parseInt(key, value, 0, 1000, &c.HeaderRow)

	// Filters
	case "TARGET_VALUE":
		return parseFloat(key, value, &c.TargetValue)
	case "MOVING_AVG_WINDOW":
		return parseInt(key, value, 1, 1<<20, &c.MovingAvgWindow)
	case "KALMAN_Q":
		return parseFloat(key, value, &c.KalmanQ)
	case "KALMAN_R":
		return parseFloat(key, value, &c.KalmanR)
	case "KALMAN_P0":
		return parseFloat(key, value, &c.KalmanP0)

	// Jerk calibration
	case "JERK_FACTOR":
		return parseFloat(key, value, &c.JerkFactor)
	case "JERK_PERCENTILE":
		return parseFloat(key, value, &c.JerkPercentile)
	case "JERK_THRESHOLD":
		return parseFloat(key, value, &c.JerkThreshold)

	// ROI SD method
	case "WINDOW_SIZE":
		return parseInt(key, value, 1, 1<<30, &c.WindowSize)
	case "STEP_SIZE":
		return parseInt(key, value, 1, 1<<30, &c.StepSize)
	case "SD_THRESHOLD":
		return parseFloat(key, value, &c.SDThreshold)

	// Recovery score regression
	case "RS_SA_COEFFICIENT":
		return parseFloat(key, value, &c.RSSACoefficient)
	case "RS_UA_COEFFICIENT":
		return parseFloat(key, value, &c.RSUACoefficient)
	case "RS_UA_EXPONENT":
		return parseFloat(key, value, &c.RSUAExponent)

	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID_ANALYZER":
		c.MQTTClientIDAnalyzer = value
	case "MQTT_CLIENT_ID_WEB":
		c.MQTTClientIDWeb = value
	case "MQTT_CLIENT_ID_CONSOLE":
		c.MQTTClientIDConsole = value
	case "TOPIC_RESULT":
		c.TopicResult = value

	// Web Server
	case "WEB_SERVER_PORT":
		return parseInt(key, value, 1, 65535, &c.WebServerPort)

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

func parseInt(key, value string, lo, hi int, dst *int) error {
	v, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if v < lo || v > hi {
		return fmt.Errorf("%s must be %d-%d, got %d", key, lo, hi, v)
	}
	*dst = v
	return nil
}

func parseFloat(key, value string, dst *float64) error {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	*dst = v
	return nil
}

// validate checks cross-field constraints.
func (c *Config) validate() error {
	if c.ResultLog == "" {
		return fmt.Errorf("RESULT_LOG is required")
	}
	if c.HeaderRow > c.SkipRows {
		return fmt.Errorf("HEADER_ROW (%d) must not exceed SKIP_ROWS (%d)", c.HeaderRow, c.SkipRows)
	}
	if c.KalmanR <= 0 {
		return fmt.Errorf("KALMAN_R must be positive, got %g", c.KalmanR)
	}
	if c.KalmanQ < 0 || c.KalmanP0 < 0 {
		return fmt.Errorf("KALMAN_Q and KALMAN_P0 must not be negative")
	}
	if c.JerkPercentile < 0 || c.JerkPercentile > 100 {
		return fmt.Errorf("JERK_PERCENTILE must be 0-100, got %g", c.JerkPercentile)
	}
	if c.MQTTBroker != "" && c.TopicResult == "" {
		return fmt.Errorf("TOPIC_RESULT is required when MQTT_BROKER is set")
	}
	return nil
}

// RecordingOptions returns the recording file layout.
func (c *Config) RecordingOptions() recording.Options {
	return recording.Options{SkipRows: c.SkipRows, HeaderRow: c.HeaderRow}
}

// Pipeline returns the analysis parameters.
func (c *Config) Pipeline() pipeline.Params {
	return pipeline.Params{
		Conditioning: conditioning.Params{
			TargetValue:         c.TargetValue,
			MovingAverageWindow: c.MovingAvgWindow,
			Kalman: conditioning.KalmanParams{
				Q:  c.KalmanQ,
				R:  c.KalmanR,
				P0: c.KalmanP0,
			},
		},
		JerkThreshold:  c.JerkThreshold,
		JerkFactor:     c.JerkFactor,
		JerkPercentile: c.JerkPercentile,
		WindowSize:     c.WindowSize,
		StepSize:       c.StepSize,
		SDThreshold:    c.SDThreshold,
		Model: score.Model{
			SACoefficient: c.RSSACoefficient,
			UACoefficient: c.RSUACoefficient,
			UAExponent:    c.RSUAExponent,
		},
	}
}

// InitGlobal initializes the global configuration from file.
// Uses sync.Once to ensure this only runs once, even if called multiple times.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance.
// InitGlobal must be called first, or this will return nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
