// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/relabs-tech/recovery_score/internal/config"
)

func RunConsoleMQTT() error {
	cfg := config.Get()
	if cfg == nil {
		return fmt.Errorf("config not initialized")
	}
	if cfg.MQTTBroker == "" {
		return fmt.Errorf("MQTT_BROKER is required for the console")
	}

	client, err := subscribeResults(cfg, cfg.MQTTClientIDConsole, func(payload []byte) {
		res, err := DecodeResult(payload)
		if err != nil {
			log.Printf("console: %v", err)
			return
		}
		fmt.Println(formatResult(res))
	})
	if err != nil {
		return err
	}
	log.Printf("console: subscribed to %s at %s", cfg.TopicResult, cfg.MQTTBroker)

	// Wait for Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("console: shutting down")
	client.Disconnect(250)
	return nil
}

func formatResult(res ResultMessage) string {
	sumua := "-"
	if res.SumUA != nil {
		sumua = fmt.Sprintf("%.4f", *res.SumUA)
	}
	return fmt.Sprintf(
		"[RESULT] %s case=%s failed=%d sa_2axes=%.4f sumua=%s model=%s RS=%.4f",
		res.Date, res.CaseNumber, res.FailedAttempts, res.SA2Axes, sumua, res.Model, res.RecoveryScore,
	)
}
