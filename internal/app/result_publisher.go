// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/recovery_score/internal/config"
	"github.com/relabs-tech/recovery_score/internal/resultlog"
	"github.com/relabs-tech/recovery_score/internal/score"
)

// ResultMessage is the JSON payload published for each analyzed case.
type ResultMessage struct {
	RunID string     `json:"run_id"`
	Model score.Kind `json:"model"`
	resultlog.Entry
}

// PublishResult publishes msg as a retained message on the result topic.
func PublishResult(cfg *config.Config, msg ResultMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("json marshal error (result): %w", err)
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDAnalyzer)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("MQTT connect error: %w", token.Error())
	}
	defer client.Disconnect(250)

	if token := client.Publish(cfg.TopicResult, 1, true, payload); token.Wait() && token.Error() != nil {
		return fmt.Errorf("MQTT publish error (%s): %w", cfg.TopicResult, token.Error())
	}
	return nil
}

// subscribeResults connects as clientID and passes every payload received
// on the result topic to handle. Retained results arrive right away.
func subscribeResults(cfg *config.Config, clientID string, handle func(payload []byte)) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(clientID)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("MQTT connect error: %w", token.Error())
	}

	token := client.Subscribe(cfg.TopicResult, 1, func(_ mqtt.Client, msg mqtt.Message) {
		handle(msg.Payload())
	})
	token.Wait()
	if token.Error() != nil {
		client.Disconnect(250)
		return nil, fmt.Errorf("MQTT subscribe error (%s): %w", cfg.TopicResult, token.Error())
	}
	return client, nil
}

// DecodeResult parses a published result payload.
func DecodeResult(payload []byte) (ResultMessage, error) {
	var msg ResultMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return ResultMessage{}, fmt.Errorf("result unmarshal error: %w", err)
	}
	return msg, nil
}
