// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/relabs-tech/recovery_score/internal/config"
	"github.com/relabs-tech/recovery_score/internal/resultlog"
)

const (
	clientQueue = 16
	writeWait   = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// resultServer serves the result log and pushes live results to browsers.
type resultServer struct {
	results *resultlog.Log

	mu         sync.Mutex
	latest     ResultMessage
	haveLatest bool
	clients    map[*wsClient]struct{}
}

// wsClient is one browser connection. Results are queued on send and
// written by the client's own goroutine, so a slow browser never holds
// up the server lock.
type wsClient struct {
	conn *websocket.Conn
	send chan ResultMessage
}

func (c *wsClient) writeLoop() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return
		}
		if err := c.conn.WriteJSON(msg); err != nil {
			log.Printf("web: websocket write error: %v", err)
			return
		}
	}
}

func newResultServer(results *resultlog.Log) *resultServer {
	return &resultServer{
		results: results,
		clients: make(map[*wsClient]struct{}),
	}
}

// RunWeb serves the results viewer. When a broker is configured, results
// published by the analyzer are pushed to connected browsers.
func RunWeb() error {
	cfg := config.Get()
	if cfg == nil {
		return fmt.Errorf("config not initialized")
	}

	srv := newResultServer(resultlog.Open(cfg.ResultLog))

	if cfg.MQTTBroker != "" {
		client, err := subscribeResults(cfg, cfg.MQTTClientIDWeb, func(payload []byte) {
			if err := srv.handleMessage(payload); err != nil {
				log.Printf("web: %v", err)
			}
		})
		if err != nil {
			return err
		}
		defer client.Disconnect(250)
		log.Printf("web: subscribed to MQTT topic %s at %s", cfg.TopicResult, cfg.MQTTBroker)
	} else {
		log.Println("web: MQTT_BROKER not set, live updates disabled")
	}

	mux := srv.routes()
	mux.Handle("/", http.FileServer(http.Dir("web")))

	addr := fmt.Sprintf(":%d", cfg.WebServerPort)
	log.Printf("web: server listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}

func (s *resultServer) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/results", s.handleResults)
	mux.HandleFunc("/api/results/latest", s.handleLatest)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// handleMessage records a published result and forwards it to every client.
func (s *resultServer) handleMessage(payload []byte) error {
	msg, err := DecodeResult(payload)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = msg
	s.haveLatest = true
	for c := range s.clients {
		select {
		case c.send <- msg:
		default:
			log.Printf("web: dropping websocket client with a full queue")
			s.removeClient(c)
		}
	}
	return nil
}

// removeClient unregisters c and stops its writer. s.mu must be held.
func (s *resultServer) removeClient(c *wsClient) {
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
	}
}

func (s *resultServer) handleResults(w http.ResponseWriter, r *http.Request) {
	entries, err := s.results.ReadAll()
	if err != nil {
		log.Printf("web: %v", err)
		http.Error(w, "result log unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, entries)
}

func (s *resultServer) handleLatest(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	latest, ok := s.latest, s.haveLatest
	s.mu.Unlock()

	if !ok {
		http.Error(w, "no data yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, latest)
}

// handleWS registers a browser for live results. The latest result, if
// any, is sent right away.
func (s *resultServer) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("web: websocket upgrade error: %v", err)
		return
	}

	c := &wsClient{conn: conn, send: make(chan ResultMessage, clientQueue)}
	s.mu.Lock()
	if s.haveLatest {
		c.send <- s.latest
	}
	s.clients[c] = struct{}{}
	s.mu.Unlock()
	go c.writeLoop()

	// Reads only detect the close; clients never send anything useful.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.mu.Lock()
	s.removeClient(c)
	s.mu.Unlock()
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("web: json encode error: %v", err)
	}
}
