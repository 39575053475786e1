package http

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/nats-io/nats.go"

	"github.com/samirrijal/meetpoint/internal/pkg/metrics"
)

// resultsSubject is the live feed of completed midpoint queries.
const resultsSubject = "meetpoint.results.>"

// wsMessage is sent from the client to pause or resume the feed.
type wsMessage struct {
	Action string `json:"action"` // "subscribe" | "unsubscribe"
}

// WebSocketHandler upgrades to WebSocket and relays completed results from
// NATS to connected clients. Every client starts subscribed; a client that
// only wants to poll can send {"action":"unsubscribe"}.
func WebSocketHandler(nc *nats.Conn) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		metrics.ActiveWebSockets.Inc()
		defer metrics.ActiveWebSockets.Dec()

		remoteAddr := c.RemoteAddr().String()
		slog.Info("ws client connected", "addr", remoteAddr)

		var mu sync.Mutex
		writeJSON := func(v interface{}) error {
			data, err := json.Marshal(v)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			return c.WriteMessage(websocket.TextMessage, data)
		}

		var sub *nats.Subscription
		subscribe := func() error {
			s, err := nc.Subscribe(resultsSubject, func(msg *nats.Msg) {
				_ = writeJSON(json.RawMessage(msg.Data))
			})
			if err != nil {
				return err
			}
			sub = s
			return nil
		}

		if err := subscribe(); err != nil {
			slog.Error("ws subscribe failed", "error", err)
			return
		}

		// Keep-alive ping
		done := make(chan struct{})
		go func() {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					mu.Lock()
					err := c.WriteMessage(websocket.PingMessage, nil)
					mu.Unlock()
					if err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()

		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				break
			}

			var m wsMessage
			if err := json.Unmarshal(msg, &m); err != nil {
				_ = writeJSON(map[string]string{"error": "invalid JSON"})
				continue
			}

			switch m.Action {
			case "subscribe":
				if sub != nil {
					_ = writeJSON(map[string]string{"status": "already subscribed"})
					continue
				}
				if err := subscribe(); err != nil {
					_ = writeJSON(map[string]string{"error": "subscribe failed: " + err.Error()})
					continue
				}
				_ = writeJSON(map[string]string{"status": "subscribed"})

			case "unsubscribe":
				if sub == nil {
					_ = writeJSON(map[string]string{"error": "not subscribed"})
					continue
				}
				_ = sub.Unsubscribe()
				sub = nil
				_ = writeJSON(map[string]string{"status": "unsubscribed"})

			default:
				_ = writeJSON(map[string]string{"error": "unknown action: " + m.Action})
			}
		}

		close(done)
		if sub != nil {
			_ = sub.Unsubscribe()
		}
		slog.Info("ws client disconnected", "addr", remoteAddr)
	}
}
