package handlers

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/jaidev/gold-tracker-backend/internal/api/response"
	"github.com/jaidev/gold-tracker-backend/internal/stream"
)

// StreamHandler upgrades HTTP requests to websocket subscriptions on the
// realtime hub.
type StreamHandler struct {
	hub      *stream.Hub
	upgrader websocket.Upgrader
}

// NewStreamHandler creates a new StreamHandler for the given hub.
// checkOrigin decides which browser origins may subscribe.
func NewStreamHandler(hub *stream.Hub, checkOrigin func(r *http.Request) bool) *StreamHandler {
	return &StreamHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     checkOrigin,
		},
	}
}

// StreamMessage is one delivery on the subscription socket: the topic and
// its full current value.
type StreamMessage struct {
	Topic string `json:"topic"`
	Value any    `json:"value"`
}

// Subscribe handles GET requests that upgrade to a websocket delivering the
// topic's full value immediately and again on every change. Closing the
// socket unsubscribes.
//
// Endpoint: GET /api/stream/{topic}  (topic: goldRates or goldProfile)
// Error: 404 Not Found for an unknown topic
func (h *StreamHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	topic := chi.URLParam(r, "topic")
	if !stream.ValidTopic(topic) {
		response.RespondError(w, http.StatusNotFound, "unknown topic", topic)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	sub := h.hub.Subscribe(topic)

	done := make(chan struct{})
	go func() {
		// Drain control frames and detect the peer closing.
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	defer func() {
		sub.Cancel()
		conn.Close()
	}()

	for {
		select {
		case value := <-sub.C:
			if err := conn.WriteJSON(StreamMessage{Topic: topic, Value: value}); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
