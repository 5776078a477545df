package web

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/propwatch/propwatch/internal/stream"
)

// handleStream serves GET /api/stream/listings as server-sent events.
// Each frame carries one JSON-encoded event; the connection stays open
// until the client disconnects.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		apiError(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	send := func(ev stream.Event) error {
		data, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("encoding event: %w", err)
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	}

	pub := stream.NewPublisher(stream.NewSimulator(s.listingRepo), s.streamIntervals)
	if err := pub.Run(r.Context(), send); err != nil {
		slog.Debug("event stream closed", "error", err)
	}
}

var upgrader = websocket.Upgrader{
	// The API is served cross-origin (see the CORS middleware), so the
	// websocket endpoint accepts any origin too.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleWebsocket serves GET /ws/listings: the same event feed as the SSE
// endpoint, one JSON event per text message.
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer func() {
		if err := conn.Close(); err != nil {
			slog.Debug("closing websocket", "error", err)
		}
	}()

	// The read loop only exists to observe the client going away.
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	send := func(ev stream.Event) error {
		return conn.WriteJSON(ev)
	}

	pub := stream.NewPublisher(stream.NewSimulator(s.listingRepo), s.streamIntervals)
	if err := pub.Run(ctx, send); err != nil {
		slog.Debug("websocket stream closed", "error", err)
	}
}
