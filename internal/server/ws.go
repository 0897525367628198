// Package server exposes the assistant over a WebSocket gateway.
//
// Each connection is one conversation. The client sends text frames
// {"type":"message","content":"…"}; the server answers with
// {"type":"progress","label":"…"} frames while the turn runs and a final
// {"type":"answer","content":"…"} frame. Progress frames are coarse
// phase labels, not token streaming.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ledgermate/ledgermate/internal/bus"
)

// WSGateway is the "web" channel: a WebSocket server that feeds the
// message bus and routes replies back to the owning connection.
type WSGateway struct {
	port int
	b    *bus.MessageBus

	mu    sync.Mutex
	conns map[string]*wsConn // chatID → connection
}

type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex // gorilla allows one concurrent writer
}

func (c *wsConn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func NewWSGateway(port int, b *bus.MessageBus) *WSGateway {
	return &WSGateway{
		port:  port,
		b:     b,
		conns: make(map[string]*wsConn),
	}
}

func (g *WSGateway) Name() string { return string(bus.ChannelWeb) }

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1 << 12,
	WriteBufferSize: 1 << 12,
	// The gateway binds to localhost; browser origin checks add nothing.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Start serves the WebSocket endpoint until ctx is cancelled.
func (g *WSGateway) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", g.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf("127.0.0.1:%d", g.port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	slog.Info("websocket gateway listening", "addr", srv.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return fmt.Errorf("websocket gateway: %w", err)
	}
}

// clientFrame is what the browser sends.
type clientFrame struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// serverFrame is what the gateway sends back.
type serverFrame struct {
	Type    string `json:"type"` // "progress" | "answer" | "error"
	Label   string `json:"label,omitempty"`
	Content string `json:"content,omitempty"`
}

func (g *WSGateway) handleWS(w http.ResponseWriter, r *http.Request) {
	raw, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "err", err)
		return
	}

	chatID := uuid.NewString()
	c := &wsConn{conn: raw}

	g.mu.Lock()
	g.conns[chatID] = c
	g.mu.Unlock()

	slog.Info("websocket client connected", "chat", chatID, "remote", r.RemoteAddr)

	defer func() {
		g.mu.Lock()
		delete(g.conns, chatID)
		g.mu.Unlock()
		raw.Close()
		slog.Info("websocket client disconnected", "chat", chatID)
	}()

	for {
		_, data, err := raw.ReadMessage()
		if err != nil {
			return
		}

		var frame clientFrame
		if err := json.Unmarshal(data, &frame); err != nil || frame.Type != "message" {
			_ = c.writeJSON(serverFrame{Type: "error", Content: "expected {\"type\":\"message\",\"content\":…}"})
			continue
		}
		if frame.Content == "" {
			continue
		}

		g.b.Inbound <- bus.InboundMessage{
			Channel:   bus.ChannelWeb,
			SenderID:  chatID,
			ChatID:    chatID,
			Content:   frame.Content,
			Timestamp: time.Now(),
		}
	}
}

// Send routes an assistant reply to the owning connection. Progress
// messages become progress frames; everything else is the final answer.
func (g *WSGateway) Send(_ context.Context, msg bus.OutboundMessage) error {
	g.mu.Lock()
	c, ok := g.conns[msg.ChatID]
	g.mu.Unlock()
	if !ok {
		return fmt.Errorf("websocket: no connection for chat %s", msg.ChatID)
	}

	if prog, _ := msg.Metadata["_progress"].(bool); prog {
		return c.writeJSON(serverFrame{Type: "progress", Label: msg.Content})
	}
	return c.writeJSON(serverFrame{Type: "answer", Content: msg.Content})
}
