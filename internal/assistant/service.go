// Package assistant is the core processing engine: it reads inbound
// messages from the bus, runs one orchestrated turn per message, and
// publishes the reply.
package assistant

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ledgermate/ledgermate/internal/bus"
	"github.com/ledgermate/ledgermate/internal/orchestrator"
	"github.com/ledgermate/ledgermate/internal/rates"
	"github.com/ledgermate/ledgermate/internal/session"
)

// Service consumes the inbound bus. Each message is handled in its own
// goroutine; the session serialises conversation state per chat.
type Service struct {
	bus      *bus.MessageBus
	engine   *orchestrator.Orchestrator
	sessions *session.Manager
	rates    *rates.Service
}

func NewService(b *bus.MessageBus, engine *orchestrator.Orchestrator, sessions *session.Manager, rs *rates.Service) *Service {
	return &Service{bus: b, engine: engine, sessions: sessions, rates: rs}
}

// Run reads from the inbound bus and processes each message in a
// goroutine. Blocks until ctx is cancelled.
func (s *Service) Run(ctx context.Context) error {
	slog.Info("assistant loop started")

	for {
		select {
		case msg := <-s.bus.Inbound:
			go s.handleMessage(ctx, msg)
		case <-ctx.Done():
			slog.Info("assistant loop stopping")
			return ctx.Err()
		}
	}
}

// ProcessDirect handles a message outside the bus (one-shot CLI use).
// Progress labels, if a sink is given, arrive before the returned text.
func (s *Service) ProcessDirect(ctx context.Context, content, channel, chatID string, onProgress orchestrator.ProgressSink) string {
	msg := bus.InboundMessage{
		Channel:  bus.Channel(channel),
		SenderID: "user",
		ChatID:   chatID,
		Content:  content,
	}
	return s.runTurn(ctx, msg, onProgress)
}

func (s *Service) handleMessage(ctx context.Context, msg bus.InboundMessage) {
	slog.Info("inbound message",
		"channel", msg.Channel, "chat", msg.ChatID, "preview", msg.ContentPreview())

	wantsProgress := msg.Channel == bus.ChannelCLI || msg.Channel == bus.ChannelWeb

	var sink orchestrator.ProgressSink
	if wantsProgress {
		sink = func(label string) {
			s.bus.Outbound <- bus.OutboundMessage{
				Channel:  msg.Channel,
				ChatID:   msg.ChatID,
				Content:  label,
				Metadata: map[string]any{"_progress": true},
			}
		}
	}

	content := s.runTurn(ctx, msg, sink)

	s.bus.Outbound <- bus.OutboundMessage{
		Channel:  msg.Channel,
		ChatID:   msg.ChatID,
		Content:  content,
		Metadata: msg.Metadata,
	}
}

// runTurn executes one orchestrated turn for msg and persists the
// conversation. Gateway failures become an apology rather than a crash;
// they are the only failure the user ever sees.
func (s *Service) runTurn(ctx context.Context, msg bus.InboundMessage, sink orchestrator.ProgressSink) string {
	sess := s.sessions.GetOrCreate(msg.SessionKey())
	sess.AddUser(msg.Content)

	var snapshot map[string]float64
	if s.rates != nil {
		snapshot = s.rates.Snapshot()
	}

	userID := userIDFor(msg)
	res, err := s.engine.RunTurnWithProgress(ctx, sess.History(), userID, msg.SessionKey(), snapshot, sink)
	if err != nil {
		slog.Error("turn failed", "chat", msg.ChatID, "err", err)
		return "Sorry, I couldn't reach the language model. Please try again."
	}

	sess.AddAssistant(res.Content)
	if err := s.sessions.Save(sess); err != nil {
		slog.Warn("failed to persist session", "key", msg.SessionKey(), "err", err)
	}
	return res.Content
}

// userIDFor derives the ledger user id from the sender. Telegram sender
// ids carry "id|username"; the numeric id is the stable part.
func userIDFor(msg bus.InboundMessage) string {
	id := msg.SenderID
	if i := strings.Index(id, "|"); i > 0 {
		id = id[:i]
	}
	if id == "" {
		id = "user"
	}
	return string(msg.Channel) + ":" + id
}
