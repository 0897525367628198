package channels

import (
	"context"
	"log/slog"

	"github.com/ledgermate/ledgermate/internal/bus"
	"github.com/ledgermate/ledgermate/internal/config"
	"github.com/ledgermate/ledgermate/internal/schema"
)

// Manager owns all enabled channels and routes outbound messages.
type Manager struct {
	channels map[string]schema.Channel
	b        *bus.MessageBus
}

// NewManager creates a Manager and initialises all enabled channels.
// The CLI channel is always registered.
func NewManager(cfg *config.Config, b *bus.MessageBus) *Manager {
	m := &Manager{
		channels: make(map[string]schema.Channel),
		b:        b,
	}

	cli := NewCLIChannel(b)
	m.channels[cli.Name()] = cli
	slog.Info("channel enabled", "name", cli.Name())

	if cfg.Telegram.Enabled {
		ch := NewTelegramChannel(cfg.Telegram, b)
		m.channels[ch.Name()] = ch
		slog.Info("channel enabled", "name", ch.Name())
	}

	return m
}

// Register adds a channel after construction (used for the websocket
// gateway, which needs its own listener plumbing).
func (m *Manager) Register(ch schema.Channel) {
	m.channels[ch.Name()] = ch
	slog.Info("channel enabled", "name", ch.Name())
}

// EnabledChannels returns the names of all enabled channels.
func (m *Manager) EnabledChannels() []string {
	names := make([]string, 0, len(m.channels))
	for n := range m.channels {
		names = append(names, n)
	}
	return names
}

// StartAll starts all channels concurrently and dispatches outbound
// messages. Blocks until ctx is cancelled.
func (m *Manager) StartAll(ctx context.Context) error {
	go m.dispatchOutbound(ctx)

	for name, ch := range m.channels {
		go func(n string, c schema.Channel) {
			slog.Info("starting channel", "name", n)
			if err := c.Start(ctx); err != nil && ctx.Err() == nil {
				slog.Error("channel exited with error", "name", n, "err", err)
			}
		}(name, ch)
	}

	<-ctx.Done()
	return ctx.Err()
}

// dispatchOutbound reads from the bus and routes each message to the
// owning channel's Send method.
func (m *Manager) dispatchOutbound(ctx context.Context) {
	for {
		select {
		case msg := <-m.b.Outbound:
			ch, ok := m.channels[string(msg.Channel)]
			if !ok {
				slog.Debug("unknown channel for outbound message", "channel", msg.Channel)
				continue
			}
			if err := ch.Send(ctx, msg); err != nil {
				slog.Error("send error", "channel", msg.Channel, "err", err)
			}
		case <-ctx.Done():
			return
		}
	}
}
