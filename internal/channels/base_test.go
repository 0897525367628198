package channels

import (
	"strings"
	"testing"

	"github.com/ledgermate/ledgermate/internal/bus"
)

func TestIsAllowedEmptyListAllowsAll(t *testing.T) {
	b := NewBase(bus.ChannelCLI, bus.NewMessageBus(1), nil)
	if !b.IsAllowed("anyone") {
		t.Error("empty allowlist should allow everyone")
	}
}

func TestIsAllowedMatchesCompositeID(t *testing.T) {
	b := NewBase(bus.ChannelTelegram, bus.NewMessageBus(1), []string{"alice", "42"})

	cases := []struct {
		sender string
		want   bool
	}{
		{"42|bob", true},      // numeric id matches
		{"7|alice", true},     // username matches
		{"alice", true},       // plain match
		{"7|mallory", false},  // neither part on the list
		{"99", false},         // plain mismatch
	}
	for _, tc := range cases {
		if got := b.IsAllowed(tc.sender); got != tc.want {
			t.Errorf("IsAllowed(%q) = %v, want %v", tc.sender, got, tc.want)
		}
	}
}

func TestHandleMessagePushesToBus(t *testing.T) {
	mb := bus.NewMessageBus(1)
	b := NewBase(bus.ChannelCLI, mb, nil)

	b.HandleMessage("local", "direct", "hello", map[string]any{"k": "v"})

	msg := <-mb.Inbound
	if msg.Channel != bus.ChannelCLI || msg.SenderID != "local" || msg.Content != "hello" {
		t.Errorf("unexpected inbound message: %+v", msg)
	}
	if msg.SessionKey() != "cli:direct" {
		t.Errorf("SessionKey() = %q, want %q", msg.SessionKey(), "cli:direct")
	}
}

func TestHandleMessageBlocksDeniedSender(t *testing.T) {
	mb := bus.NewMessageBus(1)
	b := NewBase(bus.ChannelTelegram, mb, []string{"alice"})

	b.HandleMessage("mallory", "direct", "hi", nil)
	if mb.InboundSize() != 0 {
		t.Error("denied sender should not reach the bus")
	}
}

func TestSplitMessagePreservesContent(t *testing.T) {
	content := strings.Repeat("line one\nline two\n", 50)
	chunks := splitMessage(content, 100)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 100 {
			t.Errorf("chunk %d length %d exceeds limit", i, len(c))
		}
	}
}

func TestSplitMessageShortContentIsOneChunk(t *testing.T) {
	chunks := splitMessage("short", 100)
	if len(chunks) != 1 || chunks[0] != "short" {
		t.Errorf("splitMessage(short) = %v", chunks)
	}
}
