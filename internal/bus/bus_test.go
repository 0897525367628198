package bus

import (
	"strings"
	"testing"
)

func TestSessionKey(t *testing.T) {
	msg := InboundMessage{Channel: ChannelTelegram, ChatID: "12345"}
	if got := msg.SessionKey(); got != "telegram:12345" {
		t.Errorf("SessionKey() = %q, want %q", got, "telegram:12345")
	}
}

func TestContentPreviewTruncates(t *testing.T) {
	msg := InboundMessage{Content: strings.Repeat("x", 200)}
	preview := msg.ContentPreview()
	if len(preview) != 83 {
		t.Errorf("preview length = %d, want 83", len(preview))
	}
	if !strings.HasSuffix(preview, "...") {
		t.Errorf("preview %q should end with ellipsis", preview)
	}

	short := InboundMessage{Content: "hi"}
	if got := short.ContentPreview(); got != "hi" {
		t.Errorf("short preview = %q, want %q", got, "hi")
	}
}

func TestBusBuffering(t *testing.T) {
	b := NewMessageBus(2)

	b.Inbound <- InboundMessage{Channel: ChannelCLI, Content: "one"}
	b.Inbound <- InboundMessage{Channel: ChannelCLI, Content: "two"}
	if b.InboundSize() != 2 {
		t.Fatalf("InboundSize() = %d, want 2", b.InboundSize())
	}

	got := <-b.Inbound
	if got.Content != "one" {
		t.Errorf("first message = %q, want %q", got.Content, "one")
	}

	b.Outbound <- OutboundMessage{Channel: ChannelCLI, Content: "reply"}
	if b.OutboundSize() != 1 {
		t.Errorf("OutboundSize() = %d, want 1", b.OutboundSize())
	}
}
