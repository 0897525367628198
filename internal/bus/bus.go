// Package bus defines the message types that flow between chat channels
// and the assistant core.
package bus

import "time"

// Channel names a message source or destination.
type Channel string

const (
	ChannelTelegram Channel = "telegram"
	ChannelCLI      Channel = "cli"
	ChannelWeb      Channel = "web"
	ChannelSystem   Channel = "system"
)

// InboundMessage is a message received from a chat channel.
type InboundMessage struct {
	Channel   Channel
	SenderID  string // user identifier within the channel
	ChatID    string // chat / DM identifier
	Content   string
	Timestamp time.Time
	Metadata  map[string]any // channel-specific extras (message_id, username, …)
}

// SessionKey returns the key used to look up the conversation session.
// Format: "channel:chat_id".
func (m InboundMessage) SessionKey() string {
	return string(m.Channel) + ":" + m.ChatID
}

// ContentPreview returns a short snippet of the message content for logging.
func (m InboundMessage) ContentPreview() string {
	preview := m.Content
	if len(preview) > 80 {
		preview = preview[:80] + "..."
	}
	return preview
}

// OutboundMessage is a response to be sent back through a channel.
type OutboundMessage struct {
	Channel  Channel
	ChatID   string
	Content  string
	Metadata map[string]any // channel-specific hints (message_id for replies, …)
}

// MessageBus decouples chat channels from the assistant core.
//
// Channels push InboundMessages; the assistant consumes them, runs the
// turn, and pushes OutboundMessages back for the channel manager to
// route. Both directions are buffered so senders never block on a slow
// consumer.
type MessageBus struct {
	Inbound  chan InboundMessage  // channels → assistant
	Outbound chan OutboundMessage // assistant → channels
}

func NewMessageBus(bufSize int) *MessageBus {
	return &MessageBus{
		Inbound:  make(chan InboundMessage, bufSize),
		Outbound: make(chan OutboundMessage, bufSize),
	}
}

func (b *MessageBus) InboundSize() int  { return len(b.Inbound) }
func (b *MessageBus) OutboundSize() int { return len(b.Outbound) }
