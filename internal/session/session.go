package session

import (
	"sync"
	"time"

	"github.com/ledgermate/ledgermate/internal/schema"
)

// Session holds one conversation's messages and metadata. The
// orchestrator never sees a Session; it receives a history snapshot and
// the assistant appends the outcome afterwards.
type Session struct {
	Key       string
	Messages  schema.Messages
	CreatedAt time.Time
	UpdatedAt time.Time
	Metadata  map[string]any

	mu sync.Mutex
}

// AddUser appends a user message.
func (s *Session) AddUser(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Messages.AddUser(content)
	s.UpdatedAt = time.Now()
}

// AddAssistant appends a plain assistant message.
func (s *Session) AddAssistant(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Messages.AddAssistant(&content, nil)
	s.UpdatedAt = time.Now()
}

// History returns a snapshot of the message list. The caller owns the
// copy; further appends to the session do not affect it.
func (s *Session) History() schema.Messages {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Messages.Clone()
}

// Len returns the number of messages in the session.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Messages.Len()
}

// Clear resets the conversation.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Messages = schema.NewMessages()
	s.UpdatedAt = time.Now()
}
