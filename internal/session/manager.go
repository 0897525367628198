// Package session manages per-conversation history stored as JSONL files.
//
// File format:
//
//	Line 1:  {"_type":"metadata","key":"…","created_at":"…","updated_at":"…","metadata":{…}}
//	Line 2+: one JSON message object per line
package session

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ledgermate/ledgermate/internal/schema"
)

// Manager loads and persists sessions as JSONL files.
type Manager struct {
	sessionsDir string
	cache       sync.Map // key → *Session
}

// NewManager creates a Manager rooted at the workspace directory.
// It creates the sessions subdirectory if necessary.
func NewManager(workspace string) (*Manager, error) {
	dir := filepath.Join(workspace, "sessions")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create sessions dir: %w", err)
	}
	return &Manager{sessionsDir: dir}, nil
}

// GetOrCreate returns the cached session for key, loading from disk if
// needed, or creating an empty new one.
func (m *Manager) GetOrCreate(key string) *Session {
	if v, ok := m.cache.Load(key); ok {
		return v.(*Session)
	}

	s := m.load(key)
	if s == nil {
		s = &Session{
			Key:       key,
			Messages:  schema.NewMessages(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
			Metadata:  map[string]any{},
		}
	}

	actual, _ := m.cache.LoadOrStore(key, s)
	return actual.(*Session)
}

// Save writes the session to disk and updates the cache.
func (m *Manager) Save(s *Session) error {
	path := m.sessionPath(s.Key)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	s.mu.Lock()
	msgs := s.Messages.Clone()
	meta := map[string]any{
		"_type":      "metadata",
		"key":        s.Key,
		"created_at": s.CreatedAt.UTC().Format(time.RFC3339),
		"updated_at": time.Now().UTC().Format(time.RFC3339),
		"metadata":   s.Metadata,
	}
	s.mu.Unlock()

	if err := enc.Encode(meta); err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	for _, msg := range msgs.Messages {
		if err := enc.Encode(messageToWire(msg)); err != nil {
			return fmt.Errorf("encode message: %w", err)
		}
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write session %s: %w", path, err)
	}

	m.cache.Store(s.Key, s)
	return nil
}

// Invalidate removes a session from the in-memory cache.
func (m *Manager) Invalidate(key string) {
	m.cache.Delete(key)
}

// SessionInfo summarises one stored conversation.
type SessionInfo struct {
	Key       string
	CreatedAt string
	UpdatedAt string
	Path      string
}

// ListSessions returns metadata for all sessions, newest-first.
func (m *Manager) ListSessions() []SessionInfo {
	entries, _ := filepath.Glob(filepath.Join(m.sessionsDir, "*.jsonl"))
	var out []SessionInfo

	for _, path := range entries {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		scanner := bufio.NewScanner(f)
		if scanner.Scan() {
			var data map[string]any
			if json.Unmarshal(scanner.Bytes(), &data) == nil && data["_type"] == "metadata" {
				key, _ := data["key"].(string)
				if key == "" {
					key = strings.TrimSuffix(filepath.Base(path), ".jsonl")
					key = strings.Replace(key, "_", ":", 1)
				}
				created, _ := data["created_at"].(string)
				updated, _ := data["updated_at"].(string)
				out = append(out, SessionInfo{Key: key, CreatedAt: created, UpdatedAt: updated, Path: path})
			}
		}
		f.Close()
	}

	// RFC 3339 strings sort lexicographically.
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt > out[j].UpdatedAt })
	return out
}

// ---------------------------------------------------------------------------
// Wire format helpers

// wireMessage is the on-disk JSON representation of a message.
type wireMessage struct {
	Role       string           `json:"role"`
	Content    any              `json:"content"`
	ToolCalls  []map[string]any `json:"tool_calls,omitempty"`
	ToolCallID string           `json:"tool_call_id,omitempty"`
	Name       string           `json:"name,omitempty"`
	Timestamp  string           `json:"timestamp"`
}

func messageToWire(msg schema.Message) wireMessage {
	w := wireMessage{
		Role:       msg.Role,
		ToolCallID: msg.ToolCallID,
		Name:       msg.ToolName,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
	if msg.Content != nil {
		w.Content = *msg.Content
	}
	for _, tc := range msg.ToolCalls {
		w.ToolCalls = append(w.ToolCalls, tc.ToWireMap())
	}
	return w
}

func wireToMessage(data map[string]any) schema.Message {
	role, _ := data["role"].(string)

	var msg schema.Message
	msg.Role = role
	if content, ok := data["content"].(string); ok {
		msg.Content = &content
	}

	if tcs, ok := data["tool_calls"].([]any); ok {
		for _, tc := range tcs {
			tcm, ok := tc.(map[string]any)
			if !ok {
				continue
			}
			fn, _ := tcm["function"].(map[string]any)
			id, _ := tcm["id"].(string)
			name, _ := fn["name"].(string)
			argsStr, _ := fn["arguments"].(string)
			var args map[string]any
			_ = json.Unmarshal([]byte(argsStr), &args)
			msg.ToolCalls = append(msg.ToolCalls, schema.ToolCall{ID: id, Name: name, Arguments: args})
		}
	}

	if id, ok := data["tool_call_id"].(string); ok {
		msg.ToolCallID = id
	}
	if name, ok := data["name"].(string); ok {
		msg.ToolName = name
	}
	return msg
}

// ---------------------------------------------------------------------------
// Internal helpers

func (m *Manager) sessionPath(key string) string {
	name := safeFilename(strings.ReplaceAll(key, ":", "_"))
	return filepath.Join(m.sessionsDir, name+".jsonl")
}

// safeFilename replaces filesystem-unsafe characters with underscores.
func safeFilename(name string) string {
	const unsafe = `<>:"/\|?*`
	var b strings.Builder
	for _, r := range name {
		if strings.ContainsRune(unsafe, r) {
			b.WriteByte('_')
		} else {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

func (m *Manager) load(key string) *Session {
	f, err := os.Open(m.sessionPath(key))
	if err != nil {
		return nil
	}
	defer f.Close()

	messages := schema.NewMessages()
	meta := map[string]any{}
	var createdAt time.Time

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1<<20), 1<<20)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var data map[string]any
		if err := json.Unmarshal(line, &data); err != nil {
			slog.Warn("skipping malformed session line", "key", key, "err", err)
			continue
		}

		if data["_type"] == "metadata" {
			if m2, ok := data["metadata"].(map[string]any); ok {
				meta = m2
			}
			if ts, ok := data["created_at"].(string); ok {
				if t, err := time.Parse(time.RFC3339, ts); err == nil {
					createdAt = t
				}
			}
		} else {
			messages.Add(wireToMessage(data))
		}
	}

	if err := scanner.Err(); err != nil {
		slog.Warn("error reading session file", "key", key, "err", err)
		return nil
	}
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	return &Session{
		Key:       key,
		Messages:  messages,
		CreatedAt: createdAt,
		UpdatedAt: time.Now(),
		Metadata:  meta,
	}
}
