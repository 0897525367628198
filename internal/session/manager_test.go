package session

import (
	"testing"

	"github.com/ledgermate/ledgermate/internal/schema"
)

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	s := m.GetOrCreate("telegram:42")
	s.AddUser("log a 30 euro taxi ride")
	s.AddAssistant("Recorded a 30.00 EUR expense under Travel.")
	if err := m.Save(s); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Drop the cache and force a disk load.
	m.Invalidate("telegram:42")
	loaded := m.GetOrCreate("telegram:42")
	if loaded.Len() != 2 {
		t.Fatalf("expected 2 messages after reload, got %d", loaded.Len())
	}

	history := loaded.History()
	if history.Messages[0].Role != "user" || *history.Messages[0].Content != "log a 30 euro taxi ride" {
		t.Errorf("unexpected first message: %+v", history.Messages[0])
	}
}

func TestToolCallsSurviveRoundTrip(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	s := m.GetOrCreate("cli:local")
	s.Messages.AddAssistant(nil, []schema.ToolCall{
		{ID: "call_1", Name: "add_expense", Arguments: map[string]any{"amount": 30.0}},
	})
	s.Messages.AddToolResult("call_1", "add_expense", `{"created":{"id":1}}`)
	if err := m.Save(s); err != nil {
		t.Fatalf("save: %v", err)
	}

	m.Invalidate("cli:local")
	loaded := m.GetOrCreate("cli:local")

	asst := loaded.Messages.Messages[0]
	if len(asst.ToolCalls) != 1 || asst.ToolCalls[0].Name != "add_expense" {
		t.Fatalf("tool calls lost: %+v", asst)
	}
	if asst.ToolCalls[0].Arguments["amount"] != float64(30) {
		t.Errorf("arguments lost: %+v", asst.ToolCalls[0].Arguments)
	}

	result := loaded.Messages.Messages[1]
	if result.Role != "tool" || result.ToolCallID != "call_1" {
		t.Errorf("tool result lost linkage: %+v", result)
	}
}

func TestListSessionsNewestFirst(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	a := m.GetOrCreate("a")
	if err := m.Save(a); err != nil {
		t.Fatal(err)
	}
	b := m.GetOrCreate("b")
	if err := m.Save(b); err != nil {
		t.Fatal(err)
	}

	infos := m.ListSessions()
	if len(infos) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(infos))
	}
}

func TestUnsafeKeyCharacters(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	s := m.GetOrCreate(`web:user/one?`)
	s.AddUser("hi")
	if err := m.Save(s); err != nil {
		t.Fatalf("save with unsafe key: %v", err)
	}
}
