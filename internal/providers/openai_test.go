package providers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ledgermate/ledgermate/internal/schema"
)

func TestChat_PlainAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		io.WriteString(w, `{"choices":[{"message":{"content":"hello"},"finish_reason":"stop"}],"usage":{"prompt_tokens":5,"completion_tokens":2,"total_tokens":7}}`)
	}))
	defer srv.Close()

	p := NewOpenAIProvider("test-key", srv.URL, "gpt-4o")
	msgs := schema.NewMessages(schema.NewUserMessage("hi"))

	resp, err := p.Chat(context.Background(), msgs, nil, schema.NewChatOptions("", 0, 0))
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if resp.Text() != "hello" {
		t.Errorf("expected content hello, got %q", resp.Text())
	}
	if resp.HasToolCalls() {
		t.Error("expected no tool calls")
	}
	if resp.Usage["total_tokens"] != 7 {
		t.Errorf("unexpected usage: %+v", resp.Usage)
	}
}

func TestChat_ToolCalls(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		data, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(data, &body); err != nil {
			t.Fatalf("request not JSON: %v", err)
		}
		if body["tool_choice"] != "auto" {
			t.Errorf("expected tool_choice auto, got %v", body["tool_choice"])
		}
		io.WriteString(w, `{"choices":[{"message":{"content":null,"tool_calls":[{"id":"call_1","function":{"name":"add_expense","arguments":"{\"amount\":12}"}}]},"finish_reason":"tool_calls"}]}`)
	}))
	defer srv.Close()

	p := NewOpenAIProvider("k", srv.URL, "gpt-4o")
	msgs := schema.NewMessages(schema.NewUserMessage("log $12"))
	tools := []map[string]any{{"type": "function", "function": map[string]any{"name": "add_expense"}}}

	resp, err := p.Chat(context.Background(), msgs, tools, schema.NewChatOptions("gpt-4o", 100, 0.2))
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if len(resp.ToolCalls) != 1 {
		t.Fatalf("expected 1 tool call, got %d", len(resp.ToolCalls))
	}
	tc := resp.ToolCalls[0]
	if tc.ID != "call_1" || tc.Name != "add_expense" {
		t.Errorf("unexpected tool call: %+v", tc)
	}
	if tc.Arguments["amount"] != float64(12) {
		t.Errorf("unexpected arguments: %+v", tc.Arguments)
	}
	if resp.Content != nil {
		t.Errorf("expected nil content, got %q", *resp.Content)
	}
}

func TestChat_BadArgumentsFallBackToEmptyMap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"choices":[{"message":{"tool_calls":[{"id":"call_1","function":{"name":"x","arguments":"{broken"}}]},"finish_reason":"tool_calls"}]}`)
	}))
	defer srv.Close()

	p := NewOpenAIProvider("k", srv.URL, "gpt-4o")
	resp, err := p.Chat(context.Background(), schema.NewMessages(), nil, schema.ChatOptions{})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if len(resp.ToolCalls) != 1 || len(resp.ToolCalls[0].Arguments) != 0 {
		t.Errorf("expected empty arguments map, got %+v", resp.ToolCalls)
	}
}

func TestChat_GatewayErrorIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"overloaded"}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewOpenAIProvider("k", srv.URL, "gpt-4o")
	_, err := p.Chat(context.Background(), schema.NewMessages(), nil, schema.ChatOptions{})
	if err == nil {
		t.Fatal("expected error for HTTP 503")
	}
}

func TestWireMessages_ToolRoundTrip(t *testing.T) {
	content := "checking"
	msgs := schema.NewMessages()
	msgs.AddSystem("sys")
	msgs.AddAssistant(&content, []schema.ToolCall{{ID: "call_9", Name: "find_client", Arguments: map[string]any{"name": "Acme"}}})
	msgs.AddToolResult("call_9", "find_client", `{"found":true}`)

	wire := wireMessages(msgs)
	if len(wire) != 3 {
		t.Fatalf("expected 3 wire messages, got %d", len(wire))
	}
	tool := wire[2]
	if tool["tool_call_id"] != "call_9" || tool["name"] != "find_client" {
		t.Errorf("tool message missing linkage: %+v", tool)
	}
	calls, ok := wire[1]["tool_calls"].([]map[string]any)
	if !ok || len(calls) != 1 {
		t.Fatalf("assistant message missing tool_calls: %+v", wire[1])
	}
	if calls[0]["id"] != "call_9" {
		t.Errorf("unexpected call id: %+v", calls[0])
	}
}
