package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ledgermate/ledgermate/internal/tools"
)

func decodeError(t *testing.T, result string) string {
	t.Helper()
	var payload map[string]string
	if err := json.Unmarshal([]byte(result), &payload); err != nil {
		t.Fatalf("result is not JSON: %v (%q)", err, result)
	}
	return payload["error"]
}

func TestExecuteUnknownTool(t *testing.T) {
	e := executor{registry: tools.NewRegistry()}

	result := e.execute(context.Background(), "createX", map[string]any{})
	if got := decodeError(t, result); got != "Unknown tool: createX" {
		t.Errorf("unexpected error payload %q", got)
	}
}

func TestExecuteToolError(t *testing.T) {
	failing := &stubTool{name: "createX", fn: func(context.Context, map[string]any) (string, error) {
		return "", errors.New("db down")
	}}
	e := executor{registry: tools.NewRegistry(failing)}

	result := e.execute(context.Background(), "createX", map[string]any{})
	if got := decodeError(t, result); got != "db down" {
		t.Errorf("unexpected error payload %q", got)
	}
}

func TestExecuteToolPanic(t *testing.T) {
	panicky := &stubTool{name: "boom", fn: func(context.Context, map[string]any) (string, error) {
		panic("nil pointer somewhere")
	}}
	e := executor{registry: tools.NewRegistry(panicky)}

	result := e.execute(context.Background(), "boom", nil)
	if got := decodeError(t, result); got != "nil pointer somewhere" {
		t.Errorf("panic must become an error payload, got %q", got)
	}
}

func TestExecuteInvalidArguments(t *testing.T) {
	strict := &stubTool{name: "strict", fn: func(context.Context, map[string]any) (string, error) {
		t.Fatal("tool must not run with invalid arguments")
		return "", nil
	}}
	reg := tools.NewRegistry()
	reg.Add(&schemaTool{stubTool: strict})

	e := executor{registry: reg}
	result := e.execute(context.Background(), "strict", map[string]any{})
	if got := decodeError(t, result); got == "" {
		t.Errorf("expected validation error payload, got %q", result)
	}
}

// schemaTool overrides the permissive stub schema with a required field.
type schemaTool struct {
	*stubTool
}

func (t *schemaTool) Parameters() json.RawMessage {
	return json.RawMessage(`{"type":"object","properties":{"amount":{"type":"number"}},"required":["amount"]}`)
}

func TestExecuteSuccess(t *testing.T) {
	e := executor{registry: tools.NewRegistry(okTool("list_clients"))}

	result := e.execute(context.Background(), "list_clients", map[string]any{})
	if decodeError(t, result) != "" {
		t.Errorf("unexpected error in %q", result)
	}
}
