package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ledgermate/ledgermate/internal/shared/llmutils"
	"github.com/ledgermate/ledgermate/internal/tools"
)

// ToolResult is the audit record of one executed tool call, returned to
// the caller alongside the final content. It is diagnostic data, not
// required for correctness.
type ToolResult struct {
	ToolName string `json:"tool_name"`
	Result   string `json:"result"`
}

// executor dispatches tool calls against the registry with isolated
// error handling. Every call, success or failure, yields exactly one
// JSON result string; nothing escapes past this boundary. One tool's
// failure must never abort the batch or the turn.
type executor struct {
	registry *tools.Registry
}

// execute runs one tool call and returns its JSON result. Unknown
// names, validation failures, returned errors, and panics all become a
// {"error": ...} payload the model can see and recover from.
func (e executor) execute(ctx context.Context, name string, args map[string]any) (result string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("tool panicked", "tool", name, "panic", r)
			result = errorPayload(fmt.Sprintf("%v", r))
		}
	}()

	tool := e.registry.Get(name)
	if tool == nil {
		return errorPayload("Unknown tool: " + name)
	}

	if err := e.registry.ValidateArgs(name, args); err != nil {
		return errorPayload(fmt.Sprintf("invalid arguments for %s: %v", name, err))
	}

	argsJSON, _ := json.Marshal(args)
	slog.Info("tool call", "name", name, "args", llmutils.Truncate(string(argsJSON), 200))

	out, err := tool.Execute(ctx, args)
	if err != nil {
		slog.Warn("tool returned error", "tool", name, "err", err)
		return errorPayload(err.Error())
	}
	return out
}

// errorPayload wraps a message in the JSON error shape tools results
// use. Presence of the "error" key is what marks a result as failed.
func errorPayload(msg string) string {
	data, err := json.Marshal(map[string]string{"error": msg})
	if err != nil {
		return `{"error":"internal error"}`
	}
	return string(data)
}
