// Package tools provides the ledger tool implementations and their registry.
package tools

import (
	"encoding/json"
	"log/slog"

	"github.com/ledgermate/ledgermate/internal/schema"
)

// Registry holds a named set of tools, resolved once at startup. Tool
// names are globally unique; the definitions handed to the LLM must stay
// stable across a conversation.
type Registry struct {
	tools      map[string]schema.Tool
	validators map[string]*argsValidator
}

// NewRegistry creates a Registry containing the given tools.
func NewRegistry(ts ...schema.Tool) *Registry {
	r := &Registry{
		tools:      make(map[string]schema.Tool, len(ts)),
		validators: make(map[string]*argsValidator, len(ts)),
	}
	for _, t := range ts {
		r.Add(t)
	}
	return r
}

// Get returns the tool with the given name, or nil if not found.
func (r *Registry) Get(name string) schema.Tool {
	return r.tools[name]
}

// Add registers a tool, replacing any existing tool with the same name.
// Its parameter schema is compiled for argument validation; a schema that
// fails to compile disables validation for that tool only.
func (r *Registry) Add(t schema.Tool) schema.Tool {
	r.tools[t.Name()] = t

	v, err := newArgsValidator(t.Name(), t.Parameters())
	if err != nil {
		slog.Warn("tool schema did not compile, skipping validation", "tool", t.Name(), "err", err)
	} else {
		r.validators[t.Name()] = v
	}
	return t
}

// Names returns the registered tool names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for n := range r.tools {
		names = append(names, n)
	}
	return names
}

// ValidateArgs checks args against the tool's parameter schema.
// Unknown tools and tools without a compiled schema pass trivially; the
// executor reports unknown tools itself.
func (r *Registry) ValidateArgs(name string, args map[string]any) error {
	v, ok := r.validators[name]
	if !ok {
		return nil
	}
	return v.validate(args)
}

// Definitions returns all tool definitions in OpenAI function-calling format.
func (r *Registry) Definitions() []map[string]any {
	list := make([]map[string]any, 0, len(r.tools))
	for _, t := range r.tools {
		var params any
		if err := json.Unmarshal(t.Parameters(), &params); err != nil {
			params = map[string]any{"type": "object", "properties": map[string]any{}}
		}
		list = append(list, map[string]any{
			"type": "function",
			"function": map[string]any{
				"name":        t.Name(),
				"description": t.Description(),
				"parameters":  params,
			},
		})
	}
	return list
}
