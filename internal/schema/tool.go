// Package schema contains the core contracts shared across ledgermate
// packages. Concrete implementations live in their respective packages;
// this package is the single canonical source of truth for every
// interface definition.
package schema

import (
	"context"
	"encoding/json"
)

// Tool is the interface all LLM-callable tools must satisfy.
// Implementations return a JSON document describing the outcome; business
// errors are reported inside that document, not as a Go error. The error
// return is reserved for faults the executor converts into a model-visible
// error payload.
type Tool interface {
	Name() string
	Description() string
	// Parameters returns the JSON Schema (as raw JSON bytes) for this tool's parameters.
	Parameters() json.RawMessage
	Execute(ctx context.Context, params map[string]any) (string, error)
}
