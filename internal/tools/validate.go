package tools

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// argsValidator checks tool-call arguments against the tool's parameter
// schema before execution, so malformed model output surfaces as a
// model-visible error instead of a half-applied ledger write.
type argsValidator struct {
	schema *jsonschema.Schema
}

func newArgsValidator(name string, raw json.RawMessage) (*argsValidator, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := name + ".schema.json"
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &argsValidator{schema: sch}, nil
}

func (v *argsValidator) validate(args map[string]any) error {
	if args == nil {
		args = map[string]any{}
	}
	if err := v.schema.Validate(normalizeForValidation(args)); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// normalizeForValidation round-trips args through JSON so the validator
// sees the same value shapes a decoder would produce.
func normalizeForValidation(args map[string]any) any {
	data, err := json.Marshal(args)
	if err != nil {
		return args
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return args
	}
	return doc
}
