package tools

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// emptyParams is the parameter struct for tools that take no arguments.
// It must be a named type: the jsonschema reflector panics on anonymous
// structs when ExpandedStruct is set.
type emptyParams struct{}

// paramsSchema reflects a parameter struct into a JSON Schema document.
// Fields without ",omitempty" become required; descriptions and enums come
// from jsonschema struct tags.
func paramsSchema(v any) json.RawMessage {
	r := jsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: true,
		ExpandedStruct: true,
	}
	s := r.Reflect(v)
	s.Version = "" // the gateway rejects $schema inside tool parameters
	data, err := json.Marshal(s)
	if err != nil {
		return json.RawMessage(`{"type":"object","properties":{}}`)
	}
	return data
}
