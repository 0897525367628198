package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
)

type parseDateParams struct {
	Text string `json:"text" jsonschema:"description=Free-form date expression (e.g. 'last Tuesday' output of the model or '03/04/2026')"`
}

// ParseDateTool normalises free-form date text to YYYY-MM-DD.
type ParseDateTool struct{}

func NewParseDateTool() *ParseDateTool { return &ParseDateTool{} }

func (t *ParseDateTool) Name() string { return "parse_date" }
func (t *ParseDateTool) Description() string {
	return "Normalise a date expression into YYYY-MM-DD. Use when the user gives an ambiguous date format."
}
func (t *ParseDateTool) Parameters() json.RawMessage { return paramsSchema(&parseDateParams{}) }

func (t *ParseDateTool) Execute(_ context.Context, params map[string]any) (string, error) {
	var p parseDateParams
	if err := decodeArgs(params, &p); err != nil {
		return "", fmt.Errorf("decode arguments: %w", err)
	}
	if p.Text == "" {
		return "", fmt.Errorf("text is required")
	}

	parsed, err := dateparse.ParseAny(p.Text)
	if err != nil {
		return "", fmt.Errorf("could not parse %q as a date", p.Text)
	}
	return jsonResult(map[string]any{
		"date":    parsed.Format("2006-01-02"),
		"weekday": parsed.Weekday().String(),
		"today":   time.Now().Format("2006-01-02"),
	})
}
