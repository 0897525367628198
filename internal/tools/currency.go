package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

type convertCurrencyParams struct {
	Amount float64 `json:"amount" jsonschema:"description=Amount to convert"`
	From   string  `json:"from" jsonschema:"description=Source ISO 4217 currency code"`
	To     string  `json:"to" jsonschema:"description=Target ISO 4217 currency code"`
}

// ConvertCurrencyTool converts between currencies using the per-turn
// exchange-rate snapshot. Rates are immutable within a turn, so repeated
// conversions in one turn always agree.
type ConvertCurrencyTool struct{}

func NewConvertCurrencyTool() *ConvertCurrencyTool { return &ConvertCurrencyTool{} }

func (t *ConvertCurrencyTool) Name() string { return "convert_currency" }
func (t *ConvertCurrencyTool) Description() string {
	return "Convert an amount between currencies using current exchange rates."
}
func (t *ConvertCurrencyTool) Parameters() json.RawMessage {
	return paramsSchema(&convertCurrencyParams{})
}

func (t *ConvertCurrencyTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	var p convertCurrencyParams
	if err := decodeArgs(params, &p); err != nil {
		return "", fmt.Errorf("decode arguments: %w", err)
	}

	rates := TurnCtx(ctx).Rates
	if len(rates) == 0 {
		return "", fmt.Errorf("no exchange rates available for this turn")
	}

	from := strings.ToUpper(p.From)
	to := strings.ToUpper(p.To)
	fromRate, ok := rates[from]
	if !ok || fromRate == 0 {
		return "", fmt.Errorf("no exchange rate for %s", from)
	}
	toRate, ok := rates[to]
	if !ok {
		return "", fmt.Errorf("no exchange rate for %s", to)
	}

	converted := p.Amount / fromRate * toRate
	return jsonResult(map[string]any{
		"amount":    p.Amount,
		"from":      from,
		"to":        to,
		"converted": converted,
		"rate":      toRate / fromRate,
	})
}
