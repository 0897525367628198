package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ledgermate/ledgermate/internal/store"
)

type addTaxRateParams struct {
	Name        string  `json:"name" jsonschema:"description=Label for the tax rate (e.g. VAT 19%)"`
	RatePercent float64 `json:"rate_percent" jsonschema:"description=Rate as a percentage (19 means 19%)"`
	Country     string  `json:"country,omitempty" jsonschema:"description=ISO country code the rate applies in"`
}

// AddTaxRateTool creates a named tax rate.
type AddTaxRateTool struct {
	db *store.DB
}

func NewAddTaxRateTool(db *store.DB) *AddTaxRateTool { return &AddTaxRateTool{db: db} }

func (t *AddTaxRateTool) Name() string                { return "add_tax_rate" }
func (t *AddTaxRateTool) Description() string         { return "Create a named tax rate." }
func (t *AddTaxRateTool) Parameters() json.RawMessage { return paramsSchema(&addTaxRateParams{}) }

func (t *AddTaxRateTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	var p addTaxRateParams
	if err := decodeArgs(params, &p); err != nil {
		return "", fmt.Errorf("decode arguments: %w", err)
	}
	if p.Name == "" {
		return "", fmt.Errorf("name is required")
	}
	if p.RatePercent < 0 || p.RatePercent > 100 {
		return "", fmt.Errorf("rate_percent must be between 0 and 100, got %v", p.RatePercent)
	}

	tc := TurnCtx(ctx)
	tr, err := t.db.CreateTaxRate(ctx, tc.UserID, p.Name, p.RatePercent, p.Country)
	if err != nil {
		return "", fmt.Errorf("create tax rate: %w", err)
	}
	return jsonResult(map[string]any{"created": tr})
}

// ListTaxRatesTool lists all tax rates.
type ListTaxRatesTool struct {
	db *store.DB
}

func NewListTaxRatesTool(db *store.DB) *ListTaxRatesTool { return &ListTaxRatesTool{db: db} }

func (t *ListTaxRatesTool) Name() string                { return "list_tax_rates" }
func (t *ListTaxRatesTool) Description() string         { return "List all tax rates." }
func (t *ListTaxRatesTool) Parameters() json.RawMessage { return paramsSchema(&emptyParams{}) }

func (t *ListTaxRatesTool) Execute(ctx context.Context, _ map[string]any) (string, error) {
	tc := TurnCtx(ctx)
	list, err := t.db.ListTaxRates(ctx, tc.UserID)
	if err != nil {
		return "", fmt.Errorf("list tax rates: %w", err)
	}
	return jsonResult(map[string]any{"tax_rates": list, "count": len(list)})
}
