package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ledgermate/ledgermate/internal/store"
)

type spendingReportParams struct {
	StartDate string `json:"start_date,omitempty" jsonschema:"description=Report period start (inclusive)"`
	EndDate   string `json:"end_date,omitempty" jsonschema:"description=Report period end (inclusive)"`
}

// SpendingReportTool aggregates the ledger into a period report.
type SpendingReportTool struct {
	db *store.DB
}

func NewSpendingReportTool(db *store.DB) *SpendingReportTool { return &SpendingReportTool{db: db} }

func (t *SpendingReportTool) Name() string { return "spending_report" }
func (t *SpendingReportTool) Description() string {
	return "Summarise income, expenses and per-category spending for a period."
}
func (t *SpendingReportTool) Parameters() json.RawMessage {
	return paramsSchema(&spendingReportParams{})
}

func (t *SpendingReportTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	var p spendingReportParams
	if err := decodeArgs(params, &p); err != nil {
		return "", fmt.Errorf("decode arguments: %w", err)
	}
	from, to, err := resolveRange(p.StartDate, p.EndDate)
	if err != nil {
		return "", err
	}

	tc := TurnCtx(ctx)
	expenseTotal, err := t.db.ExpenseTotal(ctx, tc.UserID, from, to)
	if err != nil {
		return "", fmt.Errorf("expense total: %w", err)
	}
	incomeTotal, err := t.db.IncomeTotal(ctx, tc.UserID, from, to)
	if err != nil {
		return "", fmt.Errorf("income total: %w", err)
	}
	byCategory, err := t.db.ExpenseTotalsByCategory(ctx, tc.UserID, from, to)
	if err != nil {
		return "", fmt.Errorf("totals by category: %w", err)
	}

	return jsonResult(map[string]any{
		"period":        map[string]string{"start": from, "end": to},
		"income_total":  incomeTotal,
		"expense_total": expenseTotal,
		"net":           incomeTotal - expenseTotal,
		"by_category":   byCategory,
	})
}
