package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ledgermate/ledgermate/internal/store"
)

type setBudgetParams struct {
	Category string  `json:"category" jsonschema:"description=Expense category the budget applies to"`
	Amount   float64 `json:"amount" jsonschema:"description=Budget cap for the period"`
	Period   string  `json:"period" jsonschema:"description=Budget period,enum=monthly,enum=yearly"`
}

// SetBudgetTool creates or replaces a category budget.
type SetBudgetTool struct {
	db *store.DB
}

func NewSetBudgetTool(db *store.DB) *SetBudgetTool { return &SetBudgetTool{db: db} }

func (t *SetBudgetTool) Name() string { return "set_budget" }
func (t *SetBudgetTool) Description() string {
	return "Set a monthly or yearly budget for an expense category. Replaces any existing budget for that category and period."
}
func (t *SetBudgetTool) Parameters() json.RawMessage { return paramsSchema(&setBudgetParams{}) }

func (t *SetBudgetTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	var p setBudgetParams
	if err := decodeArgs(params, &p); err != nil {
		return "", fmt.Errorf("decode arguments: %w", err)
	}
	if p.Amount <= 0 {
		return "", fmt.Errorf("amount must be positive")
	}
	if p.Period != "monthly" && p.Period != "yearly" {
		return "", fmt.Errorf("period must be monthly or yearly, got %q", p.Period)
	}

	tc := TurnCtx(ctx)
	cat, err := findOrCreateCategory(ctx, t.db, tc.UserID, p.Category, "expense")
	if err != nil {
		return "", err
	}
	if err := t.db.UpsertBudget(ctx, tc.UserID, cat.ID, p.Amount, p.Period); err != nil {
		return "", fmt.Errorf("set budget: %w", err)
	}
	return jsonResult(map[string]any{
		"budget": map[string]any{"category": cat.Name, "amount": p.Amount, "period": p.Period},
	})
}

type budgetStatusParams struct {
	StartDate string `json:"start_date,omitempty" jsonschema:"description=Period start for spend calculation"`
	EndDate   string `json:"end_date,omitempty" jsonschema:"description=Period end for spend calculation"`
}

// BudgetStatusTool reports spend against each budget.
type BudgetStatusTool struct {
	db *store.DB
}

func NewBudgetStatusTool(db *store.DB) *BudgetStatusTool { return &BudgetStatusTool{db: db} }

func (t *BudgetStatusTool) Name() string { return "budget_status" }
func (t *BudgetStatusTool) Description() string {
	return "Show each budget with the amount spent against it in the given period."
}
func (t *BudgetStatusTool) Parameters() json.RawMessage { return paramsSchema(&budgetStatusParams{}) }

func (t *BudgetStatusTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	var p budgetStatusParams
	if err := decodeArgs(params, &p); err != nil {
		return "", fmt.Errorf("decode arguments: %w", err)
	}
	from, to, err := resolveRange(p.StartDate, p.EndDate)
	if err != nil {
		return "", err
	}

	tc := TurnCtx(ctx)
	statuses, err := t.db.BudgetStatuses(ctx, tc.UserID, from, to)
	if err != nil {
		return "", fmt.Errorf("budget statuses: %w", err)
	}
	return jsonResult(map[string]any{"budgets": statuses, "count": len(statuses)})
}
