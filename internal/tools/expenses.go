package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ledgermate/ledgermate/internal/store"
)

type addExpenseParams struct {
	Amount      float64 `json:"amount" jsonschema:"description=Amount spent"`
	Currency    string  `json:"currency,omitempty" jsonschema:"description=ISO 4217 code; defaults to the user's currency"`
	Category    string  `json:"category,omitempty" jsonschema:"description=Expense category name; created if it does not exist"`
	Vendor      string  `json:"vendor,omitempty" jsonschema:"description=Merchant or vendor name"`
	Description string  `json:"description,omitempty"`
	Date        string  `json:"date,omitempty" jsonschema:"description=When the expense occurred; defaults to today"`
}

// AddExpenseTool records an expense in the ledger.
type AddExpenseTool struct {
	db *store.DB
}

func NewAddExpenseTool(db *store.DB) *AddExpenseTool { return &AddExpenseTool{db: db} }

func (t *AddExpenseTool) Name() string { return "add_expense" }
func (t *AddExpenseTool) Description() string {
	return "Record an expense. Provide the amount and optionally a category, vendor, description and date."
}
func (t *AddExpenseTool) Parameters() json.RawMessage { return paramsSchema(&addExpenseParams{}) }

func (t *AddExpenseTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	var p addExpenseParams
	if err := decodeArgs(params, &p); err != nil {
		return "", fmt.Errorf("decode arguments: %w", err)
	}
	if p.Amount <= 0 {
		return "", fmt.Errorf("amount must be positive")
	}

	tc := TurnCtx(ctx)
	currency, err := resolveCurrency(ctx, t.db, tc.UserID, p.Currency)
	if err != nil {
		return "", err
	}
	date, err := resolveDate(p.Date)
	if err != nil {
		return "", fmt.Errorf("unrecognised date %q: %w", p.Date, err)
	}

	var categoryID *int64
	if p.Category != "" {
		cat, err := findOrCreateCategory(ctx, t.db, tc.UserID, p.Category, "expense")
		if err != nil {
			return "", err
		}
		categoryID = &cat.ID
	}

	e := &store.Expense{
		UserID:      tc.UserID,
		Amount:      p.Amount,
		Currency:    currency,
		CategoryID:  categoryID,
		Vendor:      p.Vendor,
		Description: p.Description,
		SpentOn:     date,
	}
	if _, err := t.db.CreateExpense(ctx, e); err != nil {
		return "", fmt.Errorf("create expense: %w", err)
	}
	return jsonResult(map[string]any{"created": e})
}

type listExpensesParams struct {
	StartDate string `json:"start_date,omitempty" jsonschema:"description=Earliest date to include (inclusive)"`
	EndDate   string `json:"end_date,omitempty" jsonschema:"description=Latest date to include (inclusive)"`
	Limit     int    `json:"limit,omitempty" jsonschema:"description=Maximum records to return; defaults to 50"`
}

// ListExpensesTool lists expenses in a date range.
type ListExpensesTool struct {
	db *store.DB
}

func NewListExpensesTool(db *store.DB) *ListExpensesTool { return &ListExpensesTool{db: db} }

func (t *ListExpensesTool) Name() string { return "list_expenses" }
func (t *ListExpensesTool) Description() string {
	return "List recorded expenses, optionally bounded by start_date and end_date (YYYY-MM-DD)."
}
func (t *ListExpensesTool) Parameters() json.RawMessage { return paramsSchema(&listExpensesParams{}) }

func (t *ListExpensesTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	var p listExpensesParams
	if err := decodeArgs(params, &p); err != nil {
		return "", fmt.Errorf("decode arguments: %w", err)
	}
	from, to, err := resolveRange(p.StartDate, p.EndDate)
	if err != nil {
		return "", err
	}

	tc := TurnCtx(ctx)
	list, err := t.db.ListExpenses(ctx, tc.UserID, from, to, p.Limit)
	if err != nil {
		return "", fmt.Errorf("list expenses: %w", err)
	}
	return jsonResult(map[string]any{"expenses": list, "count": len(list)})
}
