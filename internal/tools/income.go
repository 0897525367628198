package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ledgermate/ledgermate/internal/store"
)

type addIncomeParams struct {
	Amount      float64 `json:"amount" jsonschema:"description=Amount received"`
	Currency    string  `json:"currency,omitempty" jsonschema:"description=ISO 4217 code; defaults to the user's currency"`
	Client      string  `json:"client,omitempty" jsonschema:"description=Client the income came from; must already exist"`
	Project     string  `json:"project,omitempty" jsonschema:"description=Project the income belongs to; must already exist"`
	Description string  `json:"description,omitempty"`
	Date        string  `json:"date,omitempty" jsonschema:"description=When the payment was received; defaults to today"`
}

// AddIncomeTool records an income entry in the ledger.
type AddIncomeTool struct {
	db *store.DB
}

func NewAddIncomeTool(db *store.DB) *AddIncomeTool { return &AddIncomeTool{db: db} }

func (t *AddIncomeTool) Name() string { return "add_income" }
func (t *AddIncomeTool) Description() string {
	return "Record income. Provide the amount and optionally the client, project, description and date. Look up the client with find_client first if unsure it exists."
}
func (t *AddIncomeTool) Parameters() json.RawMessage { return paramsSchema(&addIncomeParams{}) }

func (t *AddIncomeTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	var p addIncomeParams
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

	var clientID, projectID *int64
	if p.Client != "" {
		c, err := t.db.FindClientByName(ctx, tc.UserID, p.Client)
		if err != nil {
			return "", fmt.Errorf("find client: %w", err)
		}
		if c == nil {
			return "", fmt.Errorf("no client named %q; create it with add_client first", p.Client)
		}
		clientID = &c.ID
	}
	if p.Project != "" {
		pr, err := t.db.FindProjectByName(ctx, tc.UserID, p.Project)
		if err != nil {
			return "", fmt.Errorf("find project: %w", err)
		}
		if pr == nil {
			return "", fmt.Errorf("no project named %q; create it with add_project first", p.Project)
		}
		projectID = &pr.ID
	}

	in := &store.Income{
		UserID:      tc.UserID,
		Amount:      p.Amount,
		Currency:    currency,
		ClientID:    clientID,
		ProjectID:   projectID,
		Description: p.Description,
		ReceivedOn:  date,
	}
	if _, err := t.db.CreateIncome(ctx, in); err != nil {
		return "", fmt.Errorf("create income: %w", err)
	}
	return jsonResult(map[string]any{"created": in})
}

type listIncomeParams struct {
	StartDate string `json:"start_date,omitempty" jsonschema:"description=Earliest date to include (inclusive)"`
	EndDate   string `json:"end_date,omitempty" jsonschema:"description=Latest date to include (inclusive)"`
	Limit     int    `json:"limit,omitempty" jsonschema:"description=Maximum records to return; defaults to 50"`
}

// ListIncomeTool lists income records in a date range.
type ListIncomeTool struct {
	db *store.DB
}

func NewListIncomeTool(db *store.DB) *ListIncomeTool { return &ListIncomeTool{db: db} }

func (t *ListIncomeTool) Name() string { return "list_income" }
func (t *ListIncomeTool) Description() string {
	return "List recorded income, optionally bounded by start_date and end_date (YYYY-MM-DD)."
}
func (t *ListIncomeTool) Parameters() json.RawMessage { return paramsSchema(&listIncomeParams{}) }

func (t *ListIncomeTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	var p listIncomeParams
	if err := decodeArgs(params, &p); err != nil {
		return "", fmt.Errorf("decode arguments: %w", err)
	}
	from, to, err := resolveRange(p.StartDate, p.EndDate)
	if err != nil {
		return "", err
	}

	tc := TurnCtx(ctx)
	list, err := t.db.ListIncome(ctx, tc.UserID, from, to, p.Limit)
	if err != nil {
		return "", fmt.Errorf("list income: %w", err)
	}
	return jsonResult(map[string]any{"income": list, "count": len(list)})
}
