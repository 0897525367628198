package tools

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgermate/ledgermate/internal/store"
)

func testSetup(t *testing.T) (context.Context, *store.DB) {
	t.Helper()
	db, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := WithTurn(context.Background(), TurnContext{
		UserID:         "u1",
		ConversationID: "conv-1",
		Rates:          map[string]float64{"USD": 1, "EUR": 0.9},
	})
	return ctx, db
}

func TestRegistryLookup(t *testing.T) {
	_, db := testSetup(t)
	reg := NewLedgerRegistry(db)

	assert.NotNil(t, reg.Get("add_expense"))
	assert.NotNil(t, reg.Get("spending_report"))
	assert.Nil(t, reg.Get("no_such_tool"))
	assert.Len(t, reg.Definitions(), 22)
}

func TestRegistryDefinitionsShape(t *testing.T) {
	_, db := testSetup(t)
	reg := NewLedgerRegistry(db)

	for _, def := range reg.Definitions() {
		require.Equal(t, "function", def["type"])
		fn, ok := def["function"].(map[string]any)
		require.True(t, ok)
		assert.NotEmpty(t, fn["name"])
		assert.NotEmpty(t, fn["description"])
		assert.NotNil(t, fn["parameters"])
	}
}

func TestValidateArgs(t *testing.T) {
	_, db := testSetup(t)
	reg := NewLedgerRegistry(db)

	// Missing required "amount".
	err := reg.ValidateArgs("add_expense", map[string]any{"vendor": "GitHub"})
	assert.Error(t, err)

	err = reg.ValidateArgs("add_expense", map[string]any{"amount": 12.5, "vendor": "GitHub"})
	assert.NoError(t, err)

	// Unknown tool passes trivially; the executor reports it.
	assert.NoError(t, reg.ValidateArgs("no_such_tool", nil))
}

func TestAddExpenseCreatesRecordAndCategory(t *testing.T) {
	ctx, db := testSetup(t)
	tool := NewAddExpenseTool(db)

	out, err := tool.Execute(ctx, map[string]any{
		"amount":   42.0,
		"category": "Software",
		"vendor":   "GitHub",
		"date":     "2026-08-15",
	})
	require.NoError(t, err)

	var res struct {
		Created store.Expense `json:"created"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 42.0, res.Created.Amount)
	assert.Equal(t, "2026-08-15", res.Created.SpentOn)
	assert.Equal(t, "USD", res.Created.Currency)

	cat, err := db.FindCategory(ctx, "u1", "Software")
	require.NoError(t, err)
	require.NotNil(t, cat, "category should be auto-created")
}

func TestAddIncomeRequiresExistingClient(t *testing.T) {
	ctx, db := testSetup(t)
	tool := NewAddIncomeTool(db)

	_, err := tool.Execute(ctx, map[string]any{"amount": 100.0, "client": "Acme"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "add_client")

	_, err = db.CreateClient(ctx, "u1", "Acme", "", "", "")
	require.NoError(t, err)

	out, err := tool.Execute(ctx, map[string]any{"amount": 100.0, "client": "Acme"})
	require.NoError(t, err)
	assert.Contains(t, out, `"created"`)
}

func TestParseDate(t *testing.T) {
	tool := NewParseDateTool()

	out, err := tool.Execute(context.Background(), map[string]any{"text": "2026-03-04T10:00:00Z"})
	require.NoError(t, err)
	assert.Contains(t, out, `"2026-03-04"`)

	_, err = tool.Execute(context.Background(), map[string]any{"text": "not a date at all zzz"})
	assert.Error(t, err)
}

func TestConvertCurrencyUsesTurnRates(t *testing.T) {
	ctx, _ := testSetup(t)
	tool := NewConvertCurrencyTool()

	out, err := tool.Execute(ctx, map[string]any{"amount": 100.0, "from": "usd", "to": "eur"})
	require.NoError(t, err)

	var res struct {
		Converted float64 `json:"converted"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.InDelta(t, 90.0, res.Converted, 0.001)

	_, err = tool.Execute(ctx, map[string]any{"amount": 1.0, "from": "USD", "to": "GBP"})
	assert.Error(t, err)

	// No rates in context at all.
	_, err = tool.Execute(context.Background(), map[string]any{"amount": 1.0, "from": "USD", "to": "EUR"})
	assert.Error(t, err)
}

func TestDeleteRecordStagesPendingAction(t *testing.T) {
	ctx, db := testSetup(t)
	tool := NewDeleteRecordTool(db)

	out, err := tool.Execute(ctx, map[string]any{"family": "expense", "id": 7})
	require.NoError(t, err)

	var res struct {
		ActionID             string `json:"action_id"`
		RequiresConfirmation bool   `json:"requires_confirmation"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.RequiresConfirmation)
	assert.NotEmpty(t, res.ActionID)

	pending, err := db.ListPendingActions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "delete_expense", pending[0].Kind)
}

func TestBudgetFlow(t *testing.T) {
	ctx, db := testSetup(t)

	_, err := NewSetBudgetTool(db).Execute(ctx, map[string]any{
		"category": "Travel", "amount": 500.0, "period": "monthly",
	})
	require.NoError(t, err)

	_, err = NewAddExpenseTool(db).Execute(ctx, map[string]any{
		"amount": 120.0, "category": "Travel", "date": "2026-08-10",
	})
	require.NoError(t, err)

	out, err := NewBudgetStatusTool(db).Execute(ctx, map[string]any{
		"start_date": "2026-08-01", "end_date": "2026-08-31",
	})
	require.NoError(t, err)

	var res struct {
		Budgets []store.BudgetStatus `json:"budgets"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Budgets, 1)
	assert.Equal(t, 120.0, res.Budgets[0].Spent)
	assert.Equal(t, 500.0, res.Budgets[0].Budget)
}
