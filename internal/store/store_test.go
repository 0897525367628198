package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUserSettings(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	u, err := db.GetUserSettings(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if u != nil {
		t.Fatalf("expected nil for unknown user, got %+v", u)
	}

	if err := db.UpsertUserSettings(ctx, "u1", "EUR", "DE"); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	u, err = db.GetUserSettings(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if u == nil || u.Currency != "EUR" || u.Country != "DE" {
		t.Fatalf("unexpected settings: %+v", u)
	}

	if err := db.UpsertUserSettings(ctx, "u1", "USD", "US"); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	u, _ = db.GetUserSettings(ctx, "u1")
	if u.Currency != "USD" {
		t.Errorf("expected updated currency USD, got %q", u.Currency)
	}
}

func TestCategoriesAndFind(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	c, err := db.CreateCategory(ctx, "u1", "Software", "expense")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.ID == 0 {
		t.Error("expected non-zero id")
	}

	found, err := db.FindCategory(ctx, "u1", "software")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found == nil || found.ID != c.ID {
		t.Fatalf("case-insensitive find failed: %+v", found)
	}

	missing, err := db.FindCategory(ctx, "u1", "Travel")
	if err != nil || missing != nil {
		t.Fatalf("expected nil, nil for missing category, got %+v, %v", missing, err)
	}

	list, err := db.ListCategories(ctx, "u1", "expense")
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v (%d entries)", err, len(list))
	}
}

func TestExpensesWindowAndTotals(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	cat, _ := db.CreateCategory(ctx, "u1", "Meals", "expense")
	for _, e := range []Expense{
		{UserID: "u1", Amount: 10, Currency: "USD", CategoryID: &cat.ID, Vendor: "Cafe Rio", SpentOn: "2026-08-01"},
		{UserID: "u1", Amount: 25, Currency: "USD", CategoryID: &cat.ID, Vendor: "Cafe Rio", SpentOn: "2026-08-15"},
		{UserID: "u1", Amount: 99, Currency: "USD", SpentOn: "2026-07-01"},
	} {
		e := e
		if _, err := db.CreateExpense(ctx, &e); err != nil {
			t.Fatalf("create expense: %v", err)
		}
	}

	aug, err := db.ListExpenses(ctx, "u1", "2026-08-01", "2026-08-31", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(aug) != 2 {
		t.Fatalf("expected 2 August expenses, got %d", len(aug))
	}
	if aug[0].SpentOn != "2026-08-15" {
		t.Errorf("expected newest first, got %s", aug[0].SpentOn)
	}

	total, err := db.ExpenseTotal(ctx, "u1", "2026-08-01", "2026-08-31")
	if err != nil || total != 35 {
		t.Fatalf("expected total 35, got %v (%v)", total, err)
	}

	byCat, err := db.ExpenseTotalsByCategory(ctx, "u1", "", "")
	if err != nil {
		t.Fatalf("totals by category: %v", err)
	}
	if len(byCat) != 2 {
		t.Fatalf("expected 2 category rows, got %d", len(byCat))
	}
	if byCat[0].Category != "uncategorized" || byCat[0].Total != 99 {
		t.Errorf("expected uncategorized 99 first, got %+v", byCat[0])
	}
}

func TestBudgetStatuses(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	cat, _ := db.CreateCategory(ctx, "u1", "Travel", "expense")
	if err := db.UpsertBudget(ctx, "u1", cat.ID, 500, "monthly"); err != nil {
		t.Fatalf("upsert budget: %v", err)
	}
	// Replacing the amount must not create a second row.
	if err := db.UpsertBudget(ctx, "u1", cat.ID, 600, "monthly"); err != nil {
		t.Fatalf("re-upsert budget: %v", err)
	}
	e := Expense{UserID: "u1", Amount: 120, Currency: "USD", CategoryID: &cat.ID, SpentOn: "2026-08-10"}
	if _, err := db.CreateExpense(ctx, &e); err != nil {
		t.Fatalf("expense: %v", err)
	}

	statuses, err := db.BudgetStatuses(ctx, "u1", "2026-08-01", "2026-08-31")
	if err != nil {
		t.Fatalf("statuses: %v", err)
	}
	if len(statuses) != 1 {
		t.Fatalf("expected 1 status, got %d", len(statuses))
	}
	s := statuses[0]
	if s.Category != "Travel" || s.Budget != 600 || s.Spent != 120 {
		t.Errorf("unexpected status: %+v", s)
	}
}

func TestVendorAffinities(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	cat, _ := db.CreateCategory(ctx, "u1", "Software", "expense")
	for i := 0; i < 3; i++ {
		e := Expense{UserID: "u1", Amount: 15, Currency: "USD", CategoryID: &cat.ID, Vendor: "GitHub", SpentOn: "2026-08-01"}
		if _, err := db.CreateExpense(ctx, &e); err != nil {
			t.Fatalf("expense: %v", err)
		}
	}

	aff, err := db.VendorCategoryAffinities(ctx, "u1", 5)
	if err != nil {
		t.Fatalf("affinities: %v", err)
	}
	if len(aff) != 1 || aff[0].Vendor != "GitHub" || aff[0].Category != "Software" || aff[0].Count != 3 {
		t.Fatalf("unexpected affinities: %+v", aff)
	}
}

func TestPendingActions(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := db.CreatePendingAction(ctx, "pa-1", "u1", "delete_expense", `{"id":7}`); err != nil {
		t.Fatalf("create: %v", err)
	}
	list, err := db.ListPendingActions(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Kind != "delete_expense" {
		t.Fatalf("unexpected pending actions: %+v", list)
	}
}
