package store

import "context"

type Budget struct {
	ID         int64   `json:"id"`
	UserID     string  `json:"user_id"`
	CategoryID int64   `json:"category_id"`
	Amount     float64 `json:"amount"`
	Period     string  `json:"period"` // "monthly" | "yearly"
}

// UpsertBudget creates or replaces the budget for a category and period.
func (db *DB) UpsertBudget(ctx context.Context, userID string, categoryID int64, amount float64, period string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO budgets (user_id, category_id, amount, period) VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id, category_id, period) DO UPDATE SET amount=excluded.amount`,
		userID, categoryID, amount, period,
	)
	return err
}

// ListBudgets returns all budgets for a user.
func (db *DB) ListBudgets(ctx context.Context, userID string) ([]Budget, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, user_id, category_id, amount, period FROM budgets WHERE user_id = ?`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Budget
	for rows.Next() {
		var b Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.Amount, &b.Period); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
