package store

import "context"

// CategoryTotal is one row of a per-category spending aggregate.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}

// ExpenseTotalsByCategory aggregates expense amounts per category within
// [from, to]. Uncategorised expenses are grouped under "uncategorized".
func (db *DB) ExpenseTotalsByCategory(ctx context.Context, userID, from, to string) ([]CategoryTotal, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT COALESCE(c.name, 'uncategorized') AS category, SUM(e.amount), COUNT(*)
		 FROM expenses e LEFT JOIN categories c ON c.id = e.category_id
		 WHERE e.user_id = ? AND (? = '' OR e.spent_on >= ?) AND (? = '' OR e.spent_on <= ?)
		 GROUP BY category ORDER BY SUM(e.amount) DESC`,
		userID, from, from, to, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CategoryTotal
	for rows.Next() {
		var t CategoryTotal
		if err := rows.Scan(&t.Category, &t.Total, &t.Count); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ExpenseTotal sums expense amounts within [from, to].
func (db *DB) ExpenseTotal(ctx context.Context, userID, from, to string) (float64, error) {
	var total float64
	err := db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM expenses
		 WHERE user_id = ? AND (? = '' OR spent_on >= ?) AND (? = '' OR spent_on <= ?)`,
		userID, from, from, to, to,
	).Scan(&total)
	return total, err
}

// IncomeTotal sums income amounts within [from, to].
func (db *DB) IncomeTotal(ctx context.Context, userID, from, to string) (float64, error) {
	var total float64
	err := db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM income
		 WHERE user_id = ? AND (? = '' OR received_on >= ?) AND (? = '' OR received_on <= ?)`,
		userID, from, from, to, to,
	).Scan(&total)
	return total, err
}

// BudgetStatus is one budget with the amount spent against it in a period.
type BudgetStatus struct {
	Category string  `json:"category"`
	Budget   float64 `json:"budget"`
	Period   string  `json:"period"`
	Spent    float64 `json:"spent"`
}

// BudgetStatuses joins each budget with the spend in its category within
// [from, to].
func (db *DB) BudgetStatuses(ctx context.Context, userID, from, to string) ([]BudgetStatus, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT c.name, b.amount, b.period,
			COALESCE((SELECT SUM(e.amount) FROM expenses e
				WHERE e.user_id = b.user_id AND e.category_id = b.category_id
				AND (? = '' OR e.spent_on >= ?) AND (? = '' OR e.spent_on <= ?)), 0)
		 FROM budgets b JOIN categories c ON c.id = b.category_id
		 WHERE b.user_id = ? ORDER BY c.name`,
		from, from, to, to, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BudgetStatus
	for rows.Next() {
		var s BudgetStatus
		if err := rows.Scan(&s.Category, &s.Budget, &s.Period, &s.Spent); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
