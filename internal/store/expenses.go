package store

import (
	"context"
	"database/sql"
	"time"
)

type Expense struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	CategoryID  *int64    `json:"category_id,omitempty"`
	Vendor      string    `json:"vendor,omitempty"`
	Description string    `json:"description,omitempty"`
	SpentOn     string    `json:"spent_on"` // YYYY-MM-DD
	CreatedAt   time.Time `json:"created_at"`
}

// CreateExpense inserts an expense record.
func (db *DB) CreateExpense(ctx context.Context, e *Expense) (*Expense, error) {
	res, err := db.ExecContext(ctx,
		`INSERT INTO expenses (user_id, amount, currency, category_id, vendor, description, spent_on)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.UserID, e.Amount, e.Currency, e.CategoryID, e.Vendor, e.Description, e.SpentOn,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	e.ID = id
	return e, nil
}

// ListExpenses returns expenses for a user within [from, to] (YYYY-MM-DD,
// empty = unbounded), newest first, capped at limit.
func (db *DB) ListExpenses(ctx context.Context, userID, from, to string, limit int) ([]Expense, error) {
	query := `SELECT id, user_id, amount, currency, category_id, vendor, description, spent_on, created_at
		 FROM expenses WHERE user_id = ?`
	args := []any{userID}
	if from != "" {
		query += ` AND spent_on >= ?`
		args = append(args, from)
	}
	if to != "" {
		query += ` AND spent_on <= ?`
		args = append(args, to)
	}
	query += ` ORDER BY spent_on DESC, id DESC LIMIT ?`
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Expense
	for rows.Next() {
		var e Expense
		var catID sql.NullInt64
		if err := rows.Scan(&e.ID, &e.UserID, &e.Amount, &e.Currency, &catID, &e.Vendor, &e.Description, &e.SpentOn, &e.CreatedAt); err != nil {
			return nil, err
		}
		if catID.Valid {
			e.CategoryID = &catID.Int64
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
