package store

import (
	"context"
	"database/sql"
	"time"
)

type Income struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	ClientID    *int64    `json:"client_id,omitempty"`
	ProjectID   *int64    `json:"project_id,omitempty"`
	Description string    `json:"description,omitempty"`
	ReceivedOn  string    `json:"received_on"` // YYYY-MM-DD
	CreatedAt   time.Time `json:"created_at"`
}

// CreateIncome inserts an income record.
func (db *DB) CreateIncome(ctx context.Context, in *Income) (*Income, error) {
	res, err := db.ExecContext(ctx,
		`INSERT INTO income (user_id, amount, currency, client_id, project_id, description, received_on)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		in.UserID, in.Amount, in.Currency, in.ClientID, in.ProjectID, in.Description, in.ReceivedOn,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	in.ID = id
	return in, nil
}

// ListIncome returns income records for a user within [from, to]
// (YYYY-MM-DD, empty = unbounded), newest first, capped at limit.
func (db *DB) ListIncome(ctx context.Context, userID, from, to string, limit int) ([]Income, error) {
	query := `SELECT id, user_id, amount, currency, client_id, project_id, description, received_on, created_at
		 FROM income WHERE user_id = ?`
	args := []any{userID}
	if from != "" {
		query += ` AND received_on >= ?`
		args = append(args, from)
	}
	if to != "" {
		query += ` AND received_on <= ?`
		args = append(args, to)
	}
	query += ` ORDER BY received_on DESC, id DESC LIMIT ?`
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Income
	for rows.Next() {
		var in Income
		var clientID, projectID sql.NullInt64
		if err := rows.Scan(&in.ID, &in.UserID, &in.Amount, &in.Currency, &clientID, &projectID, &in.Description, &in.ReceivedOn, &in.CreatedAt); err != nil {
			return nil, err
		}
		if clientID.Valid {
			in.ClientID = &clientID.Int64
		}
		if projectID.Valid {
			in.ProjectID = &projectID.Int64
		}
		out = append(out, in)
	}
	return out, rows.Err()
}
