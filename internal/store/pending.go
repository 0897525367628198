package store

import (
	"context"
	"time"
)

// PendingAction is a tool-initiated change awaiting explicit user
// confirmation. The orchestration engine only records it; confirmation
// and application belong to the caller.
type PendingAction struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Kind      string    `json:"kind"`
	Payload   string    `json:"payload"` // JSON document describing the change
	CreatedAt time.Time `json:"created_at"`
}

// CreatePendingAction records an action awaiting confirmation.
func (db *DB) CreatePendingAction(ctx context.Context, id, userID, kind, payload string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO pending_actions (id, user_id, kind, payload) VALUES (?, ?, ?, ?)`,
		id, userID, kind, payload,
	)
	return err
}

// ListPendingActions returns unconfirmed actions for a user, oldest first.
func (db *DB) ListPendingActions(ctx context.Context, userID string) ([]PendingAction, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, user_id, kind, payload, created_at FROM pending_actions
		 WHERE user_id = ? AND confirmed_at IS NULL ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PendingAction
	for rows.Next() {
		var p PendingAction
		if err := rows.Scan(&p.ID, &p.UserID, &p.Kind, &p.Payload, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
