package store

import (
	"context"
	"database/sql"
)

type Category struct {
	ID     int64  `json:"id"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Kind   string `json:"kind"` // "income" | "expense"
}

// CreateCategory inserts a category and returns it with its new id.
func (db *DB) CreateCategory(ctx context.Context, userID, name, kind string) (*Category, error) {
	res, err := db.ExecContext(ctx,
		`INSERT INTO categories (user_id, name, kind) VALUES (?, ?, ?)`,
		userID, name, kind,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Category{ID: id, UserID: userID, Name: name, Kind: kind}, nil
}

// FindCategory looks up a category by exact name. Returns nil, nil if not found.
func (db *DB) FindCategory(ctx context.Context, userID, name string) (*Category, error) {
	var c Category
	err := db.QueryRowContext(ctx,
		`SELECT id, user_id, name, kind FROM categories WHERE user_id = ? AND name = ? COLLATE NOCASE`,
		userID, name,
	).Scan(&c.ID, &c.UserID, &c.Name, &c.Kind)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCategories returns all categories for a user, optionally filtered by kind.
func (db *DB) ListCategories(ctx context.Context, userID, kind string) ([]Category, error) {
	query := `SELECT id, user_id, name, kind FROM categories WHERE user_id = ?`
	args := []any{userID}
	if kind != "" {
		query += ` AND kind = ?`
		args = append(args, kind)
	}
	query += ` ORDER BY name`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Kind); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
