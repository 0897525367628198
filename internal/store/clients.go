package store

import (
	"context"
	"database/sql"
	"time"
)

type Client struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Country   string    `json:"country"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateClient inserts a client record.
func (db *DB) CreateClient(ctx context.Context, userID, name, email, country, currency string) (*Client, error) {
	res, err := db.ExecContext(ctx,
		`INSERT INTO clients (user_id, name, email, country, currency) VALUES (?, ?, ?, ?, ?)`,
		userID, name, email, country, currency,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Client{ID: id, UserID: userID, Name: name, Email: email, Country: country, Currency: currency}, nil
}

// FindClientByName looks up a client by name, case-insensitive.
// Returns nil, nil if not found.
func (db *DB) FindClientByName(ctx context.Context, userID, name string) (*Client, error) {
	var c Client
	err := db.QueryRowContext(ctx,
		`SELECT id, user_id, name, email, country, currency, created_at
		 FROM clients WHERE user_id = ? AND name = ? COLLATE NOCASE`,
		userID, name,
	).Scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Country, &c.Currency, &c.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListClients returns all clients for a user ordered by name.
func (db *DB) ListClients(ctx context.Context, userID string) ([]Client, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, user_id, name, email, country, currency, created_at
		 FROM clients WHERE user_id = ? ORDER BY name`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Client
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Country, &c.Currency, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
