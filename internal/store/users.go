package store

import (
	"context"
	"database/sql"
	"time"
)

type UserSettings struct {
	ID        string    `json:"id"`
	Currency  string    `json:"currency"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"created_at"`
}

// GetUserSettings retrieves settings for a user. Returns nil, nil if the
// user has never been onboarded.
func (db *DB) GetUserSettings(ctx context.Context, userID string) (*UserSettings, error) {
	var u UserSettings
	err := db.QueryRowContext(ctx,
		`SELECT id, currency, country, created_at FROM users WHERE id = ?`,
		userID,
	).Scan(&u.ID, &u.Currency, &u.Country, &u.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpsertUserSettings creates or updates a user's currency and country.
func (db *DB) UpsertUserSettings(ctx context.Context, userID, currency, country string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO users (id, currency, country) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET currency=excluded.currency, country=excluded.country`,
		userID, currency, country,
	)
	return err
}
