// Package store persists the business ledger in SQLite.
package store

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"
)

// DB wraps *sql.DB for ledgermate storage. Schema is owned by the app.
type DB struct {
	*sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id         TEXT PRIMARY KEY,
	currency   TEXT NOT NULL DEFAULT 'USD',
	country    TEXT NOT NULL DEFAULT '',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS categories (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	name    TEXT NOT NULL,
	kind    TEXT NOT NULL CHECK (kind IN ('income', 'expense')),
	UNIQUE(user_id, name, kind)
);

CREATE TABLE IF NOT EXISTS clients (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id    TEXT NOT NULL,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL DEFAULT '',
	country    TEXT NOT NULL DEFAULT '',
	currency   TEXT NOT NULL DEFAULT '',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(user_id, name)
);

CREATE TABLE IF NOT EXISTS vendors (
	id                  INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id             TEXT NOT NULL,
	name                TEXT NOT NULL,
	default_category_id INTEGER,
	UNIQUE(user_id, name)
);

CREATE TABLE IF NOT EXISTS projects (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id   TEXT NOT NULL,
	client_id INTEGER,
	name      TEXT NOT NULL,
	status    TEXT NOT NULL DEFAULT 'active',
	UNIQUE(user_id, name)
);

CREATE TABLE IF NOT EXISTS tax_rates (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id      TEXT NOT NULL,
	name         TEXT NOT NULL,
	rate_percent REAL NOT NULL,
	country      TEXT NOT NULL DEFAULT '',
	UNIQUE(user_id, name)
);

CREATE TABLE IF NOT EXISTS expenses (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id     TEXT NOT NULL,
	amount      REAL NOT NULL,
	currency    TEXT NOT NULL,
	category_id INTEGER,
	vendor      TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	spent_on    TEXT NOT NULL,
	created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_expenses_user_date ON expenses(user_id, spent_on);

CREATE TABLE IF NOT EXISTS income (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id     TEXT NOT NULL,
	amount      REAL NOT NULL,
	currency    TEXT NOT NULL,
	client_id   INTEGER,
	project_id  INTEGER,
	description TEXT NOT NULL DEFAULT '',
	received_on TEXT NOT NULL,
	created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_income_user_date ON income(user_id, received_on);

CREATE TABLE IF NOT EXISTS budgets (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id     TEXT NOT NULL,
	category_id INTEGER NOT NULL,
	amount      REAL NOT NULL,
	period      TEXT NOT NULL CHECK (period IN ('monthly', 'yearly')),
	UNIQUE(user_id, category_id, period)
);

CREATE TABLE IF NOT EXISTS pending_actions (
	id           TEXT PRIMARY KEY,
	user_id      TEXT NOT NULL,
	kind         TEXT NOT NULL,
	payload      TEXT NOT NULL,
	created_at   DATETIME DEFAULT CURRENT_TIMESTAMP,
	confirmed_at DATETIME
);
`

// Open opens the SQLite database at path and applies the schema.
// Creates the file if missing.
func Open(ctx context.Context, path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, err
	}
	return &DB{db}, nil
}
