package store

import (
	"context"
	"database/sql"
)

type Project struct {
	ID       int64  `json:"id"`
	UserID   string `json:"user_id"`
	ClientID *int64 `json:"client_id,omitempty"`
	Name     string `json:"name"`
	Status   string `json:"status"`
}

// CreateProject inserts a project; clientID may be nil.
func (db *DB) CreateProject(ctx context.Context, userID, name string, clientID *int64) (*Project, error) {
	res, err := db.ExecContext(ctx,
		`INSERT INTO projects (user_id, client_id, name) VALUES (?, ?, ?)`,
		userID, clientID, name,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Project{ID: id, UserID: userID, ClientID: clientID, Name: name, Status: "active"}, nil
}

// FindProjectByName looks up a project by name, case-insensitive.
// Returns nil, nil if not found.
func (db *DB) FindProjectByName(ctx context.Context, userID, name string) (*Project, error) {
	var p Project
	var clientID sql.NullInt64
	err := db.QueryRowContext(ctx,
		`SELECT id, user_id, client_id, name, status
		 FROM projects WHERE user_id = ? AND name = ? COLLATE NOCASE`,
		userID, name,
	).Scan(&p.ID, &p.UserID, &clientID, &p.Name, &p.Status)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if clientID.Valid {
		p.ClientID = &clientID.Int64
	}
	return &p, nil
}

// ListProjects returns all projects for a user ordered by name.
func (db *DB) ListProjects(ctx context.Context, userID string) ([]Project, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, user_id, client_id, name, status FROM projects WHERE user_id = ? ORDER BY name`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Project
	for rows.Next() {
		var p Project
		var clientID sql.NullInt64
		if err := rows.Scan(&p.ID, &p.UserID, &clientID, &p.Name, &p.Status); err != nil {
			return nil, err
		}
		if clientID.Valid {
			p.ClientID = &clientID.Int64
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
