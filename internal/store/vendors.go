package store

import (
	"context"
	"database/sql"
)

type Vendor struct {
	ID                int64  `json:"id"`
	UserID            string `json:"user_id"`
	Name              string `json:"name"`
	DefaultCategoryID *int64 `json:"default_category_id,omitempty"`
}

// CreateVendor inserts a vendor; defaultCategoryID may be nil.
func (db *DB) CreateVendor(ctx context.Context, userID, name string, defaultCategoryID *int64) (*Vendor, error) {
	res, err := db.ExecContext(ctx,
		`INSERT INTO vendors (user_id, name, default_category_id) VALUES (?, ?, ?)`,
		userID, name, defaultCategoryID,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Vendor{ID: id, UserID: userID, Name: name, DefaultCategoryID: defaultCategoryID}, nil
}

// FindVendorByName looks up a vendor by name, case-insensitive.
// Returns nil, nil if not found.
func (db *DB) FindVendorByName(ctx context.Context, userID, name string) (*Vendor, error) {
	var v Vendor
	var catID sql.NullInt64
	err := db.QueryRowContext(ctx,
		`SELECT id, user_id, name, default_category_id
		 FROM vendors WHERE user_id = ? AND name = ? COLLATE NOCASE`,
		userID, name,
	).Scan(&v.ID, &v.UserID, &v.Name, &catID)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if catID.Valid {
		v.DefaultCategoryID = &catID.Int64
	}
	return &v, nil
}

// ListVendors returns all vendors for a user ordered by name.
func (db *DB) ListVendors(ctx context.Context, userID string) ([]Vendor, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, user_id, name, default_category_id FROM vendors WHERE user_id = ? ORDER BY name`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Vendor
	for rows.Next() {
		var v Vendor
		var catID sql.NullInt64
		if err := rows.Scan(&v.ID, &v.UserID, &v.Name, &catID); err != nil {
			return nil, err
		}
		if catID.Valid {
			v.DefaultCategoryID = &catID.Int64
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
