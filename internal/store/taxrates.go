package store

import "context"

type TaxRate struct {
	ID          int64   `json:"id"`
	UserID      string  `json:"user_id"`
	Name        string  `json:"name"`
	RatePercent float64 `json:"rate_percent"`
	Country     string  `json:"country"`
}

// CreateTaxRate inserts a tax rate.
func (db *DB) CreateTaxRate(ctx context.Context, userID, name string, ratePercent float64, country string) (*TaxRate, error) {
	res, err := db.ExecContext(ctx,
		`INSERT INTO tax_rates (user_id, name, rate_percent, country) VALUES (?, ?, ?, ?)`,
		userID, name, ratePercent, country,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &TaxRate{ID: id, UserID: userID, Name: name, RatePercent: ratePercent, Country: country}, nil
}

// ListTaxRates returns all tax rates for a user ordered by name.
func (db *DB) ListTaxRates(ctx context.Context, userID string) ([]TaxRate, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, user_id, name, rate_percent, country FROM tax_rates WHERE user_id = ? ORDER BY name`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TaxRate
	for rows.Next() {
		var t TaxRate
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.RatePercent, &t.Country); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
