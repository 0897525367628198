package store

import "context"

// Learned behavioural patterns derived from the ledger. These feed the
// per-user guidance blocks in the system prompt; every query here is
// best-effort and a failure must never fail a turn.

// VendorAffinity records how often a vendor's expenses land in a category.
type VendorAffinity struct {
	Vendor   string `json:"vendor"`
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// VendorCategoryAffinities returns the dominant category per vendor,
// strongest affinities first.
func (db *DB) VendorCategoryAffinities(ctx context.Context, userID string, limit int) ([]VendorAffinity, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := db.QueryContext(ctx,
		`SELECT e.vendor, c.name, COUNT(*) AS n
		 FROM expenses e JOIN categories c ON c.id = e.category_id
		 WHERE e.user_id = ? AND e.vendor != ''
		 GROUP BY e.vendor, c.name ORDER BY n DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []VendorAffinity
	for rows.Next() {
		var a VendorAffinity
		if err := rows.Scan(&a.Vendor, &a.Category, &a.Count); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ClientTypicalAmount records the average income amount billed to a client.
type ClientTypicalAmount struct {
	Client    string  `json:"client"`
	AvgAmount float64 `json:"avg_amount"`
	Count     int     `json:"count"`
}

// TypicalClientAmounts returns average billed amounts per client for
// clients with at least two income records.
func (db *DB) TypicalClientAmounts(ctx context.Context, userID string, limit int) ([]ClientTypicalAmount, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := db.QueryContext(ctx,
		`SELECT cl.name, AVG(i.amount), COUNT(*) AS n
		 FROM income i JOIN clients cl ON cl.id = i.client_id
		 WHERE i.user_id = ?
		 GROUP BY cl.name HAVING n >= 2 ORDER BY n DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ClientTypicalAmount
	for rows.Next() {
		var a ClientTypicalAmount
		if err := rows.Scan(&a.Client, &a.AvgAmount, &a.Count); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// FrequentDescription is a free-text description the user repeats.
type FrequentDescription struct {
	Description string `json:"description"`
	Count       int    `json:"count"`
}

// FrequentDescriptions returns expense descriptions used more than once.
func (db *DB) FrequentDescriptions(ctx context.Context, userID string, limit int) ([]FrequentDescription, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := db.QueryContext(ctx,
		`SELECT description, COUNT(*) AS n FROM expenses
		 WHERE user_id = ? AND description != ''
		 GROUP BY description HAVING n >= 2 ORDER BY n DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FrequentDescription
	for rows.Next() {
		var d FrequentDescription
		if err := rows.Scan(&d.Description, &d.Count); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
