package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/ledgermate/ledgermate/internal/store"
)

// decodeArgs maps validated tool-call arguments onto a typed params struct.
func decodeArgs(params map[string]any, v any) error {
	data, err := json.Marshal(params)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// jsonResult serialises a tool outcome for the model.
func jsonResult(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// resolveDate normalises a free-form date to YYYY-MM-DD, defaulting to
// today when empty.
func resolveDate(raw string) (string, error) {
	if raw == "" {
		return time.Now().Format("2006-01-02"), nil
	}
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return "", err
	}
	return t.Format("2006-01-02"), nil
}

// resolveRange normalises an optional date range; empty bounds stay empty
// (unbounded) rather than defaulting to today.
func resolveRange(start, end string) (string, string, error) {
	var from, to string
	var err error
	if start != "" {
		if from, err = resolveDate(start); err != nil {
			return "", "", fmt.Errorf("unrecognised start_date %q: %w", start, err)
		}
	}
	if end != "" {
		if to, err = resolveDate(end); err != nil {
			return "", "", fmt.Errorf("unrecognised end_date %q: %w", end, err)
		}
	}
	return from, to, nil
}

// resolveCurrency returns the explicit currency if given, otherwise the
// user's configured currency, otherwise USD.
func resolveCurrency(ctx context.Context, db *store.DB, userID, explicit string) (string, error) {
	if explicit != "" {
		return strings.ToUpper(explicit), nil
	}
	u, err := db.GetUserSettings(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("load user settings: %w", err)
	}
	if u != nil && u.Currency != "" {
		return u.Currency, nil
	}
	return "USD", nil
}

// findOrCreateCategory resolves a category by name, creating it on first use.
func findOrCreateCategory(ctx context.Context, db *store.DB, userID, name, kind string) (*store.Category, error) {
	cat, err := db.FindCategory(ctx, userID, name)
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	if cat != nil {
		return cat, nil
	}
	cat, err = db.CreateCategory(ctx, userID, name, kind)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return cat, nil
}
