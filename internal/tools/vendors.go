package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ledgermate/ledgermate/internal/store"
)

type addVendorParams struct {
	Name            string `json:"name" jsonschema:"description=Vendor name"`
	DefaultCategory string `json:"default_category,omitempty" jsonschema:"description=Expense category to suggest for this vendor"`
}

// AddVendorTool creates a vendor record.
type AddVendorTool struct {
	db *store.DB
}

func NewAddVendorTool(db *store.DB) *AddVendorTool { return &AddVendorTool{db: db} }

func (t *AddVendorTool) Name() string { return "add_vendor" }
func (t *AddVendorTool) Description() string {
	return "Create a vendor, optionally with a default expense category."
}
func (t *AddVendorTool) Parameters() json.RawMessage { return paramsSchema(&addVendorParams{}) }

func (t *AddVendorTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	var p addVendorParams
	if err := decodeArgs(params, &p); err != nil {
		return "", fmt.Errorf("decode arguments: %w", err)
	}
	if p.Name == "" {
		return "", fmt.Errorf("name is required")
	}

	tc := TurnCtx(ctx)
	existing, err := t.db.FindVendorByName(ctx, tc.UserID, p.Name)
	if err != nil {
		return "", fmt.Errorf("find vendor: %w", err)
	}
	if existing != nil {
		return jsonResult(map[string]any{"vendor": existing, "note": "vendor already exists"})
	}

	var categoryID *int64
	if p.DefaultCategory != "" {
		cat, err := findOrCreateCategory(ctx, t.db, tc.UserID, p.DefaultCategory, "expense")
		if err != nil {
			return "", err
		}
		categoryID = &cat.ID
	}

	v, err := t.db.CreateVendor(ctx, tc.UserID, p.Name, categoryID)
	if err != nil {
		return "", fmt.Errorf("create vendor: %w", err)
	}
	return jsonResult(map[string]any{"created": v})
}

// ListVendorsTool lists all vendors.
type ListVendorsTool struct {
	db *store.DB
}

func NewListVendorsTool(db *store.DB) *ListVendorsTool { return &ListVendorsTool{db: db} }

func (t *ListVendorsTool) Name() string                { return "list_vendors" }
func (t *ListVendorsTool) Description() string         { return "List all vendors." }
func (t *ListVendorsTool) Parameters() json.RawMessage { return paramsSchema(&emptyParams{}) }

func (t *ListVendorsTool) Execute(ctx context.Context, _ map[string]any) (string, error) {
	tc := TurnCtx(ctx)
	list, err := t.db.ListVendors(ctx, tc.UserID)
	if err != nil {
		return "", fmt.Errorf("list vendors: %w", err)
	}
	return jsonResult(map[string]any{"vendors": list, "count": len(list)})
}
