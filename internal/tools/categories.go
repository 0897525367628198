package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ledgermate/ledgermate/internal/store"
)

type addCategoryParams struct {
	Name string `json:"name" jsonschema:"description=Category name"`
	Kind string `json:"kind" jsonschema:"description=Whether this is an income or expense category,enum=income,enum=expense"`
}

// AddCategoryTool creates a category.
type AddCategoryTool struct {
	db *store.DB
}

func NewAddCategoryTool(db *store.DB) *AddCategoryTool { return &AddCategoryTool{db: db} }

func (t *AddCategoryTool) Name() string { return "add_category" }
func (t *AddCategoryTool) Description() string {
	return "Create an income or expense category."
}
func (t *AddCategoryTool) Parameters() json.RawMessage { return paramsSchema(&addCategoryParams{}) }

func (t *AddCategoryTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	var p addCategoryParams
	if err := decodeArgs(params, &p); err != nil {
		return "", fmt.Errorf("decode arguments: %w", err)
	}
	if p.Name == "" {
		return "", fmt.Errorf("name is required")
	}
	if p.Kind != "income" && p.Kind != "expense" {
		return "", fmt.Errorf("kind must be income or expense, got %q", p.Kind)
	}

	tc := TurnCtx(ctx)
	cat, err := findOrCreateCategory(ctx, t.db, tc.UserID, p.Name, p.Kind)
	if err != nil {
		return "", err
	}
	return jsonResult(map[string]any{"category": cat})
}

type listCategoriesParams struct {
	Kind string `json:"kind,omitempty" jsonschema:"description=Filter by kind,enum=income,enum=expense"`
}

// ListCategoriesTool lists categories.
type ListCategoriesTool struct {
	db *store.DB
}

func NewListCategoriesTool(db *store.DB) *ListCategoriesTool { return &ListCategoriesTool{db: db} }

func (t *ListCategoriesTool) Name() string { return "list_categories" }
func (t *ListCategoriesTool) Description() string {
	return "List categories, optionally filtered by kind."
}
func (t *ListCategoriesTool) Parameters() json.RawMessage {
	return paramsSchema(&listCategoriesParams{})
}

func (t *ListCategoriesTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	var p listCategoriesParams
	if err := decodeArgs(params, &p); err != nil {
		return "", fmt.Errorf("decode arguments: %w", err)
	}

	tc := TurnCtx(ctx)
	list, err := t.db.ListCategories(ctx, tc.UserID, p.Kind)
	if err != nil {
		return "", fmt.Errorf("list categories: %w", err)
	}
	return jsonResult(map[string]any{"categories": list, "count": len(list)})
}
