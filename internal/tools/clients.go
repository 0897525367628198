package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ledgermate/ledgermate/internal/store"
)

type addClientParams struct {
	Name     string `json:"name" jsonschema:"description=Client name"`
	Email    string `json:"email,omitempty"`
	Country  string `json:"country,omitempty" jsonschema:"description=ISO country code"`
	Currency string `json:"currency,omitempty" jsonschema:"description=Currency this client is billed in"`
}

// AddClientTool creates a client record.
type AddClientTool struct {
	db *store.DB
}

func NewAddClientTool(db *store.DB) *AddClientTool { return &AddClientTool{db: db} }

func (t *AddClientTool) Name() string        { return "add_client" }
func (t *AddClientTool) Description() string { return "Create a new client." }
func (t *AddClientTool) Parameters() json.RawMessage {
	return paramsSchema(&addClientParams{})
}

func (t *AddClientTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	var p addClientParams
	if err := decodeArgs(params, &p); err != nil {
		return "", fmt.Errorf("decode arguments: %w", err)
	}
	if p.Name == "" {
		return "", fmt.Errorf("name is required")
	}

	tc := TurnCtx(ctx)
	existing, err := t.db.FindClientByName(ctx, tc.UserID, p.Name)
	if err != nil {
		return "", fmt.Errorf("find client: %w", err)
	}
	if existing != nil {
		return jsonResult(map[string]any{"client": existing, "note": "client already exists"})
	}

	c, err := t.db.CreateClient(ctx, tc.UserID, p.Name, p.Email, p.Country, p.Currency)
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}
	return jsonResult(map[string]any{"created": c})
}

type findClientParams struct {
	Name string `json:"name" jsonschema:"description=Client name to look up (case-insensitive)"`
}

// FindClientTool looks up a client by name so later calls can reference it.
type FindClientTool struct {
	db *store.DB
}

func NewFindClientTool(db *store.DB) *FindClientTool { return &FindClientTool{db: db} }

func (t *FindClientTool) Name() string { return "find_client" }
func (t *FindClientTool) Description() string {
	return "Look up a client by name. Use before recording income against a client."
}
func (t *FindClientTool) Parameters() json.RawMessage { return paramsSchema(&findClientParams{}) }

func (t *FindClientTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	var p findClientParams
	if err := decodeArgs(params, &p); err != nil {
		return "", fmt.Errorf("decode arguments: %w", err)
	}

	tc := TurnCtx(ctx)
	c, err := t.db.FindClientByName(ctx, tc.UserID, p.Name)
	if err != nil {
		return "", fmt.Errorf("find client: %w", err)
	}
	if c == nil {
		return jsonResult(map[string]any{"found": false})
	}
	return jsonResult(map[string]any{"found": true, "client": c})
}

// ListClientsTool lists all clients.
type ListClientsTool struct {
	db *store.DB
}

func NewListClientsTool(db *store.DB) *ListClientsTool { return &ListClientsTool{db: db} }

func (t *ListClientsTool) Name() string                { return "list_clients" }
func (t *ListClientsTool) Description() string         { return "List all clients." }
func (t *ListClientsTool) Parameters() json.RawMessage { return paramsSchema(&emptyParams{}) }

func (t *ListClientsTool) Execute(ctx context.Context, _ map[string]any) (string, error) {
	tc := TurnCtx(ctx)
	list, err := t.db.ListClients(ctx, tc.UserID)
	if err != nil {
		return "", fmt.Errorf("list clients: %w", err)
	}
	return jsonResult(map[string]any{"clients": list, "count": len(list)})
}
