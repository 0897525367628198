package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ledgermate/ledgermate/internal/store"
)

type addProjectParams struct {
	Name   string `json:"name" jsonschema:"description=Project name"`
	Client string `json:"client,omitempty" jsonschema:"description=Client the project belongs to; must already exist"`
}

// AddProjectTool creates a project, optionally linked to a client.
type AddProjectTool struct {
	db *store.DB
}

func NewAddProjectTool(db *store.DB) *AddProjectTool { return &AddProjectTool{db: db} }

func (t *AddProjectTool) Name() string                { return "add_project" }
func (t *AddProjectTool) Description() string         { return "Create a project, optionally linked to a client." }
func (t *AddProjectTool) Parameters() json.RawMessage { return paramsSchema(&addProjectParams{}) }

func (t *AddProjectTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	var p addProjectParams
	if err := decodeArgs(params, &p); err != nil {
		return "", fmt.Errorf("decode arguments: %w", err)
	}
	if p.Name == "" {
		return "", fmt.Errorf("name is required")
	}

	tc := TurnCtx(ctx)
	var clientID *int64
	if p.Client != "" {
		c, err := t.db.FindClientByName(ctx, tc.UserID, p.Client)
		if err != nil {
			return "", fmt.Errorf("find client: %w", err)
		}
		if c == nil {
			return "", fmt.Errorf("no client named %q; create it with add_client first", p.Client)
		}
		clientID = &c.ID
	}

	pr, err := t.db.CreateProject(ctx, tc.UserID, p.Name, clientID)
	if err != nil {
		return "", fmt.Errorf("create project: %w", err)
	}
	return jsonResult(map[string]any{"created": pr})
}

// ListProjectsTool lists all projects.
type ListProjectsTool struct {
	db *store.DB
}

func NewListProjectsTool(db *store.DB) *ListProjectsTool { return &ListProjectsTool{db: db} }

func (t *ListProjectsTool) Name() string                { return "list_projects" }
func (t *ListProjectsTool) Description() string         { return "List all projects." }
func (t *ListProjectsTool) Parameters() json.RawMessage { return paramsSchema(&emptyParams{}) }

func (t *ListProjectsTool) Execute(ctx context.Context, _ map[string]any) (string, error) {
	tc := TurnCtx(ctx)
	list, err := t.db.ListProjects(ctx, tc.UserID)
	if err != nil {
		return "", fmt.Errorf("list projects: %w", err)
	}
	return jsonResult(map[string]any{"projects": list, "count": len(list)})
}
