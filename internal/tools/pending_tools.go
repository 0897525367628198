package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgermate/ledgermate/internal/store"
)

type deleteRecordParams struct {
	Family string `json:"family" jsonschema:"description=Record family,enum=expense,enum=income,enum=client,enum=vendor,enum=category,enum=budget,enum=project,enum=tax_rate"`
	ID     int64  `json:"id" jsonschema:"description=ID of the record to delete"`
	Reason string `json:"reason,omitempty" jsonschema:"description=Why the record should be deleted"`
}

// DeleteRecordTool stages a deletion as a pending action. Nothing is
// removed until the user confirms outside this engine.
type DeleteRecordTool struct {
	db *store.DB
}

func NewDeleteRecordTool(db *store.DB) *DeleteRecordTool { return &DeleteRecordTool{db: db} }

func (t *DeleteRecordTool) Name() string { return "delete_record" }
func (t *DeleteRecordTool) Description() string {
	return "Request deletion of a ledger record. The deletion is staged and requires the user's explicit confirmation before it is applied."
}
func (t *DeleteRecordTool) Parameters() json.RawMessage { return paramsSchema(&deleteRecordParams{}) }

func (t *DeleteRecordTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	var p deleteRecordParams
	if err := decodeArgs(params, &p); err != nil {
		return "", fmt.Errorf("decode arguments: %w", err)
	}
	if p.ID <= 0 {
		return "", fmt.Errorf("id must be positive")
	}

	tc := TurnCtx(ctx)
	payload, err := json.Marshal(map[string]any{"family": p.Family, "id": p.ID, "reason": p.Reason})
	if err != nil {
		return "", err
	}

	actionID := uuid.NewString()
	if err := t.db.CreatePendingAction(ctx, actionID, tc.UserID, "delete_"+p.Family, string(payload)); err != nil {
		return "", fmt.Errorf("stage pending action: %w", err)
	}
	return jsonResult(map[string]any{
		"action_id":             actionID,
		"requires_confirmation": true,
		"staged":                map[string]any{"family": p.Family, "id": p.ID},
	})
}

// ListPendingTool shows unconfirmed staged actions.
type ListPendingTool struct {
	db *store.DB
}

func NewListPendingTool(db *store.DB) *ListPendingTool { return &ListPendingTool{db: db} }

func (t *ListPendingTool) Name() string { return "list_pending_actions" }
func (t *ListPendingTool) Description() string {
	return "List staged changes awaiting the user's confirmation."
}
func (t *ListPendingTool) Parameters() json.RawMessage { return paramsSchema(&emptyParams{}) }

func (t *ListPendingTool) Execute(ctx context.Context, _ map[string]any) (string, error) {
	tc := TurnCtx(ctx)
	list, err := t.db.ListPendingActions(ctx, tc.UserID)
	if err != nil {
		return "", fmt.Errorf("list pending actions: %w", err)
	}
	return jsonResult(map[string]any{"pending": list, "count": len(list)})
}
