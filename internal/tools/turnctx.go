package tools

import "context"

// TurnContext carries per-turn data through the context tree. It is set
// by the orchestrator once per user turn and read by tools inside
// Execute. It is immutable within a turn: tools may read it but nothing
// mutates it mid-turn.
type TurnContext struct {
	UserID         string
	ConversationID string
	// Rates is a currency→rate snapshot relative to the base currency,
	// taken when the turn started.
	Rates map[string]float64
}

type turnKey struct{}

// WithTurn returns a child context that carries tc.
func WithTurn(ctx context.Context, tc TurnContext) context.Context {
	return context.WithValue(ctx, turnKey{}, tc)
}

// TurnCtx extracts the TurnContext from ctx.
// Returns a zero-value TurnContext if none was set.
func TurnCtx(ctx context.Context) TurnContext {
	tc, _ := ctx.Value(turnKey{}).(TurnContext)
	return tc
}
