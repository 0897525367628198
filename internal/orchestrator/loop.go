// Package orchestrator turns a conversational request into validated
// tool executions against the ledger by round-tripping with the
// completion gateway until a final natural-language answer is produced.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ledgermate/ledgermate/internal/schema"
	"github.com/ledgermate/ledgermate/internal/shared/llmutils"
	"github.com/ledgermate/ledgermate/internal/tools"
)

// TurnResult is what one user turn produces. ToolCalls is an audit
// trail of every tool executed during the turn, in execution order.
type TurnResult struct {
	Content   string
	ToolCalls []ToolResult
}

// Orchestrator runs the gateway ↔ tool state machine for one turn at a
// time. A single instance is safe for concurrent turns: all per-turn
// state lives on the stack of RunTurn.
type Orchestrator struct {
	provider  schema.LLMProvider
	registry  *tools.Registry
	assembler *ContextAssembler
	settings  schema.OrchestratorSettings
	exec      executor
}

func New(provider schema.LLMProvider, registry *tools.Registry, assembler *ContextAssembler, settings schema.OrchestratorSettings) *Orchestrator {
	return &Orchestrator{
		provider:  provider,
		registry:  registry,
		assembler: assembler,
		settings:  settings,
		exec:      executor{registry: registry},
	}
}

// RunTurn executes one user turn against the supplied history. The
// history is truncated to the configured window; rates is the
// exchange-rate snapshot tools may read during the turn. Only a gateway
// failure returns an error; every other failure mode degrades into
// model-visible payloads or fallback content.
func (o *Orchestrator) RunTurn(ctx context.Context, history schema.Messages, userID, conversationID string, rates map[string]float64) (TurnResult, error) {
	return o.run(ctx, history, userID, conversationID, rates, nil)
}

// RunTurnWithProgress is RunTurn with coarse phase labels delivered to
// sink around each gateway round-trip. The labels are display hints,
// not incremental output; the answer arrives only when RunTurn would
// have returned it.
func (o *Orchestrator) RunTurnWithProgress(ctx context.Context, history schema.Messages, userID, conversationID string, rates map[string]float64, sink ProgressSink) (TurnResult, error) {
	return o.run(ctx, history, userID, conversationID, rates, sink)
}

func (o *Orchestrator) run(ctx context.Context, history schema.Messages, userID, conversationID string, rates map[string]float64, sink ProgressSink) (TurnResult, error) {
	ctx = tools.WithTurn(ctx, tools.TurnContext{
		UserID:         userID,
		ConversationID: conversationID,
		Rates:          rates,
	})

	conversation := schema.NewMessages(schema.NewSystemMessage(o.assembler.Build(ctx, userID)))
	conversation.Append(history.Window(o.settings.HistoryWindow))

	emit(sink, PhaseThinking)
	resp, err := o.chat(ctx, conversation)
	if err != nil {
		return TurnResult{}, fmt.Errorf("completion gateway: %w", err)
	}

	var results []ToolResult

	for round := 0; ; round++ {
		switch classify(resp) {
		case plainAnswer:
			if len(results) > 0 {
				emit(sink, PhaseAlmost)
			}
			emit(sink, PhaseDone)
			return TurnResult{Content: llmutils.StripThink(resp.Text()), ToolCalls: results}, nil

		case legacyCalls:
			return o.legacyFallback(ctx, conversation, resp.Text(), results, sink)

		case structuredCalls:
			if round >= o.settings.MaxRounds {
				slog.Warn("tool chaining cap reached, returning last content",
					"rounds", round, "conversation", conversationID)
				emit(sink, PhaseDone)
				return TurnResult{Content: llmutils.StripThink(resp.Text()), ToolCalls: results}, nil
			}
			if round == 0 {
				emit(sink, PhaseRecords)
			} else {
				emit(sink, PhaseGathering)
			}

			// One assistant message carrying the calls, then one tool
			// message per result, in request order.
			conversation.AddAssistant(resp.Content, resp.ToolCalls)
			for _, tc := range resp.ToolCalls {
				out := o.exec.execute(ctx, tc.Name, tc.Arguments)
				results = append(results, ToolResult{ToolName: tc.Name, Result: out})
				conversation.AddToolResult(tc.ID, tc.Name, out)
			}

			resp, err = o.chat(ctx, conversation)
			if err != nil {
				return TurnResult{}, fmt.Errorf("completion gateway: %w", err)
			}
		}
	}
}

// legacyFallback handles a reply that encodes tool calls as inline text
// markers. It executes whatever parses, makes exactly one follow-up
// round-trip, and returns that content; no further chaining happens on
// this path. When nothing parses the raw reply is returned unmodified
// rather than dropped.
func (o *Orchestrator) legacyFallback(ctx context.Context, conversation schema.Messages, rawText string, results []ToolResult, sink ProgressSink) (TurnResult, error) {
	calls := parseLegacyCalls(rawText)
	if len(calls) == 0 {
		slog.Warn("inline tool-call markers present but nothing parsed, returning raw content")
		emit(sink, PhaseDone)
		return TurnResult{Content: rawText, ToolCalls: results}, nil
	}

	emit(sink, PhaseRecords)
	conversation.AddAssistant(nil, calls)
	for _, tc := range calls {
		out := o.exec.execute(ctx, tc.Name, tc.Arguments)
		results = append(results, ToolResult{ToolName: tc.Name, Result: out})
		conversation.AddToolResult(tc.ID, tc.Name, out)
	}

	emit(sink, PhaseAlmost)
	resp, err := o.chat(ctx, conversation)
	if err != nil {
		return TurnResult{}, fmt.Errorf("completion gateway: %w", err)
	}

	emit(sink, PhaseDone)
	return TurnResult{Content: llmutils.StripThink(resp.Text()), ToolCalls: results}, nil
}

func (o *Orchestrator) chat(ctx context.Context, conversation schema.Messages) (schema.LLMResponse, error) {
	return o.provider.Chat(ctx, conversation, o.registry.Definitions(),
		schema.NewChatOptions(o.settings.Model, o.settings.MaxTokens, o.settings.Temperature))
}
