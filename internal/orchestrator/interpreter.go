package orchestrator

import "github.com/ledgermate/ledgermate/internal/schema"

// replyKind classifies a gateway response into exactly one shape.
type replyKind int

const (
	// plainAnswer is a terminal natural-language reply.
	plainAnswer replyKind = iota
	// structuredCalls carries a non-empty structured tool-call list.
	structuredCalls
	// legacyCalls is plain text that embeds tool calls in the inline
	// marker encoding some model variants emit instead of the
	// structured field.
	legacyCalls
)

// classify inspects a gateway response and decides which of the three
// handling paths applies. Structured calls win over everything; the
// legacy text encoding is only considered when no structured calls are
// present.
func classify(resp schema.LLMResponse) replyKind {
	if resp.HasToolCalls() {
		return structuredCalls
	}
	if hasLegacyMarkers(resp.Text()) {
		return legacyCalls
	}
	return plainAnswer
}
