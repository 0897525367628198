package orchestrator

// Compatibility shim for the inline tool-call text encoding emitted by
// some model variants instead of the structured tool_calls field. The
// marker set below is coupled to those models' output and must be kept
// in sync with whatever they emit. Nothing here may leak into the
// structured-path logic.

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/ledgermate/ledgermate/internal/schema"
)

// legacySentinels mark text that encodes tool calls inline.
var legacySentinels = []string{
	"<|tool_call_begin|>",
	"<|tool_calls_begin|>",
	"<|tool_sep|>",
}

// legacyCallRe extracts one inline call: name, separator, JSON args.
// The args segment is matched lazily so one broken call cannot swallow
// the calls after it.
var legacyCallRe = regexp.MustCompile(
	`(?s)<\|tool_call_begin\|>\s*(?:functions\.)?([\w.\-]+)\s*<\|tool_sep\|>\s*(.*?)\s*<\|tool_call_end\|>`)

// argKeyAliases normalises argument keys the legacy encoding gets
// wrong. This is a fixed compatibility list for observed model output,
// not a general renaming mechanism; do not extend it beyond known
// aliases.
var argKeyAliases = map[string]string{
	"startdate": "start_date",
	"enddate":   "end_date",
}

// hasLegacyMarkers reports whether text contains any sentinel of the
// inline encoding.
func hasLegacyMarkers(text string) bool {
	for _, s := range legacySentinels {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}

// parseLegacyCalls extracts tool calls from inline-encoded text. A call
// whose argument JSON does not parse is logged and skipped; the rest of
// the batch survives. The encoding carries no call ids, so positional
// ids (call_0, call_1, ...) are synthesised for the follow-up tool
// messages.
func parseLegacyCalls(text string) []schema.ToolCall {
	matches := legacyCallRe.FindAllStringSubmatch(text, -1)

	var calls []schema.ToolCall
	for _, m := range matches {
		name, rawArgs := m[1], m[2]

		var args map[string]any
		if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
			slog.Warn("skipping inline tool call with invalid argument JSON",
				"tool", name, "err", err)
			continue
		}

		for from, to := range argKeyAliases {
			if v, ok := args[from]; ok {
				args[to] = v
				delete(args, from)
			}
		}

		calls = append(calls, schema.ToolCall{
			ID:        synthCallID(len(calls)),
			Name:      name,
			Arguments: args,
		})
	}
	return calls
}

func synthCallID(index int) string {
	return "call_" + strconv.Itoa(index)
}
