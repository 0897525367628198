package orchestrator

import "testing"

func TestParseLegacyCalls_SkipsBadJSON(t *testing.T) {
	text := `<|tool_call_begin|>toolA<|tool_sep|>{"x":1}<|tool_call_end|>` +
		`<|tool_call_begin|>toolB<|tool_sep|>{BAD_JSON<|tool_call_end|>`

	calls := parseLegacyCalls(text)
	if len(calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(calls))
	}
	if calls[0].Name != "toolA" {
		t.Errorf("unexpected name %q", calls[0].Name)
	}
	if calls[0].Arguments["x"] != float64(1) {
		t.Errorf("unexpected arguments %+v", calls[0].Arguments)
	}
	if calls[0].ID != "call_0" {
		t.Errorf("expected synthesised id call_0, got %q", calls[0].ID)
	}
}

func TestParseLegacyCalls_MultipleWellFormed(t *testing.T) {
	text := `some preamble ` +
		`<|tool_call_begin|>find_client<|tool_sep|>{"name":"Acme"}<|tool_call_end|>` +
		` chatter between calls ` +
		`<|tool_call_begin|>functions.add_income<|tool_sep|>{"amount":250}<|tool_call_end|>`

	calls := parseLegacyCalls(text)
	if len(calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(calls))
	}
	if calls[0].Name != "find_client" || calls[1].Name != "add_income" {
		t.Errorf("unexpected names: %q, %q", calls[0].Name, calls[1].Name)
	}
	if calls[1].ID != "call_1" {
		t.Errorf("ids must be positional, got %q", calls[1].ID)
	}
}

func TestParseLegacyCalls_NormalisesDateKeys(t *testing.T) {
	text := `<|tool_call_begin|>list_expenses<|tool_sep|>` +
		`{"startdate":"2026-08-01","enddate":"2026-08-31","limit":5}<|tool_call_end|>`

	calls := parseLegacyCalls(text)
	if len(calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(calls))
	}
	args := calls[0].Arguments
	if args["start_date"] != "2026-08-01" || args["end_date"] != "2026-08-31" {
		t.Errorf("date keys not normalised: %+v", args)
	}
	if _, ok := args["startdate"]; ok {
		t.Error("alias key must be removed after normalisation")
	}
	if args["limit"] != float64(5) {
		t.Errorf("unrelated keys must pass through: %+v", args)
	}
}

func TestParseLegacyCalls_NoMarkers(t *testing.T) {
	if calls := parseLegacyCalls("just a normal answer"); len(calls) != 0 {
		t.Errorf("expected no calls, got %+v", calls)
	}
}

func TestHasLegacyMarkers(t *testing.T) {
	if hasLegacyMarkers("plain text, no markers") {
		t.Error("false positive on plain text")
	}
	if !hasLegacyMarkers("prefix <|tool_calls_begin|> suffix") {
		t.Error("missed batch-begin sentinel")
	}
	if !hasLegacyMarkers("name<|tool_sep|>{}") {
		t.Error("missed separator sentinel")
	}
}
