package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledgermate/ledgermate/internal/store"
)

// Static instruction blocks, one per tool family after the shared
// rules. Concatenated in a fixed order so the system prompt is stable
// across turns.
const (
	sharedRules = `You are a bookkeeping assistant for freelancers and small businesses.
You manage a personal ledger through the tools provided. Always use a tool
for anything that reads or writes the ledger; never invent records or
amounts. When a date is not given, assume today. Amounts are in the user's
currency unless they say otherwise. Keep answers short and factual.`

	expenseInstructions = `Expenses: use add_expense to record spending and list_expenses to look
it up. If the user names a vendor you have seen before, reuse the vendor's
usual category unless they say otherwise. Categories are created on first
use; do not ask permission to create one.`

	incomeInstructions = `Income: use add_income for money received and list_income to review it.
Income must reference an existing client; if the client is unknown, create
it with add_client first (find_client tells you whether it exists), then
record the income.`

	clientInstructions = `Clients, vendors and projects: add_client, add_vendor and add_project
create records; the matching list_* and find_client tools look them up.
Creating an entity that already exists is harmless, but prefer finding it
first to avoid near-duplicate names.`

	budgetInstructions = `Budgets: set_budget sets a monthly or yearly cap per category and
budget_status compares spending against the caps for a period. When the
user asks "how am I doing", call budget_status before answering.`

	reportInstructions = `Reports: spending_report aggregates income, expenses and per-category
totals for a date range. parse_date resolves natural-language dates and
convert_currency converts amounts at current rates; use them instead of
computing dates or conversions yourself.`

	confirmationInstructions = `Destructive changes: delete_record never deletes immediately. It stages
a pending action that the user must confirm elsewhere; tell the user that
confirmation is required and include what will be deleted.`
)

var staticBlocks = []string{
	sharedRules,
	expenseInstructions,
	incomeInstructions,
	clientInstructions,
	budgetInstructions,
	reportInstructions,
	confirmationInstructions,
}

// PatternSource supplies per-user settings and learned behavioural
// patterns for the dynamic half of the system prompt. *store.DB
// satisfies it.
type PatternSource interface {
	GetUserSettings(ctx context.Context, userID string) (*store.UserSettings, error)
	VendorCategoryAffinities(ctx context.Context, userID string, limit int) ([]store.VendorAffinity, error)
	TypicalClientAmounts(ctx context.Context, userID string, limit int) ([]store.ClientTypicalAmount, error)
	FrequentDescriptions(ctx context.Context, userID string, limit int) ([]store.FrequentDescription, error)
}

// ContextAssembler builds the system prompt for one turn: the static
// instruction blocks followed by per-user guidance rendered from
// settings and learned patterns.
type ContextAssembler struct {
	patterns PatternSource
}

func NewContextAssembler(patterns PatternSource) *ContextAssembler {
	return &ContextAssembler{patterns: patterns}
}

// Build returns the full system prompt for userID. When the dynamic
// fetch fails it logs and returns the static blocks alone; a turn must
// never fail because personalization data was unavailable.
func (a *ContextAssembler) Build(ctx context.Context, userID string) string {
	static := strings.Join(staticBlocks, "\n\n")

	dynamic, err := a.userGuidance(ctx, userID)
	if err != nil {
		slog.Warn("personalization unavailable, using static instructions only",
			"user", userID, "err", err)
		return static
	}
	if dynamic == "" {
		return static
	}
	return static + "\n\n" + dynamic
}

// userGuidance renders the per-user blocks. It returns "" when there is
// nothing to say about this user yet.
func (a *ContextAssembler) userGuidance(ctx context.Context, userID string) (string, error) {
	var b strings.Builder

	settings, err := a.patterns.GetUserSettings(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("user settings: %w", err)
	}
	if settings != nil {
		fmt.Fprintf(&b, "About this user: currency %s", settings.Currency)
		if settings.Country != "" {
			fmt.Fprintf(&b, ", country %s", settings.Country)
		}
		b.WriteString(".\n")
	}

	affinities, err := a.patterns.VendorCategoryAffinities(ctx, userID, 10)
	if err != nil {
		return "", fmt.Errorf("vendor affinities: %w", err)
	}
	if len(affinities) > 0 {
		b.WriteString("Vendors they use and the category each usually lands in:\n")
		for _, v := range affinities {
			fmt.Fprintf(&b, "- %s -> %s (%d records)\n", v.Vendor, v.Category, v.Count)
		}
	}

	amounts, err := a.patterns.TypicalClientAmounts(ctx, userID, 10)
	if err != nil {
		return "", fmt.Errorf("client amounts: %w", err)
	}
	if len(amounts) > 0 {
		b.WriteString("Typical amounts billed per client:\n")
		for _, c := range amounts {
			fmt.Fprintf(&b, "- %s: around %.2f (%d records)\n", c.Client, c.AvgAmount, c.Count)
		}
	}

	descs, err := a.patterns.FrequentDescriptions(ctx, userID, 10)
	if err != nil {
		return "", fmt.Errorf("frequent descriptions: %w", err)
	}
	if len(descs) > 0 {
		b.WriteString("Expense descriptions they repeat, reuse the exact wording:\n")
		for _, d := range descs {
			fmt.Fprintf(&b, "- %q (%d times)\n", d.Description, d.Count)
		}
	}

	return strings.TrimRight(b.String(), "\n"), nil
}
