package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ledgermate/ledgermate/internal/store"
)

// failingPatterns simulates an unavailable personalization source.
type failingPatterns struct{}

func (failingPatterns) GetUserSettings(context.Context, string) (*store.UserSettings, error) {
	return nil, errors.New("settings table locked")
}
func (failingPatterns) VendorCategoryAffinities(context.Context, string, int) ([]store.VendorAffinity, error) {
	return nil, errors.New("unreachable")
}
func (failingPatterns) TypicalClientAmounts(context.Context, string, int) ([]store.ClientTypicalAmount, error) {
	return nil, errors.New("unreachable")
}
func (failingPatterns) FrequentDescriptions(context.Context, string, int) ([]store.FrequentDescription, error) {
	return nil, errors.New("unreachable")
}

// richPatterns returns one entry of each pattern kind.
type richPatterns struct{}

func (richPatterns) GetUserSettings(context.Context, string) (*store.UserSettings, error) {
	return &store.UserSettings{ID: "u1", Currency: "EUR", Country: "DE"}, nil
}
func (richPatterns) VendorCategoryAffinities(context.Context, string, int) ([]store.VendorAffinity, error) {
	return []store.VendorAffinity{{Vendor: "GitHub", Category: "Software", Count: 4}}, nil
}
func (richPatterns) TypicalClientAmounts(context.Context, string, int) ([]store.ClientTypicalAmount, error) {
	return []store.ClientTypicalAmount{{Client: "Acme", AvgAmount: 1200, Count: 3}}, nil
}
func (richPatterns) FrequentDescriptions(context.Context, string, int) ([]store.FrequentDescription, error) {
	return []store.FrequentDescription{{Description: "monthly retainer", Count: 6}}, nil
}

func TestBuildDegradesToStaticBlocks(t *testing.T) {
	a := NewContextAssembler(failingPatterns{})

	got := a.Build(context.Background(), "u1")
	want := strings.Join(staticBlocks, "\n\n")
	if got != want {
		t.Errorf("degraded prompt must equal static concatenation\n got: %q", got)
	}
	if got == "" {
		t.Fatal("static prompt must never be empty")
	}
}

func TestBuildIncludesUserGuidance(t *testing.T) {
	a := NewContextAssembler(richPatterns{})

	got := a.Build(context.Background(), "u1")
	for _, want := range []string{
		"currency EUR", "country DE",
		"GitHub -> Software",
		"Acme: around 1200.00",
		`"monthly retainer" (6 times)`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if !strings.HasPrefix(got, sharedRules) {
		t.Error("static blocks must precede user guidance")
	}
}

func TestBuildWithNoPatternsEqualsStatic(t *testing.T) {
	a := NewContextAssembler(emptyPatterns{})

	got := a.Build(context.Background(), "u1")
	if got != strings.Join(staticBlocks, "\n\n") {
		t.Error("empty personalization must yield the static prompt")
	}
}
