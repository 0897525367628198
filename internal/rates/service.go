// Package rates keeps a periodically refreshed exchange-rate snapshot.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	robfigcron "github.com/robfig/cron/v3"
)

// Service fetches exchange rates on a cron schedule and serves an
// immutable snapshot per caller. A turn takes one snapshot at its start
// so every conversion within the turn agrees.
type Service struct {
	url     string
	base    string
	spec    string
	client  *http.Client
	sched   *robfigcron.Cron
	entryID robfigcron.EntryID

	mu        sync.RWMutex
	rates     map[string]float64
	fetchedAt time.Time
}

// NewService creates a rate service. url must return JSON with a
// "rates" object keyed by ISO 4217 code; spec is a standard five-field
// cron expression.
func NewService(url, baseCurrency, spec string) *Service {
	return &Service{
		url:    url,
		base:   baseCurrency,
		spec:   spec,
		client: &http.Client{Timeout: 30 * time.Second},
		sched:  robfigcron.New(),
		rates:  map[string]float64{},
	}
}

// Start performs an initial refresh, arms the cron schedule, and blocks
// until ctx is cancelled. A failed initial refresh is logged, not
// fatal: tools see an empty snapshot and report the missing rates
// themselves.
func (s *Service) Start(ctx context.Context) error {
	if err := s.Refresh(ctx); err != nil {
		slog.Warn("initial exchange-rate refresh failed", "err", err)
	}

	id, err := s.sched.AddFunc(s.spec, func() {
		if err := s.Refresh(ctx); err != nil {
			slog.Warn("exchange-rate refresh failed", "err", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid rates refresh schedule %q: %w", s.spec, err)
	}
	s.entryID = id
	s.sched.Start()
	slog.Info("rates service started", "base", s.base, "schedule", s.spec)

	<-ctx.Done()
	<-s.sched.Stop().Done()
	return ctx.Err()
}

// ratesBody covers the common response shapes of public rate APIs:
// some use "base", others "base_code".
type ratesBody struct {
	Base     string             `json:"base"`
	BaseCode string             `json:"base_code"`
	Rates    map[string]float64 `json:"rates"`
}

// Refresh fetches the current rates and replaces the snapshot.
func (s *Service) Refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("rates endpoint HTTP %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read rates: %w", err)
	}

	var body ratesBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return fmt.Errorf("parse rates: %w", err)
	}
	if len(body.Rates) == 0 {
		return fmt.Errorf("rates endpoint returned no rates")
	}

	rates := make(map[string]float64, len(body.Rates)+1)
	for code, rate := range body.Rates {
		rates[code] = rate
	}
	rates[s.base] = 1

	s.mu.Lock()
	s.rates = rates
	s.fetchedAt = time.Now()
	s.mu.Unlock()

	slog.Info("exchange rates refreshed", "base", s.base, "currencies", len(rates))
	return nil
}

// Snapshot returns a copy of the current rates. Safe to hand to a turn;
// later refreshes do not mutate it.
func (s *Service) Snapshot() map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]float64, len(s.rates))
	for code, rate := range s.rates {
		out[code] = rate
	}
	return out
}

// FetchedAt reports when the snapshot was last replaced; zero when no
// refresh has succeeded yet.
func (s *Service) FetchedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchedAt
}
