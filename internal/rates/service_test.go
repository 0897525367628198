package rates

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRefreshAndSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"base_code":"USD","rates":{"EUR":0.9,"GBP":0.78}}`)
	}))
	defer srv.Close()

	s := NewService(srv.URL, "USD", "0 * * * *")
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	snap := s.Snapshot()
	if snap["EUR"] != 0.9 || snap["GBP"] != 0.78 {
		t.Errorf("unexpected rates: %+v", snap)
	}
	if snap["USD"] != 1 {
		t.Error("base currency must be pinned to 1")
	}
	if s.FetchedAt().IsZero() {
		t.Error("FetchedAt should be set after a successful refresh")
	}

	// Snapshot is a copy; mutating it must not affect the service.
	snap["EUR"] = 42
	if s.Snapshot()["EUR"] != 0.9 {
		t.Error("snapshot must be independent of internal state")
	}
}

func TestRefreshRejectsEmptyRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"base":"USD","rates":{}}`)
	}))
	defer srv.Close()

	s := NewService(srv.URL, "USD", "0 * * * *")
	if err := s.Refresh(context.Background()); err == nil {
		t.Fatal("expected error for empty rates")
	}
	if len(s.Snapshot()) != 0 {
		t.Error("failed refresh must not replace the snapshot")
	}
}

func TestRefreshRejectsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	s := NewService(srv.URL, "USD", "0 * * * *")
	if err := s.Refresh(context.Background()); err == nil {
		t.Fatal("expected error for HTTP 502")
	}
}
