package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	def := DefaultConfig()
	if cfg.Provider.Model != def.Provider.Model {
		t.Errorf("expected default model %q, got %q", def.Provider.Model, cfg.Provider.Model)
	}
	if cfg.Orchestrator.MaxRounds != 5 {
		t.Errorf("expected default maxRounds 5, got %d", cfg.Orchestrator.MaxRounds)
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
provider:
  model: gpt-4o-mini
  apiKey: test-key
orchestrator:
  maxRounds: 3
  historyWindow: 10
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider.Model != "gpt-4o-mini" {
		t.Errorf("expected model %q, got %q", "gpt-4o-mini", cfg.Provider.Model)
	}
	if cfg.Orchestrator.MaxRounds != 3 {
		t.Errorf("expected maxRounds 3, got %d", cfg.Orchestrator.MaxRounds)
	}
	if cfg.Orchestrator.HistoryWindow != 10 {
		t.Errorf("expected historyWindow 10, got %d", cfg.Orchestrator.HistoryWindow)
	}
	// Untouched sections keep their defaults.
	if cfg.Gateway.Port != 18930 {
		t.Errorf("expected default gateway port, got %d", cfg.Gateway.Port)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "provider: [not: valid")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error for invalid YAML (falls back to default), got: %v", err)
	}
	def := DefaultConfig()
	if cfg.Provider.Model != def.Provider.Model {
		t.Errorf("expected default model %q, got %q", def.Provider.Model, cfg.Provider.Model)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := DefaultConfig()
	cfg.Provider.Model = "gpt-4.1"
	cfg.Telegram.Enabled = true
	if err := Save(&cfg, path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Provider.Model != "gpt-4.1" {
		t.Errorf("expected model gpt-4.1, got %q", loaded.Provider.Model)
	}
	if !loaded.Telegram.Enabled {
		t.Error("expected telegram enabled after round trip")
	}
}

func TestLedgerDBPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workspace = "/tmp/ws"
	if got := cfg.LedgerDBPath(); got != filepath.Join("/tmp/ws", "ledger.db") {
		t.Errorf("unexpected ledger path %q", got)
	}
	cfg.LedgerPath = "/data/ledger.db"
	if got := cfg.LedgerDBPath(); got != "/data/ledger.db" {
		t.Errorf("explicit ledger path not honoured, got %q", got)
	}
}
