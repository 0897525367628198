// Package config holds the ledgermate configuration schema and loader.
package config

// ProviderConfig selects the completion gateway endpoint.
type ProviderConfig struct {
	APIKey  string `yaml:"apiKey"`
	APIBase string `yaml:"apiBase"`
	Model   string `yaml:"model"`
}

// OrchestratorConfig tunes the tool-calling loop. Zero values fall back
// to the documented defaults (5 chained rounds, 20 history messages).
type OrchestratorConfig struct {
	MaxRounds     int     `yaml:"maxRounds"`
	HistoryWindow int     `yaml:"historyWindow"`
	MaxTokens     int     `yaml:"maxTokens"`
	Temperature   float64 `yaml:"temperature"`
}

// TelegramConfig configures the optional Telegram frontend.
type TelegramConfig struct {
	Enabled   bool     `yaml:"enabled"`
	Token     string   `yaml:"token"`
	AllowFrom []string `yaml:"allowFrom"`
}

// GatewayConfig configures the websocket chat gateway.
type GatewayConfig struct {
	Port int `yaml:"port"`
}

// RatesConfig configures the exchange-rate refresher.
type RatesConfig struct {
	URL          string `yaml:"url"`
	BaseCurrency string `yaml:"baseCurrency"`
	// RefreshSpec is a cron expression; default refreshes hourly.
	RefreshSpec string `yaml:"refreshSpec"`
}

// Config is the root configuration document.
type Config struct {
	Workspace    string             `yaml:"workspace"`
	LedgerPath   string             `yaml:"ledgerPath"`
	Provider     ProviderConfig     `yaml:"provider"`
	Orchestrator OrchestratorConfig `yaml:"orchestrator"`
	Telegram     TelegramConfig     `yaml:"telegram"`
	Gateway      GatewayConfig      `yaml:"gateway"`
	Rates        RatesConfig        `yaml:"rates"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Workspace:  DataDir(),
		LedgerPath: "", // resolved relative to workspace when empty
		Provider: ProviderConfig{
			APIBase: "https://api.openai.com/v1",
			Model:   "gpt-4o",
		},
		Orchestrator: OrchestratorConfig{
			MaxRounds:     5,
			HistoryWindow: 20,
			MaxTokens:     4096,
			Temperature:   0.3,
		},
		Gateway: GatewayConfig{Port: 18930},
		Rates: RatesConfig{
			URL:          "https://open.er-api.com/v6/latest",
			BaseCurrency: "USD",
			RefreshSpec:  "0 * * * *",
		},
	}
}
