package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgermate/ledgermate/internal/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show ledgermate status",
	RunE:  runStatus,
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfgPath := config.ConfigPath()

	fmt.Printf("%s ledgermate Status\n\n", logo)

	_, statErr := os.Stat(cfgPath)
	cfgMark := "✗"
	if statErr == nil {
		cfgMark = "✓"
	}
	fmt.Printf("Config:    %s %s\n", cfgPath, cfgMark)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Printf("  (could not load config: %v)\n", err)
		return nil
	}

	_, wsErr := os.Stat(cfg.Workspace)
	wsMark := "✗"
	if wsErr == nil {
		wsMark = "✓"
	}
	fmt.Printf("Workspace: %s %s\n", cfg.Workspace, wsMark)

	dbPath := cfg.LedgerDBPath()
	_, dbErr := os.Stat(dbPath)
	dbMark := "✗ (created on first use)"
	if dbErr == nil {
		dbMark = "✓"
	}
	fmt.Printf("Ledger:    %s %s\n\n", dbPath, dbMark)

	fmt.Printf("Model:     %s\n", cfg.Provider.Model)
	if cfg.Provider.APIKey != "" {
		fmt.Println("API key:   ✓")
	} else {
		fmt.Println("API key:   (not set)")
	}
	fmt.Printf("Rates:     %s (base %s, refresh %q)\n", cfg.Rates.URL, cfg.Rates.BaseCurrency, cfg.Rates.RefreshSpec)

	fmt.Println("\nChannels:")
	fmt.Println("  cli                  ✓")
	fmt.Printf("  web                  ✓ ws://127.0.0.1:%d/ws\n", cfg.Gateway.Port)
	if cfg.Telegram.Enabled {
		fmt.Println("  telegram             ✓")
	} else {
		fmt.Println("  telegram             (disabled)")
	}
	return nil
}
