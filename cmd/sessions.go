package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgermate/ledgermate/internal/config"
	"github.com/ledgermate/ledgermate/internal/session"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List stored conversations",
	RunE:  runSessions,
}

func runSessions(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	mgr, err := session.NewManager(cfg.Workspace)
	if err != nil {
		return err
	}

	infos := mgr.ListSessions()
	if len(infos) == 0 {
		fmt.Println("No stored sessions.")
		return nil
	}

	fmt.Printf("%s Sessions\n\n", logo)
	for _, info := range infos {
		fmt.Printf("  %-30s updated %s\n", info.Key, info.UpdatedAt)
	}
	return nil
}
