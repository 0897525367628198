// Package cmd implements the ledgermate CLI using cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"
const logo = "📒"

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "ledgermate",
	Short: logo + " ledgermate — conversational bookkeeping assistant",
	Long:  logo + " ledgermate — track income, expenses and budgets by talking to your ledger",
}

// Execute runs the root command and exits on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version

	rootCmd.AddCommand(onboardCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(sessionsCmd)
}
