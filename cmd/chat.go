package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ledgermate/ledgermate/internal/config"
	"github.com/ledgermate/ledgermate/internal/dependency"
	"github.com/ledgermate/ledgermate/internal/shared/cmdutils"
)

var (
	chatMessage string
	chatSession string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to your ledger",
	RunE:  runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&chatMessage, "message", "m", "", "Send a single message and exit")
	chatCmd.Flags().StringVarP(&chatSession, "session", "s", "cli:direct", "Session key (channel:chat)")
}

var exitCommands = map[string]bool{
	"exit":  true,
	"quit":  true,
	"/exit": true,
	"/quit": true,
	":q":    true,
}

func runChat(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	listenForSignals(cancel)

	container, err := dependency.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	// Best-effort rate fetch so currency conversion works in the REPL.
	rateCtx, rateCancel := context.WithTimeout(ctx, 10*time.Second)
	_ = container.Rates().Refresh(rateCtx)
	rateCancel()

	channel, chatID := parseSessionKey(chatSession)

	if chatMessage != "" {
		return runSingleMessage(ctx, container, channel, chatID)
	}
	return runInteractive(ctx, container, channel, chatID)
}

// runSingleMessage sends one message and prints the response.
func runSingleMessage(ctx context.Context, container *dependency.Container, channel, chatID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	res := container.Assistant().ProcessDirect(ctx, chatMessage, channel, chatID,
		func(label string) { fmt.Fprintf(os.Stderr, "  … %s\n", label) })

	cmdutils.PrintResponse(res)
	return nil
}

// runInteractive reads lines from stdin and answers each in turn.
func runInteractive(ctx context.Context, container *dependency.Container, channel, chatID string) error {
	fmt.Printf("%s Interactive mode (type 'exit' or Ctrl+C to quit)\n\n", logo)

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("You: ")

		if !scanner.Scan() {
			fmt.Println("\nGoodbye!")
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if exitCommands[strings.ToLower(line)] {
			fmt.Println("Goodbye!")
			return nil
		}

		res := container.Assistant().ProcessDirect(ctx, line, channel, chatID,
			func(label string) { fmt.Printf("  … %s\n", label) })
		cmdutils.PrintResponse(res)
	}
}

// listenForSignals cancels ctx on SIGINT or SIGTERM.
func listenForSignals(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nGoodbye!")
		cancel()
		os.Exit(0)
	}()
}

func parseSessionKey(key string) (channel, chatID string) {
	if i := strings.Index(key, ":"); i >= 0 {
		return key[:i], key[i+1:]
	}
	return "cli", key
}
