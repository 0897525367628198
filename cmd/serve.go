package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ledgermate/ledgermate/internal/channels"
	"github.com/ledgermate/ledgermate/internal/config"
	"github.com/ledgermate/ledgermate/internal/dependency"
	"github.com/ledgermate/ledgermate/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the ledgermate assistant server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "WebSocket gateway port (overrides config)")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if servePort != 0 {
		cfg.Gateway.Port = servePort
	}

	// Graceful shutdown context.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := dependency.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	fmt.Printf("%s Starting ledgermate on port %d...\n", logo, cfg.Gateway.Port)

	channelMgr := channels.NewManager(cfg, container.MessageBus())
	channelMgr.Register(server.NewWSGateway(cfg.Gateway.Port, container.MessageBus()))
	fmt.Printf("✓ Channels enabled: %s\n", strings.Join(channelMgr.EnabledChannels(), ", "))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return container.Assistant().Run(gctx) })
	g.Go(func() error { return container.Rates().Start(gctx) })
	g.Go(func() error { return channelMgr.StartAll(gctx) })

	fmt.Printf("%s Server running. Press Ctrl+C to stop.\n", logo)

	if err := g.Wait(); err != nil && err != context.Canceled {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		return err
	}
	fmt.Println("\nShutdown complete.")
	return nil
}
