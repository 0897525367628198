package channels

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ledgermate/ledgermate/internal/bus"
	"github.com/ledgermate/ledgermate/internal/shared/cmdutils"
)

var cliExitCommands = map[string]bool{
	"exit":  true,
	"quit":  true,
	"/exit": true,
	"/quit": true,
	":q":    true,
}

// CLIChannel wires the terminal (stdin/stdout) into the channel manager.
// Replies are delivered back through Send and printed by the REPL loop.
type CLIChannel struct {
	Base
	replies chan bus.OutboundMessage
}

// NewCLIChannel creates a CLIChannel.
func NewCLIChannel(b *bus.MessageBus) *CLIChannel {
	return &CLIChannel{
		Base:    NewBase(bus.ChannelCLI, b, nil),
		replies: make(chan bus.OutboundMessage, 16),
	}
}

func (c *CLIChannel) Name() string { return string(bus.ChannelCLI) }

// Start runs the stdin REPL: reads lines, dispatches them to the
// assistant via the bus, and prints each reply. Blocks until ctx is
// cancelled or stdin is closed.
func (c *CLIChannel) Start(ctx context.Context) error {
	fmt.Printf("Ledger assistant ready. Type 'exit' or press Ctrl+C to quit.\n\n")

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("You: ")

		scanDone := make(chan bool, 1)
		go func() {
			scanDone <- scanner.Scan()
		}()

		select {
		case ok := <-scanDone:
			if !ok {
				fmt.Println("\nGoodbye!")
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if cliExitCommands[strings.ToLower(line)] {
			fmt.Println("Goodbye!")
			return nil
		}

		c.HandleMessage("local", "direct", line, nil)
		c.waitForReply(ctx)
	}
}

// waitForReply blocks until the assistant delivers a non-progress reply,
// printing progress labels as they arrive.
func (c *CLIChannel) waitForReply(ctx context.Context) {
	for {
		select {
		case msg := <-c.replies:
			if prog, _ := msg.Metadata["_progress"].(bool); prog {
				fmt.Printf("  … %s\n", msg.Content)
				continue
			}
			cmdutils.PrintResponse(msg.Content)
			return
		case <-ctx.Done():
			return
		}
	}
}

// Send queues an assistant reply for the REPL loop to print.
func (c *CLIChannel) Send(ctx context.Context, msg bus.OutboundMessage) error {
	select {
	case c.replies <- msg:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}
