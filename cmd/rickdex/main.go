// Command rickdex browses the Rick and Morty character catalog and keeps a
// local list of favorites.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/artpar/rickdex/internal/cli"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// An interrupt cancels in-flight catalog requests for subcommands. The TUI
	// handles ctrl+c itself as a key.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand(version).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "rickdex: %v\n", err)
		return 1
	}
	return 0
}
