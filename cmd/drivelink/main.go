// Command drivelink manages the Google Drive integration of an application
// server account from the terminal.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/drivelink-cli/internal/adapters/driving/cli"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)
	err := cli.Execute(ctx)

	stop()
	if err != nil {
		os.Exit(1)
	}
}
