// Package main is the entry point for the conbuild CLI.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"

	"github.com/conbuild/conbuild/cmd/conbuild/commands"
	"github.com/conbuild/conbuild/internal/app"
	"github.com/conbuild/conbuild/internal/core/domain"
	_ "github.com/conbuild/conbuild/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed.
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}
	defer components.App.Close() //nolint:errcheck // best effort telemetry flush

	cli := commands.New(components.App)

	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, domain.ErrInvalidOptions) {
			// Validation findings were already logged individually.
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
