package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cloudar/cloudconformity-scanner/internal/commands"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := commands.Execute(ctx, version, commit, date)
	stop()

	switch {
	case err == nil:
	case errors.Is(err, commands.ErrViolationsFound):
		os.Exit(commands.ExitViolations)
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(commands.ExitError)
	}
}
