// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/pseudonymizer/cmd/app/commands"
)

// Build-time version information (injected via ldflags during build).
var version = "v0.1.0"

func main() {
	cmd := &cli.Command{
		Name:     "app",
		Usage:    "Keyed pseudonymization of identifier fields",
		Version:  version,
		Commands: getCommands(version),
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		kind := commands.FailureKind(err)
		attrs := []any{slog.String("kind", kind)}
		// Configuration and infrastructure failures carry no request data
		switch kind {
		case "invalid_input", "precondition_failed", "internal_error":
			attrs = append(attrs, slog.Any("error", err))
		}
		slog.Error("application error", attrs...)
		os.Exit(1)
	}
}
