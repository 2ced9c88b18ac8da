// Package commands contains CLI command implementations for the application.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"

	"github.com/allisson/pseudonymizer/internal/app"
	"github.com/allisson/pseudonymizer/internal/config"
	apperrors "github.com/allisson/pseudonymizer/internal/errors"
	pseudonymDomain "github.com/allisson/pseudonymizer/internal/pseudonym/domain"
)

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// FailureKind names the class of err without its message. CLI error output uses it so
// keys, identifiers and rejected field names never reach a terminal or a log collector.
func FailureKind(err error) string {
	switch {
	case err == nil:
		return ""
	case apperrors.Is(err, pseudonymDomain.ErrUnknownField):
		return "unknown_field"
	case apperrors.Is(err, pseudonymDomain.ErrInvalidKey):
		return "invalid_key"
	case apperrors.Is(err, pseudonymDomain.ErrInvalidArgument):
		return "invalid_argument"
	case apperrors.Is(err, pseudonymDomain.ErrFieldKeyAlreadyExists):
		return "field_key_exists"
	case apperrors.Is(err, pseudonymDomain.ErrNotInitialized):
		return "not_initialized"
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		return "invalid_input"
	case apperrors.Is(err, apperrors.ErrPrecondition):
		return "precondition_failed"
	case apperrors.Is(err, context.Canceled), apperrors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "internal_error"
	}
}

// LoadConfig loads and validates the configuration.
func LoadConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidInput, "invalid configuration: %v", err)
	}
	return cfg, nil
}

// closeContainer closes all resources in the container and logs any errors.
func closeContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}

// closeMigrate closes the migration instance and logs any errors.
func closeMigrate(migrate *migrate.Migrate, logger *slog.Logger) {
	sourceError, databaseError := migrate.Close()
	if sourceError != nil || databaseError != nil {
		logger.Error(
			"failed to close the migrate",
			slog.Any("source_error", sourceError),
			slog.Any("database_error", databaseError),
		)
	}
}

// writeLines writes one value per line.
func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// validateFormat rejects output formats other than text and json. Commands call it before
// doing any work.
func validateFormat(format string) error {
	switch format {
	case "", "text", "json":
		return nil
	default:
		return apperrors.Wrapf(apperrors.ErrInvalidInput, "invalid format: %s (valid options: text, json)", format)
	}
}

// writeOutput writes lines as text, or v as indented JSON when format is "json".
func writeOutput(w io.Writer, format string, lines []string, v any) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if format != "json" {
		return writeLines(w, lines)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
