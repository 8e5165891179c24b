package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// CLIErrorAdapter handles error presentation and exit code determination for CLI applications.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	out     io.Writer
	exit    func(int)
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
		out:     os.Stderr,
		exit:    os.Exit,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	var categorized Categorized
	if !stderrors.As(err, &categorized) {
		return 1 // Unclassified
	}
	switch categorized.Category() {
	case CategoryValidation:
		return 2 // Invalid usage
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryNotFound, CategoryTemplate, CategorySlug, CategoryContent:
		return 9 // Content error, fix the input
	case CategoryBuild, CategoryFileSystem:
		return 11 // Build error
	case CategoryRuntime:
		return 12 // Runtime error
	case CategoryInternal:
		return 10 // Internal error
	default:
		return 1 // General error
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	if classified, ok := AsClassified(err); ok && !a.verbose {
		return fmt.Sprintf("Error: %s", classified.Message())
	}
	return fmt.Sprintf("Error: %v", err)
}

// WithOutput redirects formatted error messages to w.
func (a *CLIErrorAdapter) WithOutput(w io.Writer) *CLIErrorAdapter {
	a.out = w
	return a
}

// Report prints err and returns the exit code for it without exiting.
func (a *CLIErrorAdapter) Report(err error) int {
	if err == nil {
		return 0
	}
	if a.verbose {
		a.logError(err)
	}
	fmt.Fprintf(a.out, "%s\n", a.FormatError(err))
	return a.ExitCodeFor(err)
}

// HandleError processes an error and exits the program with appropriate code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}
	a.exit(a.Report(err))
}

// logError logs an error with appropriate level and context.
func (a *CLIErrorAdapter) logError(err error) {
	attrs := []slog.Attr{
		slog.String("category", string(GetCategory(err))),
		slog.String("error", err.Error()),
	}
	if classified, ok := AsClassified(err); ok {
		for k, v := range classified.Context() {
			attrs = append(attrs, slog.Any(k, v))
		}
	}
	a.logger.LogAttrs(context.Background(), a.slogLevelFromSeverity(GetSeverity(err)), "Command failed", attrs...)
}

// slogLevelFromSeverity converts ClassifiedError severity to slog level.
func (a *CLIErrorAdapter) slogLevelFromSeverity(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	case SeverityError, SeverityFatal:
		return slog.LevelError
	default:
		return slog.LevelError
	}
}
