// Package cli implements the coursepath command-line interface.
//
// This package provides commands for validating course catalogs, computing
// prerequisite layouts, rendering visualizations, checking a student record
// against the catalog, and serving the whole pipeline over HTTP. The CLI is
// built using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - index: Validate a catalog file and print its dependency statistics
//   - layout: Compute node positions for a catalog
//   - render: Generate SVG, PNG, DOT, or JSON visualizations
//   - plan: Classify course availability for a student record
//   - tui: Interactive terminal planner
//   - serve: Run the HTTP API
//   - cache: Manage the pipeline cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The server
// additionally passes loggers through context.Context so handlers log with
// request scope.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progressTracker tracks the start time of an operation and logs completion
// with elapsed duration. Safe for sequential use by a single goroutine.
type progressTracker struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time.
func newProgress(l *log.Logger) *progressTracker {
	return &progressTracker{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since the tracker was created.
// Example output: "Indexed 412 courses (1.234s)"
func (p *progressTracker) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, falling back to
// log.Default() so callers always get a valid logger.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
