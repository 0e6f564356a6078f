// Package logging defines the structured logger shared by the StepTrack
// server and client. Services depend on the Logger interface and tag their
// lines with a "component" pair via With, so one slog backend serves the
// API handlers, the ledger backup scheduler and the CLI's step mirror.
package logging

import "context"

// Logger is a context-aware, structured logger. The variadic args are
// key-value pairs:
//
//	log.Info(ctx, "ledger backup uploaded", "key", key)
type Logger interface {
	// Info logs normal operation: server start, backup uploads, mode selection.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs conditions the operation survives, such as a failed mirror
	// write or a dropped counter flush.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs failures that abort the current operation.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key-value
	// pairs, typically ("component", name).
	With(args ...any) Logger
}
