// Package log provides a structured logging facade for tabgo.
//
// It defines a minimal, slog-compatible Logger interface backed by
// zerolog, plus standard attribute keys for dataset and pipeline
// operations so logs stay analyzable across packages.
package log

import "context"

// Logger is a structured logging interface with slog-style key-value
// fields. Implementations must be safe for concurrent use.
type Logger interface {
	// Debug logs detailed diagnostic information.
	Debug(msg string, fields ...any)

	// Info logs general operational information.
	Info(msg string, fields ...any)

	// Warn logs potentially problematic, non-fatal conditions.
	Warn(msg string, fields ...any)

	// Error logs error conditions. When the first field is an error its
	// stack trace is attached to the record.
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits records at the given level.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, value-compatible with slog.Level.
type Level int

// Standard logging levels.
const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
