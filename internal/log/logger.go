// Package log provides structured logging with slog for the CLI.
//
// Diagnostics go to stderr so command output on stdout stays parseable.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ParseLevel maps a level name to a slog.Level. Unknown names fall back to
// warn, keeping the CLI quiet rather than chatty on a typo.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// New creates a logger writing to w at the given level and format.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	switch format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Default creates the standard CLI logger on stderr.
func Default(level, format string) *slog.Logger {
	return New(os.Stderr, level, format)
}

// Discard creates a logger that drops everything. Useful in tests.
func Discard() *slog.Logger {
	return New(io.Discard, "error", FormatText)
}
