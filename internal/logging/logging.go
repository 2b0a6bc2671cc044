// Package logging builds the process-wide diagnostic logger.
//
// Diagnostics always go to their own stream (stderr in the CLI) and never mix
// with scan results. An empty or "off" level discards everything.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"
)

// Log output formats.
const (
	FormatAuto = "auto" // text on a terminal, JSON otherwise
	FormatText = "text"
	FormatJSON = "json"
)

// ParseLevel converts a level name into a slog level.
// enabled is false for "" and "off".
func ParseLevel(name string) (level slog.Level, enabled bool, err error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "off", "none":
		return 0, false, nil
	case "trace", "debug":
		return slog.LevelDebug, true, nil
	case "info":
		return slog.LevelInfo, true, nil
	case "warn", "warning":
		return slog.LevelWarn, true, nil
	case "error":
		return slog.LevelError, true, nil
	}
	return 0, false, fmt.Errorf("unknown log level %q (expected debug, info, warn, error or off)", name)
}

// ValidateFormat checks a log format name.
func ValidateFormat(format string) error {
	switch format {
	case "", FormatAuto, FormatText, FormatJSON:
		return nil
	}
	return fmt.Errorf("unknown log format %q (expected auto, text or json)", format)
}

// New creates a logger writing to w at the named level and format.
func New(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, enabled, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	if !enabled {
		return Discard(), nil
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if useJSON(w, format) {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// OrDiscard returns logger, or a discarding logger when it is nil.
func OrDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return Discard()
	}
	return logger
}

func useJSON(w io.Writer, format string) bool {
	switch format {
	case FormatJSON:
		return true
	case FormatText:
		return false
	}
	return !isTerminal(w)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: fd fits in int
}
