// Package logging builds the structured loggers used by the quill tools.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelTrace is more verbose than debug.
const LevelTrace = slog.Level(-8)

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// LoggerConfig configures NewLogger.
type LoggerConfig struct {
	// Name is attached to every record as "logger".
	Name string

	// Level is one of trace, debug, info, warn, error.
	Level string

	// Format is "json" or "text" (default: text).
	Format string

	// Output defaults to os.Stderr so log lines never mix with command output.
	Output io.Writer
}

// DefaultLoggerConfig returns an info-level text logger configuration.
func DefaultLoggerConfig(name string) LoggerConfig {
	return LoggerConfig{
		Name:   name,
		Level:  "info",
		Format: FormatText,
	}
}

// NewLogger creates a logger from cfg. An unknown level falls back to info.
func NewLogger(cfg LoggerConfig) *slog.Logger {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		level = slog.LevelInfo
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey && a.Value.Any() == LevelTrace {
				a.Value = slog.StringValue("TRACE")
			}
			return a
		},
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, FormatJSON) {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	logger := slog.New(handler)
	if cfg.Name != "" {
		logger = logger.With("logger", cfg.Name)
	}
	return logger
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel converts a level name. The empty string is info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// ValidFormat reports whether f names a supported output format.
func ValidFormat(f string) bool {
	switch strings.ToLower(f) {
	case "", FormatJSON, FormatText:
		return true
	}
	return false
}
