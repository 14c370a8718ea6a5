// File: internal/logger/logger.go
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// LevelCritical sits above slog.LevelError for failures that abort the run
const LevelCritical = slog.Level(12)

// ErrInvalidLogLevel is returned when the requested verbosity is not one of the supported names
var ErrInvalidLogLevel = errors.New("invalid log level")

var levels = map[string]slog.Level{
	"debug":    slog.LevelDebug,
	"info":     slog.LevelInfo,
	"warning":  slog.LevelWarn,
	"error":    slog.LevelError,
	"critical": LevelCritical,
}

// Returns the supported level names, from most to least verbose
func LevelNames() []string {
	return []string{"debug", "info", "warning", "error", "critical"}
}

// Maps a level name (case-insensitive) to its slog level
func ParseLevel(name string) (slog.Level, error) {
	level, ok := levels[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q (expected one of %s)", ErrInvalidLogLevel, name, strings.Join(LevelNames(), ", "))
	}
	return level, nil
}

// Builds the process logger. It is not installed as the slog default; callers pass it explicitly
func NewLogger(level slog.Level, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceLevelName,
	}

	handler := slog.NewTextHandler(w, opts)

	return slog.New(handler)
}

func replaceLevelName(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	if level, ok := a.Value.Any().(slog.Level); ok && level >= LevelCritical {
		a.Value = slog.StringValue("CRITICAL")
	}
	return a
}
