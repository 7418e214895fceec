// Package logs builds the process logger from configuration.
package logs

import (
	"log/slog"
	"os"
)

// FromLevelString returns a text slog.Logger at the given level
// ("debug", "info", "warn", "error"). Unknown levels fall back to info.
func FromLevelString(level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
