// Package logger builds the console logger of the command line tools.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var Hostname string

func init() {
	h, err := os.Hostname()
	if err != nil {
		Hostname = "unknown"
	} else {
		Hostname = h
	}
}

// ParseLevel understands debug, info, warn and error; anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a text logger on stderr, so stdout stays free for output.
func New(level string) *slog.Logger {
	return NewWithWriter(os.Stderr, level)
}

func NewWithWriter(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})).With(slog.String("hostname", Hostname))
}
