// Package logger builds the structured logger used by the command line and
// the HTTP server.
package logger

import (
	"io"
	"log/slog"
	"strings"
)

// Build returns a JSON logger writing to w at the named level. Unknown level
// names fall back to info.
func Build(w io.Writer, level string) *slog.Logger {
	ops := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}
	return slog.New(slog.NewJSONHandler(w, ops))
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func ErrAttr(err error) slog.Attr {
	return slog.Any("error", err)
}
