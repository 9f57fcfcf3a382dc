package logger

import (
	"io"
	"log/slog"
	"strings"
)

// Init sets up the process-wide default slog logger.
//
// If pretty is true, the output is human-readable text, otherwise JSON.
func Init(writer io.Writer, level string, pretty bool) {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if pretty {
		handler = slog.NewTextHandler(writer, opts)
	} else {
		handler = slog.NewJSONHandler(writer, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// parseLevel converts the given string to a slog.Level. Unknown values mean info.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
