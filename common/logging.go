package common

import (
	"io"
	"log/slog"
	"strings"
)

// ParseLogLevel maps a config string to a slog level. Unknown values map to info.
func ParseLogLevel(s string) slog.Level {
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

// SetupLogging installs a text slog handler writing to w as the process default logger.
//
// Parameters:
//   - w: the log destination, usually os.Stderr
//   - level: the minimum level name ("debug", "info", "warn", "error")
//
// Returns:
//   - *slog.Logger: the installed logger
func SetupLogging(w io.Writer, level string) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLogLevel(level)}))
	slog.SetDefault(logger)
	return logger
}
