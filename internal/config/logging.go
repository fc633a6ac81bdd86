package config

import (
	"log/slog"
	"os"

	"git.home.luguber.info/inful/staticrender/internal/foundation/normalization"
)

var logLevelNormalizer = normalization.NewNormalizer(map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}, slog.LevelInfo)

// LogLevel resolves the log level: verbose forces debug, otherwise SR_LOG_LEVEL
// is consulted and anything unrecognized falls back to info.
func LogLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return logLevelNormalizer.Normalize(os.Getenv(EnvLogLevel))
}
