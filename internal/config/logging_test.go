package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogLevel(t *testing.T) {
	t.Setenv(EnvLogLevel, "WARN")
	require.Equal(t, slog.LevelWarn, LogLevel(false))
	require.Equal(t, slog.LevelDebug, LogLevel(true))

	t.Setenv(EnvLogLevel, "chatty")
	require.Equal(t, slog.LevelInfo, LogLevel(false))
}
