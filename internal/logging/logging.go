// Package logging configures the process-wide zerolog logger for the
// shadowcopy CLI.
package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Environment variable overrides, checked after the explicit level argument.
const (
	EnvLogLevel   = "SHADOWCOPY_LOG_LEVEL"
	EnvLogNoColor = "SHADOWCOPY_LOG_NOCOLOR"
)

// Configure builds the console logger and installs it as the global zerolog
// logger. level comes from configuration; SHADOWCOPY_LOG_LEVEL overrides it
// when set.
func Configure(level string) zerolog.Logger {
	if env := os.Getenv(EnvLogLevel); env != "" {
		level = env
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    os.Getenv(EnvLogNoColor) != "",
	}
	logger := zerolog.New(output).
		Level(parseLevel(level)).
		With().Timestamp().Str("app", "shadowcopy").
		Logger()
	log.Logger = logger
	return logger
}

func parseLevel(raw string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "quiet", "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
