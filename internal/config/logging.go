package config

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// NewLogger builds the process-wide logger. JSON output by default; set
// LOG_FORMAT=console for human-readable local development output. Unknown
// levels fall back to info rather than failing startup.
func NewLogger(cfg LoggingConfig) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	logger := zerolog.New(logOutput(cfg.Format)).
		Level(logLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()

	log.Logger = logger
	return logger
}

func logLevel(name string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

func logOutput(format string) zerolog.LevelWriter {
	if strings.EqualFold(format, "console") {
		return zerolog.MultiLevelWriter(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.Kitchen,
		})
	}
	return zerolog.MultiLevelWriter(os.Stdout)
}
