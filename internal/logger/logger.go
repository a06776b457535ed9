// Package logger configures the process-wide zerolog logger.
//
// Diagnostics go to stderr so they never interleave with the conversation
// printed on stdout.
package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds logger configuration
type Config struct {
	Level  string    // debug, info, warn, error
	Pretty bool      // human readable console format
	Out    io.Writer // defaults to os.Stderr
}

// DefaultConfig returns default logger configuration
func DefaultConfig() Config {
	return Config{
		Level:  "warn",
		Pretty: true,
		Out:    os.Stderr,
	}
}

// New builds a logger from cfg and installs it as the global zerolog logger
// and, through SlogHandler, as the default slog logger. An unknown level falls
// back to warn.
func New(cfg Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.WarnLevel
	}

	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	logger := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Logger()

	log.Logger = logger
	slog.SetDefault(slog.New(NewSlogHandler(logger)))
	return logger
}

// Component returns a child of the global logger tagged with a component name
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
