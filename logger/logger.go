// Package logger builds the application's root zerolog logger.
package logger

import (
	"io"
	"os"
	"time"

	"postboard/config"

	"github.com/rs/zerolog"
)

// New returns a logger writing to stderr. Development gets a human readable
// console format, every other environment gets JSON lines.
func New(cfg *config.Config) zerolog.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(cfg *config.Config, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil || cfg.Log.Level == "" {
		level = zerolog.InfoLevel
	}

	if cfg.IsDevelopment() {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("service", "postboard").
		Str("env", cfg.Primary.Env).
		Logger()
}
