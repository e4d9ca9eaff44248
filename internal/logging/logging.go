// Package logging builds the zerolog logger used across tada.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/idilsaglam/todo/internal/config"
)

// New returns a logger configured from cfg and a closer for its output.
// With no log file configured it returns a no-op logger.
func New(cfg config.LogConfig, env string) (zerolog.Logger, io.Closer, error) {
	if cfg.File == "" {
		return zerolog.Nop(), nopCloser{}, nil
	}
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("log level: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o700); err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("open log file: %w", err)
	}

	return NewWriter(f, level, env), f, nil
}

// NewWriter builds the logger on top of w. The local env gets a human
// readable console format, everything else JSON lines.
func NewWriter(w io.Writer, level zerolog.Level, env string) zerolog.Logger {
	if env == config.EnvLocal {
		cw := zerolog.NewConsoleWriter()
		cw.Out = w
		cw.NoColor = true
		cw.TimeFormat = time.DateTime
		w = cw
	}
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Int("pid", os.Getpid()).
		Logger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
