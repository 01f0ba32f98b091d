// Package logging builds the console logger used for run diagnostics.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// DefaultLevel is used when no level is configured or the level is invalid
const DefaultLevel = zerolog.InfoLevel

// New returns a human-readable console logger writing to w at the given
// level. An unknown level falls back to info and logs a warning.
func New(w io.Writer, level string) zerolog.Logger {
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}

	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    noColor,
		TimeFormat: time.TimeOnly,
	}).With().Timestamp().Logger()

	lvl, ok := ParseLevel(level)
	logger = logger.Level(lvl)
	if !ok {
		logger.Warn().Str("invalid_level", level).Msg("Invalid log level, using default 'info'")
	}

	return logger
}

// ParseLevel maps a config level name to a zerolog level. Empty selects the
// default; ok is false only for names zerolog doesn't know.
func ParseLevel(level string) (zerolog.Level, bool) {
	if level == "" {
		return DefaultLevel, true
	}
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return DefaultLevel, false
	}
	return parsed, true
}
