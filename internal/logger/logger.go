package logger

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New returns a human-readable console logger writing to w, normally stderr.
// Only warnings and errors are shown unless verbose is set.
func New(w io.Writer, verbose bool) zerolog.Logger {
	return NewWithWriter(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
		NoColor:    true,
	}, verbose)
}

// NewWithWriter returns a JSON logger writing to w.
func NewWithWriter(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
