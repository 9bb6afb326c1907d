package utils

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger creates a console logger writing to w at the given level.
// Unknown level names fall back to info.
func NewLogger(level string, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// NewFileLogger creates a logger that writes JSON lines to the given file
func NewFileLogger(level string, filename string) (zerolog.Logger, error) {
	file, err := os.Create(filename)
	if err != nil {
		return zerolog.Nop(), err
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(file).Level(lvl).With().Timestamp().Logger(), nil
}
