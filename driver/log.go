package driver

import (
	"os"

	"github.com/rs/zerolog"
)

// NewLogger returns the driver's stderr progress logger: a
// human-readable console writer at info level, or at debug level when
// verbose is set. The driver never logs to a file.
func NewLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
