// Package logging provides application-wide logging configuration.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var debugEnabled bool

// Init initializes the global logger. Logs go to stderr so stdout stays
// reserved for the resolved payload.
func Init(debug bool) {
	InitWriter(os.Stderr, debug)
}

// InitWriter is like Init but writes to out.
func InitWriter(out io.Writer, debug bool) {
	debugEnabled = debug
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	})
}

// DebugEnabled reports whether debug logging is enabled.
func DebugEnabled() bool {
	return debugEnabled
}

// ForResolution returns a child of the global logger tagged with a fresh
// resolution id.
func ForResolution() zerolog.Logger {
	return log.With().Str("resolution_id", uuid.NewString()).Logger()
}
