// Package logging sets up the zerolog logger cmd/picamerad hands to its
// Service.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console-pretty logger when pretty is true (the default for
// an interactive terminal), or a plain JSON logger otherwise (the default
// when picamerad's output is captured by a supervisor or log shipper).
func New(pretty bool, level zerolog.Level) zerolog.Logger {
	var w io.Writer = os.Stderr
	if pretty {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
