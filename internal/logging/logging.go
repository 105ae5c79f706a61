// Package logging builds the root logger for the field client.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New returns a zerolog logger writing to stderr. Level strings follow
// zerolog naming (trace, debug, info, warn, error); unknown values fall back
// to info. Console output is the default so field staff get readable lines;
// json switches to machine-readable output.
func New(level string, json bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = os.Stderr
	if !json {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}
