// Package logging builds the zerolog logger used by the csvsql command.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "warn"

// New returns a console logger writing to w at the named level.
//
// Level values: "trace", "debug", "info", "warn", "error", "disabled".
// An empty level means DefaultLevel.
func New(level string, w io.Writer) (zerolog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
		NoColor:    true,
	}
	return zerolog.New(output).
		Level(lvl).
		With().
		Timestamp().
		Str("component", "csvsql").
		Logger(), nil
}

// ParseLevel converts a level name to a zerolog level. "warning" is accepted
// as an alias of "warn".
func ParseLevel(level string) (zerolog.Level, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	switch level {
	case "":
		level = DefaultLevel
	case "warning":
		level = "warn"
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", level)
	}
	return lvl, nil
}
