// Package logging builds the zerolog logger shared by the command and the
// batch driver.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Config holds logger configuration.
type Config struct {
	// Level is a zerolog level name: trace, debug, info, warn, error.
	Level string
	// Format is "console" for human-readable output or "json".
	Format string
	// Output defaults to os.Stderr.
	Output io.Writer
}

// New creates a logger from the configuration.
func New(cfg Config) (zerolog.Logger, error) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return zerolog.Nop(), errors.Wrapf(err, "log level %q", cfg.Level)
		}
		level = parsed
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	switch strings.ToLower(cfg.Format) {
	case "", "console":
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	case "json":
	default:
		return zerolog.Nop(), errors.Errorf("unknown log format %q", cfg.Format)
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger(), nil
}
