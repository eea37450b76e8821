// Package logging configures the structured logger shared by the CLI and the
// video pipeline.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Canonical field names for structured logging
const (
	FieldComponent = "component"
	FieldPath      = "path"
	FieldOutput    = "output"
	FieldGroup     = "group"
	FieldMode      = "mode"
	FieldFolder    = "folder"
	FieldWidth     = "width"
	FieldHeight    = "height"
)

// Config captures options for building a logger
type Config struct {
	Level  string    // optional log level ("debug", "info", etc.)
	Output io.Writer // optional writer (defaults to os.Stderr)
	JSON   bool      // emit JSON lines instead of console output
}

// New returns a logger configured from cfg. Unknown levels fall back to info.
func New(cfg Config) zerolog.Logger {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		if parsed, err := zerolog.ParseLevel(cfg.Level); err == nil {
			level = parsed
		}
	} else if env := os.Getenv("LOG_LEVEL"); env != "" {
		if parsed, err := zerolog.ParseLevel(env); err == nil {
			level = parsed
		}
	}

	writer := cfg.Output
	if writer == nil {
		writer = os.Stderr
	}
	if !cfg.JSON {
		writer = zerolog.ConsoleWriter{Out: writer, TimeFormat: time.Kitchen}
	}

	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// WithComponent returns a child logger annotated with the given component name
func WithComponent(log zerolog.Logger, component string) zerolog.Logger {
	return log.With().Str(FieldComponent, component).Logger()
}
