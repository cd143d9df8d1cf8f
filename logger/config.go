package logger

import (
	"io"

	"github.com/philipp01105/modlog/core"
	"github.com/philipp01105/modlog/formatter"
	"github.com/philipp01105/modlog/sink"
)

// Config is the effective configuration a log call is resolved against
type Config struct {
	// Writer is the sink emitted calls are written to (default: sink.Stderr)
	Writer io.Writer
	// Level is the threshold; calls strictly below it are discarded
	Level core.Level
	// Verbosity is the ceiling for V calls; V(n) passes iff n <= Verbosity
	Verbosity int
	// Prefix enables the rendered header in front of every call
	Prefix bool
	// Renderer writes the header (default: formatter.Text)
	Renderer formatter.Renderer
	// FatalWriter receives the report of a fatal call (default: sink.Stderr)
	FatalWriter io.Writer
	// Clock stamps the header (default: core.SystemClock)
	Clock core.Clock
}

// DefaultConfig returns the configuration the global logger starts with:
// Info threshold, verbosity 0, prefixed text to stderr.
func DefaultConfig() Config {
	return Config{
		Writer:      sink.Stderr,
		Level:       core.InfoLevel,
		Verbosity:   0,
		Prefix:      true,
		Renderer:    formatter.Text,
		FatalWriter: sink.Stderr,
		Clock:       core.SystemClock,
	}
}

// withDefaults fills the unset function and writer fields
func (c Config) withDefaults() Config {
	if c.Writer == nil {
		c.Writer = sink.Stderr
	}
	if c.Renderer == nil {
		c.Renderer = formatter.Text
	}
	if c.FatalWriter == nil {
		c.FatalWriter = sink.Stderr
	}
	if c.Clock == nil {
		c.Clock = core.SystemClock
	}
	return c
}

// Loggable is implemented by objects that carry their own logging
// configuration. LogConfig is called on every object-scoped call, so a
// returned Config is a fresh value: mutating it has no lasting effect.
//
// Only Writer, Level, Prefix and Renderer are consulted. A nil Writer
// or Renderer falls back to the logger's own.
type Loggable interface {
	LogConfig() Config
}
