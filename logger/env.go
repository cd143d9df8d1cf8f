package logger

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/philipp01105/modlog/core"
	"github.com/philipp01105/modlog/formatter"
	"github.com/philipp01105/modlog/sink"
)

// Environment variables read by LoadEnv
const (
	EnvLevel     = "MODLOG_LEVEL"
	EnvVerbosity = "MODLOG_V"
	EnvPrefix    = "MODLOG_PREFIX"
	EnvFormat    = "MODLOG_FORMAT"
)

// FormatAuto selects ColorText on terminals and Text elsewhere
const FormatAuto = "auto"

// LoadEnv updates the configuration from the variables lookup reports.
// Unset or empty variables leave their field alone. Invalid values are
// skipped and reported together in the returned error.
func (l *Logger) LoadEnv(lookup func(string) (string, bool)) error {
	var errs error
	l.Update(func(c *Config) {
		errs = applyEnv(c, lookup)
	})
	return errs
}

// LoadEnv configures the global logger from the process environment
func LoadEnv() error {
	return std.LoadEnv(os.LookupEnv)
}

func applyEnv(c *Config, lookup func(string) (string, bool)) error {
	var errs error

	lookup = nonEmpty(lookup)

	if v, ok := lookup(EnvLevel); ok {
		level, err := core.ParseLevel(v)
		if err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "parsing %s", EnvLevel))
		} else {
			c.Level = level
		}
	}

	if v, ok := lookup(EnvVerbosity); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "parsing %s", EnvVerbosity))
		} else {
			c.Verbosity = n
		}
	}

	if v, ok := lookup(EnvPrefix); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "parsing %s", EnvPrefix))
		} else {
			c.Prefix = b
		}
	}

	if v, ok := lookup(EnvFormat); ok {
		r, err := RendererFor(v, c.Writer)
		if err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "parsing %s", EnvFormat))
		} else {
			c.Renderer = r
		}
	}

	return errs
}

// nonEmpty treats variables set to blank text as unset
func nonEmpty(lookup func(string) (string, bool)) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return "", false
		}
		return v, true
	}
}

// RendererFor resolves a format name to a renderer. FormatAuto picks
// ColorText when w is a terminal.
func RendererFor(name string, w io.Writer) (formatter.Renderer, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == FormatAuto || name == "" {
		if w != nil && sink.IsTerminal(w) {
			return formatter.ColorText, nil
		}
		return formatter.Text, nil
	}
	r, ok := formatter.Lookup(name)
	if !ok {
		return nil, errors.Errorf("unknown format '%s', expected one of %s or %s",
			name, strings.Join(formatter.Names(), ", "), FormatAuto)
	}
	return r, nil
}
