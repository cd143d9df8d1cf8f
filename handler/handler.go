package handler

import (
	"strconv"
	"strings"

	"github.com/philipp01105/modlog/core"
	"github.com/philipp01105/modlog/logger"
)

// Target is the part of a logger the adapters write through.
// *logger.Logger implements it.
type Target interface {
	// Enabled reports whether a call at level would be emitted
	Enabled(level core.Level) bool

	// LogAt returns the stream for a call at level with an explicit call site
	LogAt(level core.Level, file string, line int) *logger.Stream

	// Sync flushes the underlying sink
	Sync() error
}

var _ Target = (*logger.Logger)(nil)

// appendPair writes " key=value" to s. Values containing spaces, quotes
// or '=' are quoted so the pair stays parseable as logfmt.
func appendPair(s *logger.Stream, key, value string) {
	s.Str(" ").Str(key).Str("=")
	if needsQuoting(value) {
		s.Str(strconv.Quote(value))
		return
	}
	s.Str(value)
}

func needsQuoting(v string) bool {
	if v == "" {
		return true
	}
	return strings.ContainsAny(v, " =\"\t\r\n")
}
