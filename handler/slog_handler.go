package handler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/philipp01105/modlog/core"
)

// SlogHandler is an adapter that implements slog.Handler on top of a modlog
// logger. This allows modlog to be used as the backend of log/slog.
//
// The record's message and attributes become the text of one call at the
// mapped level; the header comes from the logger, so the record's own
// time is not used. The call site is taken from the record's PC.
type SlogHandler struct {
	target Target
	attrs  []attr
	group  string
}

type attr struct {
	key   string
	value string
}

// NewSlogHandler creates a new slog.Handler adapter writing through t.
func NewSlogHandler(t Target) *SlogHandler {
	return &SlogHandler{target: t}
}

// Enabled reports whether the handler handles records at the given level.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return s.target.Enabled(slogLevelToCore(level))
}

// Handle writes the record as one log call.
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	caller := core.FromPC(record.PC)
	st := s.target.LogAt(slogLevelToCore(record.Level), caller.File, caller.Line)
	if !st.Enabled() {
		return nil
	}

	st.Str(record.Message)

	// Add pre-configured attrs
	for _, a := range s.attrs {
		appendPair(st, a.key, a.value)
	}

	// Add record attrs
	var flat []attr
	record.Attrs(func(a slog.Attr) bool {
		flat = flattenAttr(flat, s.group, a)
		return true
	})
	for _, a := range flat {
		appendPair(st, a.key, a.value)
	}

	return st.WriteError()
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return s
	}
	newAttrs := make([]attr, len(s.attrs), len(s.attrs)+len(attrs))
	copy(newAttrs, s.attrs)
	for _, a := range attrs {
		newAttrs = flattenAttr(newAttrs, s.group, a)
	}
	return &SlogHandler{
		target: s.target,
		attrs:  newAttrs,
		group:  s.group,
	}
}

// WithGroup returns a new SlogHandler with the given group name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	newGroup := name
	if s.group != "" {
		newGroup = s.group + "." + name
	}
	return &SlogHandler{
		target: s.target,
		attrs:  s.attrs,
		group:  newGroup,
	}
}

// slogLevelToCore converts a slog.Level to a core.Level.
// log/slog has no fatal level, so the highest mapping is ErrorLevel.
func slogLevelToCore(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarnLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}

// flattenAttr appends a to dst, prepending the group prefix if present.
// Group values are flattened into dotted keys.
func flattenAttr(dst []attr, group string, a slog.Attr) []attr {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return dst
	}

	key := a.Key
	if group != "" && key != "" {
		key = group + "." + key
	} else if key == "" {
		key = group
	}

	switch a.Value.Kind() {
	case slog.KindGroup:
		for _, ga := range a.Value.Group() {
			dst = flattenAttr(dst, key, ga)
		}
		return dst
	case slog.KindTime:
		return append(dst, attr{key: key, value: a.Value.Time().Format(slogTimeFormat)})
	case slog.KindAny:
		if err, ok := a.Value.Any().(error); ok {
			return append(dst, attr{key: key, value: err.Error()})
		}
		return append(dst, attr{key: key, value: fmt.Sprint(a.Value.Any())})
	default:
		return append(dst, attr{key: key, value: a.Value.String()})
	}
}

const slogTimeFormat = "2006-01-02T15:04:05.000Z07:00"
