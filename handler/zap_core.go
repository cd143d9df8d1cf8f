package handler

import (
	"fmt"
	"sort"

	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/modlog/core"
)

// ZapCore implements zapcore.Core on top of a modlog logger, so code
// instrumented with zap can write through modlog:
//
//	log := zap.New(handler.NewZapCore(logger.Default()), zap.AddCaller())
//
// Fields are rendered as sorted " key=value" pairs after the message.
type ZapCore struct {
	target Target
	fields []zapcore.Field
}

var _ zapcore.Core = (*ZapCore)(nil)

// NewZapCore creates a zapcore.Core writing through t.
func NewZapCore(t Target) *ZapCore {
	return &ZapCore{target: t}
}

// Enabled implements zapcore.LevelEnabler.
func (c *ZapCore) Enabled(level zapcore.Level) bool {
	return c.target.Enabled(zapLevelToCore(level))
}

// With returns a core carrying additional fields.
func (c *ZapCore) With(fields []zapcore.Field) zapcore.Core {
	if len(fields) == 0 {
		return c
	}
	merged := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	merged = append(merged, c.fields...)
	merged = append(merged, fields...)
	return &ZapCore{target: c.target, fields: merged}
}

// Check adds c to ce when the entry's level is enabled.
func (c *ZapCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write emits the entry as one log call. A fatal entry ends the line,
// which terminates the process before zap's own exit hook runs.
func (c *ZapCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	level := zapLevelToCore(ent.Level)

	var file string
	var line int
	if ent.Caller.Defined {
		file, line = ent.Caller.File, ent.Caller.Line
	}

	s := c.target.LogAt(level, file, line)
	if !s.Enabled() {
		return nil
	}

	if ent.LoggerName != "" {
		s.Str(ent.LoggerName).Str(": ")
	}
	s.Str(ent.Message)

	if len(c.fields)+len(fields) > 0 {
		enc := zapcore.NewMapObjectEncoder()
		for _, f := range c.fields {
			f.AddTo(enc)
		}
		for _, f := range fields {
			f.AddTo(enc)
		}

		keys := make([]string, 0, len(enc.Fields))
		for k := range enc.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			appendPair(s, k, fmt.Sprint(enc.Fields[k]))
		}
	}

	if ent.Stack != "" {
		s.Str("\n").Str(ent.Stack)
	}

	if level == core.FatalLevel {
		s.Endl()
		return multierr.Append(s.WriteError(), s.Close())
	}
	return s.WriteError()
}

// Sync flushes the logger's sink.
func (c *ZapCore) Sync() error {
	return c.target.Sync()
}

// zapLevelToCore converts a zapcore.Level to a core.Level. DPanic and
// Panic map to ErrorLevel; zap panics after the write on its own.
func zapLevelToCore(level zapcore.Level) core.Level {
	switch {
	case level >= zapcore.FatalLevel:
		return core.FatalLevel
	case level >= zapcore.ErrorLevel:
		return core.ErrorLevel
	case level >= zapcore.WarnLevel:
		return core.WarnLevel
	case level >= zapcore.InfoLevel:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}
