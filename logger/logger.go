package logger

import (
	"bytes"
	"io"
	"os"
	"sync/atomic"

	"go.uber.org/multierr"

	"github.com/philipp01105/modlog/core"
	"github.com/philipp01105/modlog/formatter"
	"github.com/philipp01105/modlog/sink"
)

// osExit is a variable to allow overriding os.Exit in tests
var osExit = os.Exit

func exit(code int) {
	osExit(code)
}

// Logger dispatches log calls against one effective configuration.
//
// The configuration is held as an immutable snapshot behind an atomic
// pointer. Every call loads exactly one snapshot, so a concurrent
// reconfiguration is either fully visible to a call or not at all.
type Logger struct {
	cfg atomic.Pointer[Config]
}

// New creates a Logger. Unset writers, renderer and clock take their defaults;
// Level, Verbosity and Prefix are used as given.
func New(cfg Config) *Logger {
	l := &Logger{}
	l.SetConfig(cfg)
	return l
}

// Config returns a copy of the current configuration
func (l *Logger) Config() Config {
	return *l.cfg.Load()
}

// SetConfig replaces the whole configuration
func (l *Logger) SetConfig(cfg Config) {
	c := cfg.withDefaults()
	l.cfg.Store(&c)
}

// Update applies fn to a copy of the configuration and publishes the
// result. fn may run more than once if another writer races it.
func (l *Logger) Update(fn func(*Config)) {
	for {
		old := l.cfg.Load()
		c := *old
		fn(&c)
		c = c.withDefaults()
		if l.cfg.CompareAndSwap(old, &c) {
			return
		}
	}
}

// SetLevel sets the threshold
func (l *Logger) SetLevel(level core.Level) {
	l.Update(func(c *Config) { c.Level = level })
}

// SetVerbosity sets the V ceiling
func (l *Logger) SetVerbosity(v int) {
	l.Update(func(c *Config) { c.Verbosity = v })
}

// SetPrefix enables or disables the rendered header
func (l *Logger) SetPrefix(enabled bool) {
	l.Update(func(c *Config) { c.Prefix = enabled })
}

// SetRenderer swaps the prefix renderer. Streams already handed out keep
// the header they were stamped with.
func (l *Logger) SetRenderer(r formatter.Renderer) {
	l.Update(func(c *Config) { c.Renderer = r })
}

// SetWriter sets the sink
func (l *Logger) SetWriter(w io.Writer) {
	l.Update(func(c *Config) { c.Writer = w })
}

// Enabled reports whether a call at level would be emitted
func (l *Logger) Enabled(level core.Level) bool {
	return !core.Suppressed(level, l.cfg.Load().Level)
}

// VEnabled reports whether V(v) would be emitted
func (l *Logger) VEnabled(v int) bool {
	return !suppressed(l.cfg.Load(), core.InfoLevel, v)
}

// Log returns the stream for a call at level
func (l *Logger) Log(level core.Level) *Stream {
	return l.output(level, -1, 1)
}

// LogAt is Log with an explicit call site instead of the captured one.
// An empty file renders no call site.
func (l *Logger) LogAt(level core.Level, file string, line int) *Stream {
	return l.outputAt(level, core.At(file, line))
}

// V returns the stream for an informational call at verbosity v
func (l *Logger) V(v int) *Stream {
	return l.output(core.InfoLevel, v, 1)
}

// LogFor returns the stream for a call at level resolved against obj's
// own configuration instead of the logger's.
func (l *Logger) LogFor(level core.Level, obj Loggable) *Stream {
	return l.outputFor(level, obj, 1)
}

// Debug is Log(DebugLevel)
func (l *Logger) Debug() *Stream {
	return l.output(core.DebugLevel, -1, 1)
}

// Info is Log(InfoLevel)
func (l *Logger) Info() *Stream {
	return l.output(core.InfoLevel, -1, 1)
}

// Warn is Log(WarnLevel)
func (l *Logger) Warn() *Stream {
	return l.output(core.WarnLevel, -1, 1)
}

// Error is Log(ErrorLevel)
func (l *Logger) Error() *Stream {
	return l.output(core.ErrorLevel, -1, 1)
}

// Fatal is Log(FatalLevel). The process terminates once the returned
// stream receives a line terminator or is closed.
func (l *Logger) Fatal() *Stream {
	return l.output(core.FatalLevel, -1, 1)
}

// Debugf logs a formatted debug message
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.output(core.DebugLevel, -1, 1).Printf(format, args...)
}

// Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.output(core.InfoLevel, -1, 1).Printf(format, args...)
}

// Warnf logs a formatted warning message
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.output(core.WarnLevel, -1, 1).Printf(format, args...)
}

// Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.output(core.ErrorLevel, -1, 1).Printf(format, args...)
}

// Fatalf logs a formatted fatal message and terminates the line, which
// exits the process when prefixing is enabled.
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.output(core.FatalLevel, -1, 1).Printf(format, args...).Endl()
}

// Vf logs a formatted message at verbosity v
func (l *Logger) Vf(v int, format string, args ...interface{}) {
	l.output(core.InfoLevel, v, 1).Printf(format, args...)
}

// Writer returns an io.Writer that turns every Write into one call at
// level without a call site. Trailing newlines are dropped; at FatalLevel
// each Write terminates the process.
func (l *Logger) Writer(level core.Level) io.Writer {
	return &levelWriter{l: l, level: level}
}

type levelWriter struct {
	l     *Logger
	level core.Level
}

func (w *levelWriter) Write(p []byte) (int, error) {
	s := w.l.outputAt(w.level, core.CallerInfo{})
	if !s.Enabled() {
		return len(p), nil
	}
	_, err := s.Write(bytes.TrimRight(p, "\n"))
	if s.Fatal() {
		err = multierr.Append(err, s.Close())
	}
	return len(p), err
}

// Flush terminates the last line on the sink and syncs it
func (l *Logger) Flush() error {
	w := l.cfg.Load().Writer
	_, err := w.Write(newline)
	return multierr.Append(err, sink.Sync(w))
}

// Sync flushes the sink if it buffers
func (l *Logger) Sync() error {
	return sink.Sync(l.cfg.Load().Writer)
}

// suppressed is the single filtering rule. v is the verbosity of a V call
// and -1 for every other call; only V calls are held to the ceiling.
func suppressed(cfg *Config, level core.Level, v int) bool {
	return core.Suppressed(level, cfg.Level) || (v >= 0 && v > cfg.Verbosity)
}

// output dispatches against the logger's configuration. depth is the
// number of frames between output and the user's call site.
func (l *Logger) output(level core.Level, v int, depth int) *Stream {
	cfg := l.cfg.Load()
	if suppressed(cfg, level, v) {
		return discarded
	}
	if !cfg.Prefix {
		return newStream(cfg.Writer)
	}
	return stamp(cfg, cfg.Writer, cfg.Renderer, level, v, core.GetCaller(depth+1))
}

func (l *Logger) outputAt(level core.Level, caller core.CallerInfo) *Stream {
	cfg := l.cfg.Load()
	if suppressed(cfg, level, -1) {
		return discarded
	}
	if !cfg.Prefix {
		return newStream(cfg.Writer)
	}
	return stamp(cfg, cfg.Writer, cfg.Renderer, level, -1, caller)
}

// outputFor dispatches against obj's configuration. The logger's own
// configuration only supplies the clock, the fatal writer and fallbacks.
func (l *Logger) outputFor(level core.Level, obj Loggable, depth int) *Stream {
	local := obj.LogConfig()
	if core.Suppressed(level, local.Level) {
		return discarded
	}

	cfg := l.cfg.Load()
	w := local.Writer
	if w == nil {
		w = cfg.Writer
	}
	if !local.Prefix {
		return newStream(w)
	}
	r := local.Renderer
	if r == nil {
		r = cfg.Renderer
	}
	return stamp(cfg, w, r, level, -1, core.GetCaller(depth+1))
}

// stamp renders the header into w and returns the stream for the rest of
// the call. A fatal call continues on a fresh Fatal sink instead of w.
func stamp(cfg *Config, w io.Writer, r formatter.Renderer, level core.Level, v int, caller core.CallerInfo) *Stream {
	buf := formatter.Render(r, formatter.Header{
		Level:     level,
		Time:      cfg.Clock(),
		Caller:    caller,
		Goroutine: core.GoroutineID(),
		Verbose:   v,
	})
	_, err := w.Write(buf.Bytes())
	formatter.PutBuffer(buf)

	s := newStream(w)
	s.record(err)
	if level == core.FatalLevel {
		s.fatal = sink.NewFatal(cfg.FatalWriter, exit)
		s.w = s.fatal
	}
	return s
}
