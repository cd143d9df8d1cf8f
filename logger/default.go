package logger

import (
	"io"
	"os"

	"github.com/philipp01105/modlog/core"
	"github.com/philipp01105/modlog/formatter"
)

// std carries the process-wide configuration
var std = New(DefaultConfig())

// Default returns the global logger
func Default() *Logger {
	return std
}

// Package-level entry points and configuration on the global logger.
// Each entry point captures the call site of its own caller.

// Log returns the stream for a call at level
func Log(level core.Level) *Stream {
	return std.output(level, -1, 1)
}

// LogAt is Log with an explicit call site
func LogAt(level core.Level, file string, line int) *Stream {
	return std.outputAt(level, core.At(file, line))
}

// V returns the stream for an informational call at verbosity v
func V(v int) *Stream {
	return std.output(core.InfoLevel, v, 1)
}

// LogFor returns the stream for a call at level resolved against obj's configuration
func LogFor(level core.Level, obj Loggable) *Stream {
	return std.outputFor(level, obj, 1)
}

// Debug is Log(DebugLevel)
func Debug() *Stream {
	return std.output(core.DebugLevel, -1, 1)
}

// Info is Log(InfoLevel)
func Info() *Stream {
	return std.output(core.InfoLevel, -1, 1)
}

// Warn is Log(WarnLevel)
func Warn() *Stream {
	return std.output(core.WarnLevel, -1, 1)
}

// Error is Log(ErrorLevel)
func Error() *Stream {
	return std.output(core.ErrorLevel, -1, 1)
}

// Fatal is Log(FatalLevel)
func Fatal() *Stream {
	return std.output(core.FatalLevel, -1, 1)
}

// Debugf logs a formatted debug message using the global logger
func Debugf(format string, args ...interface{}) {
	std.output(core.DebugLevel, -1, 1).Printf(format, args...)
}

// Infof logs a formatted info message using the global logger
func Infof(format string, args ...interface{}) {
	std.output(core.InfoLevel, -1, 1).Printf(format, args...)
}

// Warnf logs a formatted warning message using the global logger
func Warnf(format string, args ...interface{}) {
	std.output(core.WarnLevel, -1, 1).Printf(format, args...)
}

// Errorf logs a formatted error message using the global logger
func Errorf(format string, args ...interface{}) {
	std.output(core.ErrorLevel, -1, 1).Printf(format, args...)
}

// Fatalf logs a formatted fatal message using the global logger and ends the line
func Fatalf(format string, args ...interface{}) {
	std.output(core.FatalLevel, -1, 1).Printf(format, args...).Endl()
}

// Vf logs a formatted message at verbosity v using the global logger
func Vf(v int, format string, args ...interface{}) {
	std.output(core.InfoLevel, v, 1).Printf(format, args...)
}

// Enabled reports whether a global call at level would be emitted
func Enabled(level core.Level) bool {
	return std.Enabled(level)
}

// VEnabled reports whether a global V(v) would be emitted
func VEnabled(v int) bool {
	return std.VEnabled(v)
}

// GetConfig returns a copy of the global configuration
func GetConfig() Config {
	return std.Config()
}

// Configure applies fn to the global configuration
func Configure(fn func(*Config)) {
	std.Update(fn)
}

// SetLevel sets the global threshold
func SetLevel(level core.Level) {
	std.SetLevel(level)
}

// SetVerbosity sets the global V ceiling
func SetVerbosity(v int) {
	std.SetVerbosity(v)
}

// SetPrefix enables or disables the global prefix
func SetPrefix(enabled bool) {
	std.SetPrefix(enabled)
}

// SetRenderer swaps the global prefix renderer
func SetRenderer(r formatter.Renderer) {
	std.SetRenderer(r)
}

// SetWriter sets the global sink
func SetWriter(w io.Writer) {
	std.SetWriter(w)
}

// StartLogs is the hook for persisting logs of appName to files. File
// logging is not supported: it only warns on the global logger.
func StartLogs(appName string) {
	if appName == "" {
		appName = os.Args[0]
	}
	std.output(core.WarnLevel, -1, 1).
		Str("file logging is not supported, ").
		Str(appName).
		Str(" logs to the configured writer only")
}

// StopLogs terminates the last line on the global sink and syncs it
func StopLogs() error {
	return std.Flush()
}

// Flush terminates the last line on the global sink and syncs it
func Flush() error {
	return std.Flush()
}
