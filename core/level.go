package core

import (
	"strings"

	"github.com/pkg/errors"
)

// Level represents the severity of a log call
type Level int8

const (
	// SilentLevel never emits. As a message level it silences the call,
	// as a threshold it silences the whole channel.
	SilentLevel Level = iota - 1
	// DebugLevel for detailed debugging information
	DebugLevel
	// InfoLevel for general informational messages (default)
	InfoLevel
	// WarnLevel for warning messages
	WarnLevel
	// ErrorLevel for error messages
	ErrorLevel
	// FatalLevel terminates the process once the line is complete
	FatalLevel
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case SilentLevel:
		return "SILENT"
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Char returns the single character tag used by the default prefix
func (l Level) Char() byte {
	switch l {
	case DebugLevel:
		return 'D'
	case InfoLevel:
		return 'I'
	case WarnLevel:
		return 'W'
	case ErrorLevel:
		return 'E'
	case FatalLevel:
		return 'F'
	default:
		return '?'
	}
}

// Below reports whether l sorts strictly below threshold.
func (l Level) Below(threshold Level) bool {
	return l < threshold
}

// Suppressed reports whether a call at sev must be discarded under threshold.
// A call exactly at the threshold is never suppressed.
func Suppressed(sev, threshold Level) bool {
	return sev == SilentLevel || threshold == SilentLevel || sev.Below(threshold)
}

// ParseLevel converts a level name to a Level. An empty name is InfoLevel.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SILENT", "OFF", "NONE":
		return SilentLevel, nil
	case "DEBUG":
		return DebugLevel, nil
	case "INFO", "":
		return InfoLevel, nil
	case "WARN", "WARNING":
		return WarnLevel, nil
	case "ERROR":
		return ErrorLevel, nil
	case "FATAL":
		return FatalLevel, nil
	default:
		return InfoLevel, errors.Errorf("unknown log level '%s'", s)
	}
}
