package logger

import (
	"github.com/philipp01105/modlog/core"
)

// Level Re-export type and constants for convenience
type Level = core.Level

const (
	SilentLevel = core.SilentLevel
	DebugLevel  = core.DebugLevel
	InfoLevel   = core.InfoLevel
	WarnLevel   = core.WarnLevel
	ErrorLevel  = core.ErrorLevel
	FatalLevel  = core.FatalLevel
)

// ParseLevel converts a level name to a Level
func ParseLevel(s string) (Level, error) {
	return core.ParseLevel(s)
}
