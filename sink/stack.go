package sink

import (
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// StackUnavailable replaces the trace when the runtime cannot produce one
const StackUnavailable = "WARNING: stacktrace unavailable"

var (
	stackOnce      sync.Once
	stackAvailable bool
)

// StackAvailable reports whether stack traces can be captured. The probe
// runs once and its answer is cached.
func StackAvailable() bool {
	stackOnce.Do(func() {
		var pcs [1]uintptr
		stackAvailable = runtime.Callers(1, pcs[:]) > 0
	})
	return stackAvailable
}

// Stack returns the stack of the calling goroutine, skipping skip frames
// above the caller of Stack, or StackUnavailable.
func Stack(skip int) string {
	if !StackAvailable() {
		return StackUnavailable
	}
	trace := zap.StackSkip("", skip+1).String
	if trace == "" {
		return StackUnavailable
	}
	return trace
}
