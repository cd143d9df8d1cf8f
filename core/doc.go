// Package core defines the shared types used across modlog.
//
// It provides the Level type and the suppression rule every dispatch
// path uses, the CallerInfo type describing a call site, the goroutine
// id that stands in for a thread id in rendered prefixes, and the
// clocks a prefix can be stamped with.
//
// Levels are totally ordered by their integer value. SilentLevel sorts
// below every real level and is never emitted: used as the level of a
// call it drops that call, used as a threshold it drops everything.
// Comparison against a threshold is strict, so a call exactly at the
// threshold always passes.
//
// Call sites are resolved lazily. GetCaller walks the stack with
// runtime.Caller and is only invoked by the dispatcher after a call has
// passed the level check, so suppressed calls never pay for it.
package core
