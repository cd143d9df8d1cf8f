// Package logger is the public API of modlog. Most users only need to
// import this package.
//
// A log call asks the dispatcher for a Stream and appends text to it:
//
//	logger.Log(logger.WarnLevel).Str("x=").Int(1)
//	logger.Info().Printf("listening on %s", addr)
//	logger.V(2).Lazy(func() string { return dump(state) })
//
// The dispatcher decides once, at the start of the call, whether the
// call is suppressed. A suppressed call gets a shared Stream bound to
// sink.Discard that ignores everything, so no formatting, no call-site
// lookup and no clock read happens. Otherwise the configured Renderer
// stamps a header (level, time, goroutine id, file:line) into the sink
// and the Stream writes the rest of the call straight into it.
//
// There are three entry points sharing one filtering rule:
//
//   - Log(level): compared against the configured threshold. A call
//     exactly at the threshold passes; SilentLevel never does.
//   - V(v): an informational call that additionally requires
//     v <= Verbosity.
//   - LogFor(level, obj): compared against the Config returned by
//     obj.LogConfig() and written to obj's sink. Any type implementing
//     Loggable qualifies.
//
// FatalLevel is an assertion, not a destination. When prefixing is on,
// the stream of a fatal call is bound to a fresh sink.Fatal: the first
// line terminator (Endl, a '\n' in the text, or Close) reports the line
// and a stack trace to FatalWriter and exits the process with status 1.
// A fatal stream that is never terminated nor closed never exits.
//
// The package keeps one global Logger, returned by Default, behind the
// package-level functions. Its configuration is an immutable snapshot
// swapped atomically by the setters, so reconfiguring while other
// goroutines log is safe and every call sees exactly one configuration.
// Object configurations are rebuilt on every LogFor call and never
// shared.
package logger
