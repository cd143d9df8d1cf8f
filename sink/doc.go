// Package sink provides the destinations a log call can resolve to.
//
// Every sink is a plain io.Writer:
//
//   - Discard drops everything. There is exactly one in the process and
//     every suppressed call resolves to it.
//   - Direct forwards to an externally owned writer such as stderr. Writes
//     are serialized through zapcore.Lock so a single write is never torn.
//   - Capture buffers into an owned zap buffer and hands the content back
//     through Drain, which also resets it.
//   - Fatal buffers a single line. The first '\n' (or Close) reports the
//     line and a stack trace to the diagnostic writer and terminates the
//     process. Nothing written after that point is observable.
//
// Sinks are referenced, never owned, by a logger configuration. Closing
// the process streams is left to the process.
package sink
