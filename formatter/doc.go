// Package formatter renders the prefix stamped in front of every
// emitted log call.
//
// A Renderer is a plain function value that appends a header for a
// Header (level, time, call site, goroutine id) into a pooled
// go.uber.org/zap buffer. The dispatcher writes the finished buffer to
// the sink in a single Write, so a header is never torn by a concurrent
// writer. Renderers are swapped by assigning a new function to the
// logger configuration; the change applies to the next call only.
//
// Built-in renderers:
//
//   - Text, the default: `\nW20260115 12:00:00.000123 7 main.go:42] `
//   - ColorText, Text with an ANSI-coloured level tag for terminals.
//   - JSON, which opens an object and leaves "msg" open; the caller
//     appends JSONClose once the message is written.
//   - Logfmt: `level=warn time=... thread=7 caller=main.go:42 msg=`
//
// Every built-in renderer starts with a line break so that each call
// begins on its own line regardless of what the previous call wrote.
//
// Buffers larger than 64 KiB are not returned to the pool to prevent
// a single large prefix from permanently inflating memory usage.
package formatter
