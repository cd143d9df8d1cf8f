package logger

import (
	"fmt"
	"io"
	"strconv"

	"go.uber.org/multierr"

	"github.com/philipp01105/modlog/sink"
)

// Stream is the handle a log call resolves to. Text appended to it goes
// straight to the selected sink; no level check happens after the
// Stream is returned.
//
// A suppressed call returns the shared discarded Stream. Every method on
// it returns immediately, and Lazy and Func never run their argument, so
// expensive formatting can be deferred until it is known to be needed:
//
//	logger.V(2).Lazy(func() string { return dump(state) })
//
// Each call site gets its own Stream; do not retain one across calls.
type Stream struct {
	w     io.Writer
	fatal *sink.Fatal
	on    bool
	err   error
	num   [32]byte
}

// discarded is returned by every suppressed call. It is never written to
// and never mutated, so sharing it between goroutines is safe.
var discarded = &Stream{w: sink.Discard}

func newStream(w io.Writer) *Stream {
	return &Stream{w: w, on: true}
}

// Enabled reports whether text appended to s reaches a real sink
func (s *Stream) Enabled() bool {
	return s.on
}

// Fatal reports whether s terminates the process at the end of the line
func (s *Stream) Fatal() bool {
	return s.fatal != nil
}

// Sink returns the destination s writes to
func (s *Stream) Sink() io.Writer {
	return s.w
}

// Write implements io.Writer
func (s *Stream) Write(p []byte) (int, error) {
	if !s.on {
		return len(p), nil
	}
	n, err := s.w.Write(p)
	s.record(err)
	return n, err
}

// WriteString implements io.StringWriter
func (s *Stream) WriteString(str string) (int, error) {
	if !s.on {
		return len(str), nil
	}
	n, err := io.WriteString(s.w, str)
	s.record(err)
	return n, err
}

// Str appends a string
func (s *Stream) Str(str string) *Stream {
	if s.on {
		_, _ = s.WriteString(str)
	}
	return s
}

// Int appends a decimal integer
func (s *Stream) Int(i int) *Stream {
	return s.Int64(int64(i))
}

// Int64 appends a decimal integer
func (s *Stream) Int64(i int64) *Stream {
	if s.on {
		_, _ = s.Write(strconv.AppendInt(s.num[:0], i, 10))
	}
	return s
}

// Uint64 appends a decimal unsigned integer
func (s *Stream) Uint64(u uint64) *Stream {
	if s.on {
		_, _ = s.Write(strconv.AppendUint(s.num[:0], u, 10))
	}
	return s
}

// Float64 appends a float in the shortest exact representation
func (s *Stream) Float64(f float64) *Stream {
	if s.on {
		_, _ = s.Write(strconv.AppendFloat(s.num[:0], f, 'g', -1, 64))
	}
	return s
}

// Bool appends true or false
func (s *Stream) Bool(b bool) *Stream {
	if s.on {
		_, _ = s.Write(strconv.AppendBool(s.num[:0], b))
	}
	return s
}

// Err appends err's message, or <nil>
func (s *Stream) Err(err error) *Stream {
	if !s.on {
		return s
	}
	if err == nil {
		return s.Str("<nil>")
	}
	return s.Str(err.Error())
}

// Print appends its operands formatted as by fmt.Print
func (s *Stream) Print(args ...interface{}) *Stream {
	if s.on {
		_, err := fmt.Fprint(s.w, args...)
		s.record(err)
	}
	return s
}

// Printf appends its operands formatted as by fmt.Printf
func (s *Stream) Printf(format string, args ...interface{}) *Stream {
	if s.on {
		_, err := fmt.Fprintf(s.w, format, args...)
		s.record(err)
	}
	return s
}

// Lazy appends the result of fn, which only runs when s is enabled
func (s *Stream) Lazy(fn func() string) *Stream {
	if s.on {
		_, _ = s.WriteString(fn())
	}
	return s
}

// Func hands the stream to fn, which only runs when s is enabled
func (s *Stream) Func(fn func(w io.Writer)) *Stream {
	if s.on {
		fn(s)
	}
	return s
}

// Endl appends a line terminator. On a fatal stream this terminates the process.
func (s *Stream) Endl() *Stream {
	if s.on {
		_, _ = s.Write(newline)
	}
	return s
}

var newline = []byte{'\n'}

// WriteError returns the accumulated write errors, if any
func (s *Stream) WriteError() error {
	return s.err
}

// Close ends the call. A fatal stream that never saw a line terminator
// terminates the process here; for every other stream Close only reports
// the accumulated write errors.
func (s *Stream) Close() error {
	if s.fatal != nil {
		return s.fatal.Close()
	}
	return s.err
}

func (s *Stream) record(err error) {
	if err != nil {
		s.err = multierr.Append(s.err, err)
	}
}
