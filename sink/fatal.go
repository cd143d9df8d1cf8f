package sink

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap/buffer"
)

// ExitCode is the status a Fatal sink terminates the process with
const ExitCode = 1

var linePool = buffer.NewPool()

// FatalState is the state of a Fatal sink
type FatalState int32

const (
	// Idle accumulates the line
	Idle FatalState = iota
	// Killing is terminal: the line was reported and exit was requested
	Killing
)

// String returns the string representation of the state
func (s FatalState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Killing:
		return "Killing"
	default:
		return "Unknown"
	}
}

// Fatal buffers one line. When a '\n' is written, or Close is called, it
// reports the line followed by a stack trace to its diagnostic writer and
// terminates the process.
type Fatal struct {
	mu    sync.Mutex
	out   io.Writer
	exit  func(int)
	line  *buffer.Buffer
	state FatalState
}

// NewFatal creates a Fatal sink reporting to out (stderr when nil) and
// terminating through exit (os.Exit when nil).
func NewFatal(out io.Writer, exit func(int)) *Fatal {
	if out == nil {
		out = Stderr
	}
	if exit == nil {
		exit = os.Exit
	}
	return &Fatal{
		out:  out,
		exit: exit,
		line: linePool.Get(),
	}
}

// Write buffers p up to the first line terminator, then kills the process.
// Bytes after the terminator are never reported.
func (f *Fatal) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == Killing {
		return len(p), nil
	}
	for _, c := range p {
		f.line.AppendByte(c)
		if c == '\n' {
			f.kill()
			break
		}
	}
	return len(p), nil
}

// WriteString implements io.StringWriter
func (f *Fatal) WriteString(s string) (int, error) {
	return f.Write([]byte(s))
}

// Close kills the process even if no line terminator was written
func (f *Fatal) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == Killing {
		return nil
	}
	f.line.AppendByte('\n')
	f.kill()
	return nil
}

// State returns the current state
func (f *Fatal) State() FatalState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// kill must be called with mu held
func (f *Fatal) kill() {
	f.state = Killing

	f.line.AppendString(Stack(2))
	f.line.AppendByte('\n')
	_, _ = f.out.Write(f.line.Bytes())
	_ = Sync(f.out)
	f.line.Free()
	f.line = nil

	f.exit(ExitCode)
}
