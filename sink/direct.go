package sink

import (
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap/zapcore"
)

// Direct forwards to an externally owned destination without buffering.
// Each Write is serialized so concurrent callers never tear a single write;
// separate writes from different goroutines may still interleave.
type Direct struct {
	ws       zapcore.WriteSyncer
	terminal bool
}

// Stderr and Stdout wrap the process streams. They outlive all logging
// activity and are never closed.
var (
	Stderr = NewFile(os.Stderr)
	Stdout = NewFile(os.Stdout)
)

// NewDirect wraps w
func NewDirect(w io.Writer) *Direct {
	return &Direct{ws: zapcore.Lock(zapcore.AddSync(w))}
}

// NewFile wraps an open file, translating ANSI colour sequences on
// consoles that need it and recording whether the file is a terminal.
func NewFile(f *os.File) *Direct {
	d := NewDirect(colorable.NewColorable(f))
	d.terminal = isTerminal(f.Fd())
	return d
}

// Write implements io.Writer
func (d *Direct) Write(p []byte) (int, error) {
	return d.ws.Write(p)
}

// Sync flushes the destination if it supports it
func (d *Direct) Sync() error {
	return d.ws.Sync()
}

// IsTerminal reports whether the destination is an interactive terminal
func (d *Direct) IsTerminal() bool {
	return d.terminal
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// IsTerminal reports whether w is a terminal, either a Direct sink or an *os.File
func IsTerminal(w io.Writer) bool {
	switch v := w.(type) {
	case *Direct:
		return v.IsTerminal()
	case *os.File:
		return isTerminal(v.Fd())
	default:
		return false
	}
}

// Sync flushes w if it exposes a Sync method
func Sync(w io.Writer) error {
	if s, ok := w.(interface{ Sync() error }); ok {
		return s.Sync()
	}
	return nil
}
