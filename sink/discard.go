package sink

import "io"

type discard struct{}

func (discard) Write(p []byte) (int, error)         { return len(p), nil }
func (discard) WriteString(s string) (int, error)   { return len(s), nil }
func (discard) Sync() error                         { return nil }
func (discard) ReadFrom(r io.Reader) (int64, error) { return io.Copy(io.Discard, r) }

// Discard is the only discarding destination in the process. Every
// suppressed log call resolves to it.
var Discard io.Writer = discard{}

// IsDiscard reports whether w is the discarding sink
func IsDiscard(w io.Writer) bool {
	_, ok := w.(discard)
	return ok
}
