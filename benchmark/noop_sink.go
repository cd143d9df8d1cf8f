package benchmark

import "sync/atomic"

// countingSink discards everything written to it but keeps the byte
// count, so a benchmark can check that a framework actually wrote.
type countingSink struct {
	n atomic.Int64
}

func newCountingSink() *countingSink {
	return &countingSink{}
}

func (s *countingSink) Write(p []byte) (int, error) {
	s.n.Add(int64(len(p)))
	return len(p), nil
}

func (s *countingSink) Written() int64 {
	return s.n.Load()
}
