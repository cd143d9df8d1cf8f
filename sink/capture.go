package sink

import (
	"go.uber.org/zap/buffer"
)

var capturePool = buffer.NewPool()

// Capture accumulates everything written to it until drained. It is used
// to assemble a document (a JSON array, a report) across many log calls.
//
// Capture is not synchronized: concurrent writers, or a Drain racing a
// Write, must be serialized by the caller.
type Capture struct {
	buf *buffer.Buffer
}

// NewCapture creates an empty capturing sink
func NewCapture() *Capture {
	return &Capture{buf: capturePool.Get()}
}

// Write implements io.Writer
func (c *Capture) Write(p []byte) (int, error) {
	return c.buffer().Write(p)
}

// WriteString implements io.StringWriter
func (c *Capture) WriteString(s string) (int, error) {
	return c.buffer().WriteString(s)
}

// Len returns the number of buffered bytes
func (c *Capture) Len() int {
	if c.buf == nil {
		return 0
	}
	return c.buf.Len()
}

// String returns the buffered content without resetting it
func (c *Capture) String() string {
	if c.buf == nil {
		return ""
	}
	return c.buf.String()
}

// Drain returns the buffered content and empties the buffer, leaving the
// sink ready for reuse.
func (c *Capture) Drain() string {
	if c.buf == nil {
		return ""
	}
	s := c.buf.String()
	c.buf.Reset()
	return s
}

// Close returns the internal buffer to the pool. A closed Capture may
// still be written to; it lazily acquires a new buffer.
func (c *Capture) Close() error {
	if c.buf != nil {
		c.buf.Free()
		c.buf = nil
	}
	return nil
}

func (c *Capture) buffer() *buffer.Buffer {
	if c.buf == nil {
		c.buf = capturePool.Get()
	}
	return c.buf
}
