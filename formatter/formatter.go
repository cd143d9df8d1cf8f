package formatter

import (
	"sort"
	"strings"
	"time"

	"go.uber.org/zap/buffer"

	"github.com/philipp01105/modlog/core"
)

// Header carries everything a Renderer may stamp in front of a message
type Header struct {
	Level     core.Level
	Time      time.Time
	Caller    core.CallerInfo
	Goroutine uint64
	// Verbose is the V level of verbose calls and -1 for everything else
	Verbose int
}

// Micros returns the microsecond offset within the current second
func (h Header) Micros() int {
	return h.Time.Nanosecond() / int(time.Microsecond)
}

// Debug reports whether the call should be labelled as debug output
func (h Header) Debug() bool {
	return h.Level == core.DebugLevel || h.Verbose > 0
}

// Renderer appends a prefix for h to buf. Renderers are total: they never
// fail and never write anything but the prefix.
type Renderer func(buf *buffer.Buffer, h Header)

// bufferPool supplies the scratch buffers prefixes are rendered into
var bufferPool = buffer.NewPool()

// GetBuffer returns an empty pooled buffer
func GetBuffer() *buffer.Buffer {
	return bufferPool.Get()
}

// PutBuffer returns buf to the pool
func PutBuffer(buf *buffer.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	buf.Free()
}

// Render runs r for h and returns the pooled buffer holding the result.
// The caller must release it with PutBuffer.
func Render(r Renderer, h Header) *buffer.Buffer {
	if r == nil {
		r = Text
	}
	buf := GetBuffer()
	r(buf, h)
	return buf
}

var renderers = map[string]Renderer{
	"text":   Text,
	"color":  ColorText,
	"json":   JSON,
	"logfmt": Logfmt,
}

// Lookup returns the built-in renderer registered under name
func Lookup(name string) (Renderer, bool) {
	r, ok := renderers[strings.ToLower(name)]
	return r, ok
}

// Names lists the built-in renderer names
func Names() []string {
	names := make([]string, 0, len(renderers))
	for name := range renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
