package formatter

import (
	"strings"

	"go.uber.org/zap/buffer"
)

// JSONTimeFormat is RFC3339 with microseconds
const JSONTimeFormat = "2006-01-02T15:04:05.000000Z07:00"

// JSONClose terminates the object a JSON prefix opened. The caller must
// append it after the message.
const JSONClose = `"}`

// JSON opens one JSON object per call and leaves the "msg" string open:
//
//	{"level":"warn","time":"...","thread":7,"caller":"a.go:10","msg":"
//
// Message text appended after the prefix is written verbatim and is not
// escaped.
func JSON(buf *buffer.Buffer, h Header) {
	buf.AppendByte('\n')
	buf.AppendString(`{"level":"`)
	buf.AppendString(levelName(h))
	buf.AppendString(`","time":"`)
	buf.AppendTime(h.Time, JSONTimeFormat)
	buf.AppendString(`","thread":`)
	buf.AppendUint(h.Goroutine)
	if h.Caller.Defined {
		buf.AppendString(`,"caller":"`)
		appendJSONString(buf, h.Caller.ShortFile)
		buf.AppendByte(':')
		buf.AppendInt(int64(h.Caller.Line))
		buf.AppendByte('"')
	}
	buf.AppendString(`,"msg":"`)
}

// LogfmtTimeFormat keeps millisecond precision
const LogfmtTimeFormat = "2006-01-02T15:04:05.000"

// Logfmt renders a logfmt prefix ending in an open msg= key:
//
//	level=info time=2026-01-15T12:00:00.000 thread=7 caller=a.go:10 msg=
func Logfmt(buf *buffer.Buffer, h Header) {
	buf.AppendByte('\n')
	buf.AppendString("level=")
	buf.AppendString(levelName(h))
	buf.AppendString(" time=")
	buf.AppendTime(h.Time, LogfmtTimeFormat)
	buf.AppendString(" thread=")
	buf.AppendUint(h.Goroutine)
	if h.Caller.Defined {
		buf.AppendString(" caller=")
		buf.AppendString(h.Caller.ShortFile)
		buf.AppendByte(':')
		buf.AppendInt(int64(h.Caller.Line))
	}
	buf.AppendString(" msg=")
}

func levelName(h Header) string {
	if h.Debug() {
		return "debug"
	}
	return strings.ToLower(h.Level.String())
}

// appendJSONString writes a JSON-escaped string (without surrounding quotes) to the buffer
func appendJSONString(buf *buffer.Buffer, s string) {
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		if start < i {
			buf.AppendString(s[start:i])
		}
		switch c {
		case '"':
			buf.AppendString(`\"`)
		case '\\':
			buf.AppendString(`\\`)
		case '\n':
			buf.AppendString(`\n`)
		case '\r':
			buf.AppendString(`\r`)
		case '\t':
			buf.AppendString(`\t`)
		default:
			buf.AppendString(`\u00`)
			buf.AppendByte(hexChars[c>>4])
			buf.AppendByte(hexChars[c&0x0f])
		}
		start = i + 1
	}
	if start < len(s) {
		buf.AppendString(s[start:])
	}
}

var hexChars = [16]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd', 'e', 'f'}
