package formatter

import (
	"github.com/fatih/color"
	"go.uber.org/zap/buffer"

	"github.com/philipp01105/modlog/core"
)

// TextTimeFormat is the timestamp layout of the default prefix
const TextTimeFormat = "20060102 15:04:05.000000"

// Text is the default renderer. With and without a call site, each
// ending in "] " before the message:
//
//	\n<L><YYYYMMDD> <HH:MM:SS.ffffff> <goroutine> <file>:<line>]
//	\n<L><YYYYMMDD> <HH:MM:SS.ffffff> <goroutine>]
//
// The leading line break keeps every header on its own line whether or
// not the previous call terminated its text.
func Text(buf *buffer.Buffer, h Header) {
	buf.AppendByte('\n')
	buf.AppendByte(h.Level.Char())
	appendTextBody(buf, h)
}

// pre-coloured level tags, indexed by level+1 so SilentLevel maps to 0
var coloredChars [core.FatalLevel + 2]string

func init() {
	colors := map[core.Level]*color.Color{
		core.DebugLevel: color.New(color.FgCyan),
		core.InfoLevel:  color.New(color.FgGreen),
		core.WarnLevel:  color.New(color.FgYellow),
		core.ErrorLevel: color.New(color.FgRed),
		core.FatalLevel: color.New(color.FgHiRed, color.Bold),
	}
	for l := core.SilentLevel; l <= core.FatalLevel; l++ {
		c, ok := colors[l]
		if !ok {
			coloredChars[l+1] = string(l.Char())
			continue
		}
		c.EnableColor()
		coloredChars[l+1] = c.Sprint(string(l.Char()))
	}
}

// ColorText renders the Text grammar with the level tag wrapped in an
// ANSI colour. Use it for terminal sinks only.
func ColorText(buf *buffer.Buffer, h Header) {
	buf.AppendByte('\n')
	if h.Level >= core.SilentLevel && h.Level <= core.FatalLevel {
		buf.AppendString(coloredChars[h.Level+1])
	} else {
		buf.AppendByte('?')
	}
	appendTextBody(buf, h)
}

func appendTextBody(buf *buffer.Buffer, h Header) {
	buf.AppendTime(h.Time, TextTimeFormat)
	buf.AppendByte(' ')
	buf.AppendUint(h.Goroutine)

	if h.Caller.Defined {
		buf.AppendByte(' ')
		buf.AppendString(h.Caller.ShortFile)
		buf.AppendByte(':')
		buf.AppendInt(int64(h.Caller.Line))
	}
	buf.AppendString("] ")
}
