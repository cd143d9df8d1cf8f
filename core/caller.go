package core

import (
	"path/filepath"
	"runtime"
)

// CallerInfo identifies the source location of a log call
type CallerInfo struct {
	File      string
	ShortFile string
	Line      int
	Function  string
	Defined   bool
}

// GetCaller retrieves caller information, skip frames above GetCaller itself
func GetCaller(skip int) CallerInfo {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return CallerInfo{}
	}

	fn := runtime.FuncForPC(pc)
	var funcName string
	if fn != nil {
		funcName = fn.Name()
	}

	return CallerInfo{
		File:      file,
		ShortFile: filepath.Base(file),
		Line:      line,
		Function:  funcName,
		Defined:   true,
	}
}

// At builds a CallerInfo from an explicit file and line.
// An empty file yields an undefined caller.
func At(file string, line int) CallerInfo {
	if file == "" {
		return CallerInfo{}
	}
	return CallerInfo{
		File:      file,
		ShortFile: filepath.Base(file),
		Line:      line,
		Defined:   true,
	}
}

// FromPC resolves a program counter, as recorded by log/slog or zap, into a CallerInfo
func FromPC(pc uintptr) CallerInfo {
	if pc == 0 {
		return CallerInfo{}
	}
	frames := runtime.CallersFrames([]uintptr{pc})
	f, _ := frames.Next()
	if f.File == "" {
		return CallerInfo{}
	}
	c := At(f.File, f.Line)
	c.Function = f.Function
	return c
}
