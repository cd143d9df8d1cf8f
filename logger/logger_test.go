package logger

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/philipp01105/modlog/formatter"
	"github.com/philipp01105/modlog/sink"
)

var fixedTime = time.Date(2026, 2, 18, 13, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedTime }

func newTestLogger(buf *bytes.Buffer) *Logger {
	return New(Config{
		Writer: buf,
		Level:  InfoLevel,
		Prefix: true,
		Clock:  fixedClock,
	})
}

// here returns the line it is called from
func here() int {
	_, _, line, _ := runtime.Caller(1)
	return line
}

func TestLogger_LevelGate(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)

	// Debug should not be logged (below Info level)
	s := log.Debug().Str("debug message")
	if buf.Len() > 0 {
		t.Error("Debug message was logged when level is Info")
	}
	if s.Enabled() || !sink.IsDiscard(s.Sink()) {
		t.Error("Suppressed call must resolve to the discarding sink")
	}

	// Info should be logged
	log.Info().Str("info message")
	if !strings.Contains(buf.String(), "info message") {
		t.Errorf("Expected 'info message' in output, got: %s", buf.String())
	}

	buf.Reset()
	log.Warn().Str("warn message")
	if !strings.Contains(buf.String(), "warn message") {
		t.Errorf("Expected 'warn message' in output, got: %s", buf.String())
	}

	buf.Reset()
	log.Error().Str("error message")
	if !strings.Contains(buf.String(), "error message") {
		t.Errorf("Expected 'error message' in output, got: %s", buf.String())
	}
}

func TestLogger_SuppressionIsTotal(t *testing.T) {
	levels := []Level{DebugLevel, InfoLevel, WarnLevel, ErrorLevel, FatalLevel}

	for _, threshold := range levels {
		for _, sev := range levels {
			if sev >= threshold {
				continue
			}
			var buf bytes.Buffer
			log := newTestLogger(&buf)
			log.SetLevel(threshold)

			s := log.Log(sev).Str("x").Int(1).Printf("%d", 2).Endl()
			if buf.Len() != 0 {
				t.Errorf("Log(%v) under %v wrote %q", sev, threshold, buf.String())
			}
			if s != discarded {
				t.Errorf("Log(%v) under %v did not return the discarded stream", sev, threshold)
			}
		}
	}
}

func TestLogger_ExactThresholdPasses(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)
	log.SetLevel(WarnLevel)

	log.Log(WarnLevel).Str("at threshold")
	if !strings.Contains(buf.String(), "at threshold") {
		t.Errorf("A call at the threshold must pass, got: %q", buf.String())
	}
}

func TestLogger_Silent(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)

	log.Log(SilentLevel).Str("silent call")
	if buf.Len() != 0 {
		t.Errorf("SilentLevel call was logged: %q", buf.String())
	}

	log.SetLevel(SilentLevel)
	log.Error().Str("error")
	log.V(0).Str("verbose")
	if buf.Len() != 0 {
		t.Errorf("Silent threshold must suppress everything, got: %q", buf.String())
	}
}

func TestLogger_EndToEnd(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)

	line := here()
	log.Log(WarnLevel).Str("x=1")

	re := regexp.MustCompile(fmt.Sprintf(`^\nW20260218 13:00:00\.000000 \d+ logger_test\.go:%d\] x=1$`, line+1))
	if !re.MatchString(buf.String()) {
		t.Errorf("Unexpected output: %q", buf.String())
	}

	buf.Reset()
	log.SetLevel(ErrorLevel)
	s := log.Log(WarnLevel).Str("x=1")
	if buf.Len() != 0 || s.Enabled() {
		t.Errorf("Expected no output under Error threshold, got: %q", buf.String())
	}
}

func TestLogger_LogAt(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)

	log.LogAt(WarnLevel, "/src/app/a.cc", 10).Str("x=1")
	if !strings.HasSuffix(buf.String(), " a.cc:10] x=1") {
		t.Errorf("Expected explicit call site, got: %q", buf.String())
	}

	buf.Reset()
	log.LogAt(InfoLevel, "", 0).Str("no site")
	if !regexp.MustCompile(`^\nI20260218 13:00:00\.000000 \d+\] no site$`).MatchString(buf.String()) {
		t.Errorf("Expected header without call site, got: %q", buf.String())
	}
}

func TestLogger_NoPrefix(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)
	log.SetPrefix(false)

	log.Warn().Str("a").Str("b")
	if buf.String() != "ab" {
		t.Errorf("Expected 'ab', got: %q", buf.String())
	}
}

func TestLogger_V(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)
	log.SetPrefix(false)
	log.SetVerbosity(1)

	log.V(0).Str("v0;")
	log.V(1).Str("v1;")
	log.V(2).Str("v2;")
	if buf.String() != "v0;v1;" {
		t.Errorf("Expected 'v0;v1;', got: %q", buf.String())
	}
	if !log.VEnabled(1) || log.VEnabled(2) {
		t.Error("VEnabled disagrees with V")
	}

	buf.Reset()
	log.SetLevel(WarnLevel)
	log.V(0).Str("hidden")
	if buf.Len() != 0 {
		t.Errorf("V must be suppressed when Info is below the threshold, got: %q", buf.String())
	}
}

func TestLogger_NegativeVerbosityOnlyGatesV(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)
	log.SetPrefix(false)

	for _, v := range []int{-1, -2, -5} {
		buf.Reset()
		log.SetVerbosity(v)

		log.Error().Str("error;")
		log.Warn().Str("warn;")
		log.Info().Str("info;")
		log.V(0).Str("v0;")
		if buf.String() != "error;warn;info;" {
			t.Errorf("Verbosity %d: expected 'error;warn;info;', got: %q", v, buf.String())
		}
		if !log.Enabled(ErrorLevel) || log.VEnabled(0) {
			t.Errorf("Verbosity %d: Enabled/VEnabled disagree with the emitted calls", v)
		}
	}
}

func TestLogger_VUsesInfoTag(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)

	log.V(0).Str("verbose")
	if !strings.HasPrefix(buf.String(), "\nI2026") {
		t.Errorf("Expected info tag for V(0), got: %q", buf.String())
	}
}

type testObject struct {
	w     *sink.Capture
	level Level
	pfx   bool
	r     formatter.Renderer
}

func (o *testObject) LogConfig() Config {
	return Config{Writer: o.w, Level: o.level, Prefix: o.pfx, Renderer: o.r}
}

func TestLogger_LogFor_LocalThreshold(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)

	obj := &testObject{w: sink.NewCapture(), level: WarnLevel, pfx: true}
	defer obj.w.Close()

	s := log.LogFor(InfoLevel, obj).Str("suppressed")
	if s.Enabled() || obj.w.Len() != 0 {
		t.Errorf("Object threshold must suppress Info, got: %q", obj.w.String())
	}

	line := here()
	log.LogFor(WarnLevel, obj).Str("finished loop!")
	want := fmt.Sprintf(` logger_test.go:%d] finished loop!`, line+1)
	if !strings.HasPrefix(obj.w.String(), "\nW") || !strings.HasSuffix(obj.w.String(), want) {
		t.Errorf("Expected prefixed warning in object sink, got: %q", obj.w.String())
	}
	if buf.Len() != 0 {
		t.Errorf("Object-scoped call leaked to the global sink: %q", buf.String())
	}
}

func TestLogger_LogFor_IgnoresGlobalThreshold(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)
	log.SetLevel(ErrorLevel)

	obj := &testObject{w: sink.NewCapture(), level: InfoLevel}
	defer obj.w.Close()

	log.LogFor(InfoLevel, obj).Str("i=").Int(2)
	if got := obj.w.Drain(); got != "i=2" {
		t.Errorf("Expected 'i=2', got: %q", got)
	}
	if got := obj.w.Drain(); got != "" {
		t.Errorf("Expected empty second drain, got: %q", got)
	}
}

func TestLogger_LogFor_Fallbacks(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)

	obj := &testObject{level: InfoLevel, pfx: true, r: formatter.Logfmt}
	log.LogFor(InfoLevel, &nilWriterObject{obj}).Str("hello")

	if !strings.HasPrefix(buf.String(), "\nlevel=info ") || !strings.HasSuffix(buf.String(), "msg=hello") {
		t.Errorf("Expected logfmt record on the global sink, got: %q", buf.String())
	}
}

func TestLogger_LogFor_Fatal(t *testing.T) {
	var buf, report bytes.Buffer
	log := newTestLogger(&buf)
	log.Update(func(c *Config) { c.FatalWriter = &report })

	exitCode := -1
	origExit := osExit
	osExit = func(code int) { exitCode = code }
	defer func() { osExit = origExit }()

	obj := &testObject{w: sink.NewCapture(), level: InfoLevel, pfx: true}
	defer obj.w.Close()

	s := log.LogFor(FatalLevel, obj).Str("obj fatal")
	if !s.Fatal() || exitCode != -1 {
		t.Fatal("Expected an unterminated fatal stream")
	}
	s.Endl()

	if exitCode != sink.ExitCode {
		t.Errorf("Expected exit code %d, got %d", sink.ExitCode, exitCode)
	}
	out := obj.w.String()
	if !strings.HasPrefix(out, "\nF20260218") || !strings.HasSuffix(out, "] ") {
		t.Errorf("Expected only the fatal header in the object sink, got: %q", out)
	}
	if !strings.HasPrefix(report.String(), "obj fatal\n") {
		t.Errorf("Expected 'obj fatal' in the report, got: %q", report.String())
	}
	if buf.Len() != 0 {
		t.Errorf("Object-scoped fatal call leaked to the global sink: %q", buf.String())
	}
}

type nilWriterObject struct{ *testObject }

func (o *nilWriterObject) LogConfig() Config {
	c := o.testObject.LogConfig()
	c.Writer = nil
	return c
}

func TestLogger_RendererSwap(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)

	before := log.Info().Str("old")
	log.SetRenderer(formatter.Logfmt)
	before.Str(" still old")
	log.Info().Str("new")

	out := buf.String()
	lines := strings.Split(strings.TrimPrefix(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 records, got: %q", out)
	}
	if !strings.HasPrefix(lines[0], "I20260218") || !strings.HasSuffix(lines[0], "] old still old") {
		t.Errorf("First record should use the text prefix, got: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "level=info ") || !strings.HasSuffix(lines[1], "msg=new") {
		t.Errorf("Second record should use the logfmt prefix, got: %q", lines[1])
	}
}

func TestLogger_JSONPrefix(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)
	log.SetRenderer(formatter.JSON)

	log.Info().Str("Hello World!").Str(formatter.JSONClose)
	if !strings.HasPrefix(buf.String(), "\n{\"level\":\"info\"") || !strings.HasSuffix(buf.String(), `"msg":"Hello World!"}`) {
		t.Errorf("Unexpected JSON record: %q", buf.String())
	}
}

func TestLogger_LazyArgumentsNotEvaluated(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)

	called := false
	log.V(5).Lazy(func() string {
		called = true
		return "expensive"
	}).Func(func(w io.Writer) {
		called = true
	})
	if called {
		t.Error("Lazy arguments of a suppressed call were evaluated")
	}

	log.Info().Lazy(func() string {
		called = true
		return "cheap enough"
	})
	if !called || !strings.HasSuffix(buf.String(), "cheap enough") {
		t.Errorf("Lazy argument of an emitted call was not written, got: %q", buf.String())
	}
}

func TestStream_Appends(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)
	log.SetPrefix(false)

	log.Info().
		Str("s ").
		Int(-1).Str(" ").
		Int64(42).Str(" ").
		Uint64(7).Str(" ").
		Float64(3.14).Str(" ").
		Bool(true).Str(" ").
		Err(nil).Str(" ").
		Err(errors.New("boom")).Str(" ").
		Print("p", 1).Str(" ").
		Printf("%03d", 5).
		Func(func(w io.Writer) { fmt.Fprint(w, " f") }).
		Endl()

	want := "s -1 42 7 3.14 true <nil> boom p1 005 f\n"
	if buf.String() != want {
		t.Errorf("Expected %q, got: %q", want, buf.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }

func TestStream_WriteErrors(t *testing.T) {
	log := New(Config{Writer: failingWriter{}, Level: InfoLevel, Prefix: true, Clock: fixedClock})

	s := log.Info().Str("a").Int(1)
	if s.WriteError() == nil {
		t.Fatal("Expected accumulated write error")
	}
	if !strings.Contains(s.Close().Error(), "disk full") {
		t.Errorf("Expected 'disk full' from Close, got: %v", s.Close())
	}
	if discarded.WriteError() != nil || discarded.Close() != nil {
		t.Error("The discarded stream must never report errors")
	}
}

func TestLogger_Formatted(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)
	log.SetPrefix(false)

	log.Infof("User %s logged in with ID %d", "alice", 123)
	log.Debugf("hidden %d", 1)
	log.Vf(1, "hidden %d", 2)
	if buf.String() != "User alice logged in with ID 123" {
		t.Errorf("Expected formatted message in output, got: %q", buf.String())
	}

	buf.Reset()
	log.Warnf("w%d", 1)
	log.Errorf("e%d", 2)
	log.Vf(0, "v%d", 3)
	if buf.String() != "w1e2v3" {
		t.Errorf("Expected 'w1e2v3', got: %q", buf.String())
	}
}

func TestLogger_Writer(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)

	fmt.Fprintln(log.Writer(WarnLevel), "from writer")
	fmt.Fprintln(log.Writer(DebugLevel), "hidden")

	if !regexp.MustCompile(`^\nW20260218 13:00:00\.000000 \d+\] from writer$`).MatchString(buf.String()) {
		t.Errorf("Unexpected writer output: %q", buf.String())
	}
}

func TestLogger_Flush(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)
	log.SetPrefix(false)

	log.Info().Str("last")
	if err := log.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if buf.String() != "last\n" {
		t.Errorf("Expected terminated last line, got: %q", buf.String())
	}
}

func TestLogger_Fatal(t *testing.T) {
	var buf, report bytes.Buffer
	log := newTestLogger(&buf)
	log.Update(func(c *Config) { c.FatalWriter = &report })

	// Override osExit to capture exit code instead of actually exiting
	exitCode := -1
	origExit := osExit
	osExit = func(code int) { exitCode = code }
	defer func() { osExit = origExit }()

	s := log.Fatal().Str("fatal error")
	if exitCode != -1 {
		t.Fatal("Process terminated before the line was complete")
	}
	if !s.Fatal() {
		t.Error("Expected a fatal stream")
	}

	s.Endl()
	if exitCode != sink.ExitCode {
		t.Errorf("Expected exit code %d, got %d", sink.ExitCode, exitCode)
	}
	if !strings.HasPrefix(buf.String(), "\nF20260218") {
		t.Errorf("Expected fatal header on the sink, got: %q", buf.String())
	}
	if !strings.HasPrefix(report.String(), "fatal error\n") {
		t.Errorf("Expected 'fatal error' in the report, got: %q", report.String())
	}
	if !strings.Contains(report.String(), "TestLogger_Fatal") {
		t.Errorf("Expected stack trace in the report, got: %q", report.String())
	}
}

func TestLogger_FatalCloseTerminates(t *testing.T) {
	var buf, report bytes.Buffer
	log := newTestLogger(&buf)
	log.Update(func(c *Config) { c.FatalWriter = &report })

	exitCode := -1
	origExit := osExit
	osExit = func(code int) { exitCode = code }
	defer func() { osExit = origExit }()

	s := log.Fatal().Str("no terminator")
	if exitCode != -1 {
		t.Fatal("Process terminated without a terminator")
	}
	_ = s.Close()
	if exitCode != sink.ExitCode {
		t.Errorf("Expected exit code %d after Close, got %d", sink.ExitCode, exitCode)
	}
}

func TestLogger_Fatalf(t *testing.T) {
	var buf, report bytes.Buffer
	log := newTestLogger(&buf)
	log.Update(func(c *Config) { c.FatalWriter = &report })

	exitCode := -1
	origExit := osExit
	osExit = func(code int) { exitCode = code }
	defer func() { osExit = origExit }()

	log.Fatalf("n=%d", 3)
	if exitCode != sink.ExitCode {
		t.Errorf("Expected exit code %d, got %d", sink.ExitCode, exitCode)
	}
	if !strings.HasPrefix(report.String(), "n=3\n") {
		t.Errorf("Expected 'n=3' in the report, got: %q", report.String())
	}
}

func TestLogger_FatalWithoutPrefixDoesNotExit(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)
	log.SetPrefix(false)

	exitCode := -1
	origExit := osExit
	osExit = func(code int) { exitCode = code }
	defer func() { osExit = origExit }()

	log.Fatal().Str("plain").Endl()
	if exitCode != -1 {
		t.Errorf("Unprefixed fatal call must not terminate, got exit %d", exitCode)
	}
	if buf.String() != "plain\n" {
		t.Errorf("Expected 'plain' on the sink, got: %q", buf.String())
	}
}

func TestLogger_FatalSuppressedBySilentThreshold(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)
	log.SetLevel(SilentLevel)

	if s := log.Fatal().Str("x").Endl(); s.Enabled() {
		t.Error("Silent threshold must suppress fatal calls")
	}
}

// recordingWriter keeps every Write call separately
type recordingWriter struct {
	mu     sync.Mutex
	writes []string
}

func (w *recordingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	w.writes = append(w.writes, string(p))
	w.mu.Unlock()
	return len(p), nil
}

func TestLogger_ConcurrentReconfiguration(t *testing.T) {
	w := &recordingWriter{}
	log := New(Config{Writer: w, Level: InfoLevel, Prefix: true})

	textRe := regexp.MustCompile(`^\nI\d{8} \d{2}:\d{2}:\d{2}\.\d{6} \d+ logger_test\.go:\d+\] $`)
	logfmtRe := regexp.MustCompile(`^\nlevel=info time=\S+ thread=\d+ caller=logger_test\.go:\d+ msg=$`)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			if i%2 == 0 {
				log.SetRenderer(formatter.Logfmt)
			} else {
				log.SetRenderer(formatter.Text)
			}
		}
	}()

	var loggers sync.WaitGroup
	for g := 0; g < 8; g++ {
		loggers.Add(1)
		go func() {
			defer loggers.Done()
			for i := 0; i < 200; i++ {
				log.Info().Str("m")
			}
		}()
	}
	loggers.Wait()
	close(stop)
	wg.Wait()

	prefixes := 0
	for _, p := range w.writes {
		if p == "m" {
			continue
		}
		prefixes++
		if !textRe.MatchString(p) && !logfmtRe.MatchString(p) {
			t.Fatalf("Mixed or malformed prefix: %q", p)
		}
	}
	if prefixes != 8*200 {
		t.Errorf("Expected %d prefixes, got %d", 8*200, prefixes)
	}
}

func TestNew_Defaults(t *testing.T) {
	log := New(Config{Level: WarnLevel})
	cfg := log.Config()

	if cfg.Writer != sink.Stderr || cfg.FatalWriter != sink.Stderr {
		t.Error("Expected stderr sinks by default")
	}
	if cfg.Renderer == nil || cfg.Clock == nil {
		t.Error("Expected default renderer and clock")
	}
	if cfg.Level != WarnLevel || cfg.Prefix {
		t.Errorf("Explicit fields must be kept, got %+v", cfg)
	}
	if !log.Enabled(ErrorLevel) || log.Enabled(InfoLevel) {
		t.Error("Enabled disagrees with the threshold")
	}
}
