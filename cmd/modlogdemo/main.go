// Command modlogdemo walks through the modlog API: global calls, verbose
// calls, object-scoped loggers with their own sink and renderer, and
// optionally a fatal call.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/philipp01105/modlog/core"
	"github.com/philipp01105/modlog/formatter"
	"github.com/philipp01105/modlog/logger"
	"github.com/philipp01105/modlog/sink"
)

const (
	levelFlagName      = "level"
	verbosityFlagName  = "v"
	prefixFlagName     = "prefix"
	formatFlagName     = "format"
	iterationsFlagName = "iterations"
	fatalFlagName      = "fatal"
	coarseFlagName     = "coarse-clock"
)

func main() {
	if err := run(os.Args, sink.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

// run executes the demo with args, logging to out
func run(args []string, out io.Writer) error {
	return buildApp(out).Run(args)
}

func buildApp(out io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "modlogdemo"
	app.Usage = "demonstrate the modlog logging facade"
	app.HideVersion = true
	app.Writer = out
	app.ErrWriter = out

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   levelFlagName,
			Value:  "info",
			Usage:  "lowest visible level: 'silent|debug|info|warn|error|fatal'",
			EnvVar: logger.EnvLevel,
		},
		cli.IntFlag{
			Name:   verbosityFlagName,
			Value:  0,
			Usage:  "ceiling for verbose calls; V(n) is shown iff n <= v",
			EnvVar: logger.EnvVerbosity,
		},
		cli.BoolTFlag{
			Name:   prefixFlagName,
			Usage:  "render the header in front of every call",
			EnvVar: logger.EnvPrefix,
		},
		cli.StringFlag{
			Name:   formatFlagName,
			Value:  logger.FormatAuto,
			Usage:  "header format: 'auto|text|color|json|logfmt'",
			EnvVar: logger.EnvFormat,
		},
		cli.IntFlag{
			Name:  iterationsFlagName,
			Value: 3,
			Usage: "number of loop iterations logged by the worker",
		},
		cli.BoolFlag{
			Name:  fatalFlagName,
			Usage: "end the demo with a fatal call",
		},
		cli.BoolFlag{
			Name:  coarseFlagName,
			Usage: "stamp headers from a cached clock refreshed every 500µs",
		},
	}

	app.Before = func(c *cli.Context) error {
		return configure(c, out)
	}
	app.Action = func(c *cli.Context) error {
		return demo(app.Name, out, c.Int(iterationsFlagName), c.Bool(fatalFlagName))
	}
	return app
}

// configure applies the flags to the global logger
func configure(c *cli.Context, out io.Writer) error {
	level, err := logger.ParseLevel(c.String(levelFlagName))
	if err != nil {
		return errors.Wrapf(err, "invalid --%s", levelFlagName)
	}
	r, err := logger.RendererFor(c.String(formatFlagName), out)
	if err != nil {
		return errors.Wrapf(err, "invalid --%s", formatFlagName)
	}

	logger.Configure(func(cfg *logger.Config) {
		cfg.Writer = out
		cfg.Level = level
		cfg.Verbosity = c.Int(verbosityFlagName)
		cfg.Prefix = c.BoolT(prefixFlagName)
		cfg.Renderer = r
		if c.Bool(coarseFlagName) {
			cfg.Clock = core.CoarseClock()
		}
	})
	return nil
}

// worker logs to its own capture sink, rendered as JSON
type worker struct {
	name  string
	out   *sink.Capture
	level logger.Level
}

func (w *worker) LogConfig() logger.Config {
	return logger.Config{
		Writer:   w.out,
		Level:    w.level,
		Prefix:   true,
		Renderer: formatter.JSON,
	}
}

func (w *worker) loop(n int) {
	for i := 0; i < n; i++ {
		logger.LogFor(logger.InfoLevel, w).Str(w.name).Str(" i=").Int(i).Str(formatter.JSONClose)
	}
	logger.LogFor(logger.DebugLevel, w).Str("dropped below the worker threshold").Str(formatter.JSONClose)
	logger.LogFor(logger.WarnLevel, w).Str("finished loop!").Str(formatter.JSONClose)
}

// auditor shares the global sink but always renders logfmt
type auditor struct{}

func (auditor) LogConfig() logger.Config {
	return logger.Config{Level: logger.InfoLevel, Prefix: true, Renderer: formatter.Logfmt}
}

func demo(appName string, out io.Writer, iterations int, fatal bool) error {
	logger.StartLogs(appName)

	logger.Log(logger.InfoLevel).Str("Hello World!")
	logger.Error().Str("Hello World! Again...")
	logger.Debug().Str("debug details (hidden unless --level=debug)")
	logger.V(0).Str("Hello World! (this is INFO too)")
	logger.V(1).Str("verbose: shown with --v=1")
	logger.V(2).Lazy(func() string { return "very verbose: shown with --v=2" })

	w := &worker{name: "worker", out: sink.NewCapture(), level: logger.InfoLevel}
	defer w.out.Close()
	w.loop(iterations)

	logger.Info().Str("worker output follows")
	if _, err := io.WriteString(out, w.out.Drain()); err != nil {
		return errors.Wrap(err, "copying worker output")
	}

	logger.LogFor(logger.InfoLevel, auditor{}).Str("audit trail recorded")

	if fatal {
		logger.Fatal().Str("n=").Int(3).Endl()
	}
	return errors.Wrap(logger.StopLogs(), "flushing logs")
}
