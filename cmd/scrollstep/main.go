// Package main is the entry point for scrollstep.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/dshills/scrollstep/internal/app"
	"github.com/dshills/scrollstep/internal/config"
	"github.com/dshills/scrollstep/internal/config/watcher"
	"github.com/dshills/scrollstep/internal/plugin/lua"
	"github.com/dshills/scrollstep/internal/renderer/backend"
	"github.com/dshills/scrollstep/internal/trace"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// options holds the parsed command line.
type options struct {
	configPath string
	logLevel   string
	hookPath   string
	command    string
	args       []string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, code, ok := parseFlags(args, stdout, stderr)
	if !ok {
		return code
	}

	cfg, err := loadConfig(opts.configPath, opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logger, closeLog, err := newLogger(cfg, opts.command, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	var hook *lua.Hook
	if cfg.Hook.Script != "" {
		hookLog := logger.WithComponent("hook")
		hook, err = lua.NewHook(cfg.Hook.Script, lua.WithPrint(func(s string) {
			hookLog.Info("%s", s)
		}))
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		defer hook.Close()
	}

	switch opts.command {
	case "watch":
		err = watch(opts, cfg, logger, hook)
	case "replay":
		err = replay(opts.args[0], cfg, logger, hook, stdout)
	}

	if err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, stdout, stderr io.Writer) (options, int, bool) {
	var opts options
	var showVersion bool

	fs := flag.NewFlagSet("scrollstep", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	fs.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&opts.hookPath, "hook", "", "Lua script called with every step")
	fs.BoolVar(&showVersion, "version", false, "Show version information")
	fs.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "scrollstep - turn scroll input into discrete line steps\n\n")
		fmt.Fprintf(stderr, "Usage: scrollstep [options] watch\n")
		fmt.Fprintf(stderr, "       scrollstep [options] replay <trace.jsonl>\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  scrollstep watch                      Show steps for terminal wheel input\n")
		fmt.Fprintf(stderr, "  scrollstep -hook steps.lua watch      Call on_step for every step\n")
		fmt.Fprintf(stderr, "  scrollstep replay fling.jsonl         Print the steps of a recorded trace\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, 0, false
		}
		return opts, 2, false
	}

	if showVersion {
		fmt.Fprintf(stdout, "scrollstep %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return opts, 0, false
	}

	switch opts.logLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		return opts, 2, false
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return opts, 2, false
	}
	opts.command, opts.args = rest[0], rest[1:]

	switch {
	case opts.command == "watch" && len(opts.args) == 0:
	case opts.command == "replay" && len(opts.args) == 1:
	default:
		fs.Usage()
		return opts, 2, false
	}

	return opts, 0, true
}

// loadConfig reads the configuration at path and applies command line
// overrides.
func loadConfig(path string, opts options) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.hookPath != "" {
		cfg.Hook.Script = opts.hookPath
	}
	return cfg, nil
}

// newLogger builds the process logger. The terminal belongs to the UI in
// watch mode, so without a log file watch logs are discarded.
func newLogger(cfg config.Config, command string, stderr io.Writer) (*app.Logger, func(), error) {
	out := stderr
	closeFn := func() {}

	switch {
	case cfg.Logging.File != "":
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeFn = func() { _ = f.Close() }
	case command == "watch":
		out = io.Discard
	}

	lc := app.DefaultLoggerConfig()
	lc.Level = app.ParseLogLevel(cfg.Logging.Level)
	lc.Output = out

	logger := app.NewLogger(lc).WithField("session", uuid.NewString())
	return logger, closeFn, nil
}

func watch(opts options, cfg config.Config, logger *app.Logger, hook *lua.Hook) error {
	term, err := backend.NewTerminal()
	if err != nil {
		return fmt.Errorf("create terminal: %w", err)
	}

	appOpts := app.Options{Config: cfg, Logger: logger}
	if hook != nil {
		appOpts.Hook = hook
	}
	application, err := app.New(term, appOpts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if opts.configPath != "" {
		w, err := watcher.New(opts.configPath)
		if err != nil {
			return fmt.Errorf("watch config: %w", err)
		}
		defer w.Close()

		watchLog := logger.WithComponent("watcher")
		go watcher.Reload(ctx, w,
			func(path string) (config.Config, error) { return loadConfig(path, opts) },
			application.ApplyConfig,
			func(err error) { watchLog.Warn("reload %s: %v", w.Path(), err) },
		)
	}

	return application.Run(ctx)
}

func replay(path string, cfg config.Config, logger *app.Logger, hook *lua.Hook, stdout io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open trace: %w", err)
	}
	defer f.Close()

	records, err := trace.Read(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("replaying %d records from %s", len(records), path)

	steps := trace.Replay(records, cfg.ScrollConfig())
	for _, s := range steps {
		if s.Delta.IsZero() {
			continue
		}
		fmt.Fprintf(stdout, "%10.3fms  x=%+d y=%+d\n",
			float64(s.Record.T.Microseconds())/1000, s.Delta.X, s.Delta.Y)
		if hook != nil {
			if err := hook.OnStep(s.Delta); err != nil {
				logger.WithComponent("hook").Warn("%v", app.NewOperationError("call", "on_step", err))
			}
		}
	}

	total := trace.Sum(steps)
	fmt.Fprintf(stdout, "total  x=%+d y=%+d (%d records)\n", total.X, total.Y, len(records))
	return nil
}
