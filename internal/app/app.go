package app

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dshills/scrollstep/internal/config"
	"github.com/dshills/scrollstep/internal/input/mouse"
	"github.com/dshills/scrollstep/internal/input/scroll"
	"github.com/dshills/scrollstep/internal/renderer/backend"
)

// StepHook is notified of every non-zero step delta.
type StepHook interface {
	OnStep(d scroll.Delta) error
}

// Options configures an App.
type Options struct {
	// Config is the initial configuration.
	Config config.Config

	// Logger receives application logs. Defaults to NullLogger.
	Logger *Logger

	// Hook is optional.
	Hook StepHook

	// Clock stamps mouse events. Defaults to scroll.SystemClock.
	Clock scroll.Clock
}

// App is the interactive scroll monitor. It turns terminal wheel input into
// discrete steps and keeps a running position.
type App struct {
	backend backend.Backend
	handler *mouse.Handler
	logger  *Logger
	hook    StepHook
	clock   scroll.Clock

	configs chan config.Config
	running atomic.Bool

	mu       sync.Mutex
	position scroll.Delta
	last     scroll.Delta
	steps    int
}

// New creates an App drawing to b.
func New(b backend.Backend, opts Options) (*App, error) {
	if b == nil {
		return nil, ErrNoBackend
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, NewOperationError("init", "config", err)
	}
	if opts.Logger == nil {
		opts.Logger = NullLogger
	}
	if opts.Clock == nil {
		opts.Clock = scroll.SystemClock
	}

	return &App{
		backend: b,
		handler: mouse.NewHandler(opts.Config.MouseConfig(), mouse.WithClock(opts.Clock)),
		logger:  opts.Logger.WithComponent("app"),
		hook:    opts.Hook,
		clock:   opts.Clock,
		configs: make(chan config.Config, 1),
	}, nil
}

// Position returns the sum of all steps since start or the last reset.
func (a *App) Position() scroll.Delta {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.position
}

// Steps returns the number of non-zero deltas seen.
func (a *App) Steps() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.steps
}

// ApplyConfig schedules cfg to be applied on the event loop. A configuration
// that has not been picked up yet is replaced.
func (a *App) ApplyConfig(cfg config.Config) {
	for {
		select {
		case a.configs <- cfg:
			return
		default:
		}
		select {
		case <-a.configs:
		default:
		}
	}
}

// Run initializes the backend and processes events until ctx is done or the
// user quits. Quitting returns ErrQuit; cancellation returns nil.
func (a *App) Run(ctx context.Context) error {
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer a.running.Store(false)

	if err := a.backend.Init(); err != nil {
		return NewOperationError("init", "backend", err)
	}
	defer a.backend.Shutdown()

	events := make(chan backend.Event)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := a.backend.PollEvent()
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	a.logger.Info("started")
	a.draw()

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("stopped")
			return nil

		case cfg := <-a.configs:
			a.handler.SetConfig(cfg.MouseConfig())
			a.logger.SetLevel(ParseLogLevel(cfg.Logging.Level))
			a.logger.Info("configuration applied: %.1f px/line, timeout %s",
				cfg.Scroll.PixelsPerLine, cfg.ScrollConfig().Timeout)
			a.draw()

		case ev := <-events:
			if err := a.handleEvent(ev); err != nil {
				return err
			}
		}
	}
}

// handleEvent processes a backend event. Returns ErrQuit if the application
// should exit.
func (a *App) handleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventMouse:
		a.handleMouse(ev)
	case backend.EventFocus:
		if !ev.Focused {
			a.handler.Reset()
			a.logger.Debug("focus lost, pending scroll cleared")
		}
	case backend.EventKey:
		return a.handleKey(ev)
	case backend.EventResize:
		a.draw()
	}
	return nil
}

func (a *App) handleMouse(ev backend.Event) {
	d := a.handler.Handle(backend.MouseEvent(ev, a.clock.Now()))
	if d.IsZero() {
		return
	}

	a.mu.Lock()
	a.position = a.position.Add(d)
	a.last = d
	a.steps++
	a.mu.Unlock()

	a.logger.Debug("step x=%+d y=%+d", d.X, d.Y)

	if a.hook != nil {
		if err := a.hook.OnStep(d); err != nil {
			a.logger.WithComponent("hook").Warn("%v", NewOperationError("call", "on_step", err))
		}
	}
	a.draw()
}

func (a *App) handleKey(ev backend.Event) error {
	switch ev.Key {
	case backend.KeyEscape, backend.KeyCtrlC:
		return ErrQuit
	case backend.KeyRune:
		switch ev.Rune {
		case 'q':
			return ErrQuit
		case 'r':
			a.handler.Reset()
			a.mu.Lock()
			a.position = scroll.Delta{}
			a.last = scroll.Delta{}
			a.mu.Unlock()
			a.logger.Debug("reset")
			a.draw()
		}
	}
	return nil
}

func (a *App) draw() {
	a.mu.Lock()
	pos, last, steps := a.position, a.last, a.steps
	a.mu.Unlock()

	px, _ := a.handler.Pending(scroll.AxisX)
	py, _ := a.handler.Pending(scroll.AxisY)
	cfg := a.handler.Config()

	lines := []string{
		"scrollstep: scroll to step, r to reset, q to quit",
		"",
		fmt.Sprintf("position  x=%-6d y=%-6d", pos.X, pos.Y),
		fmt.Sprintf("last      x=%+-6d y=%+-6d", last.X, last.Y),
		fmt.Sprintf("pending   x=%+.2f  y=%+.2f", px, py),
		fmt.Sprintf("steps     %d", steps),
		"",
		fmt.Sprintf("%.1f px/line, timeout %s", cfg.Scroll.PixelsPerLine, cfg.Scroll.Timeout),
	}

	a.backend.Clear()
	for i, line := range lines {
		a.backend.DrawText(0, i, line)
	}
	a.backend.Show()
}
