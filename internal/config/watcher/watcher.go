// Package watcher provides file watching for configuration live reload.
//
// The watcher monitors the configuration file for changes and delivers a
// freshly loaded configuration after each burst of modifications.
package watcher

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Errors returned by the watcher.
var (
	// ErrWatcherClosed is returned when operating on a closed watcher.
	ErrWatcherClosed = errors.New("watcher is closed")
)

// Operation represents the type of file operation.
type Operation int

const (
	// OpWrite indicates the file was modified.
	OpWrite Operation = iota

	// OpCreate indicates a new file was created.
	OpCreate

	// OpRemove indicates the file was deleted.
	OpRemove

	// OpRename indicates the file was renamed.
	OpRename
)

// String returns the operation name.
func (op Operation) String() string {
	switch op {
	case OpWrite:
		return "write"
	case OpCreate:
		return "create"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}

// Event represents a settled file change.
type Event struct {
	// Path is the absolute path to the changed file.
	Path string

	// Op is the last operation seen in the burst.
	Op Operation

	// Time is when the last operation was seen.
	Time time.Time
}

// Watcher watches a single file. The parent directory is watched so that
// editors which replace files by rename are still observed.
type Watcher struct {
	path     string
	debounce time.Duration
	fsw      *fsnotify.Watcher

	events chan Event
	errors chan error

	mu     sync.Mutex
	closed bool
	done   chan struct{}
	wg     sync.WaitGroup
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long the file must stay quiet before an event is
// delivered.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// New starts watching path.
func New(path string, opts ...Option) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     absPath,
		debounce: 100 * time.Millisecond,
		fsw:      fsw,
		events:   make(chan Event, 1),
		errors:   make(chan error, 1),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.wg.Add(1)
	go w.loop()

	return w, nil
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Events returns settled change events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns errors reported by fsnotify.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.done)
	w.mu.Unlock()

	err := w.fsw.Close()
	w.wg.Wait()
	close(w.events)
	close(w.errors)
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var (
		pending *Event
		timer   *time.Timer
		fire    <-chan time.Time
	)

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case fsEvent, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(fsEvent.Name) != w.path {
				continue
			}
			op, ok := convertOp(fsEvent.Op)
			if !ok {
				continue
			}
			pending = &Event{Path: w.path, Op: op, Time: time.Now()}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if pending != nil {
				w.send(*pending)
				pending = nil
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}

// send delivers an event, replacing an undelivered older one.
func (w *Watcher) send(ev Event) {
	for {
		select {
		case w.events <- ev:
			return
		case <-w.done:
			return
		default:
		}
		select {
		case <-w.events:
		default:
		}
	}
}

// convertOp converts fsnotify.Op to Operation. Chmod alone is ignored.
func convertOp(op fsnotify.Op) (Operation, bool) {
	switch {
	case op.Has(fsnotify.Remove):
		return OpRemove, true
	case op.Has(fsnotify.Rename):
		return OpRename, true
	case op.Has(fsnotify.Create):
		return OpCreate, true
	case op.Has(fsnotify.Write):
		return OpWrite, true
	default:
		return 0, false
	}
}

// Reload calls load after every settled change until ctx is done or the
// watcher is closed. Removals are skipped since the file will usually be
// recreated. Load errors are passed to onError and the previous configuration
// stays in effect.
func Reload[T any](ctx context.Context, w *Watcher, load func(path string) (T, error), apply func(T), onError func(error)) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.Events():
			if !ok {
				return
			}
			if ev.Op == OpRemove || ev.Op == OpRename {
				continue
			}
			v, err := load(ev.Path)
			if err != nil {
				if onError != nil {
					onError(err)
				}
				continue
			}
			apply(v)
		case err, ok := <-w.Errors():
			if !ok {
				return
			}
			if onError != nil {
				onError(err)
			}
		}
	}
}
