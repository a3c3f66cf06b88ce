package lua

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/scrollstep/internal/input/scroll"
)

// StepFunc is the global a hook script defines to receive steps.
const StepFunc = "on_step"

// Hook passes scroll steps to a Lua script.
type Hook struct {
	path  string
	state *State
}

// NewHook loads the script at path into a new sandboxed state.
func NewHook(path string, opts ...StateOption) (*Hook, error) {
	state := NewState(opts...)
	if err := state.DoFile(path); err != nil {
		state.Close()
		return nil, fmt.Errorf("load hook %s: %w", path, err)
	}
	return &Hook{path: path, state: state}, nil
}

// Path returns the script path.
func (h *Hook) Path() string {
	return h.path
}

// OnStep calls on_step(x, y). A script without on_step ignores steps.
func (h *Hook) OnStep(d scroll.Delta) error {
	if h.state.IsClosed() {
		return ErrStateClosed
	}
	if !h.state.HasFunc(StepFunc) {
		return nil
	}
	return h.state.Call(StepFunc, lua.LNumber(d.X), lua.LNumber(d.Y))
}

// Close releases the Lua state.
func (h *Hook) Close() error {
	return h.state.Close()
}
