package backend

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/scrollstep/internal/input/mouse"
)

// Terminal implements Backend using tcell.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex
}

// NewTerminal creates a new terminal backend.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewTerminalWithScreen wraps an existing screen, such as a
// tcell.SimulationScreen.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}

	t.screen.EnableMouse()
	// Focus loss ends a scroll interaction.
	t.screen.EnableFocus()

	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

func (t *Terminal) DrawText(x, y int, s string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	width, height := t.screen.Size()
	if y < 0 || y >= height {
		return
	}
	for _, r := range s {
		if x >= width {
			return
		}
		if x >= 0 {
			t.screen.SetContent(x, y, r, nil, tcell.StyleDefault)
		}
		x++
	}
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

// PollEvent blocks for the next event. It does not hold the lock while
// waiting so that drawing can continue from other goroutines.
func (t *Terminal) PollEvent() Event {
	ev := t.screen.PollEvent()
	if ev == nil {
		return Event{Type: EventNone}
	}
	return convertEvent(ev)
}

// convertEvent converts tcell events to our Event type.
func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{
			Type: EventKey,
			Key:  convertKey(e.Key()),
			Rune: e.Rune(),
			Mod:  convertMod(e.Modifiers()),
		}

	case *tcell.EventMouse:
		x, y := e.Position()
		return Event{
			Type:        EventMouse,
			MouseX:      x,
			MouseY:      y,
			MouseButton: convertMouseButton(e.Buttons()),
			Mod:         convertMod(e.Modifiers()),
		}

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{
			Type:   EventResize,
			Width:  w,
			Height: h,
		}

	case *tcell.EventFocus:
		return Event{
			Type:    EventFocus,
			Focused: e.Focused,
		}

	default:
		return Event{Type: EventNone}
	}
}

// convertKey converts tcell key to our Key type.
func convertKey(k tcell.Key) Key {
	switch k {
	case tcell.KeyRune:
		return KeyRune
	case tcell.KeyEscape:
		return KeyEscape
	case tcell.KeyEnter:
		return KeyEnter
	case tcell.KeyCtrlC:
		return KeyCtrlC
	default:
		return KeyOther
	}
}

// convertMod converts tcell.ModMask to our ModMask.
func convertMod(m tcell.ModMask) ModMask {
	var result ModMask
	if m&tcell.ModShift != 0 {
		result |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= ModMeta
	}
	return result
}

// convertMouseButton converts tcell button mask to our MouseButton.
// Wheel bits win over held buttons.
func convertMouseButton(b tcell.ButtonMask) MouseButton {
	switch {
	case b&tcell.WheelUp != 0:
		return MouseWheelUp
	case b&tcell.WheelDown != 0:
		return MouseWheelDown
	case b&tcell.WheelLeft != 0:
		return MouseWheelLeft
	case b&tcell.WheelRight != 0:
		return MouseWheelRight
	case b&tcell.ButtonPrimary != 0:
		return MouseLeft
	case b&tcell.ButtonMiddle != 0:
		return MouseMiddle
	case b&tcell.ButtonSecondary != 0:
		return MouseRight
	default:
		return MouseNone
	}
}

// MouseEvent converts a backend mouse event into a mouse.Event stamped with
// the given time.
func MouseEvent(ev Event, at time.Time) mouse.Event {
	var mods mouse.Modifier
	if ev.Mod.Has(ModShift) {
		mods |= mouse.ModShift
	}
	if ev.Mod.Has(ModCtrl) {
		mods |= mouse.ModCtrl
	}
	if ev.Mod.Has(ModAlt) {
		mods |= mouse.ModAlt
	}
	if ev.Mod.Has(ModMeta) {
		mods |= mouse.ModMeta
	}

	return mouse.Event{
		Position:  mouse.Position{X: ev.MouseX, Y: ev.MouseY},
		Button:    mouseButton(ev.MouseButton),
		Modifiers: mods,
		Timestamp: at,
	}
}

func mouseButton(b MouseButton) mouse.Button {
	switch b {
	case MouseLeft:
		return mouse.ButtonLeft
	case MouseMiddle:
		return mouse.ButtonMiddle
	case MouseRight:
		return mouse.ButtonRight
	case MouseWheelUp:
		return mouse.ButtonWheelUp
	case MouseWheelDown:
		return mouse.ButtonWheelDown
	case MouseWheelLeft:
		return mouse.ButtonWheelLeft
	case MouseWheelRight:
		return mouse.ButtonWheelRight
	default:
		return mouse.ButtonNone
	}
}
