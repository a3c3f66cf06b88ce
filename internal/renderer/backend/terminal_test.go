package backend

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/scrollstep/internal/input/mouse"
)

func TestConvertMouseEvent(t *testing.T) {
	tests := []struct {
		name   string
		button tcell.ButtonMask
		want   MouseButton
	}{
		{"wheel up", tcell.WheelUp, MouseWheelUp},
		{"wheel down", tcell.WheelDown, MouseWheelDown},
		{"wheel left", tcell.WheelLeft, MouseWheelLeft},
		{"wheel right", tcell.WheelRight, MouseWheelRight},
		{"primary", tcell.ButtonPrimary, MouseLeft},
		{"secondary", tcell.ButtonSecondary, MouseRight},
		{"middle", tcell.ButtonMiddle, MouseMiddle},
		{"wheel while held", tcell.ButtonPrimary | tcell.WheelDown, MouseWheelDown},
		{"none", tcell.ButtonNone, MouseNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := convertEvent(tcell.NewEventMouse(3, 7, tt.button, tcell.ModShift))
			if ev.Type != EventMouse {
				t.Fatalf("Type = %s, want mouse", ev.Type)
			}
			if ev.MouseButton != tt.want {
				t.Errorf("MouseButton = %d, want %d", ev.MouseButton, tt.want)
			}
			if ev.MouseX != 3 || ev.MouseY != 7 {
				t.Errorf("position = (%d, %d), want (3, 7)", ev.MouseX, ev.MouseY)
			}
			if !ev.Mod.Has(ModShift) {
				t.Error("Mod missing Shift")
			}
		})
	}
}

func TestConvertOtherEvents(t *testing.T) {
	key := convertEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone))
	if key.Type != EventKey || key.Key != KeyRune || key.Rune != 'q' {
		t.Errorf("key event = %+v, want rune q", key)
	}

	esc := convertEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if esc.Key != KeyEscape {
		t.Errorf("Key = %d, want KeyEscape", esc.Key)
	}

	resize := convertEvent(tcell.NewEventResize(80, 24))
	if resize.Type != EventResize || resize.Width != 80 || resize.Height != 24 {
		t.Errorf("resize event = %+v, want 80x24", resize)
	}

	focus := convertEvent(tcell.NewEventFocus(false))
	if focus.Type != EventFocus || focus.Focused {
		t.Errorf("focus event = %+v, want focus lost", focus)
	}

	for _, ev := range []Event{resize, focus} {
		if ev.Key != KeyNone {
			t.Errorf("%s event Key = %d, want KeyNone", ev.Type, ev.Key)
		}
	}

	interrupt := convertEvent(tcell.NewEventInterrupt(nil))
	if interrupt.Type != EventNone {
		t.Errorf("interrupt Type = %s, want none", interrupt.Type)
	}
}

func TestMouseEvent(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ev := Event{
		Type:        EventMouse,
		MouseX:      4,
		MouseY:      2,
		MouseButton: MouseWheelLeft,
		Mod:         ModCtrl | ModShift,
	}

	got := MouseEvent(ev, at)
	if got.Button != mouse.ButtonWheelLeft {
		t.Errorf("Button = %s, want wheel-left", got.Button)
	}
	if got.Position != (mouse.Position{X: 4, Y: 2}) {
		t.Errorf("Position = %+v, want {4 2}", got.Position)
	}
	if !got.Modifiers.HasCtrl() || !got.Modifiers.HasShift() || got.Modifiers.HasAlt() {
		t.Errorf("Modifiers = %08b, want ctrl|shift", got.Modifiers)
	}
	if !got.Timestamp.Equal(at) {
		t.Errorf("Timestamp = %v, want %v", got.Timestamp, at)
	}
}

func TestTerminalSimulation(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer term.Shutdown()

	screen.SetSize(10, 2)
	term.DrawText(0, 0, "steps 12345")
	term.DrawText(0, 5, "offscreen")
	term.Show()

	cells, width, _ := screen.GetContents()
	var line []rune
	for x := 0; x < width; x++ {
		line = append(line, cells[x].Runes...)
	}
	if got := string(line); got != "steps 1234" {
		t.Errorf("row 0 = %q, want %q", got, "steps 1234")
	}

	screen.InjectMouse(1, 1, tcell.WheelDown, tcell.ModNone)
	ev := term.PollEvent()
	for i := 0; i < 5 && ev.Type != EventMouse; i++ {
		ev = term.PollEvent()
	}
	if ev.Type != EventMouse || ev.MouseButton != MouseWheelDown {
		t.Errorf("PollEvent = %+v, want wheel-down mouse event", ev)
	}
}
