// Package mouse provides mouse wheel input handling for scrollstep.
//
// The mouse package translates raw wheel button events, as reported by a
// terminal, into scroll events and feeds them through a scroll.Accumulator
// to produce discrete step counts.
//
// # Core Types
//
// Event represents a raw mouse input event with position, button and
// modifiers:
//
//	event := mouse.Event{
//	    Position:  mouse.Position{X: 10, Y: 4},
//	    Button:    mouse.ButtonWheelDown,
//	    Timestamp: time.Now(),
//	}
//
// # Handler
//
// Handler owns an accumulator and serializes access to it:
//
//	handler := mouse.NewHandler(mouse.DefaultConfig())
//	delta := handler.Handle(event)
//	if !delta.IsZero() {
//	    advance(delta)
//	}
//
// # Wheel Mapping
//
// Each wheel notch is reported as a line-unit scroll event:
//
//   - Wheel up: +Y
//   - Wheel down: -Y
//   - Wheel right: +X
//   - Wheel left: -X
//   - Shift+wheel up/down: moved to the X axis (when ShiftHorizontal is set)
//
// # Thread Safety
//
// Handler is safe for concurrent use. All state mutations are properly
// synchronized with mutex protection.
package mouse
