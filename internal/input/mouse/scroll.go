package mouse

import "github.com/dshills/scrollstep/internal/input/scroll"

// ScrollDirection represents the direction of a wheel event.
type ScrollDirection uint8

const (
	// ScrollNone indicates no scroll.
	ScrollNone ScrollDirection = iota
	// ScrollUp indicates scrolling up (content moves down).
	ScrollUp
	// ScrollDown indicates scrolling down (content moves up).
	ScrollDown
	// ScrollLeft indicates scrolling left.
	ScrollLeft
	// ScrollRight indicates scrolling right.
	ScrollRight
)

// String returns a string representation of the scroll direction.
func (d ScrollDirection) String() string {
	switch d {
	case ScrollUp:
		return "up"
	case ScrollDown:
		return "down"
	case ScrollLeft:
		return "left"
	case ScrollRight:
		return "right"
	default:
		return "none"
	}
}

// ButtonToScrollDirection converts a wheel button to a direction.
func ButtonToScrollDirection(b Button) ScrollDirection {
	switch b {
	case ButtonWheelUp:
		return ScrollUp
	case ButtonWheelDown:
		return ScrollDown
	case ButtonWheelLeft:
		return ScrollLeft
	case ButtonWheelRight:
		return ScrollRight
	default:
		return ScrollNone
	}
}

// WheelEvent converts a wheel button event into a line-unit scroll event.
// It returns false if the event is not a wheel event.
func WheelEvent(event Event, config Config) (scroll.Event, bool) {
	direction := ButtonToScrollDirection(event.Button)
	if direction == ScrollNone {
		return scroll.Event{}, false
	}

	if config.ShiftHorizontal && event.Modifiers.HasShift() {
		switch direction {
		case ScrollUp:
			direction = ScrollRight
		case ScrollDown:
			direction = ScrollLeft
		}
	}

	n := config.LinesPerNotch
	switch direction {
	case ScrollUp:
		return scroll.Lines(0, n), true
	case ScrollDown:
		return scroll.Lines(0, -n), true
	case ScrollRight:
		return scroll.Lines(n, 0), true
	default:
		return scroll.Lines(-n, 0), true
	}
}
