package scroll

// Unit identifies how the offsets of an Event are measured.
type Unit uint8

const (
	// UnitLines offsets are already in steps.
	UnitLines Unit = iota
	// UnitPixels offsets are divided by Config.PixelsPerLine.
	UnitPixels
)

// String returns a string representation of the unit.
func (u Unit) String() string {
	switch u {
	case UnitLines:
		return "lines"
	case UnitPixels:
		return "pixels"
	default:
		return "unknown"
	}
}

// Event is a single scroll report with one offset per axis.
type Event struct {
	Unit Unit
	X    float64
	Y    float64
}

// Pixels returns a pixel-precision scroll event.
func Pixels(x, y float64) Event {
	return Event{Unit: UnitPixels, X: x, Y: y}
}

// Lines returns a scroll event measured in whole or fractional lines.
func Lines(x, y float64) Event {
	return Event{Unit: UnitLines, X: x, Y: y}
}

// Delta is the number of discrete steps produced on each axis by one update.
type Delta struct {
	X int
	Y int
}

// IsZero returns true if neither axis produced a step.
func (d Delta) IsZero() bool {
	return d.X == 0 && d.Y == 0
}

// Add returns the component-wise sum of d and o.
func (d Delta) Add(o Delta) Delta {
	return Delta{X: d.X + o.X, Y: d.Y + o.Y}
}
