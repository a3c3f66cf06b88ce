package scroll

import "time"

// AxisID selects one of the two axes of an Accumulator.
type AxisID uint8

const (
	// AxisX is the horizontal axis.
	AxisX AxisID = iota
	// AxisY is the vertical axis.
	AxisY
)

// String returns a string representation of the axis.
func (id AxisID) String() string {
	switch id {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return "unknown"
	}
}

// Accumulator turns scroll events into per-axis step counts.
//
// The zero value uses DefaultConfig and SystemClock.
type Accumulator struct {
	config Config
	clock  Clock
	init   bool

	x Axis
	y Axis
}

// Option configures an Accumulator.
type Option func(*Accumulator)

// WithConfig sets the conversion constants. Invalid fields fall back to
// their defaults.
func WithConfig(cfg Config) Option {
	return func(a *Accumulator) {
		a.config = cfg.normalized()
	}
}

// WithClock sets the time source.
func WithClock(c Clock) Option {
	return func(a *Accumulator) {
		if c != nil {
			a.clock = c
		}
	}
}

// New creates an Accumulator with both axes empty.
func New(opts ...Option) *Accumulator {
	a := &Accumulator{
		config: DefaultConfig(),
		clock:  SystemClock,
		init:   true,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Accumulator) ensureInit() {
	if a.init {
		return
	}
	a.config = DefaultConfig()
	a.clock = SystemClock
	a.init = true
}

// Update normalizes ev to line units, feeds each axis and returns the steps
// completed on both. The clock is read once per call.
func (a *Accumulator) Update(ev Event) Delta {
	a.ensureInit()

	x, y := ev.X, ev.Y
	if ev.Unit == UnitPixels {
		x /= a.config.PixelsPerLine
		y /= a.config.PixelsPerLine
	}

	now := a.clock.Now()
	return Delta{
		X: a.x.Update(x, now, a.config.Timeout),
		Y: a.y.Update(y, now, a.config.Timeout),
	}
}

// Reset clears both axes.
func (a *Accumulator) Reset() {
	a.x.Reset()
	a.y.Reset()
}

// Config returns the active conversion constants.
func (a *Accumulator) Config() Config {
	a.ensureInit()
	return a.config
}

// SetConfig replaces the conversion constants and clears both axes, since
// leftovers measured under the old constants are meaningless under the new.
func (a *Accumulator) SetConfig(cfg Config) {
	a.ensureInit()
	a.config = cfg.normalized()
	a.Reset()
}

// Pending reports the stored leftover of one axis. See Axis.Pending.
func (a *Accumulator) Pending(id AxisID) (leftover float64, at time.Time, ok bool) {
	switch id {
	case AxisX:
		return a.x.Pending()
	case AxisY:
		return a.y.Pending()
	default:
		return 0, time.Time{}, false
	}
}
