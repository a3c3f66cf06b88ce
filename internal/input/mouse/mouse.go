package mouse

import (
	"math"
	"sync"
	"time"

	"github.com/dshills/scrollstep/internal/input/scroll"
)

// Button represents a mouse button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft
	// ButtonMiddle is the middle mouse button (scroll wheel click).
	ButtonMiddle
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
	// ButtonWheelUp indicates scroll wheel up.
	ButtonWheelUp
	// ButtonWheelDown indicates scroll wheel down.
	ButtonWheelDown
	// ButtonWheelLeft indicates horizontal scroll left.
	ButtonWheelLeft
	// ButtonWheelRight indicates horizontal scroll right.
	ButtonWheelRight
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	case ButtonWheelUp:
		return "wheel-up"
	case ButtonWheelDown:
		return "wheel-down"
	case ButtonWheelLeft:
		return "wheel-left"
	case ButtonWheelRight:
		return "wheel-right"
	default:
		return "none"
	}
}

// IsWheel returns true if this is a scroll wheel button.
func (b Button) IsWheel() bool {
	return b == ButtonWheelUp || b == ButtonWheelDown ||
		b == ButtonWheelLeft || b == ButtonWheelRight
}

// Modifier is a set of keyboard modifiers held during a mouse event.
type Modifier uint8

// ModNone indicates no modifiers.
const ModNone Modifier = 0

const (
	// ModShift is the Shift key.
	ModShift Modifier = 1 << iota
	// ModCtrl is the Control key.
	ModCtrl
	// ModAlt is the Alt/Option key.
	ModAlt
	// ModMeta is the Meta/Command key.
	ModMeta
)

// HasShift returns true if Shift is held.
func (m Modifier) HasShift() bool { return m&ModShift != 0 }

// HasCtrl returns true if Control is held.
func (m Modifier) HasCtrl() bool { return m&ModCtrl != 0 }

// HasAlt returns true if Alt is held.
func (m Modifier) HasAlt() bool { return m&ModAlt != 0 }

// HasMeta returns true if Meta is held.
func (m Modifier) HasMeta() bool { return m&ModMeta != 0 }

// Position represents a screen coordinate.
type Position struct {
	X int
	Y int
}

// Event represents a mouse input event.
type Event struct {
	// Position is the screen coordinates.
	Position Position

	// Button is the mouse button involved.
	Button Button

	// Modifiers are any keyboard modifiers held during the event.
	Modifiers Modifier

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Config configures mouse handler behavior.
type Config struct {
	// Scroll holds the accumulator constants.
	Scroll scroll.Config

	// LinesPerNotch is the line-unit offset reported for one wheel notch.
	LinesPerNotch float64

	// ShiftHorizontal moves vertical wheel motion to the X axis while
	// Shift is held.
	ShiftHorizontal bool
}

// DefaultLinesPerNotch is the line offset of one wheel notch.
const DefaultLinesPerNotch = 1.0

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Scroll:          scroll.DefaultConfig(),
		LinesPerNotch:   DefaultLinesPerNotch,
		ShiftHorizontal: true,
	}
}

// ValidLinesPerNotch reports whether v is a usable notch size: positive and
// finite.
func ValidLinesPerNotch(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// normalized replaces an unusable notch size with the default. A zero notch
// would turn every wheel event into an empty scroll that clears both axes.
func (c Config) normalized() Config {
	if !ValidLinesPerNotch(c.LinesPerNotch) {
		c.LinesPerNotch = DefaultLinesPerNotch
	}
	return c
}

// Handler turns mouse events into discrete scroll steps.
type Handler struct {
	mu     sync.Mutex
	config Config
	acc    *scroll.Accumulator
}

// HandlerOption configures a Handler.
type HandlerOption func(*handlerOptions)

type handlerOptions struct {
	clock scroll.Clock
}

// WithClock sets the time source of the handler's accumulator.
func WithClock(c scroll.Clock) HandlerOption {
	return func(o *handlerOptions) {
		o.clock = c
	}
}

// NewHandler creates a new mouse handler with the given configuration.
// Invalid fields fall back to their defaults.
func NewHandler(config Config, opts ...HandlerOption) *Handler {
	o := handlerOptions{clock: scroll.SystemClock}
	for _, opt := range opts {
		opt(&o)
	}
	acc := scroll.New(scroll.WithConfig(config.Scroll), scroll.WithClock(o.clock))
	config = config.normalized()
	config.Scroll = acc.Config()
	return &Handler{
		config: config,
		acc:    acc,
	}
}

// Handle processes a mouse event. Non-wheel events produce a zero delta and
// leave the pending scroll untouched.
func (h *Handler) Handle(event Event) scroll.Delta {
	h.mu.Lock()
	defer h.mu.Unlock()

	ev, ok := WheelEvent(event, h.config)
	if !ok {
		return scroll.Delta{}
	}
	return h.acc.Update(ev)
}

// HandleScroll feeds a scroll event from a non-wheel source, such as a
// pixel-precision touchpad, through the same accumulator.
func (h *Handler) HandleScroll(ev scroll.Event) scroll.Delta {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.acc.Update(ev)
}

// Reset clears any pending scroll.
func (h *Handler) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.acc.Reset()
}

// SetConfig replaces the handler configuration and clears pending scroll.
func (h *Handler) SetConfig(config Config) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.acc.SetConfig(config.Scroll)
	h.config = config.normalized()
	h.config.Scroll = h.acc.Config()
}

// Config returns the current configuration.
func (h *Handler) Config() Config {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.config
}

// Pending reports the pending leftover of one axis.
func (h *Handler) Pending(id scroll.AxisID) (float64, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	leftover, _, ok := h.acc.Pending(id)
	return leftover, ok
}
