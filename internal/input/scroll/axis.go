package scroll

import (
	"math"
	"time"
)

// axisState is either empty or accumulating.
type axisState interface {
	axisState()
}

// empty means no leftover is pending.
type empty struct{}

// accumulating holds the leftover of the last non-zero update.
// |leftover| < 1 always holds.
type accumulating struct {
	leftover float64
	at       time.Time
}

func (empty) axisState()        {}
func (accumulating) axisState() {}

// Axis accumulates line-unit deltas on a single axis and emits whole steps.
// The zero value is an empty axis ready for use.
type Axis struct {
	state axisState
}

// Update adds delta (in line units) observed at now and returns the number of
// whole steps it completes. The integer part is truncated toward zero and the
// fractional remainder is kept for the next update.
//
// A pending leftover older than timeout is dropped instead of merged. A zero
// or non-finite delta clears the axis and returns 0.
func (a *Axis) Update(delta float64, now time.Time, timeout time.Duration) int {
	if delta == 0 || math.IsNaN(delta) || math.IsInf(delta, 0) {
		a.state = empty{}
		return 0
	}

	var carried float64
	switch s := a.state.(type) {
	case accumulating:
		if now.Sub(s.at) <= timeout {
			carried = s.leftover
		}
	case empty, nil:
	}

	whole, frac := math.Modf(carried + delta)
	a.state = accumulating{leftover: frac, at: now}
	return toInt(whole)
}

// Reset discards any pending leftover.
func (a *Axis) Reset() {
	a.state = empty{}
}

// Pending reports the stored leftover and the time it was recorded.
// ok is false when the axis is empty. A pending value may already be stale;
// staleness is only decided by the next Update.
func (a *Axis) Pending() (leftover float64, at time.Time, ok bool) {
	s, ok := a.state.(accumulating)
	if !ok {
		return 0, time.Time{}, false
	}
	return s.leftover, s.at, true
}

// toInt converts an integral float to int, clamping at the int range.
func toInt(v float64) int {
	switch {
	case v >= math.MaxInt:
		return math.MaxInt
	case v <= math.MinInt:
		return math.MinInt
	default:
		return int(v)
	}
}
