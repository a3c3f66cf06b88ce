package scroll

import "time"

// Clock supplies the current time to an Accumulator.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time {
	return f()
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock reads the wall clock. The returned times carry a monotonic
// reading, so elapsed time comparisons are unaffected by clock adjustments.
var SystemClock Clock = systemClock{}
