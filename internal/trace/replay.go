package trace

import (
	"time"

	"github.com/dshills/scrollstep/internal/input/scroll"
)

// Clock is a scroll.Clock that reports trace time.
type Clock struct {
	base time.Time
	now  time.Duration
}

// NewClock returns a clock positioned at the start of a trace beginning at
// base.
func NewClock(base time.Time) *Clock {
	return &Clock{base: base}
}

// Now returns base plus the current trace offset.
func (c *Clock) Now() time.Time {
	return c.base.Add(c.now)
}

// Set moves the clock to offset t.
func (c *Clock) Set(t time.Duration) {
	c.now = t
}

// Step is the result of one replayed record.
type Step struct {
	Record Record
	Delta  scroll.Delta
}

// Replay feeds records through a fresh accumulator configured with cfg and
// returns one Step per record.
func Replay(records []Record, cfg scroll.Config) []Step {
	clock := NewClock(time.Time{})
	acc := scroll.New(scroll.WithConfig(cfg), scroll.WithClock(clock))

	steps := make([]Step, 0, len(records))
	for _, rec := range records {
		clock.Set(rec.T)
		steps = append(steps, Step{Record: rec, Delta: acc.Update(rec.Event)})
	}
	return steps
}

// Sum returns the total delta of steps.
func Sum(steps []Step) scroll.Delta {
	var total scroll.Delta
	for _, s := range steps {
		total = total.Add(s.Delta)
	}
	return total
}
