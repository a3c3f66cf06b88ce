package scroll

import (
	"errors"
	"math"
	"testing"
	"time"
)

// manualClock is a Clock advanced explicitly by tests.
type manualClock struct {
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAxisZeroDeltaClears(t *testing.T) {
	clock := newManualClock()
	var axis Axis

	if got := axis.Update(0.5, clock.Now(), DefaultTimeout); got != 0 {
		t.Fatalf("Update(0.5) = %d, want 0", got)
	}
	if got := axis.Update(0, clock.Now(), DefaultTimeout); got != 0 {
		t.Errorf("Update(0) = %d, want 0", got)
	}
	if _, _, ok := axis.Pending(); ok {
		t.Error("Pending() ok = true after zero delta, want false")
	}

	// Same as a fresh axis: 0.5 alone does not complete a step.
	if got := axis.Update(0.5, clock.Now(), DefaultTimeout); got != 0 {
		t.Errorf("Update(0.5) after clear = %d, want 0", got)
	}
}

func TestAxisMergesWithinTimeout(t *testing.T) {
	clock := newManualClock()
	var axis Axis

	if got := axis.Update(0.6, clock.Now(), DefaultTimeout); got != 0 {
		t.Fatalf("first Update(0.6) = %d, want 0", got)
	}

	clock.Advance(50 * time.Millisecond)
	if got := axis.Update(0.6, clock.Now(), DefaultTimeout); got != 1 {
		t.Errorf("second Update(0.6) = %d, want 1", got)
	}

	leftover, at, ok := axis.Pending()
	if !ok {
		t.Fatal("Pending() ok = false, want true")
	}
	if !approxEqual(leftover, 0.2) {
		t.Errorf("leftover = %v, want 0.2", leftover)
	}
	if !at.Equal(clock.Now()) {
		t.Errorf("at = %v, want %v", at, clock.Now())
	}
}

func TestAxisTimeoutBoundary(t *testing.T) {
	tests := []struct {
		name  string
		gap   time.Duration
		steps int
	}{
		{"well within", 10 * time.Millisecond, 1},
		{"exactly at timeout", DefaultTimeout, 1},
		{"just after timeout", DefaultTimeout + time.Nanosecond, 0},
		{"long pause", time.Second, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := newManualClock()
			var axis Axis

			if got := axis.Update(0.9, clock.Now(), DefaultTimeout); got != 0 {
				t.Fatalf("first Update(0.9) = %d, want 0", got)
			}
			clock.Advance(tt.gap)
			if got := axis.Update(0.9, clock.Now(), DefaultTimeout); got != tt.steps {
				t.Errorf("second Update(0.9) = %d, want %d", got, tt.steps)
			}
		})
	}
}

func TestAxisStaleLeftoverReplaced(t *testing.T) {
	clock := newManualClock()
	var axis Axis

	axis.Update(0.9, clock.Now(), DefaultTimeout)
	clock.Advance(200 * time.Millisecond)
	axis.Update(0.3, clock.Now(), DefaultTimeout)

	leftover, _, _ := axis.Pending()
	if !approxEqual(leftover, 0.3) {
		t.Errorf("leftover = %v, want 0.3 (stale 0.9 dropped)", leftover)
	}
}

func TestAxisNegativeTruncatesTowardZero(t *testing.T) {
	clock := newManualClock()
	var axis Axis

	if got := axis.Update(-1.75, clock.Now(), DefaultTimeout); got != -1 {
		t.Errorf("Update(-1.75) = %d, want -1", got)
	}
	leftover, _, _ := axis.Pending()
	if !approxEqual(leftover, -0.75) {
		t.Errorf("leftover = %v, want -0.75", leftover)
	}

	if got := axis.Update(-0.25, clock.Now(), DefaultTimeout); got != -1 {
		t.Errorf("Update(-0.25) = %d, want -1", got)
	}
}

func TestAxisDirectionReversal(t *testing.T) {
	clock := newManualClock()
	var axis Axis

	axis.Update(0.75, clock.Now(), DefaultTimeout)
	if got := axis.Update(-1.5, clock.Now(), DefaultTimeout); got != 0 {
		t.Errorf("Update(-1.5) after 0.75 = %d, want 0", got)
	}
	leftover, _, _ := axis.Pending()
	if !approxEqual(leftover, -0.75) {
		t.Errorf("leftover = %v, want -0.75", leftover)
	}
}

func TestAxisNonFinite(t *testing.T) {
	for _, delta := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		clock := newManualClock()
		var axis Axis

		axis.Update(0.5, clock.Now(), DefaultTimeout)
		if got := axis.Update(delta, clock.Now(), DefaultTimeout); got != 0 {
			t.Errorf("Update(%v) = %d, want 0", delta, got)
		}
		if _, _, ok := axis.Pending(); ok {
			t.Errorf("Pending() ok = true after Update(%v), want false", delta)
		}
	}
}

func TestAxisHugeDeltaClamps(t *testing.T) {
	var axis Axis
	now := time.Now()

	if got := axis.Update(1e300, now, DefaultTimeout); got != math.MaxInt {
		t.Errorf("Update(1e300) = %d, want MaxInt", got)
	}
	if got := axis.Update(-1e300, now, DefaultTimeout); got != math.MinInt {
		t.Errorf("Update(-1e300) = %d, want MinInt", got)
	}
}

func TestAxisReset(t *testing.T) {
	var axis Axis
	now := time.Now()

	axis.Update(0.8, now, DefaultTimeout)
	axis.Reset()
	axis.Reset()

	if _, _, ok := axis.Pending(); ok {
		t.Error("Pending() ok = true after Reset, want false")
	}
	if got := axis.Update(0.8, now, DefaultTimeout); got != 0 {
		t.Errorf("Update(0.8) after Reset = %d, want 0", got)
	}
}

func TestAccumulatorLinesPassThrough(t *testing.T) {
	clock := newManualClock()
	acc := New(WithClock(clock))

	got := acc.Update(Lines(2.0, -1.0))
	want := Delta{X: 2, Y: -1}
	if got != want {
		t.Errorf("Update(Lines(2, -1)) = %+v, want %+v", got, want)
	}

	for _, id := range []AxisID{AxisX, AxisY} {
		leftover, _, ok := acc.Pending(id)
		if !ok {
			t.Errorf("Pending(%s) ok = false, want true", id)
		}
		if leftover != 0 {
			t.Errorf("Pending(%s) leftover = %v, want 0", id, leftover)
		}
	}
}

func TestAccumulatorPixelsClearOtherAxis(t *testing.T) {
	clock := newManualClock()
	acc := New(WithClock(clock))

	acc.Update(Pixels(0, 12))
	if _, _, ok := acc.Pending(AxisY); !ok {
		t.Fatal("Pending(y) ok = false after 12px, want true")
	}

	got := acc.Update(Pixels(48, 0))
	want := Delta{X: 2, Y: 0}
	if got != want {
		t.Errorf("Update(Pixels(48, 0)) = %+v, want %+v", got, want)
	}

	if _, _, ok := acc.Pending(AxisY); ok {
		t.Error("Pending(y) ok = true after zero y offset, want false")
	}
	leftover, at, ok := acc.Pending(AxisX)
	if !ok || leftover != 0 {
		t.Errorf("Pending(x) = (%v, %v), want (0, true)", leftover, ok)
	}
	if !at.Equal(clock.Now()) {
		t.Errorf("Pending(x) at = %v, want %v", at, clock.Now())
	}
}

func TestAccumulatorPixelAccumulation(t *testing.T) {
	clock := newManualClock()
	acc := New(WithClock(clock))

	if got := acc.Update(Pixels(0, 30)); got.Y != 1 {
		t.Errorf("Update(30px).Y = %d, want 1", got.Y)
	}
	clock.Advance(16 * time.Millisecond)
	if got := acc.Update(Pixels(0, 18)); got.Y != 1 {
		t.Errorf("Update(18px).Y = %d, want 1", got.Y)
	}
	leftover, _, _ := acc.Pending(AxisY)
	if leftover != 0 {
		t.Errorf("leftover = %v, want 0", leftover)
	}
}

func TestAccumulatorCumulativeMatchesTruncatedTotal(t *testing.T) {
	// Multiples of 3px are exact eighths of a line.
	deltas := []float64{3, 6, 9, 12, 15, 21, 27, 3, 48, 9, 33, 6}

	clock := newManualClock()
	acc := New(WithClock(clock))

	var total float64
	var emitted int
	for i, px := range deltas {
		clock.Advance(8 * time.Millisecond)
		total += px
		emitted += acc.Update(Pixels(0, px)).Y

		if want := int(math.Trunc(total / DefaultPixelsPerLine)); emitted != want {
			t.Fatalf("after event %d: emitted %d, want %d", i, emitted, want)
		}
	}

	if want := int(total / DefaultPixelsPerLine); emitted != want {
		t.Errorf("emitted %d steps, want %d", emitted, want)
	}
}

func TestAccumulatorResetMatchesFresh(t *testing.T) {
	events := []Event{Pixels(10, 0), Pixels(0, -30), Lines(0.5, 0.5), Lines(-3, 0)}

	for _, ev := range events {
		clock := newManualClock()
		primed := New(WithClock(clock))
		primed.Update(Pixels(20, 20))
		primed.Reset()

		fresh := New(WithClock(clock))

		if got, want := primed.Update(ev), fresh.Update(ev); got != want {
			t.Errorf("after Reset Update(%+v) = %+v, fresh = %+v", ev, got, want)
		}
	}
}

func TestAccumulatorReadsClockOnce(t *testing.T) {
	var calls int
	base := time.Now()
	clock := ClockFunc(func() time.Time {
		calls++
		return base
	})

	acc := New(WithClock(clock))
	acc.Update(Pixels(12, 12))

	if calls != 1 {
		t.Errorf("clock read %d times, want 1", calls)
	}
}

func TestAccumulatorZeroValue(t *testing.T) {
	var acc Accumulator

	if got := acc.Update(Pixels(0, 48)); got.Y != 2 {
		t.Errorf("zero value Update(48px).Y = %d, want 2", got.Y)
	}
	if cfg := acc.Config(); cfg != DefaultConfig() {
		t.Errorf("zero value Config() = %+v, want %+v", cfg, DefaultConfig())
	}
}

func TestAccumulatorCustomConfig(t *testing.T) {
	clock := newManualClock()
	acc := New(WithClock(clock), WithConfig(Config{PixelsPerLine: 10, Timeout: 20 * time.Millisecond}))

	if got := acc.Update(Pixels(0, 25)); got.Y != 2 {
		t.Errorf("Update(25px at 10px/line).Y = %d, want 2", got.Y)
	}
	clock.Advance(30 * time.Millisecond)
	if got := acc.Update(Pixels(0, 5)); got.Y != 0 {
		t.Errorf("Update(5px) after custom timeout = %d, want 0", got.Y)
	}
}

func TestAccumulatorSetConfigResets(t *testing.T) {
	clock := newManualClock()
	acc := New(WithClock(clock))
	acc.Update(Pixels(12, 12))

	acc.SetConfig(Config{PixelsPerLine: 12, Timeout: DefaultTimeout})

	if _, _, ok := acc.Pending(AxisX); ok {
		t.Error("Pending(x) ok = true after SetConfig, want false")
	}
	if got := acc.Update(Pixels(12, 0)); got.X != 1 {
		t.Errorf("Update(12px at 12px/line).X = %d, want 1", got.X)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{"default", DefaultConfig(), nil},
		{"zero timeout", Config{PixelsPerLine: 24}, nil},
		{"zero pixels", Config{PixelsPerLine: 0, Timeout: DefaultTimeout}, ErrInvalidPixelsPerLine},
		{"negative pixels", Config{PixelsPerLine: -1, Timeout: DefaultTimeout}, ErrInvalidPixelsPerLine},
		{"nan pixels", Config{PixelsPerLine: math.NaN(), Timeout: DefaultTimeout}, ErrInvalidPixelsPerLine},
		{"negative timeout", Config{PixelsPerLine: 24, Timeout: -time.Millisecond}, ErrInvalidTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("Validate() error type = %T, want *ConfigError", err)
			}
		})
	}
}

func TestWithConfigNormalizesInvalid(t *testing.T) {
	acc := New(WithConfig(Config{PixelsPerLine: -5, Timeout: -1}))

	if cfg := acc.Config(); cfg != DefaultConfig() {
		t.Errorf("Config() = %+v, want defaults %+v", cfg, DefaultConfig())
	}
}

func TestUnitString(t *testing.T) {
	tests := []struct {
		unit     Unit
		expected string
	}{
		{UnitLines, "lines"},
		{UnitPixels, "pixels"},
		{Unit(9), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.unit.String(); got != tt.expected {
			t.Errorf("Unit(%d).String() = %q, want %q", tt.unit, got, tt.expected)
		}
	}
}

func TestDeltaHelpers(t *testing.T) {
	if !(Delta{}).IsZero() {
		t.Error("Delta{}.IsZero() = false, want true")
	}
	if (Delta{Y: -1}).IsZero() {
		t.Error("Delta{Y: -1}.IsZero() = true, want false")
	}
	if got := (Delta{X: 1, Y: -2}).Add(Delta{X: 3, Y: 1}); got != (Delta{X: 4, Y: -1}) {
		t.Errorf("Add = %+v, want {4 -1}", got)
	}
}
