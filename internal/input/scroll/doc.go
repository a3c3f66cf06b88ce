// Package scroll converts pointer scroll input into discrete integer steps.
//
// Scroll events arrive either as pixel offsets (touchpads, high resolution
// wheels) or as line offsets (classic wheel notches). The package normalizes
// both to line units and accumulates fractional leftovers per axis so that
// one step is emitted for every whole line of scroll.
//
// # Core Types
//
// Event carries the raw offsets and their unit:
//
//	acc := scroll.New()
//	d := acc.Update(scroll.Pixels(0, 30)) // d.Y == 1, 6px pending
//	d = acc.Update(scroll.Pixels(0, 18))  // d.Y == 1, nothing pending
//
// Delta is the per-axis integer result of one Update call.
//
// # Timeout
//
// A leftover is only carried into the next event on the same axis when that
// event arrives within Config.Timeout (100ms by default). A longer pause
// starts a fresh accumulation from zero.
//
// # Axis Crossing
//
// A zero offset on one axis clears that axis. Scrolling purely vertically
// therefore discards any horizontal leftover and vice versa.
//
// # Non-finite Input
//
// NaN and infinite offsets are treated as zero: the axis is cleared and no
// step is emitted.
//
// # Thread Safety
//
// Axis and Accumulator are not safe for concurrent use. Callers sharing an
// Accumulator between goroutines must serialize access; mouse.Handler does
// this for terminal input.
package scroll
