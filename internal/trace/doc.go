// Package trace reads recorded scroll input and replays it through a scroll
// accumulator.
//
// A trace is a JSON-lines file. Each line is one event with its offset from
// the start of the recording in milliseconds:
//
//	# touchpad fling
//	{"t": 0,  "unit": "pixels", "x": 0, "y": 10.5}
//	{"t": 16, "unit": "pixels", "x": 0, "y": 14}
//	{"t": 400, "unit": "lines", "x": 0, "y": -1}
//
// Blank lines and lines starting with # are ignored. Replay drives the
// accumulator with a clock that reads the trace timestamps, so the result
// depends only on the file.
package trace
