package trace

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/dshills/scrollstep/internal/input/scroll"
)

// maxLine bounds a single trace line.
const maxLine = 64 * 1024

// Record is one event of a trace.
type Record struct {
	// T is the offset from the start of the trace.
	T     time.Duration
	Event scroll.Event
}

// ParseError reports an invalid trace line.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("trace line %d: %s", e.Line, e.Msg)
}

// Read parses a JSON-lines trace.
func Read(r io.Reader) ([]Record, error) {
	var records []Record

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLine)

	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		rec, err := parseRecord(text)
		if err != nil {
			return nil, &ParseError{Line: line, Msg: err.Error()}
		}
		if n := len(records); n > 0 && rec.T < records[n-1].T {
			return nil, &ParseError{
				Line: line,
				Msg:  fmt.Sprintf("timestamp %s before previous %s", rec.T, records[n-1].T),
			}
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}
	return records, nil
}

func parseRecord(text string) (Record, error) {
	if !gjson.Valid(text) {
		return Record{}, fmt.Errorf("invalid JSON")
	}
	obj := gjson.Parse(text)
	if !obj.IsObject() {
		return Record{}, fmt.Errorf("expected object, got %s", obj.Type)
	}

	t, err := number(obj, "t", true)
	if err != nil {
		return Record{}, err
	}
	if t < 0 {
		return Record{}, fmt.Errorf("negative timestamp %v", t)
	}
	ns := t * float64(time.Millisecond)
	if ns >= float64(math.MaxInt64) {
		return Record{}, fmt.Errorf("timestamp %v ms out of range", t)
	}
	x, err := number(obj, "x", false)
	if err != nil {
		return Record{}, err
	}
	y, err := number(obj, "y", false)
	if err != nil {
		return Record{}, err
	}

	var unit scroll.Unit
	switch u := obj.Get("unit"); {
	case !u.Exists(), u.String() == "lines":
		unit = scroll.UnitLines
	case u.String() == "pixels":
		unit = scroll.UnitPixels
	default:
		return Record{}, fmt.Errorf("unknown unit %q", u.String())
	}

	return Record{
		T:     time.Duration(ns),
		Event: scroll.Event{Unit: unit, X: x, Y: y},
	}, nil
}

func number(obj gjson.Result, key string, required bool) (float64, error) {
	v := obj.Get(key)
	if !v.Exists() {
		if required {
			return 0, fmt.Errorf("missing %q", key)
		}
		return 0, nil
	}
	if v.Type != gjson.Number {
		return 0, fmt.Errorf("%q must be a number, got %s", key, v.Type)
	}
	return v.Float(), nil
}
