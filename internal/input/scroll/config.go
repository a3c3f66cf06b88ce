package scroll

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Default conversion constants.
const (
	// DefaultPixelsPerLine is the number of scroll pixels that make one step.
	DefaultPixelsPerLine = 24.0

	// DefaultTimeout is the longest gap between events on one axis for
	// their leftovers to be merged.
	DefaultTimeout = 100 * time.Millisecond
)

// Configuration errors.
var (
	// ErrInvalidPixelsPerLine indicates a non-positive or non-finite pixel ratio.
	ErrInvalidPixelsPerLine = errors.New("pixels per line must be a positive finite number")

	// ErrInvalidTimeout indicates a negative timeout.
	ErrInvalidTimeout = errors.New("timeout must not be negative")
)

// Config holds the conversion constants of an Accumulator.
type Config struct {
	// PixelsPerLine divides pixel offsets into line units.
	PixelsPerLine float64

	// Timeout is the maximum age of a pending leftover.
	Timeout time.Duration
}

// DefaultConfig returns the standard conversion constants.
func DefaultConfig() Config {
	return Config{
		PixelsPerLine: DefaultPixelsPerLine,
		Timeout:       DefaultTimeout,
	}
}

// ConfigError reports an invalid Config field.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("scroll config %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Validate checks the configuration. The first invalid field is reported.
func (c Config) Validate() error {
	if !validPixelsPerLine(c.PixelsPerLine) {
		return &ConfigError{Field: "PixelsPerLine", Err: ErrInvalidPixelsPerLine}
	}
	if c.Timeout < 0 {
		return &ConfigError{Field: "Timeout", Err: ErrInvalidTimeout}
	}
	return nil
}

// normalized replaces invalid fields with their defaults.
func (c Config) normalized() Config {
	if !validPixelsPerLine(c.PixelsPerLine) {
		c.PixelsPerLine = DefaultPixelsPerLine
	}
	if c.Timeout < 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

func validPixelsPerLine(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
