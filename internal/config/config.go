package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/scrollstep/internal/input/mouse"
	"github.com/dshills/scrollstep/internal/input/scroll"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "SCROLLSTEP_"

// Duration is a time.Duration written as a Go duration string ("100ms").
type Duration time.Duration

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText formats the duration as a string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// ScrollSection configures the scroll accumulator.
type ScrollSection struct {
	PixelsPerLine float64  `toml:"pixels_per_line" env:"PIXELS_PER_LINE"`
	Timeout       Duration `toml:"timeout" env:"TIMEOUT"`
}

// WheelSection configures wheel button translation.
type WheelSection struct {
	LinesPerNotch   float64 `toml:"lines_per_notch" env:"LINES_PER_NOTCH"`
	ShiftHorizontal bool    `toml:"shift_horizontal" env:"SHIFT_HORIZONTAL"`
}

// LoggingSection configures logging.
type LoggingSection struct {
	Level string `toml:"level" env:"LOG_LEVEL"`
	File  string `toml:"file" env:"LOG_FILE"`
}

// HookSection configures the Lua step hook.
type HookSection struct {
	Script string `toml:"script" env:"HOOK"`
}

// Config is the complete scrollstep configuration.
type Config struct {
	Scroll  ScrollSection  `toml:"scroll"`
	Wheel   WheelSection   `toml:"wheel"`
	Logging LoggingSection `toml:"logging"`
	Hook    HookSection    `toml:"hook"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Scroll: ScrollSection{
			PixelsPerLine: scroll.DefaultPixelsPerLine,
			Timeout:       Duration(scroll.DefaultTimeout),
		},
		Wheel: WheelSection{
			LinesPerNotch:   1,
			ShiftHorizontal: true,
		},
		Logging: LoggingSection{
			Level: "info",
		},
	}
}

// Load builds a configuration from defaults, the TOML file at path (if path
// is non-empty) and SCROLLSTEP_* environment variables, then validates it.
// A missing file is reported as ErrFileNotFound.
func Load(path string) (Config, error) {
	return load(path, nil)
}

// LoadWithEnv is Load with an explicit environment instead of os.Environ.
func LoadWithEnv(path string, environ map[string]string) (Config, error) {
	if environ == nil {
		environ = map[string]string{}
	}
	return load(path, environ)
}

func load(path string, environ map[string]string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return Config{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
			}
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := decode(path, bytes.NewReader(data), &cfg); err != nil {
			return Config{}, err
		}
	}

	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, &ParseError{Path: "environment", Message: err.Error(), Err: err}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes TOML from r on top of the defaults and validates the result.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	if err := decode("<reader>", r, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(source string, r io.Reader, cfg *Config) error {
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return perr
	}
	return nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.ScrollConfig().Validate(); err != nil {
		var cerr *scroll.ConfigError
		if errors.As(err, &cerr) && cerr.Field == "Timeout" {
			return &ValidationError{Path: "scroll.timeout", Value: time.Duration(c.Scroll.Timeout), Message: cerr.Err.Error()}
		}
		return &ValidationError{Path: "scroll.pixels_per_line", Value: c.Scroll.PixelsPerLine, Message: err.Error()}
	}
	if !mouse.ValidLinesPerNotch(c.Wheel.LinesPerNotch) {
		return &ValidationError{Path: "wheel.lines_per_notch", Value: c.Wheel.LinesPerNotch, Message: "must be positive and finite"}
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: "logging.level", Value: c.Logging.Level, Message: "must be debug, info, warn, or error"}
	}
	return nil
}

// ScrollConfig returns the accumulator constants.
func (c Config) ScrollConfig() scroll.Config {
	return scroll.Config{
		PixelsPerLine: c.Scroll.PixelsPerLine,
		Timeout:       time.Duration(c.Scroll.Timeout),
	}
}

// MouseConfig returns the mouse handler configuration.
func (c Config) MouseConfig() mouse.Config {
	return mouse.Config{
		Scroll:          c.ScrollConfig(),
		LinesPerNotch:   c.Wheel.LinesPerNotch,
		ShiftHorizontal: c.Wheel.ShiftHorizontal,
	}
}

// Encode writes cfg as TOML.
func Encode(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}
