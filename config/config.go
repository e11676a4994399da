package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/gesturekit/detector"
	"github.com/dshills/gesturekit/gesture"
)

// ErrNegativeValue reports a config field that must not be negative.
var ErrNegativeValue = errors.New("value must not be negative")

// Config is the root of the TOML configuration shared by the gesturekit
// tools.
type Config struct {
	Detector   DetectorConfig   `toml:"detector"`
	Recognizer RecognizerConfig `toml:"recognizer"`
	Bridge     BridgeConfig     `toml:"bridge"`
	Pad        PadConfig        `toml:"pad"`
}

// DetectorConfig tunes the detector thresholds. Durations are plain
// milliseconds to keep the TOML obvious.
type DetectorConfig struct {
	TouchSlop          float32 `toml:"touch_slop"`
	DoubleTapWindowMS  int     `toml:"double_tap_window_ms"`
	DoubleTapSlop      float32 `toml:"double_tap_slop"`
	LongPressTimeoutMS int     `toml:"long_press_timeout_ms"`
	MinFlingVelocity   float32 `toml:"min_fling_velocity"`
	MaxFlingVelocity   float32 `toml:"max_fling_velocity"`
	VelocityWindowMS   int     `toml:"velocity_window_ms"`
	ScaleSlop          float32 `toml:"scale_slop"`
	RotateSlop         float32 `toml:"rotate_slop"`
}

// RecognizerConfig holds the feature toggles applied to a recognizer.
type RecognizerConfig struct {
	LongPress bool `toml:"long_press"`
	DoubleTap bool `toml:"double_tap"`
	Scale     bool `toml:"scale"`
	Rotate    bool `toml:"rotate"`
}

// BridgeConfig configures the websocket bridge server.
type BridgeConfig struct {
	Addr           string `toml:"addr"`
	AllowAnyOrigin bool   `toml:"allow_any_origin"`
}

// PadConfig configures the interactive gesture pad.
type PadConfig struct {
	Script      string `toml:"script"`
	Bindings    string `toml:"bindings"`
	TrailLength int    `toml:"trail_length"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	th := detector.DefaultThresholds()
	return Config{
		Detector: DetectorConfig{
			TouchSlop:          th.TouchSlop,
			DoubleTapWindowMS:  int(th.DoubleTapWindow / time.Millisecond),
			DoubleTapSlop:      th.DoubleTapSlop,
			LongPressTimeoutMS: int(th.LongPressTimeout / time.Millisecond),
			MinFlingVelocity:   th.MinFlingVelocity,
			MaxFlingVelocity:   th.MaxFlingVelocity,
			VelocityWindowMS:   int(th.VelocityWindow / time.Millisecond),
			ScaleSlop:          th.ScaleSlop,
			RotateSlop:         th.RotateSlop,
		},
		Recognizer: RecognizerConfig{
			LongPress: true,
			DoubleTap: true,
			Scale:     true,
			Rotate:    true,
		},
		Bridge: BridgeConfig{
			Addr: "127.0.0.1:8423",
		},
		Pad: PadConfig{
			TrailLength: 32,
		},
	}
}

// Load reads the TOML file at path. A missing file returns the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}

	// Start from defaults so an incomplete file only overrides what it
	// names.
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// Thresholds converts the detector section into detector.Thresholds.
func (c Config) Thresholds() detector.Thresholds {
	return detector.Thresholds{
		TouchSlop:        c.Detector.TouchSlop,
		DoubleTapWindow:  time.Duration(c.Detector.DoubleTapWindowMS) * time.Millisecond,
		DoubleTapSlop:    c.Detector.DoubleTapSlop,
		LongPressTimeout: time.Duration(c.Detector.LongPressTimeoutMS) * time.Millisecond,
		MinFlingVelocity: c.Detector.MinFlingVelocity,
		MaxFlingVelocity: c.Detector.MaxFlingVelocity,
		VelocityWindow:   time.Duration(c.Detector.VelocityWindowMS) * time.Millisecond,
		ScaleSlop:        c.Detector.ScaleSlop,
		RotateSlop:       c.Detector.RotateSlop,
	}
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	if err := c.Thresholds().Validate(); err != nil {
		return fmt.Errorf("detector: %w", err)
	}
	if c.Pad.TrailLength < 0 {
		return fmt.Errorf("pad trail_length: %w", ErrNegativeValue)
	}
	if c.Bridge.Addr == "" {
		return errors.New("bridge addr must not be empty")
	}
	return nil
}

// Apply puts the detector thresholds and feature toggles into effect on a
// recognizer.
func (c Config) Apply(rec *gesture.Recognizer) {
	rec.SetThresholds(c.Thresholds())
	rec.SetLongPressEnabled(c.Recognizer.LongPress)
	rec.SetDoubleTapEnabled(c.Recognizer.DoubleTap)
	rec.SetScaleEnabled(c.Recognizer.Scale)
	rec.SetRotateEnabled(c.Recognizer.Rotate)
}
