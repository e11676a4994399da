package detector

import (
	"errors"
	"fmt"
	"time"
)

// Validation errors returned by Thresholds.Validate.
var (
	// ErrNonPositiveDuration reports a timeout or window that is zero or negative.
	ErrNonPositiveDuration = errors.New("duration must be positive")
	// ErrNegativeSlop reports a slop threshold below zero.
	ErrNegativeSlop = errors.New("slop must not be negative")
	// ErrVelocityRange reports an invalid fling velocity range.
	ErrVelocityRange = errors.New("fling velocity range is invalid")
)

// Thresholds holds the tuning values shared by all detectors.
type Thresholds struct {
	// TouchSlop is the distance in pixels a contact may travel before a
	// press stops being a tap candidate.
	TouchSlop float32

	// DoubleTapWindow is the maximum time between the first tap's release
	// and the second tap's press for a double tap.
	DoubleTapWindow time.Duration

	// DoubleTapSlop is the maximum distance in pixels between the two
	// presses of a double tap.
	DoubleTapSlop float32

	// LongPressTimeout is how long a contact must hold still before a
	// long press fires.
	LongPressTimeout time.Duration

	// MinFlingVelocity is the velocity in pixels per second below which a
	// release is not a fling.
	MinFlingVelocity float32

	// MaxFlingVelocity caps the reported fling velocity per axis.
	MaxFlingVelocity float32

	// VelocityWindow is how far back in time the velocity tracker looks
	// when estimating release velocity.
	VelocityWindow time.Duration

	// ScaleSlop is the minimum normalized scale magnitude treated as an
	// intentional pinch rather than noise.
	ScaleSlop float32

	// RotateSlop is the minimum rotation in degrees treated as an
	// intentional rotation rather than noise.
	RotateSlop float32
}

// DefaultThresholds returns the standard tuning values.
func DefaultThresholds() Thresholds {
	return Thresholds{
		TouchSlop:        8,
		DoubleTapWindow:  300 * time.Millisecond,
		DoubleTapSlop:    64,
		LongPressTimeout: 500 * time.Millisecond,
		MinFlingVelocity: 50,
		MaxFlingVelocity: 8000,
		VelocityWindow:   100 * time.Millisecond,
		ScaleSlop:        0.015,
		RotateSlop:       0.5,
	}
}

// Validate checks that every threshold is usable.
func (t Thresholds) Validate() error {
	if t.DoubleTapWindow <= 0 {
		return fmt.Errorf("double tap window: %w", ErrNonPositiveDuration)
	}
	if t.LongPressTimeout <= 0 {
		return fmt.Errorf("long press timeout: %w", ErrNonPositiveDuration)
	}
	if t.VelocityWindow <= 0 {
		return fmt.Errorf("velocity window: %w", ErrNonPositiveDuration)
	}
	if t.TouchSlop < 0 {
		return fmt.Errorf("touch slop: %w", ErrNegativeSlop)
	}
	if t.DoubleTapSlop < 0 {
		return fmt.Errorf("double tap slop: %w", ErrNegativeSlop)
	}
	if t.ScaleSlop < 0 {
		return fmt.Errorf("scale slop: %w", ErrNegativeSlop)
	}
	if t.RotateSlop < 0 {
		return fmt.Errorf("rotate slop: %w", ErrNegativeSlop)
	}
	if t.MinFlingVelocity <= 0 || t.MaxFlingVelocity < t.MinFlingVelocity {
		return ErrVelocityRange
	}
	return nil
}
