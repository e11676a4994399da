// Package detector implements the primitive gesture sources that feed the
// gesture recognizer: a Tap detector covering taps, double taps, long
// presses, scrolls and flings, plus two-finger Scale and Rotation
// detectors.
//
// Each detector consumes pointer.Events through OnPointerEvent and reports
// raw classifications to a small handler interface. Detectors hold plain
// mutable state and perform no locking of their own; callers that feed
// them from multiple goroutines, or that use a Clock whose timers fire on
// other goroutines, must serialize access themselves.
//
// # Thresholds
//
// Tuning values (slop distances, timeouts, velocity bounds) live in a
// Thresholds value shared by all detectors:
//
//	th := detector.DefaultThresholds()
//	tap := detector.NewTap(handler, th, detector.SystemClock())
//
// # Time
//
// Time-based behavior (long-press delay, double-tap confirmation) runs
// through the Clock interface. SystemClock uses the time package; tests
// drive a ManualClock to make timer behavior deterministic.
package detector
