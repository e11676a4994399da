// Package gesture classifies raw pointer events into high-level gesture
// callbacks: tap, double tap, long press, scroll, fling, scale and rotate.
//
// # Recognizer
//
// Recognizer is the entry point. It owns the primitive detectors, applies
// the feature toggles, arbitrates between simultaneously active scale and
// rotate gestures, and delivers every classification to one Listener:
//
//	rec := gesture.New(listener)
//	rec.SetScaleEnabled(true)
//	rec.SetRotateEnabled(true)
//	rec.OnPointerEvent(ev)
//
// Down, Up and Cancel are always delivered. Taps, scrolls and flings are
// always classified; double tap, long press, scale and rotate start
// disabled and are switched on per feature. Enabling a feature constructs
// its backing detector on first use.
//
// # Arbitration
//
// A two-finger gesture drives the scale and rotation detectors at the same
// time, and both report noise even when the user intends only one of them.
// The recognizer locks onto whichever signal first exceeds its slop
// threshold while the other stays below its own, and switches modes
// mid-gesture when the signals invert. While either mode is active,
// one-finger scroll artifacts from the tap detector are suppressed.
//
// # Delivery Model
//
// Callbacks fire synchronously inside OnPointerEvent, or inside a timer
// callback for the two timed classifications (long press, confirmed single
// tap). A mutex serializes both paths, so listener methods never run
// concurrently and need no locking of their own.
package gesture
