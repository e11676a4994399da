// Package pointer defines the raw pointer event model consumed by the
// gesture recognizer.
//
// An Event describes one transition of one contact (finger, stylus, or
// mouse button) together with a snapshot of every contact currently on
// the surface. Producers such as the bundled drivers synthesize Events
// from host input; the detector and gesture packages consume them.
//
// # Event Shape
//
//	ev := pointer.Event{
//	    Action:  pointer.ActionDown,
//	    Pointer: 0,
//	    Points:  []pointer.Touch{{ID: 0, X: 12, Y: 30}},
//	    Time:    time.Now(),
//	}
//
// ActionDown always carries exactly one contact and ActionUp carries the
// last remaining one. ActionPointerDown and ActionPointerUp carry the full
// contact set including the contact that just arrived or is about to
// leave. ActionMove carries every active contact.
//
// Events are plain values. Consumers that retain one across calls must
// Clone it first since producers may reuse the Points slice.
package pointer
