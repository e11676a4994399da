package detector

import "github.com/dshills/gesturekit/pointer"

// ScaleHandler receives the raw pinch classifications produced by a Scale
// detector.
type ScaleHandler interface {
	// OnScaleBegin fires when two contacts establish a span. Returning
	// false declines the gesture; the detector re-offers it on later
	// movement, so a handler that starts accepting mid-gesture picks up
	// from the current span.
	OnScaleBegin(focusX, focusY float32) bool

	// OnScale fires for each span change while the gesture is accepted.
	// factor is the ratio of the current span to the span at the previous
	// report.
	OnScale(factor, focusX, focusY float32)

	// OnScaleEnd fires when a tracked contact lifts or the gesture is
	// cancelled.
	OnScaleEnd(focusX, focusY float32)
}

// Scale detects two-contact pinch gestures. It tracks the first two
// contacts; further contacts are ignored until one of the tracked pair
// lifts, at which point the detector re-pairs with whatever remains.
type Scale struct {
	handler ScaleHandler

	tracking bool
	active   bool
	id1, id2 pointer.ID
	prevSpan float32
	focusX   float32
	focusY   float32
}

// NewScale returns a Scale detector reporting to handler.
func NewScale(handler ScaleHandler) *Scale {
	return &Scale{handler: handler}
}

// OnPointerEvent feeds one raw event through the detector.
func (s *Scale) OnPointerEvent(ev pointer.Event) {
	switch ev.Action {
	case pointer.ActionDown:
		s.reset()
	case pointer.ActionPointerDown:
		if !s.tracking {
			s.pair(ev, -1)
		}
	case pointer.ActionMove:
		s.onMove(ev)
	case pointer.ActionPointerUp:
		s.onPointerUp(ev)
	case pointer.ActionUp, pointer.ActionCancel:
		s.end()
		s.reset()
	}
}

// pair picks the first two contacts, excluding skip, and offers the
// gesture to the handler.
func (s *Scale) pair(ev pointer.Event, skip pointer.ID) {
	var picked []pointer.Touch
	for _, t := range ev.Points {
		if t.ID == skip {
			continue
		}
		picked = append(picked, t)
		if len(picked) == 2 {
			break
		}
	}
	if len(picked) < 2 {
		return
	}
	s.tracking = true
	s.id1, s.id2 = picked[0].ID, picked[1].ID
	s.begin(picked[0], picked[1])
}

func (s *Scale) begin(a, b pointer.Touch) {
	span := dist(a.X, a.Y, b.X, b.Y)
	if span <= 0 {
		return
	}
	s.focusX, s.focusY = midpoint(a.X, a.Y, b.X, b.Y)
	if s.handler.OnScaleBegin(s.focusX, s.focusY) {
		s.active = true
		s.prevSpan = span
	}
}

func (s *Scale) onMove(ev pointer.Event) {
	if !s.tracking {
		return
	}
	a, ok1 := ev.Find(s.id1)
	b, ok2 := ev.Find(s.id2)
	if !ok1 || !ok2 {
		return
	}
	if !s.active {
		// Declined earlier; offer again from the current span.
		s.begin(a, b)
		return
	}
	span := dist(a.X, a.Y, b.X, b.Y)
	if span <= 0 || s.prevSpan <= 0 {
		return
	}
	s.focusX, s.focusY = midpoint(a.X, a.Y, b.X, b.Y)
	if span != s.prevSpan {
		s.handler.OnScale(span/s.prevSpan, s.focusX, s.focusY)
		s.prevSpan = span
	}
}

func (s *Scale) onPointerUp(ev pointer.Event) {
	if !s.tracking {
		return
	}
	if ev.Pointer != s.id1 && ev.Pointer != s.id2 {
		return
	}
	s.end()
	s.tracking = false
	s.pair(ev, ev.Pointer)
}

func (s *Scale) end() {
	if !s.active {
		return
	}
	s.active = false
	s.handler.OnScaleEnd(s.focusX, s.focusY)
}

func (s *Scale) reset() {
	s.tracking = false
	s.active = false
	s.prevSpan = 0
}
