package detector

import "github.com/dshills/gesturekit/pointer"

// RotationHandler receives the raw rotation classifications produced by a
// Rotation detector.
type RotationHandler interface {
	// OnRotateBegin fires when two contacts establish a line. Returning
	// false declines the gesture; the detector re-offers it on later
	// movement with the rotation re-zeroed at that point.
	OnRotateBegin(pivotX, pivotY float32) bool

	// OnRotate fires for each angle change while the gesture is accepted.
	// angle is the signed rotation in degrees accumulated since the
	// gesture was accepted; it grows without bound across full turns.
	OnRotate(angle, pivotX, pivotY float32)

	// OnRotateEnd fires when a tracked contact lifts or the gesture is
	// cancelled.
	OnRotateEnd(pivotX, pivotY float32)
}

// Rotation detects two-contact rotation gestures around the midpoint of
// the contact pair. Like Scale it tracks the first two contacts and
// re-pairs when one lifts.
type Rotation struct {
	handler RotationHandler

	tracking bool
	active   bool
	id1, id2 pointer.ID
	prevLine float32
	angle    float32
	pivotX   float32
	pivotY   float32
}

// NewRotation returns a Rotation detector reporting to handler.
func NewRotation(handler RotationHandler) *Rotation {
	return &Rotation{handler: handler}
}

// OnPointerEvent feeds one raw event through the detector.
func (r *Rotation) OnPointerEvent(ev pointer.Event) {
	switch ev.Action {
	case pointer.ActionDown:
		r.reset()
	case pointer.ActionPointerDown:
		if !r.tracking {
			r.pair(ev, -1)
		}
	case pointer.ActionMove:
		r.onMove(ev)
	case pointer.ActionPointerUp:
		r.onPointerUp(ev)
	case pointer.ActionUp, pointer.ActionCancel:
		r.end()
		r.reset()
	}
}

func (r *Rotation) pair(ev pointer.Event, skip pointer.ID) {
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
	r.tracking = true
	r.id1, r.id2 = picked[0].ID, picked[1].ID
	r.begin(picked[0], picked[1])
}

func (r *Rotation) begin(a, b pointer.Touch) {
	if a.X == b.X && a.Y == b.Y {
		return
	}
	r.pivotX, r.pivotY = midpoint(a.X, a.Y, b.X, b.Y)
	if r.handler.OnRotateBegin(r.pivotX, r.pivotY) {
		r.active = true
		r.prevLine = lineAngle(a.X, a.Y, b.X, b.Y)
		r.angle = 0
	}
}

func (r *Rotation) onMove(ev pointer.Event) {
	if !r.tracking {
		return
	}
	a, ok1 := ev.Find(r.id1)
	b, ok2 := ev.Find(r.id2)
	if !ok1 || !ok2 {
		return
	}
	if !r.active {
		r.begin(a, b)
		return
	}
	line := lineAngle(a.X, a.Y, b.X, b.Y)
	delta := normalizeDeg(line - r.prevLine)
	r.prevLine = line
	r.pivotX, r.pivotY = midpoint(a.X, a.Y, b.X, b.Y)
	if delta == 0 {
		return
	}
	r.angle += delta
	r.handler.OnRotate(r.angle, r.pivotX, r.pivotY)
}

func (r *Rotation) onPointerUp(ev pointer.Event) {
	if !r.tracking {
		return
	}
	if ev.Pointer != r.id1 && ev.Pointer != r.id2 {
		return
	}
	r.end()
	r.tracking = false
	r.pair(ev, ev.Pointer)
}

func (r *Rotation) end() {
	if !r.active {
		return
	}
	r.active = false
	r.handler.OnRotateEnd(r.pivotX, r.pivotY)
}

func (r *Rotation) reset() {
	r.tracking = false
	r.active = false
	r.prevLine = 0
	r.angle = 0
}
