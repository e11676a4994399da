package gesture

import "github.com/dshills/gesturekit/detector"

// The three relays adapt the detector callbacks onto the shared
// recognizer state. They run with the recognizer mutex already held,
// either inside OnPointerEvent or inside a lockedClock timer callback.

type tapRelay struct{ r *Recognizer }

func (t tapRelay) OnSingleTapUp(x, y float32) {
	r := t.r
	if r.doubleTapEnabled {
		return
	}
	r.stats.SingleTap++
	r.listener.OnSingleTap(x, y)
}

func (t tapRelay) OnSingleTapConfirmed(x, y float32) {
	r := t.r
	if !r.doubleTapEnabled {
		return
	}
	r.stats.SingleTap++
	r.listener.OnSingleTap(x, y)
}

func (t tapRelay) OnDoubleTap(x, y float32) {
	r := t.r
	if !r.doubleTapEnabled {
		return
	}
	r.stats.DoubleTap++
	r.listener.OnDoubleTap(x, y)
}

func (t tapRelay) OnLongPress(x, y float32) {
	r := t.r
	if !r.longPressEnabled {
		return
	}
	r.stats.LongPress++
	r.listener.OnLongPress(x, y)
}

func (t tapRelay) OnScroll(s detector.Scroll) {
	r := t.r
	// A two-finger gesture feeds the tap detector too; its scroll
	// artifacts are suppressed while a continuous mode is active or when
	// either sample saw more than one contact.
	if r.isScaling || r.isRotating {
		return
	}
	if s.DownCount != 1 || s.Count != 1 {
		return
	}
	r.stats.Scroll++
	r.listener.OnScroll(s.DX, s.DY, s.TotalX, s.TotalY, s.X, s.Y)
}

func (t tapRelay) OnFling(vx, vy float32) {
	r := t.r
	r.stats.Fling++
	r.listener.OnFling(vx, vy)
}

type scaleRelay struct{ r *Recognizer }

func (s scaleRelay) OnScaleBegin(focusX, focusY float32) bool {
	r := s.r
	if !r.scaleEnabled {
		return false
	}
	if !r.isRotating {
		r.isScaling = true
	}
	return true
}

func (s scaleRelay) OnScale(factor, focusX, focusY float32) {
	r := s.r
	if !r.scaleEnabled {
		r.isScaling = false
		return
	}

	// Normalize the factor to a direction-free magnitude: 2.0 and 0.5 are
	// equally strong pinches.
	mag := factor
	if mag < 1 {
		mag = 1 / mag
	}
	mag -= 1
	r.scaleMag = mag

	if r.isRotating {
		// The rotation never cleared its slop but the pinch has: the
		// gesture locked onto the wrong axis, switch modes.
		if r.rotateMag < r.thresholds.RotateSlop && r.scaleMag > r.thresholds.ScaleSlop {
			r.isRotating = false
			r.isScaling = true
		}
	} else if !r.isScaling {
		r.isScaling = true
	}

	if r.isScaling {
		r.stats.Scale++
		r.listener.OnScale(factor, focusX, focusY)
	}
}

func (s scaleRelay) OnScaleEnd(focusX, focusY float32) {
	s.r.isScaling = false
}

type rotationRelay struct{ r *Recognizer }

func (rr rotationRelay) OnRotateBegin(pivotX, pivotY float32) bool {
	r := rr.r
	if !r.rotateEnabled {
		return false
	}
	if !r.isScaling {
		r.isRotating = true
	}
	return true
}

func (rr rotationRelay) OnRotate(angle, pivotX, pivotY float32) {
	r := rr.r
	if !r.rotateEnabled {
		r.isRotating = false
		return
	}

	mag := angle
	if mag < 0 {
		mag = -mag
	}
	r.rotateMag = mag

	if r.isScaling {
		if r.scaleMag < r.thresholds.ScaleSlop && r.rotateMag > r.thresholds.RotateSlop {
			r.isScaling = false
			r.isRotating = true
		}
	} else if !r.isRotating {
		r.isRotating = true
	}

	if r.isRotating {
		r.stats.Rotate++
		r.listener.OnRotate(angle, pivotX, pivotY)
	}
}

func (rr rotationRelay) OnRotateEnd(pivotX, pivotY float32) {
	rr.r.isRotating = false
}
