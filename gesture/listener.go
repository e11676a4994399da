package gesture

// Listener receives classified gestures from a Recognizer. Methods are
// invoked synchronously and never concurrently; implementations may keep
// plain state.
type Listener interface {
	// OnDown fires for every initial contact, before any classification.
	OnDown(x, y float32)

	// OnUp fires when the last contact lifts.
	OnUp(x, y float32)

	// OnCancel fires when the gesture stream is aborted.
	OnCancel()

	// OnSingleTap fires for a completed tap. With double tap disabled it
	// fires immediately on release; with double tap enabled it fires only
	// once the confirmation window elapses with no second tap.
	OnSingleTap(x, y float32)

	// OnDoubleTap fires on the second press of a double tap, with the
	// second press's coordinates.
	OnDoubleTap(x, y float32)

	// OnLongPress fires when a contact holds still for the long-press
	// timeout. The gesture delivers nothing further afterwards.
	OnLongPress(x, y float32)

	// OnScroll fires for each step of a one-finger drag. dx and dy follow
	// the finger; totalX and totalY accumulate from the initial down;
	// x and y are the current position.
	OnScroll(dx, dy, totalX, totalY, x, y float32)

	// OnFling fires on release of a fast drag with the estimated velocity
	// in pixels per second.
	OnFling(velocityX, velocityY float32)

	// OnScale fires for each update of an active pinch. factor is the
	// span ratio against the previous update, around the focal point.
	OnScale(factor, focusX, focusY float32)

	// OnRotate fires for each update of an active rotation. angle is the
	// signed degrees accumulated since the gesture began, around the
	// pivot point.
	OnRotate(angle, pivotX, pivotY float32)
}

// BaseListener is a Listener whose methods all do nothing. Embed it to
// implement only the callbacks a consumer cares about.
type BaseListener struct{}

// OnDown implements Listener.
func (BaseListener) OnDown(x, y float32) {}

// OnUp implements Listener.
func (BaseListener) OnUp(x, y float32) {}

// OnCancel implements Listener.
func (BaseListener) OnCancel() {}

// OnSingleTap implements Listener.
func (BaseListener) OnSingleTap(x, y float32) {}

// OnDoubleTap implements Listener.
func (BaseListener) OnDoubleTap(x, y float32) {}

// OnLongPress implements Listener.
func (BaseListener) OnLongPress(x, y float32) {}

// OnScroll implements Listener.
func (BaseListener) OnScroll(dx, dy, totalX, totalY, x, y float32) {}

// OnFling implements Listener.
func (BaseListener) OnFling(velocityX, velocityY float32) {}

// OnScale implements Listener.
func (BaseListener) OnScale(factor, focusX, focusY float32) {}

// OnRotate implements Listener.
func (BaseListener) OnRotate(angle, pivotX, pivotY float32) {}
