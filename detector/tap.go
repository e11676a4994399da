package detector

import (
	"time"

	"github.com/dshills/gesturekit/pointer"
)

// Scroll is one scroll step reported by a Tap detector. Deltas follow the
// finger: a drag to the right produces positive DX.
type Scroll struct {
	// DX, DY are the focus movement since the previous report.
	DX float32
	DY float32

	// TotalX, TotalY are the focus movement since the initial down.
	TotalX float32
	TotalY float32

	// X, Y are the current focus point.
	X float32
	Y float32

	// DownCount is the contact count of the initial down sample.
	DownCount int

	// Count is the contact count of the current sample.
	Count int
}

// TapHandler receives the raw classifications produced by a Tap detector.
// Methods are invoked synchronously from OnPointerEvent or, for the two
// timed classifications, from the detector's Clock.
type TapHandler interface {
	// OnSingleTapUp fires as soon as a press releases within the tap
	// bounds, whether or not a double tap may still follow.
	OnSingleTapUp(x, y float32)

	// OnSingleTapConfirmed fires when the double-tap window elapses after
	// a tap with no second press.
	OnSingleTapConfirmed(x, y float32)

	// OnDoubleTap fires on the second press of a double tap, with the
	// second press's coordinates.
	OnDoubleTap(x, y float32)

	// OnLongPress fires when a press holds within the touch slop for the
	// long-press timeout. The gesture emits nothing further afterwards.
	OnLongPress(x, y float32)

	// OnScroll fires for each focus movement once the touch slop is
	// exceeded.
	OnScroll(s Scroll)

	// OnFling fires on release when the tracked velocity exceeds the
	// minimum fling velocity on either axis.
	OnFling(vx, vy float32)
}

// Tap detects taps, double taps, long presses, scrolls and flings from a
// raw pointer stream. It keeps plain state and must be fed from a single
// goroutine; Clock callbacks are the caller's to serialize (ManualClock
// runs them on the advancing goroutine, SystemClock on its own).
type Tap struct {
	handler    TapHandler
	thresholds Thresholds
	clock      Clock
	velocity   *VelocityTracker

	longPressArmed   bool
	doubleTapEnabled bool

	// Current gesture, between down and up/cancel.
	active       bool
	downX, downY float32
	downCount    int
	lastX, lastY float32
	tapCandidate bool
	longPressed  bool
	doubleTapped bool

	longPressTimer Timer
	longPressGen   int

	// Previous completed tap, for double-tap pairing.
	haveLastTap        bool
	lastTapX, lastTapY float32
	lastTapUp          time.Time
	confirmTimer       Timer
	confirmGen         int
	confirmX, confirmY float32
	confirmPending     bool
}

// NewTap returns a Tap detector reporting to handler.
func NewTap(handler TapHandler, thresholds Thresholds, clock Clock) *Tap {
	return &Tap{
		handler:    handler,
		thresholds: thresholds,
		clock:      clock,
		velocity:   NewVelocityTracker(thresholds.VelocityWindow),
	}
}

// SetLongPressArmed controls whether future presses start a long-press
// timer. A timer already running is left to fire; callers that forward
// long presses gate delivery themselves.
func (d *Tap) SetLongPressArmed(armed bool) {
	d.longPressArmed = armed
}

// LongPressArmed reports whether presses arm the long-press timer.
func (d *Tap) LongPressArmed() bool { return d.longPressArmed }

// SetDoubleTapEnabled switches between immediate single taps and
// double-tap pairing with confirmed single taps. When off, a rapid second
// press is just another tap and no confirmation timer runs. Toggling
// drops pending pairing state so a mode change cannot re-deliver a tap
// that already completed under the old mode.
func (d *Tap) SetDoubleTapEnabled(enabled bool) {
	if d.doubleTapEnabled == enabled {
		return
	}
	d.doubleTapEnabled = enabled
	d.haveLastTap = false
	d.stopConfirm()
}

// DoubleTapEnabled reports whether double-tap pairing is on.
func (d *Tap) DoubleTapEnabled() bool { return d.doubleTapEnabled }

// SetThresholds replaces the tuning values. The new values apply from the
// next gesture.
func (d *Tap) SetThresholds(t Thresholds) {
	d.thresholds = t
	d.velocity.window = t.VelocityWindow
}

// OnPointerEvent feeds one raw event through the detector.
func (d *Tap) OnPointerEvent(ev pointer.Event) {
	switch ev.Action {
	case pointer.ActionDown:
		d.onDown(ev)
	case pointer.ActionPointerDown:
		d.onPointerDown(ev)
	case pointer.ActionMove:
		d.onMove(ev)
	case pointer.ActionPointerUp:
		d.onPointerUp(ev)
	case pointer.ActionUp:
		d.onUp(ev)
	case pointer.ActionCancel:
		d.onCancel()
	}
}

func (d *Tap) onDown(ev pointer.Event) {
	p := ev.Primary()

	// Pair with the previous tap before resetting gesture state. A skewed
	// clock (negative elapsed) starts a fresh sequence.
	d.doubleTapped = false
	if d.doubleTapEnabled && d.haveLastTap {
		elapsed := ev.Time.Sub(d.lastTapUp)
		slop := d.thresholds.DoubleTapSlop
		if elapsed >= 0 && elapsed <= d.thresholds.DoubleTapWindow &&
			dist(p.X, p.Y, d.lastTapX, d.lastTapY) <= slop {
			d.doubleTapped = true
		}
	}
	d.haveLastTap = false
	d.stopConfirm()

	d.active = true
	d.downX, d.downY = p.X, p.Y
	d.lastX, d.lastY = p.X, p.Y
	d.downCount = ev.Count()
	d.tapCandidate = !d.doubleTapped
	d.longPressed = false

	d.velocity.Reset()
	d.velocity.Add(ev.Time, p.X, p.Y)

	d.stopLongPress()
	if d.longPressArmed && !d.doubleTapped {
		d.armLongPress()
	}

	if d.doubleTapped {
		d.handler.OnDoubleTap(p.X, p.Y)
	}
}

func (d *Tap) onPointerDown(ev pointer.Event) {
	if !d.active {
		return
	}
	// A second contact ends tap and long-press candidacy but scroll
	// tracking continues on the merged focus.
	d.tapCandidate = false
	d.stopLongPress()

	x, y := ev.Focus()
	d.lastX, d.lastY = x, y
	d.velocity.Reset()
	d.velocity.Add(ev.Time, x, y)
}

func (d *Tap) onMove(ev pointer.Event) {
	if !d.active {
		return
	}
	x, y := ev.Focus()
	d.velocity.Add(ev.Time, x, y)

	if d.longPressed {
		return
	}

	if d.tapCandidate {
		dx := x - d.downX
		dy := y - d.downY
		slop := d.thresholds.TouchSlop
		if dx*dx+dy*dy <= slop*slop {
			return
		}
		d.tapCandidate = false
		d.stopLongPress()
	}

	if d.doubleTapped {
		return
	}

	dx := x - d.lastX
	dy := y - d.lastY
	if dx == 0 && dy == 0 {
		return
	}
	d.lastX, d.lastY = x, y
	d.handler.OnScroll(Scroll{
		DX:        dx,
		DY:        dy,
		TotalX:    x - d.downX,
		TotalY:    y - d.downY,
		X:         x,
		Y:         y,
		DownCount: d.downCount,
		Count:     ev.Count(),
	})
}

func (d *Tap) onPointerUp(ev pointer.Event) {
	if !d.active {
		return
	}
	// Rebase on the focus of the remaining contacts so the departure does
	// not register as movement.
	var x, y float32
	var n int
	for _, t := range ev.Points {
		if t.ID == ev.Pointer {
			continue
		}
		x += t.X
		y += t.Y
		n++
	}
	if n == 0 {
		return
	}
	x /= float32(n)
	y /= float32(n)
	d.lastX, d.lastY = x, y
	d.velocity.Reset()
	d.velocity.Add(ev.Time, x, y)
}

func (d *Tap) onUp(ev pointer.Event) {
	if !d.active {
		return
	}
	d.active = false
	d.stopLongPress()

	p := ev.Primary()
	d.velocity.Add(ev.Time, p.X, p.Y)

	switch {
	case d.longPressed:
		// A long press consumes the rest of the gesture.
	case d.doubleTapped:
		// The second tap of a double tap releases silently.
	case d.tapCandidate:
		d.handler.OnSingleTapUp(p.X, p.Y)
		if d.doubleTapEnabled {
			d.haveLastTap = true
			d.lastTapX, d.lastTapY = d.downX, d.downY
			d.lastTapUp = ev.Time
			d.armConfirm(d.downX, d.downY)
		}
	default:
		vx, vy := d.velocity.Velocity()
		min := d.thresholds.MinFlingVelocity
		if vx > min || vx < -min || vy > min || vy < -min {
			max := d.thresholds.MaxFlingVelocity
			d.handler.OnFling(clampAbs(vx, max), clampAbs(vy, max))
		}
	}
}

func (d *Tap) onCancel() {
	d.active = false
	d.tapCandidate = false
	d.longPressed = false
	d.doubleTapped = false
	d.haveLastTap = false
	d.stopLongPress()
	d.stopConfirm()
	d.velocity.Reset()
}

func (d *Tap) armLongPress() {
	d.longPressGen++
	gen := d.longPressGen
	d.longPressTimer = d.clock.AfterFunc(d.thresholds.LongPressTimeout, func() {
		d.fireLongPress(gen)
	})
}

func (d *Tap) fireLongPress(gen int) {
	// A stopped timer may still deliver late; the generation check drops it.
	if gen != d.longPressGen || !d.active || !d.tapCandidate || d.longPressed {
		return
	}
	d.longPressed = true
	d.tapCandidate = false
	d.handler.OnLongPress(d.downX, d.downY)
}

func (d *Tap) stopLongPress() {
	d.longPressGen++
	if d.longPressTimer != nil {
		d.longPressTimer.Stop()
		d.longPressTimer = nil
	}
}

func (d *Tap) armConfirm(x, y float32) {
	d.confirmGen++
	gen := d.confirmGen
	d.confirmPending = true
	d.confirmX, d.confirmY = x, y
	d.confirmTimer = d.clock.AfterFunc(d.thresholds.DoubleTapWindow, func() {
		d.fireConfirm(gen)
	})
}

func (d *Tap) fireConfirm(gen int) {
	if gen != d.confirmGen || !d.confirmPending {
		return
	}
	d.confirmPending = false
	d.handler.OnSingleTapConfirmed(d.confirmX, d.confirmY)
}

func (d *Tap) stopConfirm() {
	d.confirmGen++
	d.confirmPending = false
	if d.confirmTimer != nil {
		d.confirmTimer.Stop()
		d.confirmTimer = nil
	}
}

// clampAbs limits v to [-max, max].
func clampAbs(v, max float32) float32 {
	if v > max {
		return max
	}
	if v < -max {
		return -max
	}
	return v
}
