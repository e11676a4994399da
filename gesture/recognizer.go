package gesture

import (
	"sync"
	"time"

	"github.com/dshills/gesturekit/detector"
	"github.com/dshills/gesturekit/pointer"
)

// Recognizer classifies a raw pointer stream into Listener callbacks. It
// owns the primitive detectors, constructing each lazily when the
// corresponding feature is first enabled, and arbitrates between the two
// continuous gestures.
//
// Recognizer is safe for concurrent use, though a pointer stream is
// inherently ordered and normally arrives from one goroutine. Timer-driven
// classifications are serialized with event processing, so the listener
// never runs concurrently with itself.
type Recognizer struct {
	mu         sync.Mutex
	listener   Listener
	thresholds detector.Thresholds
	clock      detector.Clock

	longPressEnabled bool
	doubleTapEnabled bool
	scaleEnabled     bool
	rotateEnabled    bool

	tap      *detector.Tap
	scale    *detector.Scale
	rotation *detector.Rotation

	// Arbitration state between the two continuous gestures. The flags
	// are reset on gesture end; the magnitudes persist and are only read
	// under an active flag.
	isScaling  bool
	isRotating bool
	scaleMag   float32
	rotateMag  float32

	stats Stats
}

// Option configures a Recognizer.
type Option func(*Recognizer)

// WithThresholds replaces the default tuning values.
func WithThresholds(t detector.Thresholds) Option {
	return func(r *Recognizer) { r.thresholds = t }
}

// WithClock replaces the system clock. Tests use a detector.ManualClock to
// drive long-press and double-tap timing deterministically.
func WithClock(c detector.Clock) Option {
	return func(r *Recognizer) { r.clock = c }
}

// New returns a Recognizer delivering to listener, which must be non-nil.
// All optional gesture features start disabled.
func New(listener Listener, opts ...Option) *Recognizer {
	r := &Recognizer{
		listener:   listener,
		thresholds: detector.DefaultThresholds(),
		clock:      detector.SystemClock(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// OnPointerEvent feeds one raw event through the recognizer. Down, Up and
// Cancel are delivered to the listener before any detector sees the event;
// the rotation detector is fed before the scale detector so arbitration
// state is current when the scroll gate runs in the tap detector.
func (r *Recognizer) OnPointerEvent(ev pointer.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch ev.Action {
	case pointer.ActionDown:
		p := ev.Primary()
		r.stats.Down++
		r.listener.OnDown(p.X, p.Y)
	case pointer.ActionUp:
		p := ev.Primary()
		r.stats.Up++
		r.listener.OnUp(p.X, p.Y)
	case pointer.ActionCancel:
		r.stats.Cancel++
		r.listener.OnCancel()
	}

	if r.rotateEnabled {
		r.ensureRotation()
		r.rotation.OnPointerEvent(ev)
	}
	if r.scaleEnabled {
		r.ensureScale()
		r.scale.OnPointerEvent(ev)
	}
	r.ensureTap()
	r.tap.OnPointerEvent(ev)
}

// SetLongPressEnabled arms or disarms long-press classification. Enabling
// constructs the tap detector on first use; repeated calls with the same
// value are no-ops. Disabling gates delivery immediately, even for a
// long-press timer already running.
func (r *Recognizer) SetLongPressEnabled(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.longPressEnabled == enabled {
		return
	}
	r.longPressEnabled = enabled
	r.ensureTap()
	r.tap.SetLongPressArmed(enabled)
}

// IsLongPressEnabled reports whether long presses are delivered.
func (r *Recognizer) IsLongPressEnabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.longPressEnabled
}

// SetDoubleTapEnabled switches between immediate single taps and
// double-tap classification with confirmed single taps. Toggling drops
// any pairing in progress, so a tap already delivered under the old mode
// is never delivered again under the new one.
func (r *Recognizer) SetDoubleTapEnabled(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.doubleTapEnabled == enabled {
		return
	}
	r.doubleTapEnabled = enabled
	r.ensureTap()
	r.tap.SetDoubleTapEnabled(enabled)
}

// IsDoubleTapEnabled reports whether double taps are classified.
func (r *Recognizer) IsDoubleTapEnabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.doubleTapEnabled
}

// SetScaleEnabled turns pinch classification on or off. Disabling during
// an active pinch stops emission with the next update and does not
// synthesize an end callback.
func (r *Recognizer) SetScaleEnabled(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.scaleEnabled == enabled {
		return
	}
	r.scaleEnabled = enabled
	if enabled {
		r.ensureScale()
		return
	}
	// Drop the mode immediately so the scroll gate cannot stay wedged by
	// a gesture that will never deliver its end.
	r.isScaling = false
}

// IsScaleEnabled reports whether pinches are classified.
func (r *Recognizer) IsScaleEnabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.scaleEnabled
}

// SetRotateEnabled turns rotation classification on or off, with the same
// mid-gesture semantics as SetScaleEnabled.
func (r *Recognizer) SetRotateEnabled(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rotateEnabled == enabled {
		return
	}
	r.rotateEnabled = enabled
	if enabled {
		r.ensureRotation()
		return
	}
	r.isRotating = false
}

// IsRotateEnabled reports whether rotations are classified.
func (r *Recognizer) IsRotateEnabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rotateEnabled
}

// SetThresholds applies new tuning values. They take effect from the next
// gesture.
func (r *Recognizer) SetThresholds(t detector.Thresholds) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.thresholds = t
	if r.tap != nil {
		r.tap.SetThresholds(t)
	}
}

// Thresholds returns the current tuning values.
func (r *Recognizer) Thresholds() detector.Thresholds {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.thresholds
}

// Stats returns a snapshot of the per-kind delivery counters.
func (r *Recognizer) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (r *Recognizer) ensureTap() {
	if r.tap != nil {
		return
	}
	r.tap = detector.NewTap(tapRelay{r}, r.thresholds, lockedClock{inner: r.clock, mu: &r.mu})
	r.tap.SetLongPressArmed(r.longPressEnabled)
	r.tap.SetDoubleTapEnabled(r.doubleTapEnabled)
}

func (r *Recognizer) ensureScale() {
	if r.scale != nil {
		return
	}
	r.scale = detector.NewScale(scaleRelay{r})
}

func (r *Recognizer) ensureRotation() {
	if r.rotation != nil {
		return
	}
	r.rotation = detector.NewRotation(rotationRelay{r})
}

// lockedClock funnels timer callbacks through the recognizer mutex so the
// detectors and listener stay single-threaded.
type lockedClock struct {
	inner detector.Clock
	mu    *sync.Mutex
}

func (c lockedClock) Now() time.Time { return c.inner.Now() }

func (c lockedClock) AfterFunc(d time.Duration, fn func()) detector.Timer {
	return c.inner.AfterFunc(d, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		fn()
	})
}
