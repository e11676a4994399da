package gesture

import "fmt"

// Kind identifies a classified gesture.
type Kind uint8

const (
	// KindNone indicates no gesture.
	KindNone Kind = iota
	// KindDown is an initial contact.
	KindDown
	// KindUp is the final release.
	KindUp
	// KindCancel is an aborted gesture stream.
	KindCancel
	// KindSingleTap is a completed single tap.
	KindSingleTap
	// KindDoubleTap is a completed double tap.
	KindDoubleTap
	// KindLongPress is a press held past the long-press timeout.
	KindLongPress
	// KindScroll is one step of a drag.
	KindScroll
	// KindFling is a fast release.
	KindFling
	// KindScale is one update of a pinch.
	KindScale
	// KindRotate is one update of a rotation.
	KindRotate
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindDown:
		return "down"
	case KindUp:
		return "up"
	case KindCancel:
		return "cancel"
	case KindSingleTap:
		return "single-tap"
	case KindDoubleTap:
		return "double-tap"
	case KindLongPress:
		return "long-press"
	case KindScroll:
		return "scroll"
	case KindFling:
		return "fling"
	case KindScale:
		return "scale"
	case KindRotate:
		return "rotate"
	default:
		return "none"
	}
}

// ParseKind returns the Kind named by s.
func ParseKind(s string) (Kind, error) {
	for k := KindDown; k <= KindRotate; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return KindNone, fmt.Errorf("unknown gesture kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Event is one classified gesture in flat value form. The Listener
// interface is the primary contract; Events exist for consumers that want
// values to log, serialize or script against. Only the fields relevant to
// the Kind are set.
type Event struct {
	Kind Kind `json:"kind"`

	// X, Y locate the gesture: the tap point, the current scroll
	// position, or the scale focus / rotation pivot.
	X float32 `json:"x"`
	Y float32 `json:"y"`

	// DX, DY are the per-step scroll deltas.
	DX float32 `json:"dx,omitempty"`
	DY float32 `json:"dy,omitempty"`

	// TotalX, TotalY are the scroll deltas accumulated since the down.
	TotalX float32 `json:"total_x,omitempty"`
	TotalY float32 `json:"total_y,omitempty"`

	// VelocityX, VelocityY carry fling velocity in pixels per second.
	VelocityX float32 `json:"velocity_x,omitempty"`
	VelocityY float32 `json:"velocity_y,omitempty"`

	// Factor is the scale factor of a scale update.
	Factor float32 `json:"factor,omitempty"`

	// Angle is the accumulated rotation in degrees of a rotate update.
	Angle float32 `json:"angle,omitempty"`
}

// Collector is a Listener that turns callbacks into Events. When Sink is
// set each Event is handed to it as it happens; otherwise Events are
// appended to an internal log retrievable with Events. Collector is not
// safe for concurrent use on its own; a Recognizer serializes deliveries.
type Collector struct {
	// Sink, when non-nil, receives each Event instead of the log.
	Sink func(Event)

	events []Event
}

// Events returns the collected log when no Sink is set.
func (c *Collector) Events() []Event {
	return c.events
}

// Reset discards the collected log.
func (c *Collector) Reset() {
	c.events = c.events[:0]
}

func (c *Collector) emit(e Event) {
	if c.Sink != nil {
		c.Sink(e)
		return
	}
	c.events = append(c.events, e)
}

// OnDown implements Listener.
func (c *Collector) OnDown(x, y float32) {
	c.emit(Event{Kind: KindDown, X: x, Y: y})
}

// OnUp implements Listener.
func (c *Collector) OnUp(x, y float32) {
	c.emit(Event{Kind: KindUp, X: x, Y: y})
}

// OnCancel implements Listener.
func (c *Collector) OnCancel() {
	c.emit(Event{Kind: KindCancel})
}

// OnSingleTap implements Listener.
func (c *Collector) OnSingleTap(x, y float32) {
	c.emit(Event{Kind: KindSingleTap, X: x, Y: y})
}

// OnDoubleTap implements Listener.
func (c *Collector) OnDoubleTap(x, y float32) {
	c.emit(Event{Kind: KindDoubleTap, X: x, Y: y})
}

// OnLongPress implements Listener.
func (c *Collector) OnLongPress(x, y float32) {
	c.emit(Event{Kind: KindLongPress, X: x, Y: y})
}

// OnScroll implements Listener.
func (c *Collector) OnScroll(dx, dy, totalX, totalY, x, y float32) {
	c.emit(Event{Kind: KindScroll, X: x, Y: y, DX: dx, DY: dy, TotalX: totalX, TotalY: totalY})
}

// OnFling implements Listener.
func (c *Collector) OnFling(velocityX, velocityY float32) {
	c.emit(Event{Kind: KindFling, VelocityX: velocityX, VelocityY: velocityY})
}

// OnScale implements Listener.
func (c *Collector) OnScale(factor, focusX, focusY float32) {
	c.emit(Event{Kind: KindScale, X: focusX, Y: focusY, Factor: factor})
}

// OnRotate implements Listener.
func (c *Collector) OnRotate(angle, pivotX, pivotY float32) {
	c.emit(Event{Kind: KindRotate, X: pivotX, Y: pivotY, Angle: angle})
}
