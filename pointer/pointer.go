package pointer

import (
	"fmt"
	"time"
)

// ID identifies a single contact for the duration of its touch.
type ID int32

// Action represents the type of pointer transition.
type Action uint8

const (
	// ActionNone indicates no action.
	ActionNone Action = iota
	// ActionDown is the first contact touching down.
	ActionDown
	// ActionMove is any movement of the active contacts.
	ActionMove
	// ActionUp is the last contact lifting.
	ActionUp
	// ActionCancel aborts the current gesture stream.
	ActionCancel
	// ActionPointerDown is an additional contact touching down.
	ActionPointerDown
	// ActionPointerUp is a non-final contact lifting.
	ActionPointerUp
)

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionDown:
		return "down"
	case ActionMove:
		return "move"
	case ActionUp:
		return "up"
	case ActionCancel:
		return "cancel"
	case ActionPointerDown:
		return "pointer-down"
	case ActionPointerUp:
		return "pointer-up"
	default:
		return "none"
	}
}

// ParseAction returns the Action named by s.
func ParseAction(s string) (Action, error) {
	for a := ActionDown; a <= ActionPointerUp; a++ {
		if a.String() == s {
			return a, nil
		}
	}
	return ActionNone, fmt.Errorf("unknown pointer action %q", s)
}

// Touch is the position of one active contact.
type Touch struct {
	ID ID
	X  float32
	Y  float32
}

// Event represents one pointer transition plus a snapshot of all active
// contacts at that moment.
type Event struct {
	// Action is the kind of transition.
	Action Action

	// Pointer is the contact the action applies to.
	Pointer ID

	// Points are all active contacts, in arrival order, including the
	// acting contact. For ActionPointerUp the lifting contact is still
	// present.
	Points []Touch

	// Time is when the event occurred.
	Time time.Time
}

// Count returns the number of active contacts.
func (e Event) Count() int {
	return len(e.Points)
}

// Primary returns the first active contact, or a zero Touch if none.
func (e Event) Primary() Touch {
	if len(e.Points) == 0 {
		return Touch{}
	}
	return e.Points[0]
}

// Find returns the contact with the given id.
func (e Event) Find(id ID) (Touch, bool) {
	for _, t := range e.Points {
		if t.ID == id {
			return t, true
		}
	}
	return Touch{}, false
}

// Focus returns the arithmetic mean of all active contacts. With no
// contacts it returns the origin.
func (e Event) Focus() (x, y float32) {
	if len(e.Points) == 0 {
		return 0, 0
	}
	for _, t := range e.Points {
		x += t.X
		y += t.Y
	}
	n := float32(len(e.Points))
	return x / n, y / n
}

// Clone returns a deep copy of the event. Producers may reuse the Points
// slice between calls, so consumers that retain events must clone them.
func (e Event) Clone() Event {
	out := e
	if e.Points != nil {
		out.Points = make([]Touch, len(e.Points))
		copy(out.Points, e.Points)
	}
	return out
}
