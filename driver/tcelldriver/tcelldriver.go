// Package tcelldriver feeds terminal mouse input to a gesture
// recognizer. Terminals report a single pointer, so the primary button
// maps to one contact: press starts it, motion with the button held
// moves it, release ends it. Coordinates are terminal cells; tune
// thresholds accordingly when cell-sized slop feels too coarse.
package tcelldriver

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/gesturekit/pointer"
)

// Translator converts tcell mouse events into pointer events and
// pushes them to a sink. Wheel events and non-primary buttons are
// ignored.
type Translator struct {
	mu      sync.Mutex
	sink    func(pointer.Event)
	pressed bool
	lastX   float32
	lastY   float32
}

// New returns a Translator that delivers pointer events to sink.
// A recognizer's OnPointerEvent method value works directly as the
// sink.
func New(sink func(pointer.Event)) *Translator {
	return &Translator{sink: sink}
}

// Handle translates a single mouse event. Repeated reports at an
// unchanged position are dropped so modifier-only updates do not
// surface as moves.
func (t *Translator) Handle(ev *tcell.EventMouse) {
	t.mu.Lock()
	defer t.mu.Unlock()

	x, y := ev.Position()
	fx, fy := float32(x), float32(y)
	held := ev.Buttons()&tcell.Button1 != 0

	switch {
	case held && !t.pressed:
		t.pressed = true
		t.lastX, t.lastY = fx, fy
		t.emit(pointer.ActionDown, fx, fy, ev.When())
	case held && t.pressed:
		if fx == t.lastX && fy == t.lastY {
			return
		}
		t.lastX, t.lastY = fx, fy
		t.emit(pointer.ActionMove, fx, fy, ev.When())
	case !held && t.pressed:
		t.pressed = false
		t.lastX, t.lastY = fx, fy
		t.emit(pointer.ActionUp, fx, fy, ev.When())
	}
}

// Cancel aborts any in-flight contact with a cancel event. Call it
// when the screen is suspended or torn down so a held button does not
// leave the recognizer mid-gesture.
func (t *Translator) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.pressed {
		return
	}
	t.pressed = false
	t.emit(pointer.ActionCancel, t.lastX, t.lastY, time.Now())
}

// Pressed reports whether a contact is currently in flight.
func (t *Translator) Pressed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pressed
}

func (t *Translator) emit(action pointer.Action, x, y float32, at time.Time) {
	if t.sink == nil {
		return
	}
	t.sink(pointer.Event{
		Action: action,
		Points: []pointer.Touch{{ID: 0, X: x, Y: y}},
		Time:   at,
	})
}
