// Package mobiledriver feeds golang.org/x/mobile input events to a
// gesture recognizer. Touch sequences map to contacts directly, so
// multi-finger gestures come through with full contact sets; the left
// mouse button maps to a single synthetic contact so desktop builds of
// a mobile app behave like a one-finger touch screen.
package mobiledriver

import (
	"sync"
	"time"

	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/touch"

	"github.com/dshills/gesturekit/pointer"
)

// mouseSequence keys the synthetic mouse contact. Host touch
// sequences are non-negative, so it can never collide.
const mouseSequence touch.Sequence = -1

// Translator converts x/mobile touch and mouse events into pointer
// events and pushes them to a sink. The host events carry no
// timestamps, so events are stamped as they arrive.
type Translator struct {
	mu       sync.Mutex
	sink     func(pointer.Event)
	now      func() time.Time
	order    []touch.Sequence
	contacts map[touch.Sequence]pointer.Touch
}

// New returns a Translator that delivers pointer events to sink.
func New(sink func(pointer.Event)) *Translator {
	return &Translator{
		sink:     sink,
		now:      time.Now,
		contacts: make(map[touch.Sequence]pointer.Touch),
	}
}

// Filter translates touch and mouse events and returns e unchanged, so
// it can sit inline in an app event loop the way app.Filter does:
//
//	for e := range a.Events() {
//		switch e := tr.Filter(a.Filter(e)).(type) {
//		...
//	}
func (t *Translator) Filter(e any) any {
	switch e := e.(type) {
	case touch.Event:
		t.HandleTouch(e)
	case mouse.Event:
		t.HandleMouse(e)
	}
	return e
}

// HandleTouch translates one touch event. Moves and ends for unknown
// sequences are dropped; they show up after Cancel cleared a gesture
// the host still thinks is running.
func (t *Translator) HandleTouch(e touch.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch e.Type {
	case touch.TypeBegin:
		t.begin(e.Sequence, e.X, e.Y)
	case touch.TypeMove:
		t.move(e.Sequence, e.X, e.Y)
	case touch.TypeEnd:
		t.end(e.Sequence, e.X, e.Y)
	}
}

// HandleMouse translates one mouse event. Wheel steps and non-left
// buttons are ignored; motion only counts while the left button is
// down.
func (t *Translator) HandleMouse(e mouse.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch e.Direction {
	case mouse.DirPress:
		if e.Button == mouse.ButtonLeft {
			t.begin(mouseSequence, e.X, e.Y)
		}
	case mouse.DirRelease:
		if e.Button == mouse.ButtonLeft {
			t.end(mouseSequence, e.X, e.Y)
		}
	case mouse.DirNone:
		if _, ok := t.contacts[mouseSequence]; ok {
			t.move(mouseSequence, e.X, e.Y)
		}
	}
}

// Cancel aborts all in-flight contacts with a single cancel event
// carrying the final contact set. Call it when the app loses the
// screen, for example on a lifecycle stage drop, so stale sequences
// cannot strand the recognizer mid-gesture.
func (t *Translator) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.contacts) == 0 {
		return
	}
	t.emit(pointer.ActionCancel, 0)
	t.contacts = make(map[touch.Sequence]pointer.Touch)
	t.order = t.order[:0]
}

// ActiveContacts reports how many contacts are currently in flight.
func (t *Translator) ActiveContacts() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.contacts)
}

func (t *Translator) begin(seq touch.Sequence, x, y float32) {
	if _, ok := t.contacts[seq]; ok {
		// A begin for a live sequence is a move in disguise.
		t.move(seq, x, y)
		return
	}
	c := pointer.Touch{ID: t.freeID(), X: x, Y: y}
	t.contacts[seq] = c
	t.order = append(t.order, seq)

	action := pointer.ActionDown
	if len(t.contacts) > 1 {
		action = pointer.ActionPointerDown
	}
	t.emit(action, c.ID)
}

func (t *Translator) move(seq touch.Sequence, x, y float32) {
	c, ok := t.contacts[seq]
	if !ok {
		return
	}
	c.X, c.Y = x, y
	t.contacts[seq] = c
	t.emit(pointer.ActionMove, c.ID)
}

func (t *Translator) end(seq touch.Sequence, x, y float32) {
	c, ok := t.contacts[seq]
	if !ok {
		return
	}
	c.X, c.Y = x, y
	t.contacts[seq] = c

	action := pointer.ActionUp
	if len(t.contacts) > 1 {
		action = pointer.ActionPointerUp
	}
	t.emit(action, c.ID)

	delete(t.contacts, seq)
	for i, s := range t.order {
		if s == seq {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// freeID hands out the smallest id no live contact holds, the way
// platform pointer ids recycle.
func (t *Translator) freeID() pointer.ID {
	for id := pointer.ID(0); ; id++ {
		used := false
		for _, c := range t.contacts {
			if c.ID == id {
				used = true
				break
			}
		}
		if !used {
			return id
		}
	}
}

// emit snapshots the contact set in arrival order. Callers hold mu.
func (t *Translator) emit(action pointer.Action, id pointer.ID) {
	if t.sink == nil {
		return
	}
	pts := make([]pointer.Touch, 0, len(t.order))
	for _, seq := range t.order {
		pts = append(pts, t.contacts[seq])
	}
	t.sink(pointer.Event{
		Action:  action,
		Pointer: id,
		Points:  pts,
		Time:    t.now(),
	})
}
