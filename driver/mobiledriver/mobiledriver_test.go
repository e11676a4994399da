package mobiledriver

import (
	"testing"
	"time"

	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/touch"

	"github.com/dshills/gesturekit/pointer"
)

func collect(events *[]pointer.Event) func(pointer.Event) {
	return func(ev pointer.Event) {
		*events = append(*events, ev)
	}
}

func TestSingleTouchSequence(t *testing.T) {
	var got []pointer.Event
	tr := New(collect(&got))

	tr.HandleTouch(touch.Event{X: 5, Y: 6, Sequence: 7, Type: touch.TypeBegin})
	tr.HandleTouch(touch.Event{X: 8, Y: 9, Sequence: 7, Type: touch.TypeMove})
	tr.HandleTouch(touch.Event{X: 8, Y: 9, Sequence: 7, Type: touch.TypeEnd})

	want := []struct {
		action pointer.Action
		x, y   float32
	}{
		{pointer.ActionDown, 5, 6},
		{pointer.ActionMove, 8, 9},
		{pointer.ActionUp, 8, 9},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d", len(got), len(want))
	}
	for i, w := range want {
		ev := got[i]
		if ev.Action != w.action {
			t.Errorf("event %d: action = %v, want %v", i, ev.Action, w.action)
		}
		if len(ev.Points) != 1 {
			t.Fatalf("event %d: %d touches, want 1", i, len(ev.Points))
		}
		if ev.Points[0].ID != 0 {
			t.Errorf("event %d: touch id = %d, want 0", i, ev.Points[0].ID)
		}
		if ev.Points[0].X != w.x || ev.Points[0].Y != w.y {
			t.Errorf("event %d: touch at (%v,%v), want (%v,%v)", i, ev.Points[0].X, ev.Points[0].Y, w.x, w.y)
		}
	}
	if tr.ActiveContacts() != 0 {
		t.Errorf("%d contacts after sequence ended", tr.ActiveContacts())
	}
}

func TestTwoFingerSequence(t *testing.T) {
	var got []pointer.Event
	tr := New(collect(&got))

	tr.HandleTouch(touch.Event{X: 0, Y: 0, Sequence: 1, Type: touch.TypeBegin})
	tr.HandleTouch(touch.Event{X: 100, Y: 0, Sequence: 2, Type: touch.TypeBegin})
	tr.HandleTouch(touch.Event{X: 120, Y: 0, Sequence: 2, Type: touch.TypeMove})
	tr.HandleTouch(touch.Event{X: 0, Y: 0, Sequence: 1, Type: touch.TypeEnd})
	tr.HandleTouch(touch.Event{X: 120, Y: 0, Sequence: 2, Type: touch.TypeEnd})

	want := []struct {
		action  pointer.Action
		pointer pointer.ID
		touches int
	}{
		{pointer.ActionDown, 0, 1},
		{pointer.ActionPointerDown, 1, 2},
		{pointer.ActionMove, 1, 2},
		{pointer.ActionPointerUp, 0, 2},
		{pointer.ActionUp, 1, 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d", len(got), len(want))
	}
	for i, w := range want {
		ev := got[i]
		if ev.Action != w.action {
			t.Errorf("event %d: action = %v, want %v", i, ev.Action, w.action)
		}
		if ev.Pointer != w.pointer {
			t.Errorf("event %d: pointer = %d, want %d", i, ev.Pointer, w.pointer)
		}
		if len(ev.Points) != w.touches {
			t.Errorf("event %d: %d touches, want %d", i, len(ev.Points), w.touches)
		}
	}

	// The lift events still carry the leaving contact.
	if up := got[3]; up.Points[0].ID != 0 || up.Points[1].ID != 1 {
		t.Errorf("pointer-up touches = %v, want ids 0 then 1", up.Points)
	}
	if move := got[2]; move.Points[1].X != 120 {
		t.Errorf("move second touch x = %v, want 120", move.Points[1].X)
	}
}

func TestIDRecycling(t *testing.T) {
	var got []pointer.Event
	tr := New(collect(&got))

	tr.HandleTouch(touch.Event{X: 0, Y: 0, Sequence: 10, Type: touch.TypeBegin})
	tr.HandleTouch(touch.Event{X: 10, Y: 0, Sequence: 11, Type: touch.TypeBegin})
	tr.HandleTouch(touch.Event{X: 0, Y: 0, Sequence: 10, Type: touch.TypeEnd})
	tr.HandleTouch(touch.Event{X: 20, Y: 0, Sequence: 12, Type: touch.TypeBegin})

	last := got[len(got)-1]
	if last.Action != pointer.ActionPointerDown {
		t.Fatalf("action = %v, want %v", last.Action, pointer.ActionPointerDown)
	}
	if last.Pointer != 0 {
		t.Errorf("recycled pointer id = %d, want 0", last.Pointer)
	}
	if len(last.Points) != 2 || last.Points[0].ID != 1 || last.Points[1].ID != 0 {
		t.Errorf("touches = %v, want id 1 then id 0", last.Points)
	}
}

func TestMouseAsSingleContact(t *testing.T) {
	var got []pointer.Event
	tr := New(collect(&got))

	tr.HandleMouse(mouse.Event{X: 3, Y: 4, Direction: mouse.DirNone})
	tr.HandleMouse(mouse.Event{X: 3, Y: 4, Button: mouse.ButtonRight, Direction: mouse.DirPress})
	tr.HandleMouse(mouse.Event{X: 3, Y: 4, Button: mouse.ButtonWheelUp, Direction: mouse.DirStep})
	if len(got) != 0 {
		t.Fatalf("hover, right button and wheel emitted %d events", len(got))
	}

	tr.HandleMouse(mouse.Event{X: 3, Y: 4, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	tr.HandleMouse(mouse.Event{X: 9, Y: 4, Direction: mouse.DirNone})
	tr.HandleMouse(mouse.Event{X: 9, Y: 4, Button: mouse.ButtonLeft, Direction: mouse.DirRelease})

	actions := []pointer.Action{pointer.ActionDown, pointer.ActionMove, pointer.ActionUp}
	if len(got) != len(actions) {
		t.Fatalf("got %d events, want %d", len(got), len(actions))
	}
	for i, a := range actions {
		if got[i].Action != a {
			t.Errorf("event %d: action = %v, want %v", i, got[i].Action, a)
		}
		if len(got[i].Points) != 1 || got[i].Points[0].ID != 0 {
			t.Errorf("event %d: touches = %v, want one touch with id 0", i, got[i].Points)
		}
	}
}

func TestStaleSequenceIgnored(t *testing.T) {
	var got []pointer.Event
	tr := New(collect(&got))

	tr.HandleTouch(touch.Event{X: 1, Y: 1, Sequence: 99, Type: touch.TypeMove})
	tr.HandleTouch(touch.Event{X: 1, Y: 1, Sequence: 99, Type: touch.TypeEnd})

	if len(got) != 0 {
		t.Errorf("stale sequence emitted %d events", len(got))
	}
}

func TestBeginTwiceSameSequence(t *testing.T) {
	var got []pointer.Event
	tr := New(collect(&got))

	tr.HandleTouch(touch.Event{X: 0, Y: 0, Sequence: 1, Type: touch.TypeBegin})
	tr.HandleTouch(touch.Event{X: 5, Y: 5, Sequence: 1, Type: touch.TypeBegin})

	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	if got[1].Action != pointer.ActionMove {
		t.Errorf("second begin became %v, want %v", got[1].Action, pointer.ActionMove)
	}
	if tr.ActiveContacts() != 1 {
		t.Errorf("%d contacts, want 1", tr.ActiveContacts())
	}
}

func TestCancel(t *testing.T) {
	var got []pointer.Event
	tr := New(collect(&got))

	tr.Cancel()
	if len(got) != 0 {
		t.Fatalf("idle cancel emitted %d events", len(got))
	}

	tr.HandleTouch(touch.Event{X: 0, Y: 0, Sequence: 1, Type: touch.TypeBegin})
	tr.HandleTouch(touch.Event{X: 50, Y: 0, Sequence: 2, Type: touch.TypeBegin})
	tr.Cancel()

	last := got[len(got)-1]
	if last.Action != pointer.ActionCancel {
		t.Fatalf("action = %v, want %v", last.Action, pointer.ActionCancel)
	}
	if len(last.Points) != 2 {
		t.Errorf("cancel carried %d touches, want 2", len(last.Points))
	}
	if tr.ActiveContacts() != 0 {
		t.Errorf("%d contacts after cancel", tr.ActiveContacts())
	}

	// Ends for the cancelled sequences are stale now.
	n := len(got)
	tr.HandleTouch(touch.Event{X: 0, Y: 0, Sequence: 1, Type: touch.TypeEnd})
	tr.HandleTouch(touch.Event{X: 50, Y: 0, Sequence: 2, Type: touch.TypeEnd})
	if len(got) != n {
		t.Errorf("stale ends emitted %d extra events", len(got)-n)
	}
}

func TestFilterPassesEventsThrough(t *testing.T) {
	var got []pointer.Event
	tr := New(collect(&got))

	te := touch.Event{X: 1, Y: 2, Sequence: 1, Type: touch.TypeBegin}
	if out := tr.Filter(te); out != any(te) {
		t.Errorf("Filter returned %v, want the original event", out)
	}
	if len(got) != 1 || got[0].Action != pointer.ActionDown {
		t.Fatalf("filtered touch produced %v", got)
	}

	if out := tr.Filter("resize"); out != "resize" {
		t.Errorf("Filter changed an unrelated event to %v", out)
	}
	if len(got) != 1 {
		t.Errorf("unrelated event emitted %d extra events", len(got)-1)
	}
}

func TestEventsAreStamped(t *testing.T) {
	var got []pointer.Event
	tr := New(collect(&got))
	stamp := time.Unix(500, 0)
	tr.now = func() time.Time { return stamp }

	tr.HandleTouch(touch.Event{X: 1, Y: 1, Sequence: 1, Type: touch.TypeBegin})

	if len(got) != 1 {
		t.Fatalf("got %d events, want 1", len(got))
	}
	if !got[0].Time.Equal(stamp) {
		t.Errorf("event time %v, want %v", got[0].Time, stamp)
	}
}
