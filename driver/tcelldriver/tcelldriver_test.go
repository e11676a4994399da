package tcelldriver

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/gesturekit/pointer"
)

func collect(events *[]pointer.Event) func(pointer.Event) {
	return func(ev pointer.Event) {
		*events = append(*events, ev)
	}
}

func TestPressDragRelease(t *testing.T) {
	var got []pointer.Event
	tr := New(collect(&got))

	tr.Handle(tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone))
	tr.Handle(tcell.NewEventMouse(14, 6, tcell.Button1, tcell.ModNone))
	tr.Handle(tcell.NewEventMouse(14, 6, tcell.Button1, tcell.ModNone))
	tr.Handle(tcell.NewEventMouse(15, 8, tcell.ButtonNone, tcell.ModNone))

	want := []struct {
		action pointer.Action
		x, y   float32
	}{
		{pointer.ActionDown, 10, 5},
		{pointer.ActionMove, 14, 6},
		{pointer.ActionUp, 15, 8},
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
		if ev.Time.IsZero() {
			t.Errorf("event %d: zero timestamp", i)
		}
	}
}

func TestIgnoredEvents(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventMouse
	}{
		{"hover", tcell.NewEventMouse(3, 3, tcell.ButtonNone, tcell.ModNone)},
		{"wheel", tcell.NewEventMouse(3, 3, tcell.WheelUp, tcell.ModNone)},
		{"secondary button", tcell.NewEventMouse(3, 3, tcell.Button2, tcell.ModNone)},
		{"right button", tcell.NewEventMouse(3, 3, tcell.Button3, tcell.ModNone)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []pointer.Event
			tr := New(collect(&got))
			tr.Handle(tt.ev)
			if len(got) != 0 {
				t.Errorf("got %d events, want none", len(got))
			}
			if tr.Pressed() {
				t.Error("translator reports a contact in flight")
			}
		})
	}
}

func TestWheelDuringDragKeepsContact(t *testing.T) {
	var got []pointer.Event
	tr := New(collect(&got))

	tr.Handle(tcell.NewEventMouse(0, 0, tcell.Button1, tcell.ModNone))
	tr.Handle(tcell.NewEventMouse(2, 0, tcell.Button1|tcell.WheelDown, tcell.ModNone))
	tr.Handle(tcell.NewEventMouse(2, 0, tcell.ButtonNone, tcell.ModNone))

	actions := []pointer.Action{pointer.ActionDown, pointer.ActionMove, pointer.ActionUp}
	if len(got) != len(actions) {
		t.Fatalf("got %d events, want %d", len(got), len(actions))
	}
	for i, a := range actions {
		if got[i].Action != a {
			t.Errorf("event %d: action = %v, want %v", i, got[i].Action, a)
		}
	}
}

func TestCancelMidDrag(t *testing.T) {
	var got []pointer.Event
	tr := New(collect(&got))

	tr.Handle(tcell.NewEventMouse(4, 4, tcell.Button1, tcell.ModNone))
	tr.Handle(tcell.NewEventMouse(9, 4, tcell.Button1, tcell.ModNone))
	tr.Cancel()

	if len(got) != 3 {
		t.Fatalf("got %d events, want 3", len(got))
	}
	last := got[2]
	if last.Action != pointer.ActionCancel {
		t.Fatalf("action = %v, want %v", last.Action, pointer.ActionCancel)
	}
	if last.Points[0].X != 9 || last.Points[0].Y != 4 {
		t.Errorf("cancel at (%v,%v), want (9,4)", last.Points[0].X, last.Points[0].Y)
	}
	if tr.Pressed() {
		t.Error("contact still in flight after cancel")
	}

	// The release for the already-cancelled contact is silent.
	tr.Handle(tcell.NewEventMouse(9, 4, tcell.ButtonNone, tcell.ModNone))
	if len(got) != 3 {
		t.Errorf("release after cancel emitted %d extra events", len(got)-3)
	}
}

func TestCancelIdle(t *testing.T) {
	var got []pointer.Event
	tr := New(collect(&got))
	tr.Cancel()
	if len(got) != 0 {
		t.Errorf("idle cancel emitted %d events", len(got))
	}
}

func TestTimeComesFromEvent(t *testing.T) {
	var got []pointer.Event
	tr := New(collect(&got))

	ev := tcell.NewEventMouse(1, 1, tcell.Button1, tcell.ModNone)
	tr.Handle(ev)

	if len(got) != 1 {
		t.Fatalf("got %d events, want 1", len(got))
	}
	if !got[0].Time.Equal(ev.When()) {
		t.Errorf("event time %v, want %v", got[0].Time, ev.When())
	}
}

func TestNilSink(t *testing.T) {
	tr := New(nil)
	tr.Handle(tcell.NewEventMouse(1, 1, tcell.Button1, tcell.ModNone))
	tr.Cancel()
	if tr.Pressed() {
		t.Error("contact in flight after cancel")
	}
}
