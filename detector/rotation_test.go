package detector

import (
	"math"
	"testing"

	"github.com/dshills/gesturekit/pointer"
)

type rotationCall struct {
	kind  string
	angle float32
	x, y  float32
}

type recordingRotationHandler struct {
	accept bool
	calls  []rotationCall
}

func (h *recordingRotationHandler) OnRotateBegin(x, y float32) bool {
	h.calls = append(h.calls, rotationCall{kind: "begin", x: x, y: y})
	return h.accept
}

func (h *recordingRotationHandler) OnRotate(angle, x, y float32) {
	h.calls = append(h.calls, rotationCall{kind: "rotate", angle: angle, x: x, y: y})
}

func (h *recordingRotationHandler) OnRotateEnd(x, y float32) {
	h.calls = append(h.calls, rotationCall{kind: "end", x: x, y: y})
}

func (h *recordingRotationHandler) count(kind string) int {
	n := 0
	for _, c := range h.calls {
		if c.kind == kind {
			n++
		}
	}
	return n
}

func (h *recordingRotationHandler) lastAngle() float32 {
	var angle float32
	for _, c := range h.calls {
		if c.kind == "rotate" {
			angle = c.angle
		}
	}
	return angle
}

func rotEvent(action pointer.Action, acting pointer.ID, points ...pointer.Touch) pointer.Event {
	return pointer.Event{Action: action, Pointer: acting, Points: points}
}

func TestRotationQuarterTurn(t *testing.T) {
	h := &recordingRotationHandler{accept: true}
	r := NewRotation(h)

	r.OnPointerEvent(rotEvent(pointer.ActionDown, 0, pointer.Touch{ID: 0, X: 0, Y: 0}))
	r.OnPointerEvent(rotEvent(pointer.ActionPointerDown, 1,
		pointer.Touch{ID: 0, X: 0, Y: 0}, pointer.Touch{ID: 1, X: 100, Y: 0}))

	if h.count("begin") != 1 {
		t.Fatalf("begin fired %d times, want 1", h.count("begin"))
	}
	if b := h.calls[0]; b.x != 50 || b.y != 0 {
		t.Errorf("pivot = (%v, %v), want (50, 0)", b.x, b.y)
	}

	// Second contact sweeps from east to north of the first.
	r.OnPointerEvent(rotEvent(pointer.ActionMove, 1,
		pointer.Touch{ID: 0, X: 0, Y: 0}, pointer.Touch{ID: 1, X: 0, Y: 100}))

	if h.count("rotate") != 1 {
		t.Fatalf("rotate fired %d times, want 1", h.count("rotate"))
	}
	if got := h.lastAngle(); math.Abs(float64(got)-90) > 1e-3 {
		t.Errorf("angle = %v, want 90", got)
	}

	r.OnPointerEvent(rotEvent(pointer.ActionUp, 0, pointer.Touch{ID: 0, X: 0, Y: 0}))
	if h.count("end") != 1 {
		t.Errorf("end fired %d times, want 1", h.count("end"))
	}
}

func TestRotationAccumulatesPastHalfTurn(t *testing.T) {
	h := &recordingRotationHandler{accept: true}
	r := NewRotation(h)

	r.OnPointerEvent(rotEvent(pointer.ActionDown, 0, pointer.Touch{ID: 0, X: 0, Y: 0}))
	r.OnPointerEvent(rotEvent(pointer.ActionPointerDown, 1,
		pointer.Touch{ID: 0, X: 0, Y: 0}, pointer.Touch{ID: 1, X: 100, Y: 0}))

	// Sweep counterclockwise in quarter turns: 90, 180, 270, 360 degrees.
	steps := []pointer.Touch{
		{ID: 1, X: 0, Y: 100},
		{ID: 1, X: -100, Y: 0},
		{ID: 1, X: 0, Y: -100},
		{ID: 1, X: 100, Y: 0},
	}
	want := []float64{90, 180, 270, 360}
	for i, p := range steps {
		r.OnPointerEvent(rotEvent(pointer.ActionMove, 1, pointer.Touch{ID: 0, X: 0, Y: 0}, p))
		if got := h.lastAngle(); math.Abs(float64(got)-want[i]) > 1e-3 {
			t.Fatalf("after step %d angle = %v, want %v", i, got, want[i])
		}
	}
}

func TestRotationClockwiseIsNegative(t *testing.T) {
	h := &recordingRotationHandler{accept: true}
	r := NewRotation(h)

	r.OnPointerEvent(rotEvent(pointer.ActionDown, 0, pointer.Touch{ID: 0, X: 0, Y: 0}))
	r.OnPointerEvent(rotEvent(pointer.ActionPointerDown, 1,
		pointer.Touch{ID: 0, X: 0, Y: 0}, pointer.Touch{ID: 1, X: 100, Y: 0}))

	r.OnPointerEvent(rotEvent(pointer.ActionMove, 1,
		pointer.Touch{ID: 0, X: 0, Y: 0}, pointer.Touch{ID: 1, X: 0, Y: -100}))

	if got := h.lastAngle(); math.Abs(float64(got)+90) > 1e-3 {
		t.Errorf("angle = %v, want -90", got)
	}
}

func TestRotationPivotTracksMidpoint(t *testing.T) {
	h := &recordingRotationHandler{accept: true}
	r := NewRotation(h)

	r.OnPointerEvent(rotEvent(pointer.ActionDown, 0, pointer.Touch{ID: 0, X: 0, Y: 0}))
	r.OnPointerEvent(rotEvent(pointer.ActionPointerDown, 1,
		pointer.Touch{ID: 0, X: 0, Y: 0}, pointer.Touch{ID: 1, X: 100, Y: 0}))

	r.OnPointerEvent(rotEvent(pointer.ActionMove, 1,
		pointer.Touch{ID: 0, X: 20, Y: 20}, pointer.Touch{ID: 1, X: 20, Y: 120}))

	var last rotationCall
	for _, c := range h.calls {
		if c.kind == "rotate" {
			last = c
		}
	}
	if last.x != 20 || last.y != 70 {
		t.Errorf("pivot = (%v, %v), want (20, 70)", last.x, last.y)
	}
}

func TestRotationDeclinedThenAccepted(t *testing.T) {
	h := &recordingRotationHandler{accept: false}
	r := NewRotation(h)

	r.OnPointerEvent(rotEvent(pointer.ActionDown, 0, pointer.Touch{ID: 0, X: 0, Y: 0}))
	r.OnPointerEvent(rotEvent(pointer.ActionPointerDown, 1,
		pointer.Touch{ID: 0, X: 0, Y: 0}, pointer.Touch{ID: 1, X: 100, Y: 0}))

	r.OnPointerEvent(rotEvent(pointer.ActionMove, 1,
		pointer.Touch{ID: 0, X: 0, Y: 0}, pointer.Touch{ID: 1, X: 0, Y: 100}))
	if h.count("rotate") != 0 {
		t.Fatal("declined gesture still produced rotate updates")
	}

	// Accepting mid-gesture re-zeroes the accumulated angle.
	h.accept = true
	r.OnPointerEvent(rotEvent(pointer.ActionMove, 1,
		pointer.Touch{ID: 0, X: 0, Y: 0}, pointer.Touch{ID: 1, X: 0, Y: 100}))
	r.OnPointerEvent(rotEvent(pointer.ActionMove, 1,
		pointer.Touch{ID: 0, X: 0, Y: 0}, pointer.Touch{ID: 1, X: -100, Y: 0}))

	if got := h.lastAngle(); math.Abs(float64(got)-90) > 1e-3 {
		t.Errorf("angle after rebased acceptance = %v, want 90", got)
	}
}

func TestRotationCancelEndsGesture(t *testing.T) {
	h := &recordingRotationHandler{accept: true}
	r := NewRotation(h)

	r.OnPointerEvent(rotEvent(pointer.ActionDown, 0, pointer.Touch{ID: 0, X: 0, Y: 0}))
	r.OnPointerEvent(rotEvent(pointer.ActionPointerDown, 1,
		pointer.Touch{ID: 0, X: 0, Y: 0}, pointer.Touch{ID: 1, X: 100, Y: 0}))
	r.OnPointerEvent(pointer.Event{Action: pointer.ActionCancel})

	if h.count("end") != 1 {
		t.Errorf("end fired %d times on cancel, want 1", h.count("end"))
	}
}
