package gesture

import (
	"encoding/json"
	"testing"
)

func TestKindStringParseRoundTrip(t *testing.T) {
	kinds := []Kind{
		KindDown, KindUp, KindCancel, KindSingleTap, KindDoubleTap,
		KindLongPress, KindScroll, KindFling, KindScale, KindRotate,
	}

	for _, k := range kinds {
		t.Run(k.String(), func(t *testing.T) {
			parsed, err := ParseKind(k.String())
			if err != nil {
				t.Fatalf("ParseKind(%q) error: %v", k.String(), err)
			}
			if parsed != k {
				t.Errorf("ParseKind(%q) = %v, want %v", k.String(), parsed, k)
			}
		})
	}
}

func TestParseKindUnknown(t *testing.T) {
	if _, err := ParseKind("swipe"); err == nil {
		t.Error("ParseKind accepted an unknown kind")
	}
	if _, err := ParseKind("none"); err == nil {
		t.Error("ParseKind accepted the zero kind")
	}
}

func TestEventJSONKindAsText(t *testing.T) {
	raw, err := json.Marshal(Event{Kind: KindScale, X: 10, Y: 20, Factor: 1.5})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded Event
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Kind != KindScale || decoded.Factor != 1.5 || decoded.X != 10 {
		t.Errorf("round trip lost fields: %+v", decoded)
	}

	var wire map[string]any
	if err := json.Unmarshal(raw, &wire); err != nil {
		t.Fatalf("Unmarshal into map: %v", err)
	}
	if wire["kind"] != "scale" {
		t.Errorf("kind serialized as %v, want %q", wire["kind"], "scale")
	}
}

func TestCollectorLog(t *testing.T) {
	var c Collector

	c.OnDown(1, 2)
	c.OnScroll(3, 4, 5, 6, 7, 8)
	c.OnCancel()

	events := c.Events()
	if len(events) != 3 {
		t.Fatalf("collected %d events, want 3", len(events))
	}
	if events[0].Kind != KindDown || events[0].X != 1 || events[0].Y != 2 {
		t.Errorf("first event = %+v", events[0])
	}
	scroll := events[1]
	if scroll.Kind != KindScroll || scroll.DX != 3 || scroll.DY != 4 ||
		scroll.TotalX != 5 || scroll.TotalY != 6 || scroll.X != 7 || scroll.Y != 8 {
		t.Errorf("scroll event = %+v", scroll)
	}
	if events[2].Kind != KindCancel {
		t.Errorf("third event = %+v", events[2])
	}

	c.Reset()
	if len(c.Events()) != 0 {
		t.Error("Reset did not clear the log")
	}
}

func TestCollectorSink(t *testing.T) {
	var got []Event
	c := Collector{Sink: func(e Event) { got = append(got, e) }}

	c.OnScale(2, 50, 50)
	c.OnRotate(90, 0, 0)
	c.OnFling(100, -200)

	if len(got) != 3 {
		t.Fatalf("sink received %d events, want 3", len(got))
	}
	if got[0].Kind != KindScale || got[0].Factor != 2 {
		t.Errorf("scale event = %+v", got[0])
	}
	if got[1].Kind != KindRotate || got[1].Angle != 90 {
		t.Errorf("rotate event = %+v", got[1])
	}
	if got[2].Kind != KindFling || got[2].VelocityX != 100 || got[2].VelocityY != -200 {
		t.Errorf("fling event = %+v", got[2])
	}
	if len(c.Events()) != 0 {
		t.Error("sinked events were also logged")
	}
}
