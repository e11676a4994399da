package gesture

// Stats counts gestures delivered to the listener, by kind. Snapshots are
// taken with Recognizer.Stats.
type Stats struct {
	Down      uint64 `json:"down"`
	Up        uint64 `json:"up"`
	Cancel    uint64 `json:"cancel"`
	SingleTap uint64 `json:"single_tap"`
	DoubleTap uint64 `json:"double_tap"`
	LongPress uint64 `json:"long_press"`
	Scroll    uint64 `json:"scroll"`
	Fling     uint64 `json:"fling"`
	Scale     uint64 `json:"scale"`
	Rotate    uint64 `json:"rotate"`
}

// Total returns the number of deliveries across all kinds.
func (s Stats) Total() uint64 {
	return s.Down + s.Up + s.Cancel + s.SingleTap + s.DoubleTap +
		s.LongPress + s.Scroll + s.Fling + s.Scale + s.Rotate
}
