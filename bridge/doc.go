// Package bridge serves gesture recognition over websockets.
//
// Each client that connects to /ws gets its own session with a dedicated
// recognizer, so interleaved clients never share gesture state. The client
// streams raw pointer frames and receives classified gestures back on the
// same connection.
//
// # Wire format
//
// All frames are JSON text messages with a "type" field. Client to server:
//
//	{"type": "pointer", "action": "down",
//	 "points": [{"id": 0, "x": 10, "y": 20}], "time_ms": 1700000000000}
//
//	{"type": "configure", "double_tap": true, "scale": false}
//
// Pointer actions are "down", "move", "up", "cancel", "pointer-down" and
// "pointer-up". time_ms is optional epoch milliseconds; omitted means the
// arrival time. Configure toggles omitted from the frame keep their current
// value.
//
// Server to client:
//
//	{"type": "welcome", "session": "2b1c..."}
//	{"type": "gesture", "gesture": {"kind": "single-tap", "x": 10, "y": 20}}
//	{"type": "configured", "configured": {"long_press": true, ...}}
//	{"type": "error", "error": "unknown pointer action \"tap\""}
//
// /healthz answers {"status":"ok"} and /stats reports session and event
// counters.
package bridge
