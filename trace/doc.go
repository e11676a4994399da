// Package trace records pointer event sequences and replays them with
// their original timing.
//
// A Recorder captures events as they flow toward a recognizer; Stop returns
// a Trace whose samples carry offsets from the first event. A Player feeds
// a trace back into any Sink (a *gesture.Recognizer works directly),
// sleeping between samples to reproduce the gesture, optionally scaled by a
// speed multiplier or with no sleeping at all. Save and Load persist traces
// as versioned JSON files.
//
// # Example
//
//	rec := trace.NewRecorder()
//	rec.Start("pinch-out")
//	// feed each pointer.Event to both rec.Record and the recognizer
//	tr := rec.Stop()
//	trace.Save(tr, "pinch-out.json")
//
//	tr, err := trace.Load("pinch-out.json")
//	if err != nil {
//		return err
//	}
//	player := trace.NewPlayer()
//	err = player.Play(ctx, tr, recognizer)
package trace
