package trace

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/gesturekit/pointer"
)

// ErrAlreadyRecording is returned by Start while a recording is in progress.
var ErrAlreadyRecording = errors.New("already recording a trace")

// Sample is one pointer event placed on the trace timeline. Offset is
// measured from the first recorded event.
type Sample struct {
	Offset time.Duration
	Event  pointer.Event
}

// Trace is a recorded pointer event sequence that can be replayed or saved
// to disk.
type Trace struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	Samples   []Sample
}

// Len returns the number of samples.
func (t *Trace) Len() int {
	return len(t.Samples)
}

// Duration returns the offset of the last sample, which is the total
// timeline length.
func (t *Trace) Duration() time.Duration {
	if len(t.Samples) == 0 {
		return 0
	}
	return t.Samples[len(t.Samples)-1].Offset
}

// Recorder captures pointer events into a trace. Events carry their own
// timestamps, so offsets reflect the original gesture timing no matter how
// quickly Record is called.
type Recorder struct {
	mu        sync.Mutex
	recording bool
	name      string
	start     time.Time
	last      time.Duration
	started   bool
	samples   []Sample
}

// NewRecorder creates an idle recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Start begins a new recording. Returns ErrAlreadyRecording if one is in
// progress.
func (r *Recorder) Start(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording {
		return ErrAlreadyRecording
	}
	r.recording = true
	r.name = name
	r.started = false
	r.last = 0
	r.samples = nil
	return nil
}

// Record appends an event to the current recording. Does nothing when not
// recording. The event is deep-copied, so callers may reuse the Points
// slice.
func (r *Recorder) Record(ev pointer.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.recording {
		return
	}

	var offset time.Duration
	if !r.started {
		r.start = ev.Time
		r.started = true
	} else {
		offset = ev.Time.Sub(r.start)
		// Offsets never run backwards even if event timestamps do.
		if offset < r.last {
			offset = r.last
		}
	}
	r.last = offset
	r.samples = append(r.samples, Sample{Offset: offset, Event: ev.Clone()})
}

// Stop ends the recording and returns the trace, or nil when not recording.
func (r *Recorder) Stop() *Trace {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.recording {
		return nil
	}
	r.recording = false

	tr := &Trace{
		ID:        uuid.New(),
		Name:      r.name,
		CreatedAt: time.Now(),
		Samples:   r.samples,
	}
	r.samples = nil
	return tr
}

// IsRecording reports whether a recording is in progress.
func (r *Recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// SampleCount returns the number of events recorded so far, or 0 when not
// recording.
func (r *Recorder) SampleCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.recording {
		return 0
	}
	return len(r.samples)
}
