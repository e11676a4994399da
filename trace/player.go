package trace

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/gesturekit/pointer"
)

// Player errors.
var (
	ErrAlreadyPlaying = errors.New("already playing a trace")
	ErrEmptyTrace     = errors.New("trace has no samples")
	ErrNilSink        = errors.New("sink cannot be nil")
)

// Sink receives replayed pointer events. *gesture.Recognizer satisfies it.
type Sink interface {
	OnPointerEvent(ev pointer.Event)
}

// Player replays traces into a sink, reproducing the recorded timing.
type Player struct {
	mu      sync.Mutex
	playing atomic.Bool
	cancel  context.CancelFunc
	speed   float64
}

// NewPlayer creates a player that replays at the recorded speed.
func NewPlayer() *Player {
	return &Player{speed: 1}
}

// SetSpeed sets the playback speed multiplier: 2 plays twice as fast, 0.5
// at half speed. Zero or negative means instant playback with no sleeping;
// event timestamps still carry the recorded offsets so time-sensitive
// consumers behave the same.
func (p *Player) SetSpeed(mult float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.speed = mult
}

// Speed returns the current playback speed multiplier.
func (p *Player) Speed() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.speed
}

// IsPlaying reports whether a replay is in progress.
func (p *Player) IsPlaying() bool {
	return p.playing.Load()
}

// Cancel stops the current replay. Safe to call when idle.
func (p *Player) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
	}
}

// Play replays the trace into sink, blocking until the last event is
// delivered, the context ends, or Cancel is called. Each replayed event's
// Time is rewritten onto the playback timeline.
func (p *Player) Play(ctx context.Context, tr *Trace, sink Sink) error {
	if sink == nil {
		return ErrNilSink
	}
	if tr == nil || len(tr.Samples) == 0 {
		return ErrEmptyTrace
	}

	childCtx, cancel := context.WithCancel(ctx)

	p.mu.Lock()
	if p.playing.Load() {
		p.mu.Unlock()
		cancel()
		return ErrAlreadyPlaying
	}
	p.cancel = cancel
	p.playing.Store(true)
	speed := p.speed
	p.mu.Unlock()

	defer func() {
		cancel()
		p.playing.Store(false)
		p.mu.Lock()
		p.cancel = nil
		p.mu.Unlock()
	}()

	start := time.Now()
	for _, sample := range tr.Samples {
		offset := sample.Offset
		if speed > 0 {
			offset = time.Duration(float64(sample.Offset) / speed)
			if err := sleepUntil(childCtx, start.Add(offset)); err != nil {
				return err
			}
		} else if err := childCtx.Err(); err != nil {
			return err
		}

		ev := sample.Event.Clone()
		ev.Time = start.Add(offset)
		sink.OnPointerEvent(ev)
	}
	return nil
}

func sleepUntil(ctx context.Context, deadline time.Time) error {
	d := time.Until(deadline)
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
