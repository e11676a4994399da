package detector

import "time"

// maxVelocitySamples bounds the history kept by a VelocityTracker.
const maxVelocitySamples = 20

type velocitySample struct {
	t time.Time
	x float32
	y float32
}

// VelocityTracker estimates pointer velocity from recent position samples
// using a least-squares fit over a sliding time window.
type VelocityTracker struct {
	window  time.Duration
	samples []velocitySample
}

// NewVelocityTracker returns a tracker that considers samples no older
// than window when estimating.
func NewVelocityTracker(window time.Duration) *VelocityTracker {
	return &VelocityTracker{
		window:  window,
		samples: make([]velocitySample, 0, maxVelocitySamples),
	}
}

// Reset discards all samples. Call it when a new contact goes down or the
// tracked focus jumps discontinuously.
func (v *VelocityTracker) Reset() {
	v.samples = v.samples[:0]
}

// Add records a position sample.
func (v *VelocityTracker) Add(t time.Time, x, y float32) {
	if len(v.samples) == maxVelocitySamples {
		copy(v.samples, v.samples[1:])
		v.samples = v.samples[:maxVelocitySamples-1]
	}
	v.samples = append(v.samples, velocitySample{t: t, x: x, y: y})
}

// Velocity returns the estimated velocity in pixels per second over the
// window ending at the most recent sample. With fewer than two usable
// samples it returns zero.
func (v *VelocityTracker) Velocity() (vx, vy float32) {
	n := len(v.samples)
	if n < 2 {
		return 0, 0
	}

	newest := v.samples[n-1].t
	first := 0
	for first < n && newest.Sub(v.samples[first].t) > v.window {
		first++
	}
	use := v.samples[first:]
	if len(use) < 2 {
		return 0, 0
	}

	// Least-squares slope of position against time.
	var meanT, meanX, meanY float64
	base := use[0].t
	for _, s := range use {
		meanT += s.t.Sub(base).Seconds()
		meanX += float64(s.x)
		meanY += float64(s.y)
	}
	m := float64(len(use))
	meanT /= m
	meanX /= m
	meanY /= m

	var num, numY, den float64
	for _, s := range use {
		dt := s.t.Sub(base).Seconds() - meanT
		num += dt * (float64(s.x) - meanX)
		numY += dt * (float64(s.y) - meanY)
		den += dt * dt
	}
	if den == 0 {
		return 0, 0
	}
	return float32(num / den), float32(numY / den)
}
