// pkg/clock/clock.go
package clock

import (
	"sync"
	"time"
)

// DefaultFrameRate is the number of milliseconds that make up one unit of
// simulation time.
const DefaultFrameRate = 100

// Clock supplies the current time and converts elapsed wall time into the
// time multiplier used by physics updates.
type Clock interface {
	Now() time.Time
	ElapsedMultiplier(since time.Time) float64
}

// FrameClock reads the system clock. One unit of multiplier corresponds to
// FrameRate milliseconds.
type FrameClock struct {
	FrameRate float64
}

// NewFrameClock creates a FrameClock. A non-positive frame rate falls back
// to DefaultFrameRate.
func NewFrameClock(frameRate float64) *FrameClock {
	if frameRate <= 0 {
		frameRate = DefaultFrameRate
	}
	return &FrameClock{FrameRate: frameRate}
}

// Now returns the current wall time.
func (c *FrameClock) Now() time.Time {
	return time.Now()
}

// ElapsedMultiplier returns the elapsed milliseconds since the given time
// divided by the frame rate.
func (c *FrameClock) ElapsedMultiplier(since time.Time) float64 {
	return multiplier(time.Since(since), c.FrameRate)
}

// Manual is a Clock that only moves when told to. It is safe for concurrent
// use.
type Manual struct {
	mu        sync.Mutex
	now       time.Time
	frameRate float64
}

// NewManual creates a Manual clock starting at start.
func NewManual(start time.Time, frameRate float64) *Manual {
	if frameRate <= 0 {
		frameRate = DefaultFrameRate
	}
	return &Manual{now: start, frameRate: frameRate}
}

// Now returns the clock's current time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// ElapsedMultiplier returns the multiplier between since and the clock's
// current time.
func (m *Manual) ElapsedMultiplier(since time.Time) float64 {
	return multiplier(m.Now().Sub(since), m.frameRate)
}

func multiplier(elapsed time.Duration, frameRate float64) float64 {
	return float64(elapsed.Milliseconds()) / frameRate
}
