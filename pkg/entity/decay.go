package entity

// DefaultDecayThreshold is the accumulated time between smoke decays.
const DefaultDecayThreshold = 0.05

// DecayTimer accumulates tick time and fires once each time the total passes
// the threshold. At most one firing is reported per Advance. A timer may be
// shared between engines, in which case every engine's time counts toward
// the same total.
type DecayTimer struct {
	Threshold float64
	elapsed   float64
}

// NewDecayTimer creates a timer with the default threshold.
func NewDecayTimer() *DecayTimer {
	return &DecayTimer{Threshold: DefaultDecayThreshold}
}

// Advance adds dt and reports whether the threshold was passed.
func (d *DecayTimer) Advance(dt float64) bool {
	d.elapsed += dt
	if d.elapsed > d.Threshold {
		d.elapsed -= d.Threshold
		return true
	}
	return false
}

// Elapsed returns the time accumulated since the last firing.
func (d *DecayTimer) Elapsed() float64 {
	return d.elapsed
}
