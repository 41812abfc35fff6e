// Package particle holds bounded pools of short-lived points used for
// engine smoke and flames.
package particle

import (
	"image/color"
	"iter"
	"math/rand/v2"
)

// Particle is a single world-space point.
type Particle struct {
	X float64
	Y float64
}

// System is a fixed-capacity pool of particles sharing one color. Once
// full, new particles replace random existing ones; Decay removes random
// ones. Ordering inside the pool carries no meaning.
type System struct {
	particles []Particle
	capacity  int
	color     color.RGBA
	rng       *rand.Rand
}

// NewSystem creates an empty system. A negative capacity is treated as 0,
// which yields a system that never holds anything.
func NewSystem(capacity int, c color.RGBA, rng *rand.Rand) *System {
	if capacity < 0 {
		capacity = 0
	}
	return &System{
		particles: make([]Particle, 0, capacity),
		capacity:  capacity,
		color:     c,
		rng:       rng,
	}
}

// Add inserts a particle at (x, y), overwriting a random slot when full.
func (s *System) Add(x, y float64) {
	if s.capacity == 0 {
		return
	}
	p := Particle{X: x, Y: y}
	if len(s.particles) < s.capacity {
		s.particles = append(s.particles, p)
		return
	}
	s.particles[s.rng.IntN(s.capacity)] = p
}

// Decay removes one random particle. Does nothing when empty.
func (s *System) Decay() {
	n := len(s.particles)
	if n == 0 {
		return
	}
	i := s.rng.IntN(n)
	s.particles[i] = s.particles[n-1]
	s.particles = s.particles[:n-1]
}

// Len returns the number of live particles.
func (s *System) Len() int { return len(s.particles) }

// Cap returns the maximum number of particles.
func (s *System) Cap() int { return s.capacity }

// Color returns the draw color shared by every particle.
func (s *System) Color() color.RGBA { return s.color }

// All yields the live particles. The sequence reflects the pool at the time
// each iteration starts and can be ranged over repeatedly.
func (s *System) All() iter.Seq[Particle] {
	return func(yield func(Particle) bool) {
		for _, p := range s.particles {
			if !yield(p) {
				return
			}
		}
	}
}
