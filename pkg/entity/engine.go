// pkg/entity/engine.go
package entity

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/opd-ai/go-thrusters/pkg/particle"
	"github.com/opd-ai/go-thrusters/pkg/physics"
)

// Exhaust tuning. Pool sizes grow with the log of thrust; particles emitted
// per burn grow with the mount's X extent.
const (
	sideTolerance = 0.1

	smokePerLogThrust  = 8
	redPerLogThrust    = 3
	orangePerLogThrust = 3

	smokePerLength  = 0.5
	redPerLength    = 2
	orangePerLength = 6
)

// Exhaust colors
var (
	SmokeColor       = color.RGBA{R: 230, G: 230, B: 230, A: 0xff}
	RedFlameColor    = color.RGBA{R: 255, G: 20, B: 20, A: 0xff}
	OrangeFlameColor = color.RGBA{R: 180, G: 140, B: 60, A: 0xff}
)

// Engine is a thruster mounted on one of its ship's rects. It pushes along
// the mount's Y axis and leaves smoke and flame particles behind.
type Engine struct {
	rectIndex   int
	thrust      float64
	smoke       *particle.System
	redFlame    *particle.System
	orangeFlame *particle.System
	thrusting   bool
	decay       *DecayTimer
	rng         *rand.Rand
}

func newEngine(rectIndex int, thrust float64, rng *rand.Rand, decay *DecayTimer) (*Engine, error) {
	if !(thrust > 0) {
		return nil, fmt.Errorf("thrust %g: %w", thrust, ErrInvalidThrust)
	}
	logThrust := math.Log(thrust)
	return &Engine{
		rectIndex:   rectIndex,
		thrust:      thrust,
		smoke:       particle.NewSystem(int(logThrust*smokePerLogThrust), SmokeColor, rng),
		redFlame:    particle.NewSystem(int(logThrust*redPerLogThrust), RedFlameColor, rng),
		orangeFlame: particle.NewSystem(int(logThrust*orangePerLogThrust), OrangeFlameColor, rng),
		decay:       decay,
		rng:         rng,
	}, nil
}

// RectIndex returns the index of the mount rect in the ship's rect list.
func (e *Engine) RectIndex() int { return e.rectIndex }

// Thrust returns the force magnitude produced per burn.
func (e *Engine) Thrust() float64 { return e.thrust }

// Thrusting reports whether the engine fired since smoke was last rendered.
func (e *Engine) Thrusting() bool { return e.thrusting }

// Smoke returns the smoke particles.
func (e *Engine) Smoke() *particle.System { return e.smoke }

// RedFlame returns the red flame particles.
func (e *Engine) RedFlame() *particle.System { return e.redFlame }

// OrangeFlame returns the orange flame particles.
func (e *Engine) OrangeFlame() *particle.System { return e.orangeFlame }

// DecayTimer returns the timer pacing smoke decay.
func (e *Engine) DecayTimer() *DecayTimer { return e.decay }

// Side returns the signed cross term deciding which way the engine turns the
// ship: positive for right side engines, negative for left side ones.
func (e *Engine) Side(s *Ship) float64 {
	mount := e.mount(s)
	return mount.AxisY.Y*mount.Offset.X - mount.AxisY.X*mount.Offset.Y
}

// ComputeAndApplyThrust fires the engine on s for a tick of length dt.
func (e *Engine) ComputeAndApplyThrust(s *Ship, dt float64) {
	e.thrusting = true

	mount := e.mount(s)
	force := mount.AxisY.Scale(e.thrust)
	s.ApplyForce(force.X, force.Y, mount.Offset.X, mount.Offset.Y)

	base := mount.WorldCenter(s.body.Center)
	across := mount.AxisX.Scale(mount.ExtentX)
	behind := mount.AxisY.Scale(mount.ExtentY)
	drift := s.motion.Velocity.Scale(dt)

	e.emit(e.smoke, smokePerLength*mount.ExtentX, base, across, behind, drift)
	e.emit(e.redFlame, redPerLength*mount.ExtentX, base, across, behind, drift)
	e.emit(e.orangeFlame, orangePerLength*mount.ExtentX, base, across, behind, drift)
}

// ThrustIfRightSide fires only when the engine sits on the right side.
func (e *Engine) ThrustIfRightSide(s *Ship, dt float64) {
	if e.Side(s) > sideTolerance {
		e.ComputeAndApplyThrust(s, dt)
	}
}

// ThrustIfLeftSide fires only when the engine sits on the left side.
func (e *Engine) ThrustIfLeftSide(s *Ship, dt float64) {
	if e.Side(s) < -sideTolerance {
		e.ComputeAndApplyThrust(s, dt)
	}
}

// RenderSmoke decays the exhaust when the decay timer fires, draws smoke,
// draws flames if the engine fired this frame and then clears that flag.
func (e *Engine) RenderSmoke(surface Surface, dt float64) {
	if e.decay.Advance(dt) {
		e.smoke.Decay()
		e.redFlame.Decay()
		e.orangeFlame.Decay()
	}

	drawParticles(surface, e.smoke)
	if e.thrusting {
		drawParticles(surface, e.redFlame)
		drawParticles(surface, e.orangeFlame)
	}
	e.thrusting = false
}

func (e *Engine) mount(s *Ship) physics.OrientedRect {
	return s.body.Rects[e.rectIndex]
}

// emit spawns particles along the trailing edge of the mount, spread across
// its width and smeared along the ship's motion for the tick.
func (e *Engine) emit(sys *particle.System, count float64, base, across, behind, drift physics.Vector2D) {
	for i := 0; float64(i) < count; i++ {
		spread := 0.5 - e.rng.Float64()
		smear := e.rng.Float64()
		sys.Add(
			base.X+spread*across.X-behind.X+smear*drift.X,
			base.Y+spread*across.Y-behind.Y+smear*drift.Y,
		)
	}
}

func drawParticles(surface Surface, sys *particle.System) {
	c := sys.Color()
	for p := range sys.All() {
		surface.DrawScaledPoint(p.X, p.Y, c)
	}
}
