// pkg/entity/ship.go
package entity

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"
	"time"

	"github.com/opd-ai/go-thrusters/pkg/clock"
	"github.com/opd-ai/go-thrusters/pkg/physics"
	"github.com/opd-ai/go-thrusters/pkg/shipdef"
)

// DefaultDampingFactor is the fraction of velocity shed per unit of time
// while braking.
const DefaultDampingFactor = 0.3

// Ship is a composite rigid body of hull and engine rects driven by its
// engines. All rects share the ship's single center.
type Ship struct {
	id     ID
	name   string
	body   physics.Body
	motion physics.MotionState

	engines []*Engine
	mass    float64
	moment  float64
	forward physics.Vector2D
	color   color.RGBA

	clock      clock.Clock
	lastUpdate time.Time
	lastTick   float64

	steer     PIDState
	approach  PIDState
	autopilot AutopilotConfig

	dampingFactor float64
	rng           *rand.Rand
	sharedDecay   *DecayTimer
}

// Option customizes a Ship at construction.
type Option func(*Ship)

// WithRand sets the random source used for exhaust particles.
func WithRand(rng *rand.Rand) Option {
	return func(s *Ship) { s.rng = rng }
}

// WithDecayTimer makes every engine of the ship pace smoke decay off timer.
// Passing the same timer to several ships decays all of their smoke in lock
// step.
func WithDecayTimer(timer *DecayTimer) Option {
	return func(s *Ship) { s.sharedDecay = timer }
}

// WithDampingFactor overrides DefaultDampingFactor.
func WithDampingFactor(factor float64) Option {
	return func(s *Ship) { s.dampingFactor = factor }
}

// WithAutopilot overrides the default controller tuning.
func WithAutopilot(cfg AutopilotConfig) Option {
	return func(s *Ship) { s.autopilot = cfg }
}

// WithID sets the ship ID instead of generating one.
func WithID(id ID) Option {
	return func(s *Ship) { s.id = id }
}

// NewShip builds a ship from def. Hull rects come first, then one rect per
// engine. The rects are recentered so the mass centroid sits at the ship's
// center, which starts at the origin.
func NewShip(def *shipdef.Definition, clk clock.Clock, opts ...Option) (*Ship, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	s := &Ship{
		id:            GenerateID(),
		name:          def.Name,
		forward:       physics.Vector2D{X: 0, Y: 1},
		color:         def.Color.RGBA(),
		clock:         clk,
		autopilot:     DefaultAutopilotConfig(),
		dampingFactor: DefaultDampingFactor,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	s.body.Rects = make([]physics.OrientedRect, 0, def.NumRects())
	for i, spec := range def.Hull {
		r, err := buildRect(spec)
		if err != nil {
			return nil, fmt.Errorf("ship %s: hull rect %d: %w", def.Name, i, err)
		}
		s.body.Rects = append(s.body.Rects, r)
	}
	for i, spec := range def.Engines {
		r, err := buildRect(spec.RectSpec)
		if err != nil {
			return nil, fmt.Errorf("ship %s: engine %d: %w", def.Name, i, err)
		}
		s.body.Rects = append(s.body.Rects, r)

		decay := s.sharedDecay
		if decay == nil {
			decay = NewDecayTimer()
		}
		e, err := newEngine(len(s.body.Rects)-1, spec.Thrust, s.rng, decay)
		if err != nil {
			return nil, fmt.Errorf("ship %s: engine %d: %w", def.Name, i, err)
		}
		s.engines = append(s.engines, e)
	}

	if err := s.body.Recenter(); err != nil {
		return nil, fmt.Errorf("ship %s: %w", def.Name, err)
	}
	s.mass = s.body.Mass()
	s.moment = s.body.Moment()

	s.motion.MaxSpeed = def.MaxSpeed
	s.motion.MaxAngularSpeed = def.MaxAngularSpeed
	s.lastUpdate = clk.Now()

	return s, nil
}

func buildRect(spec shipdef.RectSpec) (physics.OrientedRect, error) {
	r, err := physics.NewOrientedRect(spec.ExtentX, spec.ExtentY, spec.Mass)
	if err != nil {
		return r, err
	}
	r.TranslateSelf(spec.OffsetX, spec.OffsetY)
	r.RotateSelf(spec.Theta)
	return r, nil
}

// GetID returns the ship's unique identifier
func (s *Ship) GetID() ID { return s.id }

// GetPosition returns the ship's center
func (s *Ship) GetPosition() physics.Vector2D { return s.body.Center }

// GetCollider returns a circle around every rect of the ship
func (s *Ship) GetCollider(margin float64) physics.Circle {
	return s.body.BoundingCircle(margin)
}

// Name returns the name from the ship's definition.
func (s *Ship) Name() string { return s.name }

// Position returns the ship's center.
func (s *Ship) Position() physics.Vector2D { return s.body.Center }

// Velocity returns the linear velocity.
func (s *Ship) Velocity() physics.Vector2D { return s.motion.Velocity }

// Speed returns the magnitude of the linear velocity.
func (s *Ship) Speed() float64 { return s.motion.Speed() }

// AngularVelocity returns the angular velocity.
func (s *Ship) AngularVelocity() float64 { return s.motion.AngularVelocity }

// Forward returns the direction the ship faces.
func (s *Ship) Forward() physics.Vector2D { return s.forward }

// Mass returns the total mass fixed at construction.
func (s *Ship) Mass() float64 { return s.mass }

// Moment returns the moment of inertia fixed at construction.
func (s *Ship) Moment() float64 { return s.moment }

// Color returns the hull color.
func (s *Ship) Color() color.RGBA { return s.color }

// LastTick returns the length of the most recent integration step.
func (s *Ship) LastTick() float64 { return s.lastTick }

// Engines returns the ship's engines in definition order.
func (s *Ship) Engines() []*Engine { return s.engines }

// Rects returns a copy of the ship's rects, hull first.
func (s *Ship) Rects() []physics.OrientedRect {
	out := make([]physics.OrientedRect, len(s.body.Rects))
	copy(out, s.body.Rects)
	return out
}

// Motion returns a copy of the current motion state.
func (s *Ship) Motion() physics.MotionState { return s.motion }

// SetVelocity replaces the linear velocity.
func (s *Ship) SetVelocity(v physics.Vector2D) { s.motion.Velocity = v }

// ApplyForce accumulates force (fx, fy) acting at offset (ox, oy) from the
// ship's center. Velocities change on the next integration.
func (s *Ship) ApplyForce(fx, fy, ox, oy float64) {
	s.motion.ApplyForce(physics.Vector2D{X: fx, Y: fy}, physics.Vector2D{X: ox, Y: oy}, s.mass, s.moment)
}

// Integrate advances the ship by the time elapsed since the previous call,
// as reported by the ship's clock.
func (s *Ship) Integrate() {
	dt := s.clock.ElapsedMultiplier(s.lastUpdate)
	s.lastUpdate = s.clock.Now()
	s.IntegrateStep(dt)
}

// IntegrateStep advances the ship by dt: accumulated forces update the
// velocities, which are clamped and then move and turn the ship.
func (s *Ship) IntegrateStep(dt float64) {
	s.lastTick = dt
	delta, dTheta := s.motion.Step(dt)

	s.forward.RotateInPlace(dTheta)
	s.body.TranslateObject(delta.X, delta.Y)
	s.body.RotateObject(dTheta)
}

// Translate moves the ship by (dx, dy).
func (s *Ship) Translate(dx, dy float64) {
	s.body.TranslateObject(dx, dy)
}

// Rotate turns the ship by theta radians about its center.
func (s *Ship) Rotate(theta float64) {
	s.forward.RotateInPlace(theta)
	s.body.RotateObject(theta)
}

// DampVelocities bleeds off linear and angular velocity in proportion to the
// last tick.
func (s *Ship) DampVelocities() {
	s.motion.Damp(s.lastTick, s.dampingFactor)
}

// FullThrottle damps spin and fires every engine.
func (s *Ship) FullThrottle() {
	s.motion.DampAngular(s.lastTick, s.dampingFactor)
	for _, e := range s.engines {
		e.ComputeAndApplyThrust(s, s.lastTick)
	}
}

// FullLeftThrottle fires every left side engine.
func (s *Ship) FullLeftThrottle() {
	for _, e := range s.engines {
		e.ThrustIfLeftSide(s, s.lastTick)
	}
}

// FullRightThrottle fires every right side engine.
func (s *Ship) FullRightThrottle() {
	for _, e := range s.engines {
		e.ThrustIfRightSide(s, s.lastTick)
	}
}

// Intersects reports whether any rect of s overlaps any rect of other.
func (s *Ship) Intersects(other *Ship) bool {
	return s.body.Intersects(&other.body)
}

// Draw outlines every rect in the hull color, then renders each engine's
// exhaust.
func (s *Ship) Draw(surface Surface) {
	for _, r := range s.body.Rects {
		c := r.Corners(s.body.Center)
		for i := range c {
			next := c[(i+1)%len(c)]
			surface.DrawScaledLine(c[i].X, c[i].Y, next.X, next.Y, s.color)
		}
	}
	for _, e := range s.engines {
		e.RenderSmoke(surface, s.lastTick)
	}
}

// CenterWindow points the view at the ship, zooming out as it speeds up.
func (s *Ship) CenterWindow(surface Surface) {
	surface.SetScale(ViewScale(s.motion.Velocity))
	surface.ShiftOrigin(s.body.Center.X, s.body.Center.Y)
}

// ViewScale is the zoom applied when following a ship moving at v.
func ViewScale(v physics.Vector2D) float64 {
	return 500 / (2*math.Sqrt(v.LengthSquared()+1) + 1000)
}
