package entity

import (
	"fmt"

	"github.com/opd-ai/go-thrusters/pkg/physics"
)

// PIDGains holds the proportional, integral and derivative weights of a
// controller.
type PIDGains struct {
	Kp float64
	Ki float64
	Kd float64
}

// AutopilotConfig tunes the steering and approach controllers.
type AutopilotConfig struct {
	Steer    PIDGains
	Approach PIDGains
	// DeadBand is the steering output magnitude below which no engines fire.
	DeadBand float64
	// LeadDistance is how far behind a moving target the follower aims.
	LeadDistance float64
}

// DefaultAutopilotConfig returns the stock tuning.
func DefaultAutopilotConfig() AutopilotConfig {
	return AutopilotConfig{
		Steer:        PIDGains{Kp: 300, Ki: 0.01, Kd: 0.00001},
		Approach:     PIDGains{Kp: 800, Ki: 2, Kd: 0.05},
		DeadBand:     50,
		LeadDistance: 750,
	}
}

// PIDState is the error history of one discrete PID loop.
type PIDState struct {
	LastError     float64
	LastLastError float64
}

// Correction returns the controller output for errSignal over a step of dt
// and shifts errSignal into the history. The history is left untouched on
// error.
func (p *PIDState) Correction(g PIDGains, errSignal, dt float64) (float64, error) {
	if !(dt > 0) {
		return 0, fmt.Errorf("dt %g: %w", dt, ErrZeroTimeStep)
	}

	proportional := errSignal - p.LastError
	integral := g.Ki * dt * errSignal
	derivative := g.Kd / dt * (errSignal - 2*p.LastError + p.LastLastError)
	c := g.Kp * (proportional + integral + derivative)

	p.LastLastError = p.LastError
	p.LastError = errSignal
	return c, nil
}

// SteerAction is the engine group fired by SteerTowards.
type SteerAction int

const (
	SteerHold SteerAction = iota
	SteerLeftEngines
	SteerRightEngines
)

func (a SteerAction) String() string {
	switch a {
	case SteerLeftEngines:
		return "left_engines"
	case SteerRightEngines:
		return "right_engines"
	default:
		return "hold"
	}
}

// ApproachAction is the throttle decision made by ApproachTowards.
type ApproachAction int

const (
	ApproachHold ApproachAction = iota
	ApproachThrottle
	ApproachBrake
)

func (a ApproachAction) String() string {
	switch a {
	case ApproachThrottle:
		return "throttle"
	case ApproachBrake:
		return "brake"
	default:
		return "hold"
	}
}

// SteerState returns the steering controller history.
func (s *Ship) SteerState() PIDState { return s.steer }

// ApproachState returns the approach controller history.
func (s *Ship) ApproachState() PIDState { return s.approach }

// SteerTowards turns the ship to face target. The error is the cross product
// of the forward direction with the offset to the target. Outputs beyond the
// dead band fire the left engines (negative) or right engines (positive).
func (s *Ship) SteerTowards(target physics.Vector2D) (SteerAction, error) {
	diff := target.Sub(s.body.Center)
	c, err := s.steer.Correction(s.autopilot.Steer, s.forward.Cross(diff), s.lastTick)
	if err != nil {
		return SteerHold, err
	}

	switch {
	case c < -s.autopilot.DeadBand:
		s.FullLeftThrottle()
		return SteerLeftEngines, nil
	case c > s.autopilot.DeadBand:
		s.FullRightThrottle()
		return SteerRightEngines, nil
	}
	return SteerHold, nil
}

// ApproachTowards closes on target, aiming LeadDistance behind it along its
// velocity. A stationary target is aimed at directly. The ship brakes when
// the controller output is negative or it is moving away from the aim point,
// otherwise it burns all engines while the output is positive.
func (s *Ship) ApproachTowards(target *Ship) (ApproachAction, error) {
	diff := target.body.Center.Sub(s.body.Center)
	if speed := target.Speed(); speed > 0 {
		diff.SubInPlace(target.motion.Velocity.Scale(s.autopilot.LeadDistance / speed))
	}

	c, err := s.approach.Correction(s.autopilot.Approach, diff.Length(), s.lastTick)
	if err != nil {
		return ApproachHold, err
	}

	switch {
	case c < 0 || s.motion.Velocity.Dot(diff) < 0:
		s.DampVelocities()
		return ApproachBrake, nil
	case c > 0:
		s.FullThrottle()
		return ApproachThrottle, nil
	}
	return ApproachHold, nil
}

// Follow steers toward and then approaches target.
func (s *Ship) Follow(target *Ship) error {
	if _, err := s.SteerTowards(target.body.Center); err != nil {
		return err
	}
	_, err := s.ApproachTowards(target)
	return err
}
