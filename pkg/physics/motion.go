package physics

import "math"

// MotionState tracks the linear and angular motion of a rigid body along
// with the forces accumulated since the last step.
type MotionState struct {
	Velocity            Vector2D
	AngularVelocity     float64 // radians per time unit
	Acceleration        Vector2D
	AngularAcceleration float64
	MaxSpeed            float64
	MaxAngularSpeed     float64
}

// ApplyForce accumulates force acting at offset from the center of a body
// with the given mass and moment. Velocities are untouched until Step.
func (m *MotionState) ApplyForce(force, offset Vector2D, mass, moment float64) {
	m.Acceleration.X += force.X / mass
	m.Acceleration.Y += force.Y / mass
	m.AngularAcceleration += offset.Cross(force) / moment
}

// Step advances velocities by the accumulated accelerations over dt, clamps
// them to the configured caps, clears the accumulators and returns the
// position and rotation deltas for the step.
func (m *MotionState) Step(dt float64) (Vector2D, float64) {
	m.Velocity.X += m.Acceleration.X * dt
	m.Velocity.Y += m.Acceleration.Y * dt
	m.AngularVelocity += m.AngularAcceleration * dt

	speedSq := m.Velocity.LengthSquared()
	if speedSq > m.MaxSpeed*m.MaxSpeed {
		m.Velocity.X *= m.MaxSpeed / math.Sqrt(speedSq)
		m.Velocity.Y *= m.MaxSpeed / math.Sqrt(speedSq)
	}

	if m.AngularVelocity > m.MaxAngularSpeed {
		m.AngularVelocity = m.MaxAngularSpeed
	}
	if m.AngularVelocity < -m.MaxAngularSpeed {
		m.AngularVelocity = -m.MaxAngularSpeed
	}

	delta := m.Velocity.Scale(dt)
	dTheta := m.AngularVelocity * dt

	m.Acceleration = Vector2D{}
	m.AngularAcceleration = 0

	return delta, dTheta
}

// Damp removes factor*dt of the current linear velocity.
func (m *MotionState) Damp(dt, factor float64) {
	m.Velocity.X -= m.Velocity.X * factor * dt
	m.Velocity.Y -= m.Velocity.Y * factor * dt
	m.DampAngular(dt, factor)
}

// DampAngular removes factor*dt of the current angular velocity.
func (m *MotionState) DampAngular(dt, factor float64) {
	m.AngularVelocity -= m.AngularVelocity * dt * factor
}

// Speed returns the magnitude of the linear velocity.
func (m *MotionState) Speed() float64 {
	return m.Velocity.Length()
}
