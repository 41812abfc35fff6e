package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMotionState_ApplyForce(t *testing.T) {
	tests := []struct {
		name      string
		force     Vector2D
		offset    Vector2D
		wantAcc   Vector2D
		wantAlpha float64
	}{
		{"through_center", Vector2D{Y: 10}, Vector2D{}, Vector2D{Y: 5}, 0},
		{"right_of_center_pushing_up", Vector2D{Y: 10}, Vector2D{X: 2}, Vector2D{Y: 5}, 5},
		{"left_of_center_pushing_up", Vector2D{Y: 10}, Vector2D{X: -2}, Vector2D{Y: 5}, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m MotionState
			m.ApplyForce(tt.force, tt.offset, 2, 4)
			assert.Equal(t, tt.wantAcc, m.Acceleration)
			assert.Equal(t, tt.wantAlpha, m.AngularAcceleration)
			assert.Equal(t, Vector2D{}, m.Velocity, "velocity changes only on Step")
		})
	}
}

func TestMotionState_Step(t *testing.T) {
	m := MotionState{MaxSpeed: 100, MaxAngularSpeed: 10}
	m.ApplyForce(Vector2D{X: 6, Y: 8}, Vector2D{X: 1}, 1, 10)

	delta, dTheta := m.Step(2)

	assert.Equal(t, Vector2D{X: 12, Y: 16}, m.Velocity)
	assert.Equal(t, Vector2D{X: 24, Y: 32}, delta)
	assert.InDelta(t, 1.6, m.AngularVelocity, tolerance)
	assert.InDelta(t, 3.2, dTheta, tolerance)
	assert.Equal(t, Vector2D{}, m.Acceleration)
	assert.Zero(t, m.AngularAcceleration)
}

func TestMotionState_StepClampsSpeed(t *testing.T) {
	m := MotionState{Velocity: Vector2D{X: 30, Y: 40}, MaxSpeed: 10, MaxAngularSpeed: 100}
	m.Step(1)

	assert.InDelta(t, 10, m.Speed(), tolerance)
	assert.InDelta(t, 6, m.Velocity.X, tolerance)
	assert.InDelta(t, 8, m.Velocity.Y, tolerance)
}

func TestMotionState_StepClampsAngularSpeed(t *testing.T) {
	tests := []struct {
		name  string
		omega float64
		want  float64
	}{
		{"positive", 5, 0.5},
		{"negative", -5, -0.5},
		{"within_limit", 0.25, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := MotionState{AngularVelocity: tt.omega, MaxSpeed: 1, MaxAngularSpeed: 0.5}
			_, dTheta := m.Step(2)
			assert.Equal(t, tt.want, m.AngularVelocity)
			assert.Equal(t, tt.want*2, dTheta)
		})
	}
}

func TestMotionState_Damp(t *testing.T) {
	m := MotionState{Velocity: Vector2D{X: 10, Y: -20}, AngularVelocity: 2}
	m.Damp(1, 0.3)

	assert.InDelta(t, 7, m.Velocity.X, tolerance)
	assert.InDelta(t, -14, m.Velocity.Y, tolerance)
	assert.InDelta(t, 1.4, m.AngularVelocity, tolerance)

	m.DampAngular(0.5, 0.3)
	assert.InDelta(t, 1.19, m.AngularVelocity, tolerance)
	assert.InDelta(t, 7, m.Velocity.X, tolerance)
}
