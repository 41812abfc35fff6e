package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-thrusters/pkg/physics"
)

func TestPIDState_Correction(t *testing.T) {
	gains := PIDGains{Kp: 2, Ki: 0.5, Kd: 0.25}

	t.Run("first_step", func(t *testing.T) {
		var p PIDState
		c, err := p.Correction(gains, 4, 2)
		require.NoError(t, err)
		// P = 4, I = 0.5*2*4 = 4, D = 0.25/2*4 = 0.5
		assert.InDelta(t, 2*(4+4+0.5), c, tolerance)
		assert.Equal(t, PIDState{LastError: 4, LastLastError: 0}, p)
	})

	t.Run("uses_history", func(t *testing.T) {
		p := PIDState{LastError: 3, LastLastError: 1}
		c, err := p.Correction(gains, 2, 1)
		require.NoError(t, err)
		// P = -1, I = 1, D = 0.25*(2-6+1) = -0.75
		assert.InDelta(t, 2*(-1+1-0.75), c, tolerance)
		assert.Equal(t, PIDState{LastError: 2, LastLastError: 3}, p)
	})

	t.Run("zero_error_zero_history", func(t *testing.T) {
		var p PIDState
		c, err := p.Correction(gains, 0, 1)
		require.NoError(t, err)
		assert.Zero(t, c)
	})

	for _, dt := range []float64{0, -1} {
		t.Run("rejects_non_positive_dt", func(t *testing.T) {
			p := PIDState{LastError: 3, LastLastError: 1}
			_, err := p.Correction(gains, 2, dt)
			assert.ErrorIs(t, err, ErrZeroTimeStep)
			assert.Equal(t, PIDState{LastError: 3, LastLastError: 1}, p)
		})
	}
}

func TestShip_SteerTowards(t *testing.T) {
	tests := []struct {
		name      string
		target    physics.Vector2D
		want      SteerAction
		wantFired []bool
	}{
		{"dead_ahead", physics.Vector2D{Y: 100}, SteerHold, []bool{false, false}},
		{"target_on_right", physics.Vector2D{X: 100}, SteerLeftEngines, []bool{true, false}},
		{"target_on_left", physics.Vector2D{X: -100}, SteerRightEngines, []bool{false, true}},
		{"inside_dead_band", physics.Vector2D{X: 0.1, Y: 100}, SteerHold, []bool{false, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestShip(t)
			s.IntegrateStep(1)

			got, err := s.SteerTowards(tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			for i, e := range s.Engines() {
				assert.Equal(t, tt.wantFired[i], e.Thrusting(), "engine %d", i)
			}
			assert.Equal(t, s.Forward().Cross(tt.target), s.SteerState().LastError)
		})
	}
}

func TestShip_SteerTowardsTurnsTowardTarget(t *testing.T) {
	s := newTestShip(t)
	s.IntegrateStep(1)

	_, err := s.SteerTowards(physics.Vector2D{X: 100})
	require.NoError(t, err)
	s.IntegrateStep(1)

	// clockwise spin swings the nose toward +X
	assert.Less(t, s.AngularVelocity(), 0.0)
	assert.Greater(t, s.Forward().X, 0.0)
}

func TestShip_SteerTowardsZeroTick(t *testing.T) {
	s := newTestShip(t)

	_, err := s.SteerTowards(physics.Vector2D{X: 100})
	assert.ErrorIs(t, err, ErrZeroTimeStep)
	assert.Equal(t, PIDState{}, s.SteerState())
}

func TestShip_ApproachTowards(t *testing.T) {
	t.Run("stationary_target_is_aimed_at_directly", func(t *testing.T) {
		s := newTestShip(t)
		target := newTestShip(t)
		target.Translate(0, 1000)
		s.IntegrateStep(1)

		got, err := s.ApproachTowards(target)
		require.NoError(t, err)
		assert.Equal(t, ApproachThrottle, got)
		assert.Equal(t, 1000.0, s.ApproachState().LastError)
		for _, e := range s.Engines() {
			assert.True(t, e.Thrusting())
		}
	})

	t.Run("moving_target_is_led", func(t *testing.T) {
		s := newTestShip(t)
		target := newTestShip(t)
		target.Translate(0, 1000)
		target.SetVelocity(physics.Vector2D{Y: 10})
		s.IntegrateStep(1)

		_, err := s.ApproachTowards(target)
		require.NoError(t, err)
		assert.InDelta(t, 250, s.ApproachState().LastError, tolerance)
	})

	t.Run("closing_error_brakes", func(t *testing.T) {
		s := newTestShip(t)
		target := newTestShip(t)
		target.Translate(0, 1000)
		s.IntegrateStep(1)

		_, err := s.ApproachTowards(target)
		require.NoError(t, err)

		target.Translate(0, -900)
		s.SetVelocity(physics.Vector2D{Y: 10})
		got, err := s.ApproachTowards(target)
		require.NoError(t, err)
		assert.Equal(t, ApproachBrake, got)
		assert.InDelta(t, 7, s.Velocity().Y, tolerance)
	})

	t.Run("moving_away_brakes", func(t *testing.T) {
		s := newTestShip(t)
		target := newTestShip(t)
		target.Translate(0, 1000)
		s.IntegrateStep(1)
		s.SetVelocity(physics.Vector2D{Y: -5})

		got, err := s.ApproachTowards(target)
		require.NoError(t, err)
		assert.Equal(t, ApproachBrake, got)
		assert.InDelta(t, -3.5, s.Velocity().Y, tolerance)
	})

	t.Run("zero_tick", func(t *testing.T) {
		s := newTestShip(t)
		target := newTestShip(t)
		target.Translate(0, 1000)

		got, err := s.ApproachTowards(target)
		assert.ErrorIs(t, err, ErrZeroTimeStep)
		assert.Equal(t, ApproachHold, got)
		assert.Equal(t, PIDState{}, s.ApproachState())
	})
}

func TestShip_Follow(t *testing.T) {
	s := newTestShip(t)
	target := newTestShip(t)
	target.Translate(300, 1000)

	assert.ErrorIs(t, s.Follow(target), ErrZeroTimeStep)

	s.IntegrateStep(1)
	require.NoError(t, s.Follow(target))
	assert.NotZero(t, s.SteerState().LastError)
	assert.NotZero(t, s.ApproachState().LastError)
}

func TestWithAutopilot(t *testing.T) {
	cfg := DefaultAutopilotConfig()
	cfg.DeadBand = 1e9

	s := newTestShip(t, WithAutopilot(cfg))
	s.IntegrateStep(1)

	got, err := s.SteerTowards(physics.Vector2D{X: 100})
	require.NoError(t, err)
	assert.Equal(t, SteerHold, got)
}

func TestActionStrings(t *testing.T) {
	assert.Equal(t, "hold", SteerHold.String())
	assert.Equal(t, "left_engines", SteerLeftEngines.String())
	assert.Equal(t, "right_engines", SteerRightEngines.String())
	assert.Equal(t, "throttle", ApproachThrottle.String())
	assert.Equal(t, "brake", ApproachBrake.String())
	assert.Equal(t, "hold", ApproachHold.String())
}
