// pkg/entity/ship_test.go
package entity

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-thrusters/pkg/clock"
	"github.com/opd-ai/go-thrusters/pkg/physics"
	"github.com/opd-ai/go-thrusters/pkg/shipdef"
)

const tolerance = 1e-9

var testStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// testDefinition is a hull with one engine either side of the centerline,
// both pushing along +Y.
func testDefinition() *shipdef.Definition {
	engine := func(x float64) shipdef.EngineSpec {
		return shipdef.EngineSpec{
			RectSpec: shipdef.RectSpec{ExtentX: 1, ExtentY: 1, OffsetX: x, OffsetY: -4, Mass: 1},
			Thrust:   100,
		}
	}
	return &shipdef.Definition{
		Name:            "test",
		Hull:            []shipdef.RectSpec{{ExtentX: 2, ExtentY: 4, Mass: 4}},
		Engines:         []shipdef.EngineSpec{engine(-3), engine(3)},
		Color:           shipdef.RGB{R: 10, G: 200, B: 30},
		MaxSpeed:        50,
		MaxAngularSpeed: 0.5,
	}
}

func newTestShipWithClock(t *testing.T, clk clock.Clock, opts ...Option) *Ship {
	t.Helper()
	opts = append([]Option{WithRand(rand.New(rand.NewPCG(7, 11)))}, opts...)
	s, err := NewShip(testDefinition(), clk, opts...)
	require.NoError(t, err)
	return s
}

func newTestShip(t *testing.T, opts ...Option) *Ship {
	t.Helper()
	return newTestShipWithClock(t, clock.NewManual(testStart, clock.DefaultFrameRate), opts...)
}

func TestNewShip(t *testing.T) {
	s := newTestShip(t)

	assert.Equal(t, "test", s.Name())
	assert.Equal(t, 6.0, s.Mass())
	assert.Equal(t, physics.Vector2D{X: 0, Y: 1}, s.Forward())
	assert.Equal(t, physics.Vector2D{}, s.Position())
	assert.Equal(t, physics.Vector2D{}, s.Velocity())
	assert.Zero(t, s.AngularVelocity())
	assert.Zero(t, s.LastTick())
	assert.Equal(t, PIDState{}, s.SteerState())
	assert.Equal(t, PIDState{}, s.ApproachState())

	rects := s.Rects()
	require.Len(t, rects, 3)
	require.Len(t, s.Engines(), 2)
	assert.Equal(t, 1, s.Engines()[0].RectIndex())
	assert.Equal(t, 2, s.Engines()[1].RectIndex())

	var weighted physics.Vector2D
	moment := 0.0
	for _, r := range rects {
		weighted.AddInPlace(r.Offset.Scale(r.Mass))
		moment += r.Moment()
	}
	assert.InDelta(t, 0, weighted.X, tolerance)
	assert.InDelta(t, 0, weighted.Y, tolerance)
	assert.InDelta(t, moment, s.Moment(), tolerance)

	// centroid was at y = -8/6
	assert.InDelta(t, 4.0/3.0, rects[0].Offset.Y, tolerance)
	assert.InDelta(t, -3, rects[1].Offset.X, tolerance)
	assert.InDelta(t, -4+4.0/3.0, rects[1].Offset.Y, tolerance)
}

func TestNewShip_RotatedRect(t *testing.T) {
	def := testDefinition()
	def.Hull[0].Theta = math.Pi / 2

	s, err := NewShip(def, clock.NewManual(testStart, 100))
	require.NoError(t, err)

	hull := s.Rects()[0]
	assert.InDelta(t, 0, hull.AxisX.X, tolerance)
	assert.InDelta(t, 1, hull.AxisX.Y, tolerance)
	assert.InDelta(t, 0, hull.Offset.X, tolerance, "rotation is about the rect's own center")
}

func TestNewShip_InvalidDefinition(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *shipdef.Definition)
	}{
		{"zero_extent", func(d *shipdef.Definition) { d.Hull[0].ExtentY = 0 }},
		{"zero_mass", func(d *shipdef.Definition) { d.Engines[1].Mass = 0 }},
		{"zero_thrust", func(d *shipdef.Definition) { d.Engines[0].Thrust = 0 }},
		{"no_rects", func(d *shipdef.Definition) { d.Hull, d.Engines = nil, nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := testDefinition()
			tt.mutate(def)
			_, err := NewShip(def, clock.NewManual(testStart, 100))
			assert.ErrorIs(t, err, shipdef.ErrInvalidDefinition)
		})
	}
}

func TestShip_IntegrateWithoutForce(t *testing.T) {
	clk := clock.NewManual(testStart, 100)
	s := newTestShipWithClock(t, clk)
	s.SetVelocity(physics.Vector2D{X: 3, Y: 4})
	before := s.Rects()

	clk.Advance(100 * time.Millisecond)
	s.Integrate()

	assert.Equal(t, 1.0, s.LastTick())
	assert.Equal(t, physics.Vector2D{X: 3, Y: 4}, s.Position())
	assert.Equal(t, physics.Vector2D{X: 3, Y: 4}, s.Velocity())
	assert.Equal(t, before, s.Rects())

	// the next step measures from the previous one
	clk.Advance(50 * time.Millisecond)
	s.Integrate()
	assert.Equal(t, 0.5, s.LastTick())
	assert.Equal(t, physics.Vector2D{X: 4.5, Y: 6}, s.Position())
}

func TestShip_ApplyForce(t *testing.T) {
	s := newTestShip(t)
	s.ApplyForce(0, 6, 0, 0)
	assert.Equal(t, physics.Vector2D{}, s.Velocity())

	s.IntegrateStep(1)
	assert.Equal(t, physics.Vector2D{X: 0, Y: 1}, s.Velocity())
	assert.Zero(t, s.AngularVelocity())

	s.ApplyForce(0, 6, 1, 0)
	s.IntegrateStep(1)
	assert.InDelta(t, 6/s.Moment(), s.AngularVelocity(), tolerance)
}

func TestShip_VelocityClamp(t *testing.T) {
	s := newTestShip(t)
	s.ApplyForce(6000, 8000, 0, 0)
	s.IntegrateStep(1)

	assert.InDelta(t, 50, s.Speed(), tolerance)
	assert.InDelta(t, 30, s.Velocity().X, tolerance)
	assert.InDelta(t, 40, s.Velocity().Y, tolerance)
}

func TestShip_AngularClamp(t *testing.T) {
	s := newTestShip(t)
	s.ApplyForce(-1e6, 0, 0, 10)
	s.IntegrateStep(1)
	assert.Equal(t, 0.5, s.AngularVelocity())

	s.ApplyForce(2e6, 0, 0, 10)
	s.IntegrateStep(1)
	assert.Equal(t, -0.5, s.AngularVelocity())
}

func TestShip_TranslateRestoresCenter(t *testing.T) {
	s := newTestShip(t)
	mass, moment := s.Mass(), s.Moment()

	s.Translate(12.5, -3.25)
	s.Rotate(0.8)
	s.Translate(-12.5, 3.25)

	assert.Equal(t, physics.Vector2D{}, s.Position())
	assert.Equal(t, mass, s.Mass())
	assert.Equal(t, moment, s.Moment())
}

func TestShip_RotateTurnsForwardAndRects(t *testing.T) {
	s := newTestShip(t)
	s.Rotate(math.Pi / 2)

	assert.InDelta(t, -1, s.Forward().X, tolerance)
	assert.InDelta(t, 0, s.Forward().Y, tolerance)

	engine := s.Rects()[1]
	assert.InDelta(t, -1, engine.AxisY.X, tolerance)
	assert.InDelta(t, 0, engine.AxisY.Y, tolerance)
}

func TestShip_FullThrottle(t *testing.T) {
	s := newTestShip(t)
	s.IntegrateStep(1)
	s.motion.AngularVelocity = 0.2

	s.FullThrottle()

	assert.InDelta(t, 0.2-0.2*0.3, s.AngularVelocity(), tolerance)
	for _, e := range s.Engines() {
		assert.True(t, e.Thrusting())
	}

	s.IntegrateStep(1)
	assert.InDelta(t, 200.0/6.0, s.Velocity().Y, tolerance)
	assert.InDelta(t, 0, s.Velocity().X, tolerance)
	assert.InDelta(t, 0.2-0.2*0.3, s.AngularVelocity(), tolerance, "symmetric engines add no torque")
}

func TestShip_SideThrottles(t *testing.T) {
	tests := []struct {
		name     string
		fire     func(s *Ship)
		fired    int
		wantSign float64
	}{
		{"left_engines_turn_clockwise", (*Ship).FullLeftThrottle, 0, -1},
		{"right_engines_turn_counter_clockwise", (*Ship).FullRightThrottle, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestShip(t)
			s.IntegrateStep(1)

			tt.fire(s)

			for i, e := range s.Engines() {
				assert.Equal(t, i == tt.fired, e.Thrusting(), "engine %d", i)
			}
			s.IntegrateStep(1)
			assert.Equal(t, tt.wantSign, math.Copysign(1, s.AngularVelocity()))
			assert.NotZero(t, s.AngularVelocity())
		})
	}
}

func TestShip_DampVelocities(t *testing.T) {
	s := newTestShip(t, WithDampingFactor(0.5))
	s.IntegrateStep(0.5)
	s.SetVelocity(physics.Vector2D{X: 8, Y: -4})
	s.motion.AngularVelocity = 0.4

	s.DampVelocities()

	assert.InDelta(t, 6, s.Velocity().X, tolerance)
	assert.InDelta(t, -3, s.Velocity().Y, tolerance)
	assert.InDelta(t, 0.3, s.AngularVelocity(), tolerance)
}

func TestShip_Intersects(t *testing.T) {
	a := newTestShip(t)
	b := newTestShip(t)

	assert.True(t, a.Intersects(b))

	b.Translate(100, 0)
	assert.False(t, a.Intersects(b))
	assert.False(t, b.Intersects(a))

	b.Translate(-96, 0)
	assert.True(t, a.Intersects(b))
	assert.True(t, b.Intersects(a))
}

func TestShip_Draw(t *testing.T) {
	s := newTestShip(t)
	s.IntegrateStep(0.01)
	surface := &recordingSurface{}

	s.Draw(surface)
	assert.Len(t, surface.lines, 12)
	assert.Empty(t, surface.points)
	for _, l := range surface.lines {
		assert.Equal(t, s.Color(), l.Color)
	}

	s.FullThrottle()
	surface.Clear()
	s.Draw(surface)
	assert.Equal(t, 2, surface.pointsIn(SmokeColor))
	assert.Equal(t, 4, surface.pointsIn(RedFlameColor))
	assert.Equal(t, 12, surface.pointsIn(OrangeFlameColor))

	surface.Clear()
	s.Draw(surface)
	assert.Equal(t, 2, surface.pointsIn(SmokeColor))
	assert.Zero(t, surface.pointsIn(RedFlameColor), "flames show only on frames the engine fired")
}

func TestShip_DrawOutlinesRect(t *testing.T) {
	def := testDefinition()
	def.Engines = nil
	s, err := NewShip(def, clock.NewManual(testStart, 100))
	require.NoError(t, err)
	s.Translate(10, 20)

	surface := &recordingSurface{}
	s.Draw(surface)

	require.Len(t, surface.lines, 4)
	corners := s.Rects()[0].Corners(s.Position())
	for i, l := range surface.lines {
		assert.Equal(t, corners[i], physics.Vector2D{X: l.X1, Y: l.Y1})
		assert.Equal(t, corners[(i+1)%4], physics.Vector2D{X: l.X2, Y: l.Y2})
	}
}

func TestShip_CenterWindow(t *testing.T) {
	s := newTestShip(t)
	s.Translate(-40, 15)
	s.SetVelocity(physics.Vector2D{X: 3, Y: 4})

	surface := &recordingSurface{}
	s.CenterWindow(surface)

	assert.InDelta(t, 500/(2*math.Sqrt(26)+1000), surface.scale, tolerance)
	assert.Equal(t, -40.0, surface.originX)
	assert.Equal(t, 15.0, surface.originY)
}

func TestViewScale(t *testing.T) {
	assert.InDelta(t, 500/1002.0, ViewScale(physics.Vector2D{}), tolerance)
	assert.Less(t, ViewScale(physics.Vector2D{X: 100}), ViewScale(physics.Vector2D{X: 10}))
}
