// pkg/engine/world.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/opd-ai/go-thrusters/pkg/entity"
	"github.com/opd-ai/go-thrusters/pkg/event"
	"github.com/opd-ai/go-thrusters/pkg/logging"
	"github.com/opd-ai/go-thrusters/pkg/physics"
)

// quadCapacity is the number of ships per quad before subdivision.
const quadCapacity = 10

// ErrUnknownShip is returned when an ID does not name a ship in the world.
var ErrUnknownShip = errors.New("unknown ship")

// Settings tune collision detection.
type Settings struct {
	// BroadPhase enables the quad tree and bounding circle pre-check.
	// Without it every pair of ships is tested with the exact rect test.
	BroadPhase bool
	// BroadPhaseMargin grows each bounding circle.
	BroadPhaseMargin float64
	// WorldSize is the side of the square indexed by the quad tree. Ships
	// outside it are checked against every other ship.
	WorldSize float64
}

// DefaultSettings returns broad phase collision over a 100000 unit square.
func DefaultSettings() Settings {
	return Settings{BroadPhase: true, BroadPhaseMargin: 5, WorldSize: 100000}
}

// Collision is an overlapping pair of ships found during a tick.
type Collision struct {
	A, B *entity.Ship
}

// World holds the ships of a simulation and advances them one frame at a
// time: controls, integration, collision detection, then drawing.
type World struct {
	Ships        []*entity.Ship
	EventBus     *event.Bus
	SpatialIndex *physics.QuadTree
	Surface      entity.Surface
	Settings     Settings
	CurrentTick  uint64
	Running      bool

	roles map[entity.ID]Role
	focus int

	mu      sync.Mutex
	command Command

	collisions []Collision
	logger     *logging.Logger
	metrics    *worldMetrics
}

// Option customizes a World at construction.
type Option func(*worldOptions)

type worldOptions struct {
	settings Settings
	logger   *logging.Logger
	meter    metric.Meter
	bus      *event.Bus
}

// WithSettings overrides DefaultSettings.
func WithSettings(s Settings) Option {
	return func(o *worldOptions) { o.settings = s }
}

// WithLogger sets the world's logger.
func WithLogger(l *logging.Logger) Option {
	return func(o *worldOptions) { o.logger = l }
}

// WithMeter records metrics on m instead of the global meter provider.
func WithMeter(m metric.Meter) Option {
	return func(o *worldOptions) { o.meter = m }
}

// WithEventBus publishes world events on bus.
func WithEventBus(bus *event.Bus) Option {
	return func(o *worldOptions) { o.bus = bus }
}

// NewWorld creates an empty world drawing onto surface.
func NewWorld(surface entity.Surface, opts ...Option) (*World, error) {
	o := worldOptions{settings: DefaultSettings()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.NewNopLogger()
	}
	if o.meter == nil {
		o.meter = meter()
	}
	if o.bus == nil {
		o.bus = event.NewEventBus()
	}

	m, err := newWorldMetrics(o.meter)
	if err != nil {
		return nil, err
	}

	w := &World{
		EventBus: o.bus,
		Surface:  surface,
		Settings: o.settings,
		roles:    make(map[entity.ID]Role),
		logger:   o.logger,
		metrics:  m,
	}
	w.initSpatialIndex()
	return w, nil
}

// initSpatialIndex creates the spatial index for collision detection.
func (w *World) initSpatialIndex() {
	w.SpatialIndex = physics.NewQuadTree(
		physics.Bounds{
			Center: physics.Vector2D{X: 0, Y: 0},
			Width:  w.Settings.WorldSize,
			Height: w.Settings.WorldSize,
		},
		quadCapacity,
	)
}

// AddShip places ship in the world with the given role. The first ship
// added becomes the focus.
func (w *World) AddShip(ctx context.Context, ship *entity.Ship, role Role) {
	w.Ships = append(w.Ships, ship)
	w.roles[ship.GetID()] = role

	w.logger.Info(ctx, "ship spawned",
		"ship_id", ship.GetID().String(),
		"name", ship.Name(),
		"role", role.String(),
		"x", ship.Position().X,
		"y", ship.Position().Y,
	)
	w.EventBus.Publish(event.NewShipEvent(event.ShipSpawned, w, ship.GetID(), ship.Name()))
}

// Role returns the role of the ship with the given ID.
func (w *World) Role(id entity.ID) (Role, bool) {
	r, ok := w.roles[id]
	return r, ok
}

// Focused returns the ship driven by player commands and followed by the
// camera, or nil for an empty world.
func (w *World) Focused() *entity.Ship {
	if len(w.Ships) == 0 {
		return nil
	}
	return w.Ships[w.focus]
}

// SetFocus moves the focus to the ship with the given ID. The ship giving up
// focus takes over the role of the ship receiving it.
func (w *World) SetFocus(ctx context.Context, id entity.ID) error {
	for i, s := range w.Ships {
		if s.GetID() == id {
			w.moveFocus(ctx, i)
			return nil
		}
	}
	return fmt.Errorf("focus %s: %w", id, ErrUnknownShip)
}

// CycleFocus moves the focus to the next ship in spawn order.
func (w *World) CycleFocus(ctx context.Context) {
	if len(w.Ships) < 2 {
		return
	}
	w.moveFocus(ctx, (w.focus+1)%len(w.Ships))
}

func (w *World) moveFocus(ctx context.Context, next int) {
	if next == w.focus {
		return
	}
	from, to := w.Ships[w.focus], w.Ships[next]
	w.roles[from.GetID()], w.roles[to.GetID()] = w.roles[to.GetID()], w.roles[from.GetID()]
	w.focus = next

	w.logger.Debug(ctx, "focus changed", "from", from.Name(), "to", to.Name())
	w.EventBus.Publish(event.NewFocusEvent(w, from.GetID(), to.GetID()))
}

// SetCommand replaces the player command applied on every following tick.
// It may be called from another goroutine.
func (w *World) SetCommand(cmd Command) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.command = cmd
}

// Command returns the current player command.
func (w *World) Command() Command {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.command
}

// Collisions returns a copy of the overlapping pairs found by the last tick.
func (w *World) Collisions() []Collision {
	return slices.Clone(w.collisions)
}

// Start marks the world running and announces it
func (w *World) Start() {
	w.Running = true
	w.EventBus.Publish(&event.BaseEvent{
		EventType: event.SimulationStarted,
		Source:    w,
	})
}

// Stop halts the world and announces it
func (w *World) Stop() {
	w.Running = false
	w.EventBus.Publish(&event.BaseEvent{
		EventType: event.SimulationStopped,
		Source:    w,
	})
}

// Tick advances the world by one frame.
func (w *World) Tick(ctx context.Context) {
	focused := w.Focused()
	if focused == nil {
		return
	}

	cmd := w.Command()
	cmd.steer(focused)
	w.updateFollowers(ctx, focused)
	cmd.brake(focused)

	for _, s := range w.Ships {
		s.Integrate()
	}

	w.detectCollisions(ctx)
	w.draw(focused)

	w.CurrentTick++
	w.metrics.ticks.Add(ctx, 1)
	w.metrics.tickDT.Record(ctx, focused.LastTick())
}

// updateFollowers runs the autopilot of every unfocused follower. A ship that
// has not integrated yet has no time step to control over and is skipped.
func (w *World) updateFollowers(ctx context.Context, target *entity.Ship) {
	for _, s := range w.Ships {
		if s == target || w.roles[s.GetID()] != RoleFollower || s.LastTick() <= 0 {
			continue
		}
		if err := s.Follow(target); err != nil {
			w.logger.Warn(ctx, "follow failed", "ship", s.Name(), "error", err.Error())
		}
	}
}

// detectCollisions finds every overlapping pair of ships and publishes a
// collision event for each.
func (w *World) detectCollisions(ctx context.Context) {
	w.collisions = w.collisions[:0]

	if w.Settings.BroadPhase {
		w.broadPhaseCollisions()
	} else {
		for i := range w.Ships {
			for j := i + 1; j < len(w.Ships); j++ {
				w.checkPair(w.Ships[i], w.Ships[j])
			}
		}
	}

	for _, c := range w.collisions {
		w.logger.Debug(ctx, "ships collided", "a", c.A.Name(), "b", c.B.Name(), "tick", w.CurrentTick)
		w.EventBus.Publish(event.NewCollisionEvent(w, c.A.GetID(), c.B.GetID(), w.CurrentTick))
	}
	if n := len(w.collisions); n > 0 {
		w.metrics.collisions.Add(ctx, int64(n),
			metric.WithAttributes(attribute.Bool("broad_phase", w.Settings.BroadPhase)))
	}
}

// broadPhaseCollisions indexes ship centers in the quad tree and tests only
// pairs whose bounding circles touch.
func (w *World) broadPhaseCollisions() {
	w.prepareSpatialIndex()

	index := make(map[entity.ID]int, len(w.Ships))
	circles := make([]physics.Circle, len(w.Ships))
	outside := make([]bool, len(w.Ships))
	maxRadius := 0.0
	for i, s := range w.Ships {
		var e entity.Entity = s
		index[e.GetID()] = i
		circles[i] = e.GetCollider(w.Settings.BroadPhaseMargin)
		maxRadius = max(maxRadius, circles[i].Radius)
		outside[i] = !w.SpatialIndex.Insert(e.GetPosition(), e)
	}

	for i := range w.Ships {
		if outside[i] {
			continue
		}
		area := physics.BoundsAround(physics.Circle{
			Center: circles[i].Center,
			Radius: circles[i].Radius + maxRadius,
		})
		for _, found := range w.SpatialIndex.Query(area) {
			j := index[found.(entity.Entity).GetID()]
			if j > i && circles[i].Collides(circles[j]) {
				w.checkPair(w.Ships[i], w.Ships[j])
			}
		}
	}

	// ships the index could not hold are tested against every other ship
	for i := range w.Ships {
		if !outside[i] {
			continue
		}
		for j := range w.Ships {
			if j == i || (j < i && outside[j]) {
				continue
			}
			if circles[i].Collides(circles[j]) {
				w.checkPair(w.Ships[min(i, j)], w.Ships[max(i, j)])
			}
		}
	}
}

// prepareSpatialIndex clears the spatial index for the new frame.
func (w *World) prepareSpatialIndex() {
	if w.SpatialIndex == nil {
		w.initSpatialIndex()
		return
	}
	w.SpatialIndex.Clear()
}

func (w *World) checkPair(a, b *entity.Ship) {
	if a.Intersects(b) {
		w.collisions = append(w.collisions, Collision{A: a, B: b})
	}
}

// draw renders one frame centered on the focused ship.
func (w *World) draw(focused *entity.Ship) {
	if w.Surface == nil {
		return
	}

	w.Surface.Lock()
	w.Surface.Clear()
	focused.CenterWindow(w.Surface)
	for _, s := range w.Ships {
		s.Draw(w.Surface)
	}
	w.Surface.Flip()
	w.Surface.Unlock()
}

// Run ticks the world every period until ctx is done or maxTicks ticks have
// run. Zero maxTicks runs until cancellation. Cancellation is not an error.
func (w *World) Run(ctx context.Context, period time.Duration, maxTicks uint64) error {
	if period <= 0 {
		return fmt.Errorf("tick period %s must be positive", period)
	}

	w.Start()
	defer w.Stop()

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for start := w.CurrentTick; maxTicks == 0 || w.CurrentTick-start < maxTicks; {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.Tick(ctx)
		}
	}
	return nil
}
