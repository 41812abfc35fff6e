// pkg/render/engo/scene.go
package engo

import (
	"context"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-thrusters/pkg/engine"
	"github.com/opd-ai/go-thrusters/pkg/logging"
)

// SimScene runs a simulation world inside Engo
type SimScene struct {
	ctx     context.Context
	world   *engine.World
	surface *EngoSurface
	logger  *logging.Logger

	input *InputSystem
	hud   *HUDSystem
}

// NewSimScene creates a scene that ticks world once per Engo update and
// draws it onto surface, which must be the world's surface.
func NewSimScene(ctx context.Context, world *engine.World, surface *EngoSurface, logger *logging.Logger) *SimScene {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &SimScene{
		ctx:     ctx,
		world:   world,
		surface: surface,
		logger:  logger,
	}
}

// Type returns the scene type (required by Engo)
func (scene *SimScene) Type() string {
	return "SimScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *SimScene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *SimScene) Setup(u engo.Updater) {
	w := u.(*ecs.World)
	common.SetBackground(color.Black)
	SetupInputBindings()

	renderSystem := &common.RenderSystem{}
	w.AddSystem(renderSystem)
	scene.surface.Attach(renderSystem)

	scene.input = NewInputSystem(scene.ctx, scene.world, nil)
	scene.hud = NewHUDSystem(scene.world, nil)
	w.AddSystem(scene.input)
	w.AddSystem(NewTickSystem(scene.ctx, scene.world))
	w.AddSystem(scene.hud)

	scene.world.Start()
	scene.logger.Info(scene.ctx, "scene started", "ships", len(scene.world.Ships))
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *SimScene) Exit() {
	if scene.hud != nil {
		scene.hud.Close()
	}
	scene.world.Stop()
	scene.logger.Info(scene.ctx, "scene exited", "ticks", scene.world.CurrentTick)
}

// TickSystem advances the world once per Engo update. It runs before the
// render system, which has the lowest priority, so every frame shows the
// state of the tick just run.
type TickSystem struct {
	ctx   context.Context
	world *engine.World
}

// NewTickSystem creates a system ticking world.
func NewTickSystem(ctx context.Context, world *engine.World) *TickSystem {
	return &TickSystem{ctx: ctx, world: world}
}

// Remove satisfies the ecs.System interface
func (ts *TickSystem) Remove(basic ecs.BasicEntity) {}

// Update ticks the world. Time steps come from the ships' clocks, not dt.
func (ts *TickSystem) Update(dt float32) {
	if ts.ctx.Err() != nil {
		engo.Exit()
		return
	}
	ts.world.Tick(ts.ctx)
}
