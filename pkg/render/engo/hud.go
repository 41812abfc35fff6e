// pkg/render/engo/hud.go
package engo

import (
	"fmt"
	"sync/atomic"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-thrusters/pkg/engine"
	"github.com/opd-ai/go-thrusters/pkg/event"
)

// hudRefresh is the number of updates between status refreshes.
const hudRefresh = 10

// HUDSystem shows the focused ship's status in the window title
type HUDSystem struct {
	world      *engine.World
	show       func(string)
	collisions atomic.Int64
	sub        *event.Subscription

	updates int
	last    string
}

// NewHUDSystem creates a HUD for world that counts collisions published on
// the world's event bus. A nil show sets the window title.
func NewHUDSystem(world *engine.World, show func(string)) *HUDSystem {
	if show == nil {
		show = engo.SetTitle
	}
	hud := &HUDSystem{world: world, show: show}
	hud.sub = world.EventBus.Subscribe(event.ShipCollision, func(event.Event) {
		hud.collisions.Add(1)
	})
	return hud
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {}

// Update refreshes the status every few updates, and only when it changed.
func (hud *HUDSystem) Update(dt float32) {
	hud.updates++
	if hud.updates%hudRefresh != 1 {
		return
	}

	status := hud.Status()
	if status == hud.last {
		return
	}
	hud.last = status
	hud.show(status)
}

// Status formats the focused ship's name and speed, the tick count and the
// number of collisions seen so far.
func (hud *HUDSystem) Status() string {
	focused := hud.world.Focused()
	if focused == nil {
		return fmt.Sprintf("tick %d", hud.world.CurrentTick)
	}
	return fmt.Sprintf("%s | speed %.1f | tick %d | collisions %d",
		focused.Name(), focused.Speed(), hud.world.CurrentTick, hud.collisions.Load())
}

// Close stops counting collisions.
func (hud *HUDSystem) Close() {
	hud.sub.Cancel()
}
