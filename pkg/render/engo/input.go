// pkg/render/engo/input.go
package engo

import (
	"context"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-thrusters/pkg/engine"
)

// Button names registered by SetupInputBindings.
const (
	ButtonThrust     = "thrust"
	ButtonTurnLeft   = "turnLeft"
	ButtonTurnRight  = "turnRight"
	ButtonBrake      = "brake"
	ButtonCycleFocus = "cycleFocus"
	ButtonQuit       = "quit"
)

// Buttons reports the state of named buttons.
type Buttons interface {
	Down(name string) bool
	JustPressed(name string) bool
}

// engoButtons reads the buttons registered with the Engo input manager.
type engoButtons struct{}

func (engoButtons) Down(name string) bool        { return engo.Input.Button(name).Down() }
func (engoButtons) JustPressed(name string) bool { return engo.Input.Button(name).JustPressed() }

// InputSystem turns the keyboard into commands for the focused ship
type InputSystem struct {
	ctx     context.Context
	world   *engine.World
	buttons Buttons
	exit    func()
}

// NewInputSystem creates an input system that drives world. A nil buttons
// reads the Engo input manager.
func NewInputSystem(ctx context.Context, world *engine.World, buttons Buttons) *InputSystem {
	if buttons == nil {
		buttons = engoButtons{}
	}
	return &InputSystem{
		ctx:     ctx,
		world:   world,
		buttons: buttons,
		exit:    engo.Exit,
	}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update reads the buttons and hands the resulting command to the world.
func (is *InputSystem) Update(dt float32) {
	if is.buttons.JustPressed(ButtonQuit) {
		is.exit()
		return
	}

	is.world.SetCommand(engine.Command{
		Thrust:    is.buttons.Down(ButtonThrust),
		TurnLeft:  is.buttons.Down(ButtonTurnLeft),
		TurnRight: is.buttons.Down(ButtonTurnRight),
		Brake:     is.buttons.Down(ButtonBrake),
	})

	if is.buttons.JustPressed(ButtonCycleFocus) {
		is.world.CycleFocus(is.ctx)
	}
}

// SetupInputBindings registers the key bindings for the simulation
func SetupInputBindings() {
	engo.Input.RegisterButton(ButtonThrust, engo.KeyArrowUp, engo.KeyW)
	engo.Input.RegisterButton(ButtonTurnLeft, engo.KeyArrowLeft, engo.KeyA)
	engo.Input.RegisterButton(ButtonTurnRight, engo.KeyArrowRight, engo.KeyD)
	engo.Input.RegisterButton(ButtonBrake, engo.KeyArrowDown, engo.KeyS)
	engo.Input.RegisterButton(ButtonCycleFocus, engo.KeySpace)
	engo.Input.RegisterButton(ButtonQuit, engo.KeyEscape)
}
