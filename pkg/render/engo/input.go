// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-hexbounce/pkg/simulation"
)

// Button names registered with engo.Input
const (
	buttonReset     = "reset"
	buttonPause     = "pause"
	buttonSpinUp    = "spinUp"
	buttonSpinDown  = "spinDown"
	rotationStep    = 0.005
	maxRotationRate = 0.2
)

type command int

const (
	commandReset command = iota
	commandTogglePause
	commandSpinUp
	commandSpinDown
)

// InputSystem maps key presses onto simulation controls
type InputSystem struct {
	sim *simulation.Simulation
}

// NewInputSystem creates an input system controlling sim
func NewInputSystem(sim *simulation.Simulation) *InputSystem {
	return &InputSystem{sim: sim}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update reads buttons pressed this frame
func (is *InputSystem) Update(dt float32) {
	if engo.Input.Button(buttonReset).JustPressed() {
		is.apply(commandReset)
	}
	if engo.Input.Button(buttonPause).JustPressed() {
		is.apply(commandTogglePause)
	}
	if engo.Input.Button(buttonSpinUp).JustPressed() {
		is.apply(commandSpinUp)
	}
	if engo.Input.Button(buttonSpinDown).JustPressed() {
		is.apply(commandSpinDown)
	}
}

func (is *InputSystem) apply(cmd command) {
	switch cmd {
	case commandReset:
		is.sim.Reset()
	case commandTogglePause:
		is.sim.TogglePause()
	case commandSpinUp:
		is.sim.NudgeRotation(rotationStep, maxRotationRate)
	case commandSpinDown:
		is.sim.NudgeRotation(-rotationStep, maxRotationRate)
	}
}

// SetupInputBindings sets up the key bindings for the viewer
func SetupInputBindings() {
	engo.Input.RegisterButton(buttonReset, engo.KeyR)
	engo.Input.RegisterButton(buttonPause, engo.KeySpace)
	engo.Input.RegisterButton(buttonSpinUp, engo.KeyArrowUp)
	engo.Input.RegisterButton(buttonSpinDown, engo.KeyArrowDown)
}
