// pkg/render/ebiten/game.go
package ebiten

import (
	"context"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/opd-ai/go-hexbounce/pkg/logging"
	"github.com/opd-ai/go-hexbounce/pkg/physics"
	"github.com/opd-ai/go-hexbounce/pkg/render"
	"github.com/opd-ai/go-hexbounce/pkg/simulation"
)

const (
	rotationStep    = 0.005
	maxRotationRate = 0.2
)

// Options configures the window
type Options struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
}

// Game implements ebiten.Game for a simulation
type Game struct {
	sim      *simulation.Simulation
	renderer *Renderer
	logger   *logging.Logger
	width    int
	height   int
}

// NewGame creates a game drawing sim centred in a width x height screen.
func NewGame(sim *simulation.Simulation, logger *logging.Logger, width, height int) *Game {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	pose := sim.Snapshot().Pose
	offset := physics.Vector2D{
		X: float64(width)/2 - pose.CenterX,
		Y: float64(height)/2 - pose.CenterY,
	}
	return &Game{
		sim:      sim,
		renderer: NewRenderer(offset),
		logger:   logger,
		width:    width,
		height:   height,
	}
}

// Update handles input and advances the simulation one frame.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.sim.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.sim.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		g.sim.NudgeRotation(rotationStep, maxRotationRate)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		g.sim.NudgeRotation(-rotationStep, maxRotationRate)
	}

	g.sim.StepElapsed(1 / float64(ebiten.TPS()))
	return nil
}

// Draw renders the current state and a status line.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Target(screen)
	state := g.sim.Snapshot()
	if err := render.Draw(g.renderer, state); err != nil {
		g.logger.Warn(context.Background(), "Failed to draw frame", "error", err.Error())
	}
	ebitenutil.DebugPrint(screen, statusLine(state, g.sim.RotationSpeed()))
}

// Layout keeps a fixed logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

func statusLine(state simulation.State, spin float64) string {
	line := fmt.Sprintf("tick %d  contacts %d  speed %.2f  spin %+.3f",
		state.Tick, state.Contacts, state.Body.Speed(), spin)
	if state.Paused {
		line += "  [paused]"
	}
	return line + "\nR reset  Space pause  Up/Down spin"
}

// Run opens a window and blocks until it is closed.
func Run(sim *simulation.Simulation, logger *logging.Logger, opts Options) error {
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetFullscreen(opts.Fullscreen)

	game := NewGame(sim, logger, opts.Width, opts.Height)
	game.logger.Info(context.Background(), "viewer started", "run_id", sim.RunID(), "backend", "ebiten")
	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("ebiten: %w", err)
	}
	game.logger.Info(context.Background(), "viewer closed", "tick", sim.Snapshot().Tick)
	return nil
}
