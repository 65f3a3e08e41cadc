// pkg/render/engo/scene.go
package engo

import (
	"context"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-hexbounce/pkg/event"
	"github.com/opd-ai/go-hexbounce/pkg/logging"
	"github.com/opd-ai/go-hexbounce/pkg/physics"
	"github.com/opd-ai/go-hexbounce/pkg/simulation"
)

// contactFlashSeconds is how long the ball stays highlighted after a bounce
const contactFlashSeconds = 0.12

// Options configures the viewer window
type Options struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
}

// Scene shows a simulation in an engo window
type Scene struct {
	sim    *simulation.Simulation
	logger *logging.Logger
	sub    *event.Subscription
}

// NewScene creates a scene for sim. A nil logger discards output.
func NewScene(sim *simulation.Simulation, logger *logging.Logger) *Scene {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Scene{sim: sim, logger: logger}
}

// Type returns the scene type (required by Engo)
func (scene *Scene) Type() string {
	return "HexbounceScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *Scene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *Scene) Setup(u engo.Updater) {
	world := u.(*ecs.World)
	common.SetBackground(backgroundColor)
	SetupInputBindings()

	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)

	state := scene.sim.Snapshot()
	offset := physics.Vector2D{
		X: float64(engo.GameWidth())/2 - state.Pose.CenterX,
		Y: float64(engo.GameHeight())/2 - state.Pose.CenterY,
	}

	sys := NewSimulationSystem(scene.sim, offset)
	for _, e := range sys.edges {
		renderSystem.Add(&e.BasicEntity, &e.RenderComponent, &e.SpaceComponent)
	}
	renderSystem.Add(&sys.ball.BasicEntity, &sys.ball.RenderComponent, &sys.ball.SpaceComponent)

	scene.sub = scene.sim.EventBus.Subscribe(event.BoundaryContact, sys.onContact)

	world.AddSystem(sys)
	world.AddSystem(NewInputSystem(scene.sim))

	scene.logger.Info(context.Background(), "viewer started",
		"run_id", scene.sim.RunID(),
		"width", engo.GameWidth(),
		"height", engo.GameHeight(),
	)
}

// Exit is called when the window closes
func (scene *Scene) Exit() {
	if scene.sub != nil {
		scene.sub.Cancel()
	}
	scene.logger.Info(context.Background(), "viewer closed", "tick", scene.sim.Snapshot().Tick)
}

// Run opens a window and blocks until it is closed
func Run(sim *simulation.Simulation, logger *logging.Logger, opts Options) {
	engo.Run(engo.RunOptions{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Fullscreen: opts.Fullscreen,
		VSync:      true,
	}, NewScene(sim, logger))
}

// SimulationSystem advances the simulation once per frame and moves the
// edge and ball entities to the new state
type SimulationSystem struct {
	sim    *simulation.Simulation
	offset physics.Vector2D
	edges  []*shape
	ball   *shape
	flash  float32
}

// NewSimulationSystem creates the system and its entities, already synced to
// the current state
func NewSimulationSystem(sim *simulation.Simulation, offset physics.Vector2D) *SimulationSystem {
	sys := &SimulationSystem{
		sim:    sim,
		offset: offset,
		edges:  make([]*shape, physics.HexagonSides),
		ball:   newBallShape(),
	}
	for i := range sys.edges {
		sys.edges[i] = newEdgeShape()
	}
	syncShapes(sim.Snapshot(), offset, sys.edges, sys.ball)
	return sys
}

// Remove satisfies the ecs.System interface
func (s *SimulationSystem) Remove(basic ecs.BasicEntity) {}

// Update steps the simulation by the frame time and syncs entities
func (s *SimulationSystem) Update(dt float32) {
	s.sim.StepElapsed(float64(dt))
	syncShapes(s.sim.Snapshot(), s.offset, s.edges, s.ball)

	if s.flash > 0 {
		s.flash -= dt
		if s.flash <= 0 {
			s.ball.Color = ballColor
		}
	}
}

func (s *SimulationSystem) onContact(event.Event) {
	s.flash = contactFlashSeconds
	s.ball.Color = contactColor
}
