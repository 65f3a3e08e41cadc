// pkg/simulation/simulation.go
package simulation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/opd-ai/go-hexbounce/pkg/config"
	"github.com/opd-ai/go-hexbounce/pkg/event"
	"github.com/opd-ai/go-hexbounce/pkg/logging"
	"github.com/opd-ai/go-hexbounce/pkg/physics"
)

// maxFrameSeconds caps wall-clock frame time fed through StepElapsed.
const maxFrameSeconds = 0.1

// ErrAlreadyRunning is returned by Run while another Run is active.
var ErrAlreadyRunning = errors.New("simulation already running")

// State is an immutable snapshot of one simulation tick
type State struct {
	Tick        uint64
	Elapsed     float64 // accumulated dt
	Body        physics.Body
	Pose        physics.HexagonPose
	Vertices    [physics.HexagonSides]physics.Vector2D
	Physics     physics.Config
	Contacts    uint64
	LastContact physics.CollisionResult
	Paused      bool
}

// Simulation drives one body inside a rotating hexagon on behalf of a host.
// All methods are safe for concurrent use; ticks are applied one at a time.
type Simulation struct {
	mu sync.RWMutex

	initial       config.SimulationConfig
	physics       physics.Config
	body          physics.Body
	pose          physics.HexagonPose
	rotationSpeed float64

	tick        uint64
	elapsed     float64
	contacts    uint64
	lastContact physics.CollisionResult
	paused      bool
	running     bool

	EventBus *event.Bus
	logger   *logging.Logger
	logCtx   context.Context
}

// New creates a simulation from cfg. Nil arguments fall back to the default
// config, a private event bus and a discarding logger.
func New(cfg *config.SimulationConfig, bus *event.Bus, logger *logging.Logger) *Simulation {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if bus == nil {
		bus = event.NewEventBus()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	s := &Simulation{
		initial:  *cfg,
		EventBus: bus,
		logger:   logger,
		physics:  cfg.Physics,
		logCtx:   logging.WithRunID(context.Background(), ""),
	}
	s.resetLocked()
	return s
}

// RunID identifies this simulation in log output.
func (s *Simulation) RunID() string {
	return logging.GetRunID(s.logCtx)
}

// Step advances the simulation by dt unless it is paused. The hexagon is
// rotated first, then the body is stepped against the new pose.
func (s *Simulation) Step(dt float64) physics.CollisionResult {
	s.mu.Lock()
	if s.paused {
		s.mu.Unlock()
		return physics.CollisionResult{Edge: -1}
	}
	contact, e := s.advanceLocked(dt)
	s.mu.Unlock()

	s.publishContact(e)
	return contact
}

// StepElapsed converts wall-clock seconds into dt using the configured time
// scale and steps once. Frames longer than 100ms are clamped.
func (s *Simulation) StepElapsed(seconds float64) physics.CollisionResult {
	if seconds > maxFrameSeconds {
		seconds = maxFrameSeconds
	}
	if seconds <= 0 {
		return physics.CollisionResult{Edge: -1}
	}
	return s.Step(seconds * s.initial.Loop.TimeScale)
}

func (s *Simulation) advanceLocked(dt float64) (physics.CollisionResult, *event.ContactEvent) {
	s.pose.Rotation += s.rotationSpeed * dt
	vertices := s.pose.Vertices()

	// Same stages as physics.Step, split so the pre-contact speed is known.
	physics.ApplyGravity(&s.body, dt, s.physics)
	physics.ApplyAirResistance(&s.body, s.physics)
	physics.Integrate(&s.body, dt)
	before := s.body.Speed()

	contact := physics.CheckHexagonCollision(s.body, vertices)
	s.tick++
	s.elapsed += dt
	if !contact.Collided {
		return contact, nil
	}

	physics.ResolveCollision(&s.body, contact, s.physics)
	s.contacts++
	s.lastContact = contact
	return contact, event.NewContactEvent(s, s.tick, contact, before, s.body.Speed())
}

func (s *Simulation) publishContact(e *event.ContactEvent) {
	if e == nil {
		return
	}
	s.logger.Debug(s.logCtx, "boundary contact",
		"tick", e.Tick,
		"edge", e.Contact.Edge,
		"penetration", e.Contact.Penetration,
		"speed_before", e.SpeedBefore,
		"speed_after", e.SpeedAfter,
	)
	s.EventBus.Publish(e)
}

// Snapshot returns the current state.
func (s *Simulation) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return State{
		Tick:        s.tick,
		Elapsed:     s.elapsed,
		Body:        s.body,
		Pose:        s.pose,
		Vertices:    s.pose.Vertices(),
		Physics:     s.physics,
		Contacts:    s.contacts,
		LastContact: s.lastContact,
		Paused:      s.paused,
	}
}

// SetPhysicsConfig swaps the tuning used from the next tick on.
func (s *Simulation) SetPhysicsConfig(cfg physics.Config) {
	s.mu.Lock()
	previous := s.physics
	s.physics = cfg
	s.mu.Unlock()

	s.logger.Info(s.logCtx, "physics config changed",
		"gravity", cfg.Gravity,
		"friction", cfg.Friction,
		"bounce", cfg.Bounce,
		"air_resistance", cfg.AirResistance,
	)
	s.EventBus.Publish(event.NewConfigEvent(s, previous, cfg))
}

// SetRotationSpeed changes how far the hexagon turns per unit of dt.
func (s *Simulation) SetRotationSpeed(speed float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rotationSpeed = speed
}

// RotationSpeed returns the current hexagon spin in radians per unit of dt.
func (s *Simulation) RotationSpeed() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rotationSpeed
}

// NudgeRotation adds delta to the spin, clamped to [-limit, limit], and
// returns the new value.
func (s *Simulation) NudgeRotation(delta, limit float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rotationSpeed = math.Max(-limit, math.Min(limit, s.rotationSpeed+delta))
	return s.rotationSpeed
}

// Reset restores the initial body, pose and spin and zeroes the counters.
// The current physics config is kept.
func (s *Simulation) Reset() {
	s.mu.Lock()
	s.resetLocked()
	s.mu.Unlock()

	s.logger.Info(s.logCtx, "simulation reset")
	s.EventBus.Publish(event.NewLifecycleEvent(event.SimulationReset, s, 0))
}

func (s *Simulation) resetLocked() {
	s.body = s.initial.Ball.Body()
	s.pose = s.initial.Hexagon.Pose()
	s.rotationSpeed = s.initial.Hexagon.RotationSpeed
	s.tick = 0
	s.elapsed = 0
	s.contacts = 0
	s.lastContact = physics.CollisionResult{Edge: -1}
}

// Pause stops Step from advancing the simulation.
func (s *Simulation) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = true
}

// Resume undoes Pause.
func (s *Simulation) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = false
}

// TogglePause flips the paused flag and returns the new value.
func (s *Simulation) TogglePause() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = !s.paused
	return s.paused
}

// Paused reports whether Step is currently a no-op.
func (s *Simulation) Paused() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paused
}

// Running reports whether Run is active.
func (s *Simulation) Running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Run ticks the simulation at the configured rate until ctx is cancelled or
// Loop.MaxTicks ticks have been applied. onTick, when set, receives a
// snapshot after every tick on the Run goroutine. Cancellation is a normal
// stop and returns nil.
func (s *Simulation) Run(ctx context.Context, onTick func(State)) error {
	loop := s.initial.Loop
	if loop.TickRate <= 0 {
		return fmt.Errorf("invalid tick rate %d", loop.TickRate)
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	s.running = true
	startTick := s.tick
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		tick := s.tick
		s.mu.Unlock()

		s.logger.Info(s.logCtx, "simulation stopped", "tick", tick)
		s.EventBus.Publish(event.NewLifecycleEvent(event.SimulationStopped, s, tick))
	}()

	s.logger.Info(s.logCtx, "simulation started",
		"tick_rate", loop.TickRate,
		"dt", loop.TickDelta(),
		"max_ticks", loop.MaxTicks,
	)
	s.EventBus.Publish(event.NewLifecycleEvent(event.SimulationStarted, s, startTick))

	ticker := time.NewTicker(time.Second / time.Duration(loop.TickRate))
	defer ticker.Stop()

	dt := loop.TickDelta()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Step(dt)
			state := s.Snapshot()
			if onTick != nil {
				onTick(state)
			}
			if loop.MaxTicks > 0 && state.Tick >= loop.MaxTicks {
				return nil
			}
		}
	}
}

// RunHeadless applies ticks fixed steps without a clock, ignoring pause, and
// returns the final state. Results are reproducible for a given config.
func (s *Simulation) RunHeadless(ticks int) State {
	dt := s.initial.Loop.TickDelta()
	for i := 0; i < ticks; i++ {
		s.mu.Lock()
		_, e := s.advanceLocked(dt)
		s.mu.Unlock()
		s.publishContact(e)
	}
	return s.Snapshot()
}
