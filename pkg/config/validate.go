// pkg/config/validate.go
package config

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig wraps every validation failure.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrNilConfig is returned when a nil configuration is passed in.
	ErrNilConfig = errors.New("config is nil")
)

// Validate enforces the ranges the physics core assumes but never checks.
// All failures are joined into the returned error.
func Validate(config *SimulationConfig) error {
	if config == nil {
		return ErrNilConfig
	}

	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
	}

	p := config.Physics
	if p.Friction < 0 || p.Friction > 1 {
		fail("physics.friction %v outside [0,1]", p.Friction)
	}
	if p.Bounce < 0 || p.Bounce > 1 {
		fail("physics.bounce %v outside [0,1]", p.Bounce)
	}
	if p.AirResistance <= 0 || p.AirResistance > 1 {
		fail("physics.airResistance %v outside (0,1]", p.AirResistance)
	}

	if config.Hexagon.Radius <= 0 {
		fail("hexagon.radius %v must be positive", config.Hexagon.Radius)
	}
	if config.Ball.Radius <= 0 {
		fail("ball.radius %v must be positive", config.Ball.Radius)
	}
	if config.Ball.Mass <= 0 {
		fail("ball.mass %v must be positive", config.Ball.Mass)
	}

	if config.Hexagon.Radius > 0 && config.Ball.Radius > 0 {
		pose := config.Hexagon.Pose()
		start := config.Ball.Body().Position
		if start.Distance(pose.Center())+config.Ball.Radius > pose.Inradius() {
			fail("ball (radius %v at %v,%v) does not start inside the hexagon inradius %v",
				config.Ball.Radius, config.Ball.X, config.Ball.Y, pose.Inradius())
		}
	}

	if config.Loop.TickRate <= 0 {
		fail("loop.tickRate %d must be positive", config.Loop.TickRate)
	}
	if config.Loop.TimeScale <= 0 {
		fail("loop.timeScale %v must be positive", config.Loop.TimeScale)
	}
	if config.Loop.RenderFPS < 0 {
		fail("loop.renderFPS %d must not be negative", config.Loop.RenderFPS)
	}

	return errors.Join(errs...)
}
