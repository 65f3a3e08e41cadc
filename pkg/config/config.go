// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opd-ai/go-hexbounce/pkg/physics"
)

// SimulationConfig is everything a host needs to build and drive one
// simulation: physics tuning, the boundary, the initial ball and the loop.
type SimulationConfig struct {
	Physics physics.Config `json:"physics" yaml:"physics"`
	Hexagon HexagonConfig  `json:"hexagon" yaml:"hexagon"`
	Ball    BallConfig     `json:"ball" yaml:"ball"`
	Loop    LoopConfig     `json:"loop" yaml:"loop"`
}

// HexagonConfig contains the initial boundary pose and its spin
type HexagonConfig struct {
	CenterX       float64 `json:"centerX" yaml:"centerX"`
	CenterY       float64 `json:"centerY" yaml:"centerY"`
	Radius        float64 `json:"radius" yaml:"radius"`
	Rotation      float64 `json:"rotation" yaml:"rotation"`
	RotationSpeed float64 `json:"rotationSpeed" yaml:"rotationSpeed"` // radians per unit of dt
}

// BallConfig contains the initial body state
type BallConfig struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	VX     float64 `json:"vx" yaml:"vx"`
	VY     float64 `json:"vy" yaml:"vy"`
	Radius float64 `json:"radius" yaml:"radius"`
	Mass   float64 `json:"mass" yaml:"mass"`
}

// LoopConfig contains host loop timing
type LoopConfig struct {
	TickRate  int     `json:"tickRate" yaml:"tickRate"`   // ticks per second
	TimeScale float64 `json:"timeScale" yaml:"timeScale"` // dt units per second of wall time
	RenderFPS int     `json:"renderFPS" yaml:"renderFPS"`
	MaxTicks  uint64  `json:"maxTicks" yaml:"maxTicks"` // 0 runs until cancelled
}

// Pose returns the initial hexagon pose.
func (c HexagonConfig) Pose() physics.HexagonPose {
	return physics.HexagonPose{
		CenterX:  c.CenterX,
		CenterY:  c.CenterY,
		Radius:   c.Radius,
		Rotation: c.Rotation,
	}
}

// Body returns a fresh body in its initial state.
func (c BallConfig) Body() physics.Body {
	return physics.Body{
		Position: physics.Vector2D{X: c.X, Y: c.Y},
		Velocity: physics.Vector2D{X: c.VX, Y: c.VY},
		Radius:   c.Radius,
		Mass:     c.Mass,
	}
}

// TickDelta is the dt handed to each physics step at the configured rate.
func (c LoopConfig) TickDelta() float64 {
	return c.TimeScale / float64(c.TickRate)
}

// LoadConfig loads a configuration from a JSON or YAML file. The format is
// picked from the extension; fields absent from the file keep their defaults.
func LoadConfig(path string) (*SimulationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a file in the format implied by its
// extension.
func SaveConfig(config *SimulationConfig, path string) error {
	if config == nil {
		return fmt.Errorf("failed to marshal config: %w", ErrNilConfig)
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the stock playground: a 200px hexagon centred in an
// 800x600 canvas with the ball starting at its center.
func DefaultConfig() *SimulationConfig {
	return &SimulationConfig{
		Physics: physics.DefaultConfig(),
		Hexagon: HexagonConfig{
			CenterX:       400,
			CenterY:       300,
			Radius:        200,
			Rotation:      0,
			RotationSpeed: 0.01,
		},
		Ball: BallConfig{
			X:      400,
			Y:      300,
			VX:     2,
			VY:     0,
			Radius: 15,
			Mass:   1,
		},
		Loop: LoopConfig{
			TickRate:  60,
			TimeScale: 60,
			RenderFPS: 30,
			MaxTicks:  0,
		},
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
