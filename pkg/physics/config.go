// pkg/physics/config.go
package physics

// Config holds the tunable constants read by Step. Hosts may change it
// between ticks, never during one.
type Config struct {
	Gravity       float64 `json:"gravity" yaml:"gravity"`
	Friction      float64 `json:"friction" yaml:"friction"`           // [0,1], applied to the whole post-bounce velocity
	Bounce        float64 `json:"bounce" yaml:"bounce"`               // [0,1]
	AirResistance float64 `json:"airResistance" yaml:"airResistance"` // (0,1], per-tick velocity multiplier
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		Gravity:       0.5,
		Friction:      0.98,
		Bounce:        0.8,
		AirResistance: 0.999,
	}
}
