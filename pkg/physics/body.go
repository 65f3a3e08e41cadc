// pkg/physics/body.go
package physics

// Body is the simulated circle. The caller owns it; Step mutates it in place.
// Radius and Mass must be positive, which is not checked here.
type Body struct {
	Position Vector2D
	Velocity Vector2D
	Radius   float64
	Mass     float64 // carried for callers, no computation reads it
}

// Speed returns the magnitude of the body's velocity.
func (b Body) Speed() float64 {
	return b.Velocity.Length()
}
