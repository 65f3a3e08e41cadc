// pkg/physics/stepper.go
package physics

// Step advances body by one tick inside the hexagon described by pose.
// The pipeline is gravity, air resistance, semi-implicit Euler integration,
// then resolution of at most one boundary contact. The resolved contact is
// returned for observers; ignoring it is fine.
func Step(body *Body, pose HexagonPose, dt float64, cfg Config) CollisionResult {
	vertices := pose.Vertices()
	return StepVertices(body, vertices[:], dt, cfg)
}

// StepVertices runs the same pipeline as Step against vertices the caller
// already computed, e.g. when the pose did not change since the last tick.
func StepVertices(body *Body, vertices []Vector2D, dt float64, cfg Config) CollisionResult {
	ApplyGravity(body, dt, cfg)
	ApplyAirResistance(body, cfg)
	Integrate(body, dt)

	contact := CheckPolygonCollision(*body, vertices)
	if contact.Collided {
		ResolveCollision(body, contact, cfg)
	}
	return contact
}

// ApplyGravity accelerates the body along +Y (screen down).
func ApplyGravity(body *Body, dt float64, cfg Config) {
	body.Velocity.Y += cfg.Gravity * dt
}

// ApplyAirResistance damps both velocity components by the same factor.
func ApplyAirResistance(body *Body, cfg Config) {
	body.Velocity = body.Velocity.Scale(cfg.AirResistance)
}

// Integrate moves the body using its already updated velocity.
func Integrate(body *Body, dt float64) {
	body.Position = body.Position.Add(body.Velocity.Scale(dt))
}

// ResolveCollision pushes the body fully out along the contact normal,
// reflects its velocity scaled by Bounce, then scales the whole resulting
// velocity (normal and tangential parts alike) by Friction.
func ResolveCollision(body *Body, contact CollisionResult, cfg Config) {
	body.Position = body.Position.Add(contact.Normal.Scale(contact.Penetration))

	body.Velocity = body.Velocity.Reflect(contact.Normal).Scale(cfg.Bounce)
	body.Velocity = body.Velocity.Scale(cfg.Friction)
}
