// pkg/physics/hexagon.go
package physics

import "math"

// HexagonSides is the number of edges in the boundary polygon.
const HexagonSides = 6

// HexagonPose positions the boundary for a single tick.
type HexagonPose struct {
	CenterX  float64
	CenterY  float64
	Radius   float64 // circumradius, center to vertex
	Rotation float64 // radians
}

// Center returns the pose center as a vector.
func (p HexagonPose) Center() Vector2D {
	return Vector2D{X: p.CenterX, Y: p.CenterY}
}

// Vertices returns the six boundary vertices for this pose.
func (p HexagonPose) Vertices() [HexagonSides]Vector2D {
	return HexagonVertices(p.CenterX, p.CenterY, p.Radius, p.Rotation)
}

// Inradius is the distance from the center to the middle of every edge.
func (p HexagonPose) Inradius() float64 {
	return p.Radius * math.Sqrt(3) / 2
}

// HexagonVertices places vertex i at angle rotation + i*60 degrees around the
// center, counterclockwise in standard math orientation. Nothing is cached.
func HexagonVertices(centerX, centerY, radius, rotation float64) [HexagonSides]Vector2D {
	center := Vector2D{X: centerX, Y: centerY}
	var vertices [HexagonSides]Vector2D
	for i := range vertices {
		angle := float64(i)*math.Pi/3 + rotation
		vertices[i] = center.Add(FromAngle(angle, radius))
	}
	return vertices
}
