// pkg/physics/collision.go
package physics

import "math"

// CollisionResult describes the single contact resolved against a boundary.
type CollisionResult struct {
	Collided     bool
	Normal       Vector2D // unit vector from ContactPoint toward the body center
	Penetration  float64  // body radius minus contact distance, > 0 when Collided
	ContactPoint Vector2D
	Edge         int // index i of edge (v[i], v[i+1]); -1 without a contact
}

// ClosestPointOnSegment projects point onto the segment start-end, clamps the
// projection to the segment and returns that point with its distance from
// point. A zero-length segment yields start.
func ClosestPointOnSegment(point, start, end Vector2D) (Vector2D, float64) {
	line := end.Sub(start)
	segmentLength := line.Length()
	if segmentLength == 0 {
		return start, point.Distance(start)
	}

	direction := line.Normalize()
	projection := point.Sub(start).Dot(direction)
	projection = math.Max(0, math.Min(segmentLength, projection))

	closest := start.Add(direction.Scale(projection))
	return closest, point.Distance(closest)
}

// CheckHexagonCollision tests a body against the closed hexagon outline.
func CheckHexagonCollision(body Body, vertices [HexagonSides]Vector2D) CollisionResult {
	return CheckPolygonCollision(body, vertices[:])
}

// CheckPolygonCollision walks every edge of the closed polygon and keeps the
// nearest one closer than the body radius. Only that edge is reported even
// when the circle overlaps several edges near a vertex.
func CheckPolygonCollision(body Body, vertices []Vector2D) CollisionResult {
	result := CollisionResult{Edge: -1}
	minDistance := math.Inf(1)

	for i, current := range vertices {
		next := vertices[(i+1)%len(vertices)]
		closest, distance := ClosestPointOnSegment(body.Position, current, next)

		if distance < body.Radius && distance < minDistance {
			minDistance = distance
			result.Edge = i
			result.ContactPoint = closest
			result.Penetration = body.Radius - distance
			result.Normal = body.Position.Sub(closest).Normalize()
		}
	}

	result.Collided = minDistance < body.Radius
	return result
}
