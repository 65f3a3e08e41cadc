// pkg/physics/collision_test.go
package physics

import (
	"math"
	"testing"
)

func TestClosestPointOnSegment(t *testing.T) {
	start := Vector2D{X: 0, Y: 0}
	end := Vector2D{X: 10, Y: 0}

	tests := []struct {
		name         string
		point        Vector2D
		wantClosest  Vector2D
		wantDistance float64
	}{
		{
			name:         "projects_inside_segment",
			point:        Vector2D{X: 4, Y: 3},
			wantClosest:  Vector2D{X: 4, Y: 0},
			wantDistance: 3,
		},
		{
			name:         "clamped_before_start",
			point:        Vector2D{X: -3, Y: 4},
			wantClosest:  start,
			wantDistance: 5,
		},
		{
			name:         "clamped_after_end",
			point:        Vector2D{X: 13, Y: -4},
			wantClosest:  end,
			wantDistance: 5,
		},
		{
			name:         "point_on_segment",
			point:        Vector2D{X: 7, Y: 0},
			wantClosest:  Vector2D{X: 7, Y: 0},
			wantDistance: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			closest, distance := ClosestPointOnSegment(tt.point, start, end)
			if !vectorsClose(closest, tt.wantClosest) {
				t.Errorf("closest = %v, expected %v", closest, tt.wantClosest)
			}
			if math.Abs(distance-tt.wantDistance) > epsilon {
				t.Errorf("distance = %v, expected %v", distance, tt.wantDistance)
			}
		})
	}
}

func TestClosestPointOnSegment_Degenerate(t *testing.T) {
	point := Vector2D{X: 8, Y: 9}
	corner := Vector2D{X: 5, Y: 5}

	closest, distance := ClosestPointOnSegment(point, corner, corner)

	if closest != corner {
		t.Errorf("closest = %v, expected segment start %v", closest, corner)
	}
	if distance != point.Distance(corner) {
		t.Errorf("distance = %v, expected exactly %v", distance, point.Distance(corner))
	}
}

func TestCheckHexagonCollision_NoContact(t *testing.T) {
	pose := HexagonPose{Radius: 100}
	body := Body{Position: Vector2D{X: 0, Y: 0.5}, Radius: 10, Mass: 1}

	result := CheckHexagonCollision(body, pose.Vertices())

	if result.Collided {
		t.Fatalf("expected no collision for a centered body, got %+v", result)
	}
	if result.Edge != -1 {
		t.Errorf("Edge = %d, expected -1", result.Edge)
	}
}

func TestCheckHexagonCollision_TouchingEdge(t *testing.T) {
	pose := HexagonPose{Radius: 100}
	const radius = 10.0
	const eps = 0.25

	// With rotation 0 edge 1 runs horizontally at y = inradius.
	body := Body{
		Position: Vector2D{X: 0, Y: pose.Inradius() - (radius - eps)},
		Radius:   radius,
		Mass:     1,
	}

	result := CheckHexagonCollision(body, pose.Vertices())

	if !result.Collided {
		t.Fatal("expected collision")
	}
	if result.Edge != 1 {
		t.Errorf("Edge = %d, expected 1", result.Edge)
	}
	if math.Abs(result.Penetration-eps) > 1e-9 {
		t.Errorf("Penetration = %v, expected %v", result.Penetration, eps)
	}
	if !vectorsClose(result.Normal, Vector2D{X: 0, Y: -1}) {
		t.Errorf("Normal = %v, expected (0, -1)", result.Normal)
	}
	if math.Abs(result.Normal.Length()-1) > epsilon {
		t.Errorf("Normal length = %v, expected 1", result.Normal.Length())
	}
	// Normal points from the contact toward the body center.
	if result.Normal.Dot(body.Position.Sub(result.ContactPoint)) <= 0 {
		t.Errorf("Normal %v does not point toward the body center", result.Normal)
	}
}

func TestCheckHexagonCollision_PicksClosestEdgeNotFirst(t *testing.T) {
	pose := HexagonPose{Radius: 100}
	vertices := pose.Vertices()

	// Near vertex 1 the body overlaps edge 0 (about 7.6 away) and edge 1
	// (about 6.6 away). Edge 0 is visited first but edge 1 is closer.
	body := Body{Position: Vector2D{X: 45, Y: 80}, Radius: 10, Mass: 1}

	_, d0 := ClosestPointOnSegment(body.Position, vertices[0], vertices[1])
	_, d1 := ClosestPointOnSegment(body.Position, vertices[1], vertices[2])
	if d0 >= body.Radius || d1 >= body.Radius || d1 >= d0 {
		t.Fatalf("fixture broken: d0=%v d1=%v", d0, d1)
	}

	result := CheckHexagonCollision(body, vertices)

	if !result.Collided || result.Edge != 1 {
		t.Fatalf("expected contact on edge 1, got %+v", result)
	}
	if math.Abs(result.Penetration-(body.Radius-d1)) > epsilon {
		t.Errorf("Penetration = %v, expected %v", result.Penetration, body.Radius-d1)
	}
}

func TestCheckPolygonCollision_EdgeCases(t *testing.T) {
	body := Body{Position: Vector2D{X: 1, Y: 1}, Radius: 2, Mass: 1}

	t.Run("empty_polygon", func(t *testing.T) {
		result := CheckPolygonCollision(body, nil)
		if result.Collided || result.Edge != -1 {
			t.Errorf("expected no collision, got %+v", result)
		}
	})

	t.Run("single_point_polygon", func(t *testing.T) {
		result := CheckPolygonCollision(body, []Vector2D{{X: 1, Y: 2}})
		if !result.Collided {
			t.Fatal("expected collision with degenerate edge")
		}
		if math.Abs(result.Penetration-1) > epsilon {
			t.Errorf("Penetration = %v, expected 1", result.Penetration)
		}
	})

	t.Run("center_on_edge_gives_zero_normal", func(t *testing.T) {
		square := []Vector2D{{X: 0, Y: 1}, {X: 4, Y: 1}, {X: 4, Y: 5}, {X: 0, Y: 5}}
		result := CheckPolygonCollision(body, square)
		if !result.Collided {
			t.Fatal("expected collision")
		}
		if result.Normal != (Vector2D{}) {
			t.Errorf("Normal = %v, expected zero vector", result.Normal)
		}
		if result.Penetration != body.Radius {
			t.Errorf("Penetration = %v, expected full radius", result.Penetration)
		}
	})
}

func BenchmarkCheckHexagonCollision(b *testing.B) {
	vertices := HexagonVertices(0, 0, 100, 0.2)
	body := Body{Position: Vector2D{X: 45, Y: 80}, Radius: 10, Mass: 1}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		CheckHexagonCollision(body, vertices)
	}
}
