// pkg/physics/vector_test.go
package physics

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func vectorsClose(a, b Vector2D) bool {
	return math.Abs(a.X-b.X) <= epsilon && math.Abs(a.Y-b.Y) <= epsilon
}

func TestVector2D_AddSub(t *testing.T) {
	tests := []struct {
		name    string
		v1      Vector2D
		v2      Vector2D
		wantAdd Vector2D
		wantSub Vector2D
	}{
		{
			name:    "positive_vectors",
			v1:      Vector2D{X: 3, Y: 4},
			v2:      Vector2D{X: 1, Y: 2},
			wantAdd: Vector2D{X: 4, Y: 6},
			wantSub: Vector2D{X: 2, Y: 2},
		},
		{
			name:    "mixed_signs",
			v1:      Vector2D{X: 5, Y: -3},
			v2:      Vector2D{X: -2, Y: 7},
			wantAdd: Vector2D{X: 3, Y: 4},
			wantSub: Vector2D{X: 7, Y: -10},
		},
		{
			name:    "zero_vector",
			v1:      Vector2D{},
			v2:      Vector2D{X: 5, Y: -3},
			wantAdd: Vector2D{X: 5, Y: -3},
			wantSub: Vector2D{X: -5, Y: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v1.Add(tt.v2); got != tt.wantAdd {
				t.Errorf("Add() = %v, expected %v", got, tt.wantAdd)
			}
			if got := tt.v1.Sub(tt.v2); got != tt.wantSub {
				t.Errorf("Sub() = %v, expected %v", got, tt.wantSub)
			}
		})
	}
}

func TestVector2D_Scale(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vector2D
		factor   float64
		expected Vector2D
	}{
		{"positive_scale", Vector2D{X: 3, Y: 4}, 2, Vector2D{X: 6, Y: 8}},
		{"negative_scale", Vector2D{X: 3, Y: 4}, -2, Vector2D{X: -6, Y: -8}},
		{"zero_scale", Vector2D{X: 3, Y: 4}, 0, Vector2D{X: 0, Y: 0}},
		{"fractional_scale", Vector2D{X: 4, Y: 8}, 0.5, Vector2D{X: 2, Y: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.vector.Scale(tt.factor); got != tt.expected {
				t.Errorf("Scale() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestVector2D_LengthAndDistance(t *testing.T) {
	tests := []struct {
		name     string
		a        Vector2D
		b        Vector2D
		length   float64
		distance float64
	}{
		{"pythagorean", Vector2D{X: 3, Y: 4}, Vector2D{}, 5, 5},
		{"negative_components", Vector2D{X: -6, Y: -8}, Vector2D{X: -3, Y: -4}, 10, 5},
		{"same_point", Vector2D{X: 7, Y: 1}, Vector2D{X: 7, Y: 1}, math.Sqrt(50), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Length(); math.Abs(got-tt.length) > epsilon {
				t.Errorf("Length() = %v, expected %v", got, tt.length)
			}
			if got := tt.a.Distance(tt.b); math.Abs(got-tt.distance) > epsilon {
				t.Errorf("Distance() = %v, expected %v", got, tt.distance)
			}
			if got := tt.b.Distance(tt.a); math.Abs(got-tt.distance) > epsilon {
				t.Errorf("Distance() is not symmetric: %v vs %v", got, tt.distance)
			}
		})
	}
}

func TestVector2D_Normalize(t *testing.T) {
	t.Run("unit_length", func(t *testing.T) {
		result := Vector2D{X: 3, Y: 4}.Normalize()
		if !vectorsClose(result, Vector2D{X: 0.6, Y: 0.8}) {
			t.Errorf("Normalize() = %v, expected (0.6, 0.8)", result)
		}
		if length := result.Length(); math.Abs(length-1) > epsilon {
			t.Errorf("normalized length = %v, expected 1", length)
		}
	})

	t.Run("zero_vector_stays_zero", func(t *testing.T) {
		result := Vector2D{}.Normalize()
		if result != (Vector2D{}) {
			t.Errorf("Normalize() of zero vector = %v, expected zero vector", result)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		inputs := []Vector2D{
			{X: 3, Y: 4},
			{X: -1e-3, Y: 2e-4},
			{X: 12345, Y: -0.5},
			{X: 0, Y: -9},
		}
		for _, v := range inputs {
			once := v.Normalize()
			twice := once.Normalize()
			if !vectorsClose(once, twice) {
				t.Errorf("Normalize(Normalize(%v)) = %v, expected %v", v, twice, once)
			}
		}
	})
}

func TestVector2D_Dot(t *testing.T) {
	tests := []struct {
		name     string
		v1       Vector2D
		v2       Vector2D
		expected float64
	}{
		{"parallel", Vector2D{X: 2, Y: 0}, Vector2D{X: 3, Y: 0}, 6},
		{"perpendicular", Vector2D{X: 1, Y: 0}, Vector2D{X: 0, Y: 1}, 0},
		{"opposite", Vector2D{X: 1, Y: 2}, Vector2D{X: -1, Y: -2}, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v1.Dot(tt.v2); math.Abs(got-tt.expected) > epsilon {
				t.Errorf("Dot() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestVector2D_Reflect(t *testing.T) {
	tests := []struct {
		name     string
		incident Vector2D
		normal   Vector2D
		expected Vector2D
	}{
		{
			name:     "floor_bounce",
			incident: Vector2D{X: 3, Y: 5},
			normal:   Vector2D{X: 0, Y: -1},
			expected: Vector2D{X: 3, Y: -5},
		},
		{
			name:     "wall_bounce",
			incident: Vector2D{X: -4, Y: 1},
			normal:   Vector2D{X: 1, Y: 0},
			expected: Vector2D{X: 4, Y: 1},
		},
		{
			name:     "tangential_motion_unchanged",
			incident: Vector2D{X: 2, Y: 0},
			normal:   Vector2D{X: 0, Y: 1},
			expected: Vector2D{X: 2, Y: 0},
		},
		{
			name:     "diagonal_normal",
			incident: Vector2D{X: 1, Y: 0},
			normal:   Vector2D{X: -1, Y: 1}.Normalize(),
			expected: Vector2D{X: 0, Y: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.incident.Reflect(tt.normal)
			if !vectorsClose(result, tt.expected) {
				t.Errorf("Reflect() = %v, expected %v", result, tt.expected)
			}
			if back := result.Reflect(tt.normal); !vectorsClose(back, tt.incident) {
				t.Errorf("double Reflect() = %v, expected original %v", back, tt.incident)
			}
			if math.Abs(result.Length()-tt.incident.Length()) > epsilon {
				t.Errorf("Reflect() changed speed: %v -> %v", tt.incident.Length(), result.Length())
			}
		})
	}
}

func TestFromAngle(t *testing.T) {
	tests := []struct {
		name      string
		angle     float64
		magnitude float64
		expected  Vector2D
	}{
		{"zero_angle", 0, 5, Vector2D{X: 5, Y: 0}},
		{"quarter_turn", math.Pi / 2, 2, Vector2D{X: 0, Y: 2}},
		{"half_turn", math.Pi, 1, Vector2D{X: -1, Y: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FromAngle(tt.angle, tt.magnitude)
			if !vectorsClose(result, tt.expected) {
				t.Errorf("FromAngle() = %v, expected %v", result, tt.expected)
			}
			if tt.magnitude > 0 && math.Abs(result.Angle()-math.Atan2(tt.expected.Y, tt.expected.X)) > epsilon {
				t.Errorf("Angle() = %v round trip mismatch", result.Angle())
			}
		})
	}
}

func BenchmarkVector2D_Reflect(b *testing.B) {
	v := Vector2D{X: 3, Y: -4}
	n := Vector2D{X: 0, Y: 1}
	for i := 0; i < b.N; i++ {
		v.Reflect(n)
	}
}

func BenchmarkVector2D_Normalize(b *testing.B) {
	v := Vector2D{X: 3, Y: 4}
	for i := 0; i < b.N; i++ {
		v.Normalize()
	}
}
