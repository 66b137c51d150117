package core

import (
	"math"
	"testing"
)

func TestVec3_Reflect(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		normal   Vec3
		expected Vec3
	}{
		{
			name:     "Along normal",
			vector:   NewVec3(0, 1, 0),
			normal:   NewVec3(0, 1, 0),
			expected: NewVec3(0, 1, 0),
		},
		{
			name:     "45 degrees",
			vector:   NewVec3(1, 1, 0).Normalize(),
			normal:   NewVec3(0, 1, 0),
			expected: NewVec3(-1, 1, 0).Normalize(),
		},
		{
			name:     "Grazing",
			vector:   NewVec3(1, 0, 0),
			normal:   NewVec3(0, 1, 0),
			expected: NewVec3(-1, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.Reflect(tt.normal)

			const tolerance = 1e-9
			if result.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
			if math.Abs(result.Length()-tt.vector.Length()) > tolerance {
				t.Errorf("Reflection changed length: %f vs %f", result.Length(), tt.vector.Length())
			}
		})
	}
}

func TestVec3_Cross(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)
	if got := x.Cross(y); got != NewVec3(0, 0, 1) {
		t.Errorf("Expected x cross y = z, got %v", got)
	}
	if got := y.Cross(x); got != NewVec3(0, 0, -1) {
		t.Errorf("Expected y cross x = -z, got %v", got)
	}
}

func TestVec3_NormalizeZero(t *testing.T) {
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("Expected zero vector, got %v", got)
	}
}

func TestVec3_Axis(t *testing.T) {
	v := NewVec3(1, 2, 3)
	for axis, want := range []float64{1, 2, 3} {
		if got := v.Axis(axis); got != want {
			t.Errorf("Axis(%d): expected %f, got %f", axis, want, got)
		}
		if got := v.WithAxis(axis, 9).Axis(axis); got != 9 {
			t.Errorf("WithAxis(%d): expected 9, got %f", axis, got)
		}
	}
	if v != NewVec3(1, 2, 3) {
		t.Error("WithAxis must not modify the receiver")
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 0, 0), NewVec3(0, 0, 1))
	if got := ray.At(2.5); got != NewVec3(1, 0, 2.5) {
		t.Errorf("Expected (1,0,2.5), got %v", got)
	}
}
