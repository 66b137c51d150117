package core

import (
	"math"
	"testing"
)

func TestColor_Clamping(t *testing.T) {
	tests := []struct {
		name     string
		got      Color
		expected Color
	}{
		{"NewColor clamps high", NewColor(2, 0.5, 1.5), Color{1, 0.5, 1}},
		{"NewColor clamps low", NewColor(-1, 0.25, -0.1), Color{0, 0.25, 0}},
		{"NaN becomes zero", NewColor(math.NaN(), 1, 0), Color{0, 1, 0}},
		{"Add saturates", NewColor(0.7, 0.7, 0.2).Add(NewColor(0.5, 0.1, 0.2)), Color{1, 0.8, 0.4}},
		{"Scale saturates", NewColor(0.4, 0.1, 0).Scale(3), Color{1, 0.3, 0}},
		{"Negative scale is black", White.Scale(-2), Black},
		{"Multiply", NewColor(0.5, 1, 0.2).Multiply(NewColor(0.5, 0.5, 1)), Color{0.25, 0.5, 0.2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const tolerance = 1e-9
			if math.Abs(tt.got.R-tt.expected.R) > tolerance ||
				math.Abs(tt.got.G-tt.expected.G) > tolerance ||
				math.Abs(tt.got.B-tt.expected.B) > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}
}

func TestColor_ToRGBA(t *testing.T) {
	rgba := NewColor(1, 0.5, 0).ToRGBA()
	if rgba.R != 255 || rgba.G != 127 || rgba.B != 0 || rgba.A != 255 {
		t.Errorf("Unexpected RGBA %v", rgba)
	}

	// Channels set directly outside [0, 1] are clamped on conversion
	rgba = Color{R: 3, G: -1, B: 0.2}.ToRGBA()
	if rgba.R != 255 || rgba.G != 0 {
		t.Errorf("Expected clamped conversion, got %v", rgba)
	}

	if !Black.IsBlack() || White.IsBlack() {
		t.Error("IsBlack misreports named colors")
	}
}
