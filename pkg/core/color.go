package core

import (
	"image/color"
	"math"
)

// Color is a linear RGB color. Every arithmetic operation clamps each
// channel to [0, 1], so intermediate results never exceed displayable range.
type Color struct {
	R, G, B float64
}

// Named colors. Color is a value type, so these are only ever copied.
var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
)

// NewColor creates a clamped color
func NewColor(r, g, b float64) Color {
	return Color{clamp01(r), clamp01(g), clamp01(b)}
}

func clamp01(v float64) float64 {
	// NaN collapses to 0
	if !(v > 0) {
		return 0
	}
	return math.Min(v, 1)
}

// Add returns the clamped channel-wise sum
func (c Color) Add(other Color) Color {
	return NewColor(c.R+other.R, c.G+other.G, c.B+other.B)
}

// Multiply returns the clamped channel-wise product
func (c Color) Multiply(other Color) Color {
	return NewColor(c.R*other.R, c.G*other.G, c.B*other.B)
}

// Scale returns the color multiplied by a scalar, clamped
func (c Color) Scale(scalar float64) Color {
	return NewColor(c.R*scalar, c.G*scalar, c.B*scalar)
}

// IsBlack reports whether every channel is zero
func (c Color) IsBlack() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// ToRGBA converts to an 8-bit color with no gamma correction
func (c Color) ToRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(255 * clamp01(c.R)),
		G: uint8(255 * clamp01(c.G)),
		B: uint8(255 * clamp01(c.B)),
		A: 255,
	}
}

// RGBA implements color.Color
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.ToRGBA().RGBA()
}
