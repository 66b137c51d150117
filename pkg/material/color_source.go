package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Color
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Color) *SolidColor {
	return &SolidColor{Color: color}
}

func (s *SolidColor) isColoration() {}

// ColorAt returns the solid color regardless of surface or position
func (s *SolidColor) ColorAt(Surface, core.Vec3) core.Color {
	return s.Color
}
