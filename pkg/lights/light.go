package lights

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DirectionalLight shines along a fixed direction from infinitely far away
type DirectionalLight struct {
	Direction core.Vec3 // Direction the light travels
	Color     core.Color
	Intensity float64
}

// NewDirectionalLight creates a directional light travelling along direction
func NewDirectionalLight(direction core.Vec3, color core.Color, intensity float64) *DirectionalLight {
	return &DirectionalLight{
		Direction: direction.Normalize(),
		Color:     color,
		Intensity: intensity,
	}
}

func (l *DirectionalLight) isLight() {}

// ToLight returns the reversed light direction at infinite distance
func (l *DirectionalLight) ToLight(core.Vec3) (core.Vec3, float64) {
	return l.Direction.Negate(), math.Inf(1)
}

// Radiance returns the light color scaled by its intensity
func (l *DirectionalLight) Radiance() core.Color {
	return l.Color.Scale(l.Intensity)
}

// PointLight emits in all directions from a position
type PointLight struct {
	Position  core.Vec3
	Color     core.Color
	Intensity float64
}

// NewPointLight creates a point light
func NewPointLight(position core.Vec3, color core.Color, intensity float64) *PointLight {
	return &PointLight{
		Position:  position,
		Color:     color,
		Intensity: intensity,
	}
}

func (l *PointLight) isLight() {}

// ToLight returns the direction and distance from point to the light
func (l *PointLight) ToLight(point core.Vec3) (core.Vec3, float64) {
	toLight := l.Position.Subtract(point)
	return toLight.Normalize(), toLight.Length()
}

// Radiance returns the light color scaled by its intensity
func (l *PointLight) Radiance() core.Color {
	return l.Color.Scale(l.Intensity)
}

// AmbientLight lights every surface uniformly
type AmbientLight struct {
	Color     core.Color
	Intensity float64
}

// NewAmbientLight creates an ambient light
func NewAmbientLight(color core.Color, intensity float64) AmbientLight {
	return AmbientLight{Color: color, Intensity: intensity}
}
