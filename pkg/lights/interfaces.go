package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Light is a punctual light source: *DirectionalLight or *PointLight
type Light interface {
	// ToLight returns the unit direction from point toward the light and the
	// distance to it (+Inf for directional lights)
	ToLight(point core.Vec3) (core.Vec3, float64)
	// Radiance returns the light color scaled by its intensity
	Radiance() core.Color

	isLight()
}
