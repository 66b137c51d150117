package material

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Material holds the Phong coefficients and the reflection and refraction
// weights used by the Whitted integrator. Materials are shared between
// objects and must not be modified while rendering.
type Material struct {
	AmbientColor       Coloration
	AmbientReflection  float64
	DiffuseColor       Coloration
	DiffuseReflection  float64
	SpecularColor      Coloration
	SpecularReflection float64
	Shininess          float64 // Phong exponent

	Reflectivity    float64 // Weight of the mirror-reflected ray
	Transparency    float64 // Weight of the Fresnel-blended refraction
	RefractiveIndex float64
}

// NewMatte creates an opaque diffuse material of a single color
func NewMatte(color core.Color) *Material {
	solid := NewSolidColor(color)
	return &Material{
		AmbientColor:      solid,
		AmbientReflection: 0.2,
		DiffuseColor:      solid,
		DiffuseReflection: 0.8,
		SpecularColor:     NewSolidColor(core.White),
		RefractiveIndex:   1.0,
	}
}

// NewPlastic creates a diffuse material with a white specular highlight
func NewPlastic(color core.Color, shininess float64) *Material {
	m := NewMatte(color)
	m.DiffuseReflection = 0.7
	m.SpecularReflection = 0.3
	m.Shininess = shininess
	return m
}

// NewMirror creates a mostly reflective material tinted by color
func NewMirror(color core.Color, reflectivity float64) *Material {
	m := NewPlastic(color, 50)
	m.DiffuseReflection = 0.1
	m.Reflectivity = reflectivity
	return m
}

// NewGlass creates a transparent dielectric with the given index of refraction
func NewGlass(refractiveIndex float64) *Material {
	black := NewSolidColor(core.Black)
	return &Material{
		AmbientColor:       black,
		DiffuseColor:       black,
		SpecularColor:      NewSolidColor(core.White),
		SpecularReflection: 0.5,
		Shininess:          100,
		Transparency:       1.0,
		RefractiveIndex:    refractiveIndex,
	}
}
