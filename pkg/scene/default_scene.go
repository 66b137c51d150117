package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewDefaultScene creates three spheres (matte, mirror, glass) over a checkerboard floor
func NewDefaultScene(width, height int) *Scene {
	camera := geometry.NewCamera(
		core.NewVec3(0, 1.5, -8),
		core.NewVec3(0, 0.3, 0),
		core.NewVec3(0, 1, 0),
		math.Pi/3,
		width, height,
	)
	s := NewScene(camera, lights.NewAmbientLight(core.White, 0.4))

	// Checkerboard floor
	checker := material.NewCheckerboardTexture(1.0)
	floor := &material.Material{
		AmbientColor:       checker,
		AmbientReflection:  0.5,
		DiffuseColor:       checker,
		DiffuseReflection:  0.8,
		SpecularColor:      material.NewSolidColor(core.White),
		SpecularReflection: 0.1,
		Shininess:          10,
		Reflectivity:       0.15,
		RefractiveIndex:    1.0,
	}
	s.AddObject(geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0)), floor)

	s.AddObject(geometry.NewSphere(core.NewVec3(-2.2, 0, 0.5), 1), material.NewPlastic(core.NewColor(0.8, 0.2, 0.15), 30))
	s.AddObject(geometry.NewSphere(core.NewVec3(0, 0, 1.5), 1), material.NewMirror(core.NewColor(0.9, 0.9, 0.9), 0.8))
	s.AddObject(geometry.NewSphere(core.NewVec3(2.2, 0, -0.5), 1), material.NewGlass(1.5))
	s.AddObject(geometry.NewSphere(core.NewVec3(0.8, -0.6, -2.2), 0.4), material.NewPlastic(core.NewColor(0.2, 0.4, 0.9), 60))

	s.AddLight(lights.NewPointLight(core.NewVec3(-5, 8, -6), core.White, 0.8))
	s.AddLight(lights.NewDirectionalLight(core.NewVec3(1, -1, 1), core.NewColor(1, 0.95, 0.85), 0.4))

	return s
}
