package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewGlassScene creates nested transparent volumes: a water sphere inside a
// glass sphere, and an air bubble inside the water, in front of colored spheres
func NewGlassScene(width, height int) *Scene {
	camera := geometry.NewCamera(
		core.NewVec3(0, 1, -9),
		core.NewVec3(0, 0.5, 0),
		core.NewVec3(0, 1, 0),
		math.Pi/3,
		width, height,
	)
	s := NewScene(camera, lights.NewAmbientLight(core.White, 0.5))

	checker := material.NewCheckerboardTexture(0.75)
	floor := material.NewMatte(core.White)
	floor.AmbientColor = checker
	floor.DiffuseColor = checker
	s.AddObject(geometry.NewPlane(core.NewVec3(0, -2, 0), core.NewVec3(0, 1, 0)), floor)

	// Backdrop
	s.AddObject(geometry.NewSphere(core.NewVec3(-3, 0, 6), 1.5), material.NewPlastic(core.NewColor(0.9, 0.3, 0.1), 20))
	s.AddObject(geometry.NewSphere(core.NewVec3(0, 0, 7), 1.5), material.NewPlastic(core.NewColor(0.1, 0.8, 0.3), 20))
	s.AddObject(geometry.NewSphere(core.NewVec3(3, 0, 6), 1.5), material.NewPlastic(core.NewColor(0.2, 0.3, 0.9), 20))

	// Nested media, outermost first
	s.AddObject(geometry.NewSphere(core.NewVec3(0, 0, 0), 2), material.NewGlass(1.5))
	s.AddObject(geometry.NewSphere(core.NewVec3(0, 0, 0), 1.2), material.NewGlass(1.33))
	s.AddObject(geometry.NewSphere(core.NewVec3(0.3, 0.3, 0), 0.4), material.NewGlass(1.0))

	s.AddLight(lights.NewPointLight(core.NewVec3(4, 8, -6), core.White, 0.9))

	return s
}
