package integrator

import (
	"math"
	"slices"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const tolerance = 1e-9

func colorNear(a, b core.Color) bool {
	return math.Abs(a.R-b.R) <= tolerance && math.Abs(a.G-b.G) <= tolerance && math.Abs(a.B-b.B) <= tolerance
}

func vecNear(a, b core.Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}

func newTestScene(ambient float64) *scene.Scene {
	camera := geometry.NewCamera(core.NewVec3(0, 1, -5), core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), math.Pi/3, 16, 16)
	return scene.NewScene(camera, lights.NewAmbientLight(core.White, ambient))
}

// ambientOnly is lit entirely by the scene's ambient light
func ambientOnly(c core.Color) *material.Material {
	black := material.NewSolidColor(core.Black)
	return &material.Material{
		AmbientColor:      material.NewSolidColor(c),
		AmbientReflection: 1,
		DiffuseColor:      black,
		SpecularColor:     black,
		RefractiveIndex:   1,
	}
}

// passive has no local shading at all
func passive() *material.Material {
	return ambientOnly(core.Black)
}

var down = core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

func TestShadows(t *testing.T) {
	tests := []struct {
		name     string
		occluder *geometry.Sphere
		light    lights.Light
		expected core.Color
	}{
		{"unoccluded point light", nil, lights.NewPointLight(core.NewVec3(0, 5, 0), core.White, 1), core.NewColor(0.8, 0.8, 0.8)},
		{"blocked point light", geometry.NewSphere(core.NewVec3(0, 3, 0), 0.5), lights.NewPointLight(core.NewVec3(0, 5, 0), core.White, 1), core.Black},
		{"occluder beyond point light", geometry.NewSphere(core.NewVec3(0, 8, 0), 0.5), lights.NewPointLight(core.NewVec3(0, 5, 0), core.White, 1), core.NewColor(0.8, 0.8, 0.8)},
		{"blocked directional light", geometry.NewSphere(core.NewVec3(0, 50, 0), 0.5), lights.NewDirectionalLight(core.NewVec3(0, -1, 0), core.White, 1), core.Black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScene(0)
			s.AddObject(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), material.NewMatte(core.White))
			if tt.occluder != nil {
				s.AddObject(tt.occluder, material.NewMatte(core.White))
			}
			s.AddLight(tt.light)

			got := NewWhittedIntegrator(DefaultMaxBounces).RayColor(down, s)
			if !colorNear(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestRayColor_MissIsBlack(t *testing.T) {
	s := newTestScene(1)
	s.AddObject(geometry.NewSphere(core.NewVec3(0, 0, 5), 1), material.NewMatte(core.White))

	got := NewWhittedIntegrator(DefaultMaxBounces).RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), s)
	if got != core.Black {
		t.Errorf("Expected black, got %v", got)
	}
}

func TestMirrorReflection(t *testing.T) {
	s := newTestScene(1)
	mirror := passive()
	mirror.Reflectivity = 1
	s.AddObject(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), mirror)
	s.AddObject(geometry.NewSphere(core.NewVec3(0, 5, 0), 1), ambientOnly(core.NewColor(1, 0, 0)))

	tests := []struct {
		bounces  int
		expected core.Color
	}{
		{0, core.Black},
		{1, core.NewColor(1, 0, 0)},
		{4, core.NewColor(1, 0, 0)},
	}
	for _, tt := range tests {
		got := NewWhittedIntegrator(tt.bounces).RayColor(down, s)
		if !colorNear(got, tt.expected) {
			t.Errorf("bounces=%d: expected %v, got %v", tt.bounces, tt.expected, got)
		}
	}
}

func TestOpaqueSceneIgnoresBounceBudget(t *testing.T) {
	s := newTestScene(0.3)
	s.AddObject(geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0)), material.NewMatte(core.NewColor(0.5, 0.5, 0.5)))
	s.AddObject(geometry.NewSphere(core.NewVec3(0, 0, 0), 1), material.NewPlastic(core.NewColor(0.9, 0.2, 0.2), 20))
	s.AddLight(lights.NewPointLight(core.NewVec3(3, 5, -3), core.White, 1))
	s.BuildIndex()

	shallow := NewWhittedIntegrator(0)
	deep := NewWhittedIntegrator(8)
	for _, vr := range s.Camera.GenerateViewport() {
		if a, b := shallow.RayColor(vr.Ray, s), deep.RayColor(vr.Ray, s); a != b {
			t.Fatalf("Pixel (%d,%d): %v with no bounces, %v with eight", vr.X, vr.Y, a, b)
		}
	}
}

func TestTransparentMatchingIndexPassesThrough(t *testing.T) {
	s := newTestScene(1)
	clear := passive()
	clear.Transparency = 1
	clear.RefractiveIndex = 1
	s.AddObject(geometry.NewSphere(core.NewVec3(0, 0, 5), 1), clear)
	s.AddObject(geometry.NewSphere(core.NewVec3(0, 0, 20), 1), ambientOnly(core.NewColor(1, 0, 0)))

	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1))

	if got := NewWhittedIntegrator(4).RayColor(ray, s); !colorNear(got, core.NewColor(1, 0, 0)) {
		t.Errorf("Expected the red sphere through the clear one, got %v", got)
	}
	// Entering uses one bounce, leaving needs another
	if got := NewWhittedIntegrator(1).RayColor(ray, s); !colorNear(got, core.Black) {
		t.Errorf("Expected black with one bounce, got %v", got)
	}
}

func TestFresnel(t *testing.T) {
	up := core.NewVec3(0, 1, 0)

	tests := []struct {
		name        string
		incident    core.Vec3
		index       float64
		surrounding float64
		expected    float64
	}{
		{"normal incidence into glass", core.NewVec3(0, -1, 0), 1.5, 1, 0.04},
		{"normal incidence out of glass", core.NewVec3(0, 1, 0), 1.5, 1, 0.04},
		{"matching media", core.NewVec3(1, -1, 0).Normalize(), 1, 1, 0},
		{"total internal reflection", core.NewVec3(1, 0.3, 0).Normalize(), 1.5, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fresnel(tt.incident, up, tt.index, tt.surrounding)
			if math.Abs(got-tt.expected) > tolerance {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}

	grazing := Fresnel(core.NewVec3(1, -0.01, 0).Normalize(), up, 1.5, 1)
	head := Fresnel(core.NewVec3(0, -1, 0), up, 1.5, 1)
	if grazing <= head {
		t.Errorf("Expected more reflection at grazing angles: %f vs %f", grazing, head)
	}
}

func TestRefract(t *testing.T) {
	up := core.NewVec3(0, 1, 0)

	straight := Refract(core.NewVec3(0, -1, 0), up, 1.5, 1)
	if !vecNear(straight, core.NewVec3(0, -1, 0), tolerance) {
		t.Errorf("Expected undeviated ray, got %v", straight)
	}

	// Snell's law: sin(45°) = 1.5 sin(t)
	bent := Refract(core.NewVec3(1, -1, 0).Normalize(), up, 1.5, 1)
	if math.Abs(bent.X-math.Sqrt2/2/1.5) > tolerance || bent.Y >= 0 {
		t.Errorf("Unexpected refracted direction %v", bent)
	}
	if math.Abs(bent.Length()-1) > tolerance {
		t.Errorf("Refracted direction not normalized: %v", bent)
	}

	if tir := Refract(core.NewVec3(1, 0.3, 0).Normalize(), up, 1.5, 1); tir != (core.Vec3{}) {
		t.Errorf("Expected zero vector under total internal reflection, got %v", tir)
	}
}

func TestMediumStack(t *testing.T) {
	s := newTestScene(0)
	glass := material.NewGlass(1.5)
	water := material.NewGlass(1.33)
	outer := s.AddObject(geometry.NewSphere(core.Vec3{}, 2), glass)
	inner := s.AddObject(geometry.NewSphere(core.Vec3{}, 1), water)

	t.Run("push copies", func(t *testing.T) {
		base := []int{outer}
		pushed := pushObject(base, inner)
		if !slices.Equal(pushed, []int{outer, inner}) || !slices.Equal(base, []int{outer}) {
			t.Errorf("Unexpected stacks: base %v pushed %v", base, pushed)
		}
	})

	t.Run("remove copies", func(t *testing.T) {
		base := []int{outer, inner}
		removed := removeObject(base, outer)
		if !slices.Equal(removed, []int{inner}) || !slices.Equal(base, []int{outer, inner}) {
			t.Errorf("Unexpected stacks: base %v removed %v", base, removed)
		}
	})

	tests := []struct {
		name     string
		inside   []int
		id       int
		expected float64
	}{
		{"entering from vacuum", nil, outer, 1.0},
		{"leaving outermost", []int{outer}, outer, 1.0},
		{"entering inner from glass", []int{outer}, inner, 1.5},
		{"leaving inner into glass", []int{outer, inner}, inner, 1.5},
		{"stack out of order", []int{inner, outer}, inner, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := surroundingRefractiveIndex(s, tt.inside, tt.id); got != tt.expected {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestNestedGlassTerminates(t *testing.T) {
	s := scene.NewGlassScene(24, 16)
	s.BuildIndex()
	integrator := NewWhittedIntegrator(8)

	for _, vr := range s.Camera.GenerateViewport() {
		c := integrator.RayColor(vr.Ray, s)
		if math.IsNaN(c.R) || c.R < 0 || c.R > 1 || c.G < 0 || c.G > 1 || c.B < 0 || c.B > 1 {
			t.Fatalf("Pixel (%d,%d) has invalid color %v", vr.X, vr.Y, c)
		}
	}
}

func TestNewWhittedIntegrator_NegativeBudget(t *testing.T) {
	if got := NewWhittedIntegrator(-3).MaxBounces; got != 0 {
		t.Errorf("Expected negative budget to clamp to 0, got %d", got)
	}
}
