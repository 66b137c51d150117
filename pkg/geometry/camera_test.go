package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestCamera_CenterRay(t *testing.T) {
	camera := NewCamera(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 10), core.NewVec3(0, 1, 0), math.Pi/2, 1, 1)
	ray := camera.GetRay(0, 0)

	if ray.Origin != camera.Position {
		t.Errorf("Expected ray to start at the camera, got %v", ray.Origin)
	}
	if !vecNear(ray.Direction, core.NewVec3(0, 0, 1), 1e-9) {
		t.Errorf("Expected forward direction, got %v", ray.Direction)
	}
}

func TestCamera_FieldOfView(t *testing.T) {
	// With a 90 degree field of view the outer pixel edge sits at 45 degrees
	width := 1000
	camera := NewCamera(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), core.NewVec3(0, 1, 0), math.Pi/2, width, 2)
	ray := camera.GetRay(0, 0)

	horizontal := math.Atan2(math.Abs(ray.Direction.X), ray.Direction.Z)
	if math.Abs(horizontal-math.Pi/4) > 0.01 {
		t.Errorf("Expected edge pixel near 45 degrees, got %f", horizontal*180/math.Pi)
	}
}

func TestCamera_GenerateViewport(t *testing.T) {
	camera := NewCamera(core.NewVec3(0, 1, -5), core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0), math.Pi/3, 4, 3)
	rays := camera.GenerateViewport()

	if len(rays) != 12 {
		t.Fatalf("Expected 12 rays, got %d", len(rays))
	}
	if rays[5].X != 1 || rays[5].Y != 1 {
		t.Errorf("Expected row-major order, rays[5] is (%d,%d)", rays[5].X, rays[5].Y)
	}

	for _, r := range rays {
		single := camera.GetRay(r.X, r.Y)
		if !vecNear(single.Direction, r.Ray.Direction, 1e-12) {
			t.Errorf("Viewport ray (%d,%d) differs from GetRay", r.X, r.Y)
		}
		if math.Abs(r.Ray.Direction.Length()-1) > 1e-9 {
			t.Errorf("Ray direction not normalized: %v", r.Ray.Direction)
		}
	}

	// Y grows downward
	top := camera.GetRay(1, 0)
	bottom := camera.GetRay(1, 2)
	if top.Direction.Y <= bottom.Direction.Y {
		t.Errorf("Expected top row to point higher: top %v bottom %v", top.Direction, bottom.Direction)
	}
}

func TestCamera_WithResolutionAndTranslate(t *testing.T) {
	camera := NewCamera(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), core.NewVec3(0, 1, 0), 1, 10, 10)
	resized := camera.WithResolution(20, 5)

	if camera.Width != 10 || camera.Height != 10 {
		t.Error("WithResolution modified the original camera")
	}
	if resized.Width != 20 || resized.Height != 5 || resized.Direction != camera.Direction {
		t.Errorf("Unexpected resized camera %+v", resized)
	}

	camera.Translate(core.NewVec3(1, 2, 3))
	if camera.Position != core.NewVec3(1, 2, 3) {
		t.Errorf("Expected translated position, got %v", camera.Position)
	}
	if camera.Direction != core.NewVec3(0, 0, 1) {
		t.Errorf("Translate should keep the view direction, got %v", camera.Direction)
	}
}
