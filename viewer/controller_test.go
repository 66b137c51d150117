package main

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

type nullLogger struct{}

func (nullLogger) Printf(string, ...interface{}) {}

func newTestController(t *testing.T) *Controller {
	t.Helper()
	s, err := loadScene("default", "", 32, 32)
	if err != nil {
		t.Fatalf("loadScene failed: %v", err)
	}
	config := renderer.DefaultRenderConfig()
	config.NumWorkers = 2
	return NewController(s, config, nullLogger{})
}

func TestController_FrameCachesUntilMove(t *testing.T) {
	c := newTestController(t)

	first := c.Frame()
	if first.Bounds().Dx() != 32 || first.Bounds().Dy() != 32 {
		t.Fatalf("Expected 32x32 frame, got %v", first.Bounds())
	}
	if c.Frame() != first {
		t.Error("Expected frame to be reused when nothing changed")
	}

	c.Move(core.Vec3{})
	if c.Frame() != first {
		t.Error("Expected a zero move to keep the frame")
	}

	c.Move(core.NewVec3(1, 0, 0))
	if c.Frame() == first {
		t.Error("Expected camera move to re-render")
	}
}

func TestController_ClickAndMoveSelection(t *testing.T) {
	c := newTestController(t)

	c.Click(16, 16)
	id, ok := c.Selection()
	if !ok {
		t.Fatal("Expected center click to select an object")
	}
	obj, _ := c.scene.Object(id)
	sphere, isSphere := obj.Shape.(*geometry.Sphere)
	if !isSphere {
		t.Fatalf("Expected a sphere at the center, got %T", obj.Shape)
	}
	before := sphere.Center
	cameraBefore := c.scene.Camera.Position

	c.Move(core.NewVec3(0, 2, 0))

	obj, _ = c.scene.Object(id)
	moved := obj.Shape.(*geometry.Sphere)
	if diff := moved.Center.Subtract(before); diff.Subtract(core.NewVec3(0, 2*moveStep, 0)).Length() > 1e-9 {
		t.Errorf("Expected sphere to move by %v, moved by %v", 2*moveStep, diff)
	}
	if c.scene.Camera.Position != cameraBefore {
		t.Error("Expected camera to stay put while an object is selected")
	}
	if c.scene.IndexStale() {
		t.Error("Expected index to be rebuilt after the move")
	}

	c.Deselect()
	if _, ok := c.Selection(); ok {
		t.Error("Expected selection to be cleared")
	}
}

func TestController_ClickSkyClearsSelection(t *testing.T) {
	c := newTestController(t)

	c.Click(16, 16)
	c.Click(0, 0)
	if _, ok := c.Selection(); ok {
		t.Error("Expected click on the sky to clear the selection")
	}

	// Clicks outside the frame are ignored
	c.Click(16, 16)
	c.Click(-1, 40)
	if _, ok := c.Selection(); !ok {
		t.Error("Expected out-of-frame click to keep the selection")
	}
}

func TestLoadScene(t *testing.T) {
	if _, err := loadScene("nope", "", 10, 10); err == nil {
		t.Error("Expected error for unknown scene")
	}
	s, err := loadScene("mesh", "", 20, 10)
	if err != nil {
		t.Fatalf("loadScene failed: %v", err)
	}
	if s.Camera.Width != 20 || s.Camera.Height != 10 {
		t.Errorf("Expected 20x10, got %dx%d", s.Camera.Width, s.Camera.Height)
	}
}
