package main

import (
	"image"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// moveStep is the distance one key press moves the selection or the camera
const moveStep = 0.25

// Controller holds the interactive state: the scene, the current frame and
// the selected object. It re-renders synchronously, so the scene is never
// edited while a pass is running.
type Controller struct {
	scene     *scene.Scene
	raytracer *renderer.Raytracer
	logger    core.Logger

	frame    *image.RGBA
	selected int
	hasPick  bool
	dirty    bool
}

// NewController creates a controller and marks the first frame for rendering
func NewController(s *scene.Scene, config renderer.RenderConfig, logger core.Logger) *Controller {
	return &Controller{
		scene:     s,
		raytracer: renderer.NewRaytracer(s, config, logger),
		logger:    logger,
		dirty:     true,
	}
}

// Size returns the frame resolution
func (c *Controller) Size() (int, int) {
	return c.scene.Camera.Width, c.scene.Camera.Height
}

// Selection returns the selected object ID, if any
func (c *Controller) Selection() (int, bool) {
	return c.selected, c.hasPick
}

// Click selects the object under pixel (x, y), or clears the selection on a miss
func (c *Controller) Click(x, y int) {
	width, height := c.Size()
	if x < 0 || y < 0 || x >= width || y >= height {
		return
	}
	c.scene.EnsureIndex()
	c.selected, c.hasPick = c.scene.PickObject(x, y)
	if c.hasPick {
		c.logger.Printf("Selected object %d\n", c.selected)
	}
}

// Deselect clears the selection so movement applies to the camera
func (c *Controller) Deselect() {
	c.hasPick = false
}

// Move translates the selected object, or the camera when nothing is
// selected, by the given number of steps along each axis
func (c *Controller) Move(steps core.Vec3) {
	if steps == (core.Vec3{}) {
		return
	}
	offset := steps.Multiply(moveStep)
	if c.hasPick {
		if !c.scene.TranslateObject(c.selected, offset) {
			return
		}
		c.scene.RebuildIndex()
	} else {
		c.scene.Camera.Translate(offset)
	}
	c.dirty = true
}

// Frame returns the current image, rendering first if anything changed
func (c *Controller) Frame() *image.RGBA {
	if c.dirty || c.frame == nil {
		pixels, _ := c.raytracer.Render()
		width, height := c.Size()
		c.frame = renderer.ToImage(pixels, width, height)
		c.dirty = false
	}
	return c.frame
}
