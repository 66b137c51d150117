package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Camera is a pinhole camera producing one primary ray per pixel
type Camera struct {
	Position    core.Vec3
	Direction   core.Vec3
	Up          core.Vec3
	FieldOfView float64 // Horizontal field of view in radians
	Width       int
	Height      int
}

// ViewRay is the primary ray through pixel (X, Y), with Y growing downwards
type ViewRay struct {
	X, Y int
	Ray  core.Ray
}

// NewCamera creates a camera looking from position toward lookAt
func NewCamera(position, lookAt, up core.Vec3, fieldOfView float64, width, height int) *Camera {
	return &Camera{
		Position:    position,
		Direction:   lookAt.Subtract(position).Normalize(),
		Up:          up.Normalize(),
		FieldOfView: fieldOfView,
		Width:       width,
		Height:      height,
	}
}

// viewport returns the direction to the corner pixel and the per-pixel steps along x and y
func (c *Camera) viewport() (corner, stepX, stepY core.Vec3) {
	forward := c.Direction.Normalize()
	right := forward.Cross(c.Up).Normalize()
	down := forward.Cross(right)

	halfWidth := math.Tan(c.FieldOfView / 2)
	halfHeight := halfWidth * float64(c.Height) / float64(c.Width)

	stepX = right.Multiply(2 * halfWidth / float64(c.Width))
	stepY = down.Multiply(2 * halfHeight / float64(c.Height))
	corner = forward.Subtract(right.Multiply(halfWidth)).Subtract(down.Multiply(halfHeight))
	return corner, stepX, stepY
}

func (c *Camera) rayThrough(corner, stepX, stepY core.Vec3, x, y int) core.Ray {
	direction := corner.
		Add(stepX.Multiply(float64(x) + 0.5)).
		Add(stepY.Multiply(float64(y) + 0.5))
	return core.NewRay(c.Position, direction.Normalize())
}

// GetRay returns the primary ray through the center of pixel (x, y)
func (c *Camera) GetRay(x, y int) core.Ray {
	corner, stepX, stepY := c.viewport()
	return c.rayThrough(corner, stepX, stepY, x, y)
}

// GenerateViewport returns the primary rays of every pixel, row by row
func (c *Camera) GenerateViewport() []ViewRay {
	corner, stepX, stepY := c.viewport()
	rays := make([]ViewRay, 0, c.Width*c.Height)
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			rays = append(rays, ViewRay{X: x, Y: y, Ray: c.rayThrough(corner, stepX, stepY, x, y)})
		}
	}
	return rays
}

// Translate moves the camera without changing where it looks
func (c *Camera) Translate(offset core.Vec3) {
	c.Position = c.Position.Add(offset)
}

// WithResolution returns a copy of the camera rendering at width x height
func (c *Camera) WithResolution(width, height int) *Camera {
	copied := *c
	copied.Width = width
	copied.Height = height
	return &copied
}
