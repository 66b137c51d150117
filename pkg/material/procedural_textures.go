package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Texture tiles a grid of colors over a surface's 2D texture coordinates
type Texture struct {
	Pixels [][]core.Color // Indexed [x][y]
	Scale  float64        // Texture-space size of one grid cell
	Offset core.Vec2      // Shift applied after scaling, in cells
}

// NewTexture creates a texture from a non-empty, rectangular color grid
func NewTexture(pixels [][]core.Color, scale float64, offset core.Vec2) *Texture {
	if len(pixels) == 0 || len(pixels[0]) == 0 {
		panic("texture grid must not be empty")
	}
	if scale <= 0 {
		scale = 1
	}
	return &Texture{Pixels: pixels, Scale: scale, Offset: offset}
}

// NewCheckerboardTexture creates the 2x2 black and white board
func NewCheckerboardTexture(scale float64) *Texture {
	return NewTexture([][]core.Color{
		{core.Black, core.White},
		{core.White, core.Black},
	}, scale, core.Vec2{})
}

func (t *Texture) isColoration() {}

// ColorAt looks up the grid cell containing the surface's texture coordinate at point
func (t *Texture) ColorAt(surface Surface, point core.Vec3) core.Color {
	coordinate := surface.TextureCoordinate(point)
	x := wrap(math.Floor(coordinate.X/t.Scale+t.Offset.X), len(t.Pixels))
	y := wrap(math.Floor(coordinate.Y/t.Scale+t.Offset.Y), len(t.Pixels[x]))
	return t.Pixels[x][y]
}

// wrap maps any integral value into [0, n)
func wrap(value float64, n int) int {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	i := int(math.Mod(value, float64(n)))
	if i < 0 {
		i += n
	}
	return i
}
