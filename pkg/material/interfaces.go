package material

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Surface is anything that can map a point on itself to texture space.
// Every geometry.Shape satisfies it.
type Surface interface {
	TextureCoordinate(point core.Vec3) core.Vec2
}

// Coloration supplies the color of one material channel at a surface point.
// It is closed to *SolidColor and *Texture.
type Coloration interface {
	ColorAt(surface Surface, point core.Vec3) core.Color

	isColoration()
}
