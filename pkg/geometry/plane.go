package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// parallelEpsilon rejects rays nearly parallel to the plane
const parallelEpsilon = 1e-6

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point  core.Vec3 // A point on the plane
	Normal core.Vec3 // Unit normal
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3) *Plane {
	return &Plane{
		Point:  point,
		Normal: normal.Normalize(),
	}
}

func (p *Plane) isShape() {}

// Intersect tests if a ray intersects with the plane
func (p *Plane) Intersect(ray core.Ray) (Intersection, bool) {
	denominator := p.Normal.Dot(ray.Direction)
	if math.Abs(denominator) < parallelEpsilon {
		return Intersection{}, false
	}

	distance := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if distance < 0 {
		return Intersection{}, false
	}

	return Intersection{Distance: distance}, true
}

// NormalAt returns the plane normal, independent of the side that was hit
func (p *Plane) NormalAt(core.Vec3, Intersection) core.Vec3 {
	return p.Normal
}

// BoundingBox reports that planes are unbounded
func (p *Plane) BoundingBox() (core.AABB, bool) {
	return core.AABB{}, false
}

// TextureCoordinate projects the point onto an orthonormal basis lying in the plane
func (p *Plane) TextureCoordinate(point core.Vec3) core.Vec2 {
	xAxis := p.Normal.Cross(core.NewVec3(0, 0, 1))
	if xAxis.Length() < 1e-6 {
		xAxis = p.Normal.Cross(core.NewVec3(0, 1, 0))
	}
	xAxis = xAxis.Normalize()
	yAxis := p.Normal.Cross(xAxis)

	hit := point.Subtract(p.Point)
	return core.NewVec2(hit.Dot(xAxis), hit.Dot(yAxis))
}
