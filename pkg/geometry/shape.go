package geometry

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Intersection describes where a ray struck a shape
type Intersection struct {
	Distance float64 // Distance along the ray, always >= 0

	// Barycentric coordinates of the hit, set only by mesh triangles.
	// Kept so normal interpolation and texturing need not recompute them.
	U, V           float64
	HasBarycentric bool
}

// Shape is the closed set of primitives a scene object can be made of:
// *Sphere, *Plane and *MeshTriangle.
type Shape interface {
	// Intersect returns the nearest hit in front of the ray origin
	Intersect(ray core.Ray) (Intersection, bool)
	// NormalAt returns the unit shading normal at a point found by Intersect
	NormalAt(point core.Vec3, hit Intersection) core.Vec3
	// BoundingBox returns false for unbounded shapes
	BoundingBox() (core.AABB, bool)
	// TextureCoordinate maps a surface point to 2D texture space
	TextureCoordinate(point core.Vec3) core.Vec2
	isShape()
}
