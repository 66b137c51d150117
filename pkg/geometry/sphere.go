package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
	}
}

func (s *Sphere) isShape() {}

// Intersect solves the ray-sphere quadratic by projecting the center onto the ray.
// A ray starting inside the sphere reports the exit point.
func (s *Sphere) Intersect(ray core.Ray) (Intersection, bool) {
	// Vector from ray origin to sphere center
	l := s.Center.Subtract(ray.Origin)
	tca := l.Dot(ray.Direction)

	// Squared distance from the center to the ray line
	d2 := l.Dot(l) - tca*tca
	r2 := s.Radius * s.Radius
	if d2 > r2 {
		return Intersection{}, false
	}

	thc := math.Sqrt(r2 - d2)
	t0 := tca - thc
	t1 := tca + thc

	if t0 < 0 {
		// Origin is inside (or the sphere is behind): fall back to the far root
		t0 = t1
	}
	if t0 < 0 {
		return Intersection{}, false
	}

	return Intersection{Distance: t0}, true
}

// NormalAt returns the outward normal
func (s *Sphere) NormalAt(point core.Vec3, _ Intersection) core.Vec3 {
	return point.Subtract(s.Center).Normalize()
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() (core.AABB, bool) {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	), true
}

// TextureCoordinate returns spherical (longitude, latitude) coordinates in [0, 1]
func (s *Sphere) TextureCoordinate(point core.Vec3) core.Vec2 {
	hit := point.Subtract(s.Center)
	cosTheta := math.Max(-1, math.Min(1, hit.Y/s.Radius))
	return core.NewVec2(
		(1.0+math.Atan2(hit.Z, hit.X)/math.Pi)*0.5,
		math.Acos(cosTheta)/math.Pi,
	)
}
