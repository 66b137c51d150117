package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// SceneIntersection pairs a hit with the object that was hit
type SceneIntersection struct {
	geometry.Intersection
	Object *SceneObject
}

// Point returns the exact hit position along ray
func (si SceneIntersection) Point(ray core.Ray) core.Vec3 {
	return ray.At(si.Distance)
}

// Normal returns the shading normal at point
func (si SceneIntersection) Normal(point core.Vec3) core.Vec3 {
	return si.Object.Shape.NormalAt(point, si.Intersection)
}

// Candidates returns the IDs of the objects a ray must be tested against:
// the index's candidate set when an index is built, otherwise every object.
// Both lists are in ascending ID order.
func (s *Scene) Candidates(ray core.Ray) []int {
	if s.index != nil {
		return s.index.Candidates(ray)
	}
	all := make([]int, len(s.Objects))
	for i := range s.Objects {
		all[i] = i
	}
	return all
}

// ClosestIntersection returns the nearest hit along ray. Equal distances
// resolve to the lowest object ID.
func (s *Scene) ClosestIntersection(ray core.Ray) (SceneIntersection, bool) {
	var closest SceneIntersection
	found := false

	for _, id := range s.Candidates(ray) {
		object := s.Objects[id]
		hit, ok := object.Shape.Intersect(ray)
		if !ok {
			continue
		}
		// Candidates are ascending, so strict comparison keeps the lowest ID on ties
		if !found || hit.Distance < closest.Distance {
			closest = SceneIntersection{Intersection: hit, Object: object}
			found = true
		}
	}

	return closest, found
}

// IsOccluded reports whether any object intersects ray closer than maxDistance
func (s *Scene) IsOccluded(ray core.Ray, maxDistance float64) bool {
	for _, id := range s.Candidates(ray) {
		if hit, ok := s.Objects[id].Shape.Intersect(ray); ok && hit.Distance < maxDistance {
			return true
		}
	}
	return false
}

// PickObject returns the ID of the nearest object seen through pixel (x, y)
func (s *Scene) PickObject(x, y int) (int, bool) {
	if s.Camera == nil {
		return 0, false
	}
	hit, ok := s.ClosestIntersection(s.Camera.GetRay(x, y))
	if !ok {
		return 0, false
	}
	return hit.Object.ID, true
}
