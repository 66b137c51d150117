package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// SceneObject is one renderable primitive. IDs are assigned by the scene in
// insertion order and equal the object's position in Scene.Objects.
type SceneObject struct {
	ID       int
	Shape    geometry.Shape
	Material *material.Material
}

// Scene contains all the elements needed for rendering.
//
// The spatial index is built from the geometry as it was at build time.
// TranslateObject marks it stale without rebuilding; queries made before
// RebuildIndex or EnsureIndex still use the old tree and can miss moved objects.
// A scene must not be edited while a render pass is reading it.
type Scene struct {
	Camera  *geometry.Camera
	Objects []*SceneObject
	Lights  []lights.Light
	Ambient lights.AmbientLight

	index      *geometry.KDTree
	indexStale bool
}

// NewScene creates an empty scene
func NewScene(camera *geometry.Camera, ambient lights.AmbientLight) *Scene {
	return &Scene{
		Camera:  camera,
		Ambient: ambient,
	}
}

// AddObject appends a shape and returns its ID
func (s *Scene) AddObject(shape geometry.Shape, mat *material.Material) int {
	id := len(s.Objects)
	s.Objects = append(s.Objects, &SceneObject{ID: id, Shape: shape, Material: mat})
	s.markStale()
	return id
}

// AddMesh expands a mesh into one object per triangle, all sharing the mesh
// buffers and the material, and returns their IDs
func (s *Scene) AddMesh(mesh *geometry.Mesh, mat *material.Material) []int {
	ids := make([]int, 0, mesh.FaceCount())
	for _, triangle := range mesh.Triangles() {
		ids = append(ids, s.AddObject(triangle, mat))
	}
	return ids
}

// AddLight appends a light source
func (s *Scene) AddLight(light lights.Light) {
	s.Lights = append(s.Lights, light)
}

// Object returns the object with the given ID
func (s *Scene) Object(id int) (*SceneObject, bool) {
	if id < 0 || id >= len(s.Objects) {
		return nil, false
	}
	return s.Objects[id], true
}

// Shapes returns the geometry of every object, indexed by object ID
func (s *Scene) Shapes() []geometry.Shape {
	shapes := make([]geometry.Shape, len(s.Objects))
	for i, object := range s.Objects {
		shapes[i] = object.Shape
	}
	return shapes
}

// BuildIndex builds the spatial index from the current geometry
func (s *Scene) BuildIndex() *geometry.KDTree {
	s.index = geometry.NewKDTree(s.Shapes())
	s.indexStale = false
	return s.index
}

// RebuildIndex is BuildIndex under the name used by editing code
func (s *Scene) RebuildIndex() *geometry.KDTree {
	return s.BuildIndex()
}

// EnsureIndex rebuilds the index if it is missing or stale and reports whether it did
func (s *Scene) EnsureIndex() bool {
	if s.index != nil && !s.indexStale {
		return false
	}
	s.BuildIndex()
	return true
}

// DropIndex discards the index so queries fall back to a linear scan
func (s *Scene) DropIndex() {
	s.index = nil
	s.indexStale = false
}

// Index returns the current spatial index, or nil when none is built
func (s *Scene) Index() *geometry.KDTree {
	return s.index
}

// IndexStale reports whether geometry changed since the index was built
func (s *Scene) IndexStale() bool {
	return s.indexStale
}

func (s *Scene) markStale() {
	if s.index != nil {
		s.indexStale = true
	}
}

// TranslateObject moves an object by offset. Moving a mesh triangle moves its
// whole mesh: every triangle sharing the buffer is rebound to a translated copy.
// The index is marked stale but not rebuilt.
func (s *Scene) TranslateObject(id int, offset core.Vec3) bool {
	object, ok := s.Object(id)
	if !ok {
		return false
	}

	switch shape := object.Shape.(type) {
	case *geometry.Sphere:
		object.Shape = geometry.NewSphere(shape.Center.Add(offset), shape.Radius)
	case *geometry.Plane:
		object.Shape = geometry.NewPlane(shape.Point.Add(offset), shape.Normal)
	case *geometry.MeshTriangle:
		original := shape.Mesh
		moved := original.Translated(offset)
		for _, other := range s.Objects {
			if triangle, ok := other.Shape.(*geometry.MeshTriangle); ok && triangle.Mesh == original {
				other.Shape = &geometry.MeshTriangle{Mesh: moved, Index: triangle.Index}
			}
		}
	default:
		return false
	}

	s.markStale()
	return true
}
