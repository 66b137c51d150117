package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// determinantEpsilon rejects rays lying in the triangle plane and degenerate triangles
const determinantEpsilon = 1e-8

// MeshTriangle is one face of a shared Mesh
type MeshTriangle struct {
	Mesh  *Mesh
	Index int // Face index within Mesh.Faces
}

func (t *MeshTriangle) isShape() {}

// Vertices returns the three corner positions
func (t *MeshTriangle) Vertices() (core.Vec3, core.Vec3, core.Vec3) {
	face := t.Mesh.Faces[t.Index]
	return t.Mesh.Vertices[face[0].Vertex],
		t.Mesh.Vertices[face[1].Vertex],
		t.Mesh.Vertices[face[2].Vertex]
}

// Intersect uses the Möller-Trumbore algorithm and records barycentric (u, v)
func (t *MeshTriangle) Intersect(ray core.Ray) (Intersection, bool) {
	v0, v1, v2 := t.Vertices()

	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// If determinant is near zero, ray lies in plane of triangle
	if a > -determinantEpsilon && a < determinantEpsilon {
		return Intersection{}, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(v0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return Intersection{}, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return Intersection{}, false
	}

	distance := f * edge2.Dot(q)
	if distance < 0 {
		return Intersection{}, false
	}

	return Intersection{Distance: distance, U: u, V: v, HasBarycentric: true}, true
}

// NormalAt interpolates the vertex normals with the barycentric coordinates of
// the hit. Faces without per-vertex normals fall back to the face normal.
func (t *MeshTriangle) NormalAt(point core.Vec3, hit Intersection) core.Vec3 {
	face := t.Mesh.Faces[t.Index]
	if face[0].Normal == NoIndex || face[1].Normal == NoIndex || face[2].Normal == NoIndex {
		return t.FaceNormal()
	}

	u, v := hit.U, hit.V
	if !hit.HasBarycentric {
		u, v = t.barycentric(point)
	}

	n0 := t.Mesh.Normals[face[0].Normal]
	n1 := t.Mesh.Normals[face[1].Normal]
	n2 := t.Mesh.Normals[face[2].Normal]
	normal := n0.Multiply(1 - u - v).Add(n1.Multiply(u)).Add(n2.Multiply(v)).Normalize()
	if normal.LengthSquared() == 0 {
		return t.FaceNormal()
	}
	return normal
}

// FaceNormal returns the geometric normal (counter-clockwise winding)
func (t *MeshTriangle) FaceNormal() core.Vec3 {
	v0, v1, v2 := t.Vertices()
	return v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *MeshTriangle) BoundingBox() (core.AABB, bool) {
	v0, v1, v2 := t.Vertices()
	return core.NewAABBFromPoints(v0, v1, v2), true
}

// TextureCoordinate interpolates the mesh texture coordinates at point.
// Faces without texture coordinates use the barycentric (u, v) directly.
func (t *MeshTriangle) TextureCoordinate(point core.Vec3) core.Vec2 {
	u, v := t.barycentric(point)
	face := t.Mesh.Faces[t.Index]
	if face[0].Texture == NoIndex || face[1].Texture == NoIndex || face[2].Texture == NoIndex {
		return core.NewVec2(u, v)
	}

	t0 := t.Mesh.TexCoords[face[0].Texture]
	t1 := t.Mesh.TexCoords[face[1].Texture]
	t2 := t.Mesh.TexCoords[face[2].Texture]
	return t0.Multiply(1 - u - v).Add(t1.Multiply(u)).Add(t2.Multiply(v))
}

// barycentric returns the (u, v) weights of v1 and v2 for a point in the triangle plane
func (t *MeshTriangle) barycentric(point core.Vec3) (float64, float64) {
	v0, v1, v2 := t.Vertices()
	e1 := v1.Subtract(v0)
	e2 := v2.Subtract(v0)
	p := point.Subtract(v0)

	d11 := e1.Dot(e1)
	d12 := e1.Dot(e2)
	d22 := e2.Dot(e2)
	dp1 := p.Dot(e1)
	dp2 := p.Dot(e2)

	denominator := d11*d22 - d12*d12
	if math.Abs(denominator) < determinantEpsilon {
		return 0, 0
	}
	u := (d22*dp1 - d12*dp2) / denominator
	v := (d11*dp2 - d12*dp1) / denominator
	return u, v
}
