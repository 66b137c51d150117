package geometry

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// NoIndex marks a face corner without a texture coordinate or normal
const NoIndex = -1

// MeshVertex holds the buffer indices used by one corner of a face
type MeshVertex struct {
	Vertex  int // Index into Mesh.Vertices
	Texture int // Index into Mesh.TexCoords, or NoIndex
	Normal  int // Index into Mesh.Normals, or NoIndex
}

// MeshFace is a triangle of three corners
type MeshFace [3]MeshVertex

// Mesh holds the vertex, texture coordinate and normal buffers shared by all
// triangles of one model. A Mesh is read-only once built; edits produce a copy.
type Mesh struct {
	Vertices  []core.Vec3
	TexCoords []core.Vec2
	Normals   []core.Vec3
	Faces     []MeshFace
}

// NewMesh creates a mesh and panics if any face references a missing buffer entry.
// Loaders validate untrusted input with Validate first.
func NewMesh(vertices []core.Vec3, texCoords []core.Vec2, normals []core.Vec3, faces []MeshFace) *Mesh {
	mesh := &Mesh{
		Vertices:  vertices,
		TexCoords: texCoords,
		Normals:   normals,
		Faces:     faces,
	}
	if err := mesh.Validate(); err != nil {
		panic(err.Error())
	}
	return mesh
}

// Validate checks that every face index is in range
func (m *Mesh) Validate() error {
	for i, face := range m.Faces {
		for corner, v := range face {
			if v.Vertex < 0 || v.Vertex >= len(m.Vertices) {
				return fmt.Errorf("face %d corner %d: vertex index %d out of range [0,%d)", i, corner, v.Vertex, len(m.Vertices))
			}
			if v.Texture != NoIndex && (v.Texture < 0 || v.Texture >= len(m.TexCoords)) {
				return fmt.Errorf("face %d corner %d: texture index %d out of range [0,%d)", i, corner, v.Texture, len(m.TexCoords))
			}
			if v.Normal != NoIndex && (v.Normal < 0 || v.Normal >= len(m.Normals)) {
				return fmt.Errorf("face %d corner %d: normal index %d out of range [0,%d)", i, corner, v.Normal, len(m.Normals))
			}
		}
	}
	return nil
}

// Translated returns a mesh with every vertex moved by offset. The texture
// coordinate, normal and face buffers are shared with the original.
func (m *Mesh) Translated(offset core.Vec3) *Mesh {
	vertices := make([]core.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		vertices[i] = v.Add(offset)
	}
	return &Mesh{
		Vertices:  vertices,
		TexCoords: m.TexCoords,
		Normals:   m.Normals,
		Faces:     m.Faces,
	}
}

// Triangles expands the mesh into one shape per face, all sharing this mesh
func (m *Mesh) Triangles() []*MeshTriangle {
	triangles := make([]*MeshTriangle, len(m.Faces))
	for i := range m.Faces {
		triangles[i] = &MeshTriangle{Mesh: m, Index: i}
	}
	return triangles
}

// FaceCount returns the number of triangles in the mesh
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}
