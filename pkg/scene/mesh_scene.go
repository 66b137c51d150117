package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewOctahedronMesh creates an octahedron of the given radius centered at
// center. Its vertex normals point away from the center, so interpolated
// shading makes it look rounded.
func NewOctahedronMesh(center core.Vec3, radius float64) *geometry.Mesh {
	directions := []core.Vec3{
		core.NewVec3(1, 0, 0), core.NewVec3(-1, 0, 0),
		core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0),
		core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1),
	}
	vertices := make([]core.Vec3, len(directions))
	for i, d := range directions {
		vertices[i] = center.Add(d.Multiply(radius))
	}

	// Counter-clockwise seen from outside
	corners := [][3]int{
		{0, 2, 4}, {4, 2, 1}, {1, 2, 5}, {5, 2, 0},
		{4, 3, 0}, {1, 3, 4}, {5, 3, 1}, {0, 3, 5},
	}
	faces := make([]geometry.MeshFace, len(corners))
	for i, c := range corners {
		for j := 0; j < 3; j++ {
			faces[i][j] = geometry.MeshVertex{Vertex: c[j], Texture: geometry.NoIndex, Normal: c[j]}
		}
	}

	return geometry.NewMesh(vertices, nil, directions, faces)
}

// NewMeshScene creates a smooth-shaded octahedron mesh and a sphere on a floor
func NewMeshScene(width, height int) *Scene {
	camera := geometry.NewCamera(
		core.NewVec3(0, 2, -7),
		core.NewVec3(0, 0.3, 0),
		core.NewVec3(0, 1, 0),
		math.Pi/3,
		width, height,
	)
	s := NewScene(camera, lights.NewAmbientLight(core.White, 0.3))

	s.AddObject(geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0)), material.NewMatte(core.NewColor(0.7, 0.7, 0.7)))
	s.AddMesh(NewOctahedronMesh(core.NewVec3(-1, 0.5, 0), 1.4), material.NewPlastic(core.NewColor(0.2, 0.5, 0.9), 40))
	s.AddObject(geometry.NewSphere(core.NewVec3(2, 0, 1), 1), material.NewMirror(core.NewColor(0.95, 0.85, 0.6), 0.6))

	s.AddLight(lights.NewPointLight(core.NewVec3(-4, 6, -5), core.White, 0.9))

	return s
}
