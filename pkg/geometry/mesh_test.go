package geometry

import (
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func plainFace(a, b, c int) MeshFace {
	return MeshFace{
		{Vertex: a, Texture: NoIndex, Normal: NoIndex},
		{Vertex: b, Texture: NoIndex, Normal: NoIndex},
		{Vertex: c, Texture: NoIndex, Normal: NoIndex},
	}
}

func TestMesh_Validate(t *testing.T) {
	vertices := []core.Vec3{core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)}

	tests := []struct {
		name    string
		face    MeshFace
		wantErr string
	}{
		{"valid", plainFace(0, 1, 2), ""},
		{"vertex out of range", plainFace(0, 1, 3), "vertex index 3"},
		{"negative vertex", plainFace(-1, 1, 2), "vertex index -1"},
		{"texture out of range", MeshFace{{0, 0, NoIndex}, {1, NoIndex, NoIndex}, {2, NoIndex, NoIndex}}, "texture index 0"},
		{"normal out of range", MeshFace{{0, NoIndex, NoIndex}, {1, NoIndex, 5}, {2, NoIndex, NoIndex}}, "normal index 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh := &Mesh{Vertices: vertices, Faces: []MeshFace{tt.face}}
			err := mesh.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestNewMesh_PanicsOnBadIndex(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected NewMesh to panic on an out of range index")
		}
	}()
	NewMesh([]core.Vec3{core.NewVec3(0, 0, 0)}, nil, nil, []MeshFace{plainFace(0, 1, 2)})
}

func TestMesh_Translated(t *testing.T) {
	mesh := NewMesh(
		[]core.Vec3{core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)},
		nil, nil,
		[]MeshFace{plainFace(0, 1, 2)},
	)
	moved := mesh.Translated(core.NewVec3(0, 0, 2))

	if mesh.Vertices[0] != core.NewVec3(0, 0, 0) {
		t.Errorf("Original mesh was modified: %v", mesh.Vertices[0])
	}
	if moved.Vertices[1] != core.NewVec3(1, 0, 2) {
		t.Errorf("Expected translated vertex (1,0,2), got %v", moved.Vertices[1])
	}
	if &moved.Faces[0] != &mesh.Faces[0] {
		t.Error("Expected face buffer to be shared")
	}

	triangles := moved.Triangles()
	if len(triangles) != moved.FaceCount() || triangles[0].Mesh != moved {
		t.Error("Triangles should reference the translated mesh")
	}
	hit, ok := triangles[0].Intersect(core.NewRay(core.NewVec3(0.2, 0.2, 0), core.NewVec3(0, 0, 1)))
	if !ok || hit.Distance < 2-tolerance || hit.Distance > 2+tolerance {
		t.Errorf("Expected hit at distance 2, got %v %t", hit, ok)
	}
}
