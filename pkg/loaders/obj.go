package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// LoadOBJ loads a Wavefront OBJ file into a mesh
func LoadOBJ(filename string) (*geometry.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %v", err)
	}
	defer file.Close()

	mesh, err := ParseOBJ(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %v", filename, err)
	}
	return mesh, nil
}

// ParseOBJ reads the v, vt, vn and f statements of an OBJ stream. Indices are
// 1-based, negative indices count back from the latest element, and polygons
// with more than three corners are split into a triangle fan. Other statements
// are ignored.
func ParseOBJ(r io.Reader) (*geometry.Mesh, error) {
	var (
		vertices  []core.Vec3
		texCoords []core.Vec2
		normals   []core.Vec3
		faces     []geometry.MeshFace
	)

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "v":
			v, err := parseFloats(parts[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid vertex: %v", lineNumber, err)
			}
			vertices = append(vertices, core.NewVec3(v[0], v[1], v[2]))
		case "vt":
			v, err := parseFloats(parts[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid texture coordinate: %v", lineNumber, err)
			}
			texCoords = append(texCoords, core.NewVec2(v[0], v[1]))
		case "vn":
			v, err := parseFloats(parts[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid normal: %v", lineNumber, err)
			}
			normals = append(normals, core.NewVec3(v[0], v[1], v[2]).Normalize())
		case "f":
			if len(parts) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices, got %d", lineNumber, len(parts)-1)
			}
			corners := make([]geometry.MeshVertex, len(parts)-1)
			for i, token := range parts[1:] {
				corner, err := parseFaceVertex(token, len(vertices), len(texCoords), len(normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %v", lineNumber, err)
				}
				corners[i] = corner
			}
			for i := 1; i+1 < len(corners); i++ {
				faces = append(faces, geometry.MeshFace{corners[0], corners[i], corners[i+1]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading OBJ data: %v", err)
	}
	if len(faces) == 0 {
		return nil, fmt.Errorf("no faces found")
	}

	mesh := &geometry.Mesh{
		Vertices:  vertices,
		TexCoords: texCoords,
		Normals:   normals,
		Faces:     faces,
	}
	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	return mesh, nil
}

// parseFaceVertex parses "v", "v/vt", "v//vn" or "v/vt/vn"
func parseFaceVertex(token string, numVertices, numTexCoords, numNormals int) (geometry.MeshVertex, error) {
	fields := strings.Split(token, "/")
	if len(fields) > 3 {
		return geometry.MeshVertex{}, fmt.Errorf("invalid face vertex %q", token)
	}

	corner := geometry.MeshVertex{Texture: geometry.NoIndex, Normal: geometry.NoIndex}
	var err error
	if corner.Vertex, err = parseIndex(fields[0], numVertices); err != nil {
		return corner, fmt.Errorf("invalid vertex index in %q: %v", token, err)
	}
	if len(fields) > 1 && fields[1] != "" {
		if corner.Texture, err = parseIndex(fields[1], numTexCoords); err != nil {
			return corner, fmt.Errorf("invalid texture index in %q: %v", token, err)
		}
	}
	if len(fields) > 2 && fields[2] != "" {
		if corner.Normal, err = parseIndex(fields[2], numNormals); err != nil {
			return corner, fmt.Errorf("invalid normal index in %q: %v", token, err)
		}
	}
	return corner, nil
}

// parseIndex converts a 1-based or negative relative OBJ index to a 0-based index
func parseIndex(field string, count int) (int, error) {
	index, err := strconv.Atoi(field)
	if err != nil {
		return 0, err
	}
	switch {
	case index > 0:
		index--
	case index < 0:
		index += count
	default:
		return 0, fmt.Errorf("index 0 is not valid")
	}
	if index < 0 || index >= count {
		return 0, fmt.Errorf("index %s out of range (%d defined)", field, count)
	}
	return index, nil
}

func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(fields))
	}
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}
