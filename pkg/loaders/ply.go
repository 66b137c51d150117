package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format      string // "binary_little_endian", "binary_big_endian", or "ascii"
	Version     string // Usually "1.0"
	VertexCount int
	FaceCount   int
	VertexProps []PLYProperty
	FaceProps   []PLYProperty

	// Property indices for efficient access, -1 when absent
	PositionIndices [3]int // x, y, z
	NormalIndices   [3]int // nx, ny, nz
	TexCoordIndices [2]int // u, v or s, t
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
	DataType string // For list properties, the type of the data
}

// HasNormals reports whether every vertex carries nx, ny and nz
func (h *PLYHeader) HasNormals() bool {
	return h.NormalIndices[0] >= 0 && h.NormalIndices[1] >= 0 && h.NormalIndices[2] >= 0
}

// HasTexCoords reports whether every vertex carries a texture coordinate
func (h *PLYHeader) HasTexCoords() bool {
	return h.TexCoordIndices[0] >= 0 && h.TexCoordIndices[1] >= 0
}

// LoadPLY loads a PLY file into a mesh
func LoadPLY(filename string) (*geometry.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %v", err)
	}
	defer file.Close()

	mesh, err := ParsePLY(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %v", filename, err)
	}
	return mesh, nil
}

// ParsePLY reads an ASCII or binary PLY stream. Vertex normals and texture
// coordinates become per-corner indices equal to the vertex index; polygons
// are split into triangle fans.
func ParsePLY(r io.Reader) (*geometry.Mesh, error) {
	reader := bufio.NewReader(r)

	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %v", err)
	}

	var source plyValueReader
	switch header.Format {
	case "ascii":
		source = &plyASCIIReader{scanner: newWordScanner(reader)}
	case "binary_little_endian":
		source = &plyBinaryReader{reader: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		source = &plyBinaryReader{reader: reader, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("unsupported PLY format: %s", header.Format)
	}

	mesh, err := readPLYBody(source, header)
	if err != nil {
		return nil, fmt.Errorf("failed to read PLY data: %v", err)
	}
	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	return mesh, nil
}

// parsePLYHeader consumes the header up to and including end_header
func parsePLYHeader(reader *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{
		PositionIndices: [3]int{-1, -1, -1},
		NormalIndices:   [3]int{-1, -1, -1},
		TexCoordIndices: [2]int{-1, -1},
	}

	var currentElement string
	first := true
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("unexpected end of header: %v", err)
		}
		line = strings.TrimSpace(line)
		if first {
			if line != "ply" {
				return nil, fmt.Errorf("missing ply magic number")
			}
			first = false
			continue
		}
		if line == "end_header" {
			break
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) >= 3 {
				header.Format = parts[1]
				header.Version = parts[2]
			}
		case "comment", "obj_info":
			// Ignore comments
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element definition: %s", line)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil {
				return nil, fmt.Errorf("invalid element count: %s", parts[2])
			}
			currentElement = parts[1]
			switch currentElement {
			case "vertex":
				header.VertexCount = count
			case "face":
				header.FaceCount = count
			}
		case "property":
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("failed to parse property: %v", err)
			}
			switch currentElement {
			case "vertex":
				header.VertexProps = append(header.VertexProps, prop)
				header.indexVertexProperty(prop.Name, len(header.VertexProps)-1)
			case "face":
				header.FaceProps = append(header.FaceProps, prop)
			}
		}
	}

	for axis, index := range header.PositionIndices {
		if index < 0 {
			return nil, fmt.Errorf("vertex element is missing coordinate %d", axis)
		}
	}
	return header, nil
}

func (h *PLYHeader) indexVertexProperty(name string, index int) {
	switch name {
	case "x":
		h.PositionIndices[0] = index
	case "y":
		h.PositionIndices[1] = index
	case "z":
		h.PositionIndices[2] = index
	case "nx":
		h.NormalIndices[0] = index
	case "ny":
		h.NormalIndices[1] = index
	case "nz":
		h.NormalIndices[2] = index
	case "u", "s", "texture_u":
		h.TexCoordIndices[0] = index
	case "v", "t", "texture_v":
		h.TexCoordIndices[1] = index
	}
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("invalid property definition")
	}

	prop := PLYProperty{}

	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("invalid list property definition")
		}
		prop.IsList = true
		prop.ListType = parts[1]
		prop.DataType = parts[2]
		prop.Name = parts[3]
	} else {
		prop.Type = parts[0]
		prop.Name = parts[1]
	}

	return prop, nil
}

// readPLYBody reads the vertex element followed by the face element
func readPLYBody(source plyValueReader, header *PLYHeader) (*geometry.Mesh, error) {
	vertices := make([]core.Vec3, 0, header.VertexCount)
	var normals []core.Vec3
	var texCoords []core.Vec2
	if header.HasNormals() {
		normals = make([]core.Vec3, 0, header.VertexCount)
	}
	if header.HasTexCoords() {
		texCoords = make([]core.Vec2, 0, header.VertexCount)
	}

	values := make([]float64, len(header.VertexProps))
	for i := 0; i < header.VertexCount; i++ {
		for j, prop := range header.VertexProps {
			if prop.IsList {
				if err := skipPLYList(source, prop); err != nil {
					return nil, fmt.Errorf("vertex %d property %s: %v", i, prop.Name, err)
				}
				continue
			}
			v, err := source.Read(prop.Type)
			if err != nil {
				return nil, fmt.Errorf("vertex %d property %s: %v", i, prop.Name, err)
			}
			values[j] = v
		}

		p := header.PositionIndices
		vertices = append(vertices, core.NewVec3(values[p[0]], values[p[1]], values[p[2]]))
		if normals != nil {
			n := header.NormalIndices
			normals = append(normals, core.NewVec3(values[n[0]], values[n[1]], values[n[2]]).Normalize())
		}
		if texCoords != nil {
			uv := header.TexCoordIndices
			texCoords = append(texCoords, core.NewVec2(values[uv[0]], values[uv[1]]))
		}
	}

	faces := make([]geometry.MeshFace, 0, header.FaceCount)
	for i := 0; i < header.FaceCount; i++ {
		for _, prop := range header.FaceProps {
			if !prop.IsList || (prop.Name != "vertex_indices" && prop.Name != "vertex_index") {
				if err := skipPLYProperty(source, prop); err != nil {
					return nil, fmt.Errorf("face %d property %s: %v", i, prop.Name, err)
				}
				continue
			}

			count, err := source.Read(prop.ListType)
			if err != nil {
				return nil, fmt.Errorf("failed to read face vertex count at face %d: %v", i, err)
			}
			if count < 3 {
				return nil, fmt.Errorf("face %d has %d vertices", i, int(count))
			}

			corners := make([]geometry.MeshVertex, int(count))
			for k := range corners {
				index, err := source.Read(prop.DataType)
				if err != nil {
					return nil, fmt.Errorf("failed to read face indices at face %d: %v", i, err)
				}
				corners[k] = plyCorner(int(index), normals != nil, texCoords != nil)
			}
			for k := 1; k+1 < len(corners); k++ {
				faces = append(faces, geometry.MeshFace{corners[0], corners[k], corners[k+1]})
			}
		}
	}

	return &geometry.Mesh{
		Vertices:  vertices,
		TexCoords: texCoords,
		Normals:   normals,
		Faces:     faces,
	}, nil
}

func plyCorner(index int, hasNormals, hasTexCoords bool) geometry.MeshVertex {
	corner := geometry.MeshVertex{Vertex: index, Texture: geometry.NoIndex, Normal: geometry.NoIndex}
	if hasNormals {
		corner.Normal = index
	}
	if hasTexCoords {
		corner.Texture = index
	}
	return corner
}

func skipPLYProperty(source plyValueReader, prop PLYProperty) error {
	if prop.IsList {
		return skipPLYList(source, prop)
	}
	_, err := source.Read(prop.Type)
	return err
}

func skipPLYList(source plyValueReader, prop PLYProperty) error {
	count, err := source.Read(prop.ListType)
	if err != nil {
		return err
	}
	for i := 0; i < int(count); i++ {
		if _, err := source.Read(prop.DataType); err != nil {
			return err
		}
	}
	return nil
}

// plyValueReader reads one scalar of a PLY data type as float64
type plyValueReader interface {
	Read(dataType string) (float64, error)
}

type plyBinaryReader struct {
	reader io.Reader
	order  binary.ByteOrder
}

func (r *plyBinaryReader) Read(dataType string) (float64, error) {
	var buf [8]byte
	size := plyTypeSize(dataType)
	if size == 0 {
		return 0, fmt.Errorf("unsupported data type: %s", dataType)
	}
	if _, err := io.ReadFull(r.reader, buf[:size]); err != nil {
		return 0, err
	}
	b := buf[:size]
	switch dataType {
	case "char", "int8":
		return float64(int8(b[0])), nil
	case "uchar", "uint8":
		return float64(b[0]), nil
	case "short", "int16":
		return float64(int16(r.order.Uint16(b))), nil
	case "ushort", "uint16":
		return float64(r.order.Uint16(b)), nil
	case "int", "int32":
		return float64(int32(r.order.Uint32(b))), nil
	case "uint", "uint32":
		return float64(r.order.Uint32(b)), nil
	case "float", "float32":
		return float64(math.Float32frombits(r.order.Uint32(b))), nil
	default: // double, float64
		return math.Float64frombits(r.order.Uint64(b)), nil
	}
}

func plyTypeSize(dataType string) int {
	switch dataType {
	case "char", "int8", "uchar", "uint8":
		return 1
	case "short", "int16", "ushort", "uint16":
		return 2
	case "int", "int32", "uint", "uint32", "float", "float32":
		return 4
	case "double", "float64":
		return 8
	default:
		return 0
	}
}

type plyASCIIReader struct {
	scanner *bufio.Scanner
}

func newWordScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	return scanner
}

func (r *plyASCIIReader) Read(dataType string) (float64, error) {
	if plyTypeSize(dataType) == 0 {
		return 0, fmt.Errorf("unsupported data type: %s", dataType)
	}
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	return strconv.ParseFloat(r.scanner.Text(), 64)
}
