package loaders

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// SceneFile is the JSON scene document. Keys are camelCase; variant fields
// (light kind, geometry kind, coloration kind) must set exactly one member.
type SceneFile struct {
	Camera       CameraJSON       `json:"camera"`
	AmbientLight AmbientLightJSON `json:"ambientLight"`
	Lights       []LightJSON      `json:"lights"`
	Objects      []ObjectJSON     `json:"objects"`
}

// Vec3JSON is a point or direction
type Vec3JSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vec3JSON) vec() core.Vec3 { return core.NewVec3(v.X, v.Y, v.Z) }

// Vec2JSON is a texture-space offset
type Vec2JSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ColorJSON is a linear RGB color, clamped to [0, 1] when loaded
type ColorJSON struct {
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
}

func (c ColorJSON) color() core.Color { return core.NewColor(c.Red, c.Green, c.Blue) }

// CameraJSON describes the pinhole camera; fieldOfView is in radians
type CameraJSON struct {
	Position    Vec3JSON  `json:"position"`
	Direction   *Vec3JSON `json:"direction,omitempty"`
	LookAt      *Vec3JSON `json:"lookAt,omitempty"`
	UpDirection Vec3JSON  `json:"upDirection"`
	FieldOfView float64   `json:"fieldOfView"`
	XResolution int       `json:"xResolution"`
	YResolution int       `json:"yResolution"`
}

// AmbientLightJSON describes the scene's ambient term
type AmbientLightJSON struct {
	Color     ColorJSON `json:"color"`
	Intensity float64   `json:"intensity"`
}

// LightJSON holds exactly one light variant
type LightJSON struct {
	DirectionalLight *DirectionalLightJSON `json:"directionalLight,omitempty"`
	PointLight       *PointLightJSON       `json:"pointLight,omitempty"`
}

// DirectionalLightJSON travels along direction
type DirectionalLightJSON struct {
	Direction Vec3JSON  `json:"direction"`
	Color     ColorJSON `json:"color"`
	Intensity float64   `json:"intensity"`
}

// PointLightJSON emits from origin
type PointLightJSON struct {
	Origin    Vec3JSON  `json:"origin"`
	Color     ColorJSON `json:"color"`
	Intensity float64   `json:"intensity"`
}

// ObjectJSON pairs a geometry with its material
type ObjectJSON struct {
	Geometry GeometryJSON  `json:"geometry"`
	Material *MaterialJSON `json:"material"`
}

// GeometryJSON holds exactly one geometry variant
type GeometryJSON struct {
	Sphere *SphereJSON `json:"sphere,omitempty"`
	Plane  *PlaneJSON  `json:"plane,omitempty"`
	Mesh   *MeshJSON   `json:"mesh,omitempty"`
}

// SphereJSON describes a sphere
type SphereJSON struct {
	Center Vec3JSON `json:"center"`
	Radius float64  `json:"radius"`
}

// PlaneJSON describes an infinite plane
type PlaneJSON struct {
	Point  Vec3JSON `json:"point"`
	Normal Vec3JSON `json:"normal"`
}

// MeshJSON is inline OBJ text or a path to an .obj or .ply file, relative to the scene file
type MeshJSON struct {
	OBJ  string `json:"obj,omitempty"`
	Path string `json:"path,omitempty"`
}

// MaterialJSON mirrors material.Material
type MaterialJSON struct {
	AmbientColor       *ColorationJSON `json:"ambientColor"`
	AmbientReflection  float64         `json:"ambientReflection"`
	DiffuseColor       *ColorationJSON `json:"diffuseColor"`
	DiffuseReflection  float64         `json:"diffuseReflection"`
	SpecularColor      *ColorationJSON `json:"specularColor"`
	SpecularReflection float64         `json:"specularReflection"`
	Shininess          float64         `json:"shininess"`
	Reflectivity       float64         `json:"reflectivity"`
	Transparency       float64         `json:"transparency"`
	IndexOfRefraction  float64         `json:"indexOfRefraction"`
}

// ColorationJSON holds exactly one of a flat color or a texture
type ColorationJSON struct {
	Color   *ColorJSON   `json:"color,omitempty"`
	Texture *TextureJSON `json:"texture,omitempty"`
}

// TextureJSON is a checkerboard, an image file, or an explicit [x][y] grid
type TextureJSON struct {
	Checkerboard bool          `json:"checkerboard,omitempty"`
	Image        string        `json:"image,omitempty"`
	Pixels       [][]ColorJSON `json:"pixels,omitempty"`
	Scale        float64       `json:"scale"`
	Offset       Vec2JSON      `json:"offset"`
}

// LoadSceneJSON loads a JSON scene file. Relative mesh and image paths are
// resolved against the file's directory.
func LoadSceneJSON(filename string) (*scene.Scene, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %v", err)
	}
	defer file.Close()

	s, err := ParseSceneJSON(file, filepath.Dir(filename))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %v", filename, err)
	}
	return s, nil
}

// ParseSceneJSON decodes a scene document. Objects receive IDs in document
// order; a mesh receives one ID per triangle.
func ParseSceneJSON(r io.Reader, baseDir string) (*scene.Scene, error) {
	var doc SceneFile
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid scene JSON: %v", err)
	}

	camera, err := doc.Camera.build()
	if err != nil {
		return nil, fmt.Errorf("camera: %v", err)
	}

	s := scene.NewScene(camera, lights.NewAmbientLight(doc.AmbientLight.Color.color(), doc.AmbientLight.Intensity))

	for i, l := range doc.Lights {
		light, err := l.build()
		if err != nil {
			return nil, fmt.Errorf("light %d: %v", i, err)
		}
		s.AddLight(light)
	}

	for i, obj := range doc.Objects {
		if obj.Material == nil {
			return nil, fmt.Errorf("object %d: missing material", i)
		}
		mat, err := obj.Material.build(baseDir)
		if err != nil {
			return nil, fmt.Errorf("object %d material: %v", i, err)
		}
		if err := obj.Geometry.addTo(s, mat, baseDir); err != nil {
			return nil, fmt.Errorf("object %d geometry: %v", i, err)
		}
	}

	return s, nil
}

func (c CameraJSON) build() (*geometry.Camera, error) {
	if c.XResolution <= 0 || c.YResolution <= 0 {
		return nil, fmt.Errorf("resolution must be positive, got %dx%d", c.XResolution, c.YResolution)
	}
	if c.FieldOfView <= 0 {
		return nil, fmt.Errorf("fieldOfView must be positive radians, got %f", c.FieldOfView)
	}

	position := c.Position.vec()
	var lookAt core.Vec3
	switch {
	case c.Direction != nil && c.LookAt != nil:
		return nil, fmt.Errorf("set only one of direction and lookAt")
	case c.Direction != nil:
		lookAt = position.Add(c.Direction.vec())
	case c.LookAt != nil:
		lookAt = c.LookAt.vec()
	default:
		return nil, fmt.Errorf("missing direction or lookAt")
	}
	if lookAt.Subtract(position).Length() == 0 {
		return nil, fmt.Errorf("view direction is zero")
	}

	up := c.UpDirection.vec()
	if up.Length() == 0 {
		up = core.NewVec3(0, 1, 0)
	}
	return geometry.NewCamera(position, lookAt, up, c.FieldOfView, c.XResolution, c.YResolution), nil
}

func (l LightJSON) build() (lights.Light, error) {
	switch {
	case l.DirectionalLight != nil && l.PointLight != nil:
		return nil, fmt.Errorf("set only one light kind")
	case l.DirectionalLight != nil:
		d := l.DirectionalLight
		if d.Direction.vec().Length() == 0 {
			return nil, fmt.Errorf("directional light direction is zero")
		}
		return lights.NewDirectionalLight(d.Direction.vec(), d.Color.color(), d.Intensity), nil
	case l.PointLight != nil:
		p := l.PointLight
		return lights.NewPointLight(p.Origin.vec(), p.Color.color(), p.Intensity), nil
	default:
		return nil, fmt.Errorf("missing light kind (directionalLight or pointLight)")
	}
}

func (g GeometryJSON) addTo(s *scene.Scene, mat *material.Material, baseDir string) error {
	set := 0
	for _, present := range []bool{g.Sphere != nil, g.Plane != nil, g.Mesh != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("expected exactly one of sphere, plane or mesh, got %d", set)
	}

	switch {
	case g.Sphere != nil:
		if g.Sphere.Radius <= 0 {
			return fmt.Errorf("sphere radius must be positive, got %f", g.Sphere.Radius)
		}
		s.AddObject(geometry.NewSphere(g.Sphere.Center.vec(), g.Sphere.Radius), mat)
	case g.Plane != nil:
		if g.Plane.Normal.vec().Length() == 0 {
			return fmt.Errorf("plane normal is zero")
		}
		s.AddObject(geometry.NewPlane(g.Plane.Point.vec(), g.Plane.Normal.vec()), mat)
	default:
		mesh, err := g.Mesh.load(baseDir)
		if err != nil {
			return err
		}
		s.AddMesh(mesh, mat)
	}
	return nil
}

func (m MeshJSON) load(baseDir string) (*geometry.Mesh, error) {
	switch {
	case m.OBJ != "" && m.Path != "":
		return nil, fmt.Errorf("set only one of obj and path")
	case m.OBJ != "":
		return ParseOBJ(strings.NewReader(m.OBJ))
	case m.Path != "":
		path := resolvePath(baseDir, m.Path)
		switch strings.ToLower(filepath.Ext(path)) {
		case ".obj":
			return LoadOBJ(path)
		case ".ply":
			return LoadPLY(path)
		default:
			return nil, fmt.Errorf("unsupported mesh format: %s", path)
		}
	default:
		return nil, fmt.Errorf("mesh needs obj or path")
	}
}

func (m MaterialJSON) build(baseDir string) (*material.Material, error) {
	ambient, err := m.AmbientColor.build(baseDir)
	if err != nil {
		return nil, fmt.Errorf("ambientColor: %v", err)
	}
	diffuse, err := m.DiffuseColor.build(baseDir)
	if err != nil {
		return nil, fmt.Errorf("diffuseColor: %v", err)
	}
	specular, err := m.SpecularColor.build(baseDir)
	if err != nil {
		return nil, fmt.Errorf("specularColor: %v", err)
	}

	ior := m.IndexOfRefraction
	if ior == 0 {
		ior = 1
	}
	if ior < 0 {
		return nil, fmt.Errorf("indexOfRefraction must be positive, got %f", ior)
	}

	return &material.Material{
		AmbientColor:       ambient,
		AmbientReflection:  m.AmbientReflection,
		DiffuseColor:       diffuse,
		DiffuseReflection:  m.DiffuseReflection,
		SpecularColor:      specular,
		SpecularReflection: m.SpecularReflection,
		Shininess:          m.Shininess,
		Reflectivity:       m.Reflectivity,
		Transparency:       m.Transparency,
		RefractiveIndex:    ior,
	}, nil
}

// build returns black for a missing coloration
func (c *ColorationJSON) build(baseDir string) (material.Coloration, error) {
	if c == nil {
		return material.NewSolidColor(core.Black), nil
	}
	switch {
	case c.Color != nil && c.Texture != nil:
		return nil, fmt.Errorf("set only one of color and texture")
	case c.Color != nil:
		return material.NewSolidColor(c.Color.color()), nil
	case c.Texture != nil:
		return c.Texture.build(baseDir)
	default:
		return material.NewSolidColor(core.Black), nil
	}
}

func (t TextureJSON) build(baseDir string) (*material.Texture, error) {
	offset := core.NewVec2(t.Offset.X, t.Offset.Y)
	switch {
	case t.Checkerboard:
		texture := material.NewCheckerboardTexture(t.Scale)
		texture.Offset = offset
		return texture, nil
	case t.Image != "":
		texture, err := LoadImageTexture(resolvePath(baseDir, t.Image), t.Scale)
		if err != nil {
			return nil, err
		}
		texture.Offset = offset
		return texture, nil
	case len(t.Pixels) > 0:
		height := len(t.Pixels[0])
		grid := make([][]core.Color, len(t.Pixels))
		for x, column := range t.Pixels {
			if len(column) == 0 || len(column) != height {
				return nil, fmt.Errorf("pixel grid must be rectangular and non-empty")
			}
			grid[x] = make([]core.Color, height)
			for y, c := range column {
				grid[x][y] = c.color()
			}
		}
		return material.NewTexture(grid, t.Scale, offset), nil
	default:
		return nil, fmt.Errorf("texture needs checkerboard, image or pixels")
	}
}

func resolvePath(baseDir, path string) string {
	if filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}
