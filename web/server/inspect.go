package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	ObjectID     int                    `json:"objectId"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult contains the object picked through a pixel and where it was hit
type InspectResult struct {
	Hit      bool
	Object   *scene.SceneObject
	Point    core.Vec3
	Normal   core.Vec3
	Distance float64
}

// inspectPixel picks the object visible through the center of a pixel
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) InspectResult {
	sceneObj.EnsureIndex()

	id, ok := sceneObj.PickObject(pixelX, pixelY)
	if !ok {
		return InspectResult{Hit: false}
	}

	// Repeat the pick query to recover the hit geometry
	ray := sceneObj.Camera.GetRay(pixelX, pixelY)
	hit, _ := sceneObj.ClosestIntersection(ray)
	point := hit.Point(ray)
	obj, _ := sceneObj.Object(id)
	return InspectResult{
		Hit:      true,
		Object:   obj,
		Point:    point,
		Normal:   hit.Normal(point),
		Distance: hit.Distance,
	}
}

// extractGeometryInfo extracts detailed geometry information
func (s *Server) extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Plane:
		properties["point"] = vecArray(geom.Point)
		properties["normal"] = vecArray(geom.Normal)
		return "plane", properties

	case *geometry.MeshTriangle:
		v0, v1, v2 := geom.Vertices()
		properties["faceIndex"] = geom.Index
		properties["triangleCount"] = geom.Mesh.FaceCount()
		properties["vertices"] = [][3]float64{vecArray(v0), vecArray(v1), vecArray(v2)}
		if bbox, ok := geom.BoundingBox(); ok {
			properties["boundingBox"] = map[string]interface{}{
				"min": vecArray(bbox.Min),
				"max": vecArray(bbox.Max),
			}
		}
		return "mesh_triangle", properties

	default:
		return "unknown", properties
	}
}

// extractMaterialInfo reports the coefficients of a material
func (s *Server) extractMaterialInfo(mat *material.Material) map[string]interface{} {
	return map[string]interface{}{
		"ambient":            colorationInfo(mat.AmbientColor),
		"ambientReflection":  mat.AmbientReflection,
		"diffuse":            colorationInfo(mat.DiffuseColor),
		"diffuseReflection":  mat.DiffuseReflection,
		"specular":           colorationInfo(mat.SpecularColor),
		"specularReflection": mat.SpecularReflection,
		"shininess":          mat.Shininess,
		"reflectivity":       mat.Reflectivity,
		"transparency":       mat.Transparency,
		"refractiveIndex":    mat.RefractiveIndex,
	}
}

func colorationInfo(c material.Coloration) string {
	switch col := c.(type) {
	case *material.SolidColor:
		rgba := col.Color.ToRGBA()
		return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
	case *material.Texture:
		return fmt.Sprintf("texture %dx%d", len(col.Pixels), len(col.Pixels[0]))
	default:
		return "none"
	}
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// handleInspect reports the object visible through a pixel
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := s.parseSceneRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	// Parse and validate pixel coordinates
	pixelX, err := requireIntParam(r.URL.Query(), "x", 0, req.Width-1)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid x coordinate: "+err.Error())
		return
	}
	pixelY, err := requireIntParam(r.URL.Query(), "y", 0, req.Height-1)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid y coordinate: "+err.Error())
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := inspectPixel(sceneObj, pixelX, pixelY)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if !result.Hit {
		json.NewEncoder(w).Encode(InspectResponse{Hit: false, ObjectID: -1})
		return
	}

	geometryType, geometryProps := s.extractGeometryInfo(result.Object.Shape)
	response := InspectResponse{
		Hit:          true,
		ObjectID:     result.Object.ID,
		GeometryType: geometryType,
		Point:        vecArray(result.Point),
		Normal:       vecArray(result.Normal),
		Distance:     result.Distance,
		Properties: map[string]interface{}{
			"geometry": geometryProps,
			"material": s.extractMaterialInfo(result.Object.Material),
		},
	}
	json.NewEncoder(w).Encode(response)
}
