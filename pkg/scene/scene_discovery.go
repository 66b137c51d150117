package scene

import (
	"fmt"
	"sort"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
}

type sceneFactory struct {
	info SceneInfo
	new  func(width, height int) *Scene
}

var builtinScenes = map[string]sceneFactory{
	"default": {
		info: SceneInfo{ID: "default", DisplayName: "Default", Description: "Matte, mirror and glass spheres over a checkerboard floor"},
		new:  NewDefaultScene,
	},
	"glass": {
		info: SceneInfo{ID: "glass", DisplayName: "Nested Glass", Description: "Glass, water and air volumes nested inside each other"},
		new:  NewGlassScene,
	},
	"mesh": {
		info: SceneInfo{ID: "mesh", DisplayName: "Mesh", Description: "Smooth-shaded octahedron mesh next to a mirror sphere"},
		new:  NewMeshScene,
	},
}

// ListScenes returns the built-in scenes sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, factory := range builtinScenes {
		scenes = append(scenes, factory.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// NewSceneByName creates a built-in scene rendered at width x height
func NewSceneByName(name string, width, height int) (*Scene, error) {
	factory, ok := builtinScenes[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene: %s", name)
	}
	return factory.new(width, height), nil
}
