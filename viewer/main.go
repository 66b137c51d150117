package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func main() {
	sceneType := flag.String("scene", "default", "Built-in scene: 'default', 'glass' or 'mesh'")
	input := flag.String("input", "", "JSON scene file (overrides -scene)")
	width := flag.Int("width", 320, "Frame width")
	height := flag.Int("height", 180, "Frame height")
	bounces := flag.Int("bounces", renderer.DefaultRenderConfig().MaxBounces, "Maximum reflection/refraction bounces")
	scale := flag.Int("scale", 2, "Window scale factor")
	flag.Parse()

	s, err := loadScene(*sceneType, *input, *width, *height)
	if err != nil {
		log.Printf("Error loading scene: %v", err)
		os.Exit(1)
	}

	config := renderer.DefaultRenderConfig()
	config.MaxBounces = *bounces
	controller := NewController(s, config, renderer.NewDefaultLogger())

	if err := RunWindow(controller, max(*scale, 1)); err != nil {
		log.Printf("Viewer error: %v", err)
		os.Exit(1)
	}
}

func loadScene(sceneType, input string, width, height int) (*scene.Scene, error) {
	if input == "" {
		return scene.NewSceneByName(sceneType, width, height)
	}
	s, err := loaders.LoadSceneJSON(input)
	if err != nil {
		return nil, err
	}
	s.Camera = s.Camera.WithResolution(width, height)
	return s, nil
}
