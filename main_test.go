package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		width       int
		height      int
		expectError bool
		wantWidth   int
		wantHeight  int
	}{
		{"default scene", "default", 0, 0, false, 400, 225},
		{"glass scene", "glass", 64, 48, false, 64, 48},
		{"mesh scene", "mesh", 80, 0, false, 80, 45},
		{"unknown scene", "nonexistent", 0, 0, true, 0, 0},
		{"empty scene name", "", 0, 0, true, 0, 0},
		{"negative width", "default", -1, 10, true, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene, err := createScene(tt.sceneType, "", tt.width, tt.height)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if scene != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s'", tt.sceneType)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if scene.Camera.Width != tt.wantWidth || scene.Camera.Height != tt.wantHeight {
				t.Errorf("Expected %dx%d, got %dx%d", tt.wantWidth, tt.wantHeight, scene.Camera.Width, scene.Camera.Height)
			}
		})
	}
}

func TestCreateSceneFromJSON(t *testing.T) {
	dir := t.TempDir()
	doc := `{
  "camera": {"position": {"z": -4}, "lookAt": {}, "upDirection": {"y": 1}, "fieldOfView": 1.0, "xResolution": 20, "yResolution": 10},
  "ambientLight": {"color": {"red": 1, "green": 1, "blue": 1}, "intensity": 0.5},
  "lights": [{"pointLight": {"origin": {"y": 4}, "color": {"red": 1, "green": 1, "blue": 1}, "intensity": 1}}],
  "objects": [{"geometry": {"sphere": {"center": {}, "radius": 1}}, "material": {"diffuseColor": {"color": {"red": 1}}, "diffuseReflection": 1}}]
}`
	path := filepath.Join(dir, "one.json")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("Failed to write scene: %v", err)
	}

	s, err := createScene("ignored", path, 0, 0)
	if err != nil {
		t.Fatalf("createScene failed: %v", err)
	}
	if s.Camera.Width != 20 || s.Camera.Height != 10 {
		t.Errorf("Expected file resolution 20x10, got %dx%d", s.Camera.Width, s.Camera.Height)
	}

	s, err = createScene("ignored", path, 40, 0)
	if err != nil {
		t.Fatalf("createScene failed: %v", err)
	}
	if s.Camera.Width != 40 || s.Camera.Height != 10 {
		t.Errorf("Expected overridden resolution 40x10, got %dx%d", s.Camera.Width, s.Camera.Height)
	}

	if _, err := createScene("default", filepath.Join(dir, "missing.json"), 0, 0); err == nil {
		t.Error("Expected error for missing scene file")
	}
}

func TestUpscale(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(1, 0, color.RGBA{B: 255, A: 255})

	tests := []struct {
		name        string
		scale       int
		filter      string
		expectError bool
	}{
		{"identity", 1, "nearest", false},
		{"nearest x3", 3, "nearest", false},
		{"lanczos x2", 2, "lanczos", false},
		{"zero scale", 0, "nearest", true},
		{"unknown filter", 2, "bicubic-ish", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := upscale(img, tt.scale, tt.filter)
			if tt.expectError {
				if err == nil {
					t.Error("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			bounds := out.Bounds()
			if bounds.Dx() != 2*tt.scale || bounds.Dy() != tt.scale {
				t.Errorf("Expected %dx%d, got %dx%d", 2*tt.scale, tt.scale, bounds.Dx(), bounds.Dy())
			}
		})
	}

	// Nearest neighbour keeps hard pixel edges
	out, _ := upscale(img, 3, "nearest")
	r, _, b, _ := out.At(2, 2).RGBA()
	if r>>8 != 255 || b != 0 {
		t.Errorf("Expected pure red in the first enlarged pixel, got r=%d b=%d", r>>8, b>>8)
	}
}

func TestDefaultOutputPath(t *testing.T) {
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	got := defaultOutputPath("glass", "", now)
	want := filepath.Join("output", "glass", "render_20240506_070809.png")
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}

	got = defaultOutputPath("default", filepath.Join("scenes", "room.json"), now)
	want = filepath.Join("output", "room", "render_20240506_070809.png")
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestRunWritesPNG(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out", "render.png")
	config := Config{
		SceneType:  "default",
		Width:      16,
		Height:     9,
		MaxBounces: 2,
		NumWorkers: 2,
		Scale:      2,
		Filter:     "nearest",
		OutputFile: output,
	}

	if err := run(config); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	file, err := os.Open(output)
	if err != nil {
		t.Fatalf("Expected output file: %v", err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("Failed to decode output: %v", err)
	}
	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 18 {
		t.Errorf("Expected 32x18 image, got %v", img.Bounds())
	}
}
