package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nfnt/resize"

	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Config holds the command line options
type Config struct {
	SceneType  string
	InputFile  string
	Width      int
	Height     int
	MaxBounces int
	NumWorkers int
	Scale      int
	Filter     string
	OutputFile string
}

func main() {
	config, help := parseFlags()

	if help {
		showHelp()
		return
	}

	if err := run(config); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (Config, bool) {
	defaults := renderer.DefaultRenderConfig()

	config := Config{}
	flag.StringVar(&config.SceneType, "scene", "default", "Built-in scene: 'default', 'glass' or 'mesh'")
	flag.StringVar(&config.InputFile, "input", "", "JSON scene file (overrides -scene)")
	flag.IntVar(&config.Width, "width", 0, "Image width (0 = scene default)")
	flag.IntVar(&config.Height, "height", 0, "Image height (0 = scene default)")
	flag.IntVar(&config.MaxBounces, "bounces", defaults.MaxBounces, "Maximum reflection/refraction bounces")
	flag.IntVar(&config.NumWorkers, "workers", defaults.NumWorkers, "Number of parallel workers (0 = CPU count)")
	flag.IntVar(&config.Scale, "scale", 1, "Integer upscale factor applied to the saved image")
	flag.StringVar(&config.Filter, "filter", "nearest", "Upscale filter: 'nearest' or 'lanczos'")
	flag.StringVar(&config.OutputFile, "output", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	return config, *help
}

func showHelp() {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Printf("  %-8s - %s\n", info.ID, info.Description)
	}
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene_type>/render_<timestamp>.png")
}

func run(config Config) error {
	logger := renderer.NewDefaultLogger()
	logger.Printf("Starting Whitted Raytracer...\n")

	selectedScene, err := createScene(config.SceneType, config.InputFile, config.Width, config.Height)
	if err != nil {
		return err
	}

	renderConfig := renderer.DefaultRenderConfig()
	renderConfig.MaxBounces = config.MaxBounces
	renderConfig.NumWorkers = config.NumWorkers

	raytracer := renderer.NewRaytracer(selectedScene, renderConfig, logger)
	pixels, stats := raytracer.Render()
	logger.Printf("Rendered %d pixels in %d batches\n", stats.TotalPixels, stats.Batches)

	img, err := upscale(renderer.ToImage(pixels, selectedScene.Camera.Width, selectedScene.Camera.Height), config.Scale, config.Filter)
	if err != nil {
		return err
	}

	filename := config.OutputFile
	if filename == "" {
		filename = defaultOutputPath(config.SceneType, config.InputFile, time.Now())
	}
	if err := savePNG(filename, img); err != nil {
		return err
	}

	logger.Printf("Render saved as %s\n", filename)
	return nil
}

// createScene loads the JSON file when input is set, otherwise builds a
// preset. Non-zero width and height override the camera resolution.
func createScene(sceneType, input string, width, height int) (*scene.Scene, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("invalid resolution %dx%d", width, height)
	}

	if input != "" {
		s, err := loaders.LoadSceneJSON(input)
		if err != nil {
			return nil, err
		}
		if width > 0 || height > 0 {
			w, h := s.Camera.Width, s.Camera.Height
			if width > 0 {
				w = width
			}
			if height > 0 {
				h = height
			}
			s.Camera = s.Camera.WithResolution(w, h)
		}
		return s, nil
	}

	if width == 0 {
		width = 400
	}
	if height == 0 {
		height = width * 9 / 16
	}
	return scene.NewSceneByName(sceneType, width, height)
}

// upscale enlarges the image by an integer factor
func upscale(img image.Image, scale int, filter string) (image.Image, error) {
	if scale < 1 {
		return nil, fmt.Errorf("scale must be at least 1, got %d", scale)
	}
	if scale == 1 {
		return img, nil
	}

	var interp resize.InterpolationFunction
	switch strings.ToLower(filter) {
	case "nearest":
		interp = resize.NearestNeighbor
	case "lanczos":
		interp = resize.Lanczos3
	default:
		return nil, fmt.Errorf("unknown filter: %s", filter)
	}

	bounds := img.Bounds()
	return resize.Resize(uint(bounds.Dx()*scale), uint(bounds.Dy()*scale), img, interp), nil
}

func defaultOutputPath(sceneType, input string, now time.Time) string {
	name := sceneType
	if input != "" {
		name = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	}
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", name, fmt.Sprintf("render_%s.png", timestamp))
}

func savePNG(filename string, img image.Image) error {
	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %v", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating file: %v", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("error saving PNG: %v", err)
	}
	return nil
}
