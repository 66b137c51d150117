package renderer

import (
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Pixel is an image coordinate, Y growing downwards
type Pixel struct {
	X, Y int
}

// PixelColor is the rendered color of one pixel
type PixelColor struct {
	Pixel Pixel
	Color core.Color
}

// PixelMap maps every rendered pixel to its color
type PixelMap map[Pixel]core.Color

// RenderConfig contains rendering configuration
type RenderConfig struct {
	MaxBounces int // Recursion budget for reflection and refraction
	NumWorkers int // Number of parallel workers (0 = use CPU count)
	BatchSize  int // Primary rays per worker task
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		MaxBounces: integrator.DefaultMaxBounces,
		NumWorkers: 0,
		BatchSize:  256,
	}
}

// Raytracer drives a full-frame render of a scene
type Raytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	config     RenderConfig
	workerPool *WorkerPool
	logger     core.Logger
}

// NewRaytracer creates a raytracer using the Whitted integrator. A nil logger discards output.
func NewRaytracer(s *scene.Scene, config RenderConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = discardLogger{}
	}
	return &Raytracer{
		scene:      s,
		integrator: integrator.NewWhittedIntegrator(config.MaxBounces),
		config:     config,
		workerPool: NewWorkerPool(config.NumWorkers),
		logger:     logger,
	}
}

// SetRenderConfig updates the configuration for subsequent passes
func (rt *Raytracer) SetRenderConfig(config RenderConfig) {
	rt.config = config
	rt.integrator = integrator.NewWhittedIntegrator(config.MaxBounces)
	rt.workerPool = NewWorkerPool(config.NumWorkers)
}

// Render traces one primary ray per camera pixel in parallel and collects the
// colors into a pixel map. A missing or stale spatial index is rebuilt first;
// the scene must not be modified until Render returns.
func (rt *Raytracer) Render() (PixelMap, RenderStats) {
	startTime := time.Now()
	stats := RenderStats{Workers: rt.workerPool.GetNumWorkers()}

	if rt.scene.EnsureIndex() {
		stats.IndexRebuilt = true
		treeStats := rt.scene.Index().Stats()
		rt.logger.Printf("Built kd-tree: %d nodes, %d leaves, depth %d, %d bounded objects\n",
			treeStats.TotalNodes, treeStats.LeafNodes, treeStats.MaxDepth, treeStats.BoundedCount)
	}

	viewport := rt.scene.Camera.GenerateViewport()
	tasks := splitTasks(viewport, rt.config.BatchSize)
	stats.Batches = len(tasks)

	rt.logger.Printf("Rendering %dx%d (%d objects, %d lights) with %d workers...\n",
		rt.scene.Camera.Width, rt.scene.Camera.Height, len(rt.scene.Objects), len(rt.scene.Lights), stats.Workers)

	results := rt.workerPool.Run(tasks, rt.renderTask)

	pixels := make(PixelMap, len(viewport))
	for _, result := range results {
		for _, pc := range result.Pixels {
			pixels[pc.Pixel] = pc.Color
		}
	}

	stats.TotalPixels = len(pixels)
	stats.Elapsed = time.Since(startTime)
	rt.logger.Printf("Render completed in %v\n", stats.Elapsed)

	return pixels, stats
}

// renderTask shades every ray of a task; it only reads the scene
func (rt *Raytracer) renderTask(task RenderTask) TaskResult {
	pixels := make([]PixelColor, len(task.Rays))
	for i, viewRay := range task.Rays {
		pixels[i] = PixelColor{
			Pixel: Pixel{X: viewRay.X, Y: viewRay.Y},
			Color: rt.integrator.RayColor(viewRay.Ray, rt.scene),
		}
	}
	return TaskResult{TaskID: task.TaskID, Pixels: pixels}
}

// Render renders a scene with the default configuration
func Render(s *scene.Scene) PixelMap {
	pixels, _ := NewRaytracer(s, DefaultRenderConfig(), nil).Render()
	return pixels
}
