package renderer

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// RenderTask is a batch of primary rays rendered by one worker
type RenderTask struct {
	TaskID int
	Rays   []geometry.ViewRay
}

// TaskResult holds the colors computed for one task, in ray order
type TaskResult struct {
	TaskID int
	Pixels []PixelColor
}

// WorkerPool runs independent render tasks with bounded parallelism
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a pool; numWorkers <= 0 uses the CPU count
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run renders every task and returns the results indexed by task position.
// Each task writes only its own result slot, so no locking is needed.
func (wp *WorkerPool) Run(tasks []RenderTask, render func(RenderTask) TaskResult) []TaskResult {
	results := make([]TaskResult, len(tasks))

	var g errgroup.Group
	g.SetLimit(wp.numWorkers)
	for i, task := range tasks {
		i, task := i, task // per-iteration copies (go directive < 1.22)
		g.Go(func() error {
			results[i] = render(task)
			return nil
		})
	}
	// Tasks never fail; Wait only joins them
	_ = g.Wait()

	return results
}

// splitTasks cuts the viewport into batches of at most batchSize rays
func splitTasks(viewport []geometry.ViewRay, batchSize int) []RenderTask {
	if batchSize <= 0 {
		batchSize = len(viewport)
	}
	tasks := make([]RenderTask, 0, (len(viewport)+batchSize-1)/max(batchSize, 1))
	for start := 0; start < len(viewport); start += batchSize {
		end := min(start+batchSize, len(viewport))
		tasks = append(tasks, RenderTask{TaskID: len(tasks), Rays: viewport[start:end]})
	}
	return tasks
}
