package renderer

import "time"

// RenderStats contains statistics about one render pass
type RenderStats struct {
	TotalPixels  int           // Number of pixels rendered
	Batches      int           // Number of work items handed to the pool
	Workers      int           // Maximum concurrent workers
	IndexRebuilt bool          // Whether the spatial index was rebuilt before the pass
	Elapsed      time.Duration // Wall time of the pass
}
