package baker

import (
	"runtime"
	"sync"

	"github.com/vertexbake/go-vertex-bake/pkg/core"
	"github.com/vertexbake/go-vertex-bake/pkg/sampler"
)

// VertexTask represents a vertex-range sampling task for the worker pool
type VertexTask struct {
	Start  int // first vertex index in the range
	End    int // one past the last vertex index
	TaskID int
}

// VertexResult contains the result from sampling a vertex range
type VertexResult struct {
	TaskID int
	Count  int
}

// WorkerPool manages parallel vertex sampling. Sampling is embarrassingly
// parallel: the mask and pixel buffer are shared read-only and every task
// writes a disjoint slice of the color output.
type WorkerPool struct {
	taskQueue   chan VertexTask
	resultQueue chan VertexResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual vertex-range sampling tasks
type Worker struct {
	ID          int
	buf         *sampler.PixelBuffer
	mask        *sampler.Mask
	uvs         []core.Vec2
	colors      []core.Color
	taskQueue   chan VertexTask
	resultQueue chan VertexResult
}

// NewWorkerPool creates a worker pool sampling uvs into colors with the
// specified number of workers (0 means one per CPU)
func NewWorkerPool(buf *sampler.PixelBuffer, mask *sampler.Mask, uvs []core.Vec2, colors []core.Color, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	maxTasks := (len(uvs) + taskChunkSize - 1) / taskChunkSize

	wp := &WorkerPool{
		taskQueue:   make(chan VertexTask, maxTasks),
		resultQueue: make(chan VertexResult, maxTasks),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:          i,
			buf:         buf,
			mask:        mask,
			uvs:         uvs,
			colors:      colors,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		}
		wp.workers = append(wp.workers, worker)
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop signals that no more tasks are coming and waits for the workers to
// drain the queue
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask submits a vertex-range task to the worker pool
func (wp *WorkerPool) SubmitTask(task VertexTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed range result
func (wp *WorkerPool) GetResult() (VertexResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		// Each task owns a non-overlapping vertex range, so writing the
		// color slice directly is thread-safe.
		for i := task.Start; i < task.End; i++ {
			w.colors[i] = sampler.Sample(w.buf, w.uvs[i], w.mask)
		}

		w.resultQueue <- VertexResult{
			TaskID: task.TaskID,
			Count:  task.End - task.Start,
		}
	}
}
