// Package baker drives the bake: it validates the sampling configuration
// once, precomputes the mask and the wrap-padded pixel buffer, and then
// samples every mesh vertex's UV coordinate into its vertex color slot.
package baker

import (
	"fmt"

	"github.com/vertexbake/go-vertex-bake/pkg/core"
	"github.com/vertexbake/go-vertex-bake/pkg/mesh"
	"github.com/vertexbake/go-vertex-bake/pkg/sampler"
)

// taskChunkSize is the number of vertices per worker task
const taskChunkSize = 2048

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Options contains per-bake configuration. It is validated once when the
// Baker is constructed and immutable afterwards.
type Options struct {
	Radius    int           // neighborhood radius, >= 1
	Shape     sampler.Shape // weighting mask shape
	Overwrite bool          // replace existing vertex colors
	Workers   int           // parallel workers, 0 = one per CPU
}

// DefaultOptions returns sensible default values
func DefaultOptions() Options {
	return Options{
		Radius:    1,
		Shape:     sampler.ShapePoint,
		Overwrite: true,
		Workers:   0,
	}
}

// Progress is called after each completed vertex range
type Progress func(done, total int)

// Summary reports what a multi-mesh bake did
type Summary struct {
	Baked   int
	Skipped int
}

// Baker samples an image into mesh vertex colors. The mask and the padded
// pixel buffer are computed once at construction and shared read-only across
// all sampling calls; a Baker must not be mutated during a bake.
type Baker struct {
	opts     Options
	buf      *sampler.PixelBuffer
	mask     *sampler.Mask
	logger   core.Logger
	progress Progress
}

// New creates a Baker for one bake operation. All configuration errors
// (radius < 1, unknown shape, neighborhood larger than the image) surface
// here, before any per-vertex work.
func New(buf *sampler.PixelBuffer, opts Options, logger core.Logger) (*Baker, error) {
	if buf == nil || buf.Width <= 0 || buf.Height <= 0 {
		return nil, &sampler.ConfigError{Msg: "no image data"}
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	mask, err := sampler.BuildMask(opts.Shape, opts.Radius)
	if err != nil {
		return nil, err
	}
	if err := mask.CheckFit(buf.Width, buf.Height); err != nil {
		return nil, err
	}

	if !mask.IsPoint() {
		buf = buf.Padded(mask.Radius)
	}

	return &Baker{
		opts:   opts,
		buf:    buf,
		mask:   mask,
		logger: logger,
	}, nil
}

// SetProgress installs a progress callback invoked per completed vertex range
func (b *Baker) SetProgress(fn Progress) {
	b.progress = fn
}

// Bake samples the image into the mesh's vertex color slot. It returns
// (false, nil) when the mesh is skipped: no UV layer, or existing colors
// with Overwrite unset. A configuration error aborts before anything is
// written, so a failed bake never leaves partial colors behind.
func (b *Baker) Bake(m *mesh.Mesh) (bool, error) {
	if !m.HasUVs() {
		b.logger.Printf("UV map missing on %s, skipping\n", m.Name)
		return false, nil
	}
	if len(m.UVs) != m.VertexCount() {
		return false, fmt.Errorf("mesh %q: %d UVs for %d vertices", m.Name, len(m.UVs), m.VertexCount())
	}
	if m.HasColors() && !b.opts.Overwrite {
		b.logger.Printf("vertex colors already present on %s and overwrite disabled, skipping\n", m.Name)
		return false, nil
	}

	// Malformed UVs would wrap NaN into a valid-looking pixel index; fail
	// the whole bake instead.
	for i, uv := range m.UVs {
		if !uv.IsFinite() {
			return false, &sampler.ConfigError{
				Msg: fmt.Sprintf("mesh %q: non-finite UV (%v, %v) at vertex %d", m.Name, uv.U, uv.V, i),
			}
		}
	}

	colors := make([]core.Color, m.VertexCount())
	b.sampleAll(m.UVs, colors)
	m.Colors = colors
	return true, nil
}

// BakeAll bakes a sequence of meshes, skipping the unbakeable ones and
// aborting on the first configuration error
func (b *Baker) BakeAll(meshes []*mesh.Mesh) (Summary, error) {
	var summary Summary
	for _, m := range meshes {
		baked, err := b.Bake(m)
		if err != nil {
			return summary, err
		}
		if baked {
			summary.Baked++
		} else {
			summary.Skipped++
		}
	}
	return summary, nil
}

// sampleAll runs the worker pool over all vertices
func (b *Baker) sampleAll(uvs []core.Vec2, colors []core.Color) {
	total := len(uvs)
	if total == 0 {
		return
	}

	pool := NewWorkerPool(b.buf, b.mask, uvs, colors, b.opts.Workers)
	pool.Start()

	numTasks := 0
	for start := 0; start < total; start += taskChunkSize {
		end := min(start+taskChunkSize, total)
		pool.SubmitTask(VertexTask{Start: start, End: end, TaskID: numTasks})
		numTasks++
	}
	pool.Stop()

	done := 0
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		done += result.Count
		if b.progress != nil {
			b.progress(done, total)
		}
	}
}

// Mask exposes the precomputed mask (read-only), mainly for inspection
func (b *Baker) Mask() *sampler.Mask {
	return b.mask
}
