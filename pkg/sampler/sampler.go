// Package sampler maps mesh UV coordinates to image pixels and computes
// averaged colors over configurable neighborhoods with toroidal wraparound
// at the image borders. It is the numerical core of the bake pipeline: pure,
// stateless and safe to call concurrently.
package sampler

import (
	"math"

	"github.com/vertexbake/go-vertex-bake/pkg/core"
)

// PixelCoords maps a UV coordinate to integer pixel indices:
// row = floor(v*height) mod height, col = floor(u*width) mod width, with the
// mathematical (non-negative) modulo so negative and >1 UVs wrap correctly.
// Any finite UV is valid input; NaN/Inf must be rejected by the caller.
func PixelCoords(uv core.Vec2, width, height int) (row, col int) {
	return wrapIndex(uv.V, height), wrapIndex(uv.U, width)
}

// wrapIndex computes floor(t*n) mod n. The modulo is taken in float space
// before the int conversion so that very large finite t cannot overflow,
// and in float64 so that t*n itself cannot overflow float32.
func wrapIndex(t float32, n int) int {
	fn := float64(n)
	f := math.Mod(float64(t)*fn, fn)
	if f < 0 {
		f += fn
	}
	i := int(f)
	// f can round up to exactly fn for tiny negative t*fn
	if i >= n {
		i = 0
	}
	return i
}

// Sample returns the mask-weighted average color of the neighborhood around
// the pixel hit by uv. Point masks (and nil) take the exact single-pixel
// path. For non-point masks the buffer must already carry wrap padding for
// the mask's radius (see PixelBuffer.Padded); the caller is responsible for
// validating the configuration (Mask.CheckFit) and UV finiteness up front.
// Given well-formed inputs, Sample never fails.
func Sample(buf *PixelBuffer, uv core.Vec2, mask *Mask) core.Color {
	row, col := PixelCoords(uv, buf.Width, buf.Height)
	if mask == nil || mask.IsPoint() {
		return buf.At(row, col)
	}

	// Anchor the DxD window so the mask is centered on the hit pixel. The
	// modulo uses the logical dimensions; the wrap padding guarantees the
	// window never leaves the physical extent.
	r := mask.Radius
	anchorRow := wrapInt(row+1-r, buf.Height)
	anchorCol := wrapInt(col+1-r, buf.Width)

	var sum core.Color
	for i := 0; i < mask.D; i++ {
		rowBase := (anchorRow+i)*buf.Stride + anchorCol
		maskBase := i * mask.D
		for j := 0; j < mask.D; j++ {
			w := mask.Weights[maskBase+j]
			if w == 0 {
				continue
			}
			sum = sum.Add(buf.Pixels[rowBase+j].Scale(w))
		}
	}
	// Divide rather than multiply by a reciprocal: keeps uniform
	// neighborhoods exact (N*C / N == C).
	return core.NewColor(sum.R/mask.Sum, sum.G/mask.Sum, sum.B/mask.Sum, sum.A/mask.Sum)
}

// wrapInt computes the mathematical modulo x mod n for n > 0
func wrapInt(x, n int) int {
	x %= n
	if x < 0 {
		x += n
	}
	return x
}
