package sampler

import (
	"github.com/vertexbake/go-vertex-bake/pkg/core"
)

// PixelBuffer is a row-major grid of RGBA float colors. Width and Height are
// the logical image dimensions used for UV mapping; Stride and Rows describe
// the physical extent, which is larger after wrap padding.
type PixelBuffer struct {
	Width  int
	Height int
	Stride int
	Rows   int
	Pixels []core.Color
}

// NewPixelBuffer creates a pixel buffer from a row-major color slice.
// len(pixels) must be width*height.
func NewPixelBuffer(width, height int, pixels []core.Color) *PixelBuffer {
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Stride: width,
		Rows:   height,
		Pixels: pixels,
	}
}

// FromRGBA reshapes a flat RGBA float array (the representation host image
// systems hand out, 4 floats per pixel) into a PixelBuffer.
func FromRGBA(flat []float32, width, height int) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, configErrorf("image dimensions must be positive, got %dx%d", width, height)
	}
	if len(flat) != width*height*4 {
		return nil, configErrorf("flat RGBA length %d does not match %dx%d image", len(flat), width, height)
	}
	pixels := make([]core.Color, width*height)
	for i := range pixels {
		p := i * 4
		pixels[i] = core.NewColor(flat[p], flat[p+1], flat[p+2], flat[p+3])
	}
	return NewPixelBuffer(width, height, pixels), nil
}

// At returns the color at (row, col). Indices must be within the physical
// extent (Rows x Stride).
func (b *PixelBuffer) At(row, col int) core.Color {
	return b.Pixels[row*b.Stride+col]
}

// Padded returns a new buffer with the first 2*radius rows replicated below
// the bottom edge and the first 2*radius columns replicated past the right
// edge. Neighborhood extraction can then stay modulo-free in the hot loop
// while preserving toroidal wraparound. Computed once per bake.
func (b *PixelBuffer) Padded(radius int) *PixelBuffer {
	pad := 2 * radius
	stride := b.Width + pad
	rows := b.Height + pad
	pixels := make([]core.Color, rows*stride)
	for row := 0; row < rows; row++ {
		srcRow := row % b.Height
		for col := 0; col < stride; col++ {
			pixels[row*stride+col] = b.At(srcRow, col%b.Width)
		}
	}
	return &PixelBuffer{
		Width:  b.Width,
		Height: b.Height,
		Stride: stride,
		Rows:   rows,
		Pixels: pixels,
	}
}
