package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/vertexbake/go-vertex-bake/pkg/core"
	"github.com/vertexbake/go-vertex-bake/pkg/sampler"
)

// ImageOptions controls image preprocessing before sampling
type ImageOptions struct {
	// MaxSize caps the longest image edge; larger images are downscaled
	// before the bake. 0 disables downscaling.
	MaxSize int
}

// LoadImage loads an image file into a pixel buffer of RGBA float colors.
// Rows are stored bottom-up, so v=0 addresses the bottom of the picture (the
// UV convention of the mesh tools this bakes for).
func LoadImage(filename string, opts ImageOptions) (*sampler.PixelBuffer, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filename, err)
	}

	return FromImage(img, opts)
}

// FromImage converts a decoded image into a pixel buffer, applying the
// optional downscale. Rows are stored bottom-up (see LoadImage).
func FromImage(img image.Image, opts ImageOptions) (*sampler.PixelBuffer, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return nil, &sampler.ConfigError{Msg: fmt.Sprintf("image has no pixel data (%dx%d)", width, height)}
	}

	if opts.MaxSize > 0 && (width > opts.MaxSize || height > opts.MaxSize) {
		width, height = fitSize(width, height, opts.MaxSize)
		img = transform.Resize(img, width, height, transform.Linear)
		bounds = img.Bounds()
	}

	pixels := make([]core.Color, width*height)
	for y := 0; y < height; y++ {
		// Flip vertically: image files are stored top-down.
		dst := (height - 1 - y) * width
		for x := 0; x < width; x++ {
			r, g, b, a := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[dst+x] = core.NewColor(
				float32(r)/65535.0,
				float32(g)/65535.0,
				float32(b)/65535.0,
				float32(a)/65535.0,
			)
		}
	}

	return sampler.NewPixelBuffer(width, height, pixels), nil
}

// fitSize scales (width, height) down so the longest edge equals maxSize,
// preserving aspect ratio and keeping both dimensions at least 1
func fitSize(width, height, maxSize int) (int, int) {
	if width >= height {
		return maxSize, max(height*maxSize/width, 1)
	}
	return max(width*maxSize/height, 1), maxSize
}
