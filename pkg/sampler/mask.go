package sampler

import (
	"fmt"
	"strings"
)

// Shape selects the weighting mask used for neighborhood averaging.
type Shape int

const (
	// ShapePoint samples the single pixel under the UV hit, no averaging.
	ShapePoint Shape = iota
	// ShapeSquare averages the full (2r-1)x(2r-1) neighborhood.
	ShapeSquare
	// ShapeCircle averages a disc inscribed in the square neighborhood.
	ShapeCircle
)

// String returns the lowercase name of the shape
func (s Shape) String() string {
	switch s {
	case ShapePoint:
		return "point"
	case ShapeSquare:
		return "square"
	case ShapeCircle:
		return "circle"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

// ParseShape parses a shape name as used in config files and CLI flags
func ParseShape(name string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "point":
		return ShapePoint, nil
	case "square":
		return ShapeSquare, nil
	case "circle":
		return ShapeCircle, nil
	default:
		return ShapePoint, configErrorf("unknown mask shape %q (want point, square or circle)", name)
	}
}

// Mask is a DxD weight grid centered on the pixel containing the UV hit,
// D = 2*radius - 1. Sum is the averaging divisor. A mask is built once per
// bake and shared read-only across all sampling calls.
type Mask struct {
	Shape   Shape
	Radius  int
	D       int
	Weights []float32
	Sum     float32
}

// BuildMask builds the weight grid for a shape and radius.
// Returns a *ConfigError if radius < 1 or the shape is unknown.
func BuildMask(shape Shape, radius int) (*Mask, error) {
	if radius < 1 {
		return nil, configErrorf("sample radius must be >= 1, got %d", radius)
	}

	// Point ignores the radius: a 1x1 all-ones mask.
	if shape == ShapePoint {
		return &Mask{Shape: ShapePoint, Radius: 1, D: 1, Weights: []float32{1}, Sum: 1}, nil
	}

	d := 2*radius - 1
	m := &Mask{
		Shape:   shape,
		Radius:  radius,
		D:       d,
		Weights: make([]float32, d*d),
	}

	switch shape {
	case ShapeSquare:
		for i := range m.Weights {
			m.Weights[i] = 1
		}
		m.Sum = float32(d * d)
		return m, nil
	case ShapeCircle:
		// Cell (i, j) is on iff its center-relative offset lies inside the
		// disc of radius r-1 (the mask's center-to-edge distance). The
		// center row and column are always fully on, so Sum >= D, and the
		// corners are off for radius >= 2, so Sum < D*D. This is one of
		// several workable circle rasterization rules; it is chosen for
		// 4-fold symmetry and monotonic growth toward the center.
		rr := (radius - 1) * (radius - 1)
		count := 0
		for i := 0; i < d; i++ {
			di := i - (radius - 1)
			for j := 0; j < d; j++ {
				dj := j - (radius - 1)
				if di*di+dj*dj <= rr {
					m.Weights[i*d+j] = 1
					count++
				}
			}
		}
		m.Sum = float32(count)
		return m, nil
	default:
		return nil, configErrorf("unknown mask shape %d", int(shape))
	}
}

// IsPoint reports whether the mask is a single-pixel lookup
func (m *Mask) IsPoint() bool {
	return m.Shape == ShapePoint
}

// CheckFit verifies that the neighborhood diameter fits the image: D-1 must
// not exceed either dimension, or the wrap-padded window would sample some
// pixels twice. Returns a *ConfigError on violation.
func (m *Mask) CheckFit(width, height int) error {
	if m.D-1 > width || m.D-1 > height {
		return configErrorf("mask diameter %d too large for %dx%d image (max radius %d)",
			m.D, width, height, (min(width, height)+2)/2)
	}
	return nil
}
