package core

import (
	"github.com/chewxy/math32"
)

// Color is an RGBA color with float32 channels, nominally in [0, 1].
type Color struct {
	R, G, B, A float32
}

// NewColor creates a new Color
func NewColor(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Add returns the component-wise sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B, c.A + other.A}
}

// Scale returns the color with every channel multiplied by a scalar
func (c Color) Scale(s float32) Color {
	return Color{c.R * s, c.G * s, c.B * s, c.A * s}
}

// MultiplyColor returns component-wise multiplication of two colors
func (c Color) MultiplyColor(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B, c.A * other.A}
}

// Clamp returns a color with channels clamped to [minVal, maxVal]
func (c Color) Clamp(minVal, maxVal float32) Color {
	return Color{
		R: max(minVal, min(maxVal, c.R)),
		G: max(minVal, min(maxVal, c.G)),
		B: max(minVal, min(maxVal, c.B)),
		A: max(minVal, min(maxVal, c.A)),
	}
}

// Lerp linearly interpolates between c and other by t
func (c Color) Lerp(other Color, t float32) Color {
	return c.Scale(1 - t).Add(other.Scale(t))
}

// Equals checks exact channel equality
func (c Color) Equals(other Color) bool {
	return c.R == other.R && c.G == other.G && c.B == other.B && c.A == other.A
}

// ApproxEquals checks channel equality within a tolerance
func (c Color) ApproxEquals(other Color, tolerance float32) bool {
	return math32.Abs(c.R-other.R) <= tolerance &&
		math32.Abs(c.G-other.G) <= tolerance &&
		math32.Abs(c.B-other.B) <= tolerance &&
		math32.Abs(c.A-other.A) <= tolerance
}

// Luminance returns the perceptual luminance of the RGB channels
// Uses standard luminance weights: 0.299*R + 0.587*G + 0.114*B
func (c Color) Luminance() float32 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}
