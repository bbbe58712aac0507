package core

import (
	"github.com/chewxy/math32"
)

// Vec2 represents a UV coordinate on a mesh surface
type Vec2 struct {
	U, V float32
}

// NewVec2 creates a new Vec2
func NewVec2(u, v float32) Vec2 {
	return Vec2{U: u, V: v}
}

// Add returns the sum of two UV coordinates
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.U + other.U, v.V + other.V}
}

// Scale returns the coordinate scaled by a scalar
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.U * s, v.V * s}
}

// IsFinite reports whether both components are finite (not NaN, not Inf)
func (v Vec2) IsFinite() bool {
	return !math32.IsNaN(v.U) && !math32.IsInf(v.U, 0) &&
		!math32.IsNaN(v.V) && !math32.IsInf(v.V, 0)
}

// Vec3 represents a 3D position or normal vector
type Vec3 struct {
	X, Y, Z float32
}

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Subtract returns the difference of two vectors
func (v Vec3) Subtract(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Multiply returns the vector scaled by a scalar
func (v Vec3) Multiply(scalar float32) Vec3 {
	return Vec3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// Length returns the magnitude of the vector
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Normalize returns a unit vector in the same direction
func (v Vec3) Normalize() Vec3 {
	length := v.Length()
	if length == 0 {
		return Vec3{0, 0, 0}
	}
	return Vec3{v.X / length, v.Y / length, v.Z / length}
}
