// Package mesh holds the triangle mesh attribute model consumed by the bake
// pipeline: positions and faces plus the per-vertex UV layer the sampler
// reads and the per-vertex color slot the baker writes.
package mesh

import (
	"fmt"

	"github.com/vertexbake/go-vertex-bake/pkg/core"
)

// Mesh is a triangle mesh with optional per-vertex attribute layers.
// Attribute slices are either empty or exactly len(Positions) long.
type Mesh struct {
	Name      string
	Positions []core.Vec3
	Normals   []core.Vec3
	UVs       []core.Vec2
	Colors    []core.Color
	Faces     []int // triangle vertex indices, 3 per face
}

// VertexCount returns the number of vertices
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// HasNormals reports whether the mesh carries per-vertex normals
func (m *Mesh) HasNormals() bool {
	return len(m.Normals) > 0
}

// HasUVs reports whether the mesh carries a UV layer
func (m *Mesh) HasUVs() bool {
	return len(m.UVs) > 0
}

// HasColors reports whether the mesh carries a vertex color layer
func (m *Mesh) HasColors() bool {
	return len(m.Colors) > 0
}

// EnsureColors allocates the vertex color slot if it is missing
func (m *Mesh) EnsureColors() {
	if len(m.Colors) != len(m.Positions) {
		m.Colors = make([]core.Color, len(m.Positions))
	}
}

// Validate checks attribute layer lengths and face index ranges
func (m *Mesh) Validate() error {
	n := len(m.Positions)
	if len(m.Normals) != 0 && len(m.Normals) != n {
		return fmt.Errorf("mesh %q: %d normals for %d vertices", m.Name, len(m.Normals), n)
	}
	if len(m.UVs) != 0 && len(m.UVs) != n {
		return fmt.Errorf("mesh %q: %d UVs for %d vertices", m.Name, len(m.UVs), n)
	}
	if len(m.Colors) != 0 && len(m.Colors) != n {
		return fmt.Errorf("mesh %q: %d colors for %d vertices", m.Name, len(m.Colors), n)
	}
	if len(m.Faces)%3 != 0 {
		return fmt.Errorf("mesh %q: face index count %d not a multiple of 3", m.Name, len(m.Faces))
	}
	for i, idx := range m.Faces {
		if idx < 0 || idx >= n {
			return fmt.Errorf("mesh %q: face index %d out of range at position %d", m.Name, idx, i)
		}
	}
	return nil
}
