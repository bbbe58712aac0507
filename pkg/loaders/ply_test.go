package loaders

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/vertexbake/go-vertex-bake/pkg/core"
	"github.com/vertexbake/go-vertex-bake/pkg/mesh"
)

// createTestPLY writes a simple 4-vertex, 2-triangle PLY file for testing
func createTestPLY(t *testing.T, filename string, includeUVs bool, includeColors bool) {
	t.Helper()
	var buf bytes.Buffer

	buf.WriteString("ply\n")
	buf.WriteString("format binary_little_endian 1.0\n")
	buf.WriteString("comment test fixture\n")
	buf.WriteString("element vertex 4\n")
	buf.WriteString("property float x\n")
	buf.WriteString("property float y\n")
	buf.WriteString("property float z\n")
	if includeUVs {
		buf.WriteString("property float s\n")
		buf.WriteString("property float t\n")
	}
	if includeColors {
		buf.WriteString("property uchar red\n")
		buf.WriteString("property uchar green\n")
		buf.WriteString("property uchar blue\n")
	}
	buf.WriteString("element face 2\n")
	buf.WriteString("property list uchar int vertex_indices\n")
	buf.WriteString("end_header\n")

	// 4 vertices forming a unit square in the XY plane
	vertices := []struct {
		x, y, z float32
		u, v    float32
		r, g, b uint8
	}{
		{0, 0, 0, 0, 0, 255, 0, 0},
		{1, 0, 0, 1, 0, 0, 255, 0},
		{1, 1, 0, 1, 1, 0, 0, 255},
		{0, 1, 0, 0, 1, 255, 255, 0},
	}
	for _, v := range vertices {
		binary.Write(&buf, binary.LittleEndian, v.x)
		binary.Write(&buf, binary.LittleEndian, v.y)
		binary.Write(&buf, binary.LittleEndian, v.z)
		if includeUVs {
			binary.Write(&buf, binary.LittleEndian, v.u)
			binary.Write(&buf, binary.LittleEndian, v.v)
		}
		if includeColors {
			buf.WriteByte(v.r)
			buf.WriteByte(v.g)
			buf.WriteByte(v.b)
		}
	}

	faces := [][3]int32{{0, 1, 2}, {0, 2, 3}}
	for _, f := range faces {
		buf.WriteByte(3)
		binary.Write(&buf, binary.LittleEndian, f)
	}

	if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		t.Fatalf("failed to write test PLY: %v", err)
	}
}

// TestLoadPLY tests loading positions, UVs and colors
func TestLoadPLY(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "square.ply")
	createTestPLY(t, filename, true, true)

	m, err := LoadPLY(filename)
	if err != nil {
		t.Fatalf("LoadPLY failed: %v", err)
	}

	if m.Name != "square" {
		t.Errorf("mesh name = %q, want square", m.Name)
	}
	if m.VertexCount() != 4 {
		t.Fatalf("vertex count = %d, want 4", m.VertexCount())
	}
	if len(m.Faces) != 6 {
		t.Fatalf("face index count = %d, want 6", len(m.Faces))
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("loaded mesh invalid: %v", err)
	}

	if m.Positions[2] != core.NewVec3(1, 1, 0) {
		t.Errorf("position 2 = %v", m.Positions[2])
	}
	if !m.HasUVs() {
		t.Fatal("UV layer missing")
	}
	if m.UVs[1] != core.NewVec2(1, 0) {
		t.Errorf("UV 1 = %v", m.UVs[1])
	}
	if !m.HasColors() {
		t.Fatal("color layer missing")
	}
	// No alpha property: alpha defaults to 1.
	if !m.Colors[0].Equals(core.NewColor(1, 0, 0, 1)) {
		t.Errorf("color 0 = %v", m.Colors[0])
	}
	if m.Faces[3] != 0 || m.Faces[4] != 2 || m.Faces[5] != 3 {
		t.Errorf("second face = %v", m.Faces[3:6])
	}
}

// TestLoadPLYWithoutOptionalLayers tests a positions-only mesh
func TestLoadPLYWithoutOptionalLayers(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "bare.ply")
	createTestPLY(t, filename, false, false)

	m, err := LoadPLY(filename)
	if err != nil {
		t.Fatalf("LoadPLY failed: %v", err)
	}
	if m.HasUVs() || m.HasColors() {
		t.Errorf("unexpected attribute layers: UVs=%v colors=%v", m.HasUVs(), m.HasColors())
	}
}

// TestReadPLYRejectsUnsupportedFormat tests format validation
func TestReadPLYRejectsUnsupportedFormat(t *testing.T) {
	for _, format := range []string{"ascii", "binary_big_endian"} {
		header := "ply\nformat " + format + " 1.0\nelement vertex 0\nelement face 0\nend_header\n"
		_, err := ReadPLY(bytes.NewReader([]byte(header)))
		if err == nil {
			t.Errorf("format %s: expected error", format)
		}
	}
}

// TestReadPLYRejectsNonTriangles tests the triangles-only restriction
func TestReadPLYRejectsNonTriangles(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("ply\nformat binary_little_endian 1.0\n")
	buf.WriteString("element vertex 4\n")
	buf.WriteString("property float x\nproperty float y\nproperty float z\n")
	buf.WriteString("element face 1\n")
	buf.WriteString("property list uchar int vertex_indices\n")
	buf.WriteString("end_header\n")
	for i := 0; i < 4; i++ {
		binary.Write(&buf, binary.LittleEndian, [3]float32{})
	}
	buf.WriteByte(4) // quad
	binary.Write(&buf, binary.LittleEndian, [4]int32{0, 1, 2, 3})

	_, err := ReadPLY(&buf)
	if err == nil {
		t.Fatal("expected error for quad face")
	}
}

// TestPLYRoundTrip tests that WritePLY output loads back identically
func TestPLYRoundTrip(t *testing.T) {
	original := &mesh.Mesh{
		Name: "roundtrip",
		Positions: []core.Vec3{
			core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0),
		},
		Normals: []core.Vec3{
			core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1),
		},
		UVs: []core.Vec2{
			core.NewVec2(0, 0), core.NewVec2(0.5, 0), core.NewVec2(0, 0.5),
		},
		Colors: []core.Color{
			core.NewColor(1, 0, 0, 1), core.NewColor(0, 1, 0, 0.5), core.NewColor(0, 0, 1, 0),
		},
		Faces: []int{0, 1, 2},
	}

	var buf bytes.Buffer
	if err := WritePLY(&buf, original); err != nil {
		t.Fatalf("WritePLY failed: %v", err)
	}

	loaded, err := ReadPLY(&buf)
	if err != nil {
		t.Fatalf("ReadPLY failed: %v", err)
	}

	if loaded.VertexCount() != 3 || len(loaded.Faces) != 3 {
		t.Fatalf("unexpected mesh size: %d vertices, %d face indices", loaded.VertexCount(), len(loaded.Faces))
	}
	for i := range original.Positions {
		if loaded.Positions[i] != original.Positions[i] {
			t.Errorf("position %d = %v, want %v", i, loaded.Positions[i], original.Positions[i])
		}
		if loaded.Normals[i] != original.Normals[i] {
			t.Errorf("normal %d = %v, want %v", i, loaded.Normals[i], original.Normals[i])
		}
		if loaded.UVs[i] != original.UVs[i] {
			t.Errorf("UV %d = %v, want %v", i, loaded.UVs[i], original.UVs[i])
		}
		// Colors pass through a uchar quantization step.
		if !loaded.Colors[i].ApproxEquals(original.Colors[i], 1.0/255.0) {
			t.Errorf("color %d = %v, want ~%v", i, loaded.Colors[i], original.Colors[i])
		}
	}
}

// TestSavePLY tests the file-level save and reload path
func TestSavePLY(t *testing.T) {
	m := &mesh.Mesh{
		Name:      "saved",
		Positions: []core.Vec3{core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)},
		Colors:    []core.Color{{A: 1}, {R: 1, A: 1}, {G: 1, A: 1}},
		Faces:     []int{0, 1, 2},
	}

	filename := filepath.Join(t.TempDir(), "saved.ply")
	if err := SavePLY(filename, m); err != nil {
		t.Fatalf("SavePLY failed: %v", err)
	}

	loaded, err := LoadPLY(filename)
	if err != nil {
		t.Fatalf("LoadPLY failed: %v", err)
	}
	if loaded.VertexCount() != 3 || !loaded.HasColors() {
		t.Fatalf("reloaded mesh lost data: %d vertices, colors=%v", loaded.VertexCount(), loaded.HasColors())
	}
	if !loaded.Colors[1].Equals(core.NewColor(1, 0, 0, 1)) {
		t.Errorf("color 1 = %v", loaded.Colors[1])
	}
}
