package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/vertexbake/go-vertex-bake/pkg/mesh"
)

// SavePLY writes a mesh to a binary little-endian PLY file, including
// normals and UVs when present and the baked vertex colors as
// red/green/blue/alpha uchar properties.
func SavePLY(filename string, m *mesh.Mesh) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create PLY file: %w", err)
	}
	defer file.Close()

	if err := WritePLY(file, m); err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	return nil
}

// WritePLY writes a mesh to a stream in binary little-endian PLY format
func WritePLY(w io.Writer, m *mesh.Mesh) error {
	if err := m.Validate(); err != nil {
		return err
	}

	writer := bufio.NewWriter(w)

	fmt.Fprintf(writer, "ply\n")
	fmt.Fprintf(writer, "format binary_little_endian 1.0\n")
	fmt.Fprintf(writer, "comment created by go-vertex-bake\n")
	fmt.Fprintf(writer, "element vertex %d\n", m.VertexCount())
	fmt.Fprintf(writer, "property float x\n")
	fmt.Fprintf(writer, "property float y\n")
	fmt.Fprintf(writer, "property float z\n")
	if m.HasNormals() {
		fmt.Fprintf(writer, "property float nx\n")
		fmt.Fprintf(writer, "property float ny\n")
		fmt.Fprintf(writer, "property float nz\n")
	}
	if m.HasUVs() {
		fmt.Fprintf(writer, "property float u\n")
		fmt.Fprintf(writer, "property float v\n")
	}
	if m.HasColors() {
		fmt.Fprintf(writer, "property uchar red\n")
		fmt.Fprintf(writer, "property uchar green\n")
		fmt.Fprintf(writer, "property uchar blue\n")
		fmt.Fprintf(writer, "property uchar alpha\n")
	}
	fmt.Fprintf(writer, "element face %d\n", len(m.Faces)/3)
	fmt.Fprintf(writer, "property list uchar int vertex_indices\n")
	fmt.Fprintf(writer, "end_header\n")

	for i := range m.Positions {
		writeFloat32(writer, m.Positions[i].X)
		writeFloat32(writer, m.Positions[i].Y)
		writeFloat32(writer, m.Positions[i].Z)
		if m.HasNormals() {
			writeFloat32(writer, m.Normals[i].X)
			writeFloat32(writer, m.Normals[i].Y)
			writeFloat32(writer, m.Normals[i].Z)
		}
		if m.HasUVs() {
			writeFloat32(writer, m.UVs[i].U)
			writeFloat32(writer, m.UVs[i].V)
		}
		if m.HasColors() {
			c := m.Colors[i].Clamp(0, 1)
			writer.WriteByte(channelToByte(c.R))
			writer.WriteByte(channelToByte(c.G))
			writer.WriteByte(channelToByte(c.B))
			writer.WriteByte(channelToByte(c.A))
		}
	}

	for i := 0; i < len(m.Faces); i += 3 {
		writer.WriteByte(3)
		for k := 0; k < 3; k++ {
			var buf [4]byte
			binary.LittleEndian.PutUint32(buf[:], uint32(int32(m.Faces[i+k])))
			writer.Write(buf[:])
		}
	}

	return writer.Flush()
}

// writeFloat32 writes a little-endian float32
func writeFloat32(writer *bufio.Writer, value float32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], math.Float32bits(value))
	writer.Write(buf[:])
}

// channelToByte converts a [0,1] color channel to its uchar representation
func channelToByte(value float32) byte {
	return byte(value*255 + 0.5)
}
