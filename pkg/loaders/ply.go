package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vertexbake/go-vertex-bake/pkg/core"
	"github.com/vertexbake/go-vertex-bake/pkg/mesh"
)

// plyProperty represents a property definition in the PLY header
type plyProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // for list properties, the type of the count
	DataType string // for list properties, the type of the elements
}

// plyHeader represents the parsed header of a PLY file
type plyHeader struct {
	Format      string
	VertexCount int
	FaceCount   int
	VertexProps []plyProperty
	FaceProps   []plyProperty
}

// LoadPLY loads a binary little-endian PLY file into a mesh. Recognized
// per-vertex properties are positions (x/y/z), normals (nx/ny/nz), texture
// coordinates (u/v, s/t or texture_u/texture_v) and uchar colors
// (red/green/blue and optional alpha); everything else is skipped. Faces
// must be triangles.
func LoadPLY(filename string) (*mesh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	m, err := ReadPLY(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	m.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return m, nil
}

// ReadPLY reads PLY data from a stream
func ReadPLY(r io.Reader) (*mesh.Mesh, error) {
	reader := bufio.NewReaderSize(r, 1024*1024)

	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}
	if header.Format != "binary_little_endian" {
		return nil, fmt.Errorf("unsupported PLY format: %s", header.Format)
	}

	m, err := readVertices(reader, header)
	if err != nil {
		return nil, fmt.Errorf("failed to read vertex data: %w", err)
	}

	if err := readFaces(reader, header, m); err != nil {
		return nil, fmt.Errorf("failed to read face data: %w", err)
	}

	return m, nil
}

// parsePLYHeader parses the PLY header lines up to end_header
func parsePLYHeader(reader *bufio.Reader) (*plyHeader, error) {
	header := &plyHeader{}
	currentElement := ""

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("unexpected end of header: %w", err)
		}
		line = strings.TrimSpace(line)

		if line == "end_header" {
			break
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "ply", "comment", "obj_info":
			// Magic number already implied; comments ignored.
		case "format":
			if len(parts) < 2 {
				return nil, fmt.Errorf("invalid format line: %q", line)
			}
			header.Format = parts[1]
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element line: %q", line)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil {
				return nil, fmt.Errorf("invalid element count: %s", parts[2])
			}
			currentElement = parts[1]
			switch currentElement {
			case "vertex":
				header.VertexCount = count
			case "face":
				header.FaceCount = count
			}
		case "property":
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}
			switch currentElement {
			case "vertex":
				header.VertexProps = append(header.VertexProps, prop)
			case "face":
				header.FaceProps = append(header.FaceProps, prop)
			}
		}
	}

	return header, nil
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (plyProperty, error) {
	if len(parts) < 2 {
		return plyProperty{}, fmt.Errorf("invalid property definition")
	}
	if parts[0] == "list" {
		if len(parts) < 4 {
			return plyProperty{}, fmt.Errorf("invalid list property definition")
		}
		return plyProperty{
			IsList:   true,
			ListType: parts[1],
			DataType: parts[2],
			Name:     parts[3],
		}, nil
	}
	return plyProperty{Type: parts[0], Name: parts[1]}, nil
}

// readVertices reads the vertex element block into mesh attribute layers
func readVertices(reader *bufio.Reader, header *plyHeader) (*mesh.Mesh, error) {
	vertexSize := 0
	for _, prop := range header.VertexProps {
		if prop.IsList {
			return nil, fmt.Errorf("list-typed vertex property %q not supported", prop.Name)
		}
		vertexSize += plyTypeSize(prop.Type)
	}

	hasNormals := hasVertexProp(header, "nx")
	hasUVs := hasVertexProp(header, "u") || hasVertexProp(header, "s") || hasVertexProp(header, "texture_u")
	hasColors := hasVertexProp(header, "red") || hasVertexProp(header, "r")
	hasAlpha := hasVertexProp(header, "alpha")

	m := &mesh.Mesh{
		Positions: make([]core.Vec3, 0, header.VertexCount),
	}
	if hasNormals {
		m.Normals = make([]core.Vec3, 0, header.VertexCount)
	}
	if hasUVs {
		m.UVs = make([]core.Vec2, 0, header.VertexCount)
	}
	if hasColors {
		m.Colors = make([]core.Color, 0, header.VertexCount)
	}

	data := make([]byte, vertexSize*header.VertexCount)
	if _, err := io.ReadFull(reader, data); err != nil {
		return nil, err
	}

	for i := 0; i < header.VertexCount; i++ {
		var pos, normal core.Vec3
		var uv core.Vec2
		color := core.NewColor(0, 0, 0, 1)

		offset := i * vertexSize
		for _, prop := range header.VertexProps {
			size := plyTypeSize(prop.Type)
			field := data[offset : offset+size]
			offset += size

			switch prop.Type {
			case "float", "float32":
				value := math.Float32frombits(binary.LittleEndian.Uint32(field))
				switch prop.Name {
				case "x":
					pos.X = value
				case "y":
					pos.Y = value
				case "z":
					pos.Z = value
				case "nx":
					normal.X = value
				case "ny":
					normal.Y = value
				case "nz":
					normal.Z = value
				case "u", "s", "texture_u":
					uv.U = value
				case "v", "t", "texture_v":
					uv.V = value
				}
			case "uchar", "uint8":
				value := float32(field[0]) / 255.0
				switch prop.Name {
				case "red", "r":
					color.R = value
				case "green", "g":
					color.G = value
				case "blue", "b":
					color.B = value
				case "alpha", "a":
					color.A = value
				}
			}
		}

		m.Positions = append(m.Positions, pos)
		if hasNormals {
			m.Normals = append(m.Normals, normal)
		}
		if hasUVs {
			m.UVs = append(m.UVs, uv)
		}
		if hasColors {
			if !hasAlpha {
				color.A = 1
			}
			m.Colors = append(m.Colors, color)
		}
	}

	return m, nil
}

// readFaces reads the face element block, accepting triangles only
func readFaces(reader *bufio.Reader, header *plyHeader, m *mesh.Mesh) error {
	m.Faces = make([]int, 0, header.FaceCount*3)

	for i := 0; i < header.FaceCount; i++ {
		for _, prop := range header.FaceProps {
			if !prop.IsList {
				if err := skipBytes(reader, plyTypeSize(prop.Type)); err != nil {
					return fmt.Errorf("face %d property %s: %w", i, prop.Name, err)
				}
				continue
			}

			count, err := readListCount(reader, prop.ListType)
			if err != nil {
				return fmt.Errorf("face %d vertex count: %w", i, err)
			}

			if prop.Name != "vertex_indices" && prop.Name != "vertex_index" {
				if err := skipBytes(reader, count*plyTypeSize(prop.DataType)); err != nil {
					return fmt.Errorf("face %d property %s: %w", i, prop.Name, err)
				}
				continue
			}

			if count != 3 {
				return fmt.Errorf("only triangular faces supported, got %d vertices at face %d", count, i)
			}
			for k := 0; k < 3; k++ {
				idx, err := readListIndex(reader, prop.DataType)
				if err != nil {
					return fmt.Errorf("face %d index %d: %w", i, k, err)
				}
				m.Faces = append(m.Faces, idx)
			}
		}
	}

	return nil
}

// readListCount reads a list length of the given PLY type
func readListCount(reader *bufio.Reader, listType string) (int, error) {
	switch listType {
	case "uchar", "uint8":
		b, err := reader.ReadByte()
		return int(b), err
	case "int", "int32", "uint", "uint32":
		var buf [4]byte
		if _, err := io.ReadFull(reader, buf[:]); err != nil {
			return 0, err
		}
		return int(int32(binary.LittleEndian.Uint32(buf[:]))), nil
	default:
		return 0, fmt.Errorf("unsupported list count type: %s", listType)
	}
}

// readListIndex reads a single face vertex index of the given PLY type
func readListIndex(reader *bufio.Reader, dataType string) (int, error) {
	switch dataType {
	case "int", "int32", "uint", "uint32":
		var buf [4]byte
		if _, err := io.ReadFull(reader, buf[:]); err != nil {
			return 0, err
		}
		return int(int32(binary.LittleEndian.Uint32(buf[:]))), nil
	default:
		return 0, fmt.Errorf("unsupported face index type: %s", dataType)
	}
}

// skipBytes discards n bytes from the stream
func skipBytes(reader *bufio.Reader, n int) error {
	_, err := reader.Discard(n)
	return err
}

// hasVertexProp reports whether the header declares a vertex property
func hasVertexProp(header *plyHeader, name string) bool {
	for _, prop := range header.VertexProps {
		if prop.Name == name {
			return true
		}
	}
	return false
}

// plyTypeSize returns the size in bytes of a PLY data type
func plyTypeSize(dataType string) int {
	switch dataType {
	case "double", "float64":
		return 8
	case "short", "int16", "ushort", "uint16":
		return 2
	case "char", "int8", "uchar", "uint8":
		return 1
	default:
		// float, float32, int, int32, uint, uint32
		return 4
	}
}
