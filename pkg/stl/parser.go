package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/gomeasure/pkg/geometry"
)

// Parse reads an STL file and returns a Model
// It automatically detects whether the file is ASCII or binary format
func Parse(filename string) (*Model, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Read(file)
}

// Read parses STL data from r, detecting ASCII or binary format
func Read(r io.Reader) (*Model, error) {
	br := bufio.NewReader(r)

	// ASCII files start with "solid"
	header, err := br.Peek(5)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read file header: %w", err)
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("failed to read file header: %w", io.ErrUnexpectedEOF)
	}

	if bytes.HasPrefix(header, []byte("solid")) {
		return parseASCII(br)
	}
	return parseBinary(br)
}

// parseASCII parses an ASCII STL file
func parseASCII(reader io.Reader) (*Model, error) {
	scanner := bufio.NewScanner(reader)
	model := NewModel("")

	var currentNormal geometry.Vector3
	var vertices []geometry.Vector3

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(line)

		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				model.Name = strings.Join(fields[1:], " ")
			}

		case "facet":
			if len(fields) >= 5 && fields[1] == "normal" {
				normal, err := parseVector(fields[2:5])
				if err != nil {
					return nil, fmt.Errorf("line %d: invalid normal: %w", lineNo, err)
				}
				currentNormal = normal
			}

		case "vertex":
			if len(fields) >= 4 {
				vertex, err := parseVector(fields[1:4])
				if err != nil {
					return nil, fmt.Errorf("line %d: invalid vertex: %w", lineNo, err)
				}
				vertices = append(vertices, vertex)
			}

		case "endfacet":
			if len(vertices) == 3 {
				triangle := geometry.NewTriangle(
					currentNormal,
					vertices[0],
					vertices[1],
					vertices[2],
				)
				model.AddTriangle(triangle)
			}
			vertices = vertices[:0] // Clear vertices
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}

	return model, nil
}

func parseVector(fields []string) (geometry.Vector3, error) {
	var xyz [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geometry.Vector3{}, err
		}
		xyz[i] = v
	}
	return geometry.NewVector3(xyz[0], xyz[1], xyz[2]), nil
}

// parseBinary parses a binary STL file
func parseBinary(reader io.Reader) (*Model, error) {
	model := NewModel("")

	// Read 80-byte header
	header := make([]byte, 80)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Extract name from header (if present)
	headerStr := string(bytes.TrimRight(header, "\x00"))
	if len(headerStr) > 0 {
		model.Name = headerStr
	}

	// Read triangle count
	var triangleCount uint32
	if err := binary.Read(reader, binary.LittleEndian, &triangleCount); err != nil {
		return nil, fmt.Errorf("failed to read triangle count: %w", err)
	}

	// Read each triangle
	for i := uint32(0); i < triangleCount; i++ {
		var normal, v1, v2, v3 [3]float32
		var attributeByteCount uint16

		// Read normal
		if err := binary.Read(reader, binary.LittleEndian, &normal); err != nil {
			return nil, fmt.Errorf("failed to read normal for triangle %d: %w", i, err)
		}

		// Read vertices
		if err := binary.Read(reader, binary.LittleEndian, &v1); err != nil {
			return nil, fmt.Errorf("failed to read v1 for triangle %d: %w", i, err)
		}
		if err := binary.Read(reader, binary.LittleEndian, &v2); err != nil {
			return nil, fmt.Errorf("failed to read v2 for triangle %d: %w", i, err)
		}
		if err := binary.Read(reader, binary.LittleEndian, &v3); err != nil {
			return nil, fmt.Errorf("failed to read v3 for triangle %d: %w", i, err)
		}

		// Read attribute byte count (usually unused, but required by format)
		if err := binary.Read(reader, binary.LittleEndian, &attributeByteCount); err != nil {
			return nil, fmt.Errorf("failed to read attribute for triangle %d: %w", i, err)
		}

		// Create triangle and add to model
		triangle := geometry.NewTriangle(
			geometry.NewVector3(float64(normal[0]), float64(normal[1]), float64(normal[2])),
			geometry.NewVector3(float64(v1[0]), float64(v1[1]), float64(v1[2])),
			geometry.NewVector3(float64(v2[0]), float64(v2[1]), float64(v2[2])),
			geometry.NewVector3(float64(v3[0]), float64(v3[1]), float64(v3[2])),
		)
		model.AddTriangle(triangle)
	}

	return model, nil
}
