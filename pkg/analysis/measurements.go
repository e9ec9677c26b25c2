package analysis

import (
	"fmt"
	"math"

	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/philipparndt/gomeasure/pkg/stl"
)

// Summary aggregates a set of measured distances
type Summary struct {
	Count int
	Min   float64
	Max   float64
	Total float64
	Mean  float64
}

// Summarize computes count, extremes, total and mean of distances.
// An empty input yields a zero Summary.
func Summarize(distances []float64) Summary {
	if len(distances) == 0 {
		return Summary{}
	}

	s := Summary{
		Count: len(distances),
		Min:   math.MaxFloat64,
		Max:   -math.MaxFloat64,
	}
	for _, d := range distances {
		s.Total += d
		if d < s.Min {
			s.Min = d
		}
		if d > s.Max {
			s.Max = d
		}
	}
	s.Mean = s.Total / float64(s.Count)
	return s
}

// ModelInfo contains the basic figures of an STL model
type ModelInfo struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	SurfaceArea   float64
	TriangleCount int
	VertexCount   int
}

// AnalyzeModel collects the basic figures of a model
func AnalyzeModel(model *stl.Model) ModelInfo {
	info := ModelInfo{
		BoundingBox:   model.BoundingBox(),
		SurfaceArea:   model.SurfaceArea(),
		TriangleCount: model.TriangleCount(),
		VertexCount:   len(UniqueVertices(model)),
	}
	info.Dimensions = info.BoundingBox.Size()
	return info
}

// UniqueVertices returns every distinct vertex of the model in first-seen order
func UniqueVertices(model *stl.Model) []geometry.Vector3 {
	seen := make(map[geometry.Vector3]struct{})
	var vertices []geometry.Vector3

	for _, triangle := range model.Triangles {
		for _, vertex := range triangle.Vertices() {
			if _, ok := seen[vertex]; ok {
				continue
			}
			seen[vertex] = struct{}{}
			vertices = append(vertices, vertex)
		}
	}

	return vertices
}

// FormatDistance formats a distance with appropriate units
func FormatDistance(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
