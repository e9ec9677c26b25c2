package analysis

import (
	"math"
	"testing"

	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/philipparndt/gomeasure/pkg/stl"
)

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{2, 5, 1, 4})

	if s.Count != 4 {
		t.Errorf("Count failed: expected 4, got %d", s.Count)
	}
	if s.Min != 1 || s.Max != 5 {
		t.Errorf("Extremes failed: expected 1..5, got %v..%v", s.Min, s.Max)
	}
	if math.Abs(s.Total-12) > 1e-10 {
		t.Errorf("Total failed: expected 12, got %v", s.Total)
	}
	if math.Abs(s.Mean-3) > 1e-10 {
		t.Errorf("Mean failed: expected 3, got %v", s.Mean)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if s := Summarize(nil); s != (Summary{}) {
		t.Errorf("Summarize(nil) failed: expected zero summary, got %+v", s)
	}
}

func quad() *stl.Model {
	model := stl.NewModel("quad")
	n := geometry.NewVector3(0, 0, 1)
	model.AddTriangle(geometry.NewTriangle(n,
		geometry.NewVector3(0, 0, 0), geometry.NewVector3(2, 0, 0), geometry.NewVector3(2, 1, 0)))
	model.AddTriangle(geometry.NewTriangle(n,
		geometry.NewVector3(0, 0, 0), geometry.NewVector3(2, 1, 0), geometry.NewVector3(0, 1, 0)))
	return model
}

func TestUniqueVertices(t *testing.T) {
	vertices := UniqueVertices(quad())

	if len(vertices) != 4 {
		t.Fatalf("UniqueVertices failed: expected 4 vertices, got %d", len(vertices))
	}
	if vertices[3] != geometry.NewVector3(0, 1, 0) {
		t.Errorf("UniqueVertices order failed: expected (0,1,0) last, got %v", vertices[3])
	}
}

func TestAnalyzeModel(t *testing.T) {
	info := AnalyzeModel(quad())

	if info.TriangleCount != 2 || info.VertexCount != 4 {
		t.Errorf("Counts failed: expected 2 triangles/4 vertices, got %d/%d", info.TriangleCount, info.VertexCount)
	}
	if math.Abs(info.SurfaceArea-2) > 1e-10 {
		t.Errorf("SurfaceArea failed: expected 2, got %v", info.SurfaceArea)
	}
	if info.Dimensions != geometry.NewVector3(2, 1, 0) {
		t.Errorf("Dimensions failed: expected (2,1,0), got %v", info.Dimensions)
	}
}

func TestFormatDistance(t *testing.T) {
	if got := FormatDistance(1.5, ""); got != "1.500000 units" {
		t.Errorf("FormatDistance failed: got %q", got)
	}
	if got := FormatVector(geometry.NewVector3(1, 2, 3)); got != "(1.000000, 2.000000, 3.000000)" {
		t.Errorf("FormatVector failed: got %q", got)
	}
}
