package measurement

import (
	"math"

	"github.com/philipparndt/gomeasure/pkg/geometry"
)

// Resolve adjusts a raw intersection according to the snap mode.
//
// Vertex snapping picks the nearest corner of the hit primitive and accepts it
// when it lies within snapDistance (inclusive). Face snapping projects onto the
// face plane. Edge snapping is not implemented and passes the raw point through.
func Resolve(hit Intersection, mode SnapMode, snapDistance float64, enabled bool) SnapResult {
	result := SnapResult{
		Point:    hit.Point,
		Original: hit.Point,
		Mode:     mode,
		Object:   hit.Object,
	}

	if !enabled || mode == SnapDisabled {
		result.Mode = SnapDisabled
		return result
	}

	switch mode {
	case SnapVertex:
		vertices := hit.Face.Vertices()
		if p, ok := SnapToVertex(hit.Point, vertices[:], snapDistance); ok {
			result.Point = p
			result.Snapped = true
		}
	case SnapFace:
		result.Point = hit.Face.ProjectPoint(hit.Point)
		result.Snapped = true
	}

	return result
}

// NearestVertex returns the index of the vertex closest to p and the squared
// distance to it. Equidistant vertices resolve to the lowest index.
func NearestVertex(p geometry.Vector3, vertices []geometry.Vector3) (int, float64) {
	best := -1
	bestSq := math.Inf(1)
	for i, v := range vertices {
		if sq := v.DistanceSquared(p); sq < bestSq {
			best = i
			bestSq = sq
		}
	}
	return best, bestSq
}

// SnapToVertex returns the nearest vertex when it lies within snapDistance of p
func SnapToVertex(p geometry.Vector3, vertices []geometry.Vector3, snapDistance float64) (geometry.Vector3, bool) {
	if snapDistance < 0 {
		return p, false
	}
	idx, sq := NearestVertex(p, vertices)
	// Compare squared distances so an exact threshold is not lost to sqrt rounding
	if idx < 0 || sq > snapDistance*snapDistance {
		return p, false
	}
	return vertices[idx], true
}
