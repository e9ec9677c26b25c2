package measurement

import (
	"math"

	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/philipparndt/gomeasure/pkg/viewer"
)

// ScreenPos is a position in viewport pixels, origin top-left
type ScreenPos struct {
	X, Y float64
}

// Intersection is the nearest hit of a pick ray against a target set
type Intersection struct {
	Point    geometry.Vector3 // world space
	Object   Target
	Distance float64 // along the ray

	// Face is the hit primitive in world space; its corners are the vertex candidates
	Face geometry.Triangle
}

// Intersector answers pick queries against an explicit target set
type Intersector interface {
	Intersect(pos ScreenPos, targets []Target) (Intersection, bool)
}

// Projector maps world positions to the screen; used to grab endpoint markers
type Projector interface {
	Project(world geometry.Vector3) (ScreenPos, bool)
}

// IntersectRay returns the nearest hit of ray against the targets only.
// Ties at equal distance keep the earlier target and triangle.
func IntersectRay(ray geometry.Ray, targets []Target) (Intersection, bool) {
	best := Intersection{Distance: math.Inf(1)}
	found := false

	for _, target := range targets {
		if target == nil {
			continue
		}
		world := target.WorldTransform()
		for _, local := range target.Triangles() {
			tri := local.Transform(world)
			dist, ok := ray.IntersectTriangle(tri)
			if !ok || dist >= best.Distance {
				continue
			}
			best = Intersection{
				Point:    ray.At(dist),
				Object:   target,
				Distance: dist,
				Face:     tri,
			}
			found = true
		}
	}

	return best, found
}

// RayCaster casts pick rays from a viewer camera through screen positions
type RayCaster struct {
	camera *viewer.Camera
	width  float64
	height float64
}

// NewRayCaster creates a ray caster for a viewport of the given size
func NewRayCaster(camera *viewer.Camera, width, height float64) *RayCaster {
	return &RayCaster{camera: camera, width: width, height: height}
}

// SetViewport updates the viewport size after a resize
func (r *RayCaster) SetViewport(width, height float64) {
	r.width = width
	r.height = height
}

// Intersect implements Intersector
func (r *RayCaster) Intersect(pos ScreenPos, targets []Target) (Intersection, bool) {
	if r.width <= 0 || r.height <= 0 {
		return Intersection{}, false
	}
	ray := r.camera.Unproject(pos.X, pos.Y, r.width, r.height)
	return IntersectRay(ray, targets)
}

// Project implements Projector. Points behind the camera are not visible.
func (r *RayCaster) Project(world geometry.Vector3) (ScreenPos, bool) {
	if r.width <= 0 || r.height <= 0 {
		return ScreenPos{}, false
	}
	x, y, depth := r.camera.Project(world, r.width, r.height)
	if depth <= 0 {
		return ScreenPos{}, false
	}
	return ScreenPos{X: x, Y: y}, true
}
