package measurement

import (
	"fmt"

	"github.com/philipparndt/gomeasure/pkg/geometry"
)

// SnapMode selects how a raw intersection is adjusted to nearby geometry
type SnapMode string

const (
	SnapVertex   SnapMode = "vertex"
	SnapFace     SnapMode = "face"
	SnapEdge     SnapMode = "edge" // declared, resolves like SnapDisabled
	SnapDisabled SnapMode = "disabled"
)

// ParseSnapMode converts a configuration string into a SnapMode
func ParseSnapMode(s string) (SnapMode, error) {
	switch mode := SnapMode(s); mode {
	case SnapVertex, SnapFace, SnapEdge, SnapDisabled:
		return mode, nil
	case "":
		return SnapDisabled, nil
	default:
		return "", fmt.Errorf("unknown snap mode %q", s)
	}
}

// normalizeSnapMode maps the unset mode to SnapDisabled, matching ParseSnapMode
func normalizeSnapMode(m SnapMode) SnapMode {
	if m == "" {
		return SnapDisabled
	}
	return m
}

// SceneObject is anything an endpoint can be anchored to
type SceneObject interface {
	ID() string
	WorldTransform() geometry.Transform
}

// Target is a scene object that can be hit by intersection queries
type Target interface {
	SceneObject
	Triangles() []geometry.Triangle // local frame
}

// Anchor binds a point to an object's local frame
type Anchor struct {
	Object SceneObject
	Local  geometry.Vector3
}

// World returns the anchor's position under the object's current transform
func (a Anchor) World() geometry.Vector3 {
	return a.Object.WorldTransform().Apply(a.Local)
}

// Point is a world position with an optional anchor
type Point struct {
	World  geometry.Vector3
	Anchor *Anchor
}

// NewPoint creates an anchor-less point
func NewPoint(world geometry.Vector3) Point {
	return Point{World: world}
}

// NewAnchoredPoint creates a point bound to obj. The local position is taken
// from the object's current transform; a singular transform yields an
// anchor-less point.
func NewAnchoredPoint(obj SceneObject, world geometry.Vector3) Point {
	if obj == nil {
		return NewPoint(world)
	}
	inv, ok := obj.WorldTransform().Inverse()
	if !ok {
		return NewPoint(world)
	}
	return Point{
		World:  world,
		Anchor: &Anchor{Object: obj, Local: inv.Apply(world)},
	}
}

// Anchored reports whether the point follows a scene object
func (p Point) Anchored() bool {
	return p.Anchor != nil && p.Anchor.Object != nil
}

// Tracked returns the point with its world position re-derived from the anchor
func (p Point) Tracked() Point {
	if !p.Anchored() {
		return p
	}
	p.World = p.Anchor.World()
	return p
}

// Endpoint names one end of a measurement
type Endpoint int

const (
	Start Endpoint = iota
	End
)

func (e Endpoint) String() string {
	if e == Start {
		return "start"
	}
	return "end"
}

// Other returns the opposite endpoint
func (e Endpoint) Other() Endpoint {
	if e == Start {
		return End
	}
	return Start
}

// Handle is a visual owned by the renderer that created it
type Handle any

// Measurement is a distance between two points
type Measurement struct {
	ID       string
	Start    Point
	End      Point
	Distance float64
	Line     Handle
	Label    Handle
	Options  Options
}

// Point returns the requested endpoint
func (m *Measurement) Point(which Endpoint) Point {
	if which == Start {
		return m.Start
	}
	return m.End
}

func (m *Measurement) setPoint(which Endpoint, p Point) {
	if which == Start {
		m.Start = p
	} else {
		m.End = p
	}
}

// Recompute refreshes Distance from the current world positions
func (m *Measurement) Recompute() {
	m.Distance = m.Start.World.Distance(m.End.World)
}

// Midpoint returns the point halfway between the endpoints, where labels sit
func (m *Measurement) Midpoint() geometry.Vector3 {
	return m.Start.World.Lerp(m.End.World, 0.5)
}

// SnapResult is the output of Resolve
type SnapResult struct {
	Point    geometry.Vector3
	Original geometry.Vector3
	Snapped  bool
	Mode     SnapMode
	Object   Target
}

// Renderer draws the line and label of each measurement
type Renderer interface {
	Create(m *Measurement) (line, label Handle)
	Reposition(m *Measurement)
	Dispose(m *Measurement)
}

// CameraControl toggles external camera input (orbit, pan)
type CameraControl interface {
	SetEnabled(enabled bool)
}
