package measurement

import (
	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/philipparndt/gomeasure/pkg/scene"
)

func vec3(x, y, z float64) geometry.Vector3 {
	return geometry.NewVector3(x, y, z)
}

// plate is a 1x1 square in the z=0 plane, two triangles
func plate(id string) *scene.Object {
	n := vec3(0, 0, 1)
	return scene.NewObject(id, id, []geometry.Triangle{
		geometry.NewTriangle(n, vec3(0, 0, 0), vec3(1, 0, 0), vec3(1, 1, 0)),
		geometry.NewTriangle(n, vec3(0, 0, 0), vec3(1, 1, 0), vec3(0, 1, 0)),
	})
}

// stubQuery answers Intersect from a fixed table keyed by screen position
type stubQuery struct {
	hits    map[ScreenPos]Intersection
	targets [][]Target
}

func newStubQuery() *stubQuery {
	return &stubQuery{hits: make(map[ScreenPos]Intersection)}
}

func (q *stubQuery) on(pos ScreenPos, obj Target, p geometry.Vector3) {
	q.hits[pos] = Intersection{
		Point:  p,
		Object: obj,
		Face:   obj.Triangles()[0].Transform(obj.WorldTransform()),
	}
}

func (q *stubQuery) Intersect(pos ScreenPos, targets []Target) (Intersection, bool) {
	q.targets = append(q.targets, targets)
	hit, ok := q.hits[pos]
	return hit, ok
}

// stubProjector drops z and scales by 100
type stubProjector struct{}

func (stubProjector) Project(world geometry.Vector3) (ScreenPos, bool) {
	return ScreenPos{X: world.X * 100, Y: world.Y * 100}, true
}

type recordingCamera struct {
	calls []bool
}

func (c *recordingCamera) SetEnabled(enabled bool) {
	c.calls = append(c.calls, enabled)
}

type recordingRenderer struct {
	created, repositioned, disposed []string
}

func (r *recordingRenderer) Create(m *Measurement) (Handle, Handle) {
	r.created = append(r.created, m.ID)
	return "line:" + m.ID, "label:" + m.ID
}

func (r *recordingRenderer) Reposition(m *Measurement) {
	r.repositioned = append(r.repositioned, m.ID)
}

func (r *recordingRenderer) Dispose(m *Measurement) {
	r.disposed = append(r.disposed, m.ID)
}

func collect(n *Notifier) *[]Event {
	var events []Event
	n.OnAny(func(ev Event) {
		events = append(events, ev)
	})
	return &events
}

func kinds(events []Event) []EventKind {
	out := make([]EventKind, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.Kind)
	}
	return out
}
