package scene

import (
	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/philipparndt/gomeasure/pkg/stl"
)

// Object is a mesh placed in the world by a transform.
// Triangles are stored in the object's local frame.
type Object struct {
	id        string
	Name      string
	triangles []geometry.Triangle
	transform geometry.Transform
}

// NewObject creates an object at the world origin
func NewObject(id, name string, triangles []geometry.Triangle) *Object {
	return &Object{
		id:        id,
		Name:      name,
		triangles: triangles,
		transform: geometry.Identity(),
	}
}

// FromModel wraps a parsed STL model as a scene object
func FromModel(id string, model *stl.Model) *Object {
	return NewObject(id, model.Name, model.Triangles)
}

// ID returns the identifier that is stable for the lifetime of the scene
func (o *Object) ID() string {
	return o.id
}

// Triangles returns the mesh in local coordinates
func (o *Object) Triangles() []geometry.Triangle {
	return o.triangles
}

// WorldTransform returns the current local-to-world transform
func (o *Object) WorldTransform() geometry.Transform {
	return o.transform
}

// SetTransform replaces the local-to-world transform
func (o *Object) SetTransform(t geometry.Transform) {
	o.transform = t
}

// Translate moves the object by delta in world space
func (o *Object) Translate(delta geometry.Vector3) {
	o.transform = geometry.Translation(delta).Mul(o.transform)
}

// Bounds returns the world-space bounding box of the object
func (o *Object) Bounds() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, tri := range o.triangles {
		for _, v := range tri.Vertices() {
			bbox.Extend(o.transform.Apply(v))
		}
	}
	return bbox
}
