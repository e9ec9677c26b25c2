// Package scene holds the objects that measurements can be taken against.
package scene

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/philipparndt/gomeasure/pkg/stl"
)

// ErrUnknownObject is returned when an id does not name a live object
var ErrUnknownObject = errors.New("unknown scene object")

// Scene is an ordered registry of objects keyed by id
type Scene struct {
	objects map[string]*Object
	order   []string
}

// New creates an empty scene
func New() *Scene {
	return &Scene{
		objects: make(map[string]*Object),
	}
}

// Add registers an object. Ids must be unique within the scene.
func (s *Scene) Add(obj *Object) error {
	if _, exists := s.objects[obj.ID()]; exists {
		return fmt.Errorf("object %q already in scene", obj.ID())
	}
	s.objects[obj.ID()] = obj
	s.order = append(s.order, obj.ID())
	return nil
}

// Get returns the object with the given id
func (s *Scene) Get(id string) (*Object, bool) {
	obj, ok := s.objects[id]
	return obj, ok
}

// Remove drops an object from the scene. Unknown ids are ignored.
func (s *Scene) Remove(id string) {
	if _, ok := s.objects[id]; !ok {
		return
	}
	delete(s.objects, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Objects returns all objects in insertion order
func (s *Scene) Objects() []*Object {
	out := make([]*Object, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.objects[id])
	}
	return out
}

// Lookup resolves an id to a live object. It honours context cancellation so
// it can be used where object resolution is deferred.
func (s *Scene) Lookup(ctx context.Context, id string) (*Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	obj, ok := s.objects[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownObject, id)
	}
	return obj, nil
}

// LoadSTL parses an STL file and adds it to the scene.
// The object id is derived from the file name.
func (s *Scene) LoadSTL(path string) (*Object, error) {
	model, err := stl.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	obj := FromModel(id, model)
	if obj.Name == "" {
		obj.Name = id
	}
	if err := s.Add(obj); err != nil {
		return nil, err
	}
	return obj, nil
}
