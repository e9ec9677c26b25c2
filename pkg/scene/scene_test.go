package scene

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitTriangle() []geometry.Triangle {
	return []geometry.Triangle{
		geometry.NewTriangle(
			geometry.NewVector3(0, 0, 1),
			geometry.NewVector3(0, 0, 0),
			geometry.NewVector3(1, 0, 0),
			geometry.NewVector3(0, 1, 0),
		),
	}
}

func TestSceneAddAndLookup(t *testing.T) {
	s := New()
	obj := NewObject("a", "first", unitTriangle())
	require.NoError(t, s.Add(obj))

	got, err := s.Lookup(context.Background(), "a")
	require.NoError(t, err)
	assert.Same(t, obj, got)

	_, err = s.Lookup(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUnknownObject)
}

func TestSceneRejectsDuplicateIDs(t *testing.T) {
	s := New()
	require.NoError(t, s.Add(NewObject("a", "", nil)))
	assert.Error(t, s.Add(NewObject("a", "", nil)))
}

func TestSceneRemoveKeepsOrder(t *testing.T) {
	s := New()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.Add(NewObject(id, "", nil)))
	}
	s.Remove("b")
	s.Remove("unknown")

	var ids []string
	for _, obj := range s.Objects() {
		ids = append(ids, obj.ID())
	}
	assert.Equal(t, []string{"a", "c"}, ids)
}

func TestLookupHonoursCancellation(t *testing.T) {
	s := New()
	require.NoError(t, s.Add(NewObject("a", "", nil)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Lookup(ctx, "a")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestObjectTranslateAndBounds(t *testing.T) {
	obj := NewObject("a", "", unitTriangle())
	obj.Translate(geometry.NewVector3(3, 0, 0))
	obj.Translate(geometry.NewVector3(0, 1, 0))

	bbox := obj.Bounds()
	assert.Equal(t, geometry.NewVector3(3, 1, 0), bbox.Min)
	assert.Equal(t, geometry.NewVector3(4, 2, 0), bbox.Max)
}

func TestLoadSTL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bracket.stl")
	data := `solid bracket
facet normal 0 0 1
  outer loop
    vertex 0 0 0
    vertex 1 0 0
    vertex 0 1 0
  endloop
endfacet
endsolid bracket
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	s := New()
	obj, err := s.LoadSTL(path)
	require.NoError(t, err)
	assert.Equal(t, "bracket", obj.ID())
	assert.Equal(t, "bracket", obj.Name)
	assert.Len(t, obj.Triangles(), 1)
}
