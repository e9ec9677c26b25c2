package measurement

import (
	"testing"

	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/philipparndt/gomeasure/pkg/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntersectRayNearestTarget(t *testing.T) {
	near, far := plate("near"), plate("far")
	near.Translate(vec3(0, 0, 1))

	ray := geometry.NewRay(vec3(0.25, 0.75, 5), vec3(0, 0, -1))

	hit, ok := IntersectRay(ray, []Target{far, near})
	require.True(t, ok)
	assert.Equal(t, "near", hit.Object.ID())
	assert.InDelta(t, 4, hit.Distance, 1e-9)
	assert.InDelta(t, 1, hit.Point.Z, 1e-9)
	assert.InDelta(t, 1, hit.Face.V1.Z, 1e-9, "face is reported in world space")
}

func TestIntersectRayOnlyConsidersTargets(t *testing.T) {
	near, far := plate("near"), plate("far")
	near.Translate(vec3(0, 0, 1))
	ray := geometry.NewRay(vec3(0.25, 0.75, 5), vec3(0, 0, -1))

	hit, ok := IntersectRay(ray, []Target{far})
	require.True(t, ok)
	assert.Equal(t, "far", hit.Object.ID())

	_, ok = IntersectRay(ray, nil)
	assert.False(t, ok)
}

func TestRayCasterCenterPick(t *testing.T) {
	obj := plate("plate")
	obj.Translate(vec3(-0.5, -0.5, 0))
	bbox := obj.Bounds()

	// default camera looks down -Z at the box center
	cam := viewer.NewCamera(bbox)
	rc := NewRayCaster(cam, 200, 100)

	hit, ok := rc.Intersect(ScreenPos{X: 100, Y: 50}, []Target{obj})
	require.True(t, ok)
	assert.InDelta(t, 0, hit.Point.X, 1e-6)
	assert.InDelta(t, 0, hit.Point.Y, 1e-6)

	pos, visible := rc.Project(hit.Point)
	require.True(t, visible)
	assert.InDelta(t, 100, pos.X, 1e-6)
	assert.InDelta(t, 50, pos.Y, 1e-6)

	rc.SetViewport(0, 0)
	_, ok = rc.Intersect(ScreenPos{X: 100, Y: 50}, []Target{obj})
	assert.False(t, ok)
}
