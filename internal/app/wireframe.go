package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gomeasure/pkg/geometry"
)

type edgeKey [2]geometry.Vector3

func makeEdgeKey(a, b geometry.Vector3) edgeKey {
	if b.X < a.X || (b.X == a.X && (b.Y < a.Y || (b.Y == a.Y && b.Z < a.Z))) {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// drawWireframe renders the edges of every object under its current transform.
// Must be called inside BeginMode3D.
func (app *App) drawWireframe() {
	wireframeColor := rl.NewColor(100, 100, 100, 200)

	for i, om := range app.Model.meshes {
		c := wireframeColor
		if i == app.Model.selected && len(app.Model.meshes) > 1 {
			c = rl.NewColor(180, 160, 90, 220)
		}

		world := om.object.WorldTransform()
		drawn := make(map[edgeKey]bool)
		for _, triangle := range om.object.Triangles() {
			v := triangle.Vertices()
			for j := 0; j < 3; j++ {
				a, b := v[j], v[(j+1)%3]
				key := makeEdgeKey(a, b)
				if drawn[key] {
					continue
				}
				drawn[key] = true
				rl.DrawLine3D(toRL(world.Apply(a)), toRL(world.Apply(b)), c)
			}
		}
	}
}
