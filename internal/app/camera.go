package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/philipparndt/gomeasure/pkg/viewer"
)

// orbitCamera drives a viewer.Camera from mouse input. The measurement
// controller switches it off while an endpoint is dragged.
type orbitCamera struct {
	cam     *viewer.Camera
	enabled bool

	defaultDistance  float64
	defaultRotationX float64
	defaultRotationY float64
	defaultTarget    geometry.Vector3
}

func newOrbitCamera(bbox geometry.BoundingBox) *orbitCamera {
	cam := viewer.NewCamera(bbox)
	cam.RotationX = 0.3
	cam.RotationY = 0.3
	cam.UpdatePosition()

	return &orbitCamera{
		cam:              cam,
		enabled:          true,
		defaultDistance:  cam.Distance,
		defaultRotationX: cam.RotationX,
		defaultRotationY: cam.RotationY,
		defaultTarget:    cam.Target,
	}
}

// SetEnabled implements measurement.CameraControl
func (o *orbitCamera) SetEnabled(enabled bool) {
	o.enabled = enabled
}

// resetView resets the camera to the default view
func (o *orbitCamera) resetView() {
	o.cam.Distance = o.defaultDistance
	o.cam.RotationX = o.defaultRotationX
	o.cam.RotationY = o.defaultRotationY
	o.cam.Target = o.defaultTarget
	o.cam.UpdatePosition()
}

// setView points the camera along a preset direction around the default target
func (o *orbitCamera) setView(rotationX, rotationY float64) {
	o.cam.RotationX = rotationX
	o.cam.RotationY = rotationY
	o.cam.Target = o.defaultTarget
	o.cam.UpdatePosition()
}

// update applies this frame's orbit, pan and zoom input.
// rotate is false when the left button belongs to the measurement tool.
func (o *orbitCamera) update(rotate bool) {
	if !o.enabled {
		return
	}

	// Camera view preset shortcuts
	switch {
	case rl.IsKeyPressed(rl.KeyHome):
		o.resetView()
	case rl.IsKeyPressed(rl.KeyT):
		o.setView(math.Pi/2-0.1, 0) // top
	case rl.IsKeyPressed(rl.KeyOne):
		o.setView(0, 0) // front
	case rl.IsKeyPressed(rl.KeyTwo):
		o.setView(0, math.Pi) // back
	case rl.IsKeyPressed(rl.KeyThree):
		o.setView(0, -math.Pi/2) // left
	case rl.IsKeyPressed(rl.KeyFour):
		o.setView(0, math.Pi/2) // right
	}

	delta := rl.GetMouseDelta()
	shift := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)

	// Pan with Shift + left drag or middle drag
	if (rl.IsMouseButtonDown(rl.MouseButtonLeft) && shift) || rl.IsMouseButtonDown(rl.MouseButtonMiddle) {
		o.cam.Pan(float64(delta.X), float64(delta.Y))
	} else if rotate && rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		o.cam.Rotate(-float64(delta.Y)*0.01, float64(delta.X)*0.01)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		o.cam.Zoom(-float64(wheel) * 0.1)
	}
}

// raylib returns the camera in raylib's form. Fovy is in degrees.
func (o *orbitCamera) raylib() rl.Camera3D {
	return rl.Camera3D{
		Position:   toRL(o.cam.Position),
		Target:     toRL(o.cam.Target),
		Up:         toRL(o.cam.Up),
		Fovy:       float32(o.cam.FOV * 180 / math.Pi),
		Projection: rl.CameraPerspective,
	}
}

func toRL(v geometry.Vector3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}
