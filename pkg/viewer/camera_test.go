package viewer

import (
	"math"
	"testing"

	"github.com/philipparndt/gomeasure/pkg/geometry"
)

func testCamera() *Camera {
	bbox := geometry.NewBoundingBox()
	bbox.Extend(geometry.NewVector3(-1, -1, -1))
	bbox.Extend(geometry.NewVector3(1, 1, 1))
	return NewCamera(bbox)
}

func TestCameraCenterRay(t *testing.T) {
	cam := testCamera()
	ray := cam.Unproject(400, 300, 800, 600)

	expected := geometry.NewVector3(0, 0, -1)
	if ray.Direction.Distance(expected) > 1e-9 {
		t.Errorf("Unproject failed: expected direction %v, got %v", expected, ray.Direction)
	}
}

func TestCameraProjectUnprojectRoundTrip(t *testing.T) {
	cam := testCamera()
	cam.Rotate(0.3, 0.4)

	point := geometry.NewVector3(0.5, -0.25, 0.2)
	sx, sy, depth := cam.Project(point, 800, 600)
	if depth <= 0 {
		t.Fatalf("Project failed: point should be in front of the camera, depth %v", depth)
	}

	ray := cam.Unproject(sx, sy, 800, 600)
	toPoint := point.Sub(ray.Origin).Normalize()
	if ray.Direction.Distance(toPoint) > 1e-9 {
		t.Errorf("Unproject failed: expected direction %v, got %v", toPoint, ray.Direction)
	}
}

func TestCameraZoomClamp(t *testing.T) {
	cam := testCamera()
	cam.Zoom(-2)

	if math.Abs(cam.Distance-0.1) > 1e-12 {
		t.Errorf("Zoom failed: expected clamp to 0.1, got %v", cam.Distance)
	}
}
