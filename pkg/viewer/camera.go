package viewer

import (
	"math"

	"github.com/philipparndt/gomeasure/pkg/geometry"
)

// Camera is an orbit camera looking at Target from a spherical offset
type Camera struct {
	Position  geometry.Vector3
	Target    geometry.Vector3
	Up        geometry.Vector3
	FOV       float64 // Vertical field of view in radians
	Distance  float64
	RotationX float64 // Rotation around X axis (vertical)
	RotationY float64 // Rotation around Y axis (horizontal)
}

// NewCamera creates a new camera positioned to view a bounding box
func NewCamera(bbox geometry.BoundingBox) *Camera {
	center := bbox.Center()
	size := bbox.Size()
	distance := math.Max(size.X, math.Max(size.Y, size.Z)) * 2.0
	if distance <= 0 {
		distance = 10
	}

	return &Camera{
		Position:  center.Add(geometry.NewVector3(0, 0, distance)),
		Target:    center,
		Up:        geometry.NewVector3(0, 1, 0),
		FOV:       math.Pi / 4, // 45 degrees
		Distance:  distance,
		RotationX: 0,
		RotationY: 0,
	}
}

// UpdatePosition updates camera position based on rotation angles
func (c *Camera) UpdatePosition() {
	x := c.Distance * math.Cos(c.RotationX) * math.Sin(c.RotationY)
	y := c.Distance * math.Sin(c.RotationX)
	z := c.Distance * math.Cos(c.RotationX) * math.Cos(c.RotationY)

	c.Position = c.Target.Add(geometry.NewVector3(x, y, z))
}

// Rotate rotates the camera by the given angles
func (c *Camera) Rotate(deltaX, deltaY float64) {
	c.RotationX += deltaX
	c.RotationY += deltaY

	// Clamp X rotation to prevent gimbal lock
	maxAngle := math.Pi/2 - 0.1
	if c.RotationX > maxAngle {
		c.RotationX = maxAngle
	}
	if c.RotationX < -maxAngle {
		c.RotationX = -maxAngle
	}

	c.UpdatePosition()
}

// Zoom changes the camera distance
func (c *Camera) Zoom(delta float64) {
	c.Distance *= (1.0 + delta)
	if c.Distance < 0.1 {
		c.Distance = 0.1
	}
	c.UpdatePosition()
}

// Pan moves the target in the view plane by a screen-space delta (pixels)
func (c *Camera) Pan(deltaX, deltaY float64) {
	right, up, _ := c.basis()
	speed := c.Distance * 0.001

	c.Target = c.Target.Add(right.Mul(-deltaX * speed)).Add(up.Mul(deltaY * speed))
	c.UpdatePosition()
}

// basis returns the right, up and forward vectors of the view
func (c *Camera) basis() (right, up, forward geometry.Vector3) {
	forward = c.Target.Sub(c.Position).Normalize()
	right = forward.Cross(c.Up).Normalize()
	up = right.Cross(forward).Normalize()
	return right, up, forward
}

// Project projects a 3D point to 2D screen coordinates.
// The third value is the depth along the view direction.
func (c *Camera) Project(point geometry.Vector3, width, height float64) (float64, float64, float64) {
	right, up, forward := c.basis()

	// Transform to camera space
	relative := point.Sub(c.Position)
	x := relative.Dot(right)
	y := relative.Dot(up)
	z := relative.Dot(forward)

	// Perspective projection
	if z <= 0.01 {
		z = 0.01 // Prevent division by zero
	}

	aspect := width / height
	fovScale := math.Tan(c.FOV / 2)

	screenX := (x/(z*fovScale*aspect))*(width/2) + (width / 2)
	screenY := (-y/(z*fovScale))*(height/2) + (height / 2)

	return screenX, screenY, relative.Dot(forward)
}

// Unproject converts 2D screen coordinates into a world-space ray
func (c *Camera) Unproject(screenX, screenY, width, height float64) geometry.Ray {
	// Convert screen coordinates to normalized device coordinates (-1 to 1)
	ndcX := (2.0 * screenX / width) - 1.0
	ndcY := 1.0 - (2.0 * screenY / height)

	aspect := width / height
	fovScale := math.Tan(c.FOV / 2)

	right, up, forward := c.basis()
	rayDir := forward.Add(right.Mul(ndcX * fovScale * aspect)).Add(up.Mul(ndcY * fovScale))

	return geometry.NewRay(c.Position, rayDir)
}
