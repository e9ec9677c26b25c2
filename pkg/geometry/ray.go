package geometry

import "math"

// rayEpsilon rejects near-parallel hits and self intersections at the origin
const rayEpsilon = 1e-9

// Ray is a half line starting at Origin heading along Direction
type Ray struct {
	Origin    Vector3
	Direction Vector3
}

// NewRay creates a ray with a normalized direction
func NewRay(origin, direction Vector3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vector3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IntersectTriangle tests the ray against a triangle (both faces) using the
// Möller–Trumbore algorithm. It returns the ray parameter of the hit.
func (r Ray) IntersectTriangle(tri Triangle) (float64, bool) {
	edge1 := tri.V2.Sub(tri.V1)
	edge2 := tri.V3.Sub(tri.V1)

	p := r.Direction.Cross(edge2)
	det := edge1.Dot(p)
	if math.Abs(det) < rayEpsilon {
		return 0, false
	}
	invDet := 1.0 / det

	s := r.Origin.Sub(tri.V1)
	u := s.Dot(p) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := r.Direction.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := edge2.Dot(q) * invDet
	if t <= rayEpsilon {
		return 0, false
	}
	return t, true
}
