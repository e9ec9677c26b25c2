package geometry

import "math"

// Triangle represents a triangular facet in 3D space
type Triangle struct {
	Normal     Vector3
	V1, V2, V3 Vector3
}

// NewTriangle creates a new triangle
func NewTriangle(normal, v1, v2, v3 Vector3) Triangle {
	return Triangle{
		Normal: normal,
		V1:     v1,
		V2:     v2,
		V3:     v3,
	}
}

// CalculateNormal computes the normal vector for the triangle
func (t Triangle) CalculateNormal() Vector3 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	return edge1.Cross(edge2).Normalize()
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	cross := edge1.Cross(edge2)
	return cross.Length() / 2.0
}

// EdgeLengths returns the lengths of all three edges
func (t Triangle) EdgeLengths() [3]float64 {
	return [3]float64{
		t.V1.Distance(t.V2),
		t.V2.Distance(t.V3),
		t.V3.Distance(t.V1),
	}
}

// Perimeter returns the total length of all edges
func (t Triangle) Perimeter() float64 {
	lengths := t.EdgeLengths()
	return lengths[0] + lengths[1] + lengths[2]
}

// Center returns the centroid of the triangle
func (t Triangle) Center() Vector3 {
	sum := t.V1.Add(t.V2).Add(t.V3)
	return Vector3{X: sum.X / 3, Y: sum.Y / 3, Z: sum.Z / 3}
}

// Angles returns the three interior angles in radians
func (t Triangle) Angles() [3]float64 {
	e1 := t.V2.Sub(t.V1)
	e2 := t.V3.Sub(t.V2)
	e3 := t.V1.Sub(t.V3)

	angle := func(a, b Vector3) float64 {
		return math.Acos(a.Normalize().Dot(b.Normalize()))
	}
	return [3]float64{
		angle(e1, e3.Negate()),
		angle(e1.Negate(), e2),
		angle(e2.Negate(), e3),
	}
}

// Vertices returns the three corners in declaration order
func (t Triangle) Vertices() [3]Vector3 {
	return [3]Vector3{t.V1, t.V2, t.V3}
}

// Transform returns the triangle with all corners mapped through tr.
// The stored normal is recomputed from the transformed corners.
func (t Triangle) Transform(tr Transform) Triangle {
	out := Triangle{
		V1: tr.Apply(t.V1),
		V2: tr.Apply(t.V2),
		V3: tr.Apply(t.V3),
	}
	out.Normal = out.CalculateNormal()
	return out
}

// ProjectPoint returns the orthogonal projection of p onto the triangle's plane
func (t Triangle) ProjectPoint(p Vector3) Vector3 {
	n := t.CalculateNormal()
	if n.Length() == 0 {
		return p
	}
	return p.Sub(n.Mul(p.Sub(t.V1).Dot(n)))
}
