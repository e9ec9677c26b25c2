package geometry

import "math"

// Transform is an affine 4x4 matrix stored in row-major order.
// The bottom row is always (0, 0, 0, 1).
type Transform struct {
	M [16]float64
}

// Identity returns the identity transform
func Identity() Transform {
	return Transform{M: [16]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}}
}

// Translation returns a transform that moves points by v
func Translation(v Vector3) Transform {
	t := Identity()
	t.M[3] = v.X
	t.M[7] = v.Y
	t.M[11] = v.Z
	return t
}

// Scaling returns a transform that scales each axis by the components of v
func Scaling(v Vector3) Transform {
	t := Identity()
	t.M[0] = v.X
	t.M[5] = v.Y
	t.M[10] = v.Z
	return t
}

// RotationX returns a rotation around the X axis (radians)
func RotationX(angle float64) Transform {
	c, s := math.Cos(angle), math.Sin(angle)
	t := Identity()
	t.M[5], t.M[6] = c, -s
	t.M[9], t.M[10] = s, c
	return t
}

// RotationY returns a rotation around the Y axis (radians)
func RotationY(angle float64) Transform {
	c, s := math.Cos(angle), math.Sin(angle)
	t := Identity()
	t.M[0], t.M[2] = c, s
	t.M[8], t.M[10] = -s, c
	return t
}

// RotationZ returns a rotation around the Z axis (radians)
func RotationZ(angle float64) Transform {
	c, s := math.Cos(angle), math.Sin(angle)
	t := Identity()
	t.M[0], t.M[1] = c, -s
	t.M[4], t.M[5] = s, c
	return t
}

// Mul returns t * other, i.e. other is applied first
func (t Transform) Mul(other Transform) Transform {
	var r Transform
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += t.M[row*4+k] * other.M[k*4+col]
			}
			r.M[row*4+col] = sum
		}
	}
	return r
}

// Apply transforms a point (translation included)
func (t Transform) Apply(p Vector3) Vector3 {
	return Vector3{
		X: t.M[0]*p.X + t.M[1]*p.Y + t.M[2]*p.Z + t.M[3],
		Y: t.M[4]*p.X + t.M[5]*p.Y + t.M[6]*p.Z + t.M[7],
		Z: t.M[8]*p.X + t.M[9]*p.Y + t.M[10]*p.Z + t.M[11],
	}
}

// ApplyDirection transforms a direction vector (translation ignored)
func (t Transform) ApplyDirection(d Vector3) Vector3 {
	return Vector3{
		X: t.M[0]*d.X + t.M[1]*d.Y + t.M[2]*d.Z,
		Y: t.M[4]*d.X + t.M[5]*d.Y + t.M[6]*d.Z,
		Z: t.M[8]*d.X + t.M[9]*d.Y + t.M[10]*d.Z,
	}
}

// Position returns the translation part of the transform
func (t Transform) Position() Vector3 {
	return Vector3{X: t.M[3], Y: t.M[7], Z: t.M[11]}
}

// Inverse returns the inverse of an affine transform.
// The second return value is false if the linear part is singular.
func (t Transform) Inverse() (Transform, bool) {
	a, b, c := t.M[0], t.M[1], t.M[2]
	d, e, f := t.M[4], t.M[5], t.M[6]
	g, h, i := t.M[8], t.M[9], t.M[10]

	// Cofactors of the 3x3 linear part
	c00 := e*i - f*h
	c01 := -(d*i - f*g)
	c02 := d*h - e*g
	det := a*c00 + b*c01 + c*c02
	if math.Abs(det) < 1e-12 {
		return Identity(), false
	}
	inv := 1.0 / det

	var r Transform
	r.M[0] = c00 * inv
	r.M[1] = -(b*i - c*h) * inv
	r.M[2] = (b*f - c*e) * inv
	r.M[4] = c01 * inv
	r.M[5] = (a*i - c*g) * inv
	r.M[6] = -(a*f - c*d) * inv
	r.M[8] = c02 * inv
	r.M[9] = -(a*h - b*g) * inv
	r.M[10] = (a*e - b*d) * inv
	r.M[15] = 1

	// Inverse translation: -R^-1 * T
	tr := r.ApplyDirection(t.Position())
	r.M[3] = -tr.X
	r.M[7] = -tr.Y
	r.M[11] = -tr.Z

	return r, true
}
