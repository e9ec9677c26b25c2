package geometry

import (
	"math"
	"testing"
)

func TestVector3AddSub(t *testing.T) {
	a := NewVector3(1, 2, 3)
	b := NewVector3(4, 5, 6)

	if sum := a.Add(b); sum != NewVector3(5, 7, 9) {
		t.Errorf("Add failed: expected (5,7,9), got %v", sum)
	}
	if diff := b.Sub(a); diff != NewVector3(3, 3, 3) {
		t.Errorf("Sub failed: expected (3,3,3), got %v", diff)
	}
	if back := a.Add(b).Sub(b); back != a {
		t.Errorf("Add/Sub failed: expected %v, got %v", a, back)
	}
}

func TestVector3Negate(t *testing.T) {
	v := NewVector3(1, -2, 0.5)
	expected := NewVector3(-1, 2, -0.5)

	if result := v.Negate(); result != expected {
		t.Errorf("Negate failed: expected %v, got %v", expected, result)
	}
	if zero := v.Add(v.Negate()); zero != (Vector3{}) {
		t.Errorf("Negate failed: v + -v should be zero, got %v", zero)
	}
}

func TestVector3Length(t *testing.T) {
	v := NewVector3(3, 4, 12)

	if sq := v.LengthSquared(); sq != 169 {
		t.Errorf("LengthSquared failed: expected 169, got %v", sq)
	}
	if length := v.Length(); math.Abs(length-13) > 1e-10 {
		t.Errorf("Length failed: expected 13, got %v", length)
	}
}

func TestVector3Distance(t *testing.T) {
	a := NewVector3(1, 1, 1)
	b := NewVector3(4, 5, 1)

	if sq := a.DistanceSquared(b); sq != 25 {
		t.Errorf("DistanceSquared failed: expected 25, got %v", sq)
	}
	if d := a.Distance(b); math.Abs(d-5) > 1e-10 {
		t.Errorf("Distance failed: expected 5, got %v", d)
	}
	if d := b.Distance(a); math.Abs(d-5) > 1e-10 {
		t.Errorf("Distance failed: expected symmetric 5, got %v", d)
	}
}

func TestVector3Lerp(t *testing.T) {
	a := NewVector3(0, 2, -4)
	b := NewVector3(10, 4, 4)

	if r := a.Lerp(b, 0); r != a {
		t.Errorf("Lerp(0) failed: expected %v, got %v", a, r)
	}
	if r := a.Lerp(b, 1); r != b {
		t.Errorf("Lerp(1) failed: expected %v, got %v", b, r)
	}
	if r := a.Lerp(b, 0.5); r != NewVector3(5, 3, 0) {
		t.Errorf("Lerp(0.5) failed: expected (5,3,0), got %v", r)
	}
}

func TestVector3ApproxEqual(t *testing.T) {
	v := NewVector3(1, 2, 3)

	if !v.ApproxEqual(NewVector3(1+1e-12, 2, 3-1e-12), 1e-10) {
		t.Errorf("ApproxEqual failed: nearby vectors should match")
	}
	if v.ApproxEqual(NewVector3(1, 2.001, 3), 1e-10) {
		t.Errorf("ApproxEqual failed: vectors 0.001 apart should not match")
	}
}

func TestVector3Normalize(t *testing.T) {
	n := NewVector3(0, 3, 4).Normalize()

	if !n.ApproxEqual(NewVector3(0, 0.6, 0.8), 1e-10) {
		t.Errorf("Normalize failed: expected (0,0.6,0.8), got %v", n)
	}
	if zero := (Vector3{}).Normalize(); zero != (Vector3{}) {
		t.Errorf("Normalize failed: zero vector should stay zero, got %v", zero)
	}
}

func TestVector3CrossDot(t *testing.T) {
	x := NewVector3(1, 0, 0)
	y := NewVector3(0, 1, 0)

	if z := x.Cross(y); z != NewVector3(0, 0, 1) {
		t.Errorf("Cross failed: expected (0,0,1), got %v", z)
	}
	if z := y.Cross(x); z != NewVector3(0, 0, -1) {
		t.Errorf("Cross failed: expected (0,0,-1), got %v", z)
	}

	result := NewVector3(1, 2, 3).Dot(NewVector3(4, 5, 6))
	if math.Abs(result-32) > 1e-10 {
		t.Errorf("Dot failed: expected 32, got %v", result)
	}
	if d := x.Dot(x.Cross(y)); d != 0 {
		t.Errorf("Dot failed: cross product should be orthogonal, got %v", d)
	}
}

func TestVector3MinMax(t *testing.T) {
	a := NewVector3(1, 5, -2)
	b := NewVector3(3, 0, -1)

	if r := a.Min(b); r != NewVector3(1, 0, -2) {
		t.Errorf("Min failed: expected (1,0,-2), got %v", r)
	}
	if r := a.Max(b); r != NewVector3(3, 5, -1) {
		t.Errorf("Max failed: expected (3,5,-1), got %v", r)
	}
}
