package geom

import (
	"math"
	"testing"
)

func TestUnit(t *testing.T) {
	v := Unit(Vec3{X: 3, Y: 4})
	l := math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
	if l < 0.999 || l > 1.001 {
		t.Errorf("Unit length = %v, want ~1", l)
	}
}

func TestUnitZeroVector(t *testing.T) {
	v := Unit(Vec3{})
	if v != (Vec3{}) {
		t.Errorf("Unit(zero) = %v, want zero vector", v)
	}
}

func TestTriangleNormal(t *testing.T) {
	// Unit right triangle in the XY plane faces +Z with length 1 (2x area).
	n := TriangleNormal(Vec3{}, Vec3{X: 1}, Vec3{Y: 1})
	want := Vec3{Z: 1}
	if n != want {
		t.Errorf("TriangleNormal = %v, want %v", n, want)
	}
}

func TestMidpoint(t *testing.T) {
	m := Midpoint(Vec3{X: 2}, Vec3{Y: 4})
	want := Vec3{X: 1, Y: 2}
	if m != want {
		t.Errorf("Midpoint = %v, want %v", m, want)
	}
}

func TestLerp(t *testing.T) {
	p := Lerp(Vec3{}, Vec3{Z: 2}, 0.25)
	want := Vec3{Z: 0.5}
	if p != want {
		t.Errorf("Lerp = %v, want %v", p, want)
	}
}
