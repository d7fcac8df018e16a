// Package geom provides float64 vector math for mesh processing,
// built on gonum's spatial/r3 types.
package geom

import "gonum.org/v1/gonum/spatial/r3"

// Vec3 is a 3D vector with float64 components.
type Vec3 = r3.Vec

// Vec2 is a 2D vector, used for texture coordinates.
type Vec2 struct {
	U, V float64
}

// Unit returns v normalized to unit length, or the zero vector if v
// has zero length. r3.Unit is not used directly because it produces
// NaN components for the zero vector.
func Unit(v Vec3) Vec3 {
	if v.X == 0 && v.Y == 0 && v.Z == 0 {
		return Vec3{}
	}
	return r3.Unit(v)
}

// TriangleNormal returns the unnormalized normal of triangle (a, b, c),
// following the right-hand rule. Its length is twice the triangle area,
// so accumulating these weights vertex normals by face area.
func TriangleNormal(a, b, c Vec3) Vec3 {
	return r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
}

// Lerp returns a + t*(b-a).
func Lerp(a, b Vec3, t float64) Vec3 {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Vec3) Vec3 {
	return r3.Scale(0.5, r3.Add(a, b))
}
