// Package mesh provides the quad-faced mesh type used by the blendshape
// pipeline, along with normal computation, triangulation and subdivision.
package mesh

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/faceforge/facevis/pkg/geom"
)

// Mesh is a quad-faced mesh. All meshes in one blendshape set share the
// same vertex count and face connectivity; only vertex positions differ.
//
// UVs and FaceUVs are optional. When present, FaceUVs is parallel to
// Faces and indexes into UVs.
type Mesh struct {
	Vertices []geom.Vec3
	Faces    [][4]int
	Normals  []geom.Vec3
	UVs      []geom.Vec2
	FaceUVs  [][4]int
}

// ComputeNormals recomputes per-vertex normals from the current vertex
// positions. Each quad is fanned into two triangles whose area-weighted
// normals accumulate onto their corner vertices.
func (m *Mesh) ComputeNormals() {
	acc := make([]geom.Vec3, len(m.Vertices))
	for _, f := range m.Faces {
		for _, tri := range [2][3]int{{f[0], f[1], f[2]}, {f[0], f[2], f[3]}} {
			n := geom.TriangleNormal(m.Vertices[tri[0]], m.Vertices[tri[1]], m.Vertices[tri[2]])
			for _, vi := range tri {
				acc[vi] = r3.Add(acc[vi], n)
			}
		}
	}
	m.Normals = make([]geom.Vec3, len(acc))
	for i, n := range acc {
		m.Normals[i] = geom.Unit(n)
	}
}

// SameTopology reports whether m and o have identical vertex counts and
// identical face connectivity.
func (m *Mesh) SameTopology(o *Mesh) bool {
	if len(m.Vertices) != len(o.Vertices) || len(m.Faces) != len(o.Faces) {
		return false
	}
	for i := range m.Faces {
		if m.Faces[i] != o.Faces[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Vertices: make([]geom.Vec3, len(m.Vertices)),
		Faces:    make([][4]int, len(m.Faces)),
	}
	copy(c.Vertices, m.Vertices)
	copy(c.Faces, m.Faces)
	if m.Normals != nil {
		c.Normals = make([]geom.Vec3, len(m.Normals))
		copy(c.Normals, m.Normals)
	}
	if m.UVs != nil {
		c.UVs = make([]geom.Vec2, len(m.UVs))
		copy(c.UVs, m.UVs)
	}
	if m.FaceUVs != nil {
		c.FaceUVs = make([][4]int, len(m.FaceUVs))
		copy(c.FaceUVs, m.FaceUVs)
	}
	return c
}
