package mesh

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/faceforge/facevis/pkg/geom"
)

// TriMesh is a triangle-faced mesh, produced from a quad Mesh by
// Triangulate and refined by Subdivide. Face indexing follows fixed
// conventions that downstream index remapping relies on.
type TriMesh struct {
	Vertices []geom.Vec3
	Faces    [][3]int
	Normals  []geom.Vec3
	UVs      []geom.Vec2
	FaceUVs  [][3]int
}

// Triangulate splits every quad into two triangles. Quad i with corners
// (v0, v1, v2, v3) becomes triangle 2i = (v0, v1, v2) and triangle
// 2i+1 = (v0, v2, v3). Vertices, normals and UVs are shared unchanged.
func (m *Mesh) Triangulate() *TriMesh {
	t := &TriMesh{
		Vertices: make([]geom.Vec3, len(m.Vertices)),
		Faces:    make([][3]int, 0, 2*len(m.Faces)),
	}
	copy(t.Vertices, m.Vertices)
	if m.Normals != nil {
		t.Normals = make([]geom.Vec3, len(m.Normals))
		copy(t.Normals, m.Normals)
	}
	for _, f := range m.Faces {
		t.Faces = append(t.Faces, [3]int{f[0], f[1], f[2]}, [3]int{f[0], f[2], f[3]})
	}
	if m.UVs != nil && len(m.FaceUVs) == len(m.Faces) {
		t.UVs = make([]geom.Vec2, len(m.UVs))
		copy(t.UVs, m.UVs)
		t.FaceUVs = make([][3]int, 0, 2*len(m.FaceUVs))
		for _, f := range m.FaceUVs {
			t.FaceUVs = append(t.FaceUVs, [3]int{f[0], f[1], f[2]}, [3]int{f[0], f[2], f[3]})
		}
	}
	return t
}

// Subdivide performs one midpoint subdivision pass. Triangle f with
// corners (a, b, c) and edge midpoints mab, mbc, mca becomes four
// children, numbered contiguously:
//
//	4f+0 = (a, mab, mca)
//	4f+1 = (mab, b, mbc)
//	4f+2 = (mca, mbc, c)
//	4f+3 = (mab, mbc, mca)
//
// Midpoint vertices are shared between adjacent triangles. Normals are
// recomputed from the refined geometry.
func (t *TriMesh) Subdivide() *TriMesh {
	s := &TriMesh{
		Vertices: make([]geom.Vec3, len(t.Vertices), len(t.Vertices)+3*len(t.Faces)/2),
		Faces:    make([][3]int, 0, 4*len(t.Faces)),
	}
	copy(s.Vertices, t.Vertices)

	mids := make(map[[2]int]int)
	mid := func(a, b int) int {
		key := [2]int{a, b}
		if b < a {
			key = [2]int{b, a}
		}
		if vi, ok := mids[key]; ok {
			return vi
		}
		vi := len(s.Vertices)
		s.Vertices = append(s.Vertices, geom.Midpoint(t.Vertices[a], t.Vertices[b]))
		mids[key] = vi
		return vi
	}

	hasUVs := t.UVs != nil && len(t.FaceUVs) == len(t.Faces)
	var uvMids map[[2]int]int
	if hasUVs {
		s.UVs = make([]geom.Vec2, len(t.UVs))
		copy(s.UVs, t.UVs)
		s.FaceUVs = make([][3]int, 0, 4*len(t.Faces))
		uvMids = make(map[[2]int]int)
	}
	uvMid := func(a, b int) int {
		key := [2]int{a, b}
		if b < a {
			key = [2]int{b, a}
		}
		if ui, ok := uvMids[key]; ok {
			return ui
		}
		ui := len(s.UVs)
		ua, ub := t.UVs[a], t.UVs[b]
		s.UVs = append(s.UVs, geom.Vec2{U: (ua.U + ub.U) / 2, V: (ua.V + ub.V) / 2})
		uvMids[key] = ui
		return ui
	}

	for fi, f := range t.Faces {
		a, b, c := f[0], f[1], f[2]
		mab, mbc, mca := mid(a, b), mid(b, c), mid(c, a)
		s.Faces = append(s.Faces,
			[3]int{a, mab, mca},
			[3]int{mab, b, mbc},
			[3]int{mca, mbc, c},
			[3]int{mab, mbc, mca},
		)
		if hasUVs {
			uf := t.FaceUVs[fi]
			ua, ub, uc := uf[0], uf[1], uf[2]
			uab, ubc, uca := uvMid(ua, ub), uvMid(ub, uc), uvMid(uc, ua)
			s.FaceUVs = append(s.FaceUVs,
				[3]int{ua, uab, uca},
				[3]int{uab, ub, ubc},
				[3]int{uca, ubc, uc},
				[3]int{uab, ubc, uca},
			)
		}
	}

	s.ComputeNormals()
	return s
}

// ComputeNormals recomputes per-vertex normals from the current
// geometry, area-weighted over incident triangles.
func (t *TriMesh) ComputeNormals() {
	acc := make([]geom.Vec3, len(t.Vertices))
	for _, f := range t.Faces {
		n := geom.TriangleNormal(t.Vertices[f[0]], t.Vertices[f[1]], t.Vertices[f[2]])
		for _, vi := range f {
			acc[vi] = r3.Add(acc[vi], n)
		}
	}
	t.Normals = make([]geom.Vec3, len(acc))
	for i, n := range acc {
		t.Normals[i] = geom.Unit(n)
	}
}
