package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/faceforge/facevis/pkg/geom"
)

// nearClip rejects vertices at or behind the camera plane.
const nearClip = 1e-6

// Rasterizer is a z-buffered software renderer. It composites the mesh
// over the (scaled) background image using a pinhole projection.
type Rasterizer struct{}

// NewRasterizer returns a software rasterizer.
func NewRasterizer() *Rasterizer { return &Rasterizer{} }

// projected is a vertex transformed to camera space and projected to
// output pixel coordinates.
type projected struct {
	cam    geom.Vec3
	sx, sy float64
	ok     bool
}

// Render rasterizes the request.
func (ras *Rasterizer) Render(req *Request) (*image.NRGBA, error) {
	if req.Mesh == nil || req.Background == nil {
		return nil, fmt.Errorf("render request missing mesh or background")
	}
	if req.Width <= 0 || req.Height <= 0 {
		return nil, fmt.Errorf("invalid output size %dx%d", req.Width, req.Height)
	}
	if req.FocalLength <= 0 {
		return nil, fmt.Errorf("camera focal length must be positive, got %g", req.FocalLength)
	}

	out := scaleImage(req.Background, req.Width, req.Height)

	nativeW := float64(req.Background.Bounds().Dx())
	nativeH := float64(req.Background.Bounds().Dy())
	cx, cy := req.PrincipalX, req.PrincipalY
	if cx == 0 && cy == 0 {
		cx, cy = nativeW/2, nativeH/2
	}
	scale := float64(req.Width) / nativeW

	m := req.Mesh
	verts := make([]projected, len(m.Vertices))
	for i, v := range m.Vertices {
		p := rotate(req.Rotation, v)
		p = r3.Add(p, geom.Vec3{X: req.Translation.X(), Y: req.Translation.Y(), Z: req.Translation.Z()})
		pv := &verts[i]
		pv.cam = p
		if p.Z <= nearClip {
			continue
		}
		pv.sx = (req.FocalLength*p.X/p.Z + cx) * scale
		pv.sy = (cy - req.FocalLength*p.Y/p.Z) * scale
		pv.ok = true
	}

	normals := req.Normals
	if normals == nil {
		normals = m.Normals
	}
	if req.Lighting && len(normals) != len(m.Vertices) {
		return nil, fmt.Errorf("lighting requires per-vertex normals: have %d for %d vertices", len(normals), len(m.Vertices))
	}
	normalsCam := make([]geom.Vec3, len(normals))
	for i, n := range normals {
		normalsCam[i] = rotate(req.Rotation, n)
	}

	light := geom.Unit(geom.Vec3{
		X: req.Settings.LightDirection[0],
		Y: req.Settings.LightDirection[1],
		Z: req.Settings.LightDirection[2],
	})
	if light == (geom.Vec3{}) {
		light = geom.Vec3{Z: -1}
	}

	var allowed map[int]struct{}
	if req.AllowedFaces != nil {
		allowed = make(map[int]struct{}, len(req.AllowedFaces))
		for _, f := range req.AllowedFaces {
			allowed[f] = struct{}{}
		}
	}

	zbuf := make([]float64, req.Width*req.Height)
	for i := range zbuf {
		zbuf[i] = math.Inf(1)
	}

	for fi, f := range m.Faces {
		if allowed != nil {
			if _, ok := allowed[fi]; !ok {
				continue
			}
		}
		a, b, c := verts[f[0]], verts[f[1]], verts[f[2]]
		if !a.ok || !b.ok || !c.ok {
			continue
		}
		area := edge(a.sx, a.sy, b.sx, b.sy, c.sx, c.sy)
		if math.Abs(area) < 1e-12 {
			continue
		}
		if req.Settings.BackfaceCull {
			n := geom.TriangleNormal(a.cam, b.cam, c.cam)
			if r3.Dot(n, a.cam) >= 0 {
				continue
			}
		}

		minX := clampInt(int(math.Floor(min3(a.sx, b.sx, c.sx))), 0, req.Width-1)
		maxX := clampInt(int(math.Ceil(max3(a.sx, b.sx, c.sx))), 0, req.Width-1)
		minY := clampInt(int(math.Floor(min3(a.sy, b.sy, c.sy))), 0, req.Height-1)
		maxY := clampInt(int(math.Ceil(max3(a.sy, b.sy, c.sy))), 0, req.Height-1)

		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				px, py := float64(x)+0.5, float64(y)+0.5
				w0 := edge(b.sx, b.sy, c.sx, c.sy, px, py)
				w1 := edge(c.sx, c.sy, a.sx, a.sy, px, py)
				w2 := edge(a.sx, a.sy, b.sx, b.sy, px, py)
				if !sameSide(w0, area) || !sameSide(w1, area) || !sameSide(w2, area) {
					continue
				}
				l0, l1, l2 := w0/area, w1/area, w2/area

				invZ := l0/a.cam.Z + l1/b.cam.Z + l2/c.cam.Z
				z := 1 / invZ
				idx := y*req.Width + x
				if z >= zbuf[idx] {
					continue
				}
				zbuf[idx] = z

				// Perspective-correct barycentric weights.
				p0 := l0 / a.cam.Z * z
				p1 := l1 / b.cam.Z * z
				p2 := l2 / c.cam.Z * z

				if req.IndexEncoded {
					out.SetNRGBA(x, y, EncodeFaceIndex(fi))
					continue
				}

				cr := req.Settings.MeshColor[0]
				cg := req.Settings.MeshColor[1]
				cb := req.Settings.MeshColor[2]
				if req.Texture != nil && len(m.FaceUVs) == len(m.Faces) {
					uf := m.FaceUVs[fi]
					u := p0*m.UVs[uf[0]].U + p1*m.UVs[uf[1]].U + p2*m.UVs[uf[2]].U
					v := p0*m.UVs[uf[0]].V + p1*m.UVs[uf[1]].V + p2*m.UVs[uf[2]].V
					cr, cg, cb = sampleTexture(req.Texture, u, v)
				}

				if req.Lighting {
					n := geom.Unit(geom.Vec3{
						X: p0*normalsCam[f[0]].X + p1*normalsCam[f[1]].X + p2*normalsCam[f[2]].X,
						Y: p0*normalsCam[f[0]].Y + p1*normalsCam[f[1]].Y + p2*normalsCam[f[2]].Y,
						Z: p0*normalsCam[f[0]].Z + p1*normalsCam[f[1]].Z + p2*normalsCam[f[2]].Z,
					})
					d := r3.Dot(n, light)
					if d < 0 {
						d = -d // shade both sides; triangulated quads carry mixed winding
					}
					shade := clamp01(req.Settings.Ambient + req.Settings.Diffuse*d)
					cr, cg, cb = cr*shade, cg*shade, cb*shade
				}

				if req.AmbientOcclusion != nil {
					ao := clamp01(p0*req.AmbientOcclusion[f[0]] + p1*req.AmbientOcclusion[f[1]] + p2*req.AmbientOcclusion[f[2]])
					cr, cg, cb = cr*ao, cg*ao, cb*ao
				}

				alpha := clamp01(req.Settings.MeshAlpha)
				bg := out.NRGBAAt(x, y)
				out.SetNRGBA(x, y, color.NRGBA{
					R: blend(cr, bg.R, alpha),
					G: blend(cg, bg.G, alpha),
					B: blend(cb, bg.B, alpha),
					A: 255,
				})
			}
		}
	}

	return out, nil
}

// EncodeFaceIndex packs a face index into an index-encoded pixel,
// little-endian across the R, G and B channels.
func EncodeFaceIndex(fi int) color.NRGBA {
	return color.NRGBA{
		R: uint8(fi),
		G: uint8(fi >> 8),
		B: uint8(fi >> 16),
		A: 255,
	}
}

// DecodeFaceIndex is the inverse of EncodeFaceIndex.
func DecodeFaceIndex(c color.NRGBA) int {
	return int(c.R) | int(c.G)<<8 | int(c.B)<<16
}

// sampleTexture samples nearest-neighbor at OBJ-style UV coordinates
// (origin bottom-left).
func sampleTexture(tex image.Image, u, v float64) (float64, float64, float64) {
	tb := tex.Bounds()
	tx := tb.Min.X + clampInt(int(u*float64(tb.Dx())), 0, tb.Dx()-1)
	ty := tb.Min.Y + clampInt(int((1-v)*float64(tb.Dy())), 0, tb.Dy()-1)
	r, g, b, _ := tex.At(tx, ty).RGBA()
	return float64(r) / 65535, float64(g) / 65535, float64(b) / 65535
}

func rotate(q mgl64.Quat, v geom.Vec3) geom.Vec3 {
	r := q.Rotate(mgl64.Vec3{v.X, v.Y, v.Z})
	return geom.Vec3{X: r.X(), Y: r.Y(), Z: r.Z()}
}

// edge is the signed area of (p, q, r) doubled; its sign tells which
// side of pq the point r lies on.
func edge(px, py, qx, qy, rx, ry float64) float64 {
	return (qx-px)*(ry-py) - (qy-py)*(rx-px)
}

func sameSide(w, area float64) bool {
	if area > 0 {
		return w >= 0
	}
	return w <= 0
}

func blend(c float64, bg uint8, alpha float64) uint8 {
	v := alpha*c*255 + (1-alpha)*float64(bg)
	return uint8(math.Round(clamp01(v/255) * 255))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func min3(a, b, c float64) float64 { return math.Min(a, math.Min(b, c)) }
func max3(a, b, c float64) float64 { return math.Max(a, math.Max(b, c)) }
