package render

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/faceforge/facevis/internal/recon"
	"github.com/faceforge/facevis/pkg/formats"
	"github.com/faceforge/facevis/pkg/geom"
	"github.com/faceforge/facevis/pkg/mesh"
)

// Binding errors.
var (
	ErrResourceLoad   = errors.New("render resource load failed")
	ErrFaceOutOfRange = errors.New("restricted face index out of range")
)

// Overlays names the optional per-render inputs. Empty paths and nil
// slices mean the overlay is absent; each is applied independently.
type Overlays struct {
	TexturePath          string
	NormalsPath          string
	AmbientOcclusionPath string
	Faces                []int // remapped triangle indices
}

// Binding assembles render requests and submits them to a renderer.
type Binding struct {
	renderer Renderer
	settings Settings
}

// NewBinding returns a binding that submits to r with the given
// settings.
func NewBinding(r Renderer, settings Settings) *Binding {
	return &Binding{renderer: r, settings: settings}
}

// Bind builds a render request from the processed mesh, the
// reconstruction result, the background image and the overlays. Overlay
// files that are missing or sized wrongly for the mesh surface as
// ErrResourceLoad.
func (b *Binding) Bind(m *mesh.TriMesh, res *recon.Result, background image.Image, ov Overlays) (*Request, error) {
	w, h := b.outputSize(background)

	req := &Request{
		Mesh:         m,
		Background:   background,
		Width:        w,
		Height:       h,
		FocalLength:  res.Camera.FocalLength,
		PrincipalX:   res.Camera.PrincipalX,
		PrincipalY:   res.Camera.PrincipalY,
		Rotation:     res.Rotation(),
		Translation:  res.Translation(),
		IndexEncoded: false,
		Lighting:     true,
		Settings:     b.settings,
	}

	if ov.TexturePath != "" {
		tex, err := LoadImage(ov.TexturePath)
		if err != nil {
			return nil, fmt.Errorf("%w: texture: %v", ErrResourceLoad, err)
		}
		req.Texture = tex
	}

	if ov.NormalsPath != "" {
		vals, err := formats.LoadFloats(ov.NormalsPath)
		if err != nil {
			return nil, fmt.Errorf("%w: normals: %v", ErrResourceLoad, err)
		}
		if len(vals) != 3*len(m.Vertices) {
			return nil, fmt.Errorf("%w: normals: %d values for %d vertices, want %d",
				ErrResourceLoad, len(vals), len(m.Vertices), 3*len(m.Vertices))
		}
		normals := make([]geom.Vec3, len(m.Vertices))
		for i := range normals {
			normals[i] = geom.Unit(geom.Vec3{X: vals[3*i], Y: vals[3*i+1], Z: vals[3*i+2]})
		}
		req.Normals = normals
	}

	if ov.AmbientOcclusionPath != "" {
		vals, err := formats.LoadFloats(ov.AmbientOcclusionPath)
		if err != nil {
			return nil, fmt.Errorf("%w: ambient occlusion: %v", ErrResourceLoad, err)
		}
		if len(vals) != len(m.Vertices) {
			return nil, fmt.Errorf("%w: ambient occlusion: %d values for %d vertices",
				ErrResourceLoad, len(vals), len(m.Vertices))
		}
		req.AmbientOcclusion = vals
	}

	if ov.Faces != nil {
		for _, f := range ov.Faces {
			if f < 0 || f >= len(m.Faces) {
				return nil, fmt.Errorf("%w: %d (mesh has %d faces)", ErrFaceOutOfRange, f, len(m.Faces))
			}
		}
		req.AllowedFaces = ov.Faces
	}

	return req, nil
}

// Submit renders the request. Renderer failures pass through opaquely.
func (b *Binding) Submit(req *Request) (*image.NRGBA, error) {
	return b.renderer.Render(req)
}

// outputSize derives the raster dimensions from the background's native
// size, scaled so the width matches the settings' target width.
func (b *Binding) outputSize(background image.Image) (int, int) {
	bounds := background.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if b.settings.TargetWidth <= 0 || w == 0 {
		return w, h
	}
	scale := float64(b.settings.TargetWidth) / float64(w)
	return b.settings.TargetWidth, int(math.Round(float64(h) * scale))
}
