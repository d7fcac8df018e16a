// Package render assembles render requests from a composed mesh, a
// reconstruction result and optional overlays, and rasterizes them
// offscreen over the background image.
package render

import (
	"image"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/faceforge/facevis/pkg/geom"
	"github.com/faceforge/facevis/pkg/mesh"
)

// Request is everything one render call needs. It borrows its inputs
// for the duration of the call and is not retained afterwards.
type Request struct {
	Mesh       *mesh.TriMesh
	Background image.Image

	// Output raster dimensions, derived from the background size and
	// the settings' target width.
	Width, Height int

	// Camera model and rigid mesh transform, in the background image's
	// native pixel space.
	FocalLength float64
	PrincipalX  float64
	PrincipalY  float64
	Rotation    mgl64.Quat
	Translation mgl64.Vec3

	// Optional overlays.
	Texture          image.Image
	Normals          []geom.Vec3 // per-vertex override; nil uses mesh normals
	AmbientOcclusion []float64   // per-vertex scalar; nil disables
	AllowedFaces     []int       // restricts rasterized faces; nil renders all

	IndexEncoded bool
	Lighting     bool

	Settings Settings
}

// Renderer rasterizes a request into an image. Implementations report
// failures opaquely; callers treat them as terminal.
type Renderer interface {
	Render(req *Request) (*image.NRGBA, error)
}
