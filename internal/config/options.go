// Package config defines the visualization run options and their
// command-line parsing.
package config

import (
	"errors"
	"fmt"
)

// DefaultBlendshapeCount is the number of expression blendshapes in the
// face model, excluding the neutral shape.
const DefaultBlendshapeCount = 46

// Options holds one visualization run's inputs. Optional paths are
// empty strings when absent; there is no dynamic key/value bag, every
// input has a named, typed field.
type Options struct {
	// Required.
	ImagePath  string // background image
	ResultPath string // reconstruction result
	OutputPath string // output raster image

	// Mesh source: MeshPath bypasses blendshape composition entirely.
	MeshPath        string
	BlendshapeDir   string
	BlendshapeCount int
	InitNaming      bool // load Binit_<i>.obj instead of B_<i>.obj

	// Optional outputs and overlays.
	OutputMeshPath       string
	FacesPath            string // face-index selection on the quad topology
	AmbientOcclusionPath string
	TexturePath          string
	NormalsPath          string
	SettingsPath         string

	NoSubdivision bool

	LogLevel string
	LogFile  string
}

// Validation errors.
var (
	ErrMissingImage  = errors.New("missing required -img option")
	ErrMissingResult = errors.New("missing required -res option")
	ErrMissingOutput = errors.New("missing required -output option")
	ErrNoMeshSource  = errors.New("either -mesh or -init-bs-path must be given")
	ErrBadShapeCount = errors.New("-blendshape-count must be positive")
)

// SubdivisionLevels returns the number of subdivision passes to apply
// to the rendered mesh and to face-index remapping.
func (o *Options) SubdivisionLevels() int {
	if o.NoSubdivision {
		return 0
	}
	return 1
}

// Validate checks that the required options are present and consistent.
func (o *Options) Validate() error {
	if o.ImagePath == "" {
		return ErrMissingImage
	}
	if o.ResultPath == "" {
		return ErrMissingResult
	}
	if o.OutputPath == "" {
		return ErrMissingOutput
	}
	if o.MeshPath == "" && o.BlendshapeDir == "" {
		return ErrNoMeshSource
	}
	if o.MeshPath == "" && o.BlendshapeCount <= 0 {
		return fmt.Errorf("%w (got %d)", ErrBadShapeCount, o.BlendshapeCount)
	}
	return nil
}
