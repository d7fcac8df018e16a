package config

import (
	"errors"
	"testing"
)

func validOptions() *Options {
	return &Options{
		ImagePath:       "face.png",
		ResultPath:      "face.res",
		OutputPath:      "out.png",
		BlendshapeDir:   "shapes",
		BlendshapeCount: DefaultBlendshapeCount,
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validOptions().Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestValidate_Required(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
		want   error
	}{
		{"missing img", func(o *Options) { o.ImagePath = "" }, ErrMissingImage},
		{"missing res", func(o *Options) { o.ResultPath = "" }, ErrMissingResult},
		{"missing output", func(o *Options) { o.OutputPath = "" }, ErrMissingOutput},
		{"no mesh source", func(o *Options) { o.BlendshapeDir = "" }, ErrNoMeshSource},
		{"bad shape count", func(o *Options) { o.BlendshapeCount = 0 }, ErrBadShapeCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := validOptions()
			tt.mutate(o)
			if err := o.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidate_DirectMeshNeedsNoBlendshapes(t *testing.T) {
	o := validOptions()
	o.BlendshapeDir = ""
	o.BlendshapeCount = 0
	o.MeshPath = "face.obj"
	if err := o.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil for direct-mesh mode", err)
	}
}

func TestSubdivisionLevels(t *testing.T) {
	o := validOptions()
	if got := o.SubdivisionLevels(); got != 1 {
		t.Errorf("SubdivisionLevels() = %d, want 1", got)
	}
	o.NoSubdivision = true
	if got := o.SubdivisionLevels(); got != 0 {
		t.Errorf("SubdivisionLevels() with -no-subdivision = %d, want 0", got)
	}
}
