// Package recon loads reconstruction result files: the camera model,
// rigid head pose and expression weights estimated for one input image.
package recon

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// ErrBadRotation reports a pose rotation that is not a quaternion.
var ErrBadRotation = errors.New("reconstruction result rotation must have 4 components (w, x, y, z)")

// CameraParams is a pinhole camera: focal length and principal point in
// pixels of the native background image.
type CameraParams struct {
	FocalLength float64 `yaml:"focal_length"`
	PrincipalX  float64 `yaml:"principal_x"`
	PrincipalY  float64 `yaml:"principal_y"`
}

// Pose is the rigid transform placing the mesh in camera space.
type Pose struct {
	Rotation    []float64  `yaml:"rotation"` // quaternion, w x y z
	Translation [3]float64 `yaml:"translation"`
}

// Result is a parsed reconstruction result.
type Result struct {
	Camera            CameraParams `yaml:"camera"`
	Pose              Pose         `yaml:"pose"`
	ExpressionWeights []float64    `yaml:"weights"`
}

// LoadResult reads and validates a reconstruction result file.
func LoadResult(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading reconstruction result: %w", err)
	}
	var r Result
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(r.Pose.Rotation) != 4 {
		return nil, fmt.Errorf("%s: %w (got %d)", path, ErrBadRotation, len(r.Pose.Rotation))
	}
	return &r, nil
}

// Weights returns the expression weight vector. The neutral shape
// carries no weight; entry j scales blendshape j+1.
func (r *Result) Weights() []float64 {
	return r.ExpressionWeights
}

// Rotation returns the pose rotation as a normalized quaternion.
func (r *Result) Rotation() mgl64.Quat {
	q := mgl64.Quat{
		W: r.Pose.Rotation[0],
		V: mgl64.Vec3{r.Pose.Rotation[1], r.Pose.Rotation[2], r.Pose.Rotation[3]},
	}
	if q.Len() == 0 {
		return mgl64.QuatIdent()
	}
	return q.Normalize()
}

// Translation returns the pose translation vector.
func (r *Result) Translation() mgl64.Vec3 {
	return mgl64.Vec3{r.Pose.Translation[0], r.Pose.Translation[1], r.Pose.Translation[2]}
}
