package blendshape

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/faceforge/facevis/pkg/mesh"
)

// ErrWeightCount reports a weight vector whose length does not match
// the number of expression shapes in the set.
var ErrWeightCount = errors.New("weight count does not match blendshape count")

// TopologyMismatchError reports an expression shape whose topology
// differs from the neutral shape's.
type TopologyMismatchError struct {
	Index  int
	Reason string
}

func (e *TopologyMismatchError) Error() string {
	return fmt.Sprintf("blendshape %d topology mismatch: %s", e.Index, e.Reason)
}

// Compose builds the personalized mesh
//
//	V_out = V_base + Σ_j weights[j] · (V_j − V_base)
//
// per vertex in double precision. The result shares the neutral shape's
// face connectivity; its normals are recomputed from the blended
// geometry, never blended themselves. The set's topology is validated
// first, so a malformed set can never produce plausible-looking wrong
// geometry.
func Compose(set *Set, weights []float64) (*mesh.Mesh, error) {
	if len(weights) != set.Count() {
		return nil, fmt.Errorf("%w: %d weights for %d shapes", ErrWeightCount, len(weights), set.Count())
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}

	out := set.Base().Clone()
	base := set.Base().Vertices
	for j, w := range weights {
		if w == 0 {
			continue
		}
		delta := set.Delta(j + 1).Vertices
		for i := range out.Vertices {
			out.Vertices[i] = r3.Add(out.Vertices[i], r3.Scale(w, r3.Sub(delta[i], base[i])))
		}
	}
	out.ComputeNormals()
	return out, nil
}
