// Package remap expands face indices defined on the original quad
// topology into the index space of the processed (triangulated and
// subdivided) topology.
//
// The expansion mirrors two fixed conventions of the mesh pipeline:
// triangulation turns quad i into triangles 2i and 2i+1, and each
// subdivision pass turns triangle f into children 4f..4f+3. Both are
// covered by tests against the mesh package so a change in its indexing
// shows up here, not as silently wrong renders.
package remap

import (
	"errors"
	"fmt"
)

// Remap argument errors.
var (
	ErrNegativeLevels    = errors.New("subdivision level must be non-negative")
	ErrNegativeFaceIndex = errors.New("face index must be non-negative")
)

// Remap expands quad-face indices through one triangulation pass and
// levels subdivision passes. Each input index contributes 2·4^levels
// output indices; input order is preserved and children are emitted
// contiguously in ascending order, so the result is reproducible.
// An empty input yields an empty, non-nil result.
func Remap(faces []int, levels int) ([]int, error) {
	if levels < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeLevels, levels)
	}
	for _, f := range faces {
		if f < 0 {
			return nil, fmt.Errorf("%w: %d", ErrNegativeFaceIndex, f)
		}
	}

	// Triangulation: quad i -> triangles 2i, 2i+1.
	out := make([]int, 0, 2*len(faces))
	for _, f := range faces {
		out = append(out, 2*f, 2*f+1)
	}

	// Subdivision: triangle f -> 4f, 4f+1, 4f+2, 4f+3 per pass.
	for l := 0; l < levels; l++ {
		next := make([]int, 0, 4*len(out))
		for _, f := range out {
			base := 4 * f
			next = append(next, base, base+1, base+2, base+3)
		}
		out = next
	}
	return out, nil
}
