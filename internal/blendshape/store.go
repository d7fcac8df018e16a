// Package blendshape loads blendshape sets and composes personalized
// meshes from them as weighted linear combinations.
package blendshape

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/faceforge/facevis/pkg/formats"
	"github.com/faceforge/facevis/pkg/mesh"
)

// LoadError reports a failed blendshape file load. Index 0 is the
// neutral shape, 1..K are the expression deltas.
type LoadError struct {
	Index int
	Path  string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading blendshape %d (%s): %v", e.Index, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// NotFound reports whether the underlying failure was a missing file
// rather than a parse failure.
func (e *LoadError) NotFound() bool { return errors.Is(e.Err, fs.ErrNotExist) }

// Set is a loaded blendshape set: the neutral shape at index 0 followed
// by K expression shapes. Read-only after Load returns.
type Set struct {
	shapes []*mesh.Mesh
}

// Base returns the neutral shape.
func (s *Set) Base() *mesh.Mesh { return s.shapes[0] }

// Delta returns expression shape j, for j in 1..Count().
func (s *Set) Delta(j int) *mesh.Mesh { return s.shapes[j] }

// Count returns K, the number of expression shapes.
func (s *Set) Count() int { return len(s.shapes) - 1 }

// ShapeName returns the conventional filename of shape i under the two
// naming variants used by the reconstruction pipeline.
func ShapeName(i int, initNaming bool) string {
	if initNaming {
		return fmt.Sprintf("Binit_%d.obj", i)
	}
	return fmt.Sprintf("B_%d.obj", i)
}

// Load reads count+1 blendshape meshes from dir concurrently, one per
// slot, and computes each mesh's normals. Every goroutine owns exactly
// one slot of the preallocated array, so the only synchronization is
// the join before the Set is handed to the caller. The first failure
// cancels the loads still queued; no partial Set is ever returned.
func Load(dir string, count int, initNaming bool) (*Set, error) {
	if count <= 0 {
		return nil, fmt.Errorf("blendshape count must be positive, got %d", count)
	}

	shapes := make([]*mesh.Mesh, count+1)
	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i <= count; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(dir, ShapeName(i, initNaming))
			m, err := formats.LoadOBJ(path)
			if err != nil {
				return &LoadError{Index: i, Path: path, Err: err}
			}
			m.ComputeNormals()
			shapes[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Set{shapes: shapes}, nil
}

// Validate checks that every expression shape shares the neutral
// shape's topology. Returns a TopologyMismatchError naming the first
// offending shape index.
func (s *Set) Validate() error {
	base := s.Base()
	for j := 1; j < len(s.shapes); j++ {
		if !base.SameTopology(s.shapes[j]) {
			reason := "face connectivity differs"
			if len(base.Vertices) != len(s.shapes[j].Vertices) {
				reason = fmt.Sprintf("vertex count %d, base has %d",
					len(s.shapes[j].Vertices), len(base.Vertices))
			}
			return &TopologyMismatchError{Index: j, Reason: reason}
		}
	}
	return nil
}
