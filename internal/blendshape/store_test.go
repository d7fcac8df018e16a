package blendshape

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/faceforge/facevis/pkg/formats"
	"github.com/faceforge/facevis/pkg/geom"
)

// quadOBJ renders a single-quad OBJ with the given corner positions.
func quadOBJ(corners [4]geom.Vec3) string {
	s := ""
	for _, v := range corners {
		s += fmt.Sprintf("v %g %g %g\n", v.X, v.Y, v.Z)
	}
	return s + "f 1 2 3 4\n"
}

var flatQuad = [4]geom.Vec3{
	{X: 0, Y: 0, Z: 0},
	{X: 1, Y: 0, Z: 0},
	{X: 1, Y: 1, Z: 0},
	{X: 0, Y: 1, Z: 0},
}

// writeShapes writes count+1 single-quad blendshape files into a temp
// dir, returning it. mutate may adjust the corners per shape index.
func writeShapes(t *testing.T, count int, initNaming bool, mutate func(i int, c *[4]geom.Vec3)) string {
	t.Helper()
	dir := t.TempDir()
	for i := 0; i <= count; i++ {
		corners := flatQuad
		if mutate != nil {
			mutate(i, &corners)
		}
		path := filepath.Join(dir, ShapeName(i, initNaming))
		if err := os.WriteFile(path, []byte(quadOBJ(corners)), 0644); err != nil {
			t.Fatalf("writing shape %d: %v", i, err)
		}
	}
	return dir
}

func TestLoad(t *testing.T) {
	dir := writeShapes(t, 3, false, nil)

	set, err := Load(dir, 3, false)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if set.Count() != 3 {
		t.Errorf("Count() = %d, want 3", set.Count())
	}
	if len(set.Base().Vertices) != 4 {
		t.Errorf("base has %d vertices, want 4", len(set.Base().Vertices))
	}
	for j := 1; j <= 3; j++ {
		if set.Delta(j) == nil {
			t.Fatalf("slot %d not filled", j)
		}
		if len(set.Delta(j).Normals) != 4 {
			t.Errorf("shape %d normals not computed", j)
		}
	}
}

func TestLoad_InitNaming(t *testing.T) {
	dir := writeShapes(t, 1, true, nil)

	if _, err := Load(dir, 1, true); err != nil {
		t.Fatalf("Load with init naming failed: %v", err)
	}
	// The default naming must not find the Binit_ files.
	if _, err := Load(dir, 1, false); err == nil {
		t.Error("Load with default naming unexpectedly succeeded")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	dir := writeShapes(t, 2, false, nil)
	if err := os.Remove(filepath.Join(dir, "B_1.obj")); err != nil {
		t.Fatal(err)
	}

	_, err := Load(dir, 2, false)
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("got %v, want *LoadError", err)
	}
	if le.Index != 1 {
		t.Errorf("LoadError.Index = %d, want 1", le.Index)
	}
	if !le.NotFound() {
		t.Errorf("LoadError.NotFound() = false, want true")
	}
}

func TestLoad_ParseError(t *testing.T) {
	dir := writeShapes(t, 2, false, nil)
	if err := os.WriteFile(filepath.Join(dir, "B_2.obj"), []byte("v 1 bogus 3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(dir, 2, false)
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("got %v, want *LoadError", err)
	}
	if le.Index != 2 {
		t.Errorf("LoadError.Index = %d, want 2", le.Index)
	}
	if le.NotFound() {
		t.Error("LoadError.NotFound() = true for a parse failure")
	}
	if !errors.Is(err, formats.ErrMalformedOBJ) {
		t.Errorf("error %v does not wrap ErrMalformedOBJ", err)
	}
}

func TestLoad_FailureNotMaskedByCancellation(t *testing.T) {
	// A failing slot cancels the remaining loads; the surfaced error
	// must be the original load failure, never the cancellation.
	dir := writeShapes(t, 8, false, nil)
	if err := os.Remove(filepath.Join(dir, "B_5.obj")); err != nil {
		t.Fatal(err)
	}

	_, err := Load(dir, 8, false)
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("got %v, want *LoadError", err)
	}
	if le.Index != 5 {
		t.Errorf("LoadError.Index = %d, want 5", le.Index)
	}
	if errors.Is(err, context.Canceled) {
		t.Errorf("load failure reported as cancellation: %v", err)
	}
}

func TestLoad_BadCount(t *testing.T) {
	if _, err := Load(t.TempDir(), 0, false); err == nil {
		t.Error("Load with count 0 unexpectedly succeeded")
	}
}

func TestValidate_VertexCountMismatch(t *testing.T) {
	dir := writeShapes(t, 2, false, nil)
	// Shape 2 gains an extra vertex.
	extra := quadOBJ(flatQuad) + "v 5 5 5\n"
	if err := os.WriteFile(filepath.Join(dir, "B_2.obj"), []byte(extra), 0644); err != nil {
		t.Fatal(err)
	}

	set, err := Load(dir, 2, false)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	var tme *TopologyMismatchError
	if err := set.Validate(); !errors.As(err, &tme) {
		t.Fatalf("Validate() = %v, want *TopologyMismatchError", err)
	}
	if tme.Index != 2 {
		t.Errorf("TopologyMismatchError.Index = %d, want 2", tme.Index)
	}
}
