package formats

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoadFloats(t *testing.T) {
	path := writeTemp(t, "floats.txt", "0.5 1.25\n-3\n2e-1")
	got, err := LoadFloats(path)
	if err != nil {
		t.Fatalf("LoadFloats failed: %v", err)
	}
	want := []float64{0.5, 1.25, -3, 0.2}
	if len(got) != len(want) {
		t.Fatalf("got %d values, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLoadFloats_Malformed(t *testing.T) {
	path := writeTemp(t, "floats.txt", "1.0 two 3.0")
	_, err := LoadFloats(path)
	if !errors.Is(err, ErrMalformedFloatList) {
		t.Errorf("got %v, want ErrMalformedFloatList", err)
	}
}

func TestLoadIndices(t *testing.T) {
	path := writeTemp(t, "indices.txt", "12\n0 7\n")
	got, err := LoadIndices(path)
	if err != nil {
		t.Fatalf("LoadIndices failed: %v", err)
	}
	want := []int{12, 0, 7}
	if len(got) != len(want) {
		t.Fatalf("got %d values, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestLoadIndices_Malformed(t *testing.T) {
	path := writeTemp(t, "indices.txt", "3 4.5")
	_, err := LoadIndices(path)
	if !errors.Is(err, ErrMalformedIndexList) {
		t.Errorf("got %v, want ErrMalformedIndexList", err)
	}
}

func TestLoadIndices_Missing(t *testing.T) {
	_, err := LoadIndices(filepath.Join(t.TempDir(), "missing.txt"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}
