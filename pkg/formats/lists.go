package formats

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Flat-list format errors.
var (
	ErrMalformedFloatList = errors.New("malformed float list")
	ErrMalformedIndexList = errors.New("malformed index list")
)

// LoadFloats reads a flat list of whitespace-separated floating-point
// values from path. Used for per-vertex scalar overlays such as normal
// overrides and ambient occlusion.
func LoadFloats(path string) ([]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading float list: %w", err)
	}
	fields := strings.Fields(string(data))
	out := make([]float64, 0, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: value %d: %w: %q", path, i, ErrMalformedFloatList, field)
		}
		out = append(out, v)
	}
	return out, nil
}

// LoadIndices reads a flat list of whitespace-separated integers from
// path. Used for face-index selections.
func LoadIndices(path string) ([]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading index list: %w", err)
	}
	fields := strings.Fields(string(data))
	out := make([]int, 0, len(fields))
	for i, field := range fields {
		v, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("%s: value %d: %w: %q", path, i, ErrMalformedIndexList, field)
		}
		out = append(out, v)
	}
	return out, nil
}
