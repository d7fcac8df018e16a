// Package formats provides parsers and writers for the file formats the
// mesh visualization pipeline consumes: quad-faced OBJ meshes and flat
// lists of floats or integers.
package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/faceforge/facevis/pkg/geom"
	"github.com/faceforge/facevis/pkg/mesh"
)

// OBJ format errors.
var (
	ErrMalformedOBJ = errors.New("malformed OBJ")
)

// ParseOBJ parses a quad-faced OBJ mesh from data. Supported statements
// are v, vt and f; vn is ignored (normals are always recomputed from
// geometry), as are grouping and material statements. Every face must
// have exactly four corners; 1-based and negative (relative) vertex
// references are resolved. Texture coordinates are kept only when every
// face carries them.
func ParseOBJ(data []byte) (*mesh.Mesh, error) {
	m := &mesh.Mesh{}
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)

	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: %w: vertex needs 3 coordinates", line, ErrMalformedOBJ)
			}
			var v geom.Vec3
			var err error
			if v.X, err = strconv.ParseFloat(fields[1], 64); err == nil {
				if v.Y, err = strconv.ParseFloat(fields[2], 64); err == nil {
					v.Z, err = strconv.ParseFloat(fields[3], 64)
				}
			}
			if err != nil {
				return nil, fmt.Errorf("line %d: %w: %v", line, ErrMalformedOBJ, err)
			}
			m.Vertices = append(m.Vertices, v)
		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: %w: texture coordinate needs 2 components", line, ErrMalformedOBJ)
			}
			u, err := strconv.ParseFloat(fields[1], 64)
			if err == nil {
				var vv float64
				vv, err = strconv.ParseFloat(fields[2], 64)
				if err == nil {
					m.UVs = append(m.UVs, geom.Vec2{U: u, V: vv})
				}
			}
			if err != nil {
				return nil, fmt.Errorf("line %d: %w: %v", line, ErrMalformedOBJ, err)
			}
		case "f":
			if len(fields) != 5 {
				return nil, fmt.Errorf("line %d: %w: face has %d corners, want 4", line, ErrMalformedOBJ, len(fields)-1)
			}
			var face, faceUV [4]int
			hasUV := true
			for i := 0; i < 4; i++ {
				vi, ti, ok, err := parseFaceCorner(fields[i+1], len(m.Vertices), len(m.UVs))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w: %v", line, ErrMalformedOBJ, err)
				}
				face[i] = vi
				faceUV[i] = ti
				hasUV = hasUV && ok
			}
			m.Faces = append(m.Faces, face)
			if hasUV {
				m.FaceUVs = append(m.FaceUVs, faceUV)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}
	if len(m.FaceUVs) != len(m.Faces) {
		m.FaceUVs = nil
		m.UVs = nil
	}
	return m, nil
}

// parseFaceCorner parses one face corner reference of the form v, v/vt,
// v/vt/vn or v//vn, returning 0-based vertex and UV indices. ok is false
// when the corner has no UV reference.
func parseFaceCorner(s string, nVerts, nUVs int) (vi, ti int, ok bool, err error) {
	parts := strings.Split(s, "/")
	vi, err = resolveIndex(parts[0], nVerts)
	if err != nil {
		return 0, 0, false, err
	}
	if len(parts) < 2 || parts[1] == "" {
		return vi, 0, false, nil
	}
	ti, err = resolveIndex(parts[1], nUVs)
	if err != nil {
		return 0, 0, false, err
	}
	return vi, ti, true, nil
}

// resolveIndex converts a 1-based (or negative relative) OBJ index into
// a 0-based index, bounds-checked against count.
func resolveIndex(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad index %q", s)
	}
	switch {
	case n > 0:
		n--
	case n < 0:
		n = count + n
	default:
		return 0, fmt.Errorf("index 0 is not valid")
	}
	if n < 0 || n >= count {
		return 0, fmt.Errorf("index %s out of range (have %d)", s, count)
	}
	return n, nil
}

// LoadOBJ reads and parses a quad-faced OBJ mesh from path.
func LoadOBJ(path string) (*mesh.Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ file: %w", err)
	}
	m, err := ParseOBJ(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

// WriteOBJ writes m to path as a quad-faced OBJ file. Normals are not
// written; consumers recompute them from geometry.
func WriteOBJ(path string, m *mesh.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating OBJ file: %w", err)
	}
	w := bufio.NewWriter(f)
	for _, v := range m.Vertices {
		fmt.Fprintf(w, "v %g %g %g\n", v.X, v.Y, v.Z)
	}
	for _, uv := range m.UVs {
		fmt.Fprintf(w, "vt %g %g\n", uv.U, uv.V)
	}
	withUV := len(m.FaceUVs) == len(m.Faces) && m.UVs != nil
	for i, face := range m.Faces {
		if withUV {
			uv := m.FaceUVs[i]
			fmt.Fprintf(w, "f %d/%d %d/%d %d/%d %d/%d\n",
				face[0]+1, uv[0]+1, face[1]+1, uv[1]+1, face[2]+1, uv[2]+1, face[3]+1, uv[3]+1)
		} else {
			fmt.Fprintf(w, "f %d %d %d %d\n", face[0]+1, face[1]+1, face[2]+1, face[3]+1)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing OBJ file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing OBJ file: %w", err)
	}
	return nil
}
