// Package export handles output bookkeeping: the filename scheme that
// encodes symmetry mode, projection, sequence number and orientation, and
// mesh file writers for the fused sculpture.
package export

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/umbel/pkg/kernel"
)

// SymTag returns the filename prefix for a symmetry mode.
func SymTag(symmetric bool) string {
	if symmetric {
		return "sym"
	}
	return "asym"
}

// FramePath returns the first unused render path in dir for the given
// symmetry mode, projection tag ("ort"/"per") and orientation suffix
// ("a" for the original pose, "b" for the rotated one). Sequence numbers
// start at 1 and are probed until a free slot is found, so successive
// exemplars in the same directory number themselves.
func FramePath(dir string, symmetric bool, proj, suffix string) (string, error) {
	for seq := 1; ; seq++ {
		p := filepath.Join(dir, fmt.Sprintf("%s_3D_%s_%03d%s.png", SymTag(symmetric), proj, seq, suffix))
		_, err := os.Stat(p)
		if errors.Is(err, fs.ErrNotExist) {
			return p, nil
		}
		if err != nil {
			return "", fmt.Errorf("probe %s: %w", p, err)
		}
	}
}

// FlatPath derives the flattened-variant path from a 3D frame path.
func FlatPath(frame3D string) string {
	return strings.Replace(frame3D, "_3D_", "_2D_", 1)
}

// MeshPath derives a mesh file path from the rotated orthographic frame
// path: the projection marker and orientation suffix drop out, leaving
// e.g. sym_001.stl next to sym_3D_ort_001b.png.
func MeshPath(frame3D, ext string) string {
	p := strings.Replace(frame3D, "_3D_ort", "", 1)
	p = strings.TrimSuffix(p, ".png")
	p = strings.TrimSuffix(p, "b")
	return p + "." + ext
}

// WriteOBJ writes the mesh as a Wavefront OBJ file with per-vertex
// normals.
func WriteOBJ(path string, m *kernel.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write obj: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if m.Name != "" {
		fmt.Fprintf(w, "o %s\n", m.Name)
	}
	for i := 0; i+2 < len(m.Vertices); i += 3 {
		fmt.Fprintf(w, "v %g %g %g\n", m.Vertices[i], m.Vertices[i+1], m.Vertices[i+2])
	}
	for i := 0; i+2 < len(m.Normals); i += 3 {
		fmt.Fprintf(w, "vn %g %g %g\n", m.Normals[i], m.Normals[i+1], m.Normals[i+2])
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		// OBJ indices are 1-based.
		a, b, c := m.Indices[i]+1, m.Indices[i+1]+1, m.Indices[i+2]+1
		fmt.Fprintf(w, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write obj: %w", err)
	}
	return f.Close()
}

// stlTriangle matches the binary STL record layout.
type stlTriangle struct {
	Normal [3]float32
	Verts  [3][3]float32
	Attr   uint16
}

// WriteSTL writes the mesh as a binary STL file.
func WriteSTL(path string, m *kernel.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write stl: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	var header [80]byte
	copy(header[:], m.Name)
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("write stl: %w", err)
	}
	count := uint32(m.TriangleCount())
	if err := binary.Write(w, binary.LittleEndian, count); err != nil {
		return fmt.Errorf("write stl: %w", err)
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		var tri stlTriangle
		// Per-vertex normals are flat per face, so the first vertex's
		// normal is the face normal.
		n := m.Indices[i] * 3
		tri.Normal = [3]float32{m.Normals[n], m.Normals[n+1], m.Normals[n+2]}
		for j := 0; j < 3; j++ {
			v := m.Indices[i+j] * 3
			tri.Verts[j] = [3]float32{m.Vertices[v], m.Vertices[v+1], m.Vertices[v+2]}
		}
		if err := binary.Write(w, binary.LittleEndian, tri); err != nil {
			return fmt.Errorf("write stl: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write stl: %w", err)
	}
	return f.Close()
}
