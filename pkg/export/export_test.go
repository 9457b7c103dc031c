package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/umbel/pkg/kernel"
)

func TestFramePathSequencing(t *testing.T) {
	dir := t.TempDir()

	p1, err := FramePath(dir, true, "ort", "a")
	if err != nil {
		t.Fatalf("FramePath: %v", err)
	}
	if filepath.Base(p1) != "sym_3D_ort_001a.png" {
		t.Errorf("first path = %s, want sym_3D_ort_001a.png", filepath.Base(p1))
	}

	// Occupy slot 1; the next probe must land on 2.
	if err := os.WriteFile(p1, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	p2, err := FramePath(dir, true, "ort", "a")
	if err != nil {
		t.Fatalf("FramePath: %v", err)
	}
	if filepath.Base(p2) != "sym_3D_ort_002a.png" {
		t.Errorf("second path = %s, want sym_3D_ort_002a.png", filepath.Base(p2))
	}

	// Different projection, suffix or symmetry mode gets its own sequence.
	p3, err := FramePath(dir, false, "per", "b")
	if err != nil {
		t.Fatalf("FramePath: %v", err)
	}
	if filepath.Base(p3) != "asym_3D_per_001b.png" {
		t.Errorf("asym path = %s, want asym_3D_per_001b.png", filepath.Base(p3))
	}
}

func TestFlatPath(t *testing.T) {
	got := FlatPath("/out/sym_3D_per_004a.png")
	if got != "/out/sym_2D_per_004a.png" {
		t.Errorf("FlatPath = %s", got)
	}
}

func TestMeshPath(t *testing.T) {
	tests := []struct {
		in, ext, want string
	}{
		{"/out/sym_3D_ort_001b.png", "obj", "/out/sym_001.obj"},
		{"/out/sym_3D_ort_012b.png", "stl", "/out/sym_012.stl"},
		{"/out/asym_3D_ort_003b.png", "stl", "/out/asym_003.stl"},
	}
	for _, tt := range tests {
		if got := MeshPath(tt.in, tt.ext); got != tt.want {
			t.Errorf("MeshPath(%s, %s) = %s, want %s", tt.in, tt.ext, got, tt.want)
		}
	}
}

// unitTriangle is a single right triangle in the z=0 plane.
func unitTriangle() *kernel.Mesh {
	return &kernel.Mesh{
		Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Normals:  []float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
		Indices:  []uint32{0, 1, 2},
		Name:     "sym",
	}
}

func TestWriteOBJ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.obj")
	if err := WriteOBJ(path, unitTriangle()); err != nil {
		t.Fatalf("WriteOBJ: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if lines[0] != "o sym" {
		t.Errorf("first line = %q, want object name", lines[0])
	}
	var v, vn, f int
	for _, l := range lines {
		switch {
		case strings.HasPrefix(l, "vn "):
			vn++
		case strings.HasPrefix(l, "v "):
			v++
		case strings.HasPrefix(l, "f "):
			f++
		}
	}
	if v != 3 || vn != 3 || f != 1 {
		t.Errorf("counts v=%d vn=%d f=%d, want 3/3/1", v, vn, f)
	}
	if !strings.Contains(text, "f 1//1 2//2 3//3") {
		t.Errorf("face line missing from:\n%s", text)
	}
}

func TestWriteSTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.stl")
	if err := WriteSTL(path, unitTriangle()); err != nil {
		t.Fatalf("WriteSTL: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	// 80-byte header + 4-byte count + one 50-byte triangle record.
	if info.Size() != 134 {
		t.Errorf("stl size = %d, want 134", info.Size())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if data[80] != 1 || data[81] != 0 || data[82] != 0 || data[83] != 0 {
		t.Errorf("triangle count bytes = %v, want little-endian 1", data[80:84])
	}
}
