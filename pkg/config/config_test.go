package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Width != 2080 || cfg.Height != 2080 {
		t.Errorf("default resolution %dx%d, want 2080x2080", cfg.Width, cfg.Height)
	}
	if !cfg.SaveImages || !cfg.ExportMeshes {
		t.Error("default output toggles should be on")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "umbel.toml")
	src := `
width = 512
height = 512
blend_radius = 0.3
save_images = false
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Width != 512 || cfg.Height != 512 {
		t.Errorf("resolution %dx%d, want 512x512", cfg.Width, cfg.Height)
	}
	if cfg.BlendRadius != 0.3 {
		t.Errorf("blend_radius = %g, want 0.3", cfg.BlendRadius)
	}
	if cfg.SaveImages {
		t.Error("save_images should be off")
	}
	// Unmentioned keys keep defaults.
	if cfg.MeshCells != 200 {
		t.Errorf("mesh_cells = %d, want default 200", cfg.MeshCells)
	}
	if !cfg.ExportMeshes {
		t.Error("export_meshes should keep its default")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("width = 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for zero width")
	}
}
