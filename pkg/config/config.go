// Package config holds render and export settings, loadable from a TOML
// file. Settings a file does not mention keep their defaults; CLI flags
// may override on top.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config controls rendering and export quality and destinations.
type Config struct {
	// Width and Height are the render resolution in pixels.
	Width  int `toml:"width"`
	Height int `toml:"height"`

	// MeshCells is the marching cubes resolution for mesh export.
	MeshCells int `toml:"mesh_cells"`

	// BlendRadius is the smooth-union radius fusing adjacent blobs.
	BlendRadius float64 `toml:"blend_radius"`

	// OutDir receives rendered frames and mesh files.
	OutDir string `toml:"out_dir"`

	// SaveImages toggles all image output; geometry is still generated.
	SaveImages bool `toml:"save_images"`

	// ExportMeshes toggles OBJ/STL export alongside the renders.
	ExportMeshes bool `toml:"export_meshes"`
}

// Default returns the standard settings: square 2080px frames, fine
// meshing, and everything written to the current directory.
func Default() Config {
	return Config{
		Width:        2080,
		Height:       2080,
		MeshCells:    200,
		BlendRadius:  0.15,
		OutDir:       ".",
		SaveImages:   true,
		ExportMeshes: true,
	}
}

// Load reads a TOML settings file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the pipeline cannot work with.
func (c Config) Validate() error {
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("resolution %dx%d is not positive", c.Width, c.Height)
	}
	if c.MeshCells < 2 {
		return fmt.Errorf("mesh_cells %d is too coarse", c.MeshCells)
	}
	if c.BlendRadius < 0 {
		return fmt.Errorf("blend_radius %g is negative", c.BlendRadius)
	}
	return nil
}
