// Package studio orchestrates the full pipeline for one exemplar:
// recipe -> blob hierarchy -> scene -> fused solid -> renders from every
// camera in both orientations -> masked/flattened variants on disk, plus
// mesh export. Each exemplar is one continuous pass; any failure aborts
// that pass with no partial recovery.
package studio

import (
	"fmt"
	"math"
	"math/rand"
	"os"

	"github.com/chazu/umbel/pkg/config"
	"github.com/chazu/umbel/pkg/export"
	"github.com/chazu/umbel/pkg/flatten"
	"github.com/chazu/umbel/pkg/fuse"
	"github.com/chazu/umbel/pkg/kernel"
	"github.com/chazu/umbel/pkg/render"
	"github.com/chazu/umbel/pkg/scene"
	"github.com/disintegration/imaging"
	"github.com/edaniels/golog"
)

// orientations are the two poses each camera shoots: the original and a
// 180 degree flip about Z.
var orientations = []struct {
	suffix string
	angle  float64
}{
	{suffix: "a", angle: 0},
	{suffix: "b", angle: math.Pi},
}

// Studio runs generation passes against one kernel and one settings set.
type Studio struct {
	kernel kernel.Kernel
	cfg    config.Config
	logger golog.Logger
}

// New creates a Studio.
func New(k kernel.Kernel, cfg config.Config, logger golog.Logger) *Studio {
	return &Studio{kernel: k, cfg: cfg, logger: logger}
}

// Generate produces one exemplar from the recipe. The rng drives shell
// sampling and is shared across exemplars so successive calls with one
// time-seeded source yield distinct sculptures.
func (s *Studio) Generate(r scene.Recipe, rng *rand.Rand) error {
	sc, err := scene.FromRecipe(r, rng)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	sc.BlendRadius = s.cfg.BlendRadius
	s.logger.Debugw("scene built", "blobs", len(sc.Blobs), "symmetric", sc.Symmetric)

	solid, err := fuse.Solid(sc, s.kernel)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	if !s.cfg.SaveImages {
		return nil
	}
	if err := os.MkdirAll(s.cfg.OutDir, 0o755); err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	for _, o := range orientations {
		posed := solid
		if o.angle != 0 {
			posed = s.kernel.RotateZ(solid, o.angle)
		}
		for _, cam := range sc.Cameras {
			if err := s.shoot(posed, cam, sc, o.suffix); err != nil {
				return err
			}
		}
	}
	return nil
}

// shoot renders one camera/orientation combination and writes the 3D and
// 2D variants; on the rotated orthographic shot it also exports meshes.
func (s *Studio) shoot(solid kernel.Solid, cam scene.Camera, sc *scene.Scene, suffix string) error {
	framePath, err := export.FramePath(s.cfg.OutDir, sc.Symmetric, cam.Projection.Tag(), suffix)
	if err != nil {
		return fmt.Errorf("shoot: %w", err)
	}

	// Mesh export happens once per exemplar, keyed off the rotated
	// orthographic frame so mesh and frame numbering stay in step.
	if s.cfg.ExportMeshes && cam.Projection == scene.Orthographic && suffix == "b" {
		if err := s.exportMeshes(solid, sc, framePath); err != nil {
			return err
		}
	}

	img := render.Image(solid, cam, sc, s.cfg.Width, s.cfg.Height)
	masked, flat := flatten.Variants(img)

	if err := imaging.Save(masked, framePath); err != nil {
		return fmt.Errorf("save %s: %w", framePath, err)
	}
	flatPath := export.FlatPath(framePath)
	if err := imaging.Save(flat, flatPath); err != nil {
		return fmt.Errorf("save %s: %w", flatPath, err)
	}
	s.logger.Debugw("wrote frames", "frame", framePath, "flat", flatPath)
	return nil
}

func (s *Studio) exportMeshes(solid kernel.Solid, sc *scene.Scene, framePath string) error {
	mesh, err := s.kernel.ToMesh(solid, s.cfg.MeshCells)
	if err != nil {
		return fmt.Errorf("export mesh: %w", err)
	}
	mesh.Name = export.SymTag(sc.Symmetric)

	objPath := export.MeshPath(framePath, "obj")
	if err := export.WriteOBJ(objPath, mesh); err != nil {
		return err
	}
	stlPath := export.MeshPath(framePath, "stl")
	if err := export.WriteSTL(stlPath, mesh); err != nil {
		return err
	}
	s.logger.Debugw("exported meshes", "obj", objPath, "stl", stlPath, "triangles", mesh.TriangleCount())
	return nil
}
