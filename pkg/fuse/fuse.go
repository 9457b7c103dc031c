// Package fuse turns a scene's blob list into geometry: one sphere per
// blob, blended into a single smooth solid by the kernel, and optionally
// tessellated into a triangle mesh. The fuser is read-only and never
// mutates the scene.
package fuse

import (
	"fmt"

	"github.com/chazu/umbel/pkg/kernel"
	"github.com/chazu/umbel/pkg/scene"
)

// Solid builds the fused solid for a scene: every blob becomes a sphere
// translated to its center, and the spheres are joined with a smooth
// union of the scene's blend radius.
func Solid(sc *scene.Scene, k kernel.Kernel) (kernel.Solid, error) {
	if len(sc.Blobs) == 0 {
		return nil, fmt.Errorf("fuse: scene has no blobs")
	}
	solids := make([]kernel.Solid, 0, len(sc.Blobs))
	for i, b := range sc.Blobs {
		sph, err := k.Sphere(b.R)
		if err != nil {
			return nil, fmt.Errorf("fuse: blob %d: %w", i, err)
		}
		solids = append(solids, k.Translate(sph, b.X, b.Y, b.Z))
	}
	return k.SmoothUnion(sc.BlendRadius, solids...), nil
}

// Mesh builds the fused solid and tessellates it at the given marching
// cubes resolution. The mesh is named after the scene's symmetry mode.
func Mesh(sc *scene.Scene, k kernel.Kernel, cells int) (*kernel.Mesh, error) {
	solid, err := Solid(sc, k)
	if err != nil {
		return nil, err
	}
	mesh, err := k.ToMesh(solid, cells)
	if err != nil {
		return nil, fmt.Errorf("fuse: mesh: %w", err)
	}
	if sc.Symmetric {
		mesh.Name = "sym"
	} else {
		mesh.Name = "asym"
	}
	return mesh, nil
}
