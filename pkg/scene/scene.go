// Package scene defines the explicit scene description passed between the
// generation core and the rendering/export layers: blobs, cameras, lights
// and colors. Nothing downstream reads ambient state; a Scene is the whole
// contract.
package scene

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/chazu/umbel/pkg/sculpt"
)

// RGB is a color with channels in [0,1].
type RGB struct {
	R, G, B float64
}

// ParseRGB parses a comma-separated color string like "0.05,0.05,0.05".
func ParseRGB(s string) (RGB, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return RGB{}, fmt.Errorf("color %q: want three comma-separated channels", s)
	}
	var ch [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return RGB{}, fmt.Errorf("color %q: channel %d: %w", s, i, err)
		}
		if v < 0 || v > 1 {
			return RGB{}, fmt.Errorf("color %q: channel %d out of [0,1]", s, i)
		}
		ch[i] = v
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// Projection selects how a camera maps the scene onto the image plane.
type Projection int

const (
	Orthographic Projection = iota
	Perspective
)

// Tag returns the short projection name used in output filenames.
func (p Projection) Tag() string {
	if p == Perspective {
		return "per"
	}
	return "ort"
}

// Camera views the scene from Eye toward Focus. FOV (degrees, vertical)
// applies to perspective cameras; OrthoScale is the half-height of the
// view volume in world units for orthographic cameras.
type Camera struct {
	Eye        sculpt.Point
	Focus      sculpt.Point
	Projection Projection
	FOV        float64
	OrthoScale float64
}

// Light is a point light. Energy follows inverse-square falloff and is
// normalized by the renderer.
type Light struct {
	Position sculpt.Point
	Energy   float64
}

// Scene is the complete description of one generated sculpture ready for
// fusing, rendering and export.
type Scene struct {
	Blobs       []sculpt.Blob
	Cameras     []Camera
	Lights      []Light
	Background  RGB
	Object      RGB
	BlendRadius float64
	Symmetric   bool
}

// Recipe holds the generation parameters for one exemplar. The level
// tuple defaults are deliberate and produce the intended branching look;
// change them only with reason.
type Recipe struct {
	Levels    []sculpt.Level
	GridRes   int
	MinDist   float64
	Symmetric bool
	Seed      int64

	Background RGB
	Object     RGB
}

// DefaultRecipe returns the standard three-level branching recipe:
// 8 children on a 1.2 shell, then 4 on 0.8, then 2 on 0.4, with blob
// radii 0.6/0.4/0.2, sampled on a 20x20 angular grid.
func DefaultRecipe() Recipe {
	return Recipe{
		Levels: []sculpt.Level{
			{Count: 8, ShellRadius: 1.2, BlobRadius: 0.6},
			{Count: 4, ShellRadius: 0.8, BlobRadius: 0.4},
			{Count: 2, ShellRadius: 0.4, BlobRadius: 0.2},
		},
		GridRes:    20,
		MinDist:    0.05,
		Symmetric:  true,
		Background: RGB{R: 0.05, G: 0.05, B: 0.05},
		Object:     RGB{R: 1, G: 1, B: 1},
	}
}

// cameraDistance is how far each camera sits from the focus point.
const cameraDistance = 10.0

// placeCamera positions a camera at cameraDistance along the direction
// from focus to seed, looking back at focus.
func placeCamera(seed, focus sculpt.Point, proj Projection) Camera {
	dx := seed.X - focus.X
	dy := seed.Y - focus.Y
	dz := seed.Z - focus.Z
	n := math.Sqrt(dx*dx + dy*dy + dz*dz)
	return Camera{
		Eye: sculpt.Point{
			X: focus.X + dx/n*cameraDistance,
			Y: focus.Y + dy/n*cameraDistance,
			Z: focus.Z + dz/n*cameraDistance,
		},
		Focus:      focus,
		Projection: proj,
		FOV:        40,
		OrthoScale: 3.6,
	}
}

// DefaultRig returns the standard two-camera, two-light setup: an
// orthographic camera seeded from (0,-6,3), a perspective camera from
// (2,-4,3), a fill light below the front and a strong key light behind.
func DefaultRig() ([]Camera, []Light) {
	origin := sculpt.Point{}
	cams := []Camera{
		placeCamera(sculpt.Point{X: 0, Y: -6, Z: 3}, origin, Orthographic),
		placeCamera(sculpt.Point{X: 2, Y: -4, Z: 3}, origin, Perspective),
	}
	lights := []Light{
		{Position: sculpt.Point{X: 0, Y: -10, Z: 10}, Energy: 5000},
		{Position: sculpt.Point{X: 0, Y: 15, Z: 0}, Energy: 50000},
	}
	return cams, lights
}

// FromRecipe generates the blob hierarchy for the recipe and assembles a
// Scene with the default camera and light rig. The rng drives shell
// sampling; pass sculpt.NewRand(recipe.Seed) for the usual behavior.
func FromRecipe(r Recipe, rng *rand.Rand) (*Scene, error) {
	blobs, err := sculpt.BuildHierarchy(r.Levels, r.GridRes, r.MinDist, rng)
	if err != nil {
		return nil, fmt.Errorf("build hierarchy: %w", err)
	}
	if r.Symmetric {
		blobs, err = sculpt.Symmetrize(blobs)
		if err != nil {
			return nil, fmt.Errorf("symmetrize: %w", err)
		}
	}
	cams, lights := DefaultRig()
	return &Scene{
		Blobs:      blobs,
		Cameras:    cams,
		Lights:     lights,
		Background: r.Background,
		Object:     r.Object,
		Symmetric:  r.Symmetric,
	}, nil
}
