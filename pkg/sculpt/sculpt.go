// Package sculpt generates branching blob hierarchies: nested shells of
// sphere centers sampled around parent points, with optional bilateral
// symmetry across the x=0 plane. The output is a flat list of blobs
// (center + radius) consumed by the scene, fuse and render packages.
package sculpt

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Point is a position in 3D space.
type Point struct {
	X, Y, Z float64
}

// Blob is a sphere: a center point plus a radius. Blobs are immutable
// once produced.
type Blob struct {
	X, Y, Z, R float64
}

// Level describes one stage of the branching hierarchy: how many children
// each parent spawns, how far from the parent they sit (shell radius), and
// the radius of the blobs placed at those children.
type Level struct {
	Count       int
	ShellRadius float64
	BlobRadius  float64
}

// NewRand returns a rand.Rand for shell sampling. A zero seed produces a
// time-seeded source: successive runs then yield different sculptures,
// which is the intended behavior for generating varied exemplars. Pass a
// nonzero seed for reproducible output.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// ShellPoints samples count points roughly evenly over a sphere of the
// given radius centered on the parent, respecting the x=0 symmetry plane:
//
//   - If the parent sits left of the plane (x < 0), every candidate whose
//     translated x coordinate would cross the plane is discarded; the
//     mirror rule applies for parents on the right.
//   - If the parent sits exactly on the plane, the result holds count/2
//     points with x < -minDist and count/2 with x > minDist.
//
// Candidates come from a uniform angular grid (polar step pi/gridRes,
// azimuth step 2*pi/gridRes, gridRes*gridRes candidates) shuffled with
// rng. Returned points are relative to the parent; the caller translates.
//
// count must be even. An unbalanced left/right candidate pool for an
// on-plane parent, or fewer surviving candidates than count, is an error:
// both abort the generation run rather than propagate a short shell.
func ShellPoints(count, gridRes int, radius, minDist float64, parent Point, rng *rand.Rand) ([]Point, error) {
	if count%2 != 0 {
		return nil, fmt.Errorf("shell point count must be even, got %d", count)
	}
	if gridRes < 2 {
		return nil, fmt.Errorf("grid resolution must be at least 2, got %d", gridRes)
	}

	theta := math.Pi / float64(gridRes)
	phi := (2 * math.Pi) / float64(gridRes)

	candidates := make([]Point, 0, gridRes*gridRes)
	for stack := 0; stack < gridRes; stack++ {
		stackRadius := math.Sin(theta*float64(stack)) * radius
		z := math.Cos(theta*float64(stack)) * radius
		for slice := 0; slice < gridRes; slice++ {
			candidates = append(candidates, Point{
				X: math.Cos(phi*float64(slice)) * stackRadius,
				Y: math.Sin(phi*float64(slice)) * stackRadius,
				Z: z,
			})
		}
	}
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	if parent.X != 0 {
		return takeSameSide(candidates, count, parent.X)
	}
	return takeBothSides(candidates, count, minDist)
}

// takeSameSide keeps candidates that stay on the parent's side of the
// plane after translation by parentX, returning the first count survivors.
func takeSameSide(candidates []Point, count int, parentX float64) ([]Point, error) {
	kept := make([]Point, 0, len(candidates))
	for _, c := range candidates {
		x := c.X + parentX
		if (parentX < 0 && x < 0) || (parentX > 0 && x > 0) {
			kept = append(kept, c)
		}
	}
	if len(kept) < count {
		return nil, fmt.Errorf("insufficient candidate points for shell: need %d, have %d", count, len(kept))
	}
	return kept[:count], nil
}

// takeBothSides splits candidates into pools strictly beyond minDist on
// each side of the plane and takes count/2 from each. The angular grid is
// mirror-symmetric in x, so the pools balance for any minDist; a mismatch
// means the grid or separation is degenerate and the run must abort.
func takeBothSides(candidates []Point, count int, minDist float64) ([]Point, error) {
	var left, right []Point
	for _, c := range candidates {
		if c.X < -minDist {
			left = append(left, c)
		} else if c.X > minDist {
			right = append(right, c)
		}
	}
	if len(left) != len(right) {
		return nil, fmt.Errorf("unbalanced shell: %d left vs %d right candidates beyond min separation %g", len(left), len(right), minDist)
	}
	half := count / 2
	if len(left) < half {
		return nil, fmt.Errorf("insufficient candidate points for shell: need %d per side, have %d", half, len(left))
	}
	out := make([]Point, 0, count)
	out = append(out, left[:half]...)
	out = append(out, right[:half]...)
	return out, nil
}

// BuildHierarchy grows a branching blob arrangement. Starting from a
// single root point at the origin (which itself produces no blob), each
// level samples a shell of children around every point in the current
// active set; the children replace their parents as the active set for
// the next level. Every child contributes one blob tagged with the
// level's blob radius. Levels run outer to inner, so counts, shell radii
// and blob radii typically decrease down the slice.
func BuildHierarchy(levels []Level, gridRes int, minDist float64, rng *rand.Rand) ([]Blob, error) {
	active := []Point{{}}
	var blobs []Blob

	for i, lv := range levels {
		var next []Point
		for _, parent := range active {
			pts, err := ShellPoints(lv.Count, gridRes, lv.ShellRadius, minDist, parent, rng)
			if err != nil {
				return nil, fmt.Errorf("level %d: %w", i, err)
			}
			for _, p := range pts {
				p.X += parent.X
				p.Y += parent.Y
				p.Z += parent.Z
				blobs = append(blobs, Blob{X: p.X, Y: p.Y, Z: p.Z, R: lv.BlobRadius})
				next = append(next, p)
			}
		}
		active = next
	}
	return blobs, nil
}

// Symmetrize enforces bilateral symmetry across the x=0 plane: it keeps
// the blobs with x < 0 and appends their mirror images (x negated, y, z
// and radius unchanged).
//
// Blobs with x >= 0 in the input are discarded and replaced by the
// mirrored copies. For input produced by BuildHierarchy from an on-plane
// root the halves balance and the output is a faithful mirror; for
// arbitrary input whose non-negative half happens to match the left half
// in size, the replacement is silent. Only a cardinality mismatch between
// input and output is reported as an error.
func Symmetrize(blobs []Blob) ([]Blob, error) {
	out := make([]Blob, 0, len(blobs))
	for _, b := range blobs {
		if b.X < 0 {
			out = append(out, b)
		}
	}
	n := len(out)
	for i := 0; i < n; i++ {
		m := out[i]
		m.X = -m.X
		out = append(out, m)
	}
	if len(out) != len(blobs) {
		return nil, fmt.Errorf("symmetrize: output has %d blobs, input had %d; left/right halves are unbalanced", len(out), len(blobs))
	}
	return out, nil
}
