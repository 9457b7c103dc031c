// Package render rasterizes a fused solid into an image by sphere
// tracing its signed distance field. It supports the scene's orthographic
// and perspective cameras and shades with point lights using Lambert
// falloff. Rendering is deterministic for a given solid and camera.
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/chazu/umbel/pkg/kernel"
	"github.com/chazu/umbel/pkg/scene"
	"github.com/chazu/umbel/pkg/sculpt"
)

const (
	maxSteps   = 256
	hitEps     = 1e-4
	normalEps  = 1e-4
	ambient    = 0.08
	lightScale = 0.05 // scales light energy / (4*pi*d^2) into [0,1] shading
)

type vec struct {
	x, y, z float64
}

func fromPoint(p sculpt.Point) vec { return vec{p.X, p.Y, p.Z} }

func (a vec) add(b vec) vec       { return vec{a.x + b.x, a.y + b.y, a.z + b.z} }
func (a vec) sub(b vec) vec       { return vec{a.x - b.x, a.y - b.y, a.z - b.z} }
func (a vec) scale(s float64) vec { return vec{a.x * s, a.y * s, a.z * s} }
func (a vec) dot(b vec) float64   { return a.x*b.x + a.y*b.y + a.z*b.z }
func (a vec) length() float64     { return math.Sqrt(a.dot(a)) }
func (a vec) cross(b vec) vec {
	return vec{
		a.y*b.z - a.z*b.y,
		a.z*b.x - a.x*b.z,
		a.x*b.y - a.y*b.x,
	}
}

func (a vec) normalize() vec {
	n := a.length()
	if n == 0 {
		return a
	}
	return a.scale(1 / n)
}

// basis is the camera's orthonormal frame: forward toward the focus,
// right and up spanning the image plane. World up is +Z.
type basis struct {
	forward, right, up vec
}

func cameraBasis(cam scene.Camera) basis {
	forward := fromPoint(cam.Focus).sub(fromPoint(cam.Eye)).normalize()
	right := forward.cross(vec{0, 0, 1}).normalize()
	up := right.cross(forward)
	return basis{forward: forward, right: right, up: up}
}

// Image renders the solid as seen by the camera into a w-by-h image.
// Pixels that miss the solid get the scene's background color; hits are
// the object color shaded by the scene's lights.
func Image(solid kernel.Solid, cam scene.Camera, sc *scene.Scene, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	b := cameraBasis(cam)
	eye := fromPoint(cam.Eye)

	// March no further than the eye-to-solid distance plus the solid's
	// diagonal extent.
	min, max := solid.BoundingBox()
	center := vec{(min[0] + max[0]) / 2, (min[1] + max[1]) / 2, (min[2] + max[2]) / 2}
	diag := vec{max[0] - min[0], max[1] - min[1], max[2] - min[2]}.length()
	tMax := eye.sub(center).length() + diag

	halfFOV := math.Tan(cam.FOV / 2 * math.Pi / 180)
	bgCol := toColor(sc.Background.R, sc.Background.G, sc.Background.B)

	for py := 0; py < h; py++ {
		// v runs +1 at the top row to -1 at the bottom.
		v := 1 - 2*(float64(py)+0.5)/float64(h)
		for px := 0; px < w; px++ {
			u := 2*(float64(px)+0.5)/float64(w) - 1

			var origin, dir vec
			if cam.Projection == scene.Orthographic {
				origin = eye.add(b.right.scale(u * cam.OrthoScale)).add(b.up.scale(v * cam.OrthoScale))
				dir = b.forward
			} else {
				origin = eye
				dir = b.forward.add(b.right.scale(u * halfFOV)).add(b.up.scale(v * halfFOV)).normalize()
			}

			if p, ok := march(solid, origin, dir, tMax); ok {
				shade := shadePoint(solid, p, sc.Lights)
				img.SetNRGBA(px, py, toColor(
					sc.Object.R*shade,
					sc.Object.G*shade,
					sc.Object.B*shade,
				))
			} else {
				img.SetNRGBA(px, py, bgCol)
			}
		}
	}
	return img
}

// march sphere-traces from origin along dir, returning the hit point.
func march(solid kernel.Solid, origin, dir vec, tMax float64) (vec, bool) {
	t := 0.0
	for i := 0; i < maxSteps && t < tMax; i++ {
		p := origin.add(dir.scale(t))
		d := solid.Evaluate(p.x, p.y, p.z)
		if d < hitEps {
			return p, true
		}
		t += d
	}
	return vec{}, false
}

// shadePoint computes ambient plus Lambert shading from every light with
// inverse-square falloff, clamped to [0,1].
func shadePoint(solid kernel.Solid, p vec, lights []scene.Light) float64 {
	n := surfaceNormal(solid, p)
	shade := ambient
	for _, l := range lights {
		toLight := fromPoint(l.Position).sub(p)
		d := toLight.length()
		if d == 0 {
			continue
		}
		cos := n.dot(toLight.scale(1 / d))
		if cos <= 0 {
			continue
		}
		shade += lightScale * l.Energy / (4 * math.Pi * d * d) * cos
	}
	if shade > 1 {
		shade = 1
	}
	return shade
}

// surfaceNormal estimates the field gradient by central differences.
func surfaceNormal(solid kernel.Solid, p vec) vec {
	e := normalEps
	return vec{
		solid.Evaluate(p.x+e, p.y, p.z) - solid.Evaluate(p.x-e, p.y, p.z),
		solid.Evaluate(p.x, p.y+e, p.z) - solid.Evaluate(p.x, p.y-e, p.z),
		solid.Evaluate(p.x, p.y, p.z+e) - solid.Evaluate(p.x, p.y, p.z-e),
	}.normalize()
}

func toColor(r, g, b float64) color.NRGBA {
	return color.NRGBA{
		R: clamp8(r),
		G: clamp8(g),
		B: clamp8(b),
		A: 255,
	}
}

func clamp8(v float64) uint8 {
	s := math.Round(v * 255)
	if s < 0 {
		return 0
	}
	if s > 255 {
		return 255
	}
	return uint8(s)
}
