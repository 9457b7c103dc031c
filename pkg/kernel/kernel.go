// Package kernel defines the abstract geometry kernel interface.
// Implementations provide solid modeling and smooth blending behind this
// interface, so the fuse, render and export layers never touch a concrete
// CAD library directly.
package kernel

// Solid is an opaque handle to a geometry kernel solid. Solids are
// distance fields: Evaluate returns the signed distance from a point to
// the surface (negative inside), which is what the sphere-tracing
// renderer consumes.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)

	// Evaluate returns the signed distance from (x, y, z) to the surface.
	Evaluate(x, y, z float64) float64
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Sphere creates a sphere of the given radius centered at the origin.
	Sphere(radius float64) (Solid, error)

	// SmoothUnion blends solids together with a polynomial smooth
	// minimum of radius k. A zero k degenerates to a plain union.
	SmoothUnion(k float64, solids ...Solid) Solid

	// Translate moves a solid by (x, y, z).
	Translate(s Solid, x, y, z float64) Solid

	// RotateZ rotates a solid about the world Z axis by the given angle
	// in radians.
	RotateZ(s Solid, angle float64) Solid

	// ToMesh converts a solid to a triangle mesh. The cells parameter
	// controls tessellation resolution along the longest bounding box
	// axis.
	ToMesh(s Solid, cells int) (*Mesh, error)
}
