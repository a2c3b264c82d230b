// Package kernel defines the abstract solidifier interface. An
// implementation turns 2D footprints into extruded solids and writes the
// combined result to a mesh file. The abstraction keeps the geometry
// pipeline free of any mesh library types and lets tests substitute a
// recording stub for the real backend.
package kernel

import "github.com/chazu/cookiecut/pkg/geom"

// Solid is an opaque handle to a solidifier solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract solidifier interface.
type Kernel interface {
	// Extrude turns a footprint into a solid spanning z0 to z0+height.
	Extrude(footprint geom.Region, z0, height float64) (Solid, error)

	// Union combines solids. Overlapping or touching inputs are fine;
	// the result only needs to be printable, not manifold-clean.
	Union(solids ...Solid) Solid

	// Scale scales a solid uniformly about the origin.
	Scale(s Solid, factor float64) Solid

	// Export writes the solid to a mesh file. The format is chosen by
	// the path's extension: .stl or .3mf.
	Export(s Solid, path string) error
}
