// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/cookiecut/pkg/geom"
	"github.com/chazu/cookiecut/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// defaultMeshCells controls marching cubes tessellation resolution.
const defaultMeshCells = 200

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct {
	meshCells int
}

// New returns a new SdfxKernel with the default tessellation resolution.
func New() *SdfxKernel {
	return NewWithCells(defaultMeshCells)
}

// NewWithCells returns a new SdfxKernel with the given marching cubes
// cell count.
func NewWithCells(cells int) *SdfxKernel {
	if cells <= 0 {
		cells = defaultMeshCells
	}
	return &SdfxKernel{meshCells: cells}
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*sdfxSolid).s
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

// Extrude builds an SDF2 for the footprint (outer boundaries unioned,
// holes subtracted) and extrudes it from z0 to z0+height.
// sdf.Extrude3D spans -height/2..height/2, so the solid is shifted up
// after extrusion.
func (k *SdfxKernel) Extrude(footprint geom.Region, z0, height float64) (kernel.Solid, error) {
	if footprint.IsEmpty() {
		return nil, fmt.Errorf("extrude: empty footprint")
	}
	if height <= 0 {
		return nil, fmt.Errorf("extrude: height %v is not positive", height)
	}

	var outers, holes []sdf.SDF2
	for _, ring := range footprint.Rings() {
		poly, err := sdf.Polygon2D(ringVertices(ring.Points))
		if err != nil {
			return nil, fmt.Errorf("sdfx.Polygon2D: %w", err)
		}
		if ring.Hole {
			holes = append(holes, poly)
		} else {
			outers = append(outers, poly)
		}
	}
	if len(outers) == 0 {
		return nil, fmt.Errorf("extrude: footprint has no outer boundary")
	}

	s2 := sdf.Union2D(outers...)
	if len(holes) > 0 {
		s2 = sdf.Difference2D(s2, sdf.Union2D(holes...))
	}

	s3 := sdf.Extrude3D(s2, height)
	m := sdf.Translate3d(v3.Vec{X: 0, Y: 0, Z: z0 + height/2})
	return wrap(sdf.Transform3D(s3, m)), nil
}

// ringVertices converts a contour to sdfx vertices in counter-clockwise
// order, which Polygon2D expects for an outside-positive distance field.
func ringVertices(c geom.Contour) []v2.Vec {
	reverse := signedArea(c) < 0
	vs := make([]v2.Vec, 0, len(c))
	for i := range c {
		j := i
		if reverse {
			j = len(c) - 1 - i
		}
		vs = append(vs, v2.Vec{X: c[j].X, Y: c[j].Y})
	}
	return vs
}

func signedArea(c geom.Contour) float64 {
	var a float64
	for i, p := range c {
		q := c[(i+1)%len(c)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

// Union returns the union of the given solids.
func (k *SdfxKernel) Union(solids ...kernel.Solid) kernel.Solid {
	if len(solids) == 0 {
		return nil
	}
	sdfs := make([]sdf.SDF3, 0, len(solids))
	for _, s := range solids {
		sdfs = append(sdfs, unwrap(s))
	}
	return wrap(sdf.Union3D(sdfs...))
}

// Scale scales a solid uniformly about the origin.
func (k *SdfxKernel) Scale(s kernel.Solid, factor float64) kernel.Solid {
	m := sdf.Scale3d(v3.Vec{X: factor, Y: factor, Z: factor})
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Export tessellates the solid with marching cubes and writes it to the
// given path. STL and 3MF formats are supported, selected by extension.
func (k *SdfxKernel) Export(s kernel.Solid, path string) error {
	s3 := unwrap(s)
	r := render.NewMarchingCubesUniform(k.meshCells)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".stl":
		render.ToSTL(s3, path, r)
	case ".3mf":
		render.To3MF(s3, path, r)
	default:
		return fmt.Errorf("unsupported output format %q (want .stl or .3mf)", filepath.Ext(path))
	}
	return nil
}
