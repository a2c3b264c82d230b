// Package geom implements the 2D footprint pipeline for cutter geometry:
// polygon regions with holes, boolean composition, mitered offsetting and
// the fill reconstruction from raw glyph contours. All coordinates are in
// millimeters; internally the package works on integer coordinates at
// micron resolution so that boolean arithmetic stays exact.
package geom

import (
	clipper "github.com/ctessum/go.clipper"
)

// intScale is the number of integer clipper units per millimeter.
// One micron is far below the flattening tolerance, so quantization
// never dominates the geometric error.
const intScale = 1000.0

// Point is a 2D point in millimeters.
type Point struct {
	X, Y float64
}

// Contour is a closed polyline boundary. The last point connects
// implicitly back to the first. Orientation carries no meaning here;
// outer/hole roles are derived by Resolve.
type Contour []Point

// Region is a planar region composed of outer boundaries and holes.
// Regions are immutable: every operation returns a new Region and never
// modifies its inputs. The zero value is the empty region.
type Region struct {
	paths clipper.Paths
}

// IsEmpty reports whether the region contains no area.
func (r Region) IsEmpty() bool {
	return len(r.paths) == 0
}

// Area returns the total enclosed area in mm². Holes count negatively.
func (r Region) Area() float64 {
	var a float64
	for _, p := range r.paths {
		a += clipper.Area(p)
	}
	return a / (intScale * intScale)
}

func toPath(c Contour) clipper.Path {
	path := make(clipper.Path, 0, len(c))
	for _, pt := range c {
		path = append(path, &clipper.IntPoint{
			X: clipper.CInt(pt.X*intScale + signOf(pt.X)*0.5),
			Y: clipper.CInt(pt.Y*intScale + signOf(pt.Y)*0.5),
		})
	}
	return path
}

func signOf(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func fromPath(p clipper.Path) Contour {
	c := make(Contour, 0, len(p))
	for _, pt := range p {
		c = append(c, Point{
			X: float64(pt.X) / intScale,
			Y: float64(pt.Y) / intScale,
		})
	}
	return c
}

// repair re-planarizes a path set with a non-zero winding union of the
// set with itself. It removes degenerate double points and resolves any
// self-intersections introduced by boolean or offset arithmetic. Every
// operation in this package runs its output through repair before
// handing it to the next pipeline stage.
func repair(paths clipper.Paths) clipper.Paths {
	if len(paths) == 0 {
		return nil
	}
	c := clipper.NewClipper(clipper.IoStrictlySimple)
	if !c.AddPaths(paths, clipper.PtSubject, true) {
		return nil
	}
	out, ok := c.Execute1(clipper.CtUnion, clipper.PftNonZero, clipper.PftNonZero)
	if !ok {
		return nil
	}
	return out
}

func boolean(op clipper.ClipType, a, b Region) Region {
	if a.IsEmpty() && b.IsEmpty() {
		return Region{}
	}
	c := clipper.NewClipper(clipper.IoNone)
	if len(a.paths) > 0 {
		c.AddPaths(a.paths, clipper.PtSubject, true)
	}
	if len(b.paths) > 0 {
		c.AddPaths(b.paths, clipper.PtClip, true)
	}
	out, ok := c.Execute1(op, clipper.PftNonZero, clipper.PftNonZero)
	if !ok {
		return Region{}
	}
	return Region{paths: repair(out)}
}

// Union returns the set union of two regions.
func Union(a, b Region) Region {
	return boolean(clipper.CtUnion, a, b)
}

// Difference returns a minus b.
func Difference(a, b Region) Region {
	return boolean(clipper.CtDifference, a, b)
}

// Intersect returns the set intersection of two regions.
func Intersect(a, b Region) Region {
	return boolean(clipper.CtIntersection, a, b)
}

// Covers reports whether a contains all of b.
func Covers(a, b Region) bool {
	return Difference(b, a).IsEmpty()
}

// Offset grows (delta > 0) or shrinks (delta < 0) the region boundary by
// a perpendicular distance in millimeters, using mitered joins so that
// letterform corners stay crisp instead of rounding off. Holes move in
// the opposite direction automatically, keeping the polygon-with-holes
// invariant intact.
func Offset(r Region, delta float64) Region {
	if r.IsEmpty() {
		return Region{}
	}
	if delta == 0 {
		return Region{paths: repair(r.paths)}
	}
	co := clipper.NewClipperOffset()
	co.AddPaths(r.paths, clipper.JtMiter, clipper.EtClosedPolygon)
	out := co.Execute(delta * intScale)
	return Region{paths: repair(out)}
}

// RingFootprint builds the cutter wall footprint: the region dilated by
// wall minus the region dilated by clearance. A clearance of zero means
// the inner edge follows the glyph silhouette exactly. When
// wall <= clearance the result is legitimately empty; callers decide
// whether that matters.
func RingFootprint(r Region, wall, clearance float64) Region {
	return Difference(Offset(r, wall), Offset(r, clearance))
}

// Strut returns a butt-capped rectangular region of the given width
// centered on the segment from a to b. Used for bridge synthesis.
func Strut(a, b Point, width float64) Region {
	if width <= 0 || (a == b) {
		return Region{}
	}
	seg := clipper.Path{
		&clipper.IntPoint{X: clipper.CInt(a.X * intScale), Y: clipper.CInt(a.Y * intScale)},
		&clipper.IntPoint{X: clipper.CInt(b.X * intScale), Y: clipper.CInt(b.Y * intScale)},
	}
	co := clipper.NewClipperOffset()
	co.AddPath(seg, clipper.JtMiter, clipper.EtOpenButt)
	out := co.Execute(width / 2 * intScale)
	return Region{paths: repair(out)}
}
