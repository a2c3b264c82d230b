package geom

import (
	"errors"

	clipper "github.com/ctessum/go.clipper"
)

// ErrEmptyOutline is returned by Resolve when no usable contours were
// supplied.
var ErrEmptyOutline = errors.New("no contours to resolve")

// Ring is one boundary of a resolved region, tagged with its role. The
// tag is computed exactly once here; downstream stages never re-derive
// orientation.
type Ring struct {
	Points Contour
	Hole   bool
	// Parent is the index (into the same Rings slice) of the outer
	// boundary enclosing this hole. -1 for outer boundaries.
	Parent int
}

// Resolve reconstructs a filled region from raw glyph contours.
//
// Contour winding in font data cannot be trusted, so each contour's role
// is derived from its signed area instead: after the Y-axis flip done by
// the flattener, TrueType outer contours come out clockwise (non-positive
// area) and counters come out counter-clockwise (positive area). All
// outers are unioned, all holes are unioned, and the holes are
// subtracted. If nothing classifies as an outer boundary the data is
// pathological and every contour is unioned as an outer instead.
func Resolve(contours []Contour) (Region, error) {
	var outers, holes clipper.Paths
	for _, c := range contours {
		if len(c) < 3 {
			continue
		}
		path := toPath(c)
		if clipper.Orientation(path) {
			holes = append(holes, path)
		} else {
			outers = append(outers, path)
		}
	}
	if len(outers) == 0 && len(holes) == 0 {
		return Region{}, ErrEmptyOutline
	}
	if len(outers) == 0 {
		// Pathological winding: treat everything as an outer.
		return unionPaths(holes), nil
	}

	outerRegion := unionPaths(outers)
	if len(holes) == 0 {
		return outerRegion, nil
	}
	return Difference(outerRegion, unionPaths(holes)), nil
}

// unionPaths unions a set of raw contours into a region, ignoring their
// source winding.
func unionPaths(paths clipper.Paths) Region {
	normalized := make(clipper.Paths, 0, len(paths))
	for _, p := range paths {
		if !clipper.Orientation(p) {
			p = reversed(p)
		}
		normalized = append(normalized, p)
	}
	return Region{paths: repair(normalized)}
}

func reversed(p clipper.Path) clipper.Path {
	out := make(clipper.Path, len(p))
	for i, pt := range p {
		out[len(p)-1-i] = pt
	}
	return out
}

// Rings returns the region's boundaries with their derived roles and
// hole-to-parent nesting, in a stable traversal order (outers first at
// each nesting level, each directly followed by its holes).
func (r Region) Rings() []Ring {
	if r.IsEmpty() {
		return nil
	}
	c := clipper.NewClipper(clipper.IoNone)
	c.AddPaths(r.paths, clipper.PtSubject, true)
	tree, ok := c.Execute2(clipper.CtUnion, clipper.PftNonZero, clipper.PftNonZero)
	if !ok {
		return nil
	}
	var rings []Ring
	var walk func(node *clipper.PolyNode, parent int)
	walk = func(node *clipper.PolyNode, parent int) {
		idx := len(rings)
		rings = append(rings, Ring{
			Points: fromPath(node.Contour()),
			Hole:   node.IsHole(),
			Parent: parent,
		})
		childParent := idx
		if node.IsHole() {
			// Children of a hole are nested outers; they start a
			// new component and have no parent outer.
			childParent = -1
		}
		for _, child := range node.Childs() {
			walk(child, childParent)
		}
	}
	for _, top := range tree.Childs() {
		walk(top, -1)
	}
	return rings
}

// Components returns the number of connected components, i.e. the number
// of outer boundaries at any nesting depth. Used to verify that bridge
// synthesis actually reconnects hole walls to the outer wall.
func (r Region) Components() int {
	n := 0
	for _, ring := range r.Rings() {
		if !ring.Hole {
			n++
		}
	}
	return n
}
