// Package outline extracts glyph outlines from TrueType/OpenType fonts
// and flattens them into polygonal contours in millimeter units, centered
// at the origin. It is the only part of the system that touches font
// files; everything downstream works on plain contours.
package outline

import (
	"errors"
	"fmt"
	"math"
	"os"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/chazu/cookiecut/pkg/geom"
)

var (
	// ErrGlyphNotFound means the requested character has no mapping in
	// the font's character map.
	ErrGlyphNotFound = errors.New("glyph not found in font character map")
	// ErrEmptyGlyph means the character maps to a glyph with no drawable
	// outline (e.g. a space).
	ErrEmptyGlyph = errors.New("glyph has no outline")
)

// chordTolerance is the maximum deviation, in millimeters, of the
// flattened polyline from the true outline curve. A fixed accuracy
// budget, not user-tunable.
const chordTolerance = 0.05

// maxSplitDepth bounds curve subdivision recursion.
const maxSplitDepth = 16

// LoadFont reads and parses a TTF/OTF font file. The file handle is
// released before the function returns; the parsed font holds only the
// in-memory table data.
func LoadFont(path string) (*sfnt.Font, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	f, err := sfnt.Parse(b)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	return f, nil
}

// Glyph returns the flattened contours of a character, uniformly scaled
// so that one em equals sizeMM millimeters, with the font's y-up axis
// flipped to a standard y-down plane and the combined bounding box
// centered at the origin.
func Glyph(f *sfnt.Font, r rune, sizeMM float64) ([]geom.Contour, error) {
	var buf sfnt.Buffer

	idx, err := f.GlyphIndex(&buf, r)
	if err != nil {
		return nil, fmt.Errorf("glyph index for %q: %w", r, err)
	}
	if idx == 0 {
		return nil, fmt.Errorf("%q: %w", r, ErrGlyphNotFound)
	}

	upem := int(f.UnitsPerEm())
	// Loading at ppem == unitsPerEm keeps segment coordinates in design
	// units (as 26.6 fixed point), so no precision is lost before the
	// single scale to millimeters below.
	segments, err := f.LoadGlyph(&buf, idx, fixed.I(upem), nil)
	if err != nil {
		return nil, fmt.Errorf("load glyph %q: %w", r, err)
	}

	scale := sizeMM / float64(upem)
	contours := flatten(segments, scale)
	if len(contours) == 0 {
		return nil, fmt.Errorf("%q: %w", r, ErrEmptyGlyph)
	}
	return center(contours), nil
}

// flatten converts glyph segments to polygonal contours. The scale maps
// design units to millimeters; the Y axis is negated because font
// coordinates grow upward from the baseline.
func flatten(segments sfnt.Segments, scale float64) []geom.Contour {
	var contours []geom.Contour
	var current geom.Contour

	flush := func() {
		if len(current) >= 3 {
			contours = append(contours, current)
		}
		current = nil
	}
	point := func(p fixed.Point26_6) geom.Point {
		return geom.Point{
			X: float64(p.X) / 64 * scale,
			Y: -float64(p.Y) / 64 * scale,
		}
	}
	var pen geom.Point

	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			flush()
			pen = point(seg.Args[0])
			current = append(current, pen)
		case sfnt.SegmentOpLineTo:
			pen = point(seg.Args[0])
			current = append(current, pen)
		case sfnt.SegmentOpQuadTo:
			// Promote the quadratic to a cubic, then flatten.
			c := point(seg.Args[0])
			end := point(seg.Args[1])
			c1 := mix(c, pen, 1.0/3.0)
			c2 := mix(c, end, 1.0/3.0)
			current = splitCubic(current, pen, c1, c2, end, 0)
			pen = end
		case sfnt.SegmentOpCubeTo:
			c1 := point(seg.Args[0])
			c2 := point(seg.Args[1])
			end := point(seg.Args[2])
			current = splitCubic(current, pen, c1, c2, end, 0)
			pen = end
		}
	}
	flush()
	return contours
}

// mix linearly interpolates from a toward b by t.
func mix(a, b geom.Point, t float64) geom.Point {
	return geom.Point{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

// splitCubic appends a polyline approximation of a cubic Bézier to dst
// using de Casteljau subdivision, stopping once the control points are
// within chordTolerance of the chord.
func splitCubic(dst geom.Contour, p0, p1, p2, p3 geom.Point, depth int) geom.Contour {
	if depth >= maxSplitDepth || isFlat(p0, p1, p2, p3) {
		return append(dst, p3)
	}
	l1 := mix(p0, p1, 0.5)
	m := mix(p1, p2, 0.5)
	r2 := mix(p2, p3, 0.5)
	l2 := mix(l1, m, 0.5)
	r1 := mix(m, r2, 0.5)
	c := mix(l2, r1, 0.5)
	dst = splitCubic(dst, p0, l1, l2, c, depth+1)
	return splitCubic(dst, c, r1, r2, p3, depth+1)
}

// isFlat reports whether both control points lie within chordTolerance
// of the p0-p3 chord, which bounds the curve's deviation from it.
func isFlat(p0, p1, p2, p3 geom.Point) bool {
	return distToChord(p1, p0, p3) <= chordTolerance &&
		distToChord(p2, p0, p3) <= chordTolerance
}

// distToChord returns the distance from p to the segment a-b.
func distToChord(p, a, b geom.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	len2 := dx*dx + dy*dy
	if len2 == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / len2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(p.X-(a.X+t*dx), p.Y-(a.Y+t*dy))
}

// center translates all contours so the combined bounding box is
// centered at the origin. Solid export has no notion of page layout, so
// the model has to be anchored here.
func center(contours []geom.Contour) []geom.Contour {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range contours {
		for _, p := range c {
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}
	cx := (minX + maxX) / 2
	cy := (minY + maxY) / 2

	out := make([]geom.Contour, len(contours))
	for i, c := range contours {
		shifted := make(geom.Contour, len(c))
		for j, p := range c {
			shifted[j] = geom.Point{X: p.X - cx, Y: p.Y - cy}
		}
		out[i] = shifted
	}
	return out
}
