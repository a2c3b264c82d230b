// Package bridge connects the wall loops around glyph counters to the
// outer cutter wall. Without bridges the wall traced around a hole is a
// disconnected island in the printed part, and the counter piece of clay
// is never mechanically captured when cutting.
package bridge

import (
	"math"

	"github.com/dhconnelly/rtreego"

	"github.com/chazu/cookiecut/pkg/geom"
)

// rtreeTol is the degenerate-rectangle tolerance for point entries in
// the vertex index.
const rtreeTol = 1e-9

// vertex is a boundary sample point stored in the spatial index.
type vertex struct {
	p geom.Point
}

var _ rtreego.Spatial = (*vertex)(nil)

func (v *vertex) Bounds() rtreego.Rect {
	return rtreego.Point{v.p.X, v.p.Y}.ToRect(rtreeTol)
}

// Connect adds one strut per interior hole of fill to the ring
// footprint, each along the shortest segment between the hole boundary
// and its enclosing outer boundary. Struts are extended by reach at both
// ends so they fully overlap the wall bands on either side of the
// cutting channel, then clipped to the envelope (the outward wall
// offset) so no bridge protrudes past the outer wall. Holes are
// processed in the region's ring order; ties in the distance search
// resolve to the first pair found, so results are deterministic.
//
// A fill with no holes returns ring unchanged.
func Connect(fill, ring, envelope geom.Region, width, reach float64) geom.Region {
	rings := fill.Rings()

	// One vertex index per outer boundary, built lazily.
	indexes := make(map[int]*rtreego.Rtree)
	indexFor := func(parent int) *rtreego.Rtree {
		if t, ok := indexes[parent]; ok {
			return t
		}
		t := rtreego.NewTree(2, 4, 16)
		for _, p := range rings[parent].Points {
			t.Insert(&vertex{p: p})
		}
		indexes[parent] = t
		return t
	}

	result := ring
	for _, r := range rings {
		if !r.Hole || r.Parent < 0 {
			continue
		}
		tree := indexFor(r.Parent)

		best := math.Inf(1)
		var onHole, onOuter geom.Point
		for _, hp := range r.Points {
			nn := tree.NearestNeighbor(rtreego.Point{hp.X, hp.Y})
			if nn == nil {
				continue
			}
			op := nn.(*vertex).p
			if d := dist2(hp, op); d < best {
				best = d
				onHole, onOuter = hp, op
			}
		}
		if math.IsInf(best, 1) {
			continue
		}

		a, b := extend(onHole, onOuter, reach)
		strut := geom.Intersect(geom.Strut(a, b, width), envelope)
		result = geom.Union(result, strut)
	}
	return result
}

func dist2(a, b geom.Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

// extend pushes both segment endpoints outward along the segment
// direction by reach millimeters.
func extend(a, b geom.Point, reach float64) (geom.Point, geom.Point) {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return a, b
	}
	ux, uy := dx/l, dy/l
	return geom.Point{X: a.X - ux*reach, Y: a.Y - uy*reach},
		geom.Point{X: b.X + ux*reach, Y: b.Y + uy*reach}
}
