// Package layers stacks 2D footprints into the vertical sections of a
// cutter: base plate, cutting lip, main wall and optional reinforcement
// cap. Layers are independent solids; overlaps between them in 3D are
// tolerated by the exporter, so no boolean cleanup happens here.
package layers

import "github.com/chazu/cookiecut/pkg/geom"

// Placement selects where the thin cutting lip sits on the wall.
type Placement string

const (
	// LipBottom puts the lip directly above the base plate. Recommended
	// for cutting into soft material like clay.
	LipBottom Placement = "bottom"
	// LipTop puts the lip at the top of the wall.
	LipTop Placement = "top"
)

// Valid reports whether p is a known placement.
func (p Placement) Valid() bool {
	return p == LipBottom || p == LipTop
}

const (
	// baseMargin is how far the base plate extends past the silhouette.
	baseMargin = 0.2
	// lipReduction narrows the lip relative to the wall offset so the
	// cutting edge is thinner than the wall.
	lipReduction = 0.6
	// minLipOffset floors the lip's inner offset for very thin walls.
	minLipOffset = 0.2
	// capExtra widens the reinforcement cap past the wall for grip.
	capExtra = 0.6
)

// Layer is one vertical section: a footprint extruded from Z0 upward by
// Height.
type Layer struct {
	Footprint geom.Region
	Z0        float64
	Height    float64
}

// Spec describes the vertical build of a cutter. All values in mm.
type Spec struct {
	Base       float64 // base plate thickness
	Wall       float64 // wall offset distance
	WallHeight float64 // total wall height above the base, lip included
	LipHeight  float64 // height of the thin cutting lip
	CapHeight  float64 // reinforcement cap height, 0 disables
	Clearance  float64 // inner clearance, reused for the cap opening
	Lip        Placement
}

// Compose builds the ordered layer stack from the filled glyph region
// and the (post-bridge) wall footprint. Layers whose footprint is empty
// or whose height is not positive are silently dropped; degenerate
// glyphs then simply produce fewer sections instead of failing.
func Compose(fill, wall geom.Region, s Spec) []Layer {
	var stack []Layer
	add := func(footprint geom.Region, z0, height float64) {
		if footprint.IsEmpty() || height <= 0 {
			return
		}
		stack = append(stack, Layer{Footprint: footprint, Z0: z0, Height: height})
	}

	add(geom.Offset(fill, baseMargin), 0, s.Base)

	lip := lipRegion(fill, s.Wall)
	wallHeight := s.WallHeight - s.LipHeight
	if s.Lip == LipTop {
		add(wall, s.Base, wallHeight)
		add(lip, s.Base+s.WallHeight-s.LipHeight, s.LipHeight)
	} else {
		add(lip, s.Base, s.LipHeight)
		add(wall, s.Base+s.LipHeight, wallHeight)
	}

	if s.CapHeight > 0 {
		capRing := geom.Difference(
			geom.Offset(fill, s.Wall+capExtra),
			geom.Offset(fill, s.Clearance),
		)
		add(capRing, s.Base+s.WallHeight, s.CapHeight)
	}
	return stack
}

// lipRegion is the thin cutting band: the wall offset minus a reduced
// inner offset, so the lip is narrower than the main wall.
func lipRegion(fill geom.Region, wall float64) geom.Region {
	inner := wall - lipReduction
	if inner < minLipOffset {
		inner = minLipOffset
	}
	return geom.RingFootprint(fill, wall, inner)
}
