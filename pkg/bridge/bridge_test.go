package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/cookiecut/pkg/geom"
)

const (
	wall      = 1.6
	clearance = 0.3
	width     = 1.2
)

// rect builds a rectangle contour. Clockwise order marks an outer
// boundary, counter-clockwise a hole.
func rect(cx, cy, hx, hy float64, hole bool) geom.Contour {
	c := geom.Contour{
		{X: cx - hx, Y: cy - hy},
		{X: cx - hx, Y: cy + hy},
		{X: cx + hx, Y: cy + hy},
		{X: cx + hx, Y: cy - hy},
	}
	if hole {
		for i, j := 0, len(c)-1; i < j; i, j = i+1, j-1 {
			c[i], c[j] = c[j], c[i]
		}
	}
	return c
}

func setup(t *testing.T, contours ...geom.Contour) (fill, ring, envelope geom.Region) {
	t.Helper()
	fill, err := geom.Resolve(contours)
	require.NoError(t, err)
	envelope = geom.Offset(fill, wall)
	ring = geom.Difference(envelope, geom.Offset(fill, clearance))
	return fill, ring, envelope
}

func TestConnectNoHolesIsNoOp(t *testing.T) {
	fill, ring, envelope := setup(t, rect(0, 0, 10, 10, false))
	require.Equal(t, 1, ring.Components())

	out := Connect(fill, ring, envelope, width, wall)
	assert.InDelta(t, ring.Area(), out.Area(), 1e-9)
	assert.Equal(t, ring.Components(), out.Components())
}

func TestConnectSingleHole(t *testing.T) {
	// A square "O": the hole's wall loop starts out as a disconnected
	// island of the footprint.
	fill, ring, envelope := setup(t,
		rect(0, 0, 10, 10, false),
		rect(0, 0, 4, 4, true),
	)
	require.Equal(t, 2, ring.Components())

	out := Connect(fill, ring, envelope, width, wall)
	assert.Equal(t, 1, out.Components(), "bridge must reconnect the hole wall")
	assert.Greater(t, out.Area(), ring.Area(), "strut adds material")
	assert.True(t, geom.Covers(envelope, out), "bridge must not protrude past the outer wall")
}

func TestConnectTwoHoles(t *testing.T) {
	// A square "B": two stacked counters, three disconnected wall loops.
	fill, ring, envelope := setup(t,
		rect(0, 0, 8, 14, false),
		rect(0, -6, 3, 4, true),
		rect(0, 6, 3, 4, true),
	)
	require.Equal(t, 3, ring.Components())

	out := Connect(fill, ring, envelope, width, wall)
	assert.Equal(t, 1, out.Components())
}

func TestConnectDeterministic(t *testing.T) {
	fill, ring, envelope := setup(t,
		rect(0, 0, 10, 10, false),
		rect(-4, 0, 2, 2, true),
		rect(4, 0, 2, 2, true),
	)
	a := Connect(fill, ring, envelope, width, wall)
	b := Connect(fill, ring, envelope, width, wall)
	assert.Equal(t, a.Components(), b.Components())
	assert.InDelta(t, a.Area(), b.Area(), 1e-12)
}

func TestConnectEmptyRing(t *testing.T) {
	fill, _, envelope := setup(t, rect(0, 0, 10, 10, false), rect(0, 0, 4, 4, true))
	out := Connect(fill, geom.Region{}, envelope, width, wall)
	// Struts alone: one per hole, still inside the envelope.
	assert.True(t, geom.Covers(envelope, out))
}
