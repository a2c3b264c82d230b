package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEmpty(t *testing.T) {
	_, err := Resolve(nil)
	assert.ErrorIs(t, err, ErrEmptyOutline)

	// Degenerate contours alone are as good as none.
	_, err = Resolve([]Contour{{{0, 0}, {1, 1}}})
	assert.ErrorIs(t, err, ErrEmptyOutline)
}

func TestResolveSquareWithHole(t *testing.T) {
	outer := square(0, 0, 10, false) // cw: outer
	hole := square(0, 0, 3, true)    // ccw: hole
	r := mustResolve(t, outer, hole)

	assert.InDelta(t, 400-36, r.Area(), 1e-6)
	assert.Equal(t, 1, r.Components())

	rings := r.Rings()
	require.Len(t, rings, 2)
	assert.False(t, rings[0].Hole)
	assert.Equal(t, -1, rings[0].Parent)
	assert.True(t, rings[1].Hole)
	assert.Equal(t, 0, rings[1].Parent)
}

func TestResolveDisjointStrokes(t *testing.T) {
	// Like the letter "i": two separate outer boundaries.
	dot := square(0, -8, 1.5, false)
	stem := square(0, 2, 3, false)
	r := mustResolve(t, dot, stem)

	assert.Equal(t, 2, r.Components())
	assert.InDelta(t, 9+36, r.Area(), 1e-6)
}

func TestResolveFallbackWhenNoOuter(t *testing.T) {
	// Pathological data: every contour winds like a hole. Everything is
	// then unioned as an outer boundary instead.
	a := square(0, 0, 5, true)
	b := square(20, 0, 5, true)
	r := mustResolve(t, a, b)

	assert.Equal(t, 2, r.Components())
	assert.InDelta(t, 200, r.Area(), 1e-6)
}

func TestResolveOverlappingOuters(t *testing.T) {
	// Self-overlapping strokes union cleanly into one boundary.
	a := square(0, 0, 5, false)
	b := square(4, 0, 5, false)
	r := mustResolve(t, a, b)

	assert.Equal(t, 1, r.Components())
	assert.InDelta(t, 140, r.Area(), 1e-6)
}

func TestResolveNestingDepthTwo(t *testing.T) {
	// The fill model is polygon-with-holes, one nesting level deep:
	// an island inside a hole is unioned away with the outers and then
	// subtracted with the hole region. Glyph outlines do not nest
	// deeper than counters, so the simpler model wins.
	outer := square(0, 0, 10, false)
	hole := square(0, 0, 6, true)
	island := square(0, 0, 2, false)
	r := mustResolve(t, outer, hole, island)

	assert.Equal(t, 1, r.Components())
	assert.InDelta(t, 400-144, r.Area(), 1e-6)

	var holes int
	for _, ring := range r.Rings() {
		if ring.Hole {
			holes++
		}
	}
	assert.Equal(t, 1, holes)
}

func TestComponentsEmpty(t *testing.T) {
	assert.Equal(t, 0, Region{}.Components())
	assert.Nil(t, Region{}.Rings())
}
