package world

import (
	"math/bits"
	"strings"

	"github.com/udisondev/tilenav/internal/coord"
)

// PassRegion marks which sub-cells of a chunk are reachable from its border.
// Bit y*DivCount+x is sub-cell (x, y). The zero value is an empty region.
// PassRegion is a value type: compare with ==, copy by assignment.
type PassRegion [coord.DivCells / 64]uint64

func regionBit(x, y int) (int, uint64) {
	i := y*coord.DivCount + x
	return i >> 6, 1 << (uint(i) & 63)
}

// Test reports whether sub-cell (x, y) is set.
func (r *PassRegion) Test(x, y int) bool {
	w, b := regionBit(x, y)
	return r[w]&b != 0
}

// Set marks sub-cell (x, y) reachable.
func (r *PassRegion) Set(x, y int) {
	w, b := regionBit(x, y)
	r[w] |= b
}

// TestIndex is Test for a flat sub-cell index.
func (r *PassRegion) TestIndex(i int) bool {
	return r[i>>6]&(1<<(uint(i)&63)) != 0
}

// Count returns the number of set sub-cells.
func (r *PassRegion) Count() int {
	n := 0
	for _, w := range r {
		n += bits.OnesCount64(w)
	}
	return n
}

// Full reports whether every sub-cell is reachable.
func (r *PassRegion) Full() bool {
	for _, w := range r {
		if w != ^uint64(0) {
			return false
		}
	}
	return true
}

// FullPassRegion returns a region with every sub-cell set.
func FullPassRegion() PassRegion {
	var r PassRegion
	for i := range r {
		r[i] = ^uint64(0)
	}
	return r
}

// String renders the region as DivCount rows of '#' (reachable) and '.'.
func (r *PassRegion) String() string {
	var sb strings.Builder
	sb.Grow(coord.DivCells + coord.DivCount)
	for y := range coord.DivCount {
		for x := range coord.DivCount {
			if r.Test(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
