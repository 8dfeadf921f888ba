package testutil

import (
	"testing"

	"github.com/udisondev/tilenav/internal/coord"
	"github.com/udisondev/tilenav/internal/world"
)

// AssertEndpoints fails unless path starts exactly at from and ends exactly at to.
func AssertEndpoints(t testing.TB, path []coord.Point, from, to coord.Point) {
	t.Helper()

	if len(path) == 0 {
		t.Fatalf("path is empty, expected %v .. %v", from, to)
	}
	if path[0] != from {
		t.Fatalf("path starts at %v, expected %v", path[0], from)
	}
	if path[len(path)-1] != to {
		t.Fatalf("path ends at %v, expected %v", path[len(path)-1], to)
	}
}

// PathLength sums the Euclidean lengths of the path segments.
func PathLength(path []coord.Point) uint64 {
	var total uint64
	for i := 1; i < len(path); i++ {
		total += uint64(coord.Distance(path[i-1], path[i]))
	}
	return total
}

// AssertRegionEqual compares two regions and prints both as grids on mismatch.
func AssertRegionEqual(t testing.TB, expected, actual world.PassRegion) {
	t.Helper()

	if expected != actual {
		t.Fatalf("pass region mismatch: expected %d cells, got %d\nexpected:\n%s\nactual:\n%s",
			expected.Count(), actual.Count(), expected.String(), actual.String())
	}
}

// BorderRegion returns a region with only the outermost ring of sub-cells set.
func BorderRegion() world.PassRegion {
	var r world.PassRegion
	const last = coord.DivCount - 1
	for i := range coord.DivCount {
		r.Set(i, 0)
		r.Set(i, last)
		r.Set(0, i)
		r.Set(last, i)
	}
	return r
}
