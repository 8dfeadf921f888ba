package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/tilenav/internal/coord"
	"github.com/udisondev/tilenav/internal/testutil"
	"github.com/udisondev/tilenav/internal/world"
)

func TestMakePassRegionEmptyChunk(t *testing.T) {
	w := testutil.NewWorld(t, []coord.ChunkCoord3{fx.Origin})

	r := MakePassRegion(w, w.At(fx.Origin))
	testutil.AssertRegionEqual(t, world.FullPassRegion(), r)
	assert.Equal(t, coord.DivCells, r.Count())
}

func TestMakePassRegionInteriorBlocked(t *testing.T) {
	w := testutil.NewWorld(t, []coord.ChunkCoord3{fx.Origin})
	testutil.AddWall(t, w, fx.Origin, fx.Interior)

	r := MakePassRegion(w, w.At(fx.Origin))
	testutil.AssertRegionEqual(t, testutil.BorderRegion(), r)
	assert.Equal(t, 4*coord.DivCount-4, r.Count())
}

func TestMakePassRegionClosedRoom(t *testing.T) {
	w := testutil.NewWorld(t, []coord.ChunkCoord3{fx.Origin})
	// A 224 px square room with 16 px walls, aligned to the sub-cell grid:
	// sub-cells 27..40 on both axes are either wall or enclosed.
	for _, b := range []coord.BBox{
		testutil.Box(400, 400, 624, 416),
		testutil.Box(400, 608, 624, 624),
		testutil.Box(400, 400, 416, 624),
		testutil.Box(608, 400, 624, 624),
	} {
		testutil.AddWall(t, w, fx.Origin, b)
	}

	r := MakePassRegion(w, w.At(fx.Origin))
	assert.Equal(t, coord.DivCells-14*14, r.Count())

	for _, tt := range []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{26, 30, true},
		{27, 26, true},
		{27, 30, false},
		{33, 33, false},
		{40, 40, false},
		{41, 40, true},
		{63, 63, true},
	} {
		assert.Equal(t, tt.want, r.Test(tt.x, tt.y), "cell (%d,%d)", tt.x, tt.y)
	}
}

func TestMakePassRegionAbsentChunksBlock(t *testing.T) {
	w := testutil.NewWorld(t, []coord.ChunkCoord3{fx.Origin}, world.WithAbsentChunksBlock(true))

	// Nothing outside the chunk can be entered from, so nothing is reachable.
	r := MakePassRegion(w, w.At(fx.Origin))
	assert.Zero(t, r.Count())

	// With the east chunk loaded the fill comes in from there.
	w.Ensure(fx.East)
	r = MakePassRegion(w, w.At(fx.Origin))
	assert.Equal(t, coord.DivCells, r.Count())
}

func TestMakePassRegionWallInNeighbor(t *testing.T) {
	w := testutil.NewWorld(t, []coord.ChunkCoord3{fx.Origin, fx.East})
	// The east chunk's collider overhangs 32 px back into Origin and covers
	// its whole right border, so the east side cannot seed the fill.
	testutil.AddWall(t, w, fx.East, testutil.Box(-64, -100, 0, 1100))

	r := MakePassRegion(w, w.At(fx.Origin))
	for y := range coord.DivCount {
		assert.False(t, r.Test(coord.DivCount-1, y), "row %d", y)
		assert.False(t, r.Test(coord.DivCount-2, y), "row %d", y)
		assert.True(t, r.Test(coord.DivCount-3, y), "row %d", y)
	}
}

func TestRegionBuilderReuse(t *testing.T) {
	w := testutil.NewWorld(t, []coord.ChunkCoord3{fx.Origin, fx.East})
	testutil.AddWall(t, w, fx.Origin, fx.Interior)

	b := NewRegionBuilder()
	first := b.Build(w, w.At(fx.Origin))
	testutil.AssertRegionEqual(t, testutil.BorderRegion(), first)
	testutil.AssertRegionEqual(t, world.FullPassRegion(), b.Build(w, w.At(fx.East)))
	testutil.AssertRegionEqual(t, first, b.Build(w, w.At(fx.Origin)))
}

func TestPassRegionOfMemo(t *testing.T) {
	w := testutil.NewWorld(t, []coord.ChunkCoord3{fx.Origin, fx.East})
	origin := w.At(fx.Origin)
	require.True(t, origin.IsRegionModified())

	r := PassRegionOf(w, origin)
	testutil.AssertRegionEqual(t, world.FullPassRegion(), r)
	assert.False(t, origin.IsRegionModified())
	cached, ok := origin.CachedRegion()
	require.True(t, ok)
	testutil.AssertRegionEqual(t, r, cached)

	// A change in the neighbour invalidates the memo.
	testutil.AddWall(t, w, fx.East, testutil.Box(-64, -100, 0, 1100))
	assert.True(t, origin.IsRegionModified())
	r = PassRegionOf(w, origin)
	assert.False(t, r.Test(coord.DivCount-1, 0))
	assert.False(t, origin.IsRegionModified())
}

func TestRebuildRegions(t *testing.T) {
	var coords []coord.ChunkCoord3
	for y := range int16(3) {
		for x := range int16(4) {
			coords = append(coords, coord.ChunkCoord3{X: x, Y: y})
		}
	}
	w := testutil.NewWorld(t, coords)
	testutil.AddWall(t, w, coord.ChunkCoord3{X: 2, Y: 1}, fx.Interior)

	n, err := RebuildRegions(context.Background(), w, 3)
	require.NoError(t, err)
	assert.Equal(t, len(coords), n)
	assert.Empty(t, w.DirtyChunks())

	for _, ch := range w.Chunks() {
		got, ok := ch.CachedRegion()
		require.True(t, ok, "chunk %s", ch.Coord())
		testutil.AssertRegionEqual(t, MakePassRegion(w, ch), got)
	}

	// Only the touched 3x3 block is rebuilt next time.
	testutil.AddWall(t, w, coord.ChunkCoord3{X: 0, Y: 0}, testutil.Box(0, 0, 10, 10))
	n, err = RebuildRegions(context.Background(), w, 8)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = RebuildRegions(context.Background(), w, 8)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRebuildRegionsCanceled(t *testing.T) {
	w := testutil.NewWorld(t, []coord.ChunkCoord3{fx.Origin, fx.East})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RebuildRegions(ctx, w, 2)
	require.ErrorIs(t, err, context.Canceled)
	assert.Len(t, w.DirtyChunks(), 2)
}

func BenchmarkMakePassRegion(b *testing.B) {
	w := testutil.NewWorld(b, []coord.ChunkCoord3{fx.Origin})
	testutil.AddWall(b, w, fx.Origin, fx.VerticalWall)
	ch := w.At(fx.Origin)
	rb := NewRegionBuilder()

	b.ReportAllocs()
	for b.Loop() {
		rb.Build(w, ch)
	}
}
