package collision

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/tilenav/internal/coord"
)

func box(x0, y0, x1, y1 float32) coord.BBox {
	return coord.BBox{Min: coord.Vec2{X: x0, Y: y0}, Max: coord.Vec2{X: x1, Y: y1}}
}

func queryIDs(x *Index, b coord.BBox) []ObjectID {
	var ids []ObjectID
	for e := range x.Query(b.Min, b.Max) {
		ids = append(ids, e.Data.ID)
	}
	slices.Sort(ids)
	return ids
}

func TestIndexInsertQuery(t *testing.T) {
	x := NewIndex()
	x.Insert(box(0, 0, 64, 64), Blocked, KindScenery, 1)
	x.Insert(box(100, 100, 120, 120), Pass, KindObject, 2)
	x.Insert(box(-400, -400, -300, -300), Blocked, KindGeometry, 3)

	assert.Equal(t, 3, x.Len())
	assert.Equal(t, []ObjectID{1}, queryIDs(x, box(10, 10, 20, 20)))
	assert.Equal(t, []ObjectID{1, 2}, queryIDs(x, box(50, 50, 110, 110)))
	assert.Equal(t, []ObjectID{3}, queryIDs(x, box(-350, -350, -340, -340)))
	assert.Empty(t, queryIDs(x, box(500, 500, 600, 600)))
}

func TestIndexTouchingEdgesDoNotOverlap(t *testing.T) {
	x := NewIndex()
	x.Insert(box(0, 0, 64, 64), Blocked, KindScenery, 1)

	assert.Empty(t, queryIDs(x, box(64, 0, 128, 64)), "right edge")
	assert.Empty(t, queryIDs(x, box(-64, 0, 0, 64)), "left edge")
	assert.Empty(t, queryIDs(x, box(0, 64, 64, 128)), "bottom edge")
	assert.Empty(t, queryIDs(x, box(64, 64, 70, 70)), "corner")
	assert.Equal(t, []ObjectID{1}, queryIDs(x, box(63, 0, 128, 64)))
}

func TestIndexLargeBoxFoundFromFarCorner(t *testing.T) {
	x := NewIndex()
	// Spans the whole chunk, queried near the opposite corner.
	x.Insert(box(-16, -16, 976, 976), Blocked, KindScenery, 7)

	assert.Equal(t, []ObjectID{7}, queryIDs(x, box(900, 900, 910, 910)))
	assert.Equal(t, []ObjectID{7}, queryIDs(x, box(500, -20, 501, -15)))
	assert.Empty(t, queryIDs(x, box(976, 976, 1000, 1000)))
}

func TestIndexRemove(t *testing.T) {
	x := NewIndex()
	s1 := x.Insert(box(0, 0, 10, 10), Blocked, KindGeometry, 1)
	x.Insert(box(5, 5, 15, 15), Blocked, KindGeometry, 1)
	s3 := x.Insert(box(20, 20, 30, 30), Blocked, KindObject, 2)
	v := x.Version()

	assert.Equal(t, 2, x.Remove(1))
	assert.Greater(t, x.Version(), v)
	assert.Equal(t, 1, x.Len())
	assert.Empty(t, queryIDs(x, box(0, 0, 16, 16)))
	assert.Equal(t, 0, x.Remove(1))

	_, ok := x.Entry(s1)
	assert.False(t, ok)
	e, ok := x.Entry(s3)
	require.True(t, ok)
	assert.Equal(t, ObjectID(2), e.Data.ID)

	// Freed slots are reused, live slots are not.
	s4 := x.Insert(box(40, 40, 50, 50), Blocked, KindObject, 4)
	assert.NotEqual(t, s3, s4)
	e, ok = x.Entry(s3)
	require.True(t, ok)
	assert.Equal(t, ObjectID(2), e.Data.ID)
}

func TestIndexResize(t *testing.T) {
	x := NewIndex()
	s := x.Insert(box(0, 0, 10, 10), Blocked, KindObject, 1)

	require.True(t, x.Resize(s, box(600, 600, 700, 700)))
	assert.Empty(t, queryIDs(x, box(0, 0, 10, 10)))
	assert.Equal(t, []ObjectID{1}, queryIDs(x, box(650, 650, 660, 660)))

	require.True(t, x.Resize(s, box(600, 600, 601, 601)))
	assert.Empty(t, queryIDs(x, box(650, 650, 660, 660)))
	assert.Equal(t, []ObjectID{1}, queryIDs(x, box(600, 600, 700, 700)))

	x.Remove(1)
	assert.False(t, x.Resize(s, box(0, 0, 1, 1)))
}

func TestIndexRemoveKeepsIdenticalBox(t *testing.T) {
	x := NewIndex()
	x.Insert(box(0, 0, 32, 32), Blocked, KindObject, 1)
	x.Insert(box(0, 0, 32, 32), Blocked, KindObject, 2)

	x.Remove(1)
	assert.Equal(t, []ObjectID{2}, queryIDs(x, box(10, 10, 20, 20)))
}

func TestIndexMatchesLinearScan(t *testing.T) {
	x := NewIndex()
	var boxes []coord.BBox
	for i := range 200 {
		x0 := float32(i*37%1100) - 150
		y0 := float32(i*53%1100) - 150
		b := box(x0, y0, x0+float32(8+i%90), y0+float32(8+i*7%60))
		boxes = append(boxes, b)
		x.Insert(b, Blocked, KindGeometry, ObjectID(i+1))
	}
	for i := 0; i < 200; i += 3 {
		x.Remove(ObjectID(i + 1))
	}

	for _, q := range []coord.BBox{
		box(0, 0, 64, 64),
		box(-200, 400, 1200, 420),
		box(500, -300, 501, 1300),
		box(300, 300, 332, 332),
	} {
		var want []ObjectID
		for i, b := range boxes {
			if i%3 != 0 && coord.Intersects(q.Min, q.Max, b.Min, b.Max) {
				want = append(want, ObjectID(i+1))
			}
		}
		assert.Equal(t, want, queryIDs(x, q), "query %v", q)
	}
}

func TestIndexSlotsAndAll(t *testing.T) {
	x := NewIndex()
	a := x.Insert(box(0, 0, 10, 10), Blocked, KindGeometry, 9)
	b := x.Insert(box(10, 0, 20, 10), Blocked, KindGeometry, 9)
	x.Insert(box(0, 0, 1, 1), Pass, KindObject, 3)

	assert.ElementsMatch(t, []Slot{a, b}, x.Slots(9))

	n := 0
	for range x.All() {
		n++
	}
	assert.Equal(t, 3, n)

	x.Clear()
	assert.Equal(t, 0, x.Len())
	assert.Empty(t, x.Slots(9))
	assert.Empty(t, queryIDs(x, box(-1000, -1000, 1000, 1000)))
}

func TestIndexQueryStopsEarly(t *testing.T) {
	x := NewIndex()
	for i := range 10 {
		x.Insert(box(0, 0, 100, 100), Blocked, KindObject, ObjectID(i+1))
	}

	n := 0
	for range x.Query(coord.Vec2{X: 1, Y: 1}, coord.Vec2{X: 2, Y: 2}) {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestPassModeString(t *testing.T) {
	for _, m := range []PassMode{Blocked, Pass, ShootThrough, SeeThrough} {
		got, err := ParsePassMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParsePassMode("maybe")
	assert.Error(t, err)
}

func BenchmarkIndexQuery(b *testing.B) {
	x := NewIndex()
	for ty := range coord.TileMaxDim {
		for tx := range coord.TileMaxDim {
			if (tx+ty)%3 != 0 {
				continue
			}
			cx := float32(tx * coord.TileSize)
			cy := float32(ty * coord.TileSize)
			x.Insert(box(cx-32, cy-32, cx+32, cy-28), Blocked, KindGeometry, ObjectID(ty*16+tx+1))
		}
	}
	q := box(300, 300, 332, 332)

	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		for range x.Query(q.Min, q.Max) {
		}
	}
}
