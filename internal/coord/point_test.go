package coord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pt(cx, cy int16, tx, ty uint8, ox, oy int8) Point {
	return Point{CX: cx, CY: cy, Tile: Local{tx, ty}, Offset: Offset{ox, oy}}
}

func TestNormalizeZeroDelta(t *testing.T) {
	points := []Point{
		{},
		pt(1, 2, 3, 4, 5, 6),
		pt(-1, -7, 15, 0, -32, 31),
		pt(32767, -32768, 15, 15, 31, -32),
	}
	for _, p := range points {
		assert.Equal(t, p, Normalize(p, Vec2i{}), "normalize(%v, 0)", p)
	}
}

func TestNormalizeCarry(t *testing.T) {
	tests := []struct {
		name  string
		from  Point
		delta Vec2i
		want  Point
	}{
		{"within tile", pt(0, 0, 3, 3, 0, 0), Vec2i{10, -10}, pt(0, 0, 3, 3, 10, -10)},
		{"half tile carries", pt(0, 0, 3, 3, 0, 0), Vec2i{32, 0}, pt(0, 0, 4, 3, -32, 0)},
		{"below half stays", pt(0, 0, 3, 3, 0, 0), Vec2i{-32, 0}, pt(0, 0, 3, 3, -32, 0)},
		{"into next chunk", pt(0, 0, 15, 0, 31, 0), Vec2i{1, 0}, pt(1, 0, 0, 0, -32, 0)},
		{"into previous chunk", pt(0, 0, 0, 0, -32, 0), Vec2i{-1, 0}, pt(-1, 0, 15, 0, 31, 0)},
		{"whole chunks", pt(2, -3, 4, 5, 0, 0), Vec2i{ChunkSize * 2, -ChunkSize}, pt(4, -4, 4, 5, 0, 0)},
		{"negative multi tile", pt(0, 0, 1, 1, 0, 0), Vec2i{-200, -64}, pt(-1, 0, 14, 0, -8, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.from, tt.delta))
		})
	}
}

func TestNormalizeAdditive(t *testing.T) {
	points := []Point{pt(0, 0, 0, 0, 0, 0), pt(-3, 5, 15, 15, 31, -32), pt(100, -100, 7, 8, -5, 9)}
	deltas := []Vec2i{{0, 0}, {1, -1}, {31, 33}, {-64, 64}, {1023, -1025}, {-5000, 7777}, {16, 16}}

	for _, p := range points {
		for _, d1 := range deltas {
			for _, d2 := range deltas {
				got := Normalize(Normalize(p, d1), d2)
				want := Normalize(p, d1.Add(d2))
				require.Equal(t, want, got, "p=%v d1=%v d2=%v", p, d1, d2)
			}
		}
	}
}

func TestNormalizeKeepsInvariants(t *testing.T) {
	p := pt(0, 0, 8, 8, 0, 0)
	for dx := int32(-300); dx <= 300; dx += 7 {
		q := Normalize(p, Vec2i{dx, -dx})
		assert.Less(t, q.Tile.X, uint8(TileMaxDim))
		assert.Less(t, q.Tile.Y, uint8(TileMaxDim))
		assert.GreaterOrEqual(t, q.Offset.X, int8(-HalfTile))
		assert.Less(t, q.Offset.X, int8(HalfTile))
		assert.Equal(t, Vec2i{dx, -dx}, Sub(q, p))
	}
}

func TestSub(t *testing.T) {
	const T = TileSize
	tests := []struct {
		a, b Point
		want Vec2i
	}{
		{Point{}, Point{}, Vec2i{}},
		{Point{}, pt(0, 0, 1, 0, 0, 0), Vec2i{-T, 0}},
		{pt(0, 0, 6, 4, 0, 0), pt(0, 0, 2, 3, 0, 0), Vec2i{4 * T, T}},
		{pt(7, 8, 6, 4, 0, 0), pt(9, -11, 2, 3, 0, 0), Vec2i{4*T - 2*ChunkSize, T + 19*ChunkSize}},
		{pt(7, 8, 6, 4, 24, 16), pt(9, -11, 2, 3, -16, 24), Vec2i{4*T - 2*ChunkSize + 40, T + 19*ChunkSize - 8}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Sub(tt.a, tt.b), "%v - %v", tt.a, tt.b)
	}
}

func TestDistance(t *testing.T) {
	a := pt(0, 0, 0, 0, 0, 0)
	b := pt(0, 0, 3, 4, 0, 0)

	assert.Equal(t, uint32(5*TileSize), Distance(a, b))
	assert.Equal(t, Distance(a, b), Distance(b, a))
	assert.Equal(t, uint32(7*TileSize), Manhattan(a, b))
	assert.Equal(t, Manhattan(a, b), Manhattan(b, a))

	// 1x1 pixel diagonal rounds up.
	c := pt(0, 0, 0, 0, 1, 1)
	assert.Equal(t, uint32(2), Distance(a, c))
	assert.Equal(t, uint32(2), Manhattan(a, c))
}

func TestManhattanAcrossChunks(t *testing.T) {
	a := pt(1, 2, 3, 4, 0, 0)
	b := pt(0, 0, 0, 0, 0, 0)
	want := uint32(1*ChunkSize + 3*TileSize + 2*ChunkSize + 4*TileSize)
	assert.Equal(t, want, Manhattan(a, b))

	c := pt(2, 3, 4, 5, 0, 0)
	d := pt(1, 2, 3, 4, -1, -1)
	want = uint32(2 * (ChunkSize + TileSize + 1))
	assert.Equal(t, want, Manhattan(c, d))
}

func TestCompare(t *testing.T) {
	a := pt(0, 0, 1, 1, 0, 0)

	assert.Equal(t, 0, Compare(a, a))
	assert.Equal(t, -1, Compare(a, pt(0, 1, 0, 0, 0, 0)))
	assert.Equal(t, 1, Compare(pt(1, 0, 0, 0, 0, 0), a))
	assert.Equal(t, -1, Compare(a, pt(0, 0, 1, 1, 0, 1)))

	upper := a
	upper.CZ = 1
	assert.Equal(t, 1, Compare(upper, pt(5, 5, 5, 5, 5, 5)))
}

func TestHashDistinguishesFields(t *testing.T) {
	base := pt(1, 2, 3, 4, 5, 6)
	seen := map[uint64]Point{base.Hash(): base}
	variants := []Point{
		pt(2, 2, 3, 4, 5, 6),
		pt(1, 3, 3, 4, 5, 6),
		pt(1, 2, 4, 4, 5, 6),
		pt(1, 2, 3, 5, 5, 6),
		pt(1, 2, 3, 4, 6, 6),
		pt(1, 2, 3, 4, 5, 7),
	}
	for _, v := range variants {
		_, dup := seen[v.Hash()]
		assert.False(t, dup, "hash collision for %v", v)
		seen[v.Hash()] = v
	}
	assert.Equal(t, base.Hash(), pt(1, 2, 3, 4, 5, 6).Hash())
}

func TestPointString(t *testing.T) {
	p := Point{CX: -1, CY: 2, CZ: 0, Tile: Local{3, 4}, Offset: Offset{-5, 6}}
	assert.Equal(t, "point{{-1,2,0},{3,4},{-5,6}}", p.String())
}
