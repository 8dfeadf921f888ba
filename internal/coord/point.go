package coord

import (
	"cmp"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
)

// Offset is a signed pixel displacement from a tile centre.
// Normalized offsets are in [-HalfTile, HalfTile).
type Offset struct {
	X, Y int8
}

// Vec2i returns the offset as a vector.
func (o Offset) Vec2i() Vec2i { return Vec2i{int32(o.X), int32(o.Y)} }

// Point is a sub-tile position: chunk, tile inside the chunk, pixel offset
// from the tile centre.
type Point struct {
	CX, CY int16
	CZ     int8
	Tile   Local
	Offset Offset
}

// NewPoint builds a point from a global tile coordinate and an offset.
func NewPoint(g Global, off Offset) Point {
	return Point{
		CX:     int16(g.X >> 4),
		CY:     int16(g.Y >> 4),
		CZ:     g.Z,
		Tile:   g.Local(),
		Offset: off,
	}
}

// Global returns the absolute tile coordinate of p.
func (p Point) Global() Global {
	return NewGlobal(p.Chunk3(), p.Tile)
}

// Chunk returns the chunk column of p.
func (p Point) Chunk() ChunkCoord { return ChunkCoord{p.CX, p.CY} }

// Chunk3 returns the chunk of p.
func (p Point) Chunk3() ChunkCoord3 { return ChunkCoord3{p.CX, p.CY, p.CZ} }

// Center returns the chunk-local pixel position of p.
func (p Point) Center() Vec2i {
	return p.Tile.Vec2i().Mul(TileSize).Add(p.Offset.Vec2i())
}

// Normalize adds a pixel delta to p, carrying offset overflow into the tile
// and tile overflow into the chunk. Chunk coordinates wrap as int16.
func Normalize(p Point, delta Vec2i) Point {
	g := p.Global()
	cx, ox := normalizeAxis(int64(g.X), int64(p.Offset.X), int64(delta.X))
	cy, oy := normalizeAxis(int64(g.Y), int64(p.Offset.Y), int64(delta.Y))
	return Point{
		CX:     int16(cx >> 4),
		CY:     int16(cy >> 4),
		CZ:     p.CZ,
		Tile:   Local{X: uint8(cx & 0x0f), Y: uint8(cy & 0x0f)},
		Offset: Offset{X: ox, Y: oy},
	}
}

func normalizeAxis(tile, off, delta int64) (int64, int8) {
	v := off + delta
	carry := floorDiv(v+HalfTile, TileSize)
	return tile + carry, int8(v - carry*TileSize)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Sub returns the pixel difference a-b, ignoring z.
func Sub(a, b Point) Vec2i {
	d := a.Global().Sub(b.Global()).Mul(TileSize)
	return d.Add(a.Offset.Vec2i()).Sub(b.Offset.Vec2i())
}

// Distance returns the Euclidean pixel distance between a and b, rounded up.
func Distance(a, b Point) uint32 {
	d := Sub(a, b)
	return uint32(math.Ceil(d.Length()))
}

// Manhattan returns |dx|+|dy| in pixels. Used as a cheap proximity test.
func Manhattan(a, b Point) uint32 {
	d := Sub(a, b)
	return uint32(absInt64(int64(d.X)) + absInt64(int64(d.Y)))
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// Compare orders points by z, chunk, tile and offset (y before x).
// The order has no spatial meaning; it only makes keys deterministic.
func Compare(a, b Point) int {
	if c := cmp.Compare(a.CZ, b.CZ); c != 0 {
		return c
	}
	if c := cmp.Compare(a.CY, b.CY); c != 0 {
		return c
	}
	if c := cmp.Compare(a.CX, b.CX); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Tile.Y, b.Tile.Y); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Tile.X, b.Tile.X); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Offset.Y, b.Offset.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.Offset.X, b.Offset.X)
}

// Hash returns a 64-bit FNV-1a hash of the packed point.
func (p Point) Hash() uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint16(buf[0:], uint16(p.CX))
	binary.LittleEndian.PutUint16(buf[2:], uint16(p.CY))
	buf[4] = byte(p.CZ)
	buf[5] = p.Tile.X&0x0f | p.Tile.Y<<4
	buf[6] = byte(p.Offset.X)
	buf[7] = byte(p.Offset.Y)
	h := fnv.New64a()
	_, _ = h.Write(buf[:])
	return h.Sum64()
}

func (p Point) String() string {
	return fmt.Sprintf("point{{%d,%d,%d},{%d,%d},{%d,%d}}",
		p.CX, p.CY, p.CZ, p.Tile.X, p.Tile.Y, p.Offset.X, p.Offset.Y)
}
