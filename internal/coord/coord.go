package coord

import "fmt"

// ChunkCoord identifies a chunk column on one z-level.
type ChunkCoord struct {
	X, Y int16
}

// Vec2i returns the chunk coordinate as a vector.
func (c ChunkCoord) Vec2i() Vec2i { return Vec2i{int32(c.X), int32(c.Y)} }

// ChunkCoord3 identifies a chunk including its z-level.
type ChunkCoord3 struct {
	X, Y int16
	Z    int8
}

// Chunk drops the z-level.
func (c ChunkCoord3) Chunk() ChunkCoord { return ChunkCoord{c.X, c.Y} }

// Add offsets the chunk by d chunks on the same z-level.
func (c ChunkCoord3) Add(d Vec2i) ChunkCoord3 {
	return ChunkCoord3{X: int16(int32(c.X) + d.X), Y: int16(int32(c.Y) + d.Y), Z: c.Z}
}

func (c ChunkCoord3) String() string {
	return fmt.Sprintf("chunk{%d,%d,%d}", c.X, c.Y, c.Z)
}

// Local is a tile position inside a chunk. Both components are in [0, TileMaxDim).
type Local struct {
	X, Y uint8
}

// LocalFromIndex converts a row-major tile index back to a Local.
func LocalFromIndex(idx int) Local {
	if idx < 0 || idx >= TileCount {
		panic(fmt.Sprintf("coord: tile index %d out of range", idx))
	}
	return Local{X: uint8(idx % TileMaxDim), Y: uint8(idx / TileMaxDim)}
}

// Index returns the row-major tile index.
func (l Local) Index() int { return int(l.Y)*TileMaxDim + int(l.X) }

// Vec2i returns the tile position as a vector.
func (l Local) Vec2i() Vec2i { return Vec2i{int32(l.X), int32(l.Y)} }

// Global is an absolute tile coordinate.
// X and Y count tiles from the world origin; chunk = floor(X/16), local = X mod 16.
type Global struct {
	X, Y int32
	Z    int8
}

// NewGlobal combines a chunk and a local tile position.
func NewGlobal(c ChunkCoord3, l Local) Global {
	return Global{
		X: int32(c.X)<<4 | int32(l.X&0x0f),
		Y: int32(c.Y)<<4 | int32(l.Y&0x0f),
		Z: c.Z,
	}
}

// Chunk returns the chunk column containing g.
func (g Global) Chunk() ChunkCoord {
	return ChunkCoord{X: int16(g.X >> 4), Y: int16(g.Y >> 4)}
}

// Chunk3 returns the chunk containing g.
func (g Global) Chunk3() ChunkCoord3 {
	return ChunkCoord3{X: int16(g.X >> 4), Y: int16(g.Y >> 4), Z: g.Z}
}

// Local returns the tile position of g inside its chunk.
func (g Global) Local() Local {
	return Local{X: uint8(g.X & 0x0f), Y: uint8(g.Y & 0x0f)}
}

// Add moves g by d tiles.
func (g Global) Add(d Vec2i) Global {
	return Global{X: g.X + d.X, Y: g.Y + d.Y, Z: g.Z}
}

// Sub returns the tile difference g-o, ignoring z.
func (g Global) Sub(o Global) Vec2i {
	return Vec2i{g.X - o.X, g.Y - o.Y}
}
