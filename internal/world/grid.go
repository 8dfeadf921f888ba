package world

import "github.com/udisondev/tilenav/internal/coord"

// Chunk-local pixel space. Tile (0,0) is centred on the origin, so a chunk
// covers [-HalfTile, ChunkSize-HalfTile) on both axes.
const (
	ChunkMinPx = -coord.HalfTile
	ChunkMaxPx = coord.ChunkSize - coord.HalfTile
)

// MaxOverhang is how far, in pixels, a collider box may reach past the
// edges of the chunk that indexes it. Passability queries only look into
// the 8 neighbours and skip chunks whose ReachBounds they miss.
const MaxOverhang = 255

// NeighborOffsets lists the 8 compass neighbours of a chunk, row by row.
// Neighbors returns chunks in the same order.
var NeighborOffsets = [8]coord.Vec2i{
	{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
	{X: -1, Y: 0}, {X: 1, Y: 0},
	{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
}

// ChunkBounds returns the pixel area owned by a chunk in its own local space.
func ChunkBounds() coord.BBox {
	return coord.BBox{
		Min: coord.Vec2{X: ChunkMinPx, Y: ChunkMinPx},
		Max: coord.Vec2{X: ChunkMaxPx, Y: ChunkMaxPx},
	}
}

// ReachBounds returns the area, in a chunk's local space, that boxes indexed
// by the chunk may cover.
func ReachBounds() coord.BBox {
	return coord.BBox{
		Min: coord.Vec2{X: ChunkMinPx - MaxOverhang, Y: ChunkMinPx - MaxOverhang},
		Max: coord.Vec2{X: ChunkMaxPx + MaxOverhang, Y: ChunkMaxPx + MaxOverhang},
	}
}

// withinReach reports whether box lies inside ReachBounds.
func withinReach(box coord.BBox) bool {
	r := ReachBounds()
	return box.Min.X >= r.Min.X && box.Min.Y >= r.Min.Y &&
		box.Max.X <= r.Max.X && box.Max.Y <= r.Max.Y
}

// NeighborOffsetPx is the translation from a chunk's local space into the
// local space of its neighbour i.
func NeighborOffsetPx(i int) coord.Vec2 {
	return NeighborOffsets[i].Mul(coord.ChunkSize).Vec2()
}
