package testutil

import "github.com/udisondev/tilenav/internal/coord"

// Fixtures holds shared geometry for tests.
var Fixtures = struct {
	// Origin is chunk (0,0,0).
	Origin coord.ChunkCoord3
	// East is the chunk right of Origin.
	East coord.ChunkCoord3

	// Interior covers a chunk except a one sub-cell wide ring at its border.
	Interior coord.BBox

	// VerticalWall cuts a chunk in two along x, from the top edge to the
	// bottom edge.
	VerticalWall coord.BBox

	// Actor is the actor size used by search tests.
	Actor coord.Vec2i
}{
	Origin: coord.ChunkCoord3{},
	East:   coord.ChunkCoord3{X: 1},

	Interior: Box(
		-coord.HalfTile+coord.DivSize, -coord.HalfTile+coord.DivSize,
		coord.ChunkSize-coord.HalfTile-coord.DivSize, coord.ChunkSize-coord.HalfTile-coord.DivSize,
	),

	VerticalWall: Box(480, -coord.HalfTile, 544, coord.ChunkSize-coord.HalfTile),

	Actor: coord.Vec2i{X: 32, Y: 32},
}
