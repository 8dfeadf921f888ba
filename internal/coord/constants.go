package coord

// Chunk grid dimensions.
const (
	TileMaxDim = 16
	TileCount  = TileMaxDim * TileMaxDim // 256
	TileSize   = 64                      // pixels per tile edge
	HalfTile   = TileSize / 2
	ChunkSize  = TileSize * TileMaxDim // 1024 pixels per chunk edge
)

// Sub-tile division used by pathfinding and region flood fill.
const (
	DivFactor  = 4
	DivSize    = TileSize / DivFactor   // 16 px
	DivCount   = TileMaxDim * DivFactor // 64 sub-cells per chunk axis
	DivCells   = DivCount * DivCount    // 4096
	DivPerTile = DivFactor * DivFactor  // 16
)
