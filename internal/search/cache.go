package search

import (
	"fmt"
	"math"

	"github.com/udisondev/tilenav/internal/coord"
	"github.com/udisondev/tilenav/internal/world"
)

const noIndex = ^uint32(0)

// Node slots per chunk: one per sub-cell of every tile.
const slotsPerChunk = coord.TileCount * coord.DivPerTile

// Chunk coordinates wrap at 2^16, so a wider window would alias itself.
const maxWindowHalf = math.MaxInt16

// Windows with more chunks than this keep their chunk states in a map.
const maxDenseChunks = 64 * 64

type chunkState uint8

const (
	chunkUnknown chunkState = iota
	chunkAbsent
	chunkPresent
)

type cacheChunk struct {
	state        chunkState
	hasNeighbors bool
	chunk        *world.Chunk
	neighbors    [8]*world.Chunk
	exists       [slotsPerChunk / 64]uint64
	indexes      []uint32 // allocated on first insert
}

// Cache maps search positions to node indices for one pathfinding call. It
// covers a square window of chunks around the start chunk and memoises chunk
// lookups. Backing storage is kept between calls.
type Cache struct {
	center   coord.ChunkCoord
	z        int8
	half     int32
	size     int32
	chunks   []cacheChunk
	sparse   map[int]*cacheChunk // used instead of chunks for huge windows
	profiler Profiler
}

// WindowHalfSize returns how many chunks the cache window extends on each
// side of the start chunk for a search bounded by maxDist pixels.
func WindowHalfSize(maxDist uint32) int32 {
	half := (uint64(maxDist)+coord.ChunkSize-1)/coord.ChunkSize + 3
	return int32(min(half, maxWindowHalf))
}

// Allocate prepares the cache for a search starting at start that never
// travels further than maxDist pixels.
func (c *Cache) Allocate(start coord.Point, maxDist uint32) {
	c.center = start.Chunk()
	c.z = start.CZ
	c.half = WindowHalfSize(maxDist)
	c.size = 2*c.half + 1

	n := int(c.size) * int(c.size)
	if n > maxDenseChunks {
		c.chunks = c.chunks[:0]
		if c.sparse == nil {
			c.sparse = make(map[int]*cacheChunk)
		}
		clear(c.sparse)
		return
	}
	c.sparse = nil
	if cap(c.chunks) >= n {
		c.chunks = c.chunks[:n]
		for i := range c.chunks {
			ch := &c.chunks[i]
			ch.state = chunkUnknown
			ch.hasNeighbors = false
			ch.chunk = nil
			ch.neighbors = [8]*world.Chunk{}
			clear(ch.exists[:])
		}
		return
	}
	c.chunks = make([]cacheChunk, n)
}

// Window returns the side length of the allocated window, in chunks.
func (c *Cache) Window() int32 { return c.size }

func (c *Cache) slotOf(cc coord.ChunkCoord) (int, bool) {
	dx := int32(int16(cc.X - c.center.X))
	dy := int32(int16(cc.Y - c.center.Y))
	if dx < -c.half || dx > c.half || dy < -c.half || dy > c.half {
		return 0, false
	}
	return int(dy+c.half)*int(c.size) + int(dx+c.half), true
}

// at returns the state of window slot i.
func (c *Cache) at(i int) *cacheChunk {
	if c.sparse == nil {
		return &c.chunks[i]
	}
	ch, ok := c.sparse[i]
	if !ok {
		ch = &cacheChunk{}
		c.sparse[i] = ch
	}
	return ch
}

// ChunkIndex returns the window slot of chunk cc. It panics if cc lies
// outside the allocated window.
func (c *Cache) ChunkIndex(cc coord.ChunkCoord) int {
	i, ok := c.slotOf(cc)
	if !ok {
		panic(fmt.Sprintf("search: chunk %v outside cache window of %d around %v", cc, c.size, c.center))
	}
	return i
}

// TileIndex returns the slot of a sub-cell within its chunk.
func TileIndex(l coord.Local, off coord.Offset) int {
	sx := (int(off.X) + coord.HalfTile) / coord.DivSize
	sy := (int(off.Y) + coord.HalfTile) / coord.DivSize
	return l.Index()*coord.DivPerTile + sy*coord.DivFactor + sx
}

// AddIndex records idx as the node at pt. It panics if pt already has a node.
func (c *Cache) AddIndex(pt coord.Point, idx uint32) {
	c.addIndex(c.ChunkIndex(pt.Chunk()), TileIndex(pt.Tile, pt.Offset), idx)
}

func (c *Cache) addIndex(ci, ti int, idx uint32) {
	ch := c.at(ci)
	word, bit := ti>>6, uint64(1)<<(uint(ti)&63)
	if ch.exists[word]&bit != 0 {
		panic(fmt.Sprintf("search: cache slot %d/%d already holds node %d", ci, ti, ch.indexes[ti]))
	}
	if ch.indexes == nil {
		ch.indexes = make([]uint32, slotsPerChunk)
	}
	ch.exists[word] |= bit
	ch.indexes[ti] = idx
}

// LookupIndex returns the node at pt, if any.
func (c *Cache) LookupIndex(pt coord.Point) (uint32, bool) {
	ci, ok := c.slotOf(pt.Chunk())
	if !ok {
		return noIndex, false
	}
	return c.lookupIndex(ci, TileIndex(pt.Tile, pt.Offset))
}

func (c *Cache) lookupIndex(ci, ti int) (uint32, bool) {
	ch := c.at(ci)
	if ch.exists[ti>>6]&(uint64(1)<<(uint(ti)&63)) == 0 {
		return noIndex, false
	}
	return ch.indexes[ti], true
}

// Chunk returns the world chunk at cc, looking it up at most once per call.
// Chunks outside the window are looked up directly.
func (c *Cache) Chunk(w *world.World, cc coord.ChunkCoord3) *world.Chunk {
	i, ok := c.slotOf(cc.Chunk())
	if !ok || cc.Z != c.z {
		return w.At(cc)
	}
	ch := c.at(i)
	switch ch.state {
	case chunkPresent:
		c.recordHit()
		return ch.chunk
	case chunkAbsent:
		c.recordHit()
		return nil
	}
	c.recordMiss()
	ch.chunk = w.At(cc)
	if ch.chunk == nil {
		ch.state = chunkAbsent
	} else {
		ch.state = chunkPresent
	}
	return ch.chunk
}

// Neighbors returns the 8 neighbours of cc in world.NeighborOffsets order.
func (c *Cache) Neighbors(w *world.World, cc coord.ChunkCoord3) [8]*world.Chunk {
	i, ok := c.slotOf(cc.Chunk())
	if !ok || cc.Z != c.z {
		return w.Neighbors(cc)
	}
	ch := c.at(i)
	if !ch.hasNeighbors {
		for k, off := range world.NeighborOffsets {
			ch.neighbors[k] = c.Chunk(w, cc.Add(off))
		}
		ch.hasNeighbors = true
	}
	return ch.neighbors
}

// Neighborhood builds the passability neighbourhood of cc from the cache.
func (c *Cache) Neighborhood(w *world.World, cc coord.ChunkCoord3) Neighborhood {
	return Neighborhood{
		Home:         c.Chunk(w, cc),
		Neighbors:    c.Neighbors(w, cc),
		AbsentBlocks: w.AbsentChunksBlock(),
	}
}

func (c *Cache) recordHit() {
	if c.profiler != nil {
		c.profiler.RecordCacheHit()
	}
}

func (c *Cache) recordMiss() {
	if c.profiler != nil {
		c.profiler.RecordCacheMiss()
	}
}
