// Package world holds the chunk map and the objects placed in it.
//
// A World is not safe for concurrent mutation. Any number of goroutines may
// run read-only queries (passability, pathfinding, region building) while no
// goroutine mutates it.
package world

import (
	"cmp"
	"slices"

	"github.com/zyedidia/generic/mapset"

	"github.com/udisondev/tilenav/internal/collision"
	"github.com/udisondev/tilenav/internal/coord"
)

// DefaultActorSize is the bounding box used for objects and queries that do
// not carry one.
var DefaultActorSize = coord.Vec2i{X: 32, Y: 32}

// World is a sparse set of chunks keyed by chunk coordinate.
type World struct {
	chunks  map[coord.ChunkCoord3]*Chunk
	objects map[collision.ObjectID]placement
	dirty   mapset.Set[coord.ChunkCoord3]

	absentBlocks bool
	defaultSize  coord.Vec2i
}

// Option configures a World.
type Option func(*World)

// WithAbsentChunksBlock makes chunks that are not loaded block movement.
// By default absent chunks are treated as empty.
func WithAbsentChunksBlock(block bool) Option {
	return func(w *World) { w.absentBlocks = block }
}

// WithDefaultSize sets the bounding box size used when none is supplied.
func WithDefaultSize(size coord.Vec2i) Option {
	return func(w *World) {
		if size.X > 0 && size.Y > 0 {
			w.defaultSize = size
		}
	}
}

// New creates an empty world.
func New(opts ...Option) *World {
	w := &World{
		chunks:      make(map[coord.ChunkCoord3]*Chunk),
		objects:     make(map[collision.ObjectID]placement),
		dirty:       mapset.New[coord.ChunkCoord3](),
		defaultSize: DefaultActorSize,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// AbsentChunksBlock reports whether chunks that are not loaded block movement.
func (w *World) AbsentChunksBlock() bool { return w.absentBlocks }

// DefaultSize returns the bounding box size used when none is supplied.
func (w *World) DefaultSize() coord.Vec2i { return w.defaultSize }

// At returns the chunk at c, or nil if it is not loaded.
func (w *World) At(c coord.ChunkCoord3) *Chunk {
	return w.chunks[c]
}

// Ensure returns the chunk at c, creating an empty one if needed.
func (w *World) Ensure(c coord.ChunkCoord3) *Chunk {
	if ch, ok := w.chunks[c]; ok {
		return ch
	}
	ch := newChunk(w, c)
	w.chunks[c] = ch
	w.dirty.Put(c)
	if w.absentBlocks {
		// Neighbours treated this area as solid until now.
		w.touch(c)
	}
	return ch
}

// Neighbors returns the 8 chunks around c in NeighborOffsets order.
// Entries are nil for chunks that are not loaded.
func (w *World) Neighbors(c coord.ChunkCoord3) [8]*Chunk {
	var out [8]*Chunk
	for i, off := range NeighborOffsets {
		out[i] = w.chunks[c.Add(off)]
	}
	return out
}

// Chunks returns all loaded chunks ordered by z, y, x.
func (w *World) Chunks() []*Chunk {
	out := make([]*Chunk, 0, len(w.chunks))
	for _, ch := range w.chunks {
		out = append(out, ch)
	}
	slices.SortFunc(out, func(a, b *Chunk) int { return compareChunk(a.coord, b.coord) })
	return out
}

// ChunkCount returns the number of loaded chunks.
func (w *World) ChunkCount() int { return len(w.chunks) }

// DirtyChunks returns the loaded chunks whose PassRegion is stale, ordered
// like Chunks.
func (w *World) DirtyChunks() []*Chunk {
	var out []*Chunk
	var stale []coord.ChunkCoord3
	w.dirty.Each(func(c coord.ChunkCoord3) {
		ch := w.chunks[c]
		if ch == nil || !ch.regionModified {
			stale = append(stale, c)
			return
		}
		out = append(out, ch)
	})
	for _, c := range stale {
		w.dirty.Remove(c)
	}
	slices.SortFunc(out, func(a, b *Chunk) int { return compareChunk(a.coord, b.coord) })
	return out
}

// touch invalidates the region memo of c and its neighbours. Flood fill of a
// chunk looks into its neighbours, so a change anywhere in the 3x3 block can
// change the result.
func (w *World) touch(c coord.ChunkCoord3) {
	if ch := w.chunks[c]; ch != nil {
		ch.MarkRegionModified()
	}
	for _, off := range NeighborOffsets {
		if ch := w.chunks[c.Add(off)]; ch != nil {
			ch.MarkRegionModified()
		}
	}
}

func compareChunk(a, b coord.ChunkCoord3) int {
	return cmp.Or(
		cmp.Compare(a.Z, b.Z),
		cmp.Compare(a.Y, b.Y),
		cmp.Compare(a.X, b.X),
	)
}
