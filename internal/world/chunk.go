package world

import (
	"fmt"

	"github.com/udisondev/tilenav/internal/collision"
	"github.com/udisondev/tilenav/internal/coord"
)

// Chunk is one 16x16-tile cell of the world. It owns the collider index for
// its area and a memoised PassRegion.
//
// A chunk is created lazily by World.Ensure and is never merged, split or
// moved. Mutations go through the chunk (or World.Place) so that the region
// memo of the chunk and its neighbours is invalidated.
type Chunk struct {
	world *World
	coord coord.ChunkCoord3
	index *collision.Index

	region         PassRegion
	hasRegion      bool
	regionModified bool
}

func newChunk(w *World, c coord.ChunkCoord3) *Chunk {
	return &Chunk{
		world:          w,
		coord:          c,
		index:          collision.NewIndex(),
		regionModified: true,
	}
}

// Coord returns the chunk's identity.
func (c *Chunk) Coord() coord.ChunkCoord3 { return c.coord }

// Index returns the chunk's collider index for queries. Do not mutate it
// directly; use Insert, RemoveOwner and Resize.
func (c *Chunk) Index() *collision.Index { return c.index }

// Version returns the collider index version.
func (c *Chunk) Version() uint64 { return c.index.Version() }

// Insert adds a collider box in chunk-local pixel space. The box must lie
// within ReachBounds.
func (c *Chunk) Insert(box coord.BBox, mode collision.PassMode, kind collision.Kind, id collision.ObjectID) (collision.Slot, error) {
	if !withinReach(box) {
		return 0, fmt.Errorf("inserting %v into chunk %s: %w", box, c.coord, ErrBBoxTooLarge)
	}
	s := c.index.Insert(box, mode, kind, id)
	c.world.touch(c.coord)
	return s, nil
}

// RemoveOwner removes every collider owned by id and returns how many were removed.
func (c *Chunk) RemoveOwner(id collision.ObjectID) int {
	n := c.index.Remove(id)
	if n > 0 {
		c.world.touch(c.coord)
	}
	return n
}

// Resize replaces the box of a live collider. It returns false for a dead
// slot or a box outside ReachBounds.
func (c *Chunk) Resize(s collision.Slot, box coord.BBox) bool {
	if !withinReach(box) || !c.index.Resize(s, box) {
		return false
	}
	c.world.touch(c.coord)
	return true
}

// MarkRegionModified drops the memoised PassRegion.
func (c *Chunk) MarkRegionModified() {
	c.regionModified = true
	c.world.dirty.Put(c.coord)
}

// IsRegionModified reports whether the memoised PassRegion is stale.
func (c *Chunk) IsRegionModified() bool { return c.regionModified }

// CachedRegion returns the memoised PassRegion if it is still valid.
func (c *Chunk) CachedRegion() (PassRegion, bool) {
	if c.regionModified || !c.hasRegion {
		return PassRegion{}, false
	}
	return c.region, true
}

// StoreRegion memoises r as the chunk's current PassRegion.
//
// StoreRegion touches only this chunk, so regions of distinct chunks may be
// stored from different goroutines.
func (c *Chunk) StoreRegion(r PassRegion) {
	c.region = r
	c.hasRegion = true
	c.regionModified = false
}
