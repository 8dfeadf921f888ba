package search

import (
	"github.com/udisondev/tilenav/internal/collision"
	"github.com/udisondev/tilenav/internal/coord"
	"github.com/udisondev/tilenav/internal/world"
)

// Anything indexed in a chunk lies within these bounds.
var chunkQueryBounds = world.ReachBounds()

// IsPassableChunk reports whether the box [min, max), in c's local space, is
// free of colliders that block the mover ownID according to p.
func IsPassableChunk(c *world.Chunk, min, max coord.Vec2, ownID collision.ObjectID, p Pred) bool {
	if !coord.Intersects(min, max, chunkQueryBounds.Min, chunkQueryBounds.Max) {
		return true
	}
	p = orDefault(p)
	for e := range c.Index().Query(min, max) {
		if e.Data.ID == ownID || e.Data.Pass == collision.Pass {
			continue
		}
		if p.Decide(e.Data) != Pass {
			return false
		}
	}
	return true
}

// Neighborhood is a chunk together with its 8 neighbours, in
// world.NeighborOffsets order. Nil entries are chunks that are not loaded.
type Neighborhood struct {
	Home      *world.Chunk
	Neighbors [8]*world.Chunk
	// AbsentBlocks makes the area of a missing chunk solid.
	AbsentBlocks bool
}

// NeighborhoodOf collects the chunk at c and its neighbours.
func NeighborhoodOf(w *world.World, c coord.ChunkCoord3) Neighborhood {
	return Neighborhood{
		Home:         w.At(c),
		Neighbors:    w.Neighbors(c),
		AbsentBlocks: w.AbsentChunksBlock(),
	}
}

// IsPassable checks the box [min, max), given in the home chunk's local space,
// against the home chunk and every neighbour it can reach. The home chunk may
// be nil: neighbours can still hold boxes overhanging into its area.
func (n *Neighborhood) IsPassable(min, max coord.Vec2, ownID collision.ObjectID, p Pred) bool {
	bounds := world.ChunkBounds()
	if n.Home != nil {
		if !IsPassableChunk(n.Home, min, max, ownID, p) {
			return false
		}
	} else if n.AbsentBlocks && coord.Intersects(min, max, bounds.Min, bounds.Max) {
		return false
	}

	for i, nb := range n.Neighbors {
		off := world.NeighborOffsetPx(i)
		lo, hi := min.Sub(off), max.Sub(off)
		if nb != nil {
			if !IsPassableChunk(nb, lo, hi, ownID, p) {
				return false
			}
		} else if n.AbsentBlocks && coord.Intersects(lo, hi, bounds.Min, bounds.Max) {
			return false
		}
	}
	return true
}

// IsPassable reports whether an actor of the given size can stand at pt.
func IsPassable(w *world.World, pt coord.Point, size coord.Vec2i, ownID collision.ObjectID, p Pred) bool {
	return IsPassableBox(w, pt.Chunk3(), boxAt(pt.Center(), size), ownID, p)
}

// IsPassableBox reports whether box, in the local space of chunk c, is free.
func IsPassableBox(w *world.World, c coord.ChunkCoord3, box coord.BBox, ownID collision.ObjectID, p Pred) bool {
	n := NeighborhoodOf(w, c)
	return n.IsPassable(box.Min, box.Max, ownID, p)
}

// boxAt centres a box of the given size on center, splitting odd sizes evenly.
func boxAt(center, size coord.Vec2i) coord.BBox {
	half := coord.Vec2{X: float32(size.X) * .5, Y: float32(size.Y) * .5}
	lo := center.Vec2().Sub(half)
	return coord.BBox{Min: lo, Max: lo.Add(size.Vec2())}
}
