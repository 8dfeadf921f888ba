package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zyedidia/generic/stack"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/tilenav/internal/coord"
	"github.com/udisondev/tilenav/internal/world"
)

// Sub-cell centres run from divMin to divMin+(DivCount-1)*DivSize in chunk
// local pixels.
const divMin = -coord.HalfTile + coord.DivSize/2

// Directions a sub-cell can be entered from. fours[i] points from the new
// cell back to the cell it was reached from.
var fours = [4]coord.Vec2i{{X: 0, Y: 1}, {X: 0, Y: -1}, {X: 1, Y: 0}, {X: -1, Y: 0}}

// RegionBuilder holds the scratch state of the flood fill. A builder can be
// reused for any number of chunks but not by two goroutines at once.
type RegionBuilder struct {
	work    *stack.Stack[uint16]
	visited [coord.DivCells * 4 / 64]uint64
}

// NewRegionBuilder creates a builder.
func NewRegionBuilder() *RegionBuilder {
	return &RegionBuilder{work: stack.New[uint16]()}
}

// MakePassRegion flood-fills chunk c from its border and returns the sub-cells
// reachable from outside the chunk.
func MakePassRegion(w *world.World, c *world.Chunk) world.PassRegion {
	return NewRegionBuilder().Build(w, c)
}

// Build computes the PassRegion of c.
//
// Every border sub-cell that can be entered from the cell just outside the
// chunk seeds the fill. From there a cell spreads to its 4 axis neighbours
// inside the chunk whenever the box swept between the two cells is passable.
// Visits are tracked per entry direction, since a collider may allow one
// transition into a cell and reject another.
func (b *RegionBuilder) Build(w *world.World, c *world.Chunk) world.PassRegion {
	var region world.PassRegion
	n := NeighborhoodOf(w, c.Coord())
	b.reset()

	const last = coord.DivCount - 1
	for i := range coord.DivCount {
		b.seed(&n, &region, i, last, 0) // bottom
		b.seed(&n, &region, i, 0, 1)    // top
		b.seed(&n, &region, last, i, 2) // right
		b.seed(&n, &region, 0, i, 3)    // left
	}

	for b.work.Size() > 0 {
		cur := b.work.Pop()
		px, py := int(cur%coord.DivCount), int(cur/coord.DivCount)
		for dir, from := range fours {
			x, y := px-int(from.X), py-int(from.Y)
			if uint(x) >= coord.DivCount || uint(y) >= coord.DivCount {
				continue
			}
			if !b.checkVisited(&region, x, y, dir) {
				continue
			}
			if checkCell(&n, x, y, from) {
				b.push(&region, x, y)
			}
		}
	}
	return region
}

func (b *RegionBuilder) reset() {
	for b.work.Size() > 0 {
		b.work.Pop()
	}
	clear(b.visited[:])
}

func (b *RegionBuilder) seed(n *Neighborhood, r *world.PassRegion, x, y, dir int) {
	if checkCell(n, x, y, fours[dir]) {
		b.push(r, x, y)
	}
}

func (b *RegionBuilder) push(r *world.PassRegion, x, y int) {
	r.Set(x, y)
	b.work.Push(uint16(y*coord.DivCount + x))
}

// checkVisited reports whether cell (x, y) still needs evaluating when
// entered from direction dir, and marks it visited.
func (b *RegionBuilder) checkVisited(r *world.PassRegion, x, y, dir int) bool {
	if r.Test(x, y) {
		return false
	}
	v := (y*coord.DivCount+x)*4 + dir
	word, bit := v>>6, uint64(1)<<(uint(v)&63)
	if b.visited[word]&bit != 0 {
		return false
	}
	b.visited[word] |= bit
	return true
}

// checkCell tests the box covering sub-cell (x, y) and the cell next to it in
// direction from.
func checkCell(n *Neighborhood, x, y int, from coord.Vec2i) bool {
	pos := coord.Vec2i{X: int32(divMin + coord.DivSize*x), Y: int32(divMin + coord.DivSize*y)}
	prev := pos.Add(from.Mul(coord.DivSize))
	size := coord.Vec2i{X: coord.DivSize, Y: coord.DivSize}
	box := coord.BoxAround(pos, size).Union(coord.BoxAround(prev, size))
	return n.IsPassable(box.Min, box.Max, 0, neverContinue)
}

// PassRegionOf returns the memoised PassRegion of c, rebuilding it if the
// chunk or one of its neighbours changed since it was last built.
func PassRegionOf(w *world.World, c *world.Chunk) world.PassRegion {
	if r, ok := c.CachedRegion(); ok {
		return r
	}
	r := MakePassRegion(w, c)
	c.StoreRegion(r)
	return r
}

// RebuildRegions rebuilds the PassRegion of every dirty chunk using up to
// workers goroutines and returns how many chunks were rebuilt. The world must
// not be mutated until it returns.
func RebuildRegions(ctx context.Context, w *world.World, workers int) (int, error) {
	dirty := w.DirtyChunks()
	if len(dirty) == 0 {
		return 0, nil
	}
	workers = max(1, min(workers, len(dirty)))

	g, ctx := errgroup.WithContext(ctx)
	for k := range workers {
		g.Go(func() error {
			b := NewRegionBuilder()
			for i := k; i < len(dirty); i += workers {
				if err := ctx.Err(); err != nil {
					return fmt.Errorf("rebuilding region of %s: %w", dirty[i].Coord(), err)
				}
				dirty[i].StoreRegion(b.Build(w, dirty[i]))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	slog.Debug("pass regions rebuilt", "chunks", len(dirty), "workers", workers)
	return len(dirty), nil
}
