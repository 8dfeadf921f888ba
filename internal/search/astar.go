package search

import (
	"math"
	"slices"
	"time"

	"github.com/zyedidia/generic/heap"

	"github.com/udisondev/tilenav/internal/collision"
	"github.com/udisondev/tilenav/internal/coord"
	"github.com/udisondev/tilenav/internal/world"
)

type node struct {
	dist   uint32
	prev   uint32
	pt     coord.Point
	closed bool // popped at its current dist
}

type direction struct {
	vec coord.Vec2i
	len uint32
}

// The 8 lattice steps. Diagonals cost their rounded length.
var directions = func() [8]direction {
	const axis = coord.DivSize
	diag := uint32(math.Hypot(axis, axis) + .5)
	return [8]direction{
		{coord.Vec2i{X: -axis, Y: -axis}, diag},
		{coord.Vec2i{X: axis, Y: axis}, diag},
		{coord.Vec2i{X: -axis, Y: axis}, diag},
		{coord.Vec2i{X: axis, Y: -axis}, diag},
		{coord.Vec2i{X: -axis, Y: 0}, axis},
		{coord.Vec2i{X: 0, Y: -axis}, axis},
		{coord.Vec2i{X: axis, Y: 0}, axis},
		{coord.Vec2i{X: 0, Y: axis}, axis},
	}
}()

// seedRadius is how many lattice steps around the start tile get seeded.
const seedRadius = 2 * coord.DivFactor

// AStar finds paths over the 16 px sub-cell lattice. It keeps its node
// array, heap and cache between calls. An AStar must not be used by two
// goroutines at once; give each worker its own.
type AStar struct {
	opts  options
	cache Cache
	nodes []node
	queue *heap.Heap[uint32]
}

// New creates a pathfinder.
func New(opts ...Option) *AStar {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	a := &AStar{
		opts:  o,
		nodes: make([]node, 0, o.capacity),
	}
	a.cache.profiler = o.profiler
	// Distances change after a node is queued, so a relaxed node is pushed
	// again. The heap compares current values; entries of a node that was
	// already popped are skipped.
	a.queue = heap.New[uint32](func(x, y uint32) bool {
		return a.nodes[x].dist < a.nodes[y].dist
	})
	return a
}

// FindPath runs a single search with a fresh pathfinder.
func FindPath(w *world.World, from, to coord.Point, ownID collision.ObjectID,
	maxDist uint32, ownSize coord.Vec2i, p Pred) Result {
	return New(WithCapacity(1024)).Dijkstra(w, from, to, ownID, maxDist, ownSize, p)
}

// NodeCount returns how many nodes the last search materialised.
func (a *AStar) NodeCount() int { return len(a.nodes) }

// Dijkstra searches for the cheapest path from from to to for an actor of
// size ownSize, ignoring colliders owned by ownID. Paths longer than maxDist
// pixels are not explored. A zero ownSize uses the world default; sizes
// below the minimum actor size are raised to it.
//
// A goal on another level, or a start or goal the actor does not fit in,
// fails without searching. Otherwise, if the goal is not reached, the result
// carries the path to the node that got closest to it.
func (a *AStar) Dijkstra(w *world.World, from, to coord.Point, ownID collision.ObjectID,
	maxDist uint32, ownSize coord.Vec2i, p Pred) Result {
	started := time.Now()
	p = orDefault(p)
	a.clear()
	a.cache.Allocate(from, maxDist)

	size := actorSize(w, ownSize, a.opts.minSize)

	if from.CZ != to.CZ {
		return a.finish(Result{distance: coord.Distance(from, to)}, from, to, started)
	}
	if !a.passableAt(w, from, size, ownID, p) || !a.passableAt(w, to, size, ownID, p) {
		return a.finish(Result{distance: coord.Distance(from, to)}, from, to, started)
	}
	if from == to {
		return a.finish(Result{path: []coord.Point{from}, found: true}, from, to, started)
	}

	a.seed(w, from, size, ownID, p)

	bound := maxDist
	closestDist, closestIdx := uint32(math.MaxUint32), noIndex
	goalIdx, goalCost := noIndex, uint32(0)

	for a.queue.Size() > 0 {
		idx, _ := a.queue.Pop()
		cur := a.nodes[idx]
		if cur.closed {
			continue
		}
		a.nodes[idx].closed = true
		if cur.dist >= bound {
			continue
		}

		if d := coord.Distance(cur.pt, to); d < closestDist {
			closestDist, closestIdx = d, idx
			if a.opts.verbosity >= 2 {
				a.opts.logger.Debug("closest node", "px", d, "path", cur.dist, "pos", cur.pt)
			}
		}

		if coord.Manhattan(cur.pt, to) < a.opts.goalThreshold {
			cost := cur.dist + coord.Distance(cur.pt, to)
			if goalIdx == noIndex || cost < goalCost {
				if a.passableBox(w, to.Chunk3(), sweptBox(to, cur.pt, size), ownID, p) {
					goalIdx, goalCost = idx, cost
					// Anything still queued can only get longer.
					bound = cost
					continue
				}
			}
		}

		a.expand(w, idx, cur, bound, size, ownID, p)
	}

	var res Result
	switch {
	case goalIdx != noIndex:
		res.found = true
		res.cost = goalCost
		res.path = a.walk(goalIdx, from, to, true)
	case closestIdx != noIndex:
		res.cost = a.nodes[closestIdx].dist
		res.distance = closestDist
		res.path = a.walk(closestIdx, from, to, false)
	default:
		res.distance = coord.Distance(from, to)
		res.path = []coord.Point{from}
	}
	return a.finish(res, from, to, started)
}

func (a *AStar) clear() {
	a.nodes = a.nodes[:0]
	for a.queue.Size() > 0 {
		a.queue.Pop()
	}
}

// seed queues the lattice points of a square around from's tile centre that
// the actor can reach in a straight line.
func (a *AStar) seed(w *world.World, from coord.Point, size coord.Vec2i, ownID collision.ObjectID, p Pred) {
	base := from
	base.Offset = coord.Offset{}
	for y := int32(-seedRadius); y <= seedRadius; y++ {
		for x := int32(-seedRadius); x <= seedRadius; x++ {
			pt := coord.Normalize(base, coord.Vec2i{X: x * coord.DivSize, Y: y * coord.DivSize})
			if !a.passableBox(w, pt.Chunk3(), sweptBox(pt, from, size), ownID, p) {
				continue
			}
			idx := uint32(len(a.nodes))
			a.cache.AddIndex(pt, idx)
			a.nodes = append(a.nodes, node{dist: coord.Distance(from, pt), prev: noIndex, pt: pt})
			a.queue.Push(idx)
		}
	}
}

func (a *AStar) expand(w *world.World, idx uint32, cur node, bound uint32, size coord.Vec2i, ownID collision.ObjectID, p Pred) {
	generated := 0
	for _, d := range directions {
		dist := cur.dist + d.len
		if dist >= bound {
			continue
		}
		next := coord.Normalize(cur.pt, d.vec)
		ci, ok := a.cache.slotOf(next.Chunk())
		if !ok {
			continue
		}
		ti := TileIndex(next.Tile, next.Offset)
		nidx, exists := a.cache.lookupIndex(ci, ti)
		if exists && a.nodes[nidx].dist <= dist {
			continue
		}
		if !a.passableBox(w, next.Chunk3(), sweptBox(next, cur.pt, size), ownID, p) {
			continue
		}

		if exists {
			a.nodes[nidx] = node{dist: dist, prev: idx, pt: next}
		} else {
			nidx = uint32(len(a.nodes))
			a.cache.addIndex(ci, ti, nidx)
			a.nodes = append(a.nodes, node{dist: dist, prev: idx, pt: next})
		}
		if a.opts.verbosity >= 3 {
			a.opts.logger.Debug("relaxed", "path", dist, "pos", next)
		}
		a.queue.Push(nidx)
		generated++
	}
	if pr := a.opts.profiler; pr != nil {
		pr.RecordNodeExpanded()
		pr.RecordNeighborGeneration(generated)
	}
}

// walk follows predecessor links back from idx and returns the path in
// travel order, starting at from and, for a found path, ending at to.
func (a *AStar) walk(idx uint32, from, to coord.Point, found bool) []coord.Point {
	var path []coord.Point
	if found {
		path = append(path, to)
		if a.nodes[idx].pt == to {
			idx = a.nodes[idx].prev
		}
	}
	for i := idx; i != noIndex; i = a.nodes[i].prev {
		path = append(path, a.nodes[i].pt)
	}
	if path[len(path)-1] != from {
		path = append(path, from)
	}
	slices.Reverse(path)
	return path
}

func (a *AStar) finish(res Result, from, to coord.Point, started time.Time) Result {
	res.elapsed = time.Since(started)
	if pr := a.opts.profiler; pr != nil {
		pr.RecordSearch(res.elapsed, res.found)
	}
	if a.opts.verbosity >= 1 {
		direct := coord.Distance(from, to)
		ratio := 1.0
		if res.cost > 0 && direct > 0 {
			ratio = float64(res.cost) / float64(direct)
		}
		a.opts.logger.Info("path search",
			"found", res.found,
			"elapsed", res.elapsed,
			"nodes", len(a.nodes),
			"waypoints", len(res.path),
			"len", res.cost,
			"len0", direct,
			"closest", res.distance,
			"ratio", ratio,
		)
	}
	return res
}

func (a *AStar) passableAt(w *world.World, pt coord.Point, size coord.Vec2i, ownID collision.ObjectID, p Pred) bool {
	return a.passableBox(w, pt.Chunk3(), boxAt(pt.Center(), size), ownID, p)
}

func (a *AStar) passableBox(w *world.World, c coord.ChunkCoord3, box coord.BBox, ownID collision.ObjectID, p Pred) bool {
	n := a.cache.Neighborhood(w, c)
	return n.IsPassable(box.Min, box.Max, ownID, p)
}

// actorSize resolves a zero size to the world default and raises it to at
// least minSize.
func actorSize(w *world.World, size, minSize coord.Vec2i) coord.Vec2i {
	if size == (coord.Vec2i{}) {
		size = w.DefaultSize()
	}
	return coord.Vec2i{X: max(size.X, minSize.X), Y: max(size.Y, minSize.Y)}
}

// sweptBox covers an actor of the given size at both from and pt, in pt's
// chunk space.
func sweptBox(pt, from coord.Point, size coord.Vec2i) coord.BBox {
	shift := coord.Vec2i{X: int32(from.CX - pt.CX), Y: int32(from.CY - pt.CY)}.Mul(coord.ChunkSize)
	b0 := coord.BoxAround(from.Center().Add(shift), size)
	return b0.Union(coord.BoxAround(pt.Center(), size))
}
