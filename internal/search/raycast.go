package search

import (
	"time"

	"github.com/udisondev/tilenav/internal/collision"
	"github.com/udisondev/tilenav/internal/coord"
	"github.com/udisondev/tilenav/internal/world"
)

// RaycastResult describes a straight-line sweep of an actor box.
type RaycastResult struct {
	From, To coord.Point
	// Collision is the last point the actor reached: To on success.
	Collision coord.Point
	// Collider is the collider that stopped the sweep.
	Collider collision.Data
	Success  bool
	Elapsed  time.Duration
}

// Raycast sweeps an actor box of the given size from from to to along a
// straight line and stops at the first collider p reports as blocking. The
// box advances at most DivSize pixels along the major axis per hop. Sizes are
// resolved as in Dijkstra: zero means the world default, and nothing smaller
// than MinActorSize is swept.
func Raycast(w *world.World, from, to coord.Point, size coord.Vec2i, ownID collision.ObjectID, p Pred) RaycastResult {
	started := time.Now()
	res := RaycastResult{From: from, To: to, Collision: from}
	if from.CZ != to.CZ {
		res.Elapsed = time.Since(started)
		return res
	}
	size = actorSize(w, size, MinActorSize)

	p = orDefault(p)
	var hit collision.Data
	rec := PredFunc(func(d collision.Data) Continue {
		c := p.Decide(d)
		if c != Pass {
			hit = d
		}
		return c
	})

	if !IsPassable(w, from, size, ownID, rec) {
		res.Collider = hit
		res.Elapsed = time.Since(started)
		return res
	}

	v := coord.Sub(to, from)
	it := NewLineIterator(0, 0, v.X, v.Y)
	steps := it.Steps()
	prev := from
	for k := int32(0); it.Next(); k++ {
		if k%coord.DivSize != 0 && k != steps {
			continue
		}
		cur := coord.Normalize(from, coord.Vec2i{X: it.X(), Y: it.Y()})
		if cur == prev {
			continue
		}
		if !IsPassableBox(w, cur.Chunk3(), sweptBox(cur, prev, size), ownID, rec) {
			res.Collision = prev
			res.Collider = hit
			res.Elapsed = time.Since(started)
			return res
		}
		prev = cur
	}

	res.Collision = to
	res.Success = true
	res.Elapsed = time.Since(started)
	return res
}
