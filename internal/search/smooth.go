package search

import (
	"github.com/udisondev/tilenav/internal/collision"
	"github.com/udisondev/tilenav/internal/coord"
	"github.com/udisondev/tilenav/internal/world"
)

const smoothPasses = 3

// Smooth drops waypoints that the actor can skip by walking straight from the
// previous kept waypoint to the next one. Up to 3 passes are made; the first
// and last points are always kept.
func Smooth(w *world.World, path []coord.Point, size coord.Vec2i, ownID collision.ObjectID, p Pred) []coord.Point {
	for range smoothPasses {
		if len(path) <= 2 {
			return path
		}

		changed := false
		smoothed := make([]coord.Point, 0, len(path))
		smoothed = append(smoothed, path[0])
		for i := 1; i < len(path)-1; i++ {
			prev := smoothed[len(smoothed)-1]
			if Raycast(w, prev, path[i+1], size, ownID, p).Success {
				changed = true
				continue
			}
			smoothed = append(smoothed, path[i])
		}
		path = append(smoothed, path[len(path)-1])

		if !changed {
			break
		}
	}
	return path
}
