package search

import (
	"time"

	"github.com/udisondev/tilenav/internal/coord"
)

// Result is the outcome of a path search.
//
// When Found is false the path leads to the node that got closest to the goal
// and Distance is how far that node still is from it.
type Result struct {
	path     []coord.Point
	found    bool
	cost     uint32
	distance uint32
	elapsed  time.Duration
}

// Path returns the waypoints from the start to the goal, inclusive. A found
// path starts and ends exactly at the requested points. The slice is owned by
// the result.
func (r Result) Path() []coord.Point { return r.path }

// Found reports whether the goal was reached.
func (r Result) Found() bool { return r.found }

// Cost returns the path length in pixels.
func (r Result) Cost() uint32 { return r.cost }

// Distance returns the remaining distance to the goal: 0 when found.
func (r Result) Distance() uint32 { return r.distance }

// Elapsed returns how long the search took.
func (r Result) Elapsed() time.Duration { return r.elapsed }

// Len returns the number of waypoints.
func (r Result) Len() int { return len(r.path) }

// Simplified returns the path without interior points that lie on a straight
// line between their neighbours.
func (r Result) Simplified() []coord.Point {
	if len(r.path) <= 2 {
		return append([]coord.Point(nil), r.path...)
	}
	out := make([]coord.Point, 0, len(r.path))
	out = append(out, r.path[0])
	for i := 1; i < len(r.path)-1; i++ {
		prev := out[len(out)-1]
		d1 := coord.Sub(r.path[i], prev)
		d2 := coord.Sub(r.path[i+1], r.path[i])
		// Collinear and pointing the same way.
		if int64(d1.X)*int64(d2.Y) == int64(d1.Y)*int64(d2.X) &&
			int64(d1.X)*int64(d2.X)+int64(d1.Y)*int64(d2.Y) >= 0 {
			continue
		}
		out = append(out, r.path[i])
	}
	return append(out, r.path[len(r.path)-1])
}
