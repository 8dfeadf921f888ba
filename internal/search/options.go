package search

import (
	"log/slog"
	"math"

	"github.com/udisondev/tilenav/internal/coord"
)

// Defaults for AStar.
var (
	// DefaultGoalThreshold is the Manhattan distance in pixels under which a
	// node is close enough to try stepping straight onto the goal: one
	// diagonal sub-cell step, rounded up, plus one.
	DefaultGoalThreshold = uint32(math.Hypot(coord.DivSize, coord.DivSize) + 1.5)
	// MinActorSize is the smallest actor box searched with. Smaller actors
	// would slip between the 16 px lattice points.
	MinActorSize = coord.Vec2i{X: coord.DivSize * 2, Y: coord.DivSize * 2}
	// DefaultCapacity is the number of nodes preallocated for one chunk
	// worth of search.
	DefaultCapacity = coord.TileCount * 16 * coord.DivPerTile
)

type options struct {
	verbosity     int
	logger        *slog.Logger
	goalThreshold uint32
	minSize       coord.Vec2i
	capacity      int
	profiler      Profiler
}

// Option configures an AStar.
type Option func(*options)

// WithVerbosity sets how much the pathfinder logs: 0 nothing, 1 a summary per
// search, 2 every new closest node, 3 every relaxed node. Logging never
// changes results.
func WithVerbosity(level int) Option {
	return func(o *options) { o.verbosity = level }
}

// WithLogger sets the logger used for diagnostics. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithGoalThreshold overrides DefaultGoalThreshold.
func WithGoalThreshold(px uint32) Option {
	return func(o *options) {
		if px > 0 {
			o.goalThreshold = px
		}
	}
}

// WithMinSize overrides MinActorSize.
func WithMinSize(size coord.Vec2i) Option {
	return func(o *options) { o.minSize = size }
}

// WithCapacity sets how many nodes to preallocate.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithProfiler attaches instrumentation hooks.
func WithProfiler(p Profiler) Option {
	return func(o *options) { o.profiler = p }
}

func defaultOptions() options {
	return options{
		logger:        slog.Default(),
		goalThreshold: DefaultGoalThreshold,
		minSize:       MinActorSize,
		capacity:      DefaultCapacity,
	}
}
