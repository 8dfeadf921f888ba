package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/tilenav/internal/config"
	"github.com/udisondev/tilenav/internal/coord"
	"github.com/udisondev/tilenav/internal/demo"
	"github.com/udisondev/tilenav/internal/search"
	"github.com/udisondev/tilenav/internal/world"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load config FIRST to determine log level
	cfgPath := config.Path()
	cfg, err := config.LoadEngine(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))
	slog.Info("tilenav starting", "config", cfgPath, "log_level", cfg.LogLevel)

	w := world.New(
		world.WithAbsentChunksBlock(cfg.World.AbsentChunksBlock),
		world.WithDefaultSize(coord.Vec2i{X: cfg.World.DefaultActorWidth, Y: cfg.World.DefaultActorHeight}),
	)

	gen := demo.NewGenerator(cfg.Bench)
	st, err := gen.Populate(w)
	if err != nil {
		return fmt.Errorf("generating world: %w", err)
	}
	slog.Info("world generated",
		"chunks", st.Chunks,
		"colliders", st.Colliders,
		"seed", cfg.Bench.Seed)
	for mode, n := range st.ByMode {
		slog.Debug("colliders by mode", "mode", mode, "count", n)
	}

	started := time.Now()
	rebuilt, err := search.RebuildRegions(ctx, w, cfg.Bench.Workers)
	if err != nil {
		return fmt.Errorf("building pass regions: %w", err)
	}
	logRegions(w, rebuilt, time.Since(started))

	return runQueries(ctx, cfg, w, gen.Queries())
}

// logRegions reports how much of the generated world is reachable from
// chunk borders.
func logRegions(w *world.World, rebuilt int, elapsed time.Duration) {
	var cells, full, sealed int
	for _, ch := range w.Chunks() {
		r := search.PassRegionOf(w, ch)
		cells += r.Count()
		switch {
		case r.Full():
			full++
		case r.Count() == 0:
			sealed++
		}
	}
	total := w.ChunkCount() * coord.DivCells
	slog.Info("pass regions built",
		"rebuilt", rebuilt,
		"full", full,
		"sealed", sealed,
		"reachable", fmt.Sprintf("%.1f%%", 100*float64(cells)/float64(max(total, 1))),
		"elapsed", elapsed)
}

// runQueries spreads queries over bench workers, each with its own
// pathfinder, and logs a summary.
func runQueries(ctx context.Context, cfg config.Engine, w *world.World, queries []demo.Query) error {
	metrics := &search.Metrics{}
	opts := []search.Option{
		search.WithVerbosity(cfg.Search.Verbosity),
		search.WithGoalThreshold(cfg.Search.GoalThreshold),
		search.WithCapacity(cfg.Search.InitialCapacity),
		search.WithProfiler(metrics.Profiler()),
	}
	size := w.DefaultSize()

	var waypoints, smoothed atomic.Int64
	workers := max(1, min(cfg.Bench.Workers, len(queries)))
	started := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	for k := range workers {
		g.Go(func() error {
			astar := search.New(opts...)
			for i := k; i < len(queries); i += workers {
				if err := ctx.Err(); err != nil {
					return fmt.Errorf("query %d: %w", i, err)
				}
				q := queries[i]
				res := astar.Dijkstra(w, q.From, q.To, 0, cfg.Search.MaxDistance, size, nil)
				if !res.Found() {
					continue
				}
				waypoints.Add(int64(res.Len()))
				smoothed.Add(int64(len(search.Smooth(w, res.Path(), size, 0, nil))))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	s := metrics.Snapshot()
	slog.Info("queries done",
		"queries", len(queries),
		"workers", workers,
		"found", s.Found,
		"nodes_expanded", s.NodesExpanded,
		"cache_hits", s.CacheHits,
		"cache_misses", s.CacheMisses,
		"waypoints", waypoints.Load(),
		"smoothed_waypoints", smoothed.Load(),
		"search_time", s.SearchTime,
		"elapsed", time.Since(started))
	return nil
}
