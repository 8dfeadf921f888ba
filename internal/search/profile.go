package search

import (
	"sync/atomic"
	"time"
)

// Profiler receives instrumentation events from the pathfinder.
type Profiler interface {
	RecordCacheHit()
	RecordCacheMiss()
	RecordNodeExpanded()
	RecordNeighborGeneration(count int)
	RecordSearch(elapsed time.Duration, found bool)
}

// Metrics accumulates profiling counters. It is safe to share one Metrics
// between pathfinders running on different goroutines.
type Metrics struct {
	cacheHits           atomic.Int64
	cacheMisses         atomic.Int64
	nodesExpanded       atomic.Int64
	neighborGenerations atomic.Int64
	neighborCount       atomic.Int64
	searches            atomic.Int64
	found               atomic.Int64
	searchTime          atomic.Int64
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	CacheHits           int64
	CacheMisses         int64
	NodesExpanded       int64
	NeighborGenerations int64
	NeighborCount       int64
	Searches            int64
	Found               int64
	SearchTime          time.Duration
}

// Profiler returns a Profiler backed by m.
func (m *Metrics) Profiler() Profiler {
	if m == nil {
		return nil
	}
	return (*metricsProfiler)(m)
}

// Reset zeroes all counters.
func (m *Metrics) Reset() {
	if m == nil {
		return
	}
	m.cacheHits.Store(0)
	m.cacheMisses.Store(0)
	m.nodesExpanded.Store(0)
	m.neighborGenerations.Store(0)
	m.neighborCount.Store(0)
	m.searches.Store(0)
	m.found.Store(0)
	m.searchTime.Store(0)
}

// Snapshot captures the current counter values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	return MetricsSnapshot{
		CacheHits:           m.cacheHits.Load(),
		CacheMisses:         m.cacheMisses.Load(),
		NodesExpanded:       m.nodesExpanded.Load(),
		NeighborGenerations: m.neighborGenerations.Load(),
		NeighborCount:       m.neighborCount.Load(),
		Searches:            m.searches.Load(),
		Found:               m.found.Load(),
		SearchTime:          time.Duration(m.searchTime.Load()),
	}
}

type metricsProfiler Metrics

func (m *metricsProfiler) RecordCacheHit() {
	(*Metrics)(m).cacheHits.Add(1)
}

func (m *metricsProfiler) RecordCacheMiss() {
	(*Metrics)(m).cacheMisses.Add(1)
}

func (m *metricsProfiler) RecordNodeExpanded() {
	(*Metrics)(m).nodesExpanded.Add(1)
}

func (m *metricsProfiler) RecordNeighborGeneration(count int) {
	metrics := (*Metrics)(m)
	metrics.neighborGenerations.Add(1)
	metrics.neighborCount.Add(int64(count))
}

func (m *metricsProfiler) RecordSearch(elapsed time.Duration, found bool) {
	metrics := (*Metrics)(m)
	metrics.searches.Add(1)
	if found {
		metrics.found.Add(1)
	}
	metrics.searchTime.Add(elapsed.Nanoseconds())
}
