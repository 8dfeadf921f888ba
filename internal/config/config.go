package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the engine looks for its config when TILENAV_CONFIG
// is not set.
const DefaultPath = "config/tilenav.yaml"

// PathEnv overrides DefaultPath.
const PathEnv = "TILENAV_CONFIG"

// Engine holds all configuration for the tilenav engine and its CLI.
type Engine struct {
	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	World  World  `yaml:"world"`
	Search Search `yaml:"search"`
	Bench  Bench  `yaml:"bench"`
}

// World configures chunk storage.
type World struct {
	// Treat chunks that are not loaded as solid.
	AbsentChunksBlock bool `yaml:"absent_chunks_block"`
	// Actor box used when a query passes a zero size, in pixels.
	DefaultActorWidth  int32 `yaml:"default_actor_width"`
	DefaultActorHeight int32 `yaml:"default_actor_height"`
}

// Search configures the pathfinder.
type Search struct {
	MaxDistance     uint32 `yaml:"max_distance"`   // px
	GoalThreshold   uint32 `yaml:"goal_threshold"` // px, Manhattan
	Verbosity       int    `yaml:"verbosity"`      // 0..3
	InitialCapacity int    `yaml:"initial_capacity"`
}

// Bench configures the synthetic workload run by cmd/tilenav.
type Bench struct {
	Workers       int     `yaml:"workers"`
	Queries       int     `yaml:"queries"`
	Seed          int64   `yaml:"seed"`
	ChunksPerAxis int     `yaml:"chunks_per_axis"`
	WallDensity   float64 `yaml:"wall_density"` // walls per chunk
}

// DefaultEngine returns Engine config with sensible defaults.
func DefaultEngine() Engine {
	return Engine{
		LogLevel: "info",
		World: World{
			DefaultActorWidth:  32,
			DefaultActorHeight: 32,
		},
		Search: Search{
			MaxDistance:     4096,
			GoalThreshold:   24,
			InitialCapacity: 65536,
		},
		Bench: Bench{
			Workers:       4,
			Queries:       256,
			Seed:          1,
			ChunksPerAxis: 4,
			WallDensity:   6,
		},
	}
}

// LoadEngine loads engine config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadEngine(path string) (Engine, error) {
	cfg := DefaultEngine()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// Path returns the config path from the environment, or DefaultPath.
func Path() string {
	if p := os.Getenv(PathEnv); p != "" {
		return p
	}
	return DefaultPath
}

// Validate reports every invalid setting at once.
func (e Engine) Validate() error {
	var errs []error
	if _, ok := parseLevel(e.LogLevel); !ok {
		errs = append(errs, fmt.Errorf("log_level: unknown level %q", e.LogLevel))
	}
	if e.World.DefaultActorWidth <= 0 || e.World.DefaultActorHeight <= 0 {
		errs = append(errs, fmt.Errorf("world: default actor size %dx%d must be positive",
			e.World.DefaultActorWidth, e.World.DefaultActorHeight))
	}
	if e.Search.Verbosity < 0 || e.Search.Verbosity > 3 {
		errs = append(errs, fmt.Errorf("search.verbosity: %d not in 0..3", e.Search.Verbosity))
	}
	if e.Search.InitialCapacity < 0 {
		errs = append(errs, fmt.Errorf("search.initial_capacity: %d is negative", e.Search.InitialCapacity))
	}
	if e.Bench.Workers < 1 {
		errs = append(errs, fmt.Errorf("bench.workers: %d must be at least 1", e.Bench.Workers))
	}
	if e.Bench.Queries < 0 {
		errs = append(errs, fmt.Errorf("bench.queries: %d is negative", e.Bench.Queries))
	}
	if e.Bench.ChunksPerAxis < 1 || e.Bench.ChunksPerAxis > 256 {
		errs = append(errs, fmt.Errorf("bench.chunks_per_axis: %d not in 1..256", e.Bench.ChunksPerAxis))
	}
	if e.Bench.WallDensity < 0 {
		errs = append(errs, fmt.Errorf("bench.wall_density: %g is negative", e.Bench.WallDensity))
	}
	return errors.Join(errs...)
}

// SlogLevel converts LogLevel to slog.Level.
// Defaults to Info if invalid or empty.
func (e Engine) SlogLevel() slog.Level {
	l, _ := parseLevel(e.LogLevel)
	return l
}

func parseLevel(level string) (slog.Level, bool) {
	switch level {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
