package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tilenav.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultEngineIsValid(t *testing.T) {
	require.NoError(t, DefaultEngine().Validate())
}

func TestLoadEngineMissingFile(t *testing.T) {
	cfg, err := LoadEngine(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultEngine(), cfg)
}

func TestLoadEngineOverrides(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
world:
  absent_chunks_block: true
search:
  max_distance: 2048
  verbosity: 2
bench:
  workers: 8
`)
	cfg, err := LoadEngine(path)
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.True(t, cfg.World.AbsentChunksBlock)
	assert.Equal(t, uint32(2048), cfg.Search.MaxDistance)
	assert.Equal(t, 2, cfg.Search.Verbosity)
	assert.Equal(t, 8, cfg.Bench.Workers)

	// Untouched keys keep their defaults.
	def := DefaultEngine()
	assert.Equal(t, def.Search.GoalThreshold, cfg.Search.GoalThreshold)
	assert.Equal(t, def.World.DefaultActorWidth, cfg.World.DefaultActorWidth)
	assert.Equal(t, def.Bench.Queries, cfg.Bench.Queries)
}

func TestLoadEngineErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad yaml", "world: [", "parsing config"},
		{"bad level", "log_level: loud", "log_level"},
		{"bad verbosity", "search:\n  verbosity: 7", "search.verbosity"},
		{"bad actor", "world:\n  default_actor_width: 0", "default actor size"},
		{"bad workers", "bench:\n  workers: 0", "bench.workers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadEngine(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := DefaultEngine()
	cfg.Bench.Workers = 0
	cfg.Bench.ChunksPerAxis = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bench.workers")
	assert.Contains(t, err.Error(), "bench.chunks_per_axis")
}

func TestSlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"bogus": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, Engine{LogLevel: in}.SlogLevel(), "level %q", in)
	}
}

func TestPath(t *testing.T) {
	t.Setenv(PathEnv, "")
	assert.Equal(t, DefaultPath, Path())

	t.Setenv(PathEnv, "/etc/tilenav.yaml")
	assert.Equal(t, "/etc/tilenav.yaml", Path())
}
