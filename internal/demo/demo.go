// Package demo populates worlds with random walls and path queries for the
// tilenav CLI and benchmarks.
package demo

import (
	"fmt"
	"math/rand/v2"

	"github.com/udisondev/tilenav/internal/collision"
	"github.com/udisondev/tilenav/internal/config"
	"github.com/udisondev/tilenav/internal/coord"
	"github.com/udisondev/tilenav/internal/world"
)

// Wall sizes are drawn in sub-cell steps from this range, in pixels.
const (
	minWall = coord.DivSize
	maxWall = 12 * coord.DivSize
)

// Stats summarises a generated world.
type Stats struct {
	Chunks    int
	Colliders int
	ByMode    map[collision.PassMode]int
}

// Query is one path request.
type Query struct {
	From, To coord.Point
}

// Generator produces the same world and queries for the same seed.
type Generator struct {
	cfg config.Bench
	rng *rand.Rand
	ids *world.IDGenerator
}

// NewGenerator creates a generator for the given bench settings.
func NewGenerator(cfg config.Bench) *Generator {
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewPCG(uint64(cfg.Seed), 0x7469_6c65)),
		ids: world.NewIDGenerator(),
	}
}

// Populate loads ChunksPerAxis x ChunksPerAxis chunks on level 0 and places
// about WallDensity colliders in each.
func (g *Generator) Populate(w *world.World) (Stats, error) {
	st := Stats{ByMode: make(map[collision.PassMode]int)}
	n := g.cfg.ChunksPerAxis
	whole := int(g.cfg.WallDensity)
	frac := g.cfg.WallDensity - float64(whole)

	for cy := range n {
		for cx := range n {
			cc := coord.ChunkCoord3{X: int16(cx), Y: int16(cy)}
			w.Ensure(cc)
			st.Chunks++

			walls := whole
			if g.rng.Float64() < frac {
				walls++
			}
			for range walls {
				c := g.collider(cc)
				if err := w.Place(c); err != nil {
					return st, fmt.Errorf("populating chunk %s: %w", cc, err)
				}
				st.Colliders++
				st.ByMode[c.Pass]++
			}
		}
	}
	return st, nil
}

func (g *Generator) collider(cc coord.ChunkCoord3) world.Collider {
	kind := collision.KindGeometry
	mode := collision.Blocked
	switch r := g.rng.IntN(10); {
	case r == 0:
		kind, mode = collision.KindScenery, collision.Pass
	case r == 1:
		kind, mode = collision.KindScenery, collision.ShootThrough
	case r == 2:
		kind, mode = collision.KindObject, collision.SeeThrough
	}

	return world.Collider{
		ID:   g.ids.Next(kind),
		Kind: kind,
		Pos:  g.point(cc),
		BBoxSize: coord.Vec2i{
			X: int32(minWall + coord.DivSize*g.rng.IntN((maxWall-minWall)/coord.DivSize+1)),
			Y: int32(minWall + coord.DivSize*g.rng.IntN((maxWall-minWall)/coord.DivSize+1)),
		},
		Pass: mode,
	}
}

func (g *Generator) point(cc coord.ChunkCoord3) coord.Point {
	return coord.Point{
		CX: cc.X,
		CY: cc.Y,
		CZ: cc.Z,
		Tile: coord.Local{
			X: uint8(g.rng.IntN(coord.TileMaxDim)),
			Y: uint8(g.rng.IntN(coord.TileMaxDim)),
		},
	}
}

// Queries returns Queries random requests between points of the populated
// area.
func (g *Generator) Queries() []Query {
	n := g.cfg.ChunksPerAxis
	out := make([]Query, g.cfg.Queries)
	for i := range out {
		from := coord.ChunkCoord3{X: int16(g.rng.IntN(n)), Y: int16(g.rng.IntN(n))}
		to := coord.ChunkCoord3{X: int16(g.rng.IntN(n)), Y: int16(g.rng.IntN(n))}
		out[i] = Query{From: g.point(from), To: g.point(to)}
	}
	return out
}
