package testutil

import (
	"testing"

	"github.com/udisondev/tilenav/internal/collision"
	"github.com/udisondev/tilenav/internal/coord"
	"github.com/udisondev/tilenav/internal/world"
)

var ids = world.NewIDGenerator()

// NewWorld creates a world with the chunks at coords already loaded.
func NewWorld(t testing.TB, coords []coord.ChunkCoord3, opts ...world.Option) *world.World {
	t.Helper()
	w := world.New(opts...)
	for _, c := range coords {
		w.Ensure(c)
	}
	return w
}

// AddWall inserts a blocking geometry box into chunk c and returns its owner id.
func AddWall(t testing.TB, w *world.World, c coord.ChunkCoord3, box coord.BBox) collision.ObjectID {
	t.Helper()
	return AddCollider(t, w, c, box, collision.Blocked)
}

// AddCollider inserts a geometry box with the given pass mode into chunk c.
func AddCollider(t testing.TB, w *world.World, c coord.ChunkCoord3, box coord.BBox, mode collision.PassMode) collision.ObjectID {
	t.Helper()
	if box.Empty() {
		t.Fatalf("collider box %v is empty", box)
	}
	id := ids.Next(collision.KindGeometry)
	if _, err := w.Ensure(c).Insert(box, mode, collision.KindGeometry, id); err != nil {
		t.Fatalf("adding collider: %v", err)
	}
	return id
}

// Box builds a box from its corners.
func Box(x0, y0, x1, y1 float32) coord.BBox {
	return coord.BBox{Min: coord.Vec2{X: x0, Y: y0}, Max: coord.Vec2{X: x1, Y: y1}}
}

// Pt builds a point from chunk, tile and offset components on level 0.
func Pt(cx, cy int16, tx, ty uint8, ox, oy int8) coord.Point {
	return coord.Point{
		CX:     cx,
		CY:     cy,
		Tile:   coord.Local{X: tx, Y: ty},
		Offset: coord.Offset{X: ox, Y: oy},
	}
}
