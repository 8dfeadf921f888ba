package world

import (
	"errors"
	"fmt"

	"github.com/udisondev/tilenav/internal/collision"
	"github.com/udisondev/tilenav/internal/coord"
)

var (
	// ErrInvalidObjectID is returned for the reserved id 0.
	ErrInvalidObjectID = errors.New("invalid object id")
	// ErrEmptyBBox is returned for a bounding box with zero or negative area.
	ErrEmptyBBox = errors.New("empty bounding box")
	// ErrBBoxTooLarge is returned for a box reaching further than
	// MaxOverhang past its chunk.
	ErrBBoxTooLarge = errors.New("bounding box reaches past neighbour chunks")
)

// Collider is the collision facet of a world object: where it stands and
// what box it occupies.
type Collider struct {
	ID         collision.ObjectID
	Kind       collision.Kind
	Pos        coord.Point
	BBoxOffset coord.Vec2i
	BBoxSize   coord.Vec2i
	Pass       collision.PassMode
}

// Box returns the collider box in the local space of Pos's chunk.
func (c Collider) Box() coord.BBox {
	return coord.BoxAround(c.Pos.Center().Add(c.BBoxOffset), c.BBoxSize)
}

// Ref locates a collider entry: the chunk holding it and its slot.
type Ref struct {
	Chunk coord.ChunkCoord3
	Slot  collision.Slot
}

type placement struct {
	collider Collider
	ref      Ref
}

// Place registers c, or updates it if an object with the same id is already
// placed. A zero BBoxSize is replaced by the world default size.
func (w *World) Place(c Collider) error {
	if c.ID == 0 {
		return fmt.Errorf("placing collider: %w", ErrInvalidObjectID)
	}
	if c.BBoxSize == (coord.Vec2i{}) {
		c.BBoxSize = w.defaultSize
	}
	if c.BBoxSize.X <= 0 || c.BBoxSize.Y <= 0 {
		return fmt.Errorf("placing collider %d with size %dx%d: %w",
			c.ID, c.BBoxSize.X, c.BBoxSize.Y, ErrEmptyBBox)
	}

	box := c.Box()
	if !withinReach(box) {
		return fmt.Errorf("placing collider %d with size %dx%d offset %d,%d: %w",
			c.ID, c.BBoxSize.X, c.BBoxSize.Y, c.BBoxOffset.X, c.BBoxOffset.Y, ErrBBoxTooLarge)
	}
	target := c.Pos.Chunk3()

	if old, ok := w.objects[c.ID]; ok {
		sameEntry := old.ref.Chunk == target &&
			old.collider.Pass == c.Pass && old.collider.Kind == c.Kind
		if sameEntry {
			w.chunks[target].Resize(old.ref.Slot, box)
			w.objects[c.ID] = placement{collider: c, ref: old.ref}
			return nil
		}
		w.chunks[old.ref.Chunk].RemoveOwner(c.ID)
	}

	slot, err := w.Ensure(target).Insert(box, c.Pass, c.Kind, c.ID)
	if err != nil {
		return err
	}
	w.objects[c.ID] = placement{collider: c, ref: Ref{Chunk: target, Slot: slot}}
	return nil
}

// Remove unregisters the object with the given id. It reports whether the
// object was placed.
func (w *World) Remove(id collision.ObjectID) bool {
	p, ok := w.objects[id]
	if !ok {
		return false
	}
	delete(w.objects, id)
	if ch := w.chunks[p.ref.Chunk]; ch != nil {
		ch.RemoveOwner(id)
	}
	return true
}

// Lookup returns where the object's collider entry lives.
func (w *World) Lookup(id collision.ObjectID) (Ref, bool) {
	p, ok := w.objects[id]
	return p.ref, ok
}

// Collider returns the collider last placed under id.
func (w *World) Collider(id collision.ObjectID) (Collider, bool) {
	p, ok := w.objects[id]
	return p.collider, ok
}

// ObjectCount returns the number of placed objects.
func (w *World) ObjectCount() int { return len(w.objects) }
