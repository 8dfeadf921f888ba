package collision

import (
	"iter"
	"slices"

	"github.com/tidwall/rtree"

	"github.com/udisondev/tilenav/internal/coord"
)

// Slot is a stable position in an Index. It stays valid until the entry is
// removed; it is never reused while the entry is alive.
type Slot uint32

// Entry is one collider box in chunk-local pixel space.
type Entry struct {
	Box  coord.BBox
	Data Data
}

type slotEntry struct {
	Entry
	live bool
}

// Index is a chunk's collider collection. Entries are stored by value in a
// dense array; the R-tree and owner lists refer to them by Slot.
//
// Mutation is not synchronized. Queries never modify the index, so any number
// of readers may query it concurrently while nobody mutates it.
type Index struct {
	entries []slotEntry
	free    []Slot
	owners  map[ObjectID][]Slot
	tree    rtree.RTreeG[Slot]
	live    int
	version uint64
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{owners: make(map[ObjectID][]Slot)}
}

// Len returns the number of live entries.
func (x *Index) Len() int { return x.live }

// Version is incremented on every mutation.
func (x *Index) Version() uint64 { return x.version }

// Insert adds a collider and returns its slot.
func (x *Index) Insert(box coord.BBox, mode PassMode, kind Kind, id ObjectID) Slot {
	e := slotEntry{
		Entry: Entry{Box: box, Data: Data{Kind: kind, Pass: mode, ID: id}},
		live:  true,
	}

	var s Slot
	if n := len(x.free); n > 0 {
		s = x.free[n-1]
		x.free = x.free[:n-1]
		x.entries[s] = e
	} else {
		s = Slot(len(x.entries))
		x.entries = append(x.entries, e)
	}

	lo, hi := rect(box)
	x.tree.Insert(lo, hi, s)
	x.owners[id] = append(x.owners[id], s)
	x.live++
	x.version++
	return s
}

// Remove deletes every entry owned by id and returns how many were removed.
func (x *Index) Remove(id ObjectID) int {
	slots, ok := x.owners[id]
	if !ok {
		return 0
	}
	delete(x.owners, id)

	for _, s := range slots {
		lo, hi := rect(x.entries[s].Box)
		x.tree.Delete(lo, hi, s)
		x.entries[s] = slotEntry{}
		x.free = append(x.free, s)
		x.live--
	}
	x.version++
	return len(slots)
}

// Resize replaces the box of a live entry. It returns false for a dead slot.
func (x *Index) Resize(s Slot, box coord.BBox) bool {
	if int(s) >= len(x.entries) || !x.entries[s].live {
		return false
	}
	lo, hi := rect(x.entries[s].Box)
	x.tree.Delete(lo, hi, s)
	x.entries[s].Box = box
	lo, hi = rect(box)
	x.tree.Insert(lo, hi, s)
	x.version++
	return true
}

// Entry returns the entry at slot s.
func (x *Index) Entry(s Slot) (Entry, bool) {
	if int(s) >= len(x.entries) || !x.entries[s].live {
		return Entry{}, false
	}
	return x.entries[s].Entry, true
}

// Slots returns the live slots owned by id.
func (x *Index) Slots(id ObjectID) []Slot {
	return slices.Clone(x.owners[id])
}

// Clear drops all entries but keeps the slot storage.
func (x *Index) Clear() {
	x.entries = x.entries[:0]
	x.free = x.free[:0]
	clear(x.owners)
	x.tree = rtree.RTreeG[Slot]{}
	x.live = 0
	x.version++
}

// Query yields every entry whose box overlaps [min, max). Boxes touching the
// query rectangle only along an edge are not reported. Order is unspecified.
func (x *Index) Query(min, max coord.Vec2) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range x.QuerySlots(min, max) {
			if !yield(e) {
				return
			}
		}
	}
}

// QuerySlots is Query with the slot of each entry.
func (x *Index) QuerySlots(min, max coord.Vec2) iter.Seq2[Slot, Entry] {
	return func(yield func(Slot, Entry) bool) {
		if x.live == 0 {
			return
		}
		// The tree reports boxes that merely touch; the strict test drops them.
		lo, hi := rect(coord.BBox{Min: min, Max: max})
		x.tree.Search(lo, hi, func(_, _ [2]float64, s Slot) bool {
			e := &x.entries[s]
			if !coord.Intersects(min, max, e.Box.Min, e.Box.Max) {
				return true
			}
			return yield(s, e.Entry)
		})
	}
}

// All yields every live entry.
func (x *Index) All() iter.Seq2[Slot, Entry] {
	return func(yield func(Slot, Entry) bool) {
		for i := range x.entries {
			if x.entries[i].live && !yield(Slot(i), x.entries[i].Entry) {
				return
			}
		}
	}
}

func rect(b coord.BBox) (lo, hi [2]float64) {
	return [2]float64{float64(b.Min.X), float64(b.Min.Y)},
		[2]float64{float64(b.Max.X), float64(b.Max.Y)}
}
