package search

// LineIterator walks the integer points of a 2D Bresenham line, both ends
// included.
type LineIterator struct {
	x, y    int32
	tx, ty  int32
	dx, dy  int32
	sx, sy  int32
	err     int32
	xMajor  bool
	started bool
}

// NewLineIterator creates an iterator from (x0, y0) to (x1, y1).
func NewLineIterator(x0, y0, x1, y1 int32) *LineIterator {
	it := &LineIterator{x: x0, y: y0, tx: x1, ty: y1}
	it.dx = abs32(x1 - x0)
	it.dy = abs32(y1 - y0)
	it.sx, it.sy = 1, 1
	if x1 < x0 {
		it.sx = -1
	}
	if y1 < y0 {
		it.sy = -1
	}
	it.xMajor = it.dx >= it.dy
	if it.xMajor {
		it.err = it.dx / 2
	} else {
		it.err = it.dy / 2
	}
	return it
}

// Next advances to the next point. The first call yields the start point;
// it returns false once the end point has been yielded.
func (it *LineIterator) Next() bool {
	if !it.started {
		it.started = true
		return true
	}
	if it.x == it.tx && it.y == it.ty {
		return false
	}

	if it.xMajor {
		it.x += it.sx
		it.err += it.dy
		if it.err >= it.dx {
			it.y += it.sy
			it.err -= it.dx
		}
	} else {
		it.y += it.sy
		it.err += it.dx
		if it.err >= it.dy {
			it.x += it.sx
			it.err -= it.dy
		}
	}
	return true
}

// Steps returns how many points the line has after the start point.
func (it *LineIterator) Steps() int32 { return max(it.dx, it.dy) }

// X returns the current x.
func (it *LineIterator) X() int32 { return it.x }

// Y returns the current y.
func (it *LineIterator) Y() int32 { return it.y }

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
