package coord

import "math"

// Vec2i is an integer pixel vector.
type Vec2i struct {
	X, Y int32
}

// Add returns v+o.
func (v Vec2i) Add(o Vec2i) Vec2i { return Vec2i{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec2i) Sub(o Vec2i) Vec2i { return Vec2i{v.X - o.X, v.Y - o.Y} }

// Mul scales both components by k.
func (v Vec2i) Mul(k int32) Vec2i { return Vec2i{v.X * k, v.Y * k} }

// Vec2 converts to float coordinates.
func (v Vec2i) Vec2() Vec2 { return Vec2{float32(v.X), float32(v.Y)} }

// Length returns the Euclidean length.
func (v Vec2i) Length() float64 {
	return math.Hypot(float64(v.X), float64(v.Y))
}

// Vec2 is a float pixel vector in chunk-local space.
type Vec2 struct {
	X, Y float32
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// BBox is an axis-aligned box in chunk-local pixel space.
// Min is inclusive, Max is exclusive.
type BBox struct {
	Min, Max Vec2
}

// BoxAround returns the box of the given size centred on center.
// Odd sizes put the extra pixel on the max side.
func BoxAround(center, size Vec2i) BBox {
	lo := Vec2i{center.X - size.X/2, center.Y - size.Y/2}
	return BBox{Min: lo.Vec2(), Max: lo.Add(size).Vec2()}
}

// Union returns the smallest box covering both b and o.
func (b BBox) Union(o BBox) BBox {
	return BBox{
		Min: Vec2{min(b.Min.X, o.Min.X), min(b.Min.Y, o.Min.Y)},
		Max: Vec2{max(b.Max.X, o.Max.X), max(b.Max.Y, o.Max.Y)},
	}
}

// Translate moves the box by d.
func (b BBox) Translate(d Vec2) BBox {
	return BBox{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}

// Empty reports whether the box has zero or negative area.
func (b BBox) Empty() bool {
	return b.Max.X <= b.Min.X || b.Max.Y <= b.Min.Y
}

// Intersects reports whether the two boxes overlap with positive area.
// Boxes that only share an edge do not intersect, so an actor can stand
// flush against a wall.
func Intersects(aMin, aMax, bMin, bMax Vec2) bool {
	return aMin.X < bMax.X && aMax.X > bMin.X &&
		aMin.Y < bMax.Y && aMax.Y > bMin.Y
}

// Intersects reports whether b and o overlap.
func (b BBox) Intersects(o BBox) bool {
	return Intersects(b.Min, b.Max, o.Min, o.Max)
}
