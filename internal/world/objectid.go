package world

import (
	"sync/atomic"

	"github.com/udisondev/tilenav/internal/collision"
)

// ID ranges by collider kind:
//
//	0x0000_0000 - 0x0FFF_FFFF: reserved (0 = no object)
//	0x1000_0000 - 0x1FFF_FFFF: objects
//	0x2000_0000 - 0x2FFF_FFFF: scenery
//	0x3000_0000 - 0x3FFF_FFFF: geometry
const (
	objectIDBase   = 0x1000_0000
	sceneryIDBase  = 0x2000_0000
	geometryIDBase = 0x3000_0000
)

// IDGenerator hands out unique object ids. Safe for concurrent use.
type IDGenerator struct {
	nextObject   atomic.Uint64
	nextScenery  atomic.Uint64
	nextGeometry atomic.Uint64
}

// NewIDGenerator creates a generator starting at the base of each range.
func NewIDGenerator() *IDGenerator {
	g := &IDGenerator{}
	g.nextObject.Store(objectIDBase)
	g.nextScenery.Store(sceneryIDBase)
	g.nextGeometry.Store(geometryIDBase)
	return g
}

// Next returns a fresh id in the range for kind.
func (g *IDGenerator) Next(kind collision.Kind) collision.ObjectID {
	switch kind {
	case collision.KindScenery:
		return collision.ObjectID(g.nextScenery.Add(1))
	case collision.KindGeometry:
		return collision.ObjectID(g.nextGeometry.Add(1))
	default:
		return collision.ObjectID(g.nextObject.Add(1))
	}
}

// KindOf returns the kind whose range contains id.
func KindOf(id collision.ObjectID) collision.Kind {
	switch id >> 28 {
	case objectIDBase >> 28:
		return collision.KindObject
	case sceneryIDBase >> 28:
		return collision.KindScenery
	case geometryIDBase >> 28:
		return collision.KindGeometry
	default:
		return collision.KindNone
	}
}
