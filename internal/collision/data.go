// Package collision holds per-chunk collider boxes and the spatial index
// over them.
package collision

import "fmt"

// ObjectID identifies the object owning a collider. Zero means "no object".
type ObjectID uint64

// PassMode describes how a collider interacts with movement.
type PassMode uint8

const (
	Blocked PassMode = iota
	Pass
	ShootThrough
	SeeThrough
)

func (m PassMode) String() string {
	switch m {
	case Blocked:
		return "blocked"
	case Pass:
		return "pass"
	case ShootThrough:
		return "shoot-through"
	case SeeThrough:
		return "see-through"
	default:
		return fmt.Sprintf("PassMode(%d)", uint8(m))
	}
}

// ParsePassMode parses the textual form produced by String.
func ParsePassMode(s string) (PassMode, error) {
	switch s {
	case "blocked":
		return Blocked, nil
	case "pass":
		return Pass, nil
	case "shoot-through":
		return ShootThrough, nil
	case "see-through":
		return SeeThrough, nil
	}
	return 0, fmt.Errorf("unknown pass mode %q", s)
}

// Kind tags what sort of thing registered a collider.
type Kind uint8

const (
	KindNone Kind = iota
	KindObject
	KindScenery
	KindGeometry
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindObject:
		return "object"
	case KindScenery:
		return "scenery"
	case KindGeometry:
		return "geometry"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Data is the payload handed to pass/block predicates.
type Data struct {
	Kind Kind
	Pass PassMode
	ID   ObjectID
}
