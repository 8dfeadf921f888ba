// Package search answers passability queries over a world, builds per-chunk
// reachability regions and finds paths between points.
package search

import "github.com/udisondev/tilenav/internal/collision"

// Continue is a predicate's verdict on a collider in the way.
type Continue uint8

const (
	// Pass lets the mover through the collider.
	Pass Continue = iota
	// Blocked stops the mover.
	Blocked
)

func (c Continue) String() string {
	if c == Pass {
		return "pass"
	}
	return "blocked"
}

// Pred decides whether a non-passable collider actually blocks the mover.
type Pred interface {
	Decide(collision.Data) Continue
}

// PredFunc adapts a function to Pred.
type PredFunc func(collision.Data) Continue

// Decide calls f(d).
func (f PredFunc) Decide(d collision.Data) Continue { return f(d) }

var (
	neverContinue  = PredFunc(func(collision.Data) Continue { return Blocked })
	alwaysContinue = PredFunc(func(collision.Data) Continue { return Pass })
)

// NeverContinue blocks on every collider that is not in pass mode.
func NeverContinue() Pred { return neverContinue }

// AlwaysContinue ignores every collider.
func AlwaysContinue() Pred { return alwaysContinue }

func orDefault(p Pred) Pred {
	if p == nil {
		return neverContinue
	}
	return p
}
