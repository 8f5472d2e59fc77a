package search

import (
	"time"

	"github.com/kitrofimov/chessica/board"
)

// Limits bounds a single search call. Exactly one of Depth, MoveTime, or the
// UCI clock fields (WTime/BTime/...) is expected to be set by a caller; zero
// values are simply ignored when computing a budget, so an all-zero Limits
// means "search until Stop is called" (UCI's "go infinite").
type Limits struct {
	Depth int // fixed depth; 0 means unbounded.

	MoveTime time.Duration // fixed wall-clock budget for this move.

	// UCI-style clock time controls, from which a per-move budget is
	// derived if MoveTime is zero.
	WTime, BTime time.Duration
	WInc, BInc   time.Duration
	MovesToGo    int
}

// budget computes the wall-clock allotment for one move, given which side is
// to move. A zero duration means no deadline should be set.
func (l Limits) budget(us board.Color) time.Duration {
	if l.MoveTime > 0 {
		return l.MoveTime
	}

	var time_, inc time.Duration
	if us == board.White {
		time_, inc = l.WTime, l.WInc
	} else {
		time_, inc = l.BTime, l.BInc
	}
	if time_ <= 0 {
		return 0
	}

	movesToGo := l.MovesToGo
	if movesToGo <= 0 {
		movesToGo = 30 // assume a typical number of moves left if GUI omits it.
	}

	budget := time_/time.Duration(movesToGo) + inc
	// Never plan to use more than half the clock on one move.
	if max := time_ / 2; budget > max {
		budget = max
	}
	return budget
}
