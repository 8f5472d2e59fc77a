// Package search implements alpha-beta negamax with iterative deepening,
// following spec.md's pseudocode directly: each iteration is a full
// negamax pass over increasing depth, the root remembers the best move of
// the deepest iteration that ran to completion, and a time- or stop-driven
// abort unwinds back to that point rather than returning a half-searched
// score. The shape — recursive negamax over a mutable Position visited with
// make/unmake, no transposition table, no quiescence — mirrors the
// teacher's own move generator design: an array-indexed, allocation-light
// hot loop rather than an object graph.
package search

import (
	"errors"
	"time"

	"github.com/kitrofimov/chessica/board"
	"github.com/kitrofimov/chessica/eval"
	"github.com/kitrofimov/chessica/game"
)

// errTimeBudgetExhausted unwinds the negamax recursion when Control reports
// expired. It never escapes the package: Search consumes it at the root.
var errTimeBudgetExhausted = errors.New("search: time budget exhausted")

// Result is the outcome of a Search call.
type Result struct {
	BestMove board.Move
	Score    eval.Score
	Depth    int   // deepest iteration that completed.
	Nodes    int64 // nodes visited across all iterations.
}

// Search runs iterative deepening negamax on g.Pos until Limits or ctrl
// stops it, and returns the best move found so far. g.Pos is restored to its
// original state before Search returns: every make is paired with an
// unmake, including on an aborted iteration.
//
// If onDepth is non-nil, it is called once after each depth that runs to
// completion, with the Result as it stood at that depth — the hook the UCI
// front end uses to emit one "info depth ..." line per iteration rather than
// a single line after the whole search returns.
func Search(g *game.Game, limits Limits, ctrl *Control, onDepth func(Result)) Result {
	ctrl.Reset()
	if limits.Depth <= 0 {
		limits.Depth = 64
	}
	if budget := limits.budget(g.Pos.Us()); budget > 0 {
		ctrl.SetDeadline(time.Now().Add(budget))
	}

	s := &searcher{pos: g.Pos, ctrl: ctrl}
	var result Result

	for depth := 1; depth <= limits.Depth; depth++ {
		s.rootBest = board.NullMove
		score, err := s.negamaxRoot(depth)
		result.Nodes = s.nodes
		if err != nil {
			break // aborted iteration: keep the previous depth's result.
		}
		result.BestMove = s.rootBest
		result.Score = score
		result.Depth = depth
		if onDepth != nil {
			onDepth(result)
		}
		if score >= eval.MATE-eval.Score(depth) || score <= -eval.MATE+eval.Score(depth) {
			break // found a forced mate within this depth, no point deepening.
		}
	}

	if result.BestMove == board.NullMove {
		if moves := board.GenerateLegalMoves(g.Pos); len(moves) > 0 {
			result.BestMove = moves[0]
		}
	}
	return result
}

type searcher struct {
	pos      *board.Position
	ctrl     *Control
	nodes    int64
	rootBest board.Move
}

func (s *searcher) negamaxRoot(depth int) (eval.Score, error) {
	moves := board.GenerateLegalMoves(s.pos)
	if len(moves) == 0 {
		if s.pos.InCheck() {
			return -eval.MateIn(0), nil
		}
		return 0, nil
	}

	alpha, beta := -eval.Infinity, eval.Infinity
	best := -eval.Infinity
	bestMove := moves[0]

	for _, m := range moves {
		s.pos.DoMove(m)
		board.AssertValid(s.pos)
		score, err := s.negamax(depth-1, -beta, -alpha, 1)
		s.pos.UndoMove()
		if err != nil {
			return 0, err
		}
		score = -score

		if score > best {
			best = score
			bestMove = m
		}
		if best > alpha {
			alpha = best
		}
	}

	s.rootBest = bestMove
	return best, nil
}

func (s *searcher) negamax(depth int, alpha, beta eval.Score, ply int) (eval.Score, error) {
	s.nodes++
	if s.nodes%checkNodes == 0 && s.ctrl.expired() {
		return 0, errTimeBudgetExhausted
	}

	if isDraw(s.pos) {
		return 0, nil
	}
	if depth == 0 {
		return eval.Evaluate(s.pos), nil
	}

	moves := board.GenerateLegalMoves(s.pos)
	if len(moves) == 0 {
		if s.pos.InCheck() {
			return -eval.MateIn(ply), nil
		}
		return 0, nil
	}

	best := -eval.Infinity
	for _, m := range moves {
		s.pos.DoMove(m)
		board.AssertValid(s.pos)
		score, err := s.negamax(depth-1, -beta, -alpha, ply+1)
		s.pos.UndoMove()
		if err != nil {
			return 0, err
		}
		score = -score

		if score > best {
			best = score
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			break
		}
	}
	return best, nil
}

// isDraw checks the rule-draw conditions that apply mid-search. It
// intentionally does not call game.Game.DrawByRule to avoid constructing a
// *game.Game per node; it inlines the same three Position queries.
func isDraw(pos *board.Position) bool {
	return pos.FiftyMoveRule() ||
		pos.ThreeFoldRepetition() >= 2 ||
		pos.InsufficientMaterial()
}
