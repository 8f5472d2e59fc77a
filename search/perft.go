package search

import (
	"fmt"
	"io"

	"github.com/kitrofimov/chessica/board"
)

// Perft counts the leaf nodes reachable from pos in exactly depth plies,
// playing every legal move at every level. Unlike the search proper it never
// short-circuits on repetition or the fifty-move rule: perft is a move
// generator correctness oracle, not a game player, and a generator bug that
// only shows up after move 50 must still be caught.
func Perft(pos *board.Position, depth int) int64 {
	if depth == 0 {
		return 1
	}
	moves := board.GenerateLegalMoves(pos)
	if depth == 1 {
		return int64(len(moves))
	}
	var count int64
	for _, m := range moves {
		pos.DoMove(m)
		count += Perft(pos, depth-1)
		pos.UndoMove()
	}
	return count
}

// PerftDivide prints, for each legal root move, the perft count of the
// subtree it leads to at depth-1, followed by the total. It is the standard
// way to bisect a move generator discrepancy against a reference engine: the
// first root move whose count disagrees names the bug.
func PerftDivide(w io.Writer, pos *board.Position, depth int) int64 {
	var total int64
	for _, m := range board.GenerateLegalMoves(pos) {
		pos.DoMove(m)
		var count int64
		if depth > 1 {
			count = Perft(pos, depth-1)
		} else {
			count = 1
		}
		pos.UndoMove()
		fmt.Fprintf(w, "%s: %d\n", m.UCI(), count)
		total += count
	}
	fmt.Fprintf(w, "\ntotal: %d\n", total)
	return total
}
