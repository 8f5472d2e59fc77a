// Package eval scores a position from the perspective of the side to move.
// The distilled spec calls for plain material counting; this mirrors the
// zurichess derivative's own evaluation constants (search.go's MateScore,
// InfinityScore, sentinel-distinct-from-math.MaxInt32 pattern) while leaving
// out the weighted, trained feature set (pawn structure, mobility, king
// safety) those forks layer on top, since tuning the search beyond material
// is explicitly out of scope here.
package eval

import "github.com/kitrofimov/chessica/board"

// Score is a centipawn evaluation, always from the perspective of the side
// to move: positive favors the mover, negative favors the opponent.
type Score int32

const (
	// MATE is the score magnitude assigned to a forced checkmate, kept well
	// below the int32 range so that Score-Ply arithmetic near mate never
	// wraps or collides with a sentinel max value.
	MATE Score = 30000
	// Infinity bounds alpha-beta search windows; always strictly greater in
	// magnitude than any reachable evaluation, including MATE.
	Infinity Score = MATE + 1
)

var figureValue = [board.FigureArraySize]Score{
	board.NoFigure: 0,
	board.Pawn:     100,
	board.Knight:   320,
	board.Bishop:   330,
	board.Rook:     500,
	board.Queen:    900,
	board.King:     0,
}

// Material sums figureValue over every piece of color us.
func Material(pos *board.Position, us board.Color) Score {
	var sum Score
	for fig := board.FigureMinValue; fig <= board.FigureMaxValue; fig++ {
		sum += Score(pos.ByPiece(us, fig).Count()) * figureValue[fig]
	}
	return sum
}

// Evaluate returns the static material score of pos from the side to move's
// perspective. It does not consider check, stalemate, or draw conditions —
// those are the search's responsibility, since they require knowing whether
// the side to move has any legal moves at all.
func Evaluate(pos *board.Position) Score {
	us, them := pos.Us(), pos.Them()
	return Material(pos, us) - Material(pos, them)
}

// MateIn converts a number of plies to mate into the signed score the search
// returns at the root: a side that can force mate in p plies gets
// MATE-p, the side being mated gets -(MATE-p).
func MateIn(ply int) Score {
	return MATE - Score(ply)
}
