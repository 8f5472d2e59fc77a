// raylines.go precomputes the between- and through-line bitboards used by
// the pin-aware legal move generator in movegen_legal.go. Zurichess itself never
// needed these tables because it filters pseudo-legal moves by make/undo;
// chessica's generator restricts pinned pieces and single-check responses
// directly, so it needs to know, for any two squares, what lies strictly
// between them and what ray passes through both.

package board

var (
	// bbBetween[a][b] holds the squares strictly between a and b when they
	// share a rank, file or diagonal. Empty otherwise (and always empty on
	// the diagonal a == b).
	bbBetween [64][64]Bitboard
	// bbLine[a][b] holds every square on the infinite rank/file/diagonal
	// that passes through both a and b, including a and b themselves.
	// Empty if a and b do not share a line.
	bbLine [64][64]Bitboard
)

func init() {
	initRayLines()
}

// axes pairs up the opposite deltas from rookDeltas/bishopDeltas so each
// line (file, rank or diagonal) is built from both directions at once.
var axes = [4][2][2]int{
	{{-1, 0}, {1, 0}},
	{{0, -1}, {0, 1}},
	{{-1, 1}, {1, -1}},
	{{1, 1}, {-1, -1}},
}

func initRayLines() {
	for sq := SquareMinValue; sq <= SquareMaxValue; sq++ {
		r, f := sq.Rank(), sq.File()
		for _, axis := range axes {
			var full Bitboard
			full |= sq.Bitboard()
			var rays [2][]Square
			for side, d := range axis {
				for r0, f0 := r+d[0], f+d[1]; 0 <= r0 && r0 < 8 && 0 <= f0 && f0 < 8; r0, f0 = r0+d[0], f0+d[1] {
					s := RankFile(r0, f0)
					rays[side] = append(rays[side], s)
					full |= s.Bitboard()
				}
			}
			for _, ray := range rays {
				var between Bitboard
				for _, s := range ray {
					bbLine[sq][s] = full
					bbBetween[sq][s] = between
					between |= s.Bitboard()
				}
			}
		}
	}
}

// Between returns the squares strictly between a and b on the rank, file or
// diagonal connecting them. Returns BbEmpty if they share no such line.
func Between(a, b Square) Bitboard {
	return bbBetween[a][b]
}

// Line returns every square on the rank, file or diagonal that passes
// through both a and b. Returns BbEmpty if they share no such line.
func Line(a, b Square) Bitboard {
	return bbLine[a][b]
}
