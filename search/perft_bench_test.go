// +build chessicaperftbench

package search

import (
	"testing"

	"github.com/kitrofimov/chessica/board"
)

// Deepest published perft counts for the standard reference suite, gated
// behind the chessicaperftbench build tag since walking these trees takes
// minutes rather than milliseconds and has no place in a normal test run.
func benchmarkPerft(b *testing.B, fen string, depth int, want int64) {
	pos, err := board.PositionFromFEN(fen)
	if err != nil {
		b.Fatalf("PositionFromFEN(%q) failed: %v", fen, err)
	}
	for i := 0; i < b.N; i++ {
		if got := Perft(pos, depth); got != want {
			b.Fatalf("Perft(%q, %d) = %d, want %d", fen, depth, got, want)
		}
	}
}

func BenchmarkPerftStartPositionDeep(b *testing.B) {
	benchmarkPerft(b, board.FENStartPos, 6, 119060324)
}

func BenchmarkPerftKiwipeteDeep(b *testing.B) {
	benchmarkPerft(b, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 5, 193690690)
}

func BenchmarkPerftPosition3Deep(b *testing.B) {
	benchmarkPerft(b, "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 5, 674624)
}

func BenchmarkPerftPosition4Deep(b *testing.B) {
	benchmarkPerft(b, "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 5, 15833292)
}
