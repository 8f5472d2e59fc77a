package search

import (
	"testing"

	"github.com/kitrofimov/chessica/board"
)

// Perft counts for the standard reference positions. Deeper counts for the
// start position (depth 6), Kiwipete, Position 3 and Position 4 (depth 5)
// live in perft_bench_test.go's chessicaperftbench-gated benchmarks instead
// of here, since those trees take minutes rather than milliseconds to walk.
func TestPerftStartPosition(t *testing.T) {
	pos, err := board.PositionFromFEN(board.FENStartPos)
	if err != nil {
		t.Fatalf("PositionFromFEN failed: %v", err)
	}
	want := []int64{1, 20, 400, 8902, 197281, 4865609}
	for depth, w := range want {
		if got := Perft(pos, depth); got != w {
			t.Errorf("Perft(start, %d) = %d, want %d", depth, got, w)
		}
	}
}

func TestPerftKiwipete(t *testing.T) {
	// The "Kiwipete" position, a standard perft stress test covering
	// castling, promotions, and en passant simultaneously.
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	pos, err := board.PositionFromFEN(fen)
	if err != nil {
		t.Fatalf("PositionFromFEN failed: %v", err)
	}
	want := []int64{1, 48, 2039, 97862, 4085603}
	for depth, w := range want {
		if got := Perft(pos, depth); got != w {
			t.Errorf("Perft(kiwipete, %d) = %d, want %d", depth, got, w)
		}
	}
}

func TestPerftPosition3(t *testing.T) {
	// "Position 3" from the chess programming community's standard perft
	// suite: an endgame-like position with no castling rights, stressing
	// pawn pushes, captures, and king safety near the board edge.
	fen := "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	pos, err := board.PositionFromFEN(fen)
	if err != nil {
		t.Fatalf("PositionFromFEN failed: %v", err)
	}
	want := []int64{1, 14, 191, 2812, 43238}
	for depth, w := range want {
		if got := Perft(pos, depth); got != w {
			t.Errorf("Perft(position3, %d) = %d, want %d", depth, got, w)
		}
	}
}

func TestPerftPosition4(t *testing.T) {
	// "Position 4" from the chess programming community's standard perft
	// suite: asymmetric castling rights, promotions, and White to move out
	// of check from the bishop on b6.
	fen := "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"
	pos, err := board.PositionFromFEN(fen)
	if err != nil {
		t.Fatalf("PositionFromFEN failed: %v", err)
	}
	want := []int64{1, 6, 264, 9467}
	for depth, w := range want {
		if got := Perft(pos, depth); got != w {
			t.Errorf("Perft(position4, %d) = %d, want %d", depth, got, w)
		}
	}
}

func TestPerftEnPassantPin(t *testing.T) {
	// A position where an en passant capture would illegally unpin the king
	// against a rank slider if the generator didn't special-case it.
	fen := "8/8/8/8/k2Pp2Q/8/8/3K4 b - d3 0 1"
	pos, err := board.PositionFromFEN(fen)
	if err != nil {
		t.Fatalf("PositionFromFEN failed: %v", err)
	}
	// The only pawn capture available to black is exd3 en passant, which is
	// illegal here: removing both pawns from rank 4 exposes the black king
	// on a4 to the white queen on h4 along the rank.
	moves := board.GenerateLegalMoves(pos)
	for _, m := range moves {
		if m.MoveType() == board.Enpassant {
			t.Errorf("en passant capture %s should be illegal (exposes king to rank pin)", m.UCI())
		}
	}
}

func TestPerftPromotionHeavy(t *testing.T) {
	// "Position 5" from the chess programming community's standard perft
	// suite: a white pawn on d7 that can promote by capturing on c8, and a
	// black knight on f2 beside the white king, stressing promotion move
	// generation alongside check analysis.
	fen := "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8"
	pos, err := board.PositionFromFEN(fen)
	if err != nil {
		t.Fatalf("PositionFromFEN failed: %v", err)
	}
	want := []int64{1, 44, 1486}
	for depth, w := range want {
		if got := Perft(pos, depth); got != w {
			t.Errorf("Perft(promotion, %d) = %d, want %d", depth, got, w)
		}
	}
}

func TestPerftCastling(t *testing.T) {
	fen := "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"
	pos, err := board.PositionFromFEN(fen)
	if err != nil {
		t.Fatalf("PositionFromFEN failed: %v", err)
	}
	want := []int64{1, 26, 568}
	for depth, w := range want {
		if got := Perft(pos, depth); got != w {
			t.Errorf("Perft(castling, %d) = %d, want %d", depth, got, w)
		}
	}
}
