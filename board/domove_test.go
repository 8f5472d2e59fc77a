package board

import "testing"

// recomputeZobrist rebuilds the Zobrist key from scratch, independent of
// the incremental updates DoMove/UndoMove perform, so it can be compared
// against pos.Zobrist() to catch any incremental-update bug.
func recomputeZobrist(pos *Position) uint64 {
	var z uint64
	for sq := SquareMinValue; sq <= SquareMaxValue; sq++ {
		if pi := pos.Get(sq); pi != NoPiece {
			z ^= zobristPiece[pi][sq]
		}
	}
	z ^= zobristCastle[pos.CastlingAbility()]
	if pos.EnpassantSquare() != SquareA1 {
		z ^= zobristEnpassant[pos.EnpassantSquare()]
	}
	z ^= zobristColor[pos.Us()]
	if z == 0 {
		return 0x4204fa763da3abeb
	}
	return z
}

func TestZobristIncrementalMatchesRecomputed(t *testing.T) {
	pos, err := PositionFromFEN(FENStartPos)
	if err != nil {
		t.Fatalf("PositionFromFEN failed: %v", err)
	}
	walkAndCheckZobrist(t, pos, 3)
}

func walkAndCheckZobrist(t *testing.T, pos *Position, depth int) {
	t.Helper()
	if want := recomputeZobrist(pos); pos.Zobrist() != want {
		t.Fatalf("Zobrist() = %#x, want recomputed %#x", pos.Zobrist(), want)
	}
	if depth == 0 {
		return
	}
	for _, m := range GenerateLegalMoves(pos) {
		pos.DoMove(m)
		walkAndCheckZobrist(t, pos, depth-1)
		pos.UndoMove()
	}
}

func TestDoMoveUndoMoveRestoresPosition(t *testing.T) {
	fens := []string{
		FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	}
	for _, fen := range fens {
		pos, err := PositionFromFEN(fen)
		if err != nil {
			t.Fatalf("PositionFromFEN(%q) failed: %v", fen, err)
		}
		before := pos.String()
		beforeZobrist := pos.Zobrist()

		for _, m := range GenerateLegalMoves(pos) {
			pos.DoMove(m)
			pos.UndoMove()
			if got := pos.String(); got != before {
				t.Errorf("fen %q: move %s: DoMove+UndoMove changed position: got %q, want %q", fen, m, got, before)
			}
			if pos.Zobrist() != beforeZobrist {
				t.Errorf("fen %q: move %s: DoMove+UndoMove changed Zobrist key", fen, m)
			}
		}
	}
}
