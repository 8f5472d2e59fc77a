package game

import "testing"

func TestNewGameLegalMoves(t *testing.T) {
	g := NewGame()
	moves := g.LegalMoves()
	if len(moves) != 20 {
		t.Errorf("start position has 20 legal moves, got %d", len(moves))
	}
	if g.TerminalStatus() != InProgress {
		t.Errorf("start position status = %v, want InProgress", g.TerminalStatus())
	}
}

func TestFoolsMateCheckmate(t *testing.T) {
	g := NewGame()
	moves := []string{"f2f3", "e7e5", "g2g4", "d8h4"}
	if err := g.ApplyUCIMoves(moves); err != nil {
		t.Fatalf("ApplyUCIMoves(%v) failed: %v", moves, err)
	}
	if !g.InCheck() {
		t.Fatal("white king should be in check after fool's mate")
	}
	if len(g.LegalMoves()) != 0 {
		t.Errorf("fool's mate should leave no legal moves, got %d", len(g.LegalMoves()))
	}
	if got := g.TerminalStatus(); got != Checkmate {
		t.Errorf("TerminalStatus() = %v, want Checkmate", got)
	}
}

func TestStalemate(t *testing.T) {
	// Classic stalemate: black king a8, white king c7, white queen b6.
	g, err := FromFEN("k7/2K5/1Q6/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatalf("FromFEN failed: %v", err)
	}
	if g.InCheck() {
		t.Fatal("stalemated king should not be in check")
	}
	if len(g.LegalMoves()) != 0 {
		t.Errorf("stalemate position should have no legal moves, got %d", len(g.LegalMoves()))
	}
	if got := g.TerminalStatus(); got != Stalemate {
		t.Errorf("TerminalStatus() = %v, want Stalemate", got)
	}
}

func TestInsufficientMaterialDraw(t *testing.T) {
	g, err := FromFEN("8/8/4k3/8/8/3NK3/8/8 w - - 0 1")
	if err != nil {
		t.Fatalf("FromFEN failed: %v", err)
	}
	if !g.DrawByRule() {
		t.Error("K+N vs K should be a draw by insufficient material")
	}
	if got := g.TerminalStatus(); got != DrawByRule {
		t.Errorf("TerminalStatus() = %v, want DrawByRule", got)
	}
}

func TestThreefoldRepetitionDraw(t *testing.T) {
	g := NewGame()
	// Shuttle both knights out and back to the start position twice: the
	// position recurs at move 0 (the start), after the first round trip, and
	// after the second, each with identical side to move, castling rights
	// and en passant state, so the Zobrist key matches all three times.
	moves := []string{
		"g1f3", "g8f6", "f3g1", "f6g8",
		"g1f3", "g8f6", "f3g1", "f6g8",
	}
	if err := g.ApplyUCIMoves(moves); err != nil {
		t.Fatalf("ApplyUCIMoves(%v) failed: %v", moves, err)
	}
	if !g.DrawByRule() {
		t.Error("repeated position should be a draw by repetition")
	}
	if got := g.TerminalStatus(); got != DrawByRule {
		t.Errorf("TerminalStatus() = %v, want DrawByRule", got)
	}
}

func TestFiftyMoveRuleDraw(t *testing.T) {
	// Halfmove clock already at 99; one quiet, non-pawn move tips it to 100.
	g, err := FromFEN("3qk3/8/8/8/8/8/8/3QK3 w - - 99 1")
	if err != nil {
		t.Fatalf("FromFEN failed: %v", err)
	}
	if err := g.ApplyUCIMoves([]string{"d1d2"}); err != nil {
		t.Fatalf("ApplyUCIMoves failed: %v", err)
	}
	if !g.DrawByRule() {
		t.Error("halfmove clock at 100 should be a draw by the fifty-move rule")
	}
	if got := g.TerminalStatus(); got != DrawByRule {
		t.Errorf("TerminalStatus() = %v, want DrawByRule", got)
	}
}

func TestApplyUCIMovesRejectsIllegalMove(t *testing.T) {
	g := NewGame()
	if err := g.ApplyUCIMoves([]string{"e2e5"}); err == nil {
		t.Error("ApplyUCIMoves should reject an illegal pawn move")
	}
}
