package uci

import (
	"bufio"
	"strings"
	"testing"

	"github.com/kitrofimov/chessica/eval"
)

func TestHandleUCIIdentification(t *testing.T) {
	var out strings.Builder
	e := NewEngine(&out)
	e.Run(strings.NewReader("uci\nquit\n"))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) < 3 {
		t.Fatalf("expected at least 3 lines, got %v", lines)
	}
	if !strings.HasPrefix(lines[0], "id name ") {
		t.Errorf("first line = %q, want an id name line", lines[0])
	}
	if !strings.HasPrefix(lines[1], "id author ") {
		t.Errorf("second line = %q, want an id author line", lines[1])
	}
	if lines[2] != "uciok" {
		t.Errorf("third line = %q, want uciok", lines[2])
	}
}

func TestIsReady(t *testing.T) {
	var out strings.Builder
	e := NewEngine(&out)
	e.Run(strings.NewReader("isready\nquit\n"))
	if !strings.Contains(out.String(), "readyok") {
		t.Errorf("output = %q, want readyok", out.String())
	}
}

func TestPositionStartposAndMoves(t *testing.T) {
	var out strings.Builder
	e := NewEngine(&out)
	e.Run(strings.NewReader("position startpos moves e2e4 e7e5\nquit\n"))

	want := "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2"
	if got := e.game.Pos.String(); got != want {
		t.Errorf("position after e2e4 e7e5 = %q, want %q", got, want)
	}
}

func TestPositionFEN(t *testing.T) {
	var out strings.Builder
	e := NewEngine(&out)
	fen := "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"
	e.Run(strings.NewReader("position fen " + fen + "\nquit\n"))
	if got := e.game.Pos.String(); got != fen {
		t.Errorf("position fen round trip = %q, want %q", got, fen)
	}
}

func TestGoDepthEmitsBestmove(t *testing.T) {
	var out strings.Builder
	e := NewEngine(&out)
	e.Run(strings.NewReader("position startpos\ngo depth 2\nquit\n"))

	found := false
	sc := bufio.NewScanner(strings.NewReader(out.String()))
	for sc.Scan() {
		if strings.HasPrefix(sc.Text(), "bestmove ") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a bestmove line in output, got %q", out.String())
	}
}

func TestGoDepthEmitsInfoPerIteration(t *testing.T) {
	var out strings.Builder
	e := NewEngine(&out)
	e.Run(strings.NewReader("position startpos\ngo depth 3\nquit\n"))

	var infoDepths []string
	sc := bufio.NewScanner(strings.NewReader(out.String()))
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "info depth ") {
			infoDepths = append(infoDepths, strings.Fields(line)[2])
		}
	}
	if len(infoDepths) != 3 {
		t.Fatalf("got %d \"info depth\" lines, want one per completed depth (3): %q", len(infoDepths), out.String())
	}
	want := []string{"1", "2", "3"}
	for i, d := range infoDepths {
		if d != want[i] {
			t.Errorf("infoDepths[%d] = %q, want %q", i, d, want[i])
		}
	}
}

func TestUnrecognizedCommandIsIgnored(t *testing.T) {
	var out strings.Builder
	e := NewEngine(&out)
	e.Run(strings.NewReader("bogus command\nisready\nquit\n"))
	if !strings.Contains(out.String(), "readyok") {
		t.Errorf("an unrecognized command should not stop later commands from being processed")
	}
}

func TestScoreToUCI(t *testing.T) {
	if got := scoreToUCI(eval.Score(150)); got != "cp 150" {
		t.Errorf("scoreToUCI(150) = %q, want %q", got, "cp 150")
	}
	if got := scoreToUCI(eval.MateIn(1)); got != "mate 1" {
		t.Errorf("scoreToUCI(MateIn(1)) = %q, want %q", got, "mate 1")
	}
	if got := scoreToUCI(-eval.MateIn(1)); got != "mate -1" {
		t.Errorf("scoreToUCI(-MateIn(1)) = %q, want %q", got, "mate -1")
	}
}
