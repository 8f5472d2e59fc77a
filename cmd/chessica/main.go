// Command chessica is a UCI chess engine. With no flags it reads UCI
// commands from stdin and writes responses to stdout. The -perft flag
// selects a headless perft divide from the position given by -fen (the
// start position by default), used while developing and
// regression-testing the move generator, the same divide-style oracle the
// teacher's own magic-bitboard machinery is built to be checked against.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/kitrofimov/chessica/board"
	"github.com/kitrofimov/chessica/internal/xlog"
	"github.com/kitrofimov/chessica/search"
	"github.com/kitrofimov/chessica/uci"
)

func main() {
	perft := flag.Int("perft", 0, "run perft to the given depth from -fen (or the start position) and exit")
	fen := flag.String("fen", board.FENStartPos, "FEN of the position to use with -perft")
	flag.Parse()

	if *perft > 0 {
		runPerft(*fen, *perft)
		return
	}

	uci.NewEngine(os.Stdout).Run(os.Stdin)
}

func runPerft(fen string, depth int) {
	pos, err := board.PositionFromFEN(fen)
	if err != nil {
		xlog.Fatalf("bad -fen: %v", err)
	}
	fmt.Printf("perft %d from %s\n", depth, fen)
	search.PerftDivide(os.Stdout, pos, depth)
}
