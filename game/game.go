// Package game wraps a board.Position with the bookkeeping a player (human,
// GUI, or search) actually needs on top of the raw rules: draw-by-rule
// queries and terminal-state classification. The teacher's Position already
// tracks the per-ply state stack that repetition and the halfmove clock read
// from (ThreeFoldRepetition, FiftyMoveRule, InsufficientMaterial); Game adds
// nothing to that bookkeeping, it only gives it a name callers outside the
// board package can use without reaching into move generation themselves.
package game

import "github.com/kitrofimov/chessica/board"

// Status classifies why a game has or has not ended.
type Status int

const (
	// InProgress means the side to move has at least one legal move and no
	// draw-by-rule condition currently holds.
	InProgress Status = iota
	// Checkmate means the side to move has no legal moves and is in check.
	Checkmate
	// Stalemate means the side to move has no legal moves and is not in check.
	Stalemate
	// DrawByRule means fifty-move, threefold repetition, or insufficient
	// material ended the game regardless of legal moves remaining.
	DrawByRule
)

func (s Status) String() string {
	switch s {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case DrawByRule:
		return "draw"
	default:
		return "in progress"
	}
}

// Game is a Position plus the queries built on top of its move history.
type Game struct {
	Pos *board.Position
}

// NewGame returns a Game starting from the standard chess starting position.
func NewGame() *Game {
	pos, err := board.PositionFromFEN(board.FENStartPos)
	if err != nil {
		panic("game: start position FEN failed to parse: " + err.Error())
	}
	return &Game{Pos: pos}
}

// FromFEN returns a Game starting from the position described by fen.
func FromFEN(fen string) (*Game, error) {
	pos, err := board.PositionFromFEN(fen)
	if err != nil {
		return nil, err
	}
	return &Game{Pos: pos}, nil
}

// Push plays m on the underlying position.
func (g *Game) Push(m board.Move) {
	g.Pos.DoMove(m)
}

// Pop takes back the last move played on the underlying position.
func (g *Game) Pop() {
	g.Pos.UndoMove()
}

// LegalMoves returns every legal move for the side to move.
func (g *Game) LegalMoves() []board.Move {
	return board.GenerateLegalMoves(g.Pos)
}

// InCheck reports whether the side to move is in check.
func (g *Game) InCheck() bool {
	return g.Pos.InCheck()
}

// DrawByRule reports whether the fifty-move rule, a claimable threefold
// repetition, or insufficient material ends the game regardless of whether
// the side to move has legal moves.
func (g *Game) DrawByRule() bool {
	return g.Pos.FiftyMoveRule() ||
		g.Pos.ThreeFoldRepetition() >= 2 ||
		g.Pos.InsufficientMaterial()
}

// TerminalStatus classifies the game's current state. Computing it requires
// generating legal moves, so callers that already have a move list (e.g. the
// search, mid-recursion) should use InProgress/Checkmate/Stalemate logic
// directly on that list rather than calling TerminalStatus again.
func (g *Game) TerminalStatus() Status {
	if g.DrawByRule() {
		return DrawByRule
	}
	if len(g.LegalMoves()) > 0 {
		return InProgress
	}
	if g.InCheck() {
		return Checkmate
	}
	return Stalemate
}

// ApplyUCIMoves replays a list of moves given in UCI long algebraic notation
// (e.g. "e2e4", "e7e8q") against the game, in order. It stops and returns an
// error on the first move that does not parse or is not legal, leaving moves
// already applied in place.
func (g *Game) ApplyUCIMoves(moves []string) error {
	for _, s := range moves {
		m, err := g.Pos.UCIToMove(s)
		if err != nil {
			return &InvalidMoveText{Text: s, Reason: err.Error()}
		}
		if !isLegal(g.Pos, m) {
			return &InvalidMoveText{Text: s, Reason: "not a legal move in this position"}
		}
		g.Push(m)
	}
	return nil
}

func isLegal(pos *board.Position, m board.Move) bool {
	for _, legal := range board.GenerateLegalMoves(pos) {
		if legal == m {
			return true
		}
	}
	return false
}

// InvalidMoveText reports move text that failed to parse or does not name a
// legal move in the position it was checked against.
type InvalidMoveText struct {
	Text   string
	Reason string
}

func (e *InvalidMoveText) Error() string {
	return "invalid move \"" + e.Text + "\": " + e.Reason
}
