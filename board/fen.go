// fen.go parses and formats positions in Forsyth-Edwards Notation. Zurichess
// shipped a convert.go for this (Position.String calls straight into
// FormatPiecePlacement, FormatSideToMove, and friends) but the retrieval that
// produced this tree did not carry that file along, so it is rebuilt here
// following the same field layout, in the style other FEN parsers in the
// corpus use: split on spaces, validate field by field, return a descriptive
// error on the first thing that doesn't parse.

package board

import (
	"fmt"
	"strconv"
	"strings"
)

// InvalidFEN reports a FEN string that could not be parsed, naming the field
// that failed and why.
type InvalidFEN struct {
	FEN    string
	Reason string
}

func (e *InvalidFEN) Error() string {
	return fmt.Sprintf("invalid FEN %q: %s", e.FEN, e.Reason)
}

var symbolToCastle = map[rune]Castle{
	'K': WhiteOO,
	'Q': WhiteOOO,
	'k': BlackOO,
	'q': BlackOOO,
}

// PositionFromFEN parses a FEN string into a new Position.
func PositionFromFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return nil, &InvalidFEN{fen, fmt.Sprintf("expected 6 fields, got %d", len(fields))}
	}

	pos := NewPosition()
	if err := parsePiecePlacement(pos, fields[0]); err != nil {
		return nil, &InvalidFEN{fen, err.Error()}
	}

	switch fields[1] {
	case "w":
		pos.sideToMove = White
	case "b":
		pos.sideToMove = Black
	default:
		return nil, &InvalidFEN{fen, "side to move must be 'w' or 'b'"}
	}
	pos.curr.Zobrist ^= zobristColor[pos.sideToMove]

	castle, err := parseCastlingAbility(fields[2])
	if err != nil {
		return nil, &InvalidFEN{fen, err.Error()}
	}
	pos.curr.CastlingAbility = castle
	pos.curr.Zobrist ^= zobristCastle[castle]

	if fields[3] != "-" {
		sq, err := SquareFromString(fields[3])
		if err != nil {
			return nil, &InvalidFEN{fen, "bad en passant square: " + err.Error()}
		}
		pos.curr.EnpassantSquare = sq
		pos.curr.Zobrist ^= zobristEnpassant[sq]
	}

	halfmove, err := strconv.Atoi(fields[4])
	if err != nil || halfmove < 0 {
		return nil, &InvalidFEN{fen, "halfmove clock is not a non-negative number"}
	}
	pos.curr.HalfmoveClock = halfmove

	fullmove, err := strconv.Atoi(fields[5])
	if err != nil || fullmove < 1 {
		return nil, &InvalidFEN{fen, "fullmove number is not a positive number"}
	}
	pos.fullmoveCounter = fullmove

	if err := pos.Verify(); err != nil {
		return nil, &InvalidFEN{fen, err.Error()}
	}
	return pos, nil
}

func parsePiecePlacement(pos *Position, field string) error {
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("piece placement needs 8 ranks, got %d", len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			fig, ok := symbolToFigure[ch]
			if !ok {
				return fmt.Errorf("unrecognized piece symbol %q", ch)
			}
			if file >= 8 {
				return fmt.Errorf("rank %d has too many squares", rank+1)
			}
			col := Black
			if ch >= 'A' && ch <= 'Z' {
				col = White
			}
			pos.Put(RankFile(rank, file), ColorFigure(col, fig))
			file++
		}
		if file != 8 {
			return fmt.Errorf("rank %d does not have 8 files", rank+1)
		}
	}
	return nil
}

func parseCastlingAbility(field string) (Castle, error) {
	if field == "-" {
		return NoCastle, nil
	}
	var castle Castle
	for _, ch := range field {
		c, ok := symbolToCastle[ch]
		if !ok {
			return NoCastle, fmt.Errorf("unrecognized castling symbol %q", ch)
		}
		castle |= c
	}
	return castle, nil
}

// FormatPiecePlacement formats the piece placement field of pos's FEN.
func FormatPiecePlacement(pos *Position) string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pi := pos.Get(RankFile(rank, file))
			if pi == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteString(pieceToSymbol(pi))
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// FormatSideToMove formats the side-to-move field of pos's FEN.
func FormatSideToMove(pos *Position) string {
	if pos.Us() == White {
		return "w"
	}
	return "b"
}

// FormatCastlingAbility formats the castling-ability field of pos's FEN.
func FormatCastlingAbility(pos *Position) string {
	return pos.CastlingAbility().String()
}

// FormatEnpassantSquare formats the en passant field of pos's FEN.
func FormatEnpassantSquare(pos *Position) string {
	if pos.EnpassantSquare() == SquareA1 {
		return "-"
	}
	return pos.EnpassantSquare().String()
}

var pieceToSymbolTable = map[Piece]string{
	WhitePawn: "P", WhiteKnight: "N", WhiteBishop: "B",
	WhiteRook: "R", WhiteQueen: "Q", WhiteKing: "K",
	BlackPawn: "p", BlackKnight: "n", BlackBishop: "b",
	BlackRook: "r", BlackQueen: "q", BlackKing: "k",
}

func pieceToSymbol(pi Piece) string {
	return pieceToSymbolTable[pi]
}
