// Copyright 2014-2017 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package board

import "testing"

// TestFENs are FEN strings that should survive a parse/format round trip
// unchanged, covering the starting position, mid-game positions with full,
// black-only and no castling rights, an en passant target, and bare kings.
var TestFENs = []string{
	FENStartPos,
	"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
	"rnbqkb1r/pp1p1ppp/4pn2/2p5/2PP4/5N2/PP2PPPP/RNBQKB1R w KQkq c6 0 4",
	"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
	"r3k2r/8/8/8/8/8/8/R3K2R b kq - 3 10",
	"4k3/8/8/8/8/8/8/4K3 w - - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
}

func TestPositionFromFEN_RoundTrip(t *testing.T) {
	for _, fen := range TestFENs {
		pos, err := PositionFromFEN(fen)
		if err != nil {
			t.Errorf("PositionFromFEN(%q) failed: %v", fen, err)
			continue
		}
		if got := pos.String(); got != fen {
			t.Errorf("PositionFromFEN(%q).String() = %q, want %q", fen, got, fen)
		}
	}
}

func TestPositionFromFEN_Errors(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBXR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w ZQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9 0 1",
		"8/8/8/8/8/8/8/8 w - - 0 1",
		"Pk6/8/8/8/8/8/8/K7 w - - 0 1",
	}
	for _, fen := range bad {
		if _, err := PositionFromFEN(fen); err == nil {
			t.Errorf("PositionFromFEN(%q) succeeded, want error", fen)
		}
	}
}

func TestFormatPiecePlacement(t *testing.T) {
	pos, err := PositionFromFEN(FENStartPos)
	if err != nil {
		t.Fatalf("PositionFromFEN(FENStartPos) failed: %v", err)
	}
	want := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"
	if got := FormatPiecePlacement(pos); got != want {
		t.Errorf("FormatPiecePlacement() = %q, want %q", got, want)
	}
}
