package chess

import (
	"testing"
)

func TestEmptyBoard(t *testing.T) {
	b := EmptyBoard()

	if b.Len() != 0 {
		t.Errorf("Len() = %d; want 0", b.Len())
	}
	for i := 0; i < NumSquares; i++ {
		pos := PositionFromIndex(i)
		if _, ok := b.Piece(pos); ok {
			t.Errorf("Piece(%s) found a piece on an empty board", pos)
		}
		if !b.IsEmpty(pos) {
			t.Errorf("IsEmpty(%s) = false; want true", pos)
		}
	}
	if _, ok := b.King(White); ok {
		t.Error("King(White) found a king on an empty board")
	}
}

func TestBoardPiece(t *testing.T) {
	b := NewBoard(
		Place(MustPosition("e1"), W(King)),
		Place(MustPosition("e8"), B(King)),
		Place(MustPosition("d7"), B(Pawn)),
	)

	tests := []struct {
		name    string
		pos     string
		colour  Colour
		want    Piece
		wantAny bool
		wantOf  bool
	}{
		{"white king as white", "e1", White, W(King), true, true},
		{"white king as black", "e1", Black, W(King), true, false},
		{"black pawn as black", "d7", Black, B(Pawn), true, true},
		{"empty square", "d4", White, Piece{}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := MustPosition(tt.pos)
			got, ok := b.Piece(pos)
			if ok != tt.wantAny || (ok && got != tt.want) {
				t.Errorf("Piece(%s) = %v, %v; want %v, %v", pos, got, ok, tt.want, tt.wantAny)
			}
			_, ok = b.PieceOf(pos, tt.colour)
			if ok != tt.wantOf {
				t.Errorf("PieceOf(%s, %v) ok = %v; want %v", pos, tt.colour, ok, tt.wantOf)
			}
		})
	}

	if _, ok := b.Piece(Pos(8, 0)); ok {
		t.Error("Piece() off the board should report no piece")
	}
	if b.IsEmpty(Pos(-1, 3)) {
		t.Error("IsEmpty() off the board should be false")
	}
}

func TestBoardIsImmutable(t *testing.T) {
	e2, e4 := MustPosition("e2"), MustPosition("e4")
	original := NewBoard(Place(e2, W(Pawn)), Place(MustPosition("e1"), W(King)))
	before := original.String()

	moved := original.Move(e2, e4)
	added := original.With(MustPosition("d1"), W(Queen))
	removed := original.Without(e2)
	ranged := original.AddRange(Place(MustPosition("a1"), W(Rook)), Place(MustPosition("h1"), W(Rook)))

	if original.String() != before {
		t.Errorf("original board changed:\n%s\nwant\n%s", original, before)
	}

	tests := []struct {
		name  string
		board *Board
		len   int
	}{
		{"original", original, 2},
		{"moved", moved, 2},
		{"added", added, 3},
		{"removed", removed, 1},
		{"ranged", ranged, 4},
	}
	for _, tt := range tests {
		if tt.board.Len() != tt.len {
			t.Errorf("%s: Len() = %d; want %d", tt.name, tt.board.Len(), tt.len)
		}
	}

	if !moved.IsEmpty(e2) {
		t.Error("Move() left the origin occupied")
	}
	if p, ok := moved.Piece(e4); !ok || p != W(Pawn) {
		t.Errorf("Move() destination = %v; want White Pawn", p)
	}
	if moved.Move(MustPosition("c3"), MustPosition("c4")) != moved {
		t.Error("Move() from an empty square should return the same board")
	}
}

func TestBoardReplaceCountsOnce(t *testing.T) {
	sq := MustPosition("c3")
	b := NewBoard(Place(sq, W(Knight))).With(sq, B(Bishop))
	if b.Len() != 1 {
		t.Errorf("Len() = %d after replacing a piece; want 1", b.Len())
	}
	if p, _ := b.Piece(sq); p != B(Bishop) {
		t.Errorf("Piece(c3) = %v; want Black Bishop", p)
	}
}

func TestBoardIteration(t *testing.T) {
	b := NewBoard(
		Place(MustPosition("h8"), B(Rook)),
		Place(MustPosition("a1"), W(Rook)),
		Place(MustPosition("e4"), W(Pawn)),
		Place(MustPosition("e5"), B(Pawn)),
	)

	var all []string
	for pos := range b.All() {
		all = append(all, pos.String())
	}
	want := []string{"a1", "e4", "e5", "h8"}
	if len(all) != len(want) {
		t.Fatalf("All() yielded %v; want %v", all, want)
	}
	for i := range want {
		if all[i] != want[i] {
			t.Errorf("All()[%d] = %s; want %s", i, all[i], want[i])
		}
	}

	var black []string
	for pos, p := range b.Pieces(Black) {
		if p.Colour != Black {
			t.Errorf("Pieces(Black) yielded %v", p)
		}
		black = append(black, pos.String())
	}
	if len(black) != 2 || black[0] != "e5" || black[1] != "h8" {
		t.Errorf("Pieces(Black) = %v; want [e5 h8]", black)
	}

	// Stopping early must not panic.
	for range b.All() {
		break
	}
}

func TestBoardKing(t *testing.T) {
	b := NewBoard(Place(MustPosition("g1"), W(King)), Place(MustPosition("b8"), B(King)))
	for _, tt := range []struct {
		colour Colour
		want   string
	}{
		{White, "g1"},
		{Black, "b8"},
	} {
		pos, ok := b.King(tt.colour)
		if !ok || pos.String() != tt.want {
			t.Errorf("King(%v) = %s, %v; want %s", tt.colour, pos, ok, tt.want)
		}
	}
}

func TestBoardEqualAndString(t *testing.T) {
	a := NewBoard(Place(MustPosition("a1"), W(Rook)), Place(MustPosition("h8"), B(King)))
	b := EmptyBoard().With(MustPosition("h8"), B(King)).With(MustPosition("a1"), W(Rook))
	if !a.Equal(b) {
		t.Error("boards with the same pieces should be equal")
	}
	if a.Equal(a.Without(MustPosition("a1"))) {
		t.Error("boards with different pieces should not be equal")
	}

	want := "" +
		"8 .......k\n" +
		"7 ........\n" +
		"6 ........\n" +
		"5 ........\n" +
		"4 ........\n" +
		"3 ........\n" +
		"2 ........\n" +
		"1 R.......\n" +
		"  abcdefgh\n"
	if got := a.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestPosition(t *testing.T) {
	tests := []struct {
		name  string
		row   int
		col   int
		light bool
	}{
		{"a1", 0, 0, false},
		{"h1", 0, 7, true},
		{"e4", 3, 4, true},
		{"d4", 3, 3, false},
		{"h8", 7, 7, false},
	}
	for _, tt := range tests {
		pos, ok := ParsePosition(tt.name)
		if !ok || pos != Pos(tt.row, tt.col) {
			t.Errorf("ParsePosition(%q) = %v, %v; want %v", tt.name, pos, ok, Pos(tt.row, tt.col))
		}
		if pos.String() != tt.name {
			t.Errorf("String() = %q; want %q", pos.String(), tt.name)
		}
		if pos.IsLight() != tt.light {
			t.Errorf("%s.IsLight() = %v; want %v", tt.name, pos.IsLight(), tt.light)
		}
		if PositionFromIndex(pos.Index()) != pos {
			t.Errorf("PositionFromIndex(%d) != %s", pos.Index(), tt.name)
		}
	}

	for _, bad := range []string{"", "e", "i1", "a9", "a0", "e44"} {
		if _, ok := ParsePosition(bad); ok {
			t.Errorf("ParsePosition(%q) should fail", bad)
		}
	}

	if _, ok := Pos(0, 0).Offset(-1, 0); ok {
		t.Error("Offset() off the board should report false")
	}
	if next, ok := Pos(0, 0).Offset(1, 2); !ok || next.String() != "c2" {
		t.Errorf("Offset(1, 2) = %s, %v; want c2, true", next, ok)
	}
	if !Pos(0, 7).Less(Pos(1, 0)) || Pos(1, 0).Compare(Pos(0, 7)) != 1 {
		t.Error("positions should order row-major")
	}
}

func TestColour(t *testing.T) {
	tests := []struct {
		colour   Colour
		opposite Colour
		forward  int
		home     int
		pawn     int
		promo    int
	}{
		{White, Black, 1, 0, 1, 7},
		{Black, White, -1, 7, 6, 0},
	}
	for _, tt := range tests {
		if tt.colour.Opposite() != tt.opposite {
			t.Errorf("%v.Opposite() = %v", tt.colour, tt.colour.Opposite())
		}
		if tt.colour.Forward() != tt.forward || tt.colour.HomeRow() != tt.home ||
			tt.colour.PawnRow() != tt.pawn || tt.colour.PromotionRow() != tt.promo {
			t.Errorf("%v rows = %d/%d/%d/%d; want %d/%d/%d/%d", tt.colour,
				tt.colour.Forward(), tt.colour.HomeRow(), tt.colour.PawnRow(), tt.colour.PromotionRow(),
				tt.forward, tt.home, tt.pawn, tt.promo)
		}
	}
}

func TestPieceLetters(t *testing.T) {
	tests := []struct {
		piece Piece
		want  byte
	}{
		{W(King), 'K'},
		{B(Queen), 'q'},
		{W(Knight), 'N'},
		{B(Pawn), 'p'},
		{Piece{}, '.'},
	}
	for _, tt := range tests {
		if got := tt.piece.Letter(); got != tt.want {
			t.Errorf("%v.Letter() = %c; want %c", tt.piece, got, tt.want)
		}
		if tt.piece.IsNone() {
			continue
		}
		kind, ok := KindFromLetter(tt.want)
		if !ok || kind != tt.piece.Kind {
			t.Errorf("KindFromLetter(%c) = %v, %v; want %v", tt.want, kind, ok, tt.piece.Kind)
		}
	}
	if _, ok := KindFromLetter('x'); ok {
		t.Error("KindFromLetter('x') should fail")
	}
}
