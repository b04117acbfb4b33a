package chess

import (
	"iter"
	"strings"
)

// Board is an immutable mapping from position to piece. Every update returns
// a new Board; a Board never changes once constructed, so it can be shared
// freely between game states and goroutines.
type Board struct {
	squares [NumSquares]Piece
	count   int
}

// EmptyBoard returns a board with no pieces.
func EmptyBoard() *Board {
	return &Board{}
}

// NewBoard creates a board holding the given pieces. A later entry for the
// same position replaces an earlier one.
func NewBoard(pieces ...PlacedPiece) *Board {
	return EmptyBoard().AddRange(pieces...)
}

// Piece returns the piece at the given position, if any.
func (b *Board) Piece(pos Position) (Piece, bool) {
	if !pos.Valid() {
		return Piece{}, false
	}
	p := b.squares[pos.Index()]
	return p, !p.IsNone()
}

// PieceOf returns the piece at the given position only if it has the given colour.
func (b *Board) PieceOf(pos Position, colour Colour) (Piece, bool) {
	p, ok := b.Piece(pos)
	if !ok || p.Colour != colour {
		return Piece{}, false
	}
	return p, true
}

// IsEmpty reports whether the position is on the board and unoccupied.
func (b *Board) IsEmpty(pos Position) bool {
	return pos.Valid() && b.squares[pos.Index()].IsNone()
}

// Len returns the number of pieces on the board.
func (b *Board) Len() int {
	return b.count
}

// AddRange returns a copy of the board with the given pieces placed.
func (b *Board) AddRange(pieces ...PlacedPiece) *Board {
	next := *b
	for _, pp := range pieces {
		next.set(pp.Position, pp.Piece)
	}
	return &next
}

// With returns a copy of the board with piece placed at pos, replacing any occupant.
func (b *Board) With(pos Position, piece Piece) *Board {
	next := *b
	next.set(pos, piece)
	return &next
}

// Without returns a copy of the board with pos emptied.
func (b *Board) Without(pos Position) *Board {
	next := *b
	next.set(pos, Piece{})
	return &next
}

// Move returns a copy of the board with the piece on from relocated to to.
// Whatever stood on to is removed.
func (b *Board) Move(from, to Position) *Board {
	piece, ok := b.Piece(from)
	if !ok {
		return b
	}
	next := *b
	next.set(from, Piece{})
	next.set(to, piece)
	return &next
}

// set is only called on fresh copies.
func (b *Board) set(pos Position, piece Piece) {
	if !pos.Valid() {
		return
	}
	i := pos.Index()
	if !b.squares[i].IsNone() {
		b.count--
	}
	if !piece.IsNone() {
		b.count++
	}
	b.squares[i] = piece
}

// All iterates over occupied squares in position order.
func (b *Board) All() iter.Seq2[Position, Piece] {
	return func(yield func(Position, Piece) bool) {
		for i, p := range b.squares {
			if p.IsNone() {
				continue
			}
			if !yield(PositionFromIndex(i), p) {
				return
			}
		}
	}
}

// Pieces iterates over the squares occupied by the given colour in position order.
func (b *Board) Pieces(colour Colour) iter.Seq2[Position, Piece] {
	return func(yield func(Position, Piece) bool) {
		for pos, p := range b.All() {
			if p.Colour != colour {
				continue
			}
			if !yield(pos, p) {
				return
			}
		}
	}
}

// King returns the position of the given colour's king.
func (b *Board) King(colour Colour) (Position, bool) {
	king := MakePiece(colour, King)
	for i, p := range b.squares {
		if p == king {
			return PositionFromIndex(i), true
		}
	}
	return Position{}, false
}

// Equal reports whether two boards hold the same pieces on the same squares.
func (b *Board) Equal(o *Board) bool {
	return b.squares == o.squares
}

// String renders the board as eight rows, rank 8 first.
func (b *Board) String() string {
	var sb strings.Builder
	for row := BoardSize - 1; row >= 0; row-- {
		sb.WriteByte(byte('1' + row))
		sb.WriteByte(' ')
		for col := 0; col < BoardSize; col++ {
			sb.WriteByte(b.squares[Pos(row, col).Index()].Letter())
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  abcdefgh\n")
	return sb.String()
}
