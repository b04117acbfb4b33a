// Package chess provides core chess types: colours, pieces, board positions and
// the immutable board.
package chess

// Colour represents the colour of a piece or player.
type Colour uint8

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Forward returns +1 for White, -1 for Black (for pawn direction).
func (c Colour) Forward() int {
	if c == White {
		return 1
	}
	return -1
}

// HomeRow returns the row of the colour's back rank.
func (c Colour) HomeRow() int {
	if c == White {
		return 0
	}
	return BoardSize - 1
}

// PawnRow returns the row the colour's pawns start on.
func (c Colour) PawnRow() int {
	return c.HomeRow() + c.Forward()
}

// PromotionRow returns the row on which the colour's pawns promote.
func (c Colour) PromotionRow() int {
	return c.Opposite().HomeRow()
}

// PieceKind represents a chess piece type.
type PieceKind uint8

const (
	NoPiece PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the string representation of a piece kind.
func (k PieceKind) String() string {
	names := []string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a piece kind (uppercase).
func (k PieceKind) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// KindFromLetter converts a piece letter (either case) to its kind.
func KindFromLetter(letter byte) (PieceKind, bool) {
	switch letter {
	case 'P', 'p':
		return Pawn, true
	case 'N', 'n':
		return Knight, true
	case 'B', 'b':
		return Bishop, true
	case 'R', 'r':
		return Rook, true
	case 'Q', 'q':
		return Queen, true
	case 'K', 'k':
		return King, true
	}
	return NoPiece, false
}

// Piece is a coloured piece. Two pieces with the same kind and colour are
// interchangeable.
type Piece struct {
	Kind   PieceKind
	Colour Colour
}

// MakePiece creates a coloured piece value.
func MakePiece(colour Colour, kind PieceKind) Piece {
	return Piece{Kind: kind, Colour: colour}
}

// W creates a white piece.
func W(kind PieceKind) Piece {
	return MakePiece(White, kind)
}

// B creates a black piece.
func B(kind PieceKind) Piece {
	return MakePiece(Black, kind)
}

// IsNone reports whether the value holds no piece.
func (p Piece) IsNone() bool {
	return p.Kind == NoPiece
}

// Letter returns the piece letter, uppercase for White and lowercase for Black.
func (p Piece) Letter() byte {
	if p.IsNone() {
		return '.'
	}
	l := p.Kind.Letter()
	if p.Colour == Black {
		l += 'a' - 'A'
	}
	return l
}

// String returns e.g. "White Knight".
func (p Piece) String() string {
	if p.IsNone() {
		return "None"
	}
	return p.Colour.String() + " " + p.Kind.String()
}

// PlacedPiece pairs a piece with its position during board construction.
type PlacedPiece struct {
	Position Position
	Piece    Piece
}

// Place is shorthand for building a PlacedPiece.
func Place(pos Position, piece Piece) PlacedPiece {
	return PlacedPiece{Position: pos, Piece: piece}
}

// Constants for board dimensions.
const (
	BoardSize  = 8
	NumSquares = BoardSize * BoardSize
)
