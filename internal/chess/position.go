package chess

// Position is a (row, column) pair on the board. Row 0 is White's back rank,
// column 0 is the a-file.
type Position struct {
	Row int
	Col int
}

// Pos creates a position.
func Pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

// PositionFromIndex converts a square index (row*8 + col) back to a position.
func PositionFromIndex(i int) Position {
	return Position{Row: i / BoardSize, Col: i % BoardSize}
}

// Valid reports whether the position lies on the board.
func (p Position) Valid() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

// Index returns the square index, row-major from a1.
func (p Position) Index() int {
	return p.Row*BoardSize + p.Col
}

// Offset returns the position shifted by the given deltas and whether it is
// still on the board.
func (p Position) Offset(dRow, dCol int) (Position, bool) {
	next := Position{Row: p.Row + dRow, Col: p.Col + dCol}
	return next, next.Valid()
}

// Less orders positions row-major.
func (p Position) Less(o Position) bool {
	if p.Row != o.Row {
		return p.Row < o.Row
	}
	return p.Col < o.Col
}

// Compare returns -1, 0 or +1, for use with slices.SortFunc.
func (p Position) Compare(o Position) int {
	switch {
	case p.Less(o):
		return -1
	case o.Less(p):
		return 1
	}
	return 0
}

// IsLight reports whether the square is a light square.
func (p Position) IsLight() bool {
	return (p.Row+p.Col)%2 == 1
}

// String returns the square name, e.g. "e2".
func (p Position) String() string {
	if !p.Valid() {
		return "??"
	}
	return string([]byte{byte('a' + p.Col), byte('1' + p.Row)})
}

// ParsePosition converts a square name such as "e2" to a position.
func ParsePosition(s string) (Position, bool) {
	if len(s) != 2 {
		return Position{}, false
	}
	p := Position{Row: int(s[1]) - '1', Col: int(s[0]) - 'a'}
	return p, p.Valid()
}

// MustPosition is like ParsePosition but panics on malformed input.
// Intended for constants and tests.
func MustPosition(s string) Position {
	p, ok := ParsePosition(s)
	if !ok {
		panic("chess: invalid square " + s)
	}
	return p
}
