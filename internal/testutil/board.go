package testutil

import (
	"fmt"
	"testing"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// ParseBoard builds a board from eight diagram rows, rank 8 first. Uppercase
// letters are white pieces, lowercase black, '.' an empty square.
//
//	ParseBoard(
//		"....k...",
//		"........",
//		...
//		"....K...",
//	)
func ParseBoard(rows ...string) (*chess.Board, error) {
	if len(rows) != chess.BoardSize {
		return nil, fmt.Errorf("diagram has %d rows, want %d", len(rows), chess.BoardSize)
	}
	var placed []chess.PlacedPiece
	for i, line := range rows {
		if len(line) != chess.BoardSize {
			return nil, fmt.Errorf("diagram row %d is %q, want %d squares", i+1, line, chess.BoardSize)
		}
		row := chess.BoardSize - 1 - i
		for col := 0; col < chess.BoardSize; col++ {
			c := line[col]
			if c == '.' {
				continue
			}
			kind, ok := chess.KindFromLetter(c)
			if !ok {
				return nil, fmt.Errorf("diagram row %d: invalid piece character %c", i+1, c)
			}
			colour := chess.White
			if c >= 'a' && c <= 'z' {
				colour = chess.Black
			}
			placed = append(placed, chess.Place(chess.Pos(row, col), chess.MakePiece(colour, kind)))
		}
	}
	return chess.NewBoard(placed...), nil
}

// MustBoard is ParseBoard that calls t.Fatal on a malformed diagram.
func MustBoard(t testing.TB, rows ...string) *chess.Board {
	t.Helper()
	board, err := ParseBoard(rows...)
	if err != nil {
		t.Fatalf("failed to parse test board: %v", err)
	}
	return board
}

// Sq is chess.MustPosition, shortened for table-driven tests.
func Sq(name string) chess.Position {
	return chess.MustPosition(name)
}
