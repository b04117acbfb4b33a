package engine

import (
	"fmt"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// BackRank lists the pieces of a back rank from the a-file to the h-file.
type BackRank [chess.BoardSize]chess.PieceKind

// Number of Chess960 starting arrays.
const Chess960Positions = 960

// StandardChess960Index is the Chess960 number of the standard array.
const StandardChess960Index = 518

// StandardBackRank returns the standard chess back rank.
func StandardBackRank() BackRank {
	return BackRank{chess.Rook, chess.Knight, chess.Bishop, chess.Queen, chess.King, chess.Bishop, chess.Knight, chess.Rook}
}

// Knight placements among the five squares left after bishops and queen,
// indexed by the knight digit of the Chess960 number.
var knightPlacements = [10][2]int{
	{0, 1}, {0, 2}, {0, 3}, {0, 4},
	{1, 2}, {1, 3}, {1, 4},
	{2, 3}, {2, 4},
	{3, 4},
}

// BackRank960 returns Chess960 starting array number n (0-959) using
// Scharnagl's numbering, in which 518 is the standard array.
func BackRank960(n int) (BackRank, error) {
	if n < 0 || n >= Chess960Positions {
		return BackRank{}, fmt.Errorf("chess960 index %d out of range: %w", n, errors.ErrInvalidPosition)
	}
	var rank BackRank

	n, light := n/4, n%4
	rank[2*light+1] = chess.Bishop
	n, dark := n/4, n%4
	rank[2*dark] = chess.Bishop

	n, queen := n/6, n%6
	rank[emptyFiles(rank)[queen]] = chess.Queen

	empties := emptyFiles(rank)
	for _, i := range knightPlacements[n] {
		rank[empties[i]] = chess.Knight
	}

	// King between the two rooks on the last three files.
	for i, file := range emptyFiles(rank) {
		if i == 1 {
			rank[file] = chess.King
		} else {
			rank[file] = chess.Rook
		}
	}
	return rank, nil
}

func emptyFiles(rank BackRank) []int {
	var files []int
	for f, kind := range rank {
		if kind == chess.NoPiece {
			files = append(files, f)
		}
	}
	return files
}

// Valid reports whether the back rank can start a Chess960 game: one king
// strictly between two rooks, bishops on opposite square colours, two knights
// and one queen.
func (r BackRank) Valid() bool {
	counts := make(map[chess.PieceKind]int)
	var rooks, bishops []int
	king := -1
	for f, kind := range r {
		counts[kind]++
		switch kind {
		case chess.Rook:
			rooks = append(rooks, f)
		case chess.Bishop:
			bishops = append(bishops, f)
		case chess.King:
			king = f
		}
	}
	if counts[chess.King] != 1 || counts[chess.Rook] != 2 || counts[chess.Bishop] != 2 ||
		counts[chess.Knight] != 2 || counts[chess.Queen] != 1 {
		return false
	}
	if !(rooks[0] < king && king < rooks[1]) {
		return false
	}
	return bishops[0]%2 != bishops[1]%2
}

// String returns the rank as piece letters, e.g. "RNBQKBNR".
func (r BackRank) String() string {
	letters := make([]byte, len(r))
	for i, kind := range r {
		letters[i] = kind.Letter()
	}
	return string(letters)
}

// SetupBoard places both back ranks and full pawn rows.
func SetupBoard(white, black BackRank) *chess.Board {
	var placed []chess.PlacedPiece
	for col := 0; col < chess.BoardSize; col++ {
		placed = append(placed,
			chess.Place(chess.Pos(chess.White.HomeRow(), col), chess.W(white[col])),
			chess.Place(chess.Pos(chess.White.PawnRow(), col), chess.W(chess.Pawn)),
			chess.Place(chess.Pos(chess.Black.PawnRow(), col), chess.B(chess.Pawn)),
			chess.Place(chess.Pos(chess.Black.HomeRow(), col), chess.B(black[col])),
		)
	}
	return chess.NewBoard(placed...)
}
