package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// Direction and jump tables shared by move generation and threat detection.
var (
	knightJumps   = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingSteps     = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs  = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs  = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	allSlideDirs  = append(append([][2]int{}, diagonalDirs...), straightDirs...)
	pawnCaptureDc = []int{-1, 1}
)

// IsThreatened returns true if any piece of byColour attacks pos on board.
// The scan works from piece geometry only and never consults check safety.
func IsThreatened(board *chess.Board, pos chess.Position, byColour chess.Colour) bool {
	// Pawns attack diagonally forward, so look one row behind pos from the
	// attacker's point of view.
	pawn := chess.MakePiece(byColour, chess.Pawn)
	for _, dc := range pawnCaptureDc {
		if sq, ok := pos.Offset(-byColour.Forward(), dc); ok {
			if p, found := board.Piece(sq); found && p == pawn {
				return true
			}
		}
	}

	knight := chess.MakePiece(byColour, chess.Knight)
	for _, j := range knightJumps {
		if sq, ok := pos.Offset(j[0], j[1]); ok {
			if p, found := board.Piece(sq); found && p == knight {
				return true
			}
		}
	}

	king := chess.MakePiece(byColour, chess.King)
	for _, s := range kingSteps {
		if sq, ok := pos.Offset(s[0], s[1]); ok {
			if p, found := board.Piece(sq); found && p == king {
				return true
			}
		}
	}

	bishop := chess.MakePiece(byColour, chess.Bishop)
	rook := chess.MakePiece(byColour, chess.Rook)
	queen := chess.MakePiece(byColour, chess.Queen)
	if slidingAttack(board, pos, diagonalDirs, bishop, queen) {
		return true
	}
	return slidingAttack(board, pos, straightDirs, rook, queen)
}

// slidingAttack walks each direction from pos until the first occupied square
// and reports whether it holds one of the given attackers.
func slidingAttack(board *chess.Board, pos chess.Position, dirs [][2]int, attackers ...chess.Piece) bool {
	for _, dir := range dirs {
		sq, ok := pos.Offset(dir[0], dir[1])
		for ok {
			if p, found := board.Piece(sq); found {
				for _, a := range attackers {
					if p == a {
						return true
					}
				}
				break // Blocked
			}
			sq, ok = sq.Offset(dir[0], dir[1])
		}
	}
	return false
}

// ThreatAnalyzer answers attack queries for a board.
type ThreatAnalyzer struct{}

// IsThreatened reports whether pos is attacked by byColour.
func (ThreatAnalyzer) IsThreatened(board *chess.Board, pos chess.Position, byColour chess.Colour) bool {
	return IsThreatened(board, pos, byColour)
}
