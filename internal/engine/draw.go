package engine

import (
	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/hashing"
)

// DrawReason identifies an automatic draw condition.
type DrawReason int

const (
	NoDraw DrawReason = iota
	InsufficientMaterial
	SeventyFiveMoveRule
	FivefoldRepetition
)

// String returns the reason name.
func (d DrawReason) String() string {
	names := []string{"None", "Insufficient material", "75-move rule", "Fivefold repetition"}
	if int(d) < len(names) {
		return names[d]
	}
	return "Unknown"
}

// Plies without a pawn move or capture that end the game (75 moves each).
const seventyFiveMovePlies = 150

// DrawRule detects draws that need no claim.
type DrawRule struct {
	castling  CastlingRule
	enPassant EnPassantRule
}

// Reason returns the first automatic draw condition g satisfies.
func (r DrawRule) Reason(g *Game) DrawReason {
	if HasInsufficientMaterial(g.board) {
		return InsufficientMaterial
	}
	if g.halfmoves >= seventyFiveMovePlies {
		return SeventyFiveMoveRule
	}
	if r.Repetitions(g) >= 5 {
		return FivefoldRepetition
	}
	return NoDraw
}

// Repetitions counts how often g's position has occurred, g included, since
// the last pawn move or capture.
func (r DrawRule) Repetitions(g *Game) int {
	key := r.PositionKey(g)
	count := 1
	cur := g
	for i := 0; i < g.halfmoves; i++ {
		if cur.last == nil || cur.last.Previous == nil {
			break
		}
		cur = cur.last.Previous
		if cur.active == g.active && r.PositionKey(cur) == key {
			count++
		}
	}
	return count
}

// PositionKey identifies a position for repetition purposes: the pieces, the
// side to move, remaining castling rights and an available en passant capture.
func (r DrawRule) PositionKey(g *Game) uint64 {
	key := hashing.BoardHash(g.board, g.active.Colour)
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		for _, rook := range r.castling.Rights(g, colour) {
			key ^= hashing.CastlingKey(colour, rook.Col)
		}
	}
	if file, ok := r.enPassant.Available(g); ok {
		key ^= hashing.EnPassantKey(file)
	}
	return key
}

// HasInsufficientMaterial returns true if neither side can possibly mate:
// K vs K, K+B vs K, K+N vs K, or K+B vs K+B with bishops on the same square colour.
func HasInsufficientMaterial(board *chess.Board) bool {
	var whitePieces, blackPieces []chess.PieceKind
	var whiteBishopOnLight, blackBishopOnLight bool

	for pos, piece := range board.All() {
		switch piece.Kind {
		case chess.King:
			continue
		case chess.Pawn, chess.Rook, chess.Queen:
			return false
		}
		if piece.Colour == chess.White {
			whitePieces = append(whitePieces, piece.Kind)
			if piece.Kind == chess.Bishop {
				whiteBishopOnLight = pos.IsLight()
			}
		} else {
			blackPieces = append(blackPieces, piece.Kind)
			if piece.Kind == chess.Bishop {
				blackBishopOnLight = pos.IsLight()
			}
		}
	}

	switch {
	case len(whitePieces) == 0 && len(blackPieces) == 0:
		return true
	case len(whitePieces) == 0 && len(blackPieces) == 1:
		return blackPieces[0] == chess.Bishop || blackPieces[0] == chess.Knight
	case len(blackPieces) == 0 && len(whitePieces) == 1:
		return whitePieces[0] == chess.Bishop || whitePieces[0] == chess.Knight
	case len(whitePieces) == 1 && len(blackPieces) == 1:
		return whitePieces[0] == chess.Bishop && blackPieces[0] == chess.Bishop &&
			whiteBishopOnLight == blackBishopOnLight
	}
	return false
}
