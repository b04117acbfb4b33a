package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// IsInCheck returns true if the given colour's king is attacked on board.
// A board without that king is never in check.
func IsInCheck(board *chess.Board, colour chess.Colour) bool {
	king, ok := board.King(colour)
	if !ok {
		return false
	}
	return IsThreatened(board, king, colour.Opposite())
}

// CheckRule determines whether a player's king is in check.
type CheckRule struct {
	threats ThreatAnalyzer
}

// Check reports whether player's king is attacked by the opposing colour.
func (r CheckRule) Check(g *Game, player Player) bool {
	king, ok := g.board.King(player.Colour)
	if !ok {
		return false
	}
	return r.threats.IsThreatened(g.board, king, player.Colour.Opposite())
}
