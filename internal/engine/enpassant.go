package engine

import (
	"iter"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// EnPassantRule offers the en passant capture. It is available only on the
// move right after an enemy pawn's double step, which is read from the game's
// last recorded move.
type EnPassantRule struct{}

// Commands yields the en passant capture for the active player's pawn on from, if any.
func (EnPassantRule) Commands(g *Game, from chess.Position) iter.Seq[Command] {
	return func(yield func(Command) bool) {
		colour := g.active.Colour
		if p, ok := g.board.PieceOf(from, colour); !ok || p.Kind != chess.Pawn {
			return
		}
		target, ok := doubleStepTarget(g)
		if !ok || target.Row != from.Row || fileDistance(target, from) != 1 {
			return
		}
		to, ok := target.Offset(colour.Forward(), 0)
		if !ok || !g.board.IsEmpty(to) {
			return
		}
		yield(EnPassantCommand{From: from, To: to, Captured: target})
	}
}

// Available reports whether any active pawn could capture en passant. Used for
// position identity in repetition detection.
func (r EnPassantRule) Available(g *Game) (file int, ok bool) {
	target, ok := doubleStepTarget(g)
	if !ok {
		return 0, false
	}
	for _, dc := range pawnCaptureDc {
		if from, onBoard := target.Offset(0, dc); onBoard {
			for range r.Commands(g, from) {
				return target.Col, true
			}
		}
	}
	return 0, false
}

// doubleStepTarget returns the square of the passive player's pawn if the last
// recorded move was that pawn's two-square advance.
func doubleStepTarget(g *Game) (chess.Position, bool) {
	rec, ok := g.LastUpdate()
	if !ok {
		return chess.Position{}, false
	}
	m, ok := rec.Command.(MoveCommand)
	if !ok {
		return chess.Position{}, false
	}
	p, ok := g.board.PieceOf(m.To, g.passive.Colour)
	if !ok || p.Kind != chess.Pawn {
		return chess.Position{}, false
	}
	if m.From.Col != m.To.Col || m.From.Row != p.Colour.PawnRow() || rankDistance(m.To, m.From) != 2 {
		return chess.Position{}, false
	}
	return m.To, true
}
