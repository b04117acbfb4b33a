package engine

import (
	"iter"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// PromotionRule turns pawn moves that reach the last row into one promotion
// command per allowed piece.
type PromotionRule struct {
	choices []chess.PieceKind
}

// NewPromotionRule creates a rule promoting to the given kinds, in order.
func NewPromotionRule(choices []chess.PieceKind) PromotionRule {
	return PromotionRule{choices: append([]chess.PieceKind(nil), choices...)}
}

// Commands yields base unchanged unless it carries a pawn of colour to its
// promotion row; then it yields a PromotionCommand per choice and never base.
func (r PromotionRule) Commands(base Command, to chess.Position, colour chess.Colour) iter.Seq[Command] {
	return func(yield func(Command) bool) {
		if to.Row != colour.PromotionRow() {
			yield(base)
			return
		}
		for _, kind := range r.choices {
			if !yield(PromotionCommand{Move: base, Kind: kind}) {
				return
			}
		}
	}
}
