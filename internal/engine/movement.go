package engine

import (
	"iter"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// MovementRule produces the pseudo-legal commands for a piece: ordinary moves
// and captures plus castling, en passant and promotion. Commands may still
// leave the mover's king in check; the rulebook filters those out.
type MovementRule struct {
	castling  CastlingRule
	enPassant EnPassantRule
	promotion PromotionRule
}

// NewMovementRule creates a movement rule with the given promotion choices.
func NewMovementRule(promotionChoices []chess.PieceKind) MovementRule {
	return MovementRule{promotion: NewPromotionRule(promotionChoices)}
}

// Commands lazily yields the candidate commands for the piece on from.
// It yields nothing for an empty square.
func (r MovementRule) Commands(g *Game, from chess.Position) iter.Seq[Command] {
	return func(yield func(Command) bool) {
		piece, ok := g.board.Piece(from)
		if !ok {
			return
		}
		board, colour := g.board, piece.Colour

		switch piece.Kind {
		case chess.Pawn:
			r.pawnCommands(g, from, colour, yield)
		case chess.Knight:
			stepCommands(board, from, colour, knightJumps, yield)
		case chess.Bishop:
			slideCommands(board, from, colour, diagonalDirs, yield)
		case chess.Rook:
			slideCommands(board, from, colour, straightDirs, yield)
		case chess.Queen:
			slideCommands(board, from, colour, allSlideDirs, yield)
		case chess.King:
			if !stepCommands(board, from, colour, kingSteps, yield) {
				return
			}
			for cmd := range r.castling.Commands(g, from) {
				if !yield(cmd) {
					return
				}
			}
		}
	}
}

// stepCommands yields single-step moves and captures for knights and kings.
// It returns false once yield asks to stop.
func stepCommands(board *chess.Board, from chess.Position, colour chess.Colour, offsets [][2]int, yield func(Command) bool) bool {
	for _, off := range offsets {
		to, ok := from.Offset(off[0], off[1])
		if !ok {
			continue
		}
		cmd, ok := moveOrCapture(board, from, to, colour)
		if !ok {
			continue
		}
		if !yield(cmd) {
			return false
		}
	}
	return true
}

// slideCommands yields moves along each direction until blocked; an enemy
// piece on the blocking square can be captured.
func slideCommands(board *chess.Board, from chess.Position, colour chess.Colour, dirs [][2]int, yield func(Command) bool) bool {
	for _, dir := range dirs {
		to, ok := from.Offset(dir[0], dir[1])
		for ok {
			cmd, legal := moveOrCapture(board, from, to, colour)
			if legal && !yield(cmd) {
				return false
			}
			if !board.IsEmpty(to) {
				break // Blocked
			}
			to, ok = to.Offset(dir[0], dir[1])
		}
	}
	return true
}

func moveOrCapture(board *chess.Board, from, to chess.Position, colour chess.Colour) (Command, bool) {
	target, occupied := board.Piece(to)
	switch {
	case !occupied:
		return MoveCommand{From: from, To: to}, true
	case target.Colour != colour:
		return CaptureCommand{From: from, To: to}, true
	}
	return nil, false
}

func (r MovementRule) pawnCommands(g *Game, from chess.Position, colour chess.Colour, yield func(Command) bool) bool {
	board := g.board
	fwd := colour.Forward()

	// Pushes never capture.
	if one, ok := from.Offset(fwd, 0); ok && board.IsEmpty(one) {
		for cmd := range r.promotion.Commands(MoveCommand{From: from, To: one}, one, colour) {
			if !yield(cmd) {
				return false
			}
		}
		if from.Row == colour.PawnRow() {
			if two, ok := from.Offset(2*fwd, 0); ok && board.IsEmpty(two) {
				if !yield(MoveCommand{From: from, To: two}) {
					return false
				}
			}
		}
	}

	// Diagonals only capture.
	for _, dc := range pawnCaptureDc {
		to, ok := from.Offset(fwd, dc)
		if !ok {
			continue
		}
		if _, enemy := board.PieceOf(to, colour.Opposite()); !enemy {
			continue
		}
		for cmd := range r.promotion.Commands(CaptureCommand{From: from, To: to}, to, colour) {
			if !yield(cmd) {
				return false
			}
		}
	}

	for cmd := range r.enPassant.Commands(g, from) {
		if !yield(cmd) {
			return false
		}
	}
	return true
}
