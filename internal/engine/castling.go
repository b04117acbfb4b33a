package engine

import (
	"cmp"
	"iter"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// Castling destination files. Chess960 uses the same files as standard chess.
const (
	kingsideKingCol  = 6
	kingsideRookCol  = 5
	queensideKingCol = 2
	queensideRookCol = 3
)

// CastlingRule offers castling moves. Rights come from history: the king and
// the rook must stand on squares no recorded move has touched.
type CastlingRule struct {
	threats ThreatAnalyzer
}

// Commands yields the castling moves available to the active king on from.
func (r CastlingRule) Commands(g *Game, from chess.Position) iter.Seq[Command] {
	return func(yield func(Command) bool) {
		colour := g.active.Colour
		if !kingAtHome(g, from, colour) {
			return
		}
		// Squares behind the king must count as attacked when the king moves
		// along the line of an enemy slider, so threats are judged without it.
		scan := g.board.Without(from)
		opponent := colour.Opposite()
		if r.threats.IsThreatened(scan, from, opponent) {
			return
		}

		for _, dir := range []int{1, -1} {
			rook, ok := castlingRook(g, from, colour, dir)
			if !ok {
				continue
			}
			kingTo, rookTo := castlingTargets(from.Row, dir)
			if !pathClear(g.board, from, kingTo, from, rook) || !pathClear(g.board, rook, rookTo, from, rook) {
				continue
			}
			if r.pathThreatened(scan, from, kingTo, opponent) {
				continue
			}
			cmd := CastlingCommand{KingFrom: from, KingTo: kingTo, RookFrom: rook, RookTo: rookTo}
			if !yield(cmd) {
				return
			}
		}
	}
}

// Rights returns the rook squares colour may still castle with, judged from
// history alone (ignoring blocked paths and attacks).
func (CastlingRule) Rights(g *Game, colour chess.Colour) []chess.Position {
	king, ok := g.board.King(colour)
	if !ok || !kingAtHome(g, king, colour) {
		return nil
	}
	var rooks []chess.Position
	for _, dir := range []int{1, -1} {
		if rook, ok := castlingRook(g, king, colour, dir); ok {
			rooks = append(rooks, rook)
		}
	}
	return rooks
}

func (r CastlingRule) pathThreatened(board *chess.Board, from, to chess.Position, by chess.Colour) bool {
	step := cmp.Compare(to.Col, from.Col)
	for col := from.Col; ; col += step {
		if r.threats.IsThreatened(board, chess.Pos(from.Row, col), by) {
			return true
		}
		if col == to.Col {
			return false
		}
	}
}

func kingAtHome(g *Game, sq chess.Position, colour chess.Colour) bool {
	p, ok := g.board.PieceOf(sq, colour)
	return ok && p.Kind == chess.King && sq.Row == colour.HomeRow() && !g.HasMoved(sq)
}

// castlingRook finds the outermost unmoved rook on the king's row in direction
// dir (+1 towards the h-file, -1 towards the a-file).
func castlingRook(g *Game, king chess.Position, colour chess.Colour, dir int) (chess.Position, bool) {
	edge := 0
	if dir > 0 {
		edge = chess.BoardSize - 1
	}
	for col := edge; col != king.Col; col -= dir {
		sq := chess.Pos(king.Row, col)
		if p, ok := g.board.PieceOf(sq, colour); ok && p.Kind == chess.Rook && !g.HasMoved(sq) {
			return sq, true
		}
	}
	return chess.Position{}, false
}

func castlingTargets(row, dir int) (kingTo, rookTo chess.Position) {
	if dir > 0 {
		return chess.Pos(row, kingsideKingCol), chess.Pos(row, kingsideRookCol)
	}
	return chess.Pos(row, queensideKingCol), chess.Pos(row, queensideRookCol)
}

// pathClear reports whether every square from a to b inclusive on their
// shared row is empty, ignoring the castling king and rook themselves.
func pathClear(board *chess.Board, a, b, king, rook chess.Position) bool {
	lo, hi := min(a.Col, b.Col), max(a.Col, b.Col)
	for col := lo; col <= hi; col++ {
		sq := chess.Pos(a.Row, col)
		if sq == king || sq == rook {
			continue
		}
		if !board.IsEmpty(sq) {
			return false
		}
	}
	return true
}
