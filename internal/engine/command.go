package engine

import (
	"github.com/lgbarn/chessrules-go/internal/chess"
)

// Command is an executable state transition. Execute never modifies g; it
// returns the successor state, or false when the command does not apply to g.
//
// The set of commands is closed: MoveCommand, CaptureCommand, CastlingCommand,
// EnPassantCommand, PromotionCommand, SequenceCommand, EndTurnCommand and
// SetLastUpdateCommand.
type Command interface {
	Execute(g *Game) (*Game, bool)
	String() string
	command()
}

// MoveCommand moves the active player's piece to an empty square.
type MoveCommand struct {
	From chess.Position
	To   chess.Position
}

func (MoveCommand) command() {}

// Execute implements Command.
func (c MoveCommand) Execute(g *Game) (*Game, bool) {
	if _, ok := g.board.PieceOf(c.From, g.active.Colour); !ok {
		return nil, false
	}
	if !g.board.IsEmpty(c.To) {
		return nil, false
	}
	return g.withBoard(g.board.Move(c.From, c.To)), true
}

func (c MoveCommand) String() string {
	return c.From.String() + c.To.String()
}

// CaptureCommand moves the active player's piece onto a square held by the
// passive player, removing the captured piece.
type CaptureCommand struct {
	From chess.Position
	To   chess.Position
}

func (CaptureCommand) command() {}

// Execute implements Command.
func (c CaptureCommand) Execute(g *Game) (*Game, bool) {
	if _, ok := g.board.PieceOf(c.From, g.active.Colour); !ok {
		return nil, false
	}
	if _, ok := g.board.PieceOf(c.To, g.passive.Colour); !ok {
		return nil, false
	}
	return g.withBoard(g.board.Move(c.From, c.To)), true
}

func (c CaptureCommand) String() string {
	return c.From.String() + "x" + c.To.String()
}

// EnPassantCommand moves a pawn diagonally onto an empty square and removes
// the enemy pawn standing on Captured.
type EnPassantCommand struct {
	From     chess.Position
	To       chess.Position
	Captured chess.Position
}

func (EnPassantCommand) command() {}

// Execute implements Command.
func (c EnPassantCommand) Execute(g *Game) (*Game, bool) {
	if p, ok := g.board.PieceOf(c.From, g.active.Colour); !ok || p.Kind != chess.Pawn {
		return nil, false
	}
	if p, ok := g.board.PieceOf(c.Captured, g.passive.Colour); !ok || p.Kind != chess.Pawn {
		return nil, false
	}
	if !g.board.IsEmpty(c.To) {
		return nil, false
	}
	return g.withBoard(g.board.Move(c.From, c.To).Without(c.Captured)), true
}

func (c EnPassantCommand) String() string {
	return c.From.String() + "x" + c.To.String() + " e.p."
}

// CastlingCommand relocates the king and a rook in one step. In Chess960
// setups either destination may be the other piece's origin.
type CastlingCommand struct {
	KingFrom chess.Position
	KingTo   chess.Position
	RookFrom chess.Position
	RookTo   chess.Position
}

func (CastlingCommand) command() {}

// Execute implements Command.
func (c CastlingCommand) Execute(g *Game) (*Game, bool) {
	colour := g.active.Colour
	king, ok := g.board.PieceOf(c.KingFrom, colour)
	if !ok || king.Kind != chess.King {
		return nil, false
	}
	rook, ok := g.board.PieceOf(c.RookFrom, colour)
	if !ok || rook.Kind != chess.Rook {
		return nil, false
	}
	for _, dest := range []chess.Position{c.KingTo, c.RookTo} {
		if dest != c.KingFrom && dest != c.RookFrom && !g.board.IsEmpty(dest) {
			return nil, false
		}
	}
	board := g.board.Without(c.KingFrom).Without(c.RookFrom).
		With(c.KingTo, king).
		With(c.RookTo, rook)
	return g.withBoard(board), true
}

// Kingside reports whether the castling rook starts on the king's h-file side.
func (c CastlingCommand) Kingside() bool {
	return c.RookFrom.Col > c.KingFrom.Col
}

func (c CastlingCommand) String() string {
	if c.Kingside() {
		return "O-O"
	}
	return "O-O-O"
}

// PromotionCommand executes a pawn move or capture and replaces the pawn on
// its destination with a piece of kind Kind.
type PromotionCommand struct {
	Move Command
	Kind chess.PieceKind
}

func (PromotionCommand) command() {}

// Execute implements Command.
func (c PromotionCommand) Execute(g *Game) (*Game, bool) {
	var from, to chess.Position
	switch m := c.Move.(type) {
	case MoveCommand:
		from, to = m.From, m.To
	case CaptureCommand:
		from, to = m.From, m.To
	default:
		return nil, false
	}
	colour := g.active.Colour
	if p, ok := g.board.PieceOf(from, colour); !ok || p.Kind != chess.Pawn {
		return nil, false
	}
	if to.Row != colour.PromotionRow() {
		return nil, false
	}
	next, ok := c.Move.Execute(g)
	if !ok {
		return nil, false
	}
	next.board = next.board.With(to, chess.MakePiece(colour, c.Kind))
	return next, true
}

func (c PromotionCommand) String() string {
	if c.Move == nil {
		return "=" + string(c.Kind.Letter())
	}
	return c.Move.String() + "=" + string(c.Kind.Letter())
}

// SequenceCommand executes First and then Second on its result. If either
// step yields no result the whole sequence yields no result.
type SequenceCommand struct {
	First  Command
	Second Command
}

func (SequenceCommand) command() {}

// Execute implements Command.
func (c SequenceCommand) Execute(g *Game) (*Game, bool) {
	if c.First == nil || c.Second == nil {
		return nil, false
	}
	mid, ok := c.First.Execute(g)
	if !ok {
		return nil, false
	}
	return c.Second.Execute(mid)
}

func (c SequenceCommand) String() string {
	first, second := "<nil>", "<nil>"
	if c.First != nil {
		first = c.First.String()
	}
	if c.Second != nil {
		second = c.Second.String()
	}
	return first + "; " + second
}

// Then chains two commands.
func Then(first, second Command) Command {
	return SequenceCommand{First: first, Second: second}
}

// Sequence chains commands left to right.
func Sequence(first Command, rest ...Command) Command {
	cmd := first
	for _, next := range rest {
		cmd = Then(cmd, next)
	}
	return cmd
}

// EndTurnCommand hands the move to the other player. The board is untouched.
type EndTurnCommand struct{}

func (EndTurnCommand) command() {}

// Execute implements Command.
func (EndTurnCommand) Execute(g *Game) (*Game, bool) {
	next := g.clone()
	next.active, next.passive = g.passive, g.active
	return next, true
}

func (EndTurnCommand) String() string { return "end-turn" }

// SetLastUpdateCommand stamps a game with the record of the move that
// produced it and advances the history-derived counters.
type SetLastUpdateCommand struct {
	Previous *Game
	Command  Command
}

func (SetLastUpdateCommand) command() {}

// Execute implements Command.
func (c SetLastUpdateCommand) Execute(g *Game) (*Game, bool) {
	if c.Command == nil {
		return nil, false
	}
	next := g.clone()
	next.last = &Record{Previous: c.Previous, Command: c.Command}
	next.touched |= touchedBy(c.Command)
	next.ply++
	if resetsClock(next.board, c.Command) {
		next.halfmoves = 0
	} else {
		next.halfmoves++
	}
	return next, true
}

func (c SetLastUpdateCommand) String() string {
	if c.Command == nil {
		return "record(<nil>)"
	}
	return "record(" + c.Command.String() + ")"
}

// Endpoints returns the squares a move command travels between. For castling
// these are the king's squares.
func Endpoints(cmd Command) (from, to chess.Position, ok bool) {
	switch c := cmd.(type) {
	case MoveCommand:
		return c.From, c.To, true
	case CaptureCommand:
		return c.From, c.To, true
	case EnPassantCommand:
		return c.From, c.To, true
	case CastlingCommand:
		return c.KingFrom, c.KingTo, true
	case PromotionCommand:
		return Endpoints(c.Move)
	case SequenceCommand:
		return Endpoints(c.First)
	}
	return chess.Position{}, chess.Position{}, false
}

// PromotionKind returns the piece a promotion command promotes to.
func PromotionKind(cmd Command) (chess.PieceKind, bool) {
	switch c := cmd.(type) {
	case PromotionCommand:
		return c.Kind, true
	case SequenceCommand:
		return PromotionKind(c.First)
	}
	return chess.NoPiece, false
}

// IsCapture reports whether cmd removes an enemy piece.
func IsCapture(cmd Command) bool {
	switch c := cmd.(type) {
	case CaptureCommand, EnPassantCommand:
		return true
	case PromotionCommand:
		return IsCapture(c.Move)
	case SequenceCommand:
		return IsCapture(c.First) || IsCapture(c.Second)
	}
	return false
}

func touchedBy(cmd Command) uint64 {
	switch c := cmd.(type) {
	case MoveCommand:
		return squareBit(c.From) | squareBit(c.To)
	case CaptureCommand:
		return squareBit(c.From) | squareBit(c.To)
	case EnPassantCommand:
		return squareBit(c.From) | squareBit(c.To) | squareBit(c.Captured)
	case CastlingCommand:
		return squareBit(c.KingFrom) | squareBit(c.KingTo) | squareBit(c.RookFrom) | squareBit(c.RookTo)
	case PromotionCommand:
		return touchedBy(c.Move)
	case SequenceCommand:
		return touchedBy(c.First) | touchedBy(c.Second)
	}
	return 0
}

// resetsClock reports whether cmd was a pawn move or a capture. board is the
// position after the move.
func resetsClock(board *chess.Board, cmd Command) bool {
	if IsCapture(cmd) {
		return true
	}
	if _, ok := PromotionKind(cmd); ok {
		return true
	}
	if m, ok := cmd.(MoveCommand); ok {
		p, found := board.Piece(m.To)
		return found && p.Kind == chess.Pawn
	}
	return false
}
