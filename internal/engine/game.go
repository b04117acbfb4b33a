// Package engine implements the chess rules: movement generation, threat and
// check analysis, special moves, end-of-game classification and the command
// pipeline that produces successor game states.
package engine

import (
	"iter"

	"github.com/google/uuid"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// Player is one side of a game. Castling and en passant eligibility are
// derived from the game's history, so a player carries no extra flags.
type Player struct {
	Colour chess.Colour
}

// Record describes how a game state was reached: the state it was reached
// from and the move command that was applied.
type Record struct {
	Previous *Game
	Command  Command
}

// Game is an immutable snapshot of a chess game. New snapshots are produced
// only by setup and by executing commands.
type Game struct {
	id      uuid.UUID
	board   *chess.Board
	active  Player
	passive Player
	last    *Record

	// Derived from history by SetLastUpdateCommand.
	touched   uint64 // bit per square a recorded move started or ended on
	halfmoves int    // plies since the last pawn move or capture
	ply       int
}

// Update is one legal future of a game: the resulting state and the command
// that produced it.
type Update struct {
	Game    *Game
	Command Command
}

// GameOption configures a game built with NewGame.
type GameOption func(*Game)

// WithID sets the game lineage id.
func WithID(id uuid.UUID) GameOption {
	return func(g *Game) { g.id = id }
}

// WithMoved marks squares as already moved from, which removes castling
// rights for pieces standing on them.
func WithMoved(squares ...chess.Position) GameOption {
	return func(g *Game) {
		for _, sq := range squares {
			g.touched |= squareBit(sq)
		}
	}
}

// WithLastMove records cmd as the move that led to this position, with no
// predecessor state. Used to set up en passant opportunities.
func WithLastMove(cmd Command) GameOption {
	return func(g *Game) { g.last = &Record{Command: cmd} }
}

// WithHalfmoveClock sets the number of plies since the last pawn move or capture.
func WithHalfmoveClock(n int) GameOption {
	return func(g *Game) { g.halfmoves = n }
}

// NewGame creates a game from an arbitrary board with the given side to move.
func NewGame(board *chess.Board, toMove chess.Colour, opts ...GameOption) *Game {
	g := &Game{
		id:      uuid.New(),
		board:   board,
		active:  Player{Colour: toMove},
		passive: Player{Colour: toMove.Opposite()},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the lineage id shared by a game and all of its successors.
func (g *Game) ID() uuid.UUID { return g.id }

// Board returns the current board.
func (g *Game) Board() *chess.Board { return g.board }

// Active returns the player to move.
func (g *Game) Active() Player { return g.active }

// Passive returns the player not to move.
func (g *Game) Passive() Player { return g.passive }

// Ply returns the number of recorded moves since setup.
func (g *Game) Ply() int { return g.ply }

// HalfmoveClock returns the number of plies since the last pawn move or capture.
func (g *Game) HalfmoveClock() int { return g.halfmoves }

// LastUpdate returns the record of the move that produced this state.
func (g *Game) LastUpdate() (Record, bool) {
	if g.last == nil {
		return Record{}, false
	}
	return *g.last, true
}

// HasMoved reports whether a recorded move started or ended on sq.
func (g *Game) HasMoved(sq chess.Position) bool {
	return g.touched&squareBit(sq) != 0
}

// History iterates backwards over the states that led to g, most recent first,
// starting with g itself.
func (g *Game) History() iter.Seq[*Game] {
	return func(yield func(*Game) bool) {
		for cur := g; cur != nil; {
			if !yield(cur) {
				return
			}
			if cur.last == nil {
				return
			}
			cur = cur.last.Previous
		}
	}
}

// clone returns a shallow copy for a command to modify.
func (g *Game) clone() *Game {
	next := *g
	return &next
}

func (g *Game) withBoard(b *chess.Board) *Game {
	next := g.clone()
	next.board = b
	return next
}

func squareBit(sq chess.Position) uint64 {
	if !sq.Valid() {
		return 0
	}
	return 1 << uint(sq.Index())
}
