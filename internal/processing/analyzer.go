// Package processing provides game replay, validation, and analysis over
// coordinate move lists.
package processing

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/hashing"
)

// MoveRequest is a move in coordinate notation: origin, destination and an
// optional promotion piece. Castling may be written as the king's move or as
// the king moving onto its own rook.
type MoveRequest struct {
	From      chess.Position
	To        chess.Position
	Promotion chess.PieceKind
}

// String returns the request in coordinate notation, e.g. "e2e4" or "a7a8q".
func (m MoveRequest) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != chess.NoPiece {
		s += strings.ToLower(string(m.Promotion.Letter()))
	}
	return s
}

// ParseMove parses "e2e4", "e7e8q" or "e7e8=Q".
func ParseMove(s string) (MoveRequest, error) {
	s = strings.TrimSpace(s)
	if len(s) < 4 {
		return MoveRequest{}, errors.Wrapf(errors.ErrInvalidPosition, "move %q", s)
	}
	from, ok := chess.ParsePosition(s[0:2])
	if !ok {
		return MoveRequest{}, errors.Wrapf(errors.ErrInvalidPosition, "move %q", s)
	}
	to, ok := chess.ParsePosition(s[2:4])
	if !ok {
		return MoveRequest{}, errors.Wrapf(errors.ErrInvalidPosition, "move %q", s)
	}
	req := MoveRequest{From: from, To: to}

	rest := strings.TrimPrefix(s[4:], "=")
	switch len(rest) {
	case 0:
	case 1:
		kind, ok := chess.KindFromLetter(rest[0])
		if !ok || kind == chess.Pawn || kind == chess.King {
			return MoveRequest{}, errors.Wrapf(errors.ErrInvalidPosition, "promotion piece in %q", s)
		}
		req.Promotion = kind
	default:
		return MoveRequest{}, errors.Wrapf(errors.ErrInvalidPosition, "move %q", s)
	}
	return req, nil
}

// ParseMoves parses a list of moves separated by whitespace or commas.
func ParseMoves(s string) ([]MoveRequest, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	moves := make([]MoveRequest, 0, len(fields))
	for i, f := range fields {
		m, err := ParseMove(f)
		if err != nil {
			return nil, errors.Wrapf(err, "move %d", i+1)
		}
		moves = append(moves, m)
	}
	return moves, nil
}

// RequestFor returns the request that Resolve maps back to u. Castling moves
// where the king travels fewer than two files are written king-onto-rook so
// they cannot be mistaken for a plain king move.
func RequestFor(u engine.Update) MoveRequest {
	if c, ok := u.Command.(engine.CastlingCommand); ok {
		if d := c.KingTo.Col - c.KingFrom.Col; d > -2 && d < 2 {
			return MoveRequest{From: c.KingFrom, To: c.RookFrom}
		}
		return MoveRequest{From: c.KingFrom, To: c.KingTo}
	}
	from, to, _ := engine.Endpoints(u.Command)
	kind, _ := engine.PromotionKind(u.Command)
	return MoveRequest{From: from, To: to, Promotion: kind}
}

// Resolve finds the legal update matching req in g.
func Resolve(rb *engine.StandardRulebook, g *engine.Game, req MoveRequest) (engine.Update, error) {
	if p, ok := g.Board().PieceOf(req.To, g.Active().Colour); ok && p.Kind == chess.Rook {
		for u := range rb.Updates(g, req.From) {
			if c, ok := u.Command.(engine.CastlingCommand); ok && c.RookFrom == req.To {
				return u, nil
			}
		}
	}
	return rb.Play(g, req.From, req.To, req.Promotion)
}

// ReplayGame plays moves from start. On an illegal move it returns the
// updates played so far together with the error.
func ReplayGame(rb *engine.StandardRulebook, start *engine.Game, moves []MoveRequest) ([]engine.Update, error) {
	updates := make([]engine.Update, 0, len(moves))
	g := start
	for _, m := range moves {
		u, err := Resolve(rb, g, m)
		if err != nil {
			return updates, err
		}
		updates = append(updates, u)
		g = u.Game
	}
	return updates, nil
}

// ValidationResult holds the result of game validation.
type ValidationResult struct {
	Valid    bool
	ErrorPly int // 1-based index of the first rejected move
	ErrorMsg string
	Err      error
}

// ValidateGame checks that every move is legal in turn and that no move is
// played after the game has ended.
func ValidateGame(rb *engine.StandardRulebook, start *engine.Game, moves []MoveRequest) *ValidationResult {
	result := &ValidationResult{Valid: true}
	g := start
	for i, m := range moves {
		if status := rb.GetStatus(g); status.IsTerminal() {
			return invalid(result, i+1, fmt.Errorf("move %s after %s: %w", m, status, errors.ErrIllegalMove))
		}
		u, err := Resolve(rb, g, m)
		if err != nil {
			return invalid(result, i+1, err)
		}
		g = u.Game
	}
	return result
}

func invalid(result *ValidationResult, ply int, err error) *ValidationResult {
	result.Valid = false
	result.ErrorPly = ply
	result.Err = err
	result.ErrorMsg = fmt.Sprintf("illegal move at ply %d: %v", ply, err)
	return result
}

// GameAnalysis holds analysis results from replaying a game.
type GameAnalysis struct {
	Final      *engine.Game
	Status     engine.Status
	DrawReason engine.DrawReason
	Positions  []uint64 // position keys, start included

	Plies      int
	Captures   int
	Castles    int
	EnPassants int
	Promotions int

	HasFiftyMoveRule        bool
	Has75MoveRule           bool
	HasRepetition           bool
	Has5FoldRepetition      bool
	HasUnderpromotion       bool
	HasInsufficientMaterial bool
}

// RepetitionDetected returns true if some position occurred three times.
func (ga *GameAnalysis) RepetitionDetected() bool {
	return ga.HasRepetition
}

// UnderpromotionFound returns true if any pawn promoted to a non-queen.
func (ga *GameAnalysis) UnderpromotionFound() bool {
	return ga.HasUnderpromotion
}

// AnalyzeGame replays moves from start and records what happened along the way.
func AnalyzeGame(rb *engine.StandardRulebook, start *engine.Game, moves []MoveRequest) (*GameAnalysis, error) {
	updates, err := ReplayGame(rb, start, moves)
	if err != nil {
		return nil, err
	}
	return AnalyzeUpdates(rb, start, updates), nil
}

// AnalyzeUpdates analyses an already played sequence of updates from start.
func AnalyzeUpdates(rb *engine.StandardRulebook, start *engine.Game, updates []engine.Update) *GameAnalysis {
	analysis := &GameAnalysis{Final: start}
	positions := hashing.NewRepetitionCounter()

	record := func(g *engine.Game) {
		key := rb.PositionKey(g)
		analysis.Positions = append(analysis.Positions, key)
		positions.Add(key)
		if g.HalfmoveClock() >= 100 {
			analysis.HasFiftyMoveRule = true
		}
		if g.HalfmoveClock() >= 150 {
			analysis.Has75MoveRule = true
		}
	}
	record(start)

	for _, u := range updates {
		analysis.Plies++
		switch u.Command.(type) {
		case engine.CastlingCommand:
			analysis.Castles++
		case engine.EnPassantCommand:
			analysis.EnPassants++
		}
		if engine.IsCapture(u.Command) {
			analysis.Captures++
		}
		if kind, ok := engine.PromotionKind(u.Command); ok {
			analysis.Promotions++
			if kind != chess.Queen {
				analysis.HasUnderpromotion = true
			}
		}
		record(u.Game)
		analysis.Final = u.Game
	}

	analysis.HasRepetition = positions.Max() >= 3
	analysis.Has5FoldRepetition = positions.Max() >= 5
	analysis.HasInsufficientMaterial = engine.HasInsufficientMaterial(analysis.Final.Board())
	analysis.Status = rb.GetStatus(analysis.Final)
	analysis.DrawReason = rb.DrawReason(analysis.Final)
	return analysis
}

// RandomPlayout plays uniformly random legal moves from start until the game
// ends or maxPlies moves have been played.
func RandomPlayout(rb *engine.StandardRulebook, start *engine.Game, maxPlies int, rng *rand.Rand) []engine.Update {
	var played []engine.Update
	g := start
	for len(played) < maxPlies {
		if rb.GetStatus(g).IsTerminal() {
			break
		}
		var updates []engine.Update
		for u := range rb.AllUpdates(g) {
			updates = append(updates, u)
		}
		u := updates[rng.IntN(len(updates))]
		played = append(played, u)
		g = u.Game
	}
	return played
}
