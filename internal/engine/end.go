package engine

// Status classifies a game from the active player's point of view.
type Status int

const (
	Ongoing Status = iota
	Check
	Checkmate
	Stalemate
	Draw
)

// String returns the status name.
func (s Status) String() string {
	names := []string{"Ongoing", "Check", "Checkmate", "Stalemate", "Draw"}
	if int(s) < len(names) {
		return names[s]
	}
	return "Unknown"
}

// IsTerminal reports whether the game is over.
func (s Status) IsTerminal() bool {
	return s == Checkmate || s == Stalemate || s == Draw
}

// legalMoveSource reports whether the active player has any legal move.
type legalMoveSource interface {
	HasLegalMove(g *Game) bool
}

// EndRule combines check detection with legal-move availability.
type EndRule struct {
	check CheckRule
	moves legalMoveSource
	draws *DrawRule // nil unless automatic draws are enabled
}

// Status classifies g. Checkmate and stalemate take precedence over draws.
func (r EndRule) Status(g *Game) Status {
	inCheck := r.check.Check(g, g.active)
	hasMove := r.moves.HasLegalMove(g)

	switch {
	case inCheck && !hasMove:
		return Checkmate
	case !hasMove:
		return Stalemate
	}
	if r.draws != nil && r.draws.Reason(g) != NoDraw {
		return Draw
	}
	if inCheck {
		return Check
	}
	return Ongoing
}
