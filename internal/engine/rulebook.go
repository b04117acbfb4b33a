package engine

import (
	"fmt"
	"iter"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/worker"
)

// StandardRulebook wires the movement, check and end rules together. It is
// safe for concurrent use; only the Chess960 generator holds mutable state.
type StandardRulebook struct {
	cfg      *config.Config
	logger   *zap.Logger
	movement MovementRule
	check    CheckRule
	draws    DrawRule
	end      EndRule

	mu  sync.Mutex
	rng *rand.Rand
}

// NewStandardRulebook creates a rulebook. A nil cfg uses config.NewConfig().
func NewStandardRulebook(cfg *config.Config) (*StandardRulebook, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rb := &StandardRulebook{
		cfg:      cfg,
		logger:   cfg.Log().Named("rulebook"),
		movement: NewMovementRule(cfg.PromotionChoices),
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
	rb.end = EndRule{check: rb.check, moves: rb}
	if cfg.AutomaticDraws {
		rb.end.draws = &rb.draws
	}
	return rb, nil
}

// CreateGame returns the standard initial position with White to move.
func (rb *StandardRulebook) CreateGame() *Game {
	back := StandardBackRank()
	g := NewGame(SetupBoard(back, back), chess.White)
	rb.logger.Info("created game",
		zap.Stringer("id", g.ID()),
		zap.String("setup", "standard"))
	return g
}

// Create960Game returns a random Chess960 initial position with White to
// move. With the mirrored policy both colours share one back rank; with the
// independent policy each colour gets its own.
func (rb *StandardRulebook) Create960Game() *Game {
	rb.mu.Lock()
	whiteIndex := rb.rng.IntN(Chess960Positions)
	blackIndex := whiteIndex
	if rb.cfg.Chess960 == config.IndependentBackRanks {
		blackIndex = rb.rng.IntN(Chess960Positions)
	}
	rb.mu.Unlock()

	// Indices drawn in range always map to a back rank.
	g, _ := rb.CreateGameFromIndex(whiteIndex, blackIndex)
	return g
}

// CreateGameFromIndex returns the Chess960 initial position with the given
// start-position numbers for each colour.
func (rb *StandardRulebook) CreateGameFromIndex(white, black int) (*Game, error) {
	whiteRank, err := BackRank960(white)
	if err != nil {
		return nil, err
	}
	blackRank, err := BackRank960(black)
	if err != nil {
		return nil, err
	}
	g := NewGame(SetupBoard(whiteRank, blackRank), chess.White)
	rb.logger.Info("created game",
		zap.Stringer("id", g.ID()),
		zap.String("setup", "chess960"),
		zap.Int("white_index", white),
		zap.Int("black_index", black),
		zap.Stringer("white_rank", whiteRank),
		zap.Stringer("black_rank", blackRank))
	return g, nil
}

// simulate applies cmd as a full move and reports the successor if the
// mover's king is safe afterwards.
func (rb *StandardRulebook) simulate(g *Game, cmd Command) (Update, bool) {
	next, ok := Sequence(cmd, EndTurnCommand{}, SetLastUpdateCommand{Previous: g, Command: cmd}).Execute(g)
	if !ok {
		return Update{}, false
	}
	// The mover is now the passive player.
	if rb.check.Check(next, next.passive) {
		return Update{}, false
	}
	return Update{Game: next, Command: cmd}, true
}

// candidates returns the pseudo-legal commands of the active piece on pos.
func (rb *StandardRulebook) candidates(g *Game, pos chess.Position) iter.Seq[Command] {
	return func(yield func(Command) bool) {
		if _, ok := g.board.PieceOf(pos, g.active.Colour); !ok {
			return
		}
		for cmd := range rb.movement.Commands(g, pos) {
			if !yield(cmd) {
				return
			}
		}
	}
}

// Updates lazily yields the legal updates of the active piece on pos.
func (rb *StandardRulebook) Updates(g *Game, pos chess.Position) iter.Seq[Update] {
	return func(yield func(Update) bool) {
		for cmd := range rb.candidates(g, pos) {
			if u, ok := rb.simulate(g, cmd); ok {
				if !yield(u) {
					return
				}
			}
		}
	}
}

// GetUpdates returns the legal updates of the active piece on pos, in
// generation order. It is empty when pos holds no piece of the active player
// or that piece cannot move. With more than one configured worker the
// candidates are simulated in parallel.
func (rb *StandardRulebook) GetUpdates(g *Game, pos chess.Position) []Update {
	var updates []Update
	if rb.cfg.Workers > 1 {
		var cmds []Command
		for cmd := range rb.candidates(g, pos) {
			cmds = append(cmds, cmd)
		}
		updates = worker.Map(cmds, rb.cfg.Workers, func(cmd Command) (Update, bool) {
			return rb.simulate(g, cmd)
		})
	} else {
		for u := range rb.Updates(g, pos) {
			updates = append(updates, u)
		}
	}

	if ce := rb.logger.Check(zap.DebugLevel, "updates"); ce != nil {
		ce.Write(zap.Stringer("square", pos), zap.Int("count", len(updates)), zap.Int("ply", g.ply))
	}
	return updates
}

// AllUpdates lazily yields the legal updates of every active piece, squares
// in row-major order.
func (rb *StandardRulebook) AllUpdates(g *Game) iter.Seq[Update] {
	return func(yield func(Update) bool) {
		for pos := range g.board.Pieces(g.active.Colour) {
			for u := range rb.Updates(g, pos) {
				if !yield(u) {
					return
				}
			}
		}
	}
}

// HasLegalMove reports whether the active player has at least one legal update.
func (rb *StandardRulebook) HasLegalMove(g *Game) bool {
	for range rb.AllUpdates(g) {
		return true
	}
	return false
}

// GetStatus classifies g. Draw is reported only when automatic draws are enabled.
func (rb *StandardRulebook) GetStatus(g *Game) Status {
	return rb.end.Status(g)
}

// DrawReason reports which automatic draw condition g meets, regardless of
// whether automatic draws are enabled.
func (rb *StandardRulebook) DrawReason(g *Game) DrawReason {
	return rb.draws.Reason(g)
}

// PositionKey returns the repetition key of g: pieces, side to move,
// castling rights and en passant availability.
func (rb *StandardRulebook) PositionKey(g *Game) uint64 {
	return rb.draws.PositionKey(g)
}

// Play resolves a move request to its legal update. promotion is ignored for
// non-promoting moves and must name a configured piece for promoting ones.
// When a king move and a Chess960 castling share a destination the first
// generated update wins, which is the plain king move.
func (rb *StandardRulebook) Play(g *Game, from, to chess.Position, promotion chess.PieceKind) (Update, error) {
	if _, ok := g.board.PieceOf(from, g.active.Colour); !ok {
		return Update{}, rb.reject(g, from, to, errors.ErrNoPiece)
	}

	var needsPromotion bool
	for u := range rb.Updates(g, from) {
		_, dest, _ := Endpoints(u.Command)
		if dest != to {
			continue
		}
		kind, promotes := PromotionKind(u.Command)
		if !promotes {
			return u, nil
		}
		needsPromotion = true
		if kind == promotion {
			return u, nil
		}
	}
	if needsPromotion {
		return Update{}, rb.reject(g, from, to, errors.ErrPromotionRequired)
	}
	return Update{}, rb.reject(g, from, to, errors.ErrIllegalMove)
}

func (rb *StandardRulebook) reject(g *Game, from, to chess.Position, err error) error {
	moveErr := &errors.MoveError{Err: err, From: from, To: to, Ply: g.ply}
	rb.logger.Debug("rejected move",
		zap.Stringer("id", g.ID()),
		zap.Error(moveErr))
	return moveErr
}

// String describes the rulebook configuration.
func (rb *StandardRulebook) String() string {
	return fmt.Sprintf("StandardRulebook(workers=%d, promotions=%v, chess960=%s, draws=%t)",
		rb.cfg.Workers, rb.cfg.PromotionChoices, rb.cfg.Chess960, rb.cfg.AutomaticDraws)
}
