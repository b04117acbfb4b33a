// Package config provides configuration for the rulebook.
package config

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Chess960Policy decides how randomized back ranks are assigned to the two colours.
type Chess960Policy int

const (
	// MirroredBackRank gives Black the same back rank as White.
	MirroredBackRank Chess960Policy = iota
	// IndependentBackRanks draws a separate back rank for each colour.
	IndependentBackRanks
)

// String returns the policy name.
func (p Chess960Policy) String() string {
	switch p {
	case MirroredBackRank:
		return "mirrored"
	case IndependentBackRanks:
		return "independent"
	}
	return "unknown"
}

// DefaultPromotionChoices is the standard promotion set, in the order updates are generated.
var DefaultPromotionChoices = []chess.PieceKind{chess.Queen, chess.Rook, chess.Bishop, chess.Knight}

// Config holds the rulebook configuration.
type Config struct {
	// Workers is the number of goroutines used for the legality filter
	// and perft. 1 keeps everything on the caller's goroutine.
	Workers int

	// Pieces a pawn may promote to.
	PromotionChoices []chess.PieceKind

	// Back-rank assignment for Chess960 setups.
	Chess960 Chess960Policy

	// AutomaticDraws lets GetStatus report Draw for insufficient material,
	// the 75-move rule and fivefold repetition.
	AutomaticDraws bool

	// Seed for the Chess960 generator; 0 seeds from the clock.
	Seed uint64

	Logger *zap.Logger
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	choices := make([]chess.PieceKind, len(DefaultPromotionChoices))
	copy(choices, DefaultPromotionChoices)
	return &Config{
		Workers:          1,
		PromotionChoices: choices,
		Chess960:         MirroredBackRank,
		Logger:           zap.NewNop(),
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers (%d) must be at least 1: %w", c.Workers, errors.ErrInvalidConfig)
	}
	if len(c.PromotionChoices) == 0 {
		return fmt.Errorf("no promotion choices: %w", errors.ErrInvalidConfig)
	}
	seen := make(map[chess.PieceKind]bool, len(c.PromotionChoices))
	for _, kind := range c.PromotionChoices {
		switch kind {
		case chess.Knight, chess.Bishop, chess.Rook, chess.Queen:
		default:
			return fmt.Errorf("cannot promote to %v: %w", kind, errors.ErrInvalidConfig)
		}
		if seen[kind] {
			return fmt.Errorf("duplicate promotion choice %v: %w", kind, errors.ErrInvalidConfig)
		}
		seen[kind] = true
	}
	if c.Chess960 != MirroredBackRank && c.Chess960 != IndependentBackRanks {
		return fmt.Errorf("unknown chess960 policy %d: %w", int(c.Chess960), errors.ErrInvalidConfig)
	}
	return nil
}

// Log returns the configured logger, or a no-op logger when none is set.
func (c *Config) Log() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
