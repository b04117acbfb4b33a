// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"fmt"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

var (
	// Setup options
	chess960    = flag.Bool("960", false, "Start from a random Chess960 position")
	startIndex  = flag.Int("index", -1, "Chess960 start position number (0-959); 518 is the standard setup")
	blackIndex  = flag.Int("black-index", -1, "Chess960 start position number for Black (default: same as -index)")
	independent = flag.Bool("independent", false, "Draw separate random Chess960 back ranks for each colour")
	seed        = flag.Uint64("seed", 0, "Random seed for setups and playouts (0 = time-based)")

	// Rule options
	workers    = flag.Int("workers", 1, "Goroutines used for move generation and perft")
	promotions = flag.String("promotions", "QRBN", "Pieces a pawn may promote to, in generation order")
	draws      = flag.Bool("draws", false, "End games automatically on dead positions, the 75-move rule and fivefold repetition")

	// Actions
	perftDepth = flag.Int("perft", 0, "Count the leaf nodes of the move tree to depth N and exit")
	playout    = flag.Int("playout", 0, "Play up to N random legal plies")
	moveList   = flag.String("moves", "", "Coordinate moves to replay first, e.g. \"e2e4 e7e5 g1f3\"")
	validate   = flag.Bool("validate", false, "Only report whether -moves is a legal game")

	// Output options
	outputFile   = flag.String("o", "", "Output file (default: stdout)")
	appendOutput = flag.Bool("a", false, "Append to output file instead of overwrite")
	jsonOutput   = flag.Bool("J", false, "Output in JSON format")
	lineLength   = flag.Int("w", 80, "Maximum line length of the move list")

	verbose = flag.Bool("v", false, "Debug logging to stderr")
	version = flag.Bool("version", false, "Print version and exit")
	help    = flag.Bool("h", false, "Show help")
)

// applyFlags configures the rulebook from command-line flags.
func applyFlags(b *config.ConfigBuilder) error {
	applySetupFlags(b)
	return applyRuleFlags(b)
}

// applySetupFlags configures Chess960 generation.
func applySetupFlags(b *config.ConfigBuilder) {
	if *independent {
		b.WithChess960Policy(config.IndependentBackRanks)
	}
	b.WithSeed(*seed)
}

// applyRuleFlags configures workers, promotion choices and automatic draws.
func applyRuleFlags(b *config.ConfigBuilder) error {
	kinds, err := parsePromotions(*promotions)
	if err != nil {
		return err
	}
	b.WithWorkers(*workers).
		WithPromotionChoices(kinds...).
		WithAutomaticDraws(*draws)
	return nil
}

// parsePromotions parses piece letters such as "QRBN" or "qn".
func parsePromotions(s string) ([]chess.PieceKind, error) {
	kinds := make([]chess.PieceKind, 0, len(s))
	for i := 0; i < len(s); i++ {
		kind, ok := chess.KindFromLetter(s[i])
		if !ok {
			return nil, fmt.Errorf("promotion piece %q: %w", s[i], errors.ErrInvalidConfig)
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}
