// chessrules plays, replays and counts chess and Chess960 games under the
// standard rules.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/output"
	"github.com/lgbarn/chessrules-go/internal/processing"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chessrules version %s\n", programVersion)
		os.Exit(0)
	}

	logger, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck // stderr sync fails on some terminals

	builder := config.NewConfigBuilder().WithLogger(logger)
	if err := applyFlags(builder); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	rb, err := engine.NewStandardRulebook(builder.Build())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	w := setupOutputFile()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = run(ctx, rb, w)
	stop()
	if closer, ok := w.(io.Closer); ok && w != os.Stdout {
		closer.Close() //nolint:errcheck,gosec // G104: cleanup on exit
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger returns a development logger at debug level when verbose, and a
// production logger that only reports warnings otherwise.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	return cfg.Build()
}

// setupOutputFile opens the output file named by -o, or returns stdout.
func setupOutputFile() io.Writer {
	if *outputFile == "" {
		return os.Stdout
	}

	var file *os.File
	var err error

	if *appendOutput {
		file, err = os.OpenFile(*outputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created output files
	} else {
		file, err = os.Create(*outputFile)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	return file
}

// run performs the action selected by the flags and writes its result to w.
func run(ctx context.Context, rb *engine.StandardRulebook, w io.Writer) error {
	start, setup, err := createStart(rb)
	if err != nil {
		return err
	}

	if *perftDepth > 0 {
		begin := time.Now()
		nodes, err := engine.Perft(ctx, rb, start, *perftDepth)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "perft(%d) = %d (%s)\n", *perftDepth, nodes, time.Since(begin).Round(time.Millisecond))
		return nil
	}

	var updates []engine.Update
	if *moveList != "" {
		requests, err := processing.ParseMoves(*moveList)
		if err != nil {
			return err
		}
		if *validate {
			return reportValidation(w, processing.ValidateGame(rb, start, requests))
		}
		updates, err = processing.ReplayGame(rb, start, requests)
		if err != nil {
			return err
		}
	}

	if *playout > 0 {
		from := start
		if len(updates) > 0 {
			from = updates[len(updates)-1].Game
		}
		updates = append(updates, processing.RandomPlayout(rb, from, *playout, playoutRNG())...)
	}

	writer := newGameWriter(rb, w)
	if err := writer.WriteGame(&output.Game{Setup: setup, Start: start, Updates: updates}); err != nil {
		return err
	}
	return writer.Close()
}

// createStart builds the starting position selected by -index, -black-index and -960.
func createStart(rb *engine.StandardRulebook) (*engine.Game, string, error) {
	if *startIndex >= 0 || *blackIndex >= 0 {
		if *startIndex < 0 {
			return nil, "", fmt.Errorf("-black-index requires -index: %w", errors.ErrInvalidConfig)
		}
		black := *blackIndex
		if black < 0 {
			black = *startIndex
		}
		g, err := rb.CreateGameFromIndex(*startIndex, black)
		if err != nil {
			return nil, "", err
		}
		return g, fmt.Sprintf("chess960 %d/%d", *startIndex, black), nil
	}
	if *chess960 {
		g := rb.Create960Game()
		return g, "chess960 " + backRank(g.Board(), chess.White.HomeRow()), nil
	}
	return rb.CreateGame(), "standard", nil
}

// backRank returns the piece letters of a row, file a first.
func backRank(b *chess.Board, row int) string {
	var sb strings.Builder
	for col := 0; col < chess.BoardSize; col++ {
		p, _ := b.Piece(chess.Pos(row, col))
		sb.WriteByte(p.Letter())
	}
	return sb.String()
}

func playoutRNG() *rand.Rand {
	s := *seed
	if s == 0 {
		s = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(s, s>>1|1))
}

func newGameWriter(rb *engine.StandardRulebook, w io.Writer) output.GameWriter {
	if *jsonOutput {
		return output.NewJSONWriterSingle(w, rb)
	}
	return output.NewTextWriter(w, rb, *lineLength)
}

// reportValidation prints the validation outcome; an invalid game is an error.
func reportValidation(w io.Writer, result *processing.ValidationResult) error {
	if result.Valid {
		fmt.Fprintln(w, "valid")
		return nil
	}
	fmt.Fprintf(w, "invalid: %s\n", result.ErrorMsg)
	return result.Err
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chessrules [options]\n\n")
	fmt.Fprintf(os.Stderr, "Plays, replays and counts chess and Chess960 games.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nMoves are written in coordinate notation (e2e4, e7e8q).\n")
	fmt.Fprintf(os.Stderr, "Castling is the king's move (e1g1) or the king onto its rook (e1h1).\n")
}
