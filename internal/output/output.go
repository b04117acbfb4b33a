// Package output provides game report formatting as text and JSON.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/processing"
)

// Game is a played game ready for output.
type Game struct {
	Setup    string // e.g. "standard" or "chess960 518/518"
	Start    *engine.Game
	Updates  []engine.Update
	Analysis *processing.GameAnalysis
}

// analysis returns the game's analysis, computing it on first use.
func (g *Game) analysis(rb *engine.StandardRulebook) *processing.GameAnalysis {
	if g.Analysis == nil {
		g.Analysis = processing.AnalyzeUpdates(rb, g.Start, g.Updates)
	}
	return g.Analysis
}

// Final returns the last position of the game.
func (g *Game) Final() *engine.Game {
	if len(g.Updates) == 0 {
		return g.Start
	}
	return g.Updates[len(g.Updates)-1].Game
}

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a string, adding a space separator or wrapping as needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}

	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	fmt.Fprintln(o.w)
	o.lineLength = 0
	o.needsSpace = false
}

// OutputGame writes a plain-text report: header, starting board, numbered
// move list, final board and outcome.
func OutputGame(rb *engine.StandardRulebook, game *Game, w io.Writer, maxLineLength int) {
	start := game.Start
	fmt.Fprintf(w, "Game %s (%s)\n", start.ID(), game.Setup)
	fmt.Fprint(w, start.Board().String())

	if len(game.Updates) > 0 {
		ow := NewOutputWriter(w, maxLineLength)
		outputMoves(rb, game, ow)
		ow.NewLine()
		fmt.Fprint(w, game.Final().Board().String())
	}

	a := game.analysis(rb)
	fmt.Fprintf(w, "Status: %s\n", a.Status)
	if a.DrawReason != engine.NoDraw {
		fmt.Fprintf(w, "Draw condition: %s\n", a.DrawReason)
	}
	fmt.Fprintf(w, "Plies: %d, captures: %d, castles: %d, en passant: %d, promotions: %d\n",
		a.Plies, a.Captures, a.Castles, a.EnPassants, a.Promotions)
	fmt.Fprintln(w)
}

// outputMoves writes "1. e2e4 e7e5 2. ..." with Black-first games opening "1... ".
func outputMoves(rb *engine.StandardRulebook, game *Game, ow *OutputWriter) {
	moveNum := 1
	isWhite := game.Start.Active().Colour == chess.White
	if !isWhite {
		ow.Write("1...")
	}
	for _, u := range game.Updates {
		if isWhite {
			ow.Write(fmt.Sprintf("%d.", moveNum))
		}
		ow.Write(formatMove(rb, u))
		if !isWhite {
			moveNum++
		}
		isWhite = !isWhite
	}
}

// formatMove renders the command with a check or mate suffix.
func formatMove(rb *engine.StandardRulebook, u engine.Update) string {
	s := u.Command.String()
	switch checkState(rb, u.Game) {
	case engine.Checkmate:
		return s + "#"
	case engine.Check:
		return s + "+"
	}
	return s
}

// checkState reports Check, Checkmate or Ongoing for the side to move,
// ignoring draws.
func checkState(rb *engine.StandardRulebook, g *engine.Game) engine.Status {
	if !engine.IsInCheck(g.Board(), g.Active().Colour) {
		return engine.Ongoing
	}
	if rb.HasLegalMove(g) {
		return engine.Check
	}
	return engine.Checkmate
}

// pieceName returns the lower-case piece name, or "" for no piece.
func pieceName(kind chess.PieceKind) string {
	if kind == chess.NoPiece {
		return ""
	}
	return strings.ToLower(kind.String())
}

// colorName returns "white" or "black".
func colorName(c chess.Colour) string {
	return strings.ToLower(c.String())
}
