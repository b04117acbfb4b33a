package output

import (
	"encoding/json"
	"io"

	"github.com/lgbarn/chessrules-go/internal/engine"
)

// GameWriter is the interface for writing games to output.
// Different implementations handle different output formats (text, JSON).
type GameWriter interface {
	// WriteGame writes a single game to the output.
	WriteGame(game *Game) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// TextWriter writes games as plain-text reports.
type TextWriter struct {
	w             io.Writer
	rb            *engine.StandardRulebook
	maxLineLength int
}

// NewTextWriter creates a new text writer. maxLineLength of 0 wraps at 80.
func NewTextWriter(w io.Writer, rb *engine.StandardRulebook, maxLineLength int) *TextWriter {
	return &TextWriter{
		w:             w,
		rb:            rb,
		maxLineLength: maxLineLength,
	}
}

// WriteGame writes a game report.
func (tw *TextWriter) WriteGame(game *Game) error {
	OutputGame(tw.rb, game, tw.w, tw.maxLineLength)
	return nil
}

// Flush is a no-op; text reports are written immediately.
func (tw *TextWriter) Flush() error {
	return nil
}

// Close closes the text writer.
func (tw *TextWriter) Close() error {
	return nil
}

// JSONWriter writes games in JSON format.
// It buffers games and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w      io.Writer
	rb     *engine.StandardRulebook
	games  []*Game
	single bool // If true, write each game immediately instead of batching
}

// NewJSONWriter creates a new JSON writer.
// By default, it batches games and writes them as an array on Close().
func NewJSONWriter(w io.Writer, rb *engine.StandardRulebook) *JSONWriter {
	return &JSONWriter{
		w:  w,
		rb: rb,
	}
}

// NewJSONWriterSingle creates a JSON writer that writes each game immediately.
func NewJSONWriterSingle(w io.Writer, rb *engine.StandardRulebook) *JSONWriter {
	return &JSONWriter{
		w:      w,
		rb:     rb,
		single: true,
	}
}

// WriteGame buffers a game for JSON output (or writes immediately in single mode).
func (jw *JSONWriter) WriteGame(game *Game) error {
	if jw.single {
		enc := json.NewEncoder(jw.w)
		enc.SetIndent("", "  ")
		return enc.Encode(GameToJSON(jw.rb, game))
	}
	jw.games = append(jw.games, game)
	return nil
}

// Flush writes all buffered games as a JSON array.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.games) == 0 {
		return nil
	}
	err := OutputGamesJSON(jw.rb, jw.games, jw.w)
	jw.games = jw.games[:0]
	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}
