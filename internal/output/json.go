package output

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/processing"
)

// JSONGame represents a game in JSON format.
type JSONGame struct {
	ID           string        `json:"id"`
	Setup        string        `json:"setup"`
	InitialBoard []string      `json:"initialBoard"`
	Moves        []JSONMove    `json:"moves,omitempty"`
	PlyCount     int           `json:"plyCount"`
	FinalBoard   []string      `json:"finalBoard"`
	Status       string        `json:"status"`
	DrawReason   string        `json:"drawReason,omitempty"`
	Analysis     *JSONAnalysis `json:"analysis,omitempty"`
}

// JSONMove represents a move in JSON format.
type JSONMove struct {
	MoveNumber int    `json:"moveNumber,omitempty"`
	Color      string `json:"color"` // "white" or "black"
	Notation   string `json:"notation"`
	Coordinate string `json:"coordinate"`
	From       string `json:"from"`
	To         string `json:"to"`
	Piece      string `json:"piece"`
	Captured   string `json:"captured,omitempty"`
	Promotion  string `json:"promotion,omitempty"`
	Castling   bool   `json:"castling,omitempty"`
	Check      bool   `json:"check,omitempty"`
	Mate       bool   `json:"mate,omitempty"`
}

// JSONAnalysis carries the replay counters and rule flags.
type JSONAnalysis struct {
	Captures             int  `json:"captures"`
	Castles              int  `json:"castles"`
	EnPassants           int  `json:"enPassants"`
	Promotions           int  `json:"promotions"`
	FiftyMoveRule        bool `json:"fiftyMoveRule,omitempty"`
	SeventyFiveMoveRule  bool `json:"seventyFiveMoveRule,omitempty"`
	ThreefoldRepetition  bool `json:"threefoldRepetition,omitempty"`
	FivefoldRepetition   bool `json:"fivefoldRepetition,omitempty"`
	Underpromotion       bool `json:"underpromotion,omitempty"`
	InsufficientMaterial bool `json:"insufficientMaterial,omitempty"`
}

// JSONOutput holds multiple games for array output.
type JSONOutput struct {
	Games []*JSONGame `json:"games"`
}

// OutputGamesJSON outputs multiple games as a JSON array.
func OutputGamesJSON(rb *engine.StandardRulebook, games []*Game, w io.Writer) error {
	jsonGames := make([]*JSONGame, len(games))
	for i, game := range games {
		jsonGames[i] = GameToJSON(rb, game)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&JSONOutput{Games: jsonGames})
}

// GameToJSON converts a played game to JSON format.
func GameToJSON(rb *engine.StandardRulebook, game *Game) *JSONGame {
	a := game.analysis(rb)
	jg := &JSONGame{
		ID:           game.Start.ID().String(),
		Setup:        game.Setup,
		InitialBoard: boardRows(game.Start.Board()),
		Moves:        convertMoveList(rb, game),
		PlyCount:     len(game.Updates),
		FinalBoard:   boardRows(game.Final().Board()),
		Status:       a.Status.String(),
		Analysis:     convertAnalysis(a),
	}
	if a.DrawReason != engine.NoDraw {
		jg.DrawReason = a.DrawReason.String()
	}
	return jg
}

// boardRows returns the board as eight rank strings, rank 8 first.
func boardRows(b *chess.Board) []string {
	rows := make([]string, 0, chess.BoardSize)
	for row := chess.BoardSize - 1; row >= 0; row-- {
		var sb strings.Builder
		for col := 0; col < chess.BoardSize; col++ {
			p, _ := b.Piece(chess.Pos(row, col))
			sb.WriteByte(p.Letter())
		}
		rows = append(rows, sb.String())
	}
	return rows
}

// convertMoveList converts the played updates to JSON moves.
func convertMoveList(rb *engine.StandardRulebook, game *Game) []JSONMove {
	result := make([]JSONMove, 0, len(game.Updates))

	moveNum := 1
	before := game.Start
	for _, u := range game.Updates {
		colour := before.Active().Colour
		jm := convertSingleMove(rb, before, u)
		if colour == chess.White {
			jm.MoveNumber = moveNum
		} else {
			moveNum++
		}
		result = append(result, jm)
		before = u.Game
	}
	return result
}

// convertSingleMove describes u, played from before.
func convertSingleMove(rb *engine.StandardRulebook, before *engine.Game, u engine.Update) JSONMove {
	req := processing.RequestFor(u)
	from, to, _ := engine.Endpoints(u.Command)
	jm := JSONMove{
		Color:      colorName(before.Active().Colour),
		Notation:   u.Command.String(),
		Coordinate: req.String(),
		From:       from.String(),
		To:         to.String(),
		Promotion:  pieceName(req.Promotion),
	}
	if p, ok := before.Board().Piece(from); ok {
		jm.Piece = pieceName(p.Kind)
	}

	switch u.Command.(type) {
	case engine.CastlingCommand:
		jm.Castling = true
	case engine.EnPassantCommand:
		jm.Captured = pieceName(chess.Pawn)
	default:
		if engine.IsCapture(u.Command) {
			if p, ok := before.Board().Piece(to); ok {
				jm.Captured = pieceName(p.Kind)
			}
		}
	}

	switch checkState(rb, u.Game) {
	case engine.Checkmate:
		jm.Check, jm.Mate = true, true
	case engine.Check:
		jm.Check = true
	}
	return jm
}

func convertAnalysis(a *processing.GameAnalysis) *JSONAnalysis {
	return &JSONAnalysis{
		Captures:             a.Captures,
		Castles:              a.Castles,
		EnPassants:           a.EnPassants,
		Promotions:           a.Promotions,
		FiftyMoveRule:        a.HasFiftyMoveRule,
		SeventyFiveMoveRule:  a.Has75MoveRule,
		ThreefoldRepetition:  a.HasRepetition,
		FivefoldRepetition:   a.Has5FoldRepetition,
		Underpromotion:       a.HasUnderpromotion,
		InsufficientMaterial: a.HasInsufficientMaterial,
	}
}
