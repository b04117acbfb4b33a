package engine

import (
	stderrors "errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

// newTestRulebook creates a rulebook from a builder, failing the test on a
// configuration error.
func newTestRulebook(t testing.TB, b *config.ConfigBuilder) *StandardRulebook {
	t.Helper()
	if b == nil {
		b = config.NewConfigBuilder()
	}
	rb, err := NewStandardRulebook(b.WithSeed(1).Build())
	if err != nil {
		t.Fatalf("NewStandardRulebook() error: %v", err)
	}
	return rb
}

// moveStrings renders update commands in generation order.
func moveStrings(updates []Update) []string {
	out := make([]string, 0, len(updates))
	for _, u := range updates {
		out = append(out, u.Command.String())
	}
	return out
}

// destinations returns the sorted destination squares of updates.
func destinations(updates []Update) []string {
	out := make([]string, 0, len(updates))
	for _, u := range updates {
		_, to, _ := Endpoints(u.Command)
		out = append(out, to.String())
	}
	slices.Sort(out)
	return out
}

func collect(seq func(func(Update) bool)) []Update {
	var out []Update
	for u := range seq {
		out = append(out, u)
	}
	return out
}

func mustPlay(t *testing.T, rb *StandardRulebook, g *Game, from, to string) *Game {
	t.Helper()
	u, err := rb.Play(g, testutil.Sq(from), testutil.Sq(to), chess.NoPiece)
	if err != nil {
		t.Fatalf("Play(%s, %s) error: %v", from, to, err)
	}
	return u.Game
}

func TestNewStandardRulebook_InvalidConfig(t *testing.T) {
	_, err := NewStandardRulebook(config.NewConfigBuilder().WithWorkers(0).Build())
	testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
}

func TestNewStandardRulebook_NilConfig(t *testing.T) {
	rb, err := NewStandardRulebook(nil)
	testutil.AssertNoError(t, err)
	g := rb.CreateGame()
	testutil.AssertLen(t, rb.GetUpdates(g, testutil.Sq("e2")), 2)
}

func TestCreateGame(t *testing.T) {
	rb := newTestRulebook(t, nil)
	g := rb.CreateGame()

	want := testutil.MustBoard(t,
		"rnbqkbnr",
		"pppppppp",
		"........",
		"........",
		"........",
		"........",
		"PPPPPPPP",
		"RNBQKBNR",
	)
	if !g.Board().Equal(want) {
		t.Errorf("CreateGame() board =\n%s\nwant\n%s", g.Board(), want)
	}
	testutil.AssertEqual(t, g.Active().Colour, chess.White)
	testutil.AssertEqual(t, g.Passive().Colour, chess.Black)
	testutil.AssertEqual(t, g.Board().Len(), 32)
	testutil.AssertEqual(t, g.Ply(), 0)
	if _, ok := g.LastUpdate(); ok {
		t.Error("LastUpdate() on a new game should report no record")
	}
}

func TestGetUpdates_StartPosition(t *testing.T) {
	t.Parallel()
	rb := newTestRulebook(t, nil)
	g := rb.CreateGame()

	tests := []struct {
		square string
		want   []string
	}{
		{"e2", []string{"e3", "e4"}},
		{"b1", []string{"a3", "c3"}},
		{"g1", []string{"f3", "h3"}},
		{"a2", []string{"a3", "a4"}},
		{"e1", []string{}},
		{"d1", []string{}},
		{"a1", []string{}},
		{"e4", []string{}}, // empty square
		{"e7", []string{}}, // black piece, white to move
	}

	for _, tt := range tests {
		t.Run(tt.square, func(t *testing.T) {
			t.Parallel()
			updates := rb.GetUpdates(g, testutil.Sq(tt.square))
			testutil.AssertEqual(t, destinations(updates), tt.want)
			for _, u := range updates {
				if IsCapture(u.Command) {
					t.Errorf("update %v is a capture", u.Command)
				}
			}
		})
	}
}

func TestGetUpdates_UpdateGame(t *testing.T) {
	rb := newTestRulebook(t, nil)
	g := rb.CreateGame()

	updates := rb.GetUpdates(g, testutil.Sq("e2"))
	testutil.AssertLen(t, updates, 2)

	next := updates[1].Game
	testutil.AssertEqual(t, updates[1].Command, Command(MoveCommand{From: testutil.Sq("e2"), To: testutil.Sq("e4")}))
	testutil.AssertEqual(t, next.Active().Colour, chess.Black)
	testutil.AssertEqual(t, next.Ply(), 1)
	testutil.AssertEqual(t, next.ID(), g.ID())
	testutil.AssertTrue(t, next.Board().IsEmpty(testutil.Sq("e2")))
	p, ok := next.Board().Piece(testutil.Sq("e4"))
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, p, chess.W(chess.Pawn))

	rec, ok := next.LastUpdate()
	testutil.AssertTrue(t, ok, "LastUpdate() after a move")
	if rec.Previous != g {
		t.Error("LastUpdate().Previous should be the game the move was made from")
	}

	// The original snapshot is untouched.
	testutil.AssertEqual(t, g.Active().Colour, chess.White)
	testutil.AssertFalse(t, g.Board().IsEmpty(testutil.Sq("e2")))
}

func TestGetUpdates_PinnedPiece(t *testing.T) {
	t.Parallel()
	board := testutil.MustBoard(t,
		"k...r...",
		"........",
		"........",
		"........",
		"........",
		"........",
		"....R...",
		"....K...",
	)
	rb := newTestRulebook(t, nil)
	g := NewGame(board, chess.White)

	got := destinations(rb.GetUpdates(g, testutil.Sq("e2")))
	testutil.AssertEqual(t, got, []string{"e3", "e4", "e5", "e6", "e7", "e8"})
}

func TestGetUpdates_MustAnswerCheck(t *testing.T) {
	t.Parallel()
	board := testutil.MustBoard(t,
		"k...r...",
		"........",
		"........",
		"........",
		"........",
		"........",
		"N.......",
		"...QK...",
	)
	rb := newTestRulebook(t, nil)
	g := NewGame(board, chess.White)

	tests := []struct {
		square string
		want   []string
	}{
		{"a2", []string{}},                 // knight cannot block or capture
		{"d1", []string{"e2"}},             // queen can only block
		{"e1", []string{"d2", "f1", "f2"}}, // king steps off the file
	}
	for _, tt := range tests {
		t.Run(tt.square, func(t *testing.T) {
			testutil.AssertEqual(t, destinations(rb.GetUpdates(g, testutil.Sq(tt.square))), tt.want)
		})
	}
}

func TestGetUpdates_ParallelMatchesSequential(t *testing.T) {
	t.Parallel()
	board := testutil.MustBoard(t,
		"r...k..r",
		"p.ppqpb.",
		"bn..pnp.",
		"...PN...",
		".p..P...",
		"..N..Q.p",
		"PPPBBPPP",
		"R...K..R",
	)
	seq := newTestRulebook(t, nil)
	par := newTestRulebook(t, config.NewConfigBuilder().WithWorkers(4))

	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		g := NewGame(board, colour)
		for i := 0; i < chess.NumSquares; i++ {
			pos := chess.PositionFromIndex(i)
			want := moveStrings(seq.GetUpdates(g, pos))
			got := moveStrings(par.GetUpdates(g, pos))
			testutil.AssertEqual(t, got, want, "square %s, %s to move", pos, colour)
		}
	}
}

func TestAllUpdates_StartPosition(t *testing.T) {
	rb := newTestRulebook(t, nil)
	g := rb.CreateGame()
	testutil.AssertLen(t, collect(rb.AllUpdates(g)), 20)
	testutil.AssertTrue(t, rb.HasLegalMove(g))
}

func TestPlay(t *testing.T) {
	t.Parallel()
	rb := newTestRulebook(t, nil)
	start := rb.CreateGame()

	promo := NewGame(testutil.MustBoard(t,
		"....k...",
		"P.......",
		"........",
		"........",
		"........",
		"........",
		"........",
		"....K...",
	), chess.White)

	tests := []struct {
		name      string
		game      *Game
		from, to  string
		promotion chess.PieceKind
		wantErr   error
		want      string
	}{
		{"legal pawn move", start, "e2", "e4", chess.NoPiece, nil, "e2e4"},
		{"promotion ignored for quiet move", start, "g1", "f3", chess.Queen, nil, "g1f3"},
		{"illegal destination", start, "e2", "e5", chess.NoPiece, errors.ErrIllegalMove, ""},
		{"empty square", start, "e4", "e5", chess.NoPiece, errors.ErrNoPiece, ""},
		{"opponent piece", start, "e7", "e5", chess.NoPiece, errors.ErrNoPiece, ""},
		{"promotion missing", promo, "a7", "a8", chess.NoPiece, errors.ErrPromotionRequired, ""},
		{"promotion to king", promo, "a7", "a8", chess.King, errors.ErrPromotionRequired, ""},
		{"promotion to knight", promo, "a7", "a8", chess.Knight, nil, "a7a8=N"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			u, err := rb.Play(tt.game, testutil.Sq(tt.from), testutil.Sq(tt.to), tt.promotion)
			if tt.wantErr != nil {
				testutil.AssertErrorIs(t, err, tt.wantErr)
				var moveErr *errors.MoveError
				if !stderrors.As(err, &moveErr) {
					t.Fatalf("Play() error %T, want *errors.MoveError", err)
				}
				testutil.AssertEqual(t, moveErr.From, testutil.Sq(tt.from))
				testutil.AssertEqual(t, moveErr.To, testutil.Sq(tt.to))
				return
			}
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, u.Command.String(), tt.want)
		})
	}
}

func TestPlay_History(t *testing.T) {
	rb := newTestRulebook(t, nil)
	g := rb.CreateGame()
	g = mustPlay(t, rb, g, "e2", "e4")
	g = mustPlay(t, rb, g, "e7", "e5")
	g = mustPlay(t, rb, g, "g1", "f3")

	var plies []int
	for past := range g.History() {
		plies = append(plies, past.Ply())
	}
	testutil.AssertEqual(t, plies, []int{3, 2, 1, 0})
	testutil.AssertTrue(t, g.HasMoved(testutil.Sq("g1")))
	testutil.AssertFalse(t, g.HasMoved(testutil.Sq("e1")))
}

// TestRandomPlayouts walks random legal games and checks that no update
// leaves the mover in check and that terminal statuses agree with the
// absence of legal moves.
func TestRandomPlayouts(t *testing.T) {
	t.Parallel()
	rb := newTestRulebook(t, nil)
	check := CheckRule{}

	for seed := uint64(1); seed <= 8; seed++ {
		rng := rand.New(rand.NewPCG(seed, 42))
		g := rb.CreateGame()
		if seed%2 == 0 {
			g = rb.Create960Game()
		}

		for ply := 0; ply < 120; ply++ {
			updates := collect(rb.AllUpdates(g))
			for _, u := range updates {
				if check.Check(u.Game, u.Game.Passive()) {
					t.Fatalf("seed %d ply %d: %v leaves the mover in check", seed, ply, u.Command)
				}
				testutil.AssertEqual(t, u.Game.Active().Colour, g.Passive().Colour)
			}

			status := rb.GetStatus(g)
			switch status {
			case Checkmate, Stalemate:
				testutil.AssertLen(t, updates, 0, "seed %d ply %d: %v with moves", seed, ply, status)
			default:
				testutil.AssertTrue(t, len(updates) > 0, "seed %d ply %d: %v without moves", seed, ply, status)
			}
			if status.IsTerminal() {
				break
			}
			g = updates[rng.IntN(len(updates))].Game
		}
	}
}
