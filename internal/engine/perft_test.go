package engine

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

// Reference node counts from the chess programming community's perft tables.
var perftPositions = []struct {
	name   string
	rows   []string
	counts []uint64 // indexed by depth-1
	short  int      // depths run under -short
}{
	{
		name: "initial",
		rows: []string{
			"rnbqkbnr",
			"pppppppp",
			"........",
			"........",
			"........",
			"........",
			"PPPPPPPP",
			"RNBQKBNR",
		},
		counts: []uint64{20, 400, 8902},
		short:  2,
	},
	{
		name: "kiwipete",
		rows: []string{
			"r...k..r",
			"p.ppqpb.",
			"bn..pnp.",
			"...PN...",
			".p..P...",
			"..N..Q.p",
			"PPPBBPPP",
			"R...K..R",
		},
		counts: []uint64{48, 2039},
		short:  1,
	},
	{
		name: "position 3",
		rows: []string{
			"........",
			"..p.....",
			"...p....",
			"KP.....r",
			".R...p.k",
			"........",
			"....P.P.",
			"........",
		},
		counts: []uint64{14, 191, 2812},
		short:  2,
	},
}

func TestPerft(t *testing.T) {
	t.Parallel()
	for _, workers := range []int{1, 4} {
		rb := newTestRulebook(t, config.NewConfigBuilder().WithWorkers(workers))
		for _, pos := range perftPositions {
			g := NewGame(testutil.MustBoard(t, pos.rows...), chess.White)
			for i, want := range pos.counts {
				depth := i + 1
				if testing.Short() && depth > pos.short {
					break
				}
				got, err := Perft(context.Background(), rb, g, depth)
				testutil.AssertNoError(t, err)
				if got != want {
					t.Errorf("Perft(%s, depth %d, workers %d) = %d, want %d", pos.name, depth, workers, got, want)
				}
			}
		}
	}
}

func TestPerft_DepthZero(t *testing.T) {
	rb := newTestRulebook(t, nil)
	got, err := Perft(context.Background(), rb, rb.CreateGame(), 0)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, uint64(1))
}

func TestPerft_Cancelled(t *testing.T) {
	rb := newTestRulebook(t, config.NewConfigBuilder().WithWorkers(2))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Perft(ctx, rb, rb.CreateGame(), 3)
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("Perft() error = %v, want context.Canceled", err)
	}
}
