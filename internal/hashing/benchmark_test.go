package hashing

import (
	"testing"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

var benchBoards = map[string][]string{
	"Initial": {
		"rnbqkbnr", "pppppppp", "........", "........",
		"........", "........", "PPPPPPPP", "RNBQKBNR",
	},
	"Endgame": {
		"........", ".....k..", "........", "........",
		"........", "........", ".....K..", "....R...",
	},
}

func BenchmarkBoardHash(b *testing.B) {
	for name, rows := range benchBoards {
		board := testutil.MustBoard(b, rows...)
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				BoardHash(board, chess.White)
			}
		})
	}
}

func BenchmarkRepetitionCounter_Add(b *testing.B) {
	rc := NewRepetitionCounter()
	for i := 0; i < b.N; i++ {
		rc.Add(uint64(i % 64))
	}
}

func BenchmarkThreadSafeTable(b *testing.B) {
	table := NewThreadSafeTable(0)
	b.RunParallel(func(pb *testing.PB) {
		var i uint64
		for pb.Next() {
			if _, ok := table.Lookup(i%1024, 2); !ok {
				table.Store(i%1024, 2, i)
			}
			i++
		}
	})
}
