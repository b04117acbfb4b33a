// Package hashing provides Zobrist position keys for repetition detection
// and a concurrent node-count table for move-tree searches.
package hashing

import (
	"math/rand/v2"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

const numKinds = int(chess.King) + 1

// Fixed seed so keys are stable across runs and processes.
const (
	zobristSeed1 = 0x9d39247e33776d41
	zobristSeed2 = 0x2af7398005aaa5c7
)

var (
	pieceKeys   [2][numKinds][chess.NumSquares]uint64
	castleKeys  [2][chess.BoardSize]uint64 // colour, rook file
	epKeys      [chess.BoardSize]uint64
	whiteToMove uint64
)

func init() {
	rng := rand.New(rand.NewPCG(zobristSeed1, zobristSeed2))
	for c := range pieceKeys {
		for k := range pieceKeys[c] {
			for sq := range pieceKeys[c][k] {
				pieceKeys[c][k][sq] = rng.Uint64()
			}
		}
	}
	for c := range castleKeys {
		for f := range castleKeys[c] {
			castleKeys[c][f] = rng.Uint64()
		}
	}
	for f := range epKeys {
		epKeys[f] = rng.Uint64()
	}
	whiteToMove = rng.Uint64()
}

// BoardHash returns the Zobrist hash of the pieces on the board and the side to move.
func BoardHash(board *chess.Board, toMove chess.Colour) uint64 {
	var h uint64
	for pos, p := range board.All() {
		h ^= pieceKeys[p.Colour][p.Kind][pos.Index()]
	}
	if toMove == chess.White {
		h ^= whiteToMove
	}
	return h
}

// CastlingKey returns the key component for a castling right held by colour
// with the rook on the given file.
func CastlingKey(colour chess.Colour, rookFile int) uint64 {
	return castleKeys[colour][rookFile]
}

// EnPassantKey returns the key component for an en passant capture available on file.
func EnPassantKey(file int) uint64 {
	return epKeys[file]
}

// RepetitionCounter counts occurrences of position keys.
type RepetitionCounter struct {
	counts map[uint64]int
	max    int
}

// NewRepetitionCounter creates an empty counter.
func NewRepetitionCounter() *RepetitionCounter {
	return &RepetitionCounter{counts: make(map[uint64]int)}
}

// Add records one occurrence of key and returns its count so far.
func (r *RepetitionCounter) Add(key uint64) int {
	r.counts[key]++
	n := r.counts[key]
	if n > r.max {
		r.max = n
	}
	return n
}

// Count returns the number of occurrences of key.
func (r *RepetitionCounter) Count(key uint64) int {
	return r.counts[key]
}

// Max returns the highest occurrence count of any key.
func (r *RepetitionCounter) Max() int {
	return r.max
}
