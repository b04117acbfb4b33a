package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// fileDistance is the number of files between a and b.
func fileDistance(a, b chess.Position) int {
	return max(a.Col-b.Col, b.Col-a.Col)
}

// rankDistance is the number of ranks between a and b.
func rankDistance(a, b chess.Position) int {
	return max(a.Row-b.Row, b.Row-a.Row)
}
