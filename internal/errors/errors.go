// Package errors provides sentinel errors and error types for the rule engine's
// host-facing entry points. The rule core itself never returns errors for
// game-logic negatives; those are empty sequences or "no result" values.
package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrIllegalMove indicates a move that violates chess rules.
	ErrIllegalMove = errors.New("illegal move")

	// ErrNoPiece indicates that the side to move has no piece on the source square.
	ErrNoPiece = errors.New("no piece of the side to move")

	// ErrPromotionRequired indicates a pawn reaching the last rank without a promotion choice.
	ErrPromotionRequired = errors.New("promotion piece required")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidPosition indicates a malformed square name or setup index.
	ErrInvalidPosition = errors.New("invalid position")
)

// MoveError wraps errors with move context: the ply the request was made at and
// the squares involved. It supports unwrapping via errors.Is() and errors.As().
type MoveError struct {
	Err  error          // The underlying error
	From chess.Position // Source square of the request
	To   chess.Position // Destination square of the request
	Ply  int            // Plies played before the request
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	parts := []string{
		fmt.Sprintf("ply %d", e.Ply),
		fmt.Sprintf("move %s%s", e.From, e.To),
	}
	context := strings.Join(parts, ", ")
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
