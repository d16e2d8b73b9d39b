package escape

import (
	"errors"
	"fmt"
)

// Errors reported for input that produces no event.
var (
	// ErrUnterminated indicates a \( name with no closing \).
	ErrUnterminated = errors.New("unterminated key name")

	// ErrDanglingEscape indicates a backslash at the end of input.
	ErrDanglingEscape = errors.New("dangling escape")

	// ErrDanglingModifier indicates modifiers with no key after them.
	ErrDanglingModifier = errors.New("modifier without key")

	// ErrBadCode indicates a numeric literal out of range.
	ErrBadCode = errors.New("character code out of range")
)

// DecodeError describes input that was skipped.
type DecodeError struct {
	// Input is the full string being decoded.
	Input string

	// Offset is the rune index where the skipped form starts.
	Offset int

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q at %d: %v", e.Input, e.Offset, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}
