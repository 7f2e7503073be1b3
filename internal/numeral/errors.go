package numeral

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat reports input that is not an optionally signed decimal numeral.
	ErrFormat = errors.New("not a decimal numeral")

	// ErrMagnitudeOverflow reports a numeral with more integer or fractional
	// digits than the unit tables cover.
	ErrMagnitudeOverflow = errors.New("magnitude exceeds unit table")
)

// Error carries the rejected input alongside one of the sentinel errors.
type Error struct {
	Input string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("numeral: %q: %v", e.Input, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
