package conversation

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyAnswer    = errors.New("answer is empty")
	ErrAnswerTooShort = errors.New("answer is too short")
)

// ValidationError rejects an answer at the Submit boundary. It wraps
// ErrEmptyAnswer or ErrAnswerTooShort.
type ValidationError struct {
	Err error
	// MinLength is the configured minimum answer length in runes.
	MinLength int
}

func (e *ValidationError) Error() string {
	if errors.Is(e.Err, ErrAnswerTooShort) {
		return fmt.Sprintf("%v: need at least %d characters", e.Err, e.MinLength)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
