package ballsort

import (
	"errors"
	"fmt"
)

var (
	ErrNoSuchCompartment = errors.New("ballsort: no such compartment")
	ErrSameCompartment   = errors.New("ballsort: source and target are the same compartment")
	ErrEmptyCompartment  = errors.New("ballsort: compartment is empty")
	ErrNotPlaying        = errors.New("ballsort: session is not in play")
	ErrNotWon            = errors.New("ballsort: level has not been won")
	ErrNotFailed         = errors.New("ballsort: attempt has not failed")
	ErrNoLives           = errors.New("ballsort: no lives left")
	ErrLivesDisabled     = errors.New("ballsort: lives are disabled in this mode")
)

// OutOfRangeError is returned when a level number is outside the catalog.
type OutOfRangeError struct {
	Level int
	Count int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("ballsort: level %d out of range [1, %d]", e.Level, e.Count)
}

// IllegalMoveError is returned when the target compartment cannot take the
// source's top ball.
type IllegalMoveError struct {
	From  int
	To    int
	Color Color
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("ballsort: compartment %d cannot take %s ball from compartment %d", e.To+1, e.Color, e.From+1)
}
