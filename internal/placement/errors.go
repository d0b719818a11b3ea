package placement

import (
	"errors"
	"fmt"
)

// ErrPlacementExhausted is returned when some team has no free slot left
// outside its forbidden set.
var ErrPlacementExhausted = errors.New("placement exhausted")

// ExhaustedError identifies the team that could not be placed.
type ExhaustedError struct {
	Team      string
	Forbidden []int
	Occupied  []int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("unable to determine slot for team %q (forbidden %v, occupied %v)", e.Team, e.Forbidden, e.Occupied)
}

func (e *ExhaustedError) Unwrap() error {
	return ErrPlacementExhausted
}
