package game

import (
	"errors"
	"fmt"
)

// ErrGameOver is returned for any command submitted after the game has
// reached its terminal state. It is advisory: no state is mutated.
var ErrGameOver = errors.New("game is over")

// InvalidCommandError reports an unknown command verb. No state is mutated
// and no click is spent.
type InvalidCommandError struct {
	Name string
}

func (e *InvalidCommandError) Error() string {
	return fmt.Sprintf("unknown command: %s", e.Name)
}

// PreconditionError reports a command rejected before any mutation: wrong
// phase, insufficient clicks/credits/memory, or an invalid target or index.
// State is left exactly as it was.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return e.Reason
}

// preconditionf builds a PreconditionError from a format string.
func preconditionf(format string, args ...any) error {
	return &PreconditionError{Reason: fmt.Sprintf(format, args...)}
}
