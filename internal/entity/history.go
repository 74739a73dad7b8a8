package entity

import (
	"errors"
	"fmt"
)

var ErrInconsistentHistory = errors.New("inconsistent move history")

// History is the ordered list of board snapshots, starting with the empty board.
type History []Board

func NewHistory() History {
	return History{NewBoard()}
}

// Validate checks that every snapshot holds only known marks and that
// entry i has exactly i marked cells.
func (that History) Validate() error {
	if len(that) == 0 {
		return fmt.Errorf("%w: no entries", ErrInconsistentHistory)
	}

	for i, board := range that {
		for _, cell := range board {
			if !IsValidMark(cell) {
				return fmt.Errorf("%w: entry %d has unknown mark %q", ErrInconsistentHistory, i, cell)
			}
		}

		if filled := board.Filled(); filled != i {
			return fmt.Errorf("%w: entry %d has %d marks", ErrInconsistentHistory, i, filled)
		}
	}

	return nil
}

// Last returns the most recent snapshot.
func (that History) Last() Board {
	return that[len(that)-1]
}

// Contains reports whether move is a valid index into the history.
func (that History) Contains(move int) bool {
	return move >= 0 && move < len(that)
}

// Append keeps entries up to and including move and adds board after them.
// A move past the end keeps the whole history.
func (that History) Append(move int, board Board) History {
	move = min(move, len(that)-1)

	next := make(History, 0, move+2)
	next = append(next, that[:move+1]...)

	return append(next, board)
}
