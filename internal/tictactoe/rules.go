// Package tictactoe holds the game rules. Every function is pure and derives
// its answer from a board snapshot alone.
package tictactoe

import "github.com/rocketscienceinc/tictactoe-history/internal/entity"

const (
	StatusDraw = "Scratch: Cat's game"

	statusWinnerPrefix = "Winner: "
	statusNextPrefix   = "Next player: "
)

// NextPlayer returns X when an even number of cells is filled, O otherwise.
func NextPlayer(board entity.Board) string {
	if board.Filled()%2 == 0 {
		return entity.PlayerX
	}

	return entity.PlayerO
}

// Winner returns the mark owning the first complete line, or EmptyCell.
func Winner(board entity.Board) string {
	if line, ok := WinningLine(board); ok {
		return board[line[0]]
	}

	return entity.EmptyCell
}

// WinningLine returns the first complete line in WinCombos order.
func WinningLine(board entity.Board) ([3]int, bool) {
	for _, combo := range entity.WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return combo, true
		}
	}

	return [3]int{}, false
}

// Status describes the winner, a draw, or whose turn it is.
func Status(board entity.Board) string {
	if winner := Winner(board); winner != entity.EmptyCell {
		return statusWinnerPrefix + winner
	}

	if board.IsFull() {
		return StatusDraw
	}

	return statusNextPrefix + NextPlayer(board)
}

// MoveIndex is the position of board in its history.
func MoveIndex(board entity.Board) int {
	return board.Filled()
}

// IsTerminal reports whether no more moves can be played.
func IsTerminal(board entity.Board) bool {
	return Winner(board) != entity.EmptyCell || board.IsFull()
}
