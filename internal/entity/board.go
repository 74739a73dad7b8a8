package entity

const (
	PlayerX = "X"
	PlayerO = "O"

	EmptyCell = ""

	BoardSize = 9
)

// WinCombos lists the rows, then the columns, then the diagonals.
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is a 3x3 grid snapshot stored row by row.
type Board [BoardSize]string

// NewBoard returns an all-empty board.
func NewBoard() Board {
	return Board{}
}

// Filled returns the number of marked cells.
func (that Board) Filled() int {
	filled := 0
	for _, cell := range that {
		if cell != EmptyCell {
			filled++
		}
	}

	return filled
}

func (that Board) IsFull() bool {
	return that.Filled() == BoardSize
}

func (that Board) IsEmptyAt(cell int) bool {
	return that[cell] == EmptyCell
}

// With returns a copy of the board with mark placed at cell.
func (that Board) With(cell int, mark string) Board {
	next := that
	next[cell] = mark

	return next
}

func IsValidCell(cell int) bool {
	return cell >= 0 && cell < BoardSize
}

func IsValidMark(mark string) bool {
	return mark == EmptyCell || mark == PlayerX || mark == PlayerO
}
