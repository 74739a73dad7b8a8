package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/usecase"
)

func (m Model) View() string {
	state := m.game.State()

	game := lipgloss.JoinHorizontal(lipgloss.Top,
		m.pane(paneBoard, m.boardView(state)),
		" ",
		m.pane(paneMoves, m.movesView(state)),
	)

	var b strings.Builder
	b.WriteString(titleStyle.Render("tic-tac-toe"))
	b.WriteString("\n")
	b.WriteString(game)
	b.WriteString("\n")
	b.WriteString(m.pane(paneField, m.input.View()))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(mutedStyle.Render(m.help()))

	return b.String()
}

func (m Model) pane(p pane, content string) string {
	if m.focus == p {
		return focusedPaneStyle.Render(content)
	}

	return paneStyle.Render(content)
}

func (m Model) boardView(state usecase.GameState) string {
	winning := make(map[int]bool, len(state.WinningLine))
	for _, cell := range state.WinningLine {
		winning[cell] = true
	}

	rows := make([]string, 0, 4)
	for row := 0; row < 3; row++ {
		cells := make([]string, 0, 3)
		for col := 0; col < 3; col++ {
			cell := row*3 + col
			cells = append(cells, m.cellView(cell, state.Board[cell], winning[cell]))
		}

		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	rows = append(rows, "", statusStyle.Render(state.Status))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) cellView(cell int, mark string, winning bool) string {
	text := mutedStyle.Render("·")

	switch mark {
	case entity.PlayerX:
		text = markXStyle.Render(mark)
	case entity.PlayerO:
		text = markOStyle.Render(mark)
	}

	switch {
	case winning:
		return winCellStyle.Render(mark)
	case m.focus == paneBoard && m.cursor == cell:
		return cursorCellStyle.Render(text)
	default:
		return cellStyle.Render(text)
	}
}

func (m Model) movesView(state usecase.GameState) string {
	lines := make([]string, 0, len(state.Moves))

	for _, move := range state.Moves {
		prefix := "  "
		if m.focus == paneMoves && m.moveCursor == move.Index {
			prefix = "> "
		}

		line := prefix + move.Label
		if move.Current {
			line = currentStyle.Render(line + " •")
		}

		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

func (m Model) help() string {
	switch m.focus {
	case paneField:
		return "type to edit • tab next pane • ctrl+c quit"
	case paneMoves:
		return "↑/↓ choose • enter jump • r restart • tab next pane • q quit"
	default:
		return "arrows move • enter/1-9 play • r restart • tab next pane • q quit"
	}
}
