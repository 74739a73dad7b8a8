// Package tui renders the game and the persisted form field in a terminal.
package tui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/usecase"
)

type pane int

const (
	paneBoard pane = iota
	paneMoves
	paneField
	paneCount
)

type gameHistory interface {
	SelectCell(ctx context.Context, cell int) (bool, error)
	JumpTo(ctx context.Context, move int) error
	Restart(ctx context.Context) error
	State() usecase.GameState
}

type formField interface {
	Key() string
	Value() string
	Change(ctx context.Context, value string) error
}

// Model is the root bubbletea model. Every operation runs synchronously
// inside Update, so ctx is kept for the lifetime of the program.
type Model struct {
	ctx    context.Context
	logger *slog.Logger

	game  gameHistory
	field formField
	input textinput.Model

	focus      pane
	cursor     int
	moveCursor int
	err        error
}

func New(ctx context.Context, logger *slog.Logger, game gameHistory, field formField) Model {
	input := textinput.New()
	input.Prompt = field.Key() + ": "
	input.Placeholder = "type here"
	input.CharLimit = 256
	input.SetValue(field.Value())

	m := Model{
		ctx:    ctx,
		logger: logger.With("component", "tui"),
		game:   game,
		field:  field,
		input:  input,
		cursor: 4,
	}
	m.moveCursor = game.State().MoveIndex

	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.focus == paneField {
			return m.updateField(msg)
		}

		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Abort):
		return m, tea.Quit
	case key.Matches(keyMsg, keys.Next):
		return m.setFocus((m.focus + 1) % paneCount)
	case key.Matches(keyMsg, keys.Prev):
		return m.setFocus((m.focus + paneCount - 1) % paneCount)
	}

	switch m.focus {
	case paneField:
		return m.updateField(msg)
	case paneMoves:
		return m.updateMoves(keyMsg)
	default:
		return m.updateBoard(keyMsg)
	}
}

func (m Model) setFocus(focus pane) (tea.Model, tea.Cmd) {
	m.focus = focus

	if focus == paneField {
		return m, m.input.Focus()
	}

	m.input.Blur()

	return m, nil
}

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cell, ok := cellKey(msg.String()); ok {
		m.cursor = cell
		return m.selectCell(cell), nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Up):
		if m.cursor >= 3 {
			m.cursor -= 3
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < entity.BoardSize-3 {
			m.cursor += 3
		}
	case key.Matches(msg, keys.Left):
		if m.cursor%3 > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Right):
		if m.cursor%3 < 2 {
			m.cursor++
		}
	case key.Matches(msg, keys.Select):
		return m.selectCell(m.cursor), nil
	case key.Matches(msg, keys.Restart):
		return m.restart(), nil
	}

	return m, nil
}

func (m Model) updateMoves(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	last := m.game.State().HistorySize - 1

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Up):
		if m.moveCursor > 0 {
			m.moveCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.moveCursor < last {
			m.moveCursor++
		}
	case key.Matches(msg, keys.Select):
		m.err = m.game.JumpTo(m.ctx, m.moveCursor)
		m.logError("jump failed", m.err)
	case key.Matches(msg, keys.Restart):
		return m.restart(), nil
	}

	return m, nil
}

func (m Model) updateField(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)

	if value := m.input.Value(); value != before {
		m.err = m.field.Change(m.ctx, value)
		m.logError("field change failed", m.err)
	}

	return m, cmd
}

func (m Model) selectCell(cell int) Model {
	_, m.err = m.game.SelectCell(m.ctx, cell)
	m.logError("select failed", m.err)
	m.moveCursor = m.game.State().MoveIndex

	return m
}

func (m Model) restart() Model {
	m.err = m.game.Restart(m.ctx)
	m.logError("restart failed", m.err)
	m.moveCursor = 0

	return m
}

func (m Model) logError(msg string, err error) {
	if err != nil {
		m.logger.Error(msg, "error", err)
	}
}
