package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/persisted"
	"github.com/rocketscienceinc/tictactoe-history/internal/repository"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

const (
	BoardKey   = "tic-tac-toe:board"
	HistoryKey = "tic-tac-toe:history"
)

// Move is one entry of the move list shown next to the board.
type Move struct {
	Index   int    `json:"index"`
	Label   string `json:"label"`
	Current bool   `json:"current"`
}

// GameState is everything a UI needs to render the game.
type GameState struct {
	Board       entity.Board `json:"board"`
	MoveIndex   int          `json:"move_index"`
	HistorySize int          `json:"history_size"`
	NextPlayer  string       `json:"next_player"`
	Winner      string       `json:"winner"`
	WinningLine []int        `json:"winning_line,omitempty"`
	Status      string       `json:"status"`
	Finished    bool         `json:"finished"`
	Moves       []Move       `json:"moves"`
}

// GameHistory owns the displayed board and the linear list of snapshots that
// led to it. Both are persisted under BoardKey and HistoryKey.
type GameHistory struct {
	logger  *slog.Logger
	board   *persisted.Value[entity.Board]
	history *persisted.Value[entity.History]
}

// LoadGame restores a game from store, repairing state that does not fit the
// move history.
func LoadGame(ctx context.Context, logger *slog.Logger, store repository.KeyValue) (*GameHistory, error) {
	board, err := persisted.Load(ctx, store, BoardKey, entity.NewBoard())
	if err != nil {
		return nil, fmt.Errorf("failed to load board: %w", err)
	}

	history, err := persisted.Load(ctx, store, HistoryKey, entity.NewHistory())
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	game := &GameHistory{
		logger:  logger.With("component", "game_history"),
		board:   board,
		history: history,
	}

	if err = game.repair(ctx); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *GameHistory) repair(ctx context.Context) error {
	log := that.logger.With("method", "repair")

	if err := that.history.Get().Validate(); err != nil {
		log.Warn("resetting game", "error", err)

		return that.Restart(ctx)
	}

	board := that.board.Get()
	history := that.history.Get()

	move := tictactoe.MoveIndex(board)
	if history.Contains(move) && history[move] == board {
		return nil
	}

	log.Warn("board does not match history, showing last move", "move", move, "history_size", len(history))

	if err := that.board.Set(ctx, history.Last()); err != nil {
		return fmt.Errorf("failed to save board: %w", err)
	}

	return nil
}

// SelectCell plays the next mark at cell. Filled cells and finished games are
// ignored and report false. Moves after the current position are discarded.
func (that *GameHistory) SelectCell(ctx context.Context, cell int) (bool, error) {
	log := that.logger.With("method", "SelectCell", "cell", cell)

	if !entity.IsValidCell(cell) {
		return false, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	board := that.board.Get()
	if !board.IsEmptyAt(cell) || tictactoe.Winner(board) != entity.EmptyCell {
		log.Debug("cell ignored")
		return false, nil
	}

	history := that.history.Get()
	next := board.With(cell, tictactoe.NextPlayer(board))

	// on a failed write the in-memory game goes back to the last consistent
	// pair; a half-written store is repaired on the next load
	if err := that.board.Set(ctx, next); err != nil {
		that.board.Restore(board)
		return false, fmt.Errorf("failed to save board: %w", err)
	}

	if err := that.history.Set(ctx, history.Append(tictactoe.MoveIndex(board), next)); err != nil {
		that.board.Restore(board)
		that.history.Restore(history)

		return false, fmt.Errorf("failed to save history: %w", err)
	}

	log.Info("cell selected", "mark", next[cell], "status", tictactoe.Status(next))

	return true, nil
}

// JumpTo shows the board after move without changing the history.
func (that *GameHistory) JumpTo(ctx context.Context, move int) error {
	history := that.history.Get()
	if !history.Contains(move) {
		return fmt.Errorf("%w: move %d of %d", apperror.ErrInvalidMove, move, len(history))
	}

	if err := that.board.Set(ctx, history[move]); err != nil {
		return fmt.Errorf("failed to save board: %w", err)
	}

	that.logger.Info("jumped to move", "move", move)

	return nil
}

// Restart clears the board and the history.
func (that *GameHistory) Restart(ctx context.Context) error {
	if err := that.board.Set(ctx, entity.NewBoard()); err != nil {
		return fmt.Errorf("failed to save board: %w", err)
	}

	if err := that.history.Set(ctx, entity.NewHistory()); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}

	that.logger.Info("game restarted")

	return nil
}

func (that *GameHistory) Board() entity.Board {
	return that.board.Get()
}

func (that *GameHistory) History() entity.History {
	return that.history.Get()
}

func (that *GameHistory) Moves() []Move {
	current := tictactoe.MoveIndex(that.board.Get())
	history := that.history.Get()

	moves := make([]Move, 0, len(history))
	for i := range history {
		moves = append(moves, Move{
			Index:   i,
			Label:   moveLabel(i),
			Current: i == current,
		})
	}

	return moves
}

func (that *GameHistory) State() GameState {
	board := that.board.Get()

	state := GameState{
		Board:       board,
		MoveIndex:   tictactoe.MoveIndex(board),
		HistorySize: len(that.history.Get()),
		NextPlayer:  tictactoe.NextPlayer(board),
		Winner:      tictactoe.Winner(board),
		Status:      tictactoe.Status(board),
		Finished:    tictactoe.IsTerminal(board),
		Moves:       that.Moves(),
	}

	if line, ok := tictactoe.WinningLine(board); ok {
		state.WinningLine = line[:]
	}

	return state
}

func moveLabel(move int) string {
	if move == 0 {
		return "Go to game start"
	}

	return "Go to move #" + strconv.Itoa(move)
}
