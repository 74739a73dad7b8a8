package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/repository"
)

var errRedisDown = errors.New("redis down")

const (
	x = entity.PlayerX
	o = entity.PlayerO
	e = entity.EmptyCell
)

func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// failingStore rejects writes once failWrites is set, or writes to failKey.
type failingStore struct {
	repository.KeyValue
	failWrites bool
	failReads  bool
	failKey    string
}

func (that *failingStore) Get(ctx context.Context, key string) (string, error) {
	if that.failReads {
		return "", errRedisDown
	}

	return that.KeyValue.Get(ctx, key)
}

func (that *failingStore) Set(ctx context.Context, key, value string) error {
	if that.failWrites || key == that.failKey {
		return errRedisDown
	}

	return that.KeyValue.Set(ctx, key, value)
}

func newGame(t *testing.T, store repository.KeyValue) *GameHistory {
	t.Helper()

	game, err := LoadGame(context.Background(), newLogger(), store)
	require.NoError(t, err)

	return game
}

func play(t *testing.T, game *GameHistory, cells ...int) {
	t.Helper()

	for _, cell := range cells {
		applied, err := game.SelectCell(context.Background(), cell)
		require.NoError(t, err)
		require.True(t, applied, "cell %d", cell)
	}
}

func TestLoadGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Fresh store starts an empty game", func(t *testing.T) {
		// Given: an empty store
		store := repository.NewMemoryKeyValue()

		// When: loading the game
		game := newGame(t, store)

		// Then: the board is empty and the history holds only the start
		assert.Equal(t, entity.NewBoard(), game.Board())
		assert.Equal(t, entity.NewHistory(), game.History())

		// And: nothing was written
		_, err := store.Get(ctx, BoardKey)
		require.ErrorIs(t, err, repository.ErrKeyNotFound)
	})

	t.Run("Restores a saved game", func(t *testing.T) {
		// Given: a game played through one store
		store := repository.NewMemoryKeyValue()
		play(t, newGame(t, store), 4, 0)

		// When: loading it again
		game := newGame(t, store)

		// Then: board and history come back
		assert.Equal(t, entity.Board{o, e, e, e, x, e, e, e, e}, game.Board())
		assert.Len(t, game.History(), 3)
	})

	t.Run("Restores a rewound position", func(t *testing.T) {
		store := repository.NewMemoryKeyValue()
		first := newGame(t, store)
		play(t, first, 4, 0, 8)
		require.NoError(t, first.JumpTo(ctx, 1))

		game := newGame(t, store)

		assert.Equal(t, 1, game.State().MoveIndex)
		assert.Len(t, game.History(), 4)
	})

	t.Run("Board ahead of history falls back to the last move", func(t *testing.T) {
		// Given: a history with one move and a board with two
		store := repository.NewMemoryKeyValue()
		require.NoError(t, store.Set(ctx, HistoryKey, `[["","","","","","","","",""],["X","","","","","","","",""]]`))
		require.NoError(t, store.Set(ctx, BoardKey, `["X","O","","","","","","",""]`))

		// When: loading the game
		game := newGame(t, store)

		// Then: the last history entry is shown and saved
		assert.Equal(t, entity.Board{x}, game.Board())

		raw, err := store.Get(ctx, BoardKey)
		require.NoError(t, err)
		assert.Equal(t, `["X","","","","","","","",""]`, raw)
	})

	t.Run("Inconsistent history resets the game", func(t *testing.T) {
		// Given: a history whose second entry has two marks
		store := repository.NewMemoryKeyValue()
		require.NoError(t, store.Set(ctx, HistoryKey, `[["","","","","","","","",""],["X","O","","","","","","",""]]`))
		require.NoError(t, store.Set(ctx, BoardKey, `["X","O","","","","","","",""]`))

		// When: loading the game
		game := newGame(t, store)

		// Then: a fresh game is started
		assert.Equal(t, entity.NewBoard(), game.Board())
		assert.Equal(t, entity.NewHistory(), game.History())
	})

	t.Run("Malformed stored board is an error", func(t *testing.T) {
		store := repository.NewMemoryKeyValue()
		require.NoError(t, store.Set(ctx, BoardKey, `{"not":"a board"}`))

		game, err := LoadGame(ctx, newLogger(), store)

		require.Error(t, err)
		assert.Nil(t, game)
	})

	t.Run("Read failure propagates", func(t *testing.T) {
		store := &failingStore{KeyValue: repository.NewMemoryKeyValue(), failReads: true}

		game, err := LoadGame(ctx, newLogger(), store)

		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, game)
	})
}

func TestGameHistory_SelectCell(t *testing.T) {
	ctx := context.Background()

	t.Run("Places X first and O second", func(t *testing.T) {
		// Given: a new game
		game := newGame(t, repository.NewMemoryKeyValue())

		// When: two cells are selected
		play(t, game, 4, 0)

		// Then: X and O alternate and every move is recorded
		expected := entity.History{
			{},
			{e, e, e, e, x, e, e, e, e},
			{o, e, e, e, x, e, e, e, e},
		}
		assert.Equal(t, expected, game.History())
		assert.Equal(t, expected[2], game.Board())
	})

	t.Run("Filled cell is ignored", func(t *testing.T) {
		// Given: a game with X in the center
		game := newGame(t, repository.NewMemoryKeyValue())
		play(t, game, 4)
		board, history := game.Board(), game.History()

		// When: the center is selected again
		applied, err := game.SelectCell(ctx, 4)

		// Then: nothing changes
		require.NoError(t, err)
		assert.False(t, applied)
		assert.Equal(t, board, game.Board())
		assert.Equal(t, history, game.History())
	})

	t.Run("Moves after a win are ignored", func(t *testing.T) {
		// Given: X has won on the top row
		game := newGame(t, repository.NewMemoryKeyValue())
		play(t, game, 0, 3, 1, 4, 2)
		board, history := game.Board(), game.History()

		// When: an empty cell is selected
		applied, err := game.SelectCell(ctx, 8)

		// Then: nothing changes
		require.NoError(t, err)
		assert.False(t, applied)
		assert.Equal(t, board, game.Board())
		assert.Equal(t, history, game.History())
	})

	t.Run("Out of range cell is an error", func(t *testing.T) {
		game := newGame(t, repository.NewMemoryKeyValue())

		_, err := game.SelectCell(ctx, 9)
		require.ErrorIs(t, err, apperror.ErrInvalidCell)

		_, err = game.SelectCell(ctx, -1)
		require.ErrorIs(t, err, apperror.ErrInvalidCell)
	})

	t.Run("New move after a jump discards later moves", func(t *testing.T) {
		// Given: three moves played and a jump back to move 1
		game := newGame(t, repository.NewMemoryKeyValue())
		play(t, game, 4, 0, 8)
		require.NoError(t, game.JumpTo(ctx, 1))

		// When: O plays a different cell
		play(t, game, 2)

		// Then: the history has m+2 entries with the new board last
		history := game.History()
		require.Len(t, history, 3)
		assert.Equal(t, entity.Board{e, e, o, e, x, e, e, e, e}, history[2])
		assert.Equal(t, history[2], game.Board())
	})

	t.Run("Selecting from the start after a jump", func(t *testing.T) {
		game := newGame(t, repository.NewMemoryKeyValue())
		play(t, game, 4, 0)
		require.NoError(t, game.JumpTo(ctx, 0))

		play(t, game, 8)

		assert.Equal(t, entity.History{{}, {e, e, e, e, e, e, e, e, x}}, game.History())
	})

	t.Run("Write failure propagates", func(t *testing.T) {
		// Given: a store that starts rejecting writes
		store := &failingStore{KeyValue: repository.NewMemoryKeyValue()}
		game := newGame(t, store)
		store.failWrites = true

		// When: a cell is selected
		applied, err := game.SelectCell(ctx, 0)

		// Then: the error reaches the caller
		require.ErrorIs(t, err, errRedisDown)
		assert.False(t, applied)
	})

	t.Run("Game stays playable after a failed board write", func(t *testing.T) {
		// Given: one move played, then the store goes down
		store := &failingStore{KeyValue: repository.NewMemoryKeyValue()}
		game := newGame(t, store)
		play(t, game, 0)
		store.failWrites = true

		// When: the next move cannot be saved
		_, err := game.SelectCell(ctx, 1)
		require.ErrorIs(t, err, errRedisDown)

		// Then: the board still matches the history
		assert.Equal(t, entity.Board{x, e, e, e, e, e, e, e, e}, game.Board())
		assert.Equal(t, game.History().Last(), game.Board())
		assert.Len(t, game.History(), 2)

		// When: the store recovers and play goes on
		store.failWrites = false
		play(t, game, 1, 2)

		// Then: the history has every move
		assert.Len(t, game.History(), 4)
		assert.Equal(t, "Next player: O", game.State().Status)
	})

	t.Run("Game stays playable after a failed history write", func(t *testing.T) {
		// Given: one move played and a store that rejects history writes
		inner := repository.NewMemoryKeyValue()
		store := &failingStore{KeyValue: inner}
		game := newGame(t, store)
		play(t, game, 0)
		store.failKey = HistoryKey

		// When: the board is saved but the history is not
		_, err := game.SelectCell(ctx, 1)
		require.ErrorIs(t, err, errRedisDown)

		// Then: memory holds the last consistent position
		assert.Equal(t, entity.Board{x, e, e, e, e, e, e, e, e}, game.Board())
		assert.Len(t, game.History(), 2)

		// And: reloading the half-written store falls back to the last saved move
		store.failKey = ""
		reloaded := newGame(t, inner)
		assert.Equal(t, game.Board(), reloaded.Board())
		assert.Equal(t, game.History(), reloaded.History())

		// And: the original game can still play the same cell
		play(t, game, 1)
		assert.Len(t, game.History(), 3)
	})

	t.Run("Full game ends with a winner", func(t *testing.T) {
		// Given: a new game
		game := newGame(t, repository.NewMemoryKeyValue())

		// When: X plays 0,1,2 and O plays 3,4
		play(t, game, 0, 3, 1, 4, 2)

		// Then: X wins on the top row
		state := game.State()
		assert.Equal(t, x, state.Winner)
		assert.Equal(t, "Winner: X", state.Status)
		assert.Equal(t, []int{0, 1, 2}, state.WinningLine)
		assert.True(t, state.Finished)
		assert.Equal(t, 5, state.MoveIndex)
		assert.Equal(t, 6, state.HistorySize)
	})

	t.Run("Full board without a winner is a draw", func(t *testing.T) {
		game := newGame(t, repository.NewMemoryKeyValue())

		// X: 0 2 3 7 8, O: 1 4 5 6
		play(t, game, 0, 1, 2, 4, 3, 5, 7, 6, 8)

		state := game.State()
		assert.Equal(t, e, state.Winner)
		assert.Equal(t, "Scratch: Cat's game", state.Status)
		assert.True(t, state.Finished)

		applied, err := game.SelectCell(ctx, 0)
		require.NoError(t, err)
		assert.False(t, applied)
	})
}

func TestGameHistory_JumpTo(t *testing.T) {
	ctx := context.Background()

	t.Run("Shows a past board and keeps the history", func(t *testing.T) {
		// Given: three moves
		store := repository.NewMemoryKeyValue()
		game := newGame(t, store)
		play(t, game, 4, 0, 8)
		history := game.History()

		// When: jumping to move 1
		require.NoError(t, game.JumpTo(ctx, 1))

		// Then: move 1 is displayed and the history is intact
		assert.Equal(t, history[1], game.Board())
		assert.Equal(t, history, game.History())
		assert.Equal(t, "Next player: O", game.State().Status)

		raw, err := store.Get(ctx, BoardKey)
		require.NoError(t, err)
		assert.Equal(t, `["","","","","X","","","",""]`, raw)
	})

	t.Run("Jump out of a finished game allows play again", func(t *testing.T) {
		game := newGame(t, repository.NewMemoryKeyValue())
		play(t, game, 0, 3, 1, 4, 2)

		require.NoError(t, game.JumpTo(ctx, 4))
		play(t, game, 8)

		assert.Equal(t, "Next player: O", game.State().Status)
		assert.Len(t, game.History(), 6)
	})

	t.Run("Unknown move is an error", func(t *testing.T) {
		game := newGame(t, repository.NewMemoryKeyValue())
		play(t, game, 4)

		err := game.JumpTo(ctx, 2)
		require.ErrorIs(t, err, apperror.ErrInvalidMove)

		err = game.JumpTo(ctx, -1)
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
	})
}

func TestGameHistory_Restart(t *testing.T) {
	ctx := context.Background()

	// Given: a game in progress
	store := repository.NewMemoryKeyValue()
	game := newGame(t, store)
	play(t, game, 4, 0, 8)

	// When: restarting
	require.NoError(t, game.Restart(ctx))

	// Then: a single empty board remains, also after reloading
	assert.Equal(t, entity.NewBoard(), game.Board())
	assert.Equal(t, entity.NewHistory(), game.History())

	reloaded := newGame(t, store)
	assert.Equal(t, entity.NewHistory(), reloaded.History())
}

func TestGameHistory_Moves(t *testing.T) {
	ctx := context.Background()

	// Given: two moves and a jump back to the start
	game := newGame(t, repository.NewMemoryKeyValue())
	play(t, game, 4, 0)
	require.NoError(t, game.JumpTo(ctx, 0))

	// When: listing moves
	moves := game.Moves()

	// Then: every snapshot has a labelled entry and the start is current
	expected := []Move{
		{Index: 0, Label: "Go to game start", Current: true},
		{Index: 1, Label: "Go to move #1"},
		{Index: 2, Label: "Go to move #2"},
	}
	assert.Equal(t, expected, moves)
}
