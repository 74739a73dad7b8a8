package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/repository"
	"github.com/rocketscienceinc/tictactoe-history/internal/usecase"
)

const (
	maxFieldBody = 64 << 10
	lockShards   = 64
)

type fieldRequest struct {
	Value *string `json:"value"`
}

type fieldResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handlers serve the game and the form field. State lives in the store under
// a per-session namespace; every request loads it, applies one operation and
// writes it back.
type Handlers struct {
	logger *slog.Logger
	store  repository.KeyValue

	fieldKey     string
	fieldDefault string

	locks [lockShards]sync.Mutex
}

func NewHandlers(logger *slog.Logger, store repository.KeyValue, fieldKey, fieldDefault string) *Handlers {
	return &Handlers{
		logger:       logger.With("component", "rest"),
		store:        store,
		fieldKey:     fieldKey,
		fieldDefault: fieldDefault,
	}
}

func (that *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /game", that.getGame)
	mux.HandleFunc("POST /game/cells/{cell}", that.selectCell)
	mux.HandleFunc("POST /game/moves/{move}", that.jumpTo)
	mux.HandleFunc("POST /game/restart", that.restart)
	mux.HandleFunc("GET /field", that.getField)
	mux.HandleFunc("PUT /field", that.putField)
}

// getGame may write: loading repairs a stored board that does not match its
// history and saves the fix. The repair is idempotent, so repeated GETs
// return the same state and write nothing further.
func (that *Handlers) getGame(w http.ResponseWriter, r *http.Request) {
	that.withGame(w, r, nil)
}

func (that *Handlers) selectCell(w http.ResponseWriter, r *http.Request) {
	cell, err := strconv.Atoi(r.PathValue("cell"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%v: %q", apperror.ErrInvalidCell, r.PathValue("cell")))
		return
	}

	that.withGame(w, r, func(ctx context.Context, game *usecase.GameHistory) error {
		_, err := game.SelectCell(ctx, cell)
		return err
	})
}

func (that *Handlers) jumpTo(w http.ResponseWriter, r *http.Request) {
	move, err := strconv.Atoi(r.PathValue("move"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%v: %q", apperror.ErrInvalidMove, r.PathValue("move")))
		return
	}

	that.withGame(w, r, func(ctx context.Context, game *usecase.GameHistory) error {
		return game.JumpTo(ctx, move)
	})
}

func (that *Handlers) restart(w http.ResponseWriter, r *http.Request) {
	that.withGame(w, r, func(ctx context.Context, game *usecase.GameHistory) error {
		return game.Restart(ctx)
	})
}

func (that *Handlers) getField(w http.ResponseWriter, r *http.Request) {
	that.withField(w, r, nil)
}

func (that *Handlers) putField(w http.ResponseWriter, r *http.Request) {
	var req fieldRequest

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFieldBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Value == nil {
		writeError(w, http.StatusBadRequest, "value is required")
		return
	}

	that.withField(w, r, func(ctx context.Context, field *usecase.FormField) error {
		return field.Change(ctx, *req.Value)
	})
}

func (that *Handlers) withGame(w http.ResponseWriter, r *http.Request, apply func(context.Context, *usecase.GameHistory) error) {
	ctx := r.Context()
	session := sessionID(w, r)
	log := that.logger.With("method", r.Method+" "+r.URL.Path, "session", session)

	unlock := that.lock(session)
	defer unlock()

	game, err := usecase.LoadGame(ctx, log, repository.WithNamespace(that.store, session))
	if err != nil {
		that.fail(w, log, err)
		return
	}

	if apply != nil {
		if err = apply(ctx, game); err != nil {
			that.fail(w, log, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, game.State())
}

func (that *Handlers) withField(w http.ResponseWriter, r *http.Request, apply func(context.Context, *usecase.FormField) error) {
	ctx := r.Context()
	session := sessionID(w, r)
	log := that.logger.With("method", r.Method+" "+r.URL.Path, "session", session)

	unlock := that.lock(session)
	defer unlock()

	field, err := usecase.LoadFormField(ctx, log, repository.WithNamespace(that.store, session), that.fieldKey, that.fieldDefault)
	if err != nil {
		that.fail(w, log, err)
		return
	}

	if apply != nil {
		if err = apply(ctx, field); err != nil {
			that.fail(w, log, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, fieldResponse{Key: field.Key(), Value: field.Value()})
}

// lock serializes requests of one session so a board and its history are
// written together. Sessions share a fixed set of mutexes, so a client that
// drops its cookie on every request does not grow any state here.
func (that *Handlers) lock(session string) func() {
	mu := &that.locks[lockShard(session)]
	mu.Lock()

	return mu.Unlock
}

func lockShard(session string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(session))

	return int(h.Sum32() % lockShards)
}

func (that *Handlers) fail(w http.ResponseWriter, log *slog.Logger, err error) {
	if errors.Is(err, apperror.ErrInvalidCell) || errors.Is(err, apperror.ErrInvalidMove) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	log.Error("request failed", "error", err)
	writeError(w, http.StatusInternalServerError, "Internal Server Error")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Default().Error("failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
