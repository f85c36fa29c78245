package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/LevanIlashvili/stylish-go-app/internal/board"
	"github.com/LevanIlashvili/stylish-go-app/internal/model"
	"github.com/LevanIlashvili/stylish-go-app/internal/move"
)

// Sessions is the game-level surface; *game.Session implements it.
type Sessions interface {
	HasActiveGame(ctx context.Context) (bool, error)
	CreateGame(ctx context.Context) (bool, move.Result)
}

// Actions runs player intents; *move.Orchestrator implements it.
type Actions interface {
	Perform(ctx context.Context, a move.Action) move.Result
}

// GameHandler serves the game menu and the board screen.
type GameHandler struct {
	session Sessions
	board   move.Board
	actions Actions
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(session Sessions, b move.Board, actions Actions) *GameHandler {
	return &GameHandler{session: session, board: b, actions: actions}
}

// Game handles GET /game
// @Summary      Active game check
// @Description  Asks the contract whether the wallet has a game (ended games included)
// @Tags         game
// @Produce      json
// @Success      200  {object}  model.GameResponse
// @Failure      412  {object}  model.ErrorResponse
// @Failure      502  {object}  model.ErrorResponse
// @Router       /game [get]
func (h *GameHandler) Game(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	has, err := h.session.HasActiveGame(r.Context())
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, model.GameResponse{HasGame: has})
}

// Create handles POST /game/create
// @Summary      Create game
// @Description  Submits createGame and waits for one confirmation
// @Tags         game
// @Produce      json
// @Success      200  {object}  model.ActionResponse
// @Failure      409  {object}  model.ActionResponse
// @Failure      502  {object}  model.ActionResponse
// @Router       /game/create [post]
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	_, res := h.session.CreateGame(r.Context())
	writeResult(w, res)
}

// Board handles GET /game/board
// @Summary      Board state
// @Description  Refreshes the board from the contract. On failure the last good board is not replaced.
// @Tags         game
// @Produce      json
// @Success      200  {object}  model.BoardResponse
// @Failure      412  {object}  model.ErrorResponse
// @Failure      502  {object}  model.ErrorResponse
// @Router       /game/board [get]
func (h *GameHandler) Board(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	snap, err := h.board.Refresh(r.Context())
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, snap.Response())
}

// Move handles POST /game/move
// @Summary      Place stone
// @Description  Places a stone at the tapped row and column
// @Tags         game
// @Accept       json
// @Produce      json
// @Param        request  body      model.MoveRequest  true  "Tapped position"
// @Success      200      {object}  model.ActionResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ActionResponse
// @Failure      502      {object}  model.ActionResponse
// @Router       /game/move [post]
func (h *GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}

	var req model.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if _, _, err := board.TapToMove(req.Row, req.Col, h.board.Size()); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeResult(w, h.actions.Perform(r.Context(), move.PlaceStone(req.Row, req.Col)))
}

// Pass handles POST /game/pass
// @Summary      Pass turn
// @Tags         game
// @Produce      json
// @Success      200  {object}  model.ActionResponse
// @Failure      409  {object}  model.ActionResponse
// @Failure      502  {object}  model.ActionResponse
// @Router       /game/pass [post]
func (h *GameHandler) Pass(w http.ResponseWriter, r *http.Request) {
	h.perform(w, r, move.Pass())
}

// Abandon handles POST /game/abandon
// @Summary      Abandon game
// @Description  Abandons the game, or starts a new one if it has ended. navigateAway is set only for a real abandon.
// @Tags         game
// @Produce      json
// @Success      200  {object}  model.ActionResponse
// @Failure      409  {object}  model.ActionResponse
// @Failure      502  {object}  model.ActionResponse
// @Router       /game/abandon [post]
func (h *GameHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	h.perform(w, r, move.Abandon())
}

// NewGame handles POST /game/new
// @Summary      Start new game
// @Tags         game
// @Produce      json
// @Success      200  {object}  model.ActionResponse
// @Failure      409  {object}  model.ActionResponse
// @Failure      502  {object}  model.ActionResponse
// @Router       /game/new [post]
func (h *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	h.perform(w, r, move.StartNewGame())
}

func (h *GameHandler) perform(w http.ResponseWriter, r *http.Request, a move.Action) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	writeResult(w, h.actions.Perform(r.Context(), a))
}

func writeResult(w http.ResponseWriter, res move.Result) {
	status := http.StatusOK
	if !res.OK {
		status = statusFor(res.Err)
	}
	writeJSON(w, status, res.Response())
}
