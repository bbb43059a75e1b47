package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ballknowledge/ballknowledge-go/internal/api/request"
	"github.com/ballknowledge/ballknowledge-go/internal/api/response"
	"github.com/ballknowledge/ballknowledge-go/internal/dependencies/clock"
	"github.com/ballknowledge/ballknowledge-go/internal/model"
	"github.com/ballknowledge/ballknowledge-go/internal/services/hints"
	"github.com/ballknowledge/ballknowledge-go/internal/services/session"
	"github.com/ballknowledge/ballknowledge-go/internal/services/users"
)

// HintHandler handles hint purchase endpoints
type HintHandler struct {
	users    users.ServiceInterface
	sessions session.ControllerInterface
	hints    hints.ServiceInterface
	clock    clock.Clock
}

// NewHintHandler creates a new hint handler
func NewHintHandler(
	users users.ServiceInterface,
	sessions session.ControllerInterface,
	hints hints.ServiceInterface,
	clock clock.Clock,
) *HintHandler {
	return &HintHandler{
		users:    users,
		sessions: sessions,
		hints:    hints,
		clock:    clock,
	}
}

// Use handles POST /api/v1/daily/hints?date=...
func (h *HintHandler) Use(w http.ResponseWriter, r *http.Request) {
	date, err := gameDate(r, h.clock)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.HintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}

	user, err := h.users.GetOrCreate(r.Context(), req.Username)
	if err != nil {
		WriteError(w, err)
		return
	}

	state, err := h.sessions.GetState(r.Context(), date, user.ID)
	if err != nil {
		WriteError(w, err)
		return
	}
	if state.Terminal() {
		WriteError(w, model.ErrTerminalSession)
		return
	}

	hint, err := h.hints.Use(r.Context(), date, user.ID, model.HintKind(req.Kind), state.RevealIndex)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HintFromModel(hint))
}
