package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ballknowledge/ballknowledge-go/internal/api/request"
	"github.com/ballknowledge/ballknowledge-go/internal/api/response"
	"github.com/ballknowledge/ballknowledge-go/internal/dependencies/clock"
	"github.com/ballknowledge/ballknowledge-go/internal/services/streak"
	"github.com/ballknowledge/ballknowledge-go/internal/services/users"
)

// StreakHandler handles streak endpoints
type StreakHandler struct {
	users   users.ServiceInterface
	streaks streak.ServiceInterface
	clock   clock.Clock
}

// NewStreakHandler creates a new streak handler
func NewStreakHandler(users users.ServiceInterface, streaks streak.ServiceInterface, clock clock.Clock) *StreakHandler {
	return &StreakHandler{
		users:   users,
		streaks: streaks,
		clock:   clock,
	}
}

// Get handles GET /api/v1/streaks?username=...
func (h *StreakHandler) Get(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	user, err := h.users.GetOrCreate(r.Context(), username)
	if err != nil {
		WriteError(w, err)
		return
	}

	row, err := h.streaks.Get(r.Context(), user.ID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.StreakFromModel(user.Username, row))
}

// Finalize handles POST /api/v1/streaks/finalize?date=...
//
// Applying the same (date, user) twice is a no-op, so retries are safe.
func (h *StreakHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	date, err := gameDate(r, h.clock)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.FinalizeStreakRequest
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

	row, err := h.streaks.Finalize(r.Context(), date, user.ID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.StreakFromModel(user.Username, row))
}
