package handler

import (
	"net/http"
	"strconv"

	"github.com/ballknowledge/ballknowledge-go/internal/api/response"
	"github.com/ballknowledge/ballknowledge-go/internal/dependencies/clock"
	"github.com/ballknowledge/ballknowledge-go/internal/services/leaderboard"
)

// LeaderboardHandler handles standings endpoints
type LeaderboardHandler struct {
	leaderboard leaderboard.ServiceInterface
	clock       clock.Clock
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(lb leaderboard.ServiceInterface, clock clock.Clock) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboard: lb,
		clock:       clock,
	}
}

// Get handles GET /api/v1/leaderboard?date=...&limit=...
func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	date, err := gameDate(r, h.clock)
	if err != nil {
		WriteError(w, err)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			WriteError(w, NewInvalidRequestError("limit must be a non-negative integer"))
			return
		}
	}

	entries, err := h.leaderboard.ForDate(r.Context(), date, limit)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.LeaderboardFromEntries(date, entries))
}
