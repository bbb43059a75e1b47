package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ballknowledge/ballknowledge-go/internal/api/request"
	"github.com/ballknowledge/ballknowledge-go/internal/api/response"
	"github.com/ballknowledge/ballknowledge-go/internal/dependencies/clock"
	"github.com/ballknowledge/ballknowledge-go/internal/services/anomaly"
	"github.com/ballknowledge/ballknowledge-go/internal/services/daily"
	"github.com/ballknowledge/ballknowledge-go/internal/services/session"
	"github.com/ballknowledge/ballknowledge-go/internal/services/streak"
	"github.com/ballknowledge/ballknowledge-go/internal/services/suggest"
	"github.com/ballknowledge/ballknowledge-go/internal/services/users"
)

// GameHandler handles daily session endpoints
type GameHandler struct {
	users    users.ServiceInterface
	daily    daily.ServiceInterface
	sessions session.ControllerInterface
	streaks  streak.ServiceInterface
	detector anomaly.DetectorInterface
	suggest  suggest.ServiceInterface
	clock    clock.Clock
	logger   *slog.Logger
}

// NewGameHandler creates a new game handler
func NewGameHandler(
	users users.ServiceInterface,
	daily daily.ServiceInterface,
	sessions session.ControllerInterface,
	streaks streak.ServiceInterface,
	detector anomaly.DetectorInterface,
	suggest suggest.ServiceInterface,
	clock clock.Clock,
	logger *slog.Logger,
) *GameHandler {
	return &GameHandler{
		users:    users,
		daily:    daily,
		sessions: sessions,
		streaks:  streaks,
		detector: detector,
		suggest:  suggest,
		clock:    clock,
		logger:   logger,
	}
}

// GetSession handles GET /api/v1/daily/session?username=...&date=...
func (h *GameHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	date, err := gameDate(r, h.clock)
	if err != nil {
		WriteError(w, err)
		return
	}

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

	game, err := h.daily.GetOrCreate(r.Context(), date)
	if err != nil {
		WriteError(w, err)
		return
	}
	lines, err := h.daily.RevealSequence(r.Context(), game)
	if err != nil {
		WriteError(w, err)
		return
	}

	state, err := h.sessions.GetState(r.Context(), date, user.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.Session{
		Date:        string(date),
		Phase:       string(state.Phase),
		RevealIndex: state.RevealIndex,
		Outcome:     string(state.Outcome),
	}

	// An open session sees one line per reveal step reached; a finished
	// one sees the whole sequence and the final score
	visible := state.RevealIndex
	if state.Terminal() {
		visible = len(lines)
		result, err := h.sessions.GetResult(r.Context(), date, user.ID)
		if err != nil {
			WriteError(w, err)
			return
		}
		resp.Score = &result.Score
	}
	if visible > len(lines) {
		visible = len(lines)
	}
	resp.Lines = make([]response.RevealedLine, visible)
	for i := 0; i < visible; i++ {
		resp.Lines[i] = response.RevealedLineFromModel(lines[i])
	}

	response.JSON(w, http.StatusOK, resp)
}

// SubmitGuess handles POST /api/v1/daily/guesses?date=...
func (h *GameHandler) SubmitGuess(w http.ResponseWriter, r *http.Request) {
	date, err := gameDate(r, h.clock)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.SubmitGuessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.Text == "" {
		WriteError(w, NewInvalidRequestError("text is required"))
		return
	}

	user, err := h.users.GetOrCreate(r.Context(), req.Username)
	if err != nil {
		WriteError(w, err)
		return
	}

	outcome, err := h.sessions.Submit(r.Context(), date, user.ID, req.RevealIndex, req.Text)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.SubmitResultFromOutcome(outcome)

	if !outcome.Correct {
		// Advisory only; a near miss never counts as correct
		if suggestions, err := h.suggest.ForGuess(r.Context(), req.Text); err == nil {
			resp.Suggestions = suggestions
		}

		if !outcome.Terminal {
			game, err := h.daily.GetOrCreate(r.Context(), date)
			if err == nil {
				if lines, err := h.daily.RevealSequence(r.Context(), game); err == nil && outcome.Revealed <= len(lines) {
					line := response.RevealedLineFromModel(lines[outcome.Revealed-1])
					resp.NextLine = &line
				}
			}
		}
	}

	if outcome.Terminal {
		if player, err := h.sessions.Answer(r.Context(), date); err == nil {
			resp.Answer = player.FullName
		}

		streakRow, err := h.streaks.Finalize(r.Context(), date, user.ID)
		if err != nil {
			WriteError(w, err)
			return
		}
		st := response.StreakFromModel(user.Username, streakRow)
		resp.Streak = &st

		// Advisory annotation; never affects the persisted result
		h.detector.Evaluate(r.Context(), date, user.ID)
	}

	response.JSON(w, http.StatusOK, resp)
}

// GetCheatFlag handles GET /api/v1/daily/cheat-flag?username=...&date=...
func (h *GameHandler) GetCheatFlag(w http.ResponseWriter, r *http.Request) {
	date, err := gameDate(r, h.clock)
	if err != nil {
		WriteError(w, err)
		return
	}

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

	flag := h.detector.Evaluate(r.Context(), date, user.ID)
	response.JSON(w, http.StatusOK, response.CheatFlagFromModel(flag))
}
