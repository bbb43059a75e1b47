package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ballknowledge/ballknowledge-go/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodePlayerNotFound   = "PLAYER_NOT_FOUND"
	CodeUserNotFound     = "USER_NOT_FOUND"
	CodeGameNotFound     = "GAME_NOT_FOUND"
	CodeResultNotFound   = "RESULT_NOT_FOUND"
	CodeStreakNotFound   = "STREAK_NOT_FOUND"
	CodeFlagNotFound     = "FLAG_NOT_FOUND"
	CodeOutOfSequence    = "OUT_OF_SEQUENCE"
	CodeDuplicateGuess   = "DUPLICATE_GUESS"
	CodeSessionFinished  = "SESSION_FINISHED"
	CodeResultExists     = "RESULT_EXISTS"
	CodeSelectionDrained = "SELECTION_EXHAUSTED"
	CodeUnknownHint      = "UNKNOWN_HINT"
	CodeHintUnavailable  = "HINT_UNAVAILABLE"
	CodeInternalError    = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeUserNotFound, "User not found"}}
	case errors.Is(err, model.ErrDailyGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "No daily game for this date"}}
	case errors.Is(err, model.ErrResultNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeResultNotFound, "No result for this date"}}
	case errors.Is(err, model.ErrStreakNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeStreakNotFound, "No streak recorded"}}
	case errors.Is(err, model.ErrCheatFlagNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeFlagNotFound, "No flag recorded"}}
	case errors.Is(err, model.ErrSeasonsNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "No season lines for this player"}}
	case errors.Is(err, model.ErrOutOfSequenceGuess):
		return &httpError{http.StatusConflict, APIError{CodeOutOfSequence, "Guess does not match the current reveal step"}}
	case errors.Is(err, model.ErrDuplicateGuess):
		return &httpError{http.StatusConflict, APIError{CodeDuplicateGuess, "A guess for this reveal step already exists"}}
	case errors.Is(err, model.ErrTerminalSession):
		return &httpError{http.StatusConflict, APIError{CodeSessionFinished, "Session is already finished"}}
	case errors.Is(err, model.ErrResultExists):
		return &httpError{http.StatusConflict, APIError{CodeResultExists, "A result for this date already exists"}}
	case errors.Is(err, model.ErrSelectionExhausted):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeSelectionDrained, "No eligible player for this date"}}
	case errors.Is(err, model.ErrUnknownHint):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownHint, "Unknown hint kind"}}
	case errors.Is(err, model.ErrHintUnavailable):
		return &httpError{http.StatusConflict, APIError{CodeHintUnavailable, "Hint is not available for this game"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
