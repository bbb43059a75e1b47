package handler

import (
	"net/http"

	"github.com/ballknowledge/ballknowledge-go/internal/api/response"
	"github.com/ballknowledge/ballknowledge-go/internal/services/suggest"
)

// SuggestHandler handles the roster suggestion endpoint
type SuggestHandler struct {
	suggest suggest.ServiceInterface
}

// NewSuggestHandler creates a new suggestion handler
func NewSuggestHandler(suggest suggest.ServiceInterface) *SuggestHandler {
	return &SuggestHandler{suggest: suggest}
}

// Get handles GET /api/v1/suggestions?q=...
func (h *SuggestHandler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		WriteError(w, NewInvalidRequestError("q is required"))
		return
	}

	names, err := h.suggest.ForGuess(r.Context(), q)
	if err != nil {
		WriteError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	response.JSON(w, http.StatusOK, response.Suggestions{Suggestions: names})
}
