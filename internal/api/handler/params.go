package handler

import (
	"net/http"

	"github.com/ballknowledge/ballknowledge-go/internal/dependencies/clock"
	"github.com/ballknowledge/ballknowledge-go/internal/model"
)

// gameDate resolves the optional ?date=YYYY-MM-DD query parameter,
// defaulting to today
func gameDate(r *http.Request, clk clock.Clock) (model.GameDate, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return model.DateOf(clk.Now()), nil
	}
	date, err := model.ParseGameDate(raw)
	if err != nil {
		return "", NewInvalidRequestError("date must be YYYY-MM-DD")
	}
	return date, nil
}
