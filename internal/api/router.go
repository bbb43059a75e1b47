package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ballknowledge/ballknowledge-go/internal/api/handler"
	"github.com/ballknowledge/ballknowledge-go/internal/api/middleware"
	"github.com/ballknowledge/ballknowledge-go/internal/dependencies/clock"
	"github.com/ballknowledge/ballknowledge-go/internal/services/anomaly"
	"github.com/ballknowledge/ballknowledge-go/internal/services/daily"
	"github.com/ballknowledge/ballknowledge-go/internal/services/hints"
	"github.com/ballknowledge/ballknowledge-go/internal/services/leaderboard"
	"github.com/ballknowledge/ballknowledge-go/internal/services/session"
	"github.com/ballknowledge/ballknowledge-go/internal/services/streak"
	"github.com/ballknowledge/ballknowledge-go/internal/services/suggest"
	"github.com/ballknowledge/ballknowledge-go/internal/services/users"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	Clock              clock.Clock
	UserService        users.ServiceInterface
	DailyService       daily.ServiceInterface
	SessionController  session.ControllerInterface
	StreakService      streak.ServiceInterface
	AnomalyDetector    anomaly.DetectorInterface
	HintService        hints.ServiceInterface
	SuggestService     suggest.ServiceInterface
	LeaderboardService leaderboard.ServiceInterface
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	gameHandler := handler.NewGameHandler(
		cfg.UserService,
		cfg.DailyService,
		cfg.SessionController,
		cfg.StreakService,
		cfg.AnomalyDetector,
		cfg.SuggestService,
		cfg.Clock,
		cfg.Logger,
	)
	hintHandler := handler.NewHintHandler(cfg.UserService, cfg.SessionController, cfg.HintService, cfg.Clock)
	streakHandler := handler.NewStreakHandler(cfg.UserService, cfg.StreakService, cfg.Clock)
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.LeaderboardService, cfg.Clock)
	userHandler := handler.NewUserHandler(cfg.UserService)
	suggestHandler := handler.NewSuggestHandler(cfg.SuggestService)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Daily session routes
	api.HandleFunc("/daily/session", gameHandler.GetSession).Methods(http.MethodGet)
	api.HandleFunc("/daily/guesses", gameHandler.SubmitGuess).Methods(http.MethodPost)
	api.HandleFunc("/daily/hints", hintHandler.Use).Methods(http.MethodPost)
	api.HandleFunc("/daily/cheat-flag", gameHandler.GetCheatFlag).Methods(http.MethodGet)

	// Streak routes
	api.HandleFunc("/streaks", streakHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/streaks/finalize", streakHandler.Finalize).Methods(http.MethodPost)

	// Roster and standings routes
	api.HandleFunc("/suggestions", suggestHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/leaderboard", leaderboardHandler.Get).Methods(http.MethodGet)

	// User routes
	api.HandleFunc("/users", userHandler.Create).Methods(http.MethodPost)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
