package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/ballknowledge/ballknowledge-go/internal/dependencies/clock"
	"github.com/ballknowledge/ballknowledge-go/internal/services/anomaly"
	"github.com/ballknowledge/ballknowledge-go/internal/services/daily"
	"github.com/ballknowledge/ballknowledge-go/internal/services/hints"
	"github.com/ballknowledge/ballknowledge-go/internal/services/leaderboard"
	"github.com/ballknowledge/ballknowledge-go/internal/services/scoring"
	"github.com/ballknowledge/ballknowledge-go/internal/services/session"
	"github.com/ballknowledge/ballknowledge-go/internal/services/streak"
	"github.com/ballknowledge/ballknowledge-go/internal/services/suggest"
	"github.com/ballknowledge/ballknowledge-go/internal/services/users"
	"github.com/ballknowledge/ballknowledge-go/internal/storage"
	"github.com/ballknowledge/ballknowledge-go/internal/storage/memory"
	redisstorage "github.com/ballknowledge/ballknowledge-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	Storage storage.Storage
	Clock   clock.Clock

	UserService        *users.Service
	DailyService       *daily.Service
	ScoringService     *scoring.Service
	SessionController  *session.Controller
	StreakService      *streak.Service
	AnomalyDetector    *anomaly.Detector
	HintService        *hints.Service
	SuggestService     *suggest.Service
	LeaderboardService *leaderboard.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config

	// Service configs; nil selects each package's DefaultConfig. A
	// non-nil config is taken as-is, zero values included.
	Daily   *daily.Config
	Scoring *scoring.Config
	Anomaly *anomaly.Config
	Suggest *suggest.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	return newWithDependencies(store, clock.New(), cfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, cfg Config, logger *slog.Logger) *App {
	dailyCfg := daily.DefaultConfig()
	if cfg.Daily != nil {
		dailyCfg = *cfg.Daily
	}
	scoringCfg := scoring.DefaultConfig()
	if cfg.Scoring != nil {
		scoringCfg = *cfg.Scoring
	}
	anomalyCfg := anomaly.DefaultConfig()
	if cfg.Anomaly != nil {
		anomalyCfg = *cfg.Anomaly
	}
	suggestCfg := suggest.DefaultConfig()
	if cfg.Suggest != nil {
		suggestCfg = *cfg.Suggest
	}

	userService := users.New(store, clk, logger)
	dailyService := daily.New(store, clk, dailyCfg, logger)
	scoringService := scoring.New(scoringCfg)
	sessionController := session.NewController(store, dailyService, scoringService, clk, logger)
	streakService := streak.New(store, clk, logger)
	anomalyDetector := anomaly.New(store, clk, anomalyCfg, logger)
	hintService := hints.New(store, dailyService, scoringService, logger)
	suggestService := suggest.New(store, suggestCfg)
	leaderboardService := leaderboard.New(store, clk, logger)

	return &App{
		Storage:            store,
		Clock:              clk,
		UserService:        userService,
		DailyService:       dailyService,
		ScoringService:     scoringService,
		SessionController:  sessionController,
		StreakService:      streakService,
		AnomalyDetector:    anomalyDetector,
		HintService:        hintService,
		SuggestService:     suggestService,
		LeaderboardService: leaderboardService,
	}
}
