package streak

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ballknowledge/ballknowledge-go/internal/dependencies/clock"
	"github.com/ballknowledge/ballknowledge-go/internal/model"
	"github.com/ballknowledge/ballknowledge-go/internal/storage"
)

// Service maintains per-user consecutive-correct-day streaks
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new streak service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Finalize applies a finalized Result to the user's streak: increment on
// a correct outcome, reset to zero otherwise; best never decreases.
//
// Results apply in date order. A call for the last-applied date or any
// earlier one is a no-op returning the current streak, so re-invoking
// for an already-applied Result can never count it twice. The Result
// must exist; the Result row being created at most once is what makes
// this the single trigger.
func (s *Service) Finalize(ctx context.Context, date model.GameDate, userID model.UserID) (*model.Streak, error) {
	result, err := s.storage.GetResult(ctx, date, userID)
	if err != nil {
		return nil, err
	}

	streak, err := s.storage.GetStreak(ctx, userID)
	if errors.Is(err, model.ErrStreakNotFound) {
		streak = &model.Streak{UserID: userID}
	} else if err != nil {
		return nil, err
	}

	// GameDate's YYYY-MM-DD form orders lexicographically. Anything at or
	// before the last applied date is already accounted for.
	if date <= streak.LastResultDate {
		return streak, nil
	}

	if result.Correct() {
		streak.CurrentStreak++
	} else {
		streak.CurrentStreak = 0
	}
	if streak.CurrentStreak > streak.BestStreak {
		streak.BestStreak = streak.CurrentStreak
	}
	streak.LastResultDate = date
	streak.UpdatedAt = s.clock.Now()

	if err := s.storage.SaveStreak(ctx, streak); err != nil {
		return nil, err
	}

	s.logger.Info("streak finalized",
		slog.String("game_date", string(date)),
		slog.String("user_id", string(userID)),
		slog.Int("current_streak", streak.CurrentStreak),
		slog.Int("best_streak", streak.BestStreak),
	)

	return streak, nil
}

// Get returns the user's streak row, or a zero streak if none exists yet
func (s *Service) Get(ctx context.Context, userID model.UserID) (*model.Streak, error) {
	streak, err := s.storage.GetStreak(ctx, userID)
	if errors.Is(err, model.ErrStreakNotFound) {
		return &model.Streak{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return streak, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	Finalize(ctx context.Context, date model.GameDate, userID model.UserID) (*model.Streak, error)
	Get(ctx context.Context, userID model.UserID) (*model.Streak, error)
}

var _ ServiceInterface = (*Service)(nil)
