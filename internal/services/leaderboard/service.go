// Package leaderboard aggregates finished results for a date into a
// ranked standings view.
package leaderboard

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ballknowledge/ballknowledge-go/internal/dependencies/clock"
	"github.com/ballknowledge/ballknowledge-go/internal/model"
	"github.com/ballknowledge/ballknowledge-go/internal/storage"
)

// DefaultLimit caps standings when the caller does not ask for a size
const DefaultLimit = 10

// Entry is one row of the standings for a date
type Entry struct {
	Rank     int          `json:"rank"`
	UserID   model.UserID `json:"user_id"`
	Username string       `json:"username"`
	Score    int          `json:"score"`
	Correct  bool         `json:"correct"`
	Revealed int          `json:"revealed"`
}

// Service builds standings from stored results
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new leaderboard service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// ForDate returns up to limit entries for the date, best score first.
// Results storage already orders by score descending; ranks are
// assigned positionally, ties share the earlier rank's ordering.
func (s *Service) ForDate(ctx context.Context, date model.GameDate, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	results, err := s.storage.GetResultsForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if len(results) > limit {
		results = results[:limit]
	}

	entries := make([]Entry, 0, len(results))
	for i, res := range results {
		username := string(res.UserID)
		user, err := s.storage.GetUser(ctx, res.UserID)
		if err == nil {
			username = user.Username
		} else if !errors.Is(err, model.ErrUserNotFound) {
			return nil, err
		}
		entries = append(entries, Entry{
			Rank:     i + 1,
			UserID:   res.UserID,
			Username: username,
			Score:    res.Score,
			Correct:  res.Correct(),
			Revealed: res.Revealed,
		})
	}
	return entries, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	ForDate(ctx context.Context, date model.GameDate, limit int) ([]Entry, error)
}

var _ ServiceInterface = (*Service)(nil)
