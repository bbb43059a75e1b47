package daily

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sort"

	"github.com/ballknowledge/ballknowledge-go/internal/dependencies/clock"
	"github.com/ballknowledge/ballknowledge-go/internal/model"
	"github.com/ballknowledge/ballknowledge-go/internal/storage"
)

// Config holds daily selection settings
type Config struct {
	// ExclusionWindowDays excludes players selected within the most
	// recent W days from re-selection
	ExclusionWindowDays int

	// Seed is combined with the date string when deriving the
	// selection index, so deployments can vary their schedule without
	// changing code
	Seed string
}

// DefaultConfig returns sensible defaults for daily selection
func DefaultConfig() Config {
	return Config{
		ExclusionWindowDays: 30,
		Seed:                "ballknowledge",
	}
}

// Service deterministically selects and persists the player of the day
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	cfg     Config
	logger  *slog.Logger
}

// New creates a new daily selection service
func New(storage storage.Storage, clock clock.Clock, cfg Config, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		cfg:     cfg,
		logger:  logger,
	}
}

// GetOrCreate returns the daily game for a date, selecting and
// persisting it on first request. Selection is a pure function of the
// date, the configured seed and the selection history, so concurrent
// first callers pick the same player; the storage layer's
// unique-per-date write decides the winner and losers read it back.
func (s *Service) GetOrCreate(ctx context.Context, date model.GameDate) (*model.DailyGame, error) {
	existing, err := s.storage.GetDailyGame(ctx, date)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, model.ErrDailyGameNotFound) {
		return nil, err
	}

	player, err := s.selectPlayer(ctx, date)
	if err != nil {
		return nil, err
	}

	game := &model.DailyGame{
		Date:      date,
		PlayerID:  player.ID,
		CreatedAt: s.clock.Now(),
	}

	created, err := s.storage.CreateDailyGame(ctx, game)
	if err != nil {
		return nil, err
	}
	if !created {
		// Lost the race; another caller persisted first
		return s.storage.GetDailyGame(ctx, date)
	}

	s.logger.Info("daily game created",
		slog.String("game_date", string(date)),
		slog.String("player_id", string(player.ID)),
		slog.String("player_slug", player.Slug),
	)

	return game, nil
}

// RevealSequence returns the ordered stat lines for the date's player,
// capped at the reveal limit. Ordering is date-seeded and deterministic
// so every caller sees the same sequence for a date.
func (s *Service) RevealSequence(ctx context.Context, game *model.DailyGame) ([]model.SeasonLine, error) {
	lines, err := s.storage.GetSeasonLines(ctx, game.PlayerID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return s.revealRank(game.Date, lines[i].Season) < s.revealRank(game.Date, lines[j].Season)
	})

	if len(lines) > model.MaxRevealIndex {
		lines = lines[:model.MaxRevealIndex]
	}
	return lines, nil
}

// selectPlayer picks the day's player from the eligible roster
func (s *Service) selectPlayer(ctx context.Context, date model.GameDate) (*model.Player, error) {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	excluded, err := s.recentSelections(ctx, date)
	if err != nil {
		return nil, err
	}

	eligible := make([]*model.Player, 0, len(players))
	for _, p := range players {
		if !excluded[p.ID] {
			eligible = append(eligible, p)
		}
	}
	if len(eligible) == 0 {
		return nil, model.ErrSelectionExhausted
	}

	// Stable candidate order, then a date-hash index: same date and
	// history always yield the same player
	sort.Slice(eligible, func(i, j int) bool {
		return eligible[i].Slug < eligible[j].Slug
	})

	idx := s.dateHash(date) % uint64(len(eligible))
	return eligible[idx], nil
}

// recentSelections returns the players chosen within the exclusion window
func (s *Service) recentSelections(ctx context.Context, date model.GameDate) (map[model.PlayerID]bool, error) {
	excluded := make(map[model.PlayerID]bool)
	for i := 1; i <= s.cfg.ExclusionWindowDays; i++ {
		game, err := s.storage.GetDailyGame(ctx, date.AddDays(-i))
		if errors.Is(err, model.ErrDailyGameNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		excluded[game.PlayerID] = true
	}
	return excluded, nil
}

// dateHash derives a stable index seed from the date and configured seed
func (s *Service) dateHash(date model.GameDate) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s", s.cfg.Seed, date)
	return h.Sum64()
}

// revealRank orders a player's seasons for a given date
func (s *Service) revealRank(date model.GameDate, season int) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%d", s.cfg.Seed, date, season)
	return h.Sum64()
}

// Interface for dependency injection
type ServiceInterface interface {
	GetOrCreate(ctx context.Context, date model.GameDate) (*model.DailyGame, error)
	RevealSequence(ctx context.Context, game *model.DailyGame) ([]model.SeasonLine, error)
}

var _ ServiceInterface = (*Service)(nil)
