package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ballknowledge/ballknowledge-go/internal/model"
	"github.com/ballknowledge/ballknowledge-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	key := playerKey(player.ID)

	// Pipeline for atomic save + index updates
	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.Set(ctx, slugIndexKey(player.Slug), string(player.ID), 0)
	pipe.SAdd(ctx, playersIndexKey(), key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) GetPlayerBySlug(ctx context.Context, slug string) (*model.Player, error) {
	idStr, err := s.client.Get(ctx, slugIndexKey(slug)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	return s.GetPlayer(ctx, model.PlayerID(idStr))
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	playerKeys, err := s.client.SMembers(ctx, playersIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	if len(playerKeys) == 0 {
		return []*model.Player{}, nil
	}

	values, err := s.client.MGet(ctx, playerKeys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var player model.Player
		if err := json.Unmarshal([]byte(val.(string)), &player); err != nil {
			continue // Skip invalid data
		}
		players = append(players, &player)
	}

	return players, nil
}

// Season line operations

func (s *Storage) SaveSeasonLines(ctx context.Context, playerID model.PlayerID, lines []model.SeasonLine) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, seasonsKey(playerID), data, 0).Err()
}

func (s *Storage) GetSeasonLines(ctx context.Context, playerID model.PlayerID) ([]model.SeasonLine, error) {
	data, err := s.client.Get(ctx, seasonsKey(playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSeasonsNotFound
		}
		return nil, err
	}

	var lines []model.SeasonLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// Team season operations

func (s *Storage) SaveTeamSeason(ctx context.Context, ts *model.TeamSeason) error {
	data, err := json.Marshal(ts)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, teamSeasonKey(ts.Season, ts.Team), data, 0).Err()
}

func (s *Storage) GetTeamSeason(ctx context.Context, season int, team string) (*model.TeamSeason, error) {
	data, err := s.client.Get(ctx, teamSeasonKey(season, team)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSeasonsNotFound
		}
		return nil, err
	}

	var ts model.TeamSeason
	if err := json.Unmarshal(data, &ts); err != nil {
		return nil, err
	}
	return &ts, nil
}

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	// Pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, userKey(user.ID), data, 0)
	pipe.Set(ctx, usernameIndexKey(user.Username), string(user.ID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	idStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	return s.GetUser(ctx, model.UserID(idStr))
}

// Daily game operations

func (s *Storage) CreateDailyGame(ctx context.Context, game *model.DailyGame) (bool, error) {
	data, err := json.Marshal(game)
	if err != nil {
		return false, err
	}

	// SetNX enforces unique-per-date: first writer wins, losers read
	// back the winner's row
	return s.client.SetNX(ctx, dailyGameKey(game.Date), data, 0).Result()
}

func (s *Storage) GetDailyGame(ctx context.Context, date model.GameDate) (*model.DailyGame, error) {
	data, err := s.client.Get(ctx, dailyGameKey(date)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrDailyGameNotFound
		}
		return nil, err
	}

	var game model.DailyGame
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

// Guess operations

func (s *Storage) CreateGuess(ctx context.Context, guess *model.Guess) error {
	data, err := json.Marshal(guess)
	if err != nil {
		return err
	}

	key := guessKey(guess.Date, guess.UserID, guess.RevealIndex)

	// SetNX enforces unique (date, user, reveal_index); the race loser
	// gets the duplicate error
	created, err := s.client.SetNX(ctx, key, data, s.cfg.SessionTTL).Result()
	if err != nil {
		return err
	}
	if !created {
		return model.ErrDuplicateGuess
	}

	indexKey := guessesForDateIndexKey(guess.Date)
	pipe := s.client.Pipeline()
	pipe.SAdd(ctx, indexKey, key)
	pipe.Expire(ctx, indexKey, s.cfg.SessionTTL) // Keep index TTL in sync
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetGuesses(ctx context.Context, date model.GameDate, userID model.UserID) ([]model.Guess, error) {
	keys := make([]string, 0, model.MaxRevealIndex)
	for k := model.MinRevealIndex; k <= model.MaxRevealIndex; k++ {
		keys = append(keys, guessKey(date, userID, k))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	var guesses []model.Guess
	for _, val := range values {
		if val == nil {
			continue
		}
		var guess model.Guess
		if err := json.Unmarshal([]byte(val.(string)), &guess); err != nil {
			continue // Skip invalid data
		}
		guesses = append(guesses, guess)
	}

	return guesses, nil
}

func (s *Storage) GetGuessesForDate(ctx context.Context, date model.GameDate) ([]model.Guess, error) {
	guessKeys, err := s.client.SMembers(ctx, guessesForDateIndexKey(date)).Result()
	if err != nil {
		return nil, err
	}

	if len(guessKeys) == 0 {
		return []model.Guess{}, nil
	}

	values, err := s.client.MGet(ctx, guessKeys...).Result()
	if err != nil {
		return nil, err
	}

	guesses := make([]model.Guess, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Row may have expired
		}
		var guess model.Guess
		if err := json.Unmarshal([]byte(val.(string)), &guess); err != nil {
			continue
		}
		guesses = append(guesses, guess)
	}

	return guesses, nil
}

// Result operations

func (s *Storage) CreateResult(ctx context.Context, result *model.Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	key := resultKey(result.Date, result.UserID)

	created, err := s.client.SetNX(ctx, key, data, s.cfg.SessionTTL).Result()
	if err != nil {
		return err
	}
	if !created {
		return model.ErrResultExists
	}

	indexKey := resultsForDateIndexKey(result.Date)
	pipe := s.client.Pipeline()
	pipe.SAdd(ctx, indexKey, key)
	pipe.Expire(ctx, indexKey, s.cfg.SessionTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetResult(ctx context.Context, date model.GameDate, userID model.UserID) (*model.Result, error) {
	data, err := s.client.Get(ctx, resultKey(date, userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrResultNotFound
		}
		return nil, err
	}

	var result model.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *Storage) GetResultsForDate(ctx context.Context, date model.GameDate) ([]*model.Result, error) {
	resultKeys, err := s.client.SMembers(ctx, resultsForDateIndexKey(date)).Result()
	if err != nil {
		return nil, err
	}

	if len(resultKeys) == 0 {
		return []*model.Result{}, nil
	}

	values, err := s.client.MGet(ctx, resultKeys...).Result()
	if err != nil {
		return nil, err
	}

	results := make([]*model.Result, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var result model.Result
		if err := json.Unmarshal([]byte(val.(string)), &result); err != nil {
			continue
		}
		results = append(results, &result)
	}

	// Index sets are unordered; standings expect best score first
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results, nil
}

// Streak operations

func (s *Storage) SaveStreak(ctx context.Context, streak *model.Streak) error {
	data, err := json.Marshal(streak)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, streakKey(streak.UserID), data, 0).Err()
}

func (s *Storage) GetStreak(ctx context.Context, userID model.UserID) (*model.Streak, error) {
	data, err := s.client.Get(ctx, streakKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrStreakNotFound
		}
		return nil, err
	}

	var streak model.Streak
	if err := json.Unmarshal(data, &streak); err != nil {
		return nil, err
	}
	return &streak, nil
}

// Cheat flag operations

func (s *Storage) SaveCheatFlag(ctx context.Context, flag *model.CheatFlag) error {
	data, err := json.Marshal(flag)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, cheatFlagKey(flag.Date, flag.UserID), data, s.cfg.SessionTTL).Err()
}

func (s *Storage) GetCheatFlag(ctx context.Context, date model.GameDate, userID model.UserID) (*model.CheatFlag, error) {
	data, err := s.client.Get(ctx, cheatFlagKey(date, userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrCheatFlagNotFound
		}
		return nil, err
	}

	var flag model.CheatFlag
	if err := json.Unmarshal(data, &flag); err != nil {
		return nil, err
	}
	return &flag, nil
}

// Hint usage operations

func (s *Storage) AddHintUse(ctx context.Context, date model.GameDate, userID model.UserID, hint string) error {
	key := hintsUsedKey(date, userID)

	pipe := s.client.Pipeline()
	pipe.SAdd(ctx, key, hint)
	pipe.Expire(ctx, key, s.cfg.SessionTTL)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) GetHintsUsed(ctx context.Context, date model.GameDate, userID model.UserID) ([]string, error) {
	return s.client.SMembers(ctx, hintsUsedKey(date, userID)).Result()
}
