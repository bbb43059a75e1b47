package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ballknowledge/ballknowledge-go/internal/model"
	"github.com/ballknowledge/ballknowledge-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players       map[model.PlayerID]*model.Player
	slugIndex     map[string]model.PlayerID
	seasons       map[model.PlayerID][]model.SeasonLine
	teamSeasons   map[teamSeasonKey]*model.TeamSeason
	users         map[model.UserID]*model.User
	usernameIndex map[string]model.UserID
	dailyGames    map[model.GameDate]*model.DailyGame
	guesses       map[guessKey]*model.Guess
	results       map[sessionKey]*model.Result
	streaks       map[model.UserID]*model.Streak
	cheatFlags    map[sessionKey]*model.CheatFlag
	hintsUsed     map[sessionKey][]string
}

type teamSeasonKey struct {
	season int
	team   string
}

type sessionKey struct {
	date   model.GameDate
	userID model.UserID
}

type guessKey struct {
	date        model.GameDate
	userID      model.UserID
	revealIndex int
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:       make(map[model.PlayerID]*model.Player),
		slugIndex:     make(map[string]model.PlayerID),
		seasons:       make(map[model.PlayerID][]model.SeasonLine),
		teamSeasons:   make(map[teamSeasonKey]*model.TeamSeason),
		users:         make(map[model.UserID]*model.User),
		usernameIndex: make(map[string]model.UserID),
		dailyGames:    make(map[model.GameDate]*model.DailyGame),
		guesses:       make(map[guessKey]*model.Guess),
		results:       make(map[sessionKey]*model.Result),
		streaks:       make(map[model.UserID]*model.Streak),
		cheatFlags:    make(map[sessionKey]*model.CheatFlag),
		hintsUsed:     make(map[sessionKey][]string),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = player
	s.slugIndex[player.Slug] = player.ID
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) GetPlayerBySlug(ctx context.Context, slug string) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.slugIndex[slug]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]*model.Player, 0, len(s.players))
	for _, p := range s.players {
		players = append(players, p)
	}
	// Stable order so callers can rely on reproducible iteration
	sort.Slice(players, func(i, j int) bool {
		return players[i].Slug < players[j].Slug
	})
	return players, nil
}

// Season line operations

func (s *Storage) SaveSeasonLines(ctx context.Context, playerID model.PlayerID, lines []model.SeasonLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([]model.SeasonLine, len(lines))
	copy(copied, lines)
	s.seasons[playerID] = copied
	return nil
}

func (s *Storage) GetSeasonLines(ctx context.Context, playerID model.PlayerID) ([]model.SeasonLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lines, ok := s.seasons[playerID]
	if !ok {
		return nil, model.ErrSeasonsNotFound
	}
	result := make([]model.SeasonLine, len(lines))
	copy(result, lines)
	return result, nil
}

// Team season operations

func (s *Storage) SaveTeamSeason(ctx context.Context, ts *model.TeamSeason) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teamSeasons[teamSeasonKey{season: ts.Season, team: ts.Team}] = ts
	return nil
}

func (s *Storage) GetTeamSeason(ctx context.Context, season int, team string) (*model.TeamSeason, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ts, ok := s.teamSeasons[teamSeasonKey{season: season, team: team}]
	if !ok {
		return nil, model.ErrSeasonsNotFound
	}
	return ts, nil
}

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	s.usernameIndex[user.Username] = user.ID
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

// Daily game operations

func (s *Storage) CreateDailyGame(ctx context.Context, game *model.DailyGame) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.dailyGames[game.Date]; exists {
		return false, nil
	}
	s.dailyGames[game.Date] = game
	return true, nil
}

func (s *Storage) GetDailyGame(ctx context.Context, date model.GameDate) (*model.DailyGame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.dailyGames[date]
	if !ok {
		return nil, model.ErrDailyGameNotFound
	}
	return game, nil
}

// Guess operations

func (s *Storage) CreateGuess(ctx context.Context, guess *model.Guess) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := guessKey{date: guess.Date, userID: guess.UserID, revealIndex: guess.RevealIndex}
	if _, exists := s.guesses[key]; exists {
		return model.ErrDuplicateGuess
	}
	s.guesses[key] = guess
	return nil
}

func (s *Storage) GetGuesses(ctx context.Context, date model.GameDate, userID model.UserID) ([]model.Guess, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var guesses []model.Guess
	for key, g := range s.guesses {
		if key.date == date && key.userID == userID {
			guesses = append(guesses, *g)
		}
	}
	sort.Slice(guesses, func(i, j int) bool {
		return guesses[i].RevealIndex < guesses[j].RevealIndex
	})
	return guesses, nil
}

func (s *Storage) GetGuessesForDate(ctx context.Context, date model.GameDate) ([]model.Guess, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var guesses []model.Guess
	for key, g := range s.guesses {
		if key.date == date {
			guesses = append(guesses, *g)
		}
	}
	sort.Slice(guesses, func(i, j int) bool {
		return guesses[i].SubmittedAt.Before(guesses[j].SubmittedAt)
	})
	return guesses, nil
}

// Result operations

func (s *Storage) CreateResult(ctx context.Context, result *model.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := sessionKey{date: result.Date, userID: result.UserID}
	if _, exists := s.results[key]; exists {
		return model.ErrResultExists
	}
	s.results[key] = result
	return nil
}

func (s *Storage) GetResult(ctx context.Context, date model.GameDate, userID model.UserID) (*model.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.results[sessionKey{date: date, userID: userID}]
	if !ok {
		return nil, model.ErrResultNotFound
	}
	return result, nil
}

func (s *Storage) GetResultsForDate(ctx context.Context, date model.GameDate) ([]*model.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var results []*model.Result
	for key, r := range s.results {
		if key.date == date {
			results = append(results, r)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results, nil
}

// Streak operations

func (s *Storage) SaveStreak(ctx context.Context, streak *model.Streak) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.streaks[streak.UserID] = streak
	return nil
}

func (s *Storage) GetStreak(ctx context.Context, userID model.UserID) (*model.Streak, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	streak, ok := s.streaks[userID]
	if !ok {
		return nil, model.ErrStreakNotFound
	}
	return streak, nil
}

// Cheat flag operations

func (s *Storage) SaveCheatFlag(ctx context.Context, flag *model.CheatFlag) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cheatFlags[sessionKey{date: flag.Date, userID: flag.UserID}] = flag
	return nil
}

func (s *Storage) GetCheatFlag(ctx context.Context, date model.GameDate, userID model.UserID) (*model.CheatFlag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	flag, ok := s.cheatFlags[sessionKey{date: date, userID: userID}]
	if !ok {
		return nil, model.ErrCheatFlagNotFound
	}
	return flag, nil
}

// Hint usage operations

func (s *Storage) AddHintUse(ctx context.Context, date model.GameDate, userID model.UserID, hint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := sessionKey{date: date, userID: userID}
	for _, used := range s.hintsUsed[key] {
		if used == hint {
			return nil
		}
	}
	s.hintsUsed[key] = append(s.hintsUsed[key], hint)
	return nil
}

func (s *Storage) GetHintsUsed(ctx context.Context, date model.GameDate, userID model.UserID) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	used := s.hintsUsed[sessionKey{date: date, userID: userID}]
	result := make([]string, len(used))
	copy(result, used)
	return result, nil
}
