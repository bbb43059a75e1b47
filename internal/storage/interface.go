package storage

import (
	"context"

	"github.com/ballknowledge/ballknowledge-go/internal/model"
)

// Storage defines the interface for data persistence.
//
// Uniqueness contracts the backends must enforce:
//   - CreateDailyGame: at most one row per date, first writer wins
//   - CreateGuess: at most one row per (date, user, reveal index)
//   - CreateResult: at most one row per (date, user)
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	GetPlayerBySlug(ctx context.Context, slug string) (*model.Player, error)
	ListPlayers(ctx context.Context) ([]*model.Player, error)

	// Season line operations
	SaveSeasonLines(ctx context.Context, playerID model.PlayerID, lines []model.SeasonLine) error
	GetSeasonLines(ctx context.Context, playerID model.PlayerID) ([]model.SeasonLine, error)

	// Team season operations (record hint)
	SaveTeamSeason(ctx context.Context, ts *model.TeamSeason) error
	GetTeamSeason(ctx context.Context, season int, team string) (*model.TeamSeason, error)

	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	// Daily game operations. CreateDailyGame returns false when another
	// writer already created the row for this date; callers then read
	// back the winner's row.
	CreateDailyGame(ctx context.Context, game *model.DailyGame) (bool, error)
	GetDailyGame(ctx context.Context, date model.GameDate) (*model.DailyGame, error)

	// Guess operations. CreateGuess returns model.ErrDuplicateGuess when
	// a row already exists for (date, user, reveal index).
	CreateGuess(ctx context.Context, guess *model.Guess) error
	GetGuesses(ctx context.Context, date model.GameDate, userID model.UserID) ([]model.Guess, error)
	GetGuessesForDate(ctx context.Context, date model.GameDate) ([]model.Guess, error)

	// Result operations. CreateResult returns model.ErrResultExists when
	// a row already exists for (date, user).
	CreateResult(ctx context.Context, result *model.Result) error
	GetResult(ctx context.Context, date model.GameDate, userID model.UserID) (*model.Result, error)
	GetResultsForDate(ctx context.Context, date model.GameDate) ([]*model.Result, error)

	// Streak operations
	SaveStreak(ctx context.Context, streak *model.Streak) error
	GetStreak(ctx context.Context, userID model.UserID) (*model.Streak, error)

	// Cheat flag operations (advisory annotations, kept apart from the
	// immutable result rows)
	SaveCheatFlag(ctx context.Context, flag *model.CheatFlag) error
	GetCheatFlag(ctx context.Context, date model.GameDate, userID model.UserID) (*model.CheatFlag, error)

	// Hint usage operations
	AddHintUse(ctx context.Context, date model.GameDate, userID model.UserID, hint string) error
	GetHintsUsed(ctx context.Context, date model.GameDate, userID model.UserID) ([]string, error)
}
