package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/ballknowledge/ballknowledge-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.SessionTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:       "p1",
		Slug:     "travis-kelce",
		FullName: "Travis Kelce",
		Position: "TE",
		College:  "Cincinnati",
		Aliases:  []string{"Zeus"},
	}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	got, err := s.storage.GetPlayer(s.ctx, "p1")
	s.Require().NoError(err)
	s.Equal("Travis Kelce", got.FullName)
	s.Equal([]string{"Zeus"}, got.Aliases)
}

func (s *StorageSuite) TestGetPlayerBySlug() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "p1", Slug: "travis-kelce"}))

	got, err := s.storage.GetPlayerBySlug(s.ctx, "travis-kelce")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p1"), got.ID)

	_, err = s.storage.GetPlayerBySlug(s.ctx, "nope")
	s.Require().ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGetMissingPlayer() {
	_, err := s.storage.GetPlayer(s.ctx, "nope")
	s.Require().ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestListPlayers() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "p1", Slug: "a-player"}))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "p2", Slug: "b-player"}))

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Len(players, 2)
}

// Season line tests

func (s *StorageSuite) TestSaveAndGetSeasonLines() {
	lines := []model.SeasonLine{
		{PlayerID: "p1", Season: 2022, Team: "KC", Stats: []model.Stat{{Name: "receptions", Value: 110}}},
	}
	s.Require().NoError(s.storage.SaveSeasonLines(s.ctx, "p1", lines))

	got, err := s.storage.GetSeasonLines(s.ctx, "p1")
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("KC", got[0].Team)

	_, err = s.storage.GetSeasonLines(s.ctx, "p2")
	s.Require().ErrorIs(err, model.ErrSeasonsNotFound)
}

// Team season tests

func (s *StorageSuite) TestSaveAndGetTeamSeason() {
	s.Require().NoError(s.storage.SaveTeamSeason(s.ctx, &model.TeamSeason{
		Season: 2016, Team: "NYG", Wins: 11, Losses: 5,
	}))

	got, err := s.storage.GetTeamSeason(s.ctx, 2016, "NYG")
	s.Require().NoError(err)
	s.Equal(11, got.Wins)

	_, err = s.storage.GetTeamSeason(s.ctx, 2017, "NYG")
	s.Require().ErrorIs(err, model.ErrSeasonsNotFound)
}

// User tests

func (s *StorageSuite) TestSaveAndGetUser() {
	s.Require().NoError(s.storage.SaveUser(s.ctx, &model.User{ID: "u1", Username: "alice"}))

	got, err := s.storage.GetUser(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal("alice", got.Username)

	byName, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.UserID("u1"), byName.ID)

	_, err = s.storage.GetUserByUsername(s.ctx, "bob")
	s.Require().ErrorIs(err, model.ErrUserNotFound)
}

// Daily game tests

func (s *StorageSuite) TestCreateDailyGameFirstWriterWins() {
	created, err := s.storage.CreateDailyGame(s.ctx, &model.DailyGame{Date: "2025-09-19", PlayerID: "p1"})
	s.Require().NoError(err)
	s.True(created)

	created, err = s.storage.CreateDailyGame(s.ctx, &model.DailyGame{Date: "2025-09-19", PlayerID: "p2"})
	s.Require().NoError(err)
	s.False(created)

	got, err := s.storage.GetDailyGame(s.ctx, "2025-09-19")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p1"), got.PlayerID)
}

func (s *StorageSuite) TestGetMissingDailyGame() {
	_, err := s.storage.GetDailyGame(s.ctx, "2025-09-19")
	s.Require().ErrorIs(err, model.ErrDailyGameNotFound)
}

// Guess tests

func (s *StorageSuite) TestCreateGuessRejectsDuplicateStep() {
	s.Require().NoError(s.storage.CreateGuess(s.ctx, &model.Guess{
		Date: "2025-09-19", UserID: "u1", Text: "someone", RevealIndex: 1,
	}))

	err := s.storage.CreateGuess(s.ctx, &model.Guess{
		Date: "2025-09-19", UserID: "u1", Text: "other", RevealIndex: 1,
	})
	s.Require().ErrorIs(err, model.ErrDuplicateGuess)
}

func (s *StorageSuite) TestGetGuessesOrderedByRevealIndex() {
	for _, k := range []int{3, 1, 2} {
		s.Require().NoError(s.storage.CreateGuess(s.ctx, &model.Guess{
			Date: "2025-09-19", UserID: "u1", Text: "guess", RevealIndex: k,
		}))
	}

	guesses, err := s.storage.GetGuesses(s.ctx, "2025-09-19", "u1")
	s.Require().NoError(err)
	s.Require().Len(guesses, 3)
	s.Equal(1, guesses[0].RevealIndex)
	s.Equal(3, guesses[2].RevealIndex)
}

func (s *StorageSuite) TestGetGuessesForDateSpansUsers() {
	s.Require().NoError(s.storage.CreateGuess(s.ctx, &model.Guess{Date: "2025-09-19", UserID: "u1", RevealIndex: 1}))
	s.Require().NoError(s.storage.CreateGuess(s.ctx, &model.Guess{Date: "2025-09-19", UserID: "u2", RevealIndex: 1}))
	s.Require().NoError(s.storage.CreateGuess(s.ctx, &model.Guess{Date: "2025-09-20", UserID: "u1", RevealIndex: 1}))

	guesses, err := s.storage.GetGuessesForDate(s.ctx, "2025-09-19")
	s.Require().NoError(err)
	s.Len(guesses, 2)
}

func (s *StorageSuite) TestGuessRowsExpire() {
	s.Require().NoError(s.storage.CreateGuess(s.ctx, &model.Guess{
		Date: "2025-09-19", UserID: "u1", RevealIndex: 1,
	}))

	s.mini.FastForward(2 * time.Hour)

	guesses, err := s.storage.GetGuesses(s.ctx, "2025-09-19", "u1")
	s.Require().NoError(err)
	s.Empty(guesses)
}

// Result tests

func (s *StorageSuite) TestCreateResultOncePerUserAndDate() {
	s.Require().NoError(s.storage.CreateResult(s.ctx, &model.Result{
		Date: "2025-09-19", UserID: "u1", CorrectAttempts: 1, Revealed: 2, Score: 90,
	}))

	err := s.storage.CreateResult(s.ctx, &model.Result{Date: "2025-09-19", UserID: "u1", Score: 100})
	s.Require().ErrorIs(err, model.ErrResultExists)

	got, err := s.storage.GetResult(s.ctx, "2025-09-19", "u1")
	s.Require().NoError(err)
	s.Equal(90, got.Score)
	s.True(got.Correct())
}

func (s *StorageSuite) TestGetResultsForDateOrderedByScore() {
	s.Require().NoError(s.storage.CreateResult(s.ctx, &model.Result{Date: "2025-09-19", UserID: "u1", Score: 60}))
	s.Require().NoError(s.storage.CreateResult(s.ctx, &model.Result{Date: "2025-09-19", UserID: "u2", Score: 100}))
	s.Require().NoError(s.storage.CreateResult(s.ctx, &model.Result{Date: "2025-09-19", UserID: "u3", Score: 0}))

	results, err := s.storage.GetResultsForDate(s.ctx, "2025-09-19")
	s.Require().NoError(err)
	s.Require().Len(results, 3)
	s.Equal(100, results[0].Score)
	s.Equal(60, results[1].Score)
	s.Equal(0, results[2].Score)
}

// Streak tests

func (s *StorageSuite) TestSaveAndGetStreak() {
	s.Require().NoError(s.storage.SaveStreak(s.ctx, &model.Streak{
		UserID: "u1", CurrentStreak: 3, BestStreak: 5, LastResultDate: "2025-09-19",
	}))

	got, err := s.storage.GetStreak(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal(3, got.CurrentStreak)
	s.Equal(5, got.BestStreak)

	_, err = s.storage.GetStreak(s.ctx, "u2")
	s.Require().ErrorIs(err, model.ErrStreakNotFound)
}

// Cheat flag tests

func (s *StorageSuite) TestSaveAndGetCheatFlag() {
	s.Require().NoError(s.storage.SaveCheatFlag(s.ctx, &model.CheatFlag{
		Date: "2025-09-19", UserID: "u1", Confidence: 0.35, Reasons: []string{"rapid_reveal_progression"},
	}))

	got, err := s.storage.GetCheatFlag(s.ctx, "2025-09-19", "u1")
	s.Require().NoError(err)
	s.InDelta(0.35, got.Confidence, 0.0001)
	s.Equal([]string{"rapid_reveal_progression"}, got.Reasons)

	_, err = s.storage.GetCheatFlag(s.ctx, "2025-09-19", "u2")
	s.Require().ErrorIs(err, model.ErrCheatFlagNotFound)
}

// Hint usage tests

func (s *StorageSuite) TestHintUsesDeduplicate() {
	s.Require().NoError(s.storage.AddHintUse(s.ctx, "2025-09-19", "u1", "team"))
	s.Require().NoError(s.storage.AddHintUse(s.ctx, "2025-09-19", "u1", "team"))
	s.Require().NoError(s.storage.AddHintUse(s.ctx, "2025-09-19", "u1", "college"))

	used, err := s.storage.GetHintsUsed(s.ctx, "2025-09-19", "u1")
	s.Require().NoError(err)
	s.Len(used, 2)
}
