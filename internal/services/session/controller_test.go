package session

import (
	"context"
	"testing"
	"time"

	"github.com/ballknowledge/ballknowledge-go/internal/dependencies/mocks"
	"github.com/ballknowledge/ballknowledge-go/internal/model"
	"github.com/ballknowledge/ballknowledge-go/internal/services/daily"
	"github.com/ballknowledge/ballknowledge-go/internal/services/scoring"
	"github.com/ballknowledge/ballknowledge-go/internal/storage/memory"
	"github.com/ballknowledge/ballknowledge-go/internal/testutil"
	"github.com/stretchr/testify/suite"
)

const (
	testDate = model.GameDate("2025-09-19")
	testUser = model.UserID("user-1")
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 9, 19, 12, 0, 0, 0, time.UTC))
	logger := testutil.NopLogger()

	dailyService := daily.New(s.storage, s.clock, daily.DefaultConfig(), logger)
	scoringService := scoring.New(scoring.DefaultConfig())
	s.controller = NewController(s.storage, dailyService, scoringService, s.clock, logger)
	s.ctx = context.Background()

	// Single-player roster makes the daily pick predictable
	player := &model.Player{
		ID:       "p-travis-kelce",
		Slug:     "travis-kelce",
		FullName: "Travis Kelce",
		Position: "TE",
		Aliases:  []string{"Zeus"},
	}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	user := &model.User{ID: testUser, Username: "alice", CreatedAt: s.clock.Now()}
	s.Require().NoError(s.storage.SaveUser(s.ctx, user))
}

func (s *ControllerSuite) TestCorrectGuessAtFirstRevealScoresBase() {
	outcome, err := s.controller.Submit(s.ctx, testDate, testUser, 1, "travis kelce")
	s.Require().NoError(err)

	s.True(outcome.Correct)
	s.Equal(1, outcome.Revealed)
	s.True(outcome.Terminal)
	s.Equal(model.OutcomeCorrect, outcome.Outcome)
	s.Equal(100, outcome.Score)
}

func (s *ControllerSuite) TestResubmittingSameRevealIsDuplicate() {
	_, err := s.controller.Submit(s.ctx, testDate, testUser, 1, "travis kelce")
	s.Require().NoError(err)

	_, err = s.controller.Submit(s.ctx, testDate, testUser, 1, "travis kelce")
	s.ErrorIs(err, model.ErrDuplicateGuess)
}

func (s *ControllerSuite) TestGuessAfterFinishedIsTerminalError() {
	_, err := s.controller.Submit(s.ctx, testDate, testUser, 1, "travis kelce")
	s.Require().NoError(err)

	_, err = s.controller.Submit(s.ctx, testDate, testUser, 2, "josh allen")
	s.ErrorIs(err, model.ErrTerminalSession)
}

func (s *ControllerSuite) TestOutOfSequenceRevealIndexFails() {
	_, err := s.controller.Submit(s.ctx, testDate, testUser, 2, "josh allen")
	s.ErrorIs(err, model.ErrOutOfSequenceGuess)

	_, err = s.controller.Submit(s.ctx, testDate, testUser, 1, "josh allen")
	s.Require().NoError(err)

	// Skipping ahead also fails
	_, err = s.controller.Submit(s.ctx, testDate, testUser, 4, "josh allen")
	s.ErrorIs(err, model.ErrOutOfSequenceGuess)
}

func (s *ControllerSuite) TestRevealIndexOutsideRangeFails() {
	_, err := s.controller.Submit(s.ctx, testDate, testUser, 0, "josh allen")
	s.ErrorIs(err, model.ErrOutOfSequenceGuess)

	_, err = s.controller.Submit(s.ctx, testDate, testUser, 6, "josh allen")
	s.ErrorIs(err, model.ErrOutOfSequenceGuess)

	_, err = s.controller.Submit(s.ctx, testDate, testUser, -1, "josh allen")
	s.ErrorIs(err, model.ErrOutOfSequenceGuess)
}

func (s *ControllerSuite) TestNoSixthGuessAfterOrphanedFifthMiss() {
	// Five persisted misses without a Result row, as left behind by a
	// crash between the guess write and the result write
	for k := 1; k <= 5; k++ {
		s.Require().NoError(s.storage.CreateGuess(s.ctx, &model.Guess{
			Date:        testDate,
			UserID:      testUser,
			Text:        "josh allen",
			Normalized:  "josh allen",
			RevealIndex: k,
			SubmittedAt: s.clock.Now(),
		}))
	}

	_, err := s.controller.Submit(s.ctx, testDate, testUser, 6, "Travis Kelce")
	s.ErrorIs(err, model.ErrOutOfSequenceGuess)

	guesses, err := s.storage.GetGuesses(s.ctx, testDate, testUser)
	s.Require().NoError(err)
	s.Len(guesses, 5)
}

func (s *ControllerSuite) TestMismatchRevealsNextStat() {
	outcome, err := s.controller.Submit(s.ctx, testDate, testUser, 1, "josh allen")
	s.Require().NoError(err)

	s.False(outcome.Correct)
	s.Equal(2, outcome.Revealed)
	s.False(outcome.Terminal)

	state, err := s.controller.GetState(s.ctx, testDate, testUser)
	s.Require().NoError(err)
	s.Equal(model.SessionInProgress, state.Phase)
	s.Equal(2, state.RevealIndex)
}

func (s *ControllerSuite) TestExhaustedSessionScoresZero() {
	for k := 1; k <= 4; k++ {
		outcome, err := s.controller.Submit(s.ctx, testDate, testUser, k, "josh allen")
		s.Require().NoError(err)
		s.False(outcome.Terminal)
	}

	outcome, err := s.controller.Submit(s.ctx, testDate, testUser, 5, "josh allen")
	s.Require().NoError(err)
	s.True(outcome.Terminal)
	s.Equal(model.OutcomeExhausted, outcome.Outcome)
	s.Equal(5, outcome.Revealed)
	s.Equal(0, outcome.Score)

	result, err := s.storage.GetResult(s.ctx, testDate, testUser)
	s.Require().NoError(err)
	s.Equal(0, result.CorrectAttempts)
	s.Equal(0, result.Score)
}

func (s *ControllerSuite) TestLateCorrectGuessScoresLess() {
	for k := 1; k <= 2; k++ {
		_, err := s.controller.Submit(s.ctx, testDate, testUser, k, "josh allen")
		s.Require().NoError(err)
	}

	outcome, err := s.controller.Submit(s.ctx, testDate, testUser, 3, "Travis Kelce")
	s.Require().NoError(err)
	s.True(outcome.Correct)
	s.Equal(3, outcome.Revealed)
	s.Equal(80, outcome.Score)
}

func (s *ControllerSuite) TestAliasMatches() {
	outcome, err := s.controller.Submit(s.ctx, testDate, testUser, 1, "zeus")
	s.Require().NoError(err)
	s.True(outcome.Correct)
}

func (s *ControllerSuite) TestNoPartialMatch() {
	outcome, err := s.controller.Submit(s.ctx, testDate, testUser, 1, "kelce")
	s.Require().NoError(err)
	s.False(outcome.Correct)
}

func (s *ControllerSuite) TestHintsReduceFinalScore() {
	s.Require().NoError(s.storage.AddHintUse(s.ctx, testDate, testUser, "team"))

	outcome, err := s.controller.Submit(s.ctx, testDate, testUser, 1, "travis kelce")
	s.Require().NoError(err)
	s.Equal(85, outcome.Score)
}

func (s *ControllerSuite) TestUnknownUserRejected() {
	_, err := s.controller.Submit(s.ctx, testDate, "ghost", 1, "travis kelce")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *ControllerSuite) TestGuessRowsPersisted() {
	_, err := s.controller.Submit(s.ctx, testDate, testUser, 1, "josh allen")
	s.Require().NoError(err)
	_, err = s.controller.Submit(s.ctx, testDate, testUser, 2, "Travis Kelce")
	s.Require().NoError(err)

	guesses, err := s.storage.GetGuesses(s.ctx, testDate, testUser)
	s.Require().NoError(err)
	s.Require().Len(guesses, 2)
	s.False(guesses[0].Correct)
	s.True(guesses[1].Correct)
	s.Equal("josh allen", guesses[0].Normalized)
}
