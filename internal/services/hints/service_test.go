package hints

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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

const (
	testDate = model.GameDate("2025-09-19")
	testUser = model.UserID("user-1")
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	clk := mocks.NewMockClock(time.Date(2025, 9, 19, 12, 0, 0, 0, time.UTC))
	logger := testutil.NopLogger()

	dailyService := daily.New(s.storage, clk, daily.DefaultConfig(), logger)
	scoringService := scoring.New(scoring.DefaultConfig())
	s.service = New(s.storage, dailyService, scoringService, logger)
	s.ctx = context.Background()

	player := &model.Player{
		ID:       "p-odell-beckham-jr",
		Slug:     "odell-beckham-jr",
		FullName: "Odell Beckham Jr.",
		Position: "WR",
		College:  "LSU",
	}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))
	s.Require().NoError(s.storage.SaveSeasonLines(s.ctx, player.ID, []model.SeasonLine{
		{PlayerID: player.ID, Season: 2016, Team: "NYG", Stats: []model.Stat{{Name: "rec_yards", Value: 1367}}},
	}))
	s.Require().NoError(s.storage.SaveTeamSeason(s.ctx, &model.TeamSeason{
		Season: 2016, Team: "NYG", Wins: 11, Losses: 5,
	}))
	s.Require().NoError(s.storage.SaveUser(s.ctx, &model.User{ID: testUser, Username: "alice"}))
}

func (s *ServiceSuite) TestTeamHint() {
	hint, err := s.service.Use(s.ctx, testDate, testUser, model.HintTeam, 1)
	s.Require().NoError(err)
	s.Equal("NYG", hint.Value)
	s.Equal(15, hint.Cost)
}

func (s *ServiceSuite) TestConferenceAndDivisionHints() {
	conf, err := s.service.Use(s.ctx, testDate, testUser, model.HintConference, 1)
	s.Require().NoError(err)
	s.Equal("NFC", conf.Value)

	div, err := s.service.Use(s.ctx, testDate, testUser, model.HintDivision, 1)
	s.Require().NoError(err)
	s.Equal("East", div.Value)
}

func (s *ServiceSuite) TestRecordHint() {
	hint, err := s.service.Use(s.ctx, testDate, testUser, model.HintRecord, 1)
	s.Require().NoError(err)
	s.Equal("11-5", hint.Value)
	s.Equal(8, hint.Cost)
}

func (s *ServiceSuite) TestCollegeHint() {
	hint, err := s.service.Use(s.ctx, testDate, testUser, model.HintCollege, 1)
	s.Require().NoError(err)
	s.Equal("LSU", hint.Value)
	s.Equal(20, hint.Cost)
}

func (s *ServiceSuite) TestNameHintsSkipSuffix() {
	first, err := s.service.Use(s.ctx, testDate, testUser, model.HintFirstName, 1)
	s.Require().NoError(err)
	s.Equal("Odell", first.Value)

	last, err := s.service.Use(s.ctx, testDate, testUser, model.HintLastName, 1)
	s.Require().NoError(err)
	s.Equal("Beckham", last.Value)
}

func (s *ServiceSuite) TestHintUseIsRecordedOnce() {
	_, err := s.service.Use(s.ctx, testDate, testUser, model.HintTeam, 1)
	s.Require().NoError(err)
	_, err = s.service.Use(s.ctx, testDate, testUser, model.HintTeam, 1)
	s.Require().NoError(err)

	used, err := s.storage.GetHintsUsed(s.ctx, testDate, testUser)
	s.Require().NoError(err)
	s.Equal([]string{"team"}, used)
}

func (s *ServiceSuite) TestUnknownHintRejected() {
	_, err := s.service.Use(s.ctx, testDate, testUser, "shoe_size", 1)
	s.ErrorIs(err, model.ErrUnknownHint)
}

func (s *ServiceSuite) TestUnknownUserRejected() {
	_, err := s.service.Use(s.ctx, testDate, "ghost", model.HintTeam, 1)
	s.ErrorIs(err, model.ErrUserNotFound)
}

func TestCanonicalTeam(t *testing.T) {
	assert.Equal(t, "KC", CanonicalTeam("KAN"))
	assert.Equal(t, "LAC", CanonicalTeam("SD"))
	assert.Equal(t, "LV", CanonicalTeam("oak"))
	assert.Equal(t, "KC", CanonicalTeam(" KC "))
	assert.Equal(t, "XYZ", CanonicalTeam("xyz"))
}
