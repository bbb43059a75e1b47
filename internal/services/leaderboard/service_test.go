package leaderboard

import (
	"context"
	"testing"
	"time"

	"github.com/ballknowledge/ballknowledge-go/internal/dependencies/mocks"
	"github.com/ballknowledge/ballknowledge-go/internal/model"
	"github.com/ballknowledge/ballknowledge-go/internal/storage/memory"
	"github.com/ballknowledge/ballknowledge-go/internal/testutil"
	"github.com/stretchr/testify/suite"
)

const testDate = model.GameDate("2025-09-19")

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
	clk := mocks.NewMockClock(time.Date(2025, 9, 19, 23, 0, 0, 0, time.UTC))
	s.service = New(s.storage, clk, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) addUser(id model.UserID, username string) {
	s.Require().NoError(s.storage.SaveUser(s.ctx, &model.User{
		ID:       id,
		Username: username,
	}))
}

func (s *ServiceSuite) addResult(userID model.UserID, score, revealed, correctAttempts int) {
	s.Require().NoError(s.storage.CreateResult(s.ctx, &model.Result{
		Date:            testDate,
		UserID:          userID,
		CorrectAttempts: correctAttempts,
		Revealed:        revealed,
		Score:           score,
	}))
}

func (s *ServiceSuite) TestStandingsOrderedByScore() {
	s.addUser("u1", "alice")
	s.addUser("u2", "bob")
	s.addUser("u3", "carol")
	s.addResult("u1", 80, 3, 1)
	s.addResult("u2", 100, 1, 1)
	s.addResult("u3", 0, 5, 0)

	entries, err := s.service.ForDate(s.ctx, testDate, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 3)

	s.Equal("bob", entries[0].Username)
	s.Equal(100, entries[0].Score)
	s.Equal(1, entries[0].Rank)
	s.True(entries[0].Correct)

	s.Equal("alice", entries[1].Username)
	s.Equal(2, entries[1].Rank)

	s.Equal("carol", entries[2].Username)
	s.Equal(0, entries[2].Score)
	s.False(entries[2].Correct)
}

func (s *ServiceSuite) TestLimitTruncatesStandings() {
	for i, id := range []model.UserID{"u1", "u2", "u3", "u4"} {
		s.addUser(id, string(id))
		s.addResult(id, 100-10*i, 1, 1)
	}

	entries, err := s.service.ForDate(s.ctx, testDate, 2)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal(100, entries[0].Score)
	s.Equal(90, entries[1].Score)
}

func (s *ServiceSuite) TestZeroLimitUsesDefault() {
	s.addUser("u1", "alice")
	s.addResult("u1", 100, 1, 1)

	entries, err := s.service.ForDate(s.ctx, testDate, 0)
	s.Require().NoError(err)
	s.Len(entries, 1)
}

func (s *ServiceSuite) TestMissingUserFallsBackToID() {
	s.addResult("ghost", 60, 5, 1)

	entries, err := s.service.ForDate(s.ctx, testDate, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal("ghost", entries[0].Username)
}

func (s *ServiceSuite) TestEmptyDateYieldsNoEntries() {
	entries, err := s.service.ForDate(s.ctx, testDate, 10)
	s.Require().NoError(err)
	s.Empty(entries)
}
