package suggest

import (
	"context"
	"testing"

	"github.com/ballknowledge/ballknowledge-go/internal/model"
	"github.com/ballknowledge/ballknowledge-go/internal/storage/memory"
	"github.com/stretchr/testify/suite"
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
	s.service = New(s.storage, DefaultConfig())
	s.ctx = context.Background()

	players := []*model.Player{
		{ID: "p1", Slug: "travis-kelce", FullName: "Travis Kelce"},
		{ID: "p2", Slug: "jason-kelce", FullName: "Jason Kelce"},
		{ID: "p3", Slug: "tyreek-hill", FullName: "Tyreek Hill", Aliases: []string{"Cheetah"}},
		{ID: "p4", Slug: "patrick-mahomes", FullName: "Patrick Mahomes"},
	}
	for _, p := range players {
		s.Require().NoError(s.storage.SavePlayer(s.ctx, p))
	}
}

func (s *ServiceSuite) TestNearMissIsSuggested() {
	names, err := s.service.ForGuess(s.ctx, "travis kelse")
	s.Require().NoError(err)
	s.Require().NotEmpty(names)
	s.Equal("Travis Kelce", names[0])
}

func (s *ServiceSuite) TestClosestNameRanksFirst() {
	names, err := s.service.ForGuess(s.ctx, "jason kelce")
	s.Require().NoError(err)
	s.Require().NotEmpty(names)
	s.Equal("Jason Kelce", names[0])
}

func (s *ServiceSuite) TestAliasDistanceCounts() {
	names, err := s.service.ForGuess(s.ctx, "cheetah")
	s.Require().NoError(err)
	s.Require().NotEmpty(names)
	s.Equal("Tyreek Hill", names[0])
}

func (s *ServiceSuite) TestFarGuessYieldsNothing() {
	names, err := s.service.ForGuess(s.ctx, "zzzzzzzzzzzzzzzz")
	s.Require().NoError(err)
	s.Empty(names)
}

func (s *ServiceSuite) TestEmptyGuessYieldsNothing() {
	names, err := s.service.ForGuess(s.ctx, "   ")
	s.Require().NoError(err)
	s.Empty(names)
}

func (s *ServiceSuite) TestLimitIsApplied() {
	s.service = New(s.storage, Config{MaxDistance: 20, Limit: 2})

	names, err := s.service.ForGuess(s.ctx, "kelce")
	s.Require().NoError(err)
	s.Len(names, 2)
}

func (s *ServiceSuite) TestExactMatchDistanceZero() {
	names, err := s.service.ForGuess(s.ctx, "Patrick Mahomes")
	s.Require().NoError(err)
	s.Require().NotEmpty(names)
	s.Equal("Patrick Mahomes", names[0])
}
