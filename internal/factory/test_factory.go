package factory

import (
	"context"
	"time"

	"github.com/ballknowledge/ballknowledge-go/internal/dependencies/mocks"
	"github.com/ballknowledge/ballknowledge-go/internal/model"
	"github.com/ballknowledge/ballknowledge-go/internal/storage/memory"
	"github.com/ballknowledge/ballknowledge-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2025, 9, 19, 12, 0, 0, 0, time.UTC))

	app := newWithDependencies(store, mockClock, Config{}, testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}

// SeedTestRoster loads a small roster with season lines and team
// seasons so daily selection and hints have data to work with
func (t *TestApp) SeedTestRoster(ctx context.Context) error {
	players := []struct {
		player  model.Player
		seasons []model.SeasonLine
	}{
		{
			player: model.Player{
				ID:       "p-kelce",
				Slug:     "travis-kelce",
				FullName: "Travis Kelce",
				Position: "TE",
				College:  "Cincinnati",
				Aliases:  []string{"Zeus"},
			},
			seasons: []model.SeasonLine{
				{PlayerID: "p-kelce", Season: 2022, Team: "KC", Stats: []model.Stat{
					{Name: "receptions", Value: 110},
					{Name: "receiving_yards", Value: 1338},
					{Name: "receiving_tds", Value: 12},
				}},
				{PlayerID: "p-kelce", Season: 2023, Team: "KC", Stats: []model.Stat{
					{Name: "receptions", Value: 93},
					{Name: "receiving_yards", Value: 984},
					{Name: "receiving_tds", Value: 5},
				}},
			},
		},
		{
			player: model.Player{
				ID:       "p-hill",
				Slug:     "tyreek-hill",
				FullName: "Tyreek Hill",
				Position: "WR",
				College:  "West Alabama",
				Aliases:  []string{"Cheetah"},
			},
			seasons: []model.SeasonLine{
				{PlayerID: "p-hill", Season: 2023, Team: "MIA", Stats: []model.Stat{
					{Name: "receptions", Value: 119},
					{Name: "receiving_yards", Value: 1799},
					{Name: "receiving_tds", Value: 13},
				}},
			},
		},
		{
			player: model.Player{
				ID:       "p-barkley",
				Slug:     "saquon-barkley",
				FullName: "Saquon Barkley",
				Position: "RB",
				College:  "Penn State",
			},
			seasons: []model.SeasonLine{
				{PlayerID: "p-barkley", Season: 2024, Team: "PHI", Stats: []model.Stat{
					{Name: "rushing_yards", Value: 2005},
					{Name: "rushing_tds", Value: 13},
				}},
			},
		},
	}

	for _, entry := range players {
		p := entry.player
		if err := t.Storage.SavePlayer(ctx, &p); err != nil {
			return err
		}
		if err := t.Storage.SaveSeasonLines(ctx, p.ID, entry.seasons); err != nil {
			return err
		}
	}

	teamSeasons := []model.TeamSeason{
		{Season: 2022, Team: "KC", Wins: 14, Losses: 3},
		{Season: 2023, Team: "KC", Wins: 11, Losses: 6},
		{Season: 2023, Team: "MIA", Wins: 11, Losses: 6},
		{Season: 2024, Team: "PHI", Wins: 14, Losses: 3},
	}
	for _, ts := range teamSeasons {
		ts := ts
		if err := t.Storage.SaveTeamSeason(ctx, &ts); err != nil {
			return err
		}
	}

	return nil
}
