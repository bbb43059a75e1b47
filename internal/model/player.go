package model

import "fmt"

// PlayerID uniquely identifies a player in the roster
type PlayerID string

// Player is the immutable identity of a guessable player
type Player struct {
	ID       PlayerID `json:"id"`
	Slug     string   `json:"player_slug"`
	FullName string   `json:"full_name"`
	Position string   `json:"position"`
	College  string   `json:"college,omitempty"`

	// Aliases are alternate accepted names (nicknames, suffix variants)
	Aliases []string `json:"aliases,omitempty"`
}

// Stat is one named statistic within a season line
type Stat struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// MaxSeasonStats is the most stats a single season line carries
const MaxSeasonStats = 5

// SeasonLine is one season's stat line for a player, used as a reveal step
type SeasonLine struct {
	PlayerID PlayerID `json:"player_id"`
	Season   int      `json:"season"`
	Team     string   `json:"team"`
	Stats    []Stat   `json:"stats"`
}

// TeamSeason records a team's W-L-T for a season, used for the record hint
type TeamSeason struct {
	Season int    `json:"season"`
	Team   string `json:"team"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
	Ties   int    `json:"ties"`
}

// Record formats the season as "W-L" or "W-L-T" when ties occurred
func (ts *TeamSeason) Record() string {
	if ts.Ties > 0 {
		return fmt.Sprintf("%d-%d-%d", ts.Wins, ts.Losses, ts.Ties)
	}
	return fmt.Sprintf("%d-%d", ts.Wins, ts.Losses)
}
