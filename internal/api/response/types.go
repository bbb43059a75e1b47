package response

import (
	"time"

	"github.com/ballknowledge/ballknowledge-go/internal/model"
	"github.com/ballknowledge/ballknowledge-go/internal/services/leaderboard"
	"github.com/ballknowledge/ballknowledge-go/internal/services/session"
)

// User represents a user in API responses
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		ID:       string(u.ID),
		Username: u.Username,
	}
}

// Stat is one stat name/value pair on a revealed line
type Stat struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// RevealedLine is one season stat line visible to the guesser.
// Team identity is withheld; it is sold separately as a hint.
type RevealedLine struct {
	Season int    `json:"season"`
	Stats  []Stat `json:"stats"`
}

// RevealedLineFromModel converts a model.SeasonLine, dropping the
// fields that would give the player away
func RevealedLineFromModel(line model.SeasonLine) RevealedLine {
	stats := make([]Stat, len(line.Stats))
	for i, st := range line.Stats {
		stats[i] = Stat{Name: st.Name, Value: st.Value}
	}
	return RevealedLine{
		Season: line.Season,
		Stats:  stats,
	}
}

// Session is a user's view of their daily session
type Session struct {
	Date        string         `json:"game_date"`
	Phase       string         `json:"phase"`
	RevealIndex int            `json:"reveal_index,omitempty"`
	Outcome     string         `json:"outcome,omitempty"`
	Score       *int           `json:"score,omitempty"`
	Lines       []RevealedLine `json:"lines"`
}

// SubmitResult reports one guess evaluation
type SubmitResult struct {
	Correct     bool          `json:"is_correct"`
	Revealed    int           `json:"revealed"`
	Terminal    bool          `json:"terminal"`
	Outcome     string        `json:"outcome,omitempty"`
	Score       int           `json:"score,omitempty"`
	Answer      string        `json:"answer,omitempty"`
	NextLine    *RevealedLine `json:"next_line,omitempty"`
	Suggestions []string      `json:"suggestions,omitempty"`
	Streak      *Streak       `json:"streak,omitempty"`
}

// SubmitResultFromOutcome converts a session.SubmitOutcome
func SubmitResultFromOutcome(o *session.SubmitOutcome) SubmitResult {
	return SubmitResult{
		Correct:  o.Correct,
		Revealed: o.Revealed,
		Terminal: o.Terminal,
		Outcome:  string(o.Outcome),
		Score:    o.Score,
	}
}

// Streak represents a user's streak in API responses
type Streak struct {
	Username      string `json:"username"`
	CurrentStreak int    `json:"current_streak"`
	BestStreak    int    `json:"best_streak"`
}

// StreakFromModel converts a model.Streak
func StreakFromModel(username string, s *model.Streak) Streak {
	return Streak{
		Username:      username,
		CurrentStreak: s.CurrentStreak,
		BestStreak:    s.BestStreak,
	}
}

// CheatFlag represents an advisory anomaly flag
type CheatFlag struct {
	Date        string    `json:"game_date"`
	Confidence  float64   `json:"confidence"`
	Reasons     []string  `json:"reasons"`
	EvaluatedAt time.Time `json:"evaluated_at"`
}

// CheatFlagFromModel converts a model.CheatFlag
func CheatFlagFromModel(f *model.CheatFlag) CheatFlag {
	reasons := f.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	return CheatFlag{
		Date:        string(f.Date),
		Confidence:  f.Confidence,
		Reasons:     reasons,
		EvaluatedAt: f.EvaluatedAt,
	}
}

// Hint represents a purchased hint
type Hint struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
	Cost  int    `json:"cost"`
}

// HintFromModel converts a model.HintValue
func HintFromModel(h *model.HintValue) Hint {
	return Hint{
		Kind:  string(h.Kind),
		Value: h.Value,
		Cost:  h.Cost,
	}
}

// Suggestions is the response for the suggestion endpoint
type Suggestions struct {
	Suggestions []string `json:"suggestions"`
}

// LeaderboardEntry is one standings row
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`
	Score    int    `json:"score"`
	Correct  bool   `json:"is_correct"`
	Revealed int    `json:"revealed"`
}

// Leaderboard is the standings for one date
type Leaderboard struct {
	Date    string             `json:"game_date"`
	Entries []LeaderboardEntry `json:"entries"`
}

// LeaderboardFromEntries converts leaderboard service entries
func LeaderboardFromEntries(date model.GameDate, entries []leaderboard.Entry) Leaderboard {
	out := make([]LeaderboardEntry, len(entries))
	for i, e := range entries {
		out[i] = LeaderboardEntry{
			Rank:     e.Rank,
			Username: e.Username,
			Score:    e.Score,
			Correct:  e.Correct,
			Revealed: e.Revealed,
		}
	}
	return Leaderboard{
		Date:    string(date),
		Entries: out,
	}
}
