package model

import "time"

// GameDate is a calendar date in YYYY-MM-DD form, the stable key for a
// daily game
type GameDate string

// gameDateLayout is the wire format for GameDate
const gameDateLayout = "2006-01-02"

// DateOf truncates a time to its GameDate
func DateOf(t time.Time) GameDate {
	return GameDate(t.Format(gameDateLayout))
}

// ParseGameDate validates and parses a YYYY-MM-DD string
func ParseGameDate(s string) (GameDate, error) {
	t, err := time.Parse(gameDateLayout, s)
	if err != nil {
		return "", err
	}
	return DateOf(t), nil
}

// Time returns the date at midnight UTC. Invalid dates return the zero time.
func (d GameDate) Time() time.Time {
	t, err := time.Parse(gameDateLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddDays returns the date n days later (negative n for earlier)
func (d GameDate) AddDays(n int) GameDate {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// MinRevealIndex and MaxRevealIndex bound the per-session reveal sequence
const (
	MinRevealIndex = 1
	MaxRevealIndex = 5
)

// DailyGame maps a calendar date to the selected player. Created at most
// once per date, immutable thereafter.
type DailyGame struct {
	Date      GameDate  `json:"game_date"`
	PlayerID  PlayerID  `json:"player_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Guess is one attempt by one user on one date at one reveal step.
// (Date, UserID, RevealIndex) is unique.
type Guess struct {
	Date        GameDate  `json:"game_date"`
	UserID      UserID    `json:"user_id"`
	Text        string    `json:"guess_text"`
	Normalized  string    `json:"normalized"`
	Correct     bool      `json:"is_correct"`
	RevealIndex int       `json:"reveal_index"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Result is the terminal summary of one user's session on one date.
// Created exactly once per (date, user); immutable after creation.
type Result struct {
	Date            GameDate  `json:"game_date"`
	UserID          UserID    `json:"user_id"`
	CorrectAttempts int       `json:"correct_attempts"`
	Revealed        int       `json:"revealed"`
	Score           int       `json:"score"`
	CompletedAt     time.Time `json:"completed_at"`
}

// Correct reports whether the session ended with a correct guess
func (r *Result) Correct() bool {
	return r.CorrectAttempts > 0
}

// Streak is one row per user tracking consecutive correct days
type Streak struct {
	UserID        UserID    `json:"user_id"`
	CurrentStreak int       `json:"current_streak"`
	BestStreak    int       `json:"best_streak"`
	// LastResultDate is the most recent date applied to this streak,
	// used to make finalization idempotent per (date, user)
	LastResultDate GameDate  `json:"last_result_date,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CheatFlag is an advisory annotation on a finished session. It never
// blocks scoring or persistence.
type CheatFlag struct {
	Date        GameDate  `json:"game_date"`
	UserID      UserID    `json:"user_id"`
	Confidence  float64   `json:"confidence"`
	Reasons     []string  `json:"reasons"`
	EvaluatedAt time.Time `json:"evaluated_at"`
}
