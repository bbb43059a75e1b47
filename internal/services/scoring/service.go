// Package scoring converts reveal progress, outcome and hint spend into
// a numeric score. Pure functions of their inputs; no storage access.
package scoring

import (
	"strings"

	"github.com/ballknowledge/ballknowledge-go/internal/model"
)

// Config holds the scoring knobs
type Config struct {
	// Base is the score for a correct guess at reveal 1
	Base int
	// Step is the penalty per extra reveal step
	Step int
	// HintCosts maps hint kinds to their score penalty
	HintCosts map[model.HintKind]int
}

// DefaultConfig returns the standard scoring table
func DefaultConfig() Config {
	return Config{
		Base: 100,
		Step: 10,
		HintCosts: map[model.HintKind]int{
			model.HintTeam:       15,
			model.HintDivision:   10,
			model.HintConference: 8,
			model.HintRecord:     8,
			model.HintCollege:    20,
			model.HintFirstName:  50,
			model.HintLastName:   60,
		},
	}
}

// Service provides scoring for finished sessions
type Service struct {
	cfg Config
}

// New creates a new scoring service
func New(cfg Config) *Service {
	return &Service{cfg: cfg}
}

// Score returns the base score for a session that finished with the
// given outcome after `revealed` steps. Correct at reveal 1 scores
// Base; each later reveal costs Step; an exhausted session scores 0.
func (s *Service) Score(revealed int, outcome model.SessionOutcome) int {
	if outcome != model.OutcomeCorrect {
		return 0
	}

	if revealed < model.MinRevealIndex {
		revealed = model.MinRevealIndex
	}
	if revealed > model.MaxRevealIndex {
		revealed = model.MaxRevealIndex
	}

	score := s.cfg.Base - s.cfg.Step*(revealed-1)
	if score < 0 {
		score = 0
	}
	return score
}

// HintPenalty sums the costs of the distinct hints used. Unknown kinds
// cost nothing.
func (s *Service) HintPenalty(hintsUsed []string) int {
	seen := make(map[model.HintKind]bool, len(hintsUsed))
	penalty := 0
	for _, h := range hintsUsed {
		kind := model.HintKind(strings.ToLower(strings.TrimSpace(h)))
		if kind == "" || seen[kind] {
			continue
		}
		seen[kind] = true
		penalty += s.cfg.HintCosts[kind]
	}
	return penalty
}

// HintCost returns the cost of a single hint kind
func (s *Service) HintCost(kind model.HintKind) int {
	return s.cfg.HintCosts[kind]
}

// TotalScore is the final session score: base score minus hint
// penalties, floored at zero
func (s *Service) TotalScore(revealed int, outcome model.SessionOutcome, hintsUsed []string) int {
	total := s.Score(revealed, outcome) - s.HintPenalty(hintsUsed)
	if total < 0 {
		total = 0
	}
	return total
}

// Interface for dependency injection
type ServiceInterface interface {
	Score(revealed int, outcome model.SessionOutcome) int
	HintPenalty(hintsUsed []string) int
	HintCost(kind model.HintKind) int
	TotalScore(revealed int, outcome model.SessionOutcome, hintsUsed []string) int
}

var _ ServiceInterface = (*Service)(nil)
