// Package anomaly computes an advisory cheat-likelihood flag for
// finished sessions. The flag annotates results for review; it never
// gates scoring, streaks or persistence, and any internal failure
// degrades to an empty flag.
package anomaly

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/ballknowledge/ballknowledge-go/internal/dependencies/clock"
	"github.com/ballknowledge/ballknowledge-go/internal/model"
	"github.com/ballknowledge/ballknowledge-go/internal/storage"
)

// Reasons attached to flags. Part of the external contract for
// downstream review tooling.
const (
	ReasonRapidReveals   = "rapid_reveal_progression"
	ReasonInstantSolve   = "instant_correct_guess"
	ReasonGuessTextBurst = "duplicate_guess_burst"
)

// Config holds detection thresholds. All knobs are externally supplied
// configuration; defaults are deliberately permissive after the earlier
// detector generation produced false positives at tighter values.
type Config struct {
	// MinRevealGap marks consecutive guesses closer together than this
	// as suspicious
	MinRevealGap time.Duration

	// MinSolveDelay marks a correct first-reveal guess submitted within
	// this duration of the daily game's creation as suspicious (before
	// the stat line was realistically readable)
	MinSolveDelay time.Duration

	// DuplicateWindow and DuplicateMinUsers mark a correct guess whose
	// exact normalized text was submitted by at least DuplicateMinUsers
	// distinct users within DuplicateWindow as a shared-answer burst
	DuplicateWindow   time.Duration
	DuplicateMinUsers int

	// Per-signal confidence weights; the total is clamped to [0, 1]
	RapidWeight     float64
	InstantWeight   float64
	DuplicateWeight float64
}

// DefaultConfig returns permissive detection thresholds
func DefaultConfig() Config {
	return Config{
		MinRevealGap:      2 * time.Second,
		MinSolveDelay:     3 * time.Second,
		DuplicateWindow:   2 * time.Minute,
		DuplicateMinUsers: 4,
		RapidWeight:       0.35,
		InstantWeight:     0.45,
		DuplicateWeight:   0.35,
	}
}

// Detector evaluates finished sessions for anomaly signals
type Detector struct {
	storage storage.Storage
	clock   clock.Clock
	cfg     Config
	logger  *slog.Logger
}

// New creates a new anomaly detector
func New(storage storage.Storage, clock clock.Clock, cfg Config, logger *slog.Logger) *Detector {
	return &Detector{
		storage: storage,
		clock:   clock,
		cfg:     cfg,
		logger:  logger,
	}
}

// Evaluate computes, persists and returns the advisory flag for a
// (date, user) session. It never returns an error: evaluation failures
// are logged and yield a zero-confidence flag so the finalize path is
// never blocked.
func (d *Detector) Evaluate(ctx context.Context, date model.GameDate, userID model.UserID) *model.CheatFlag {
	flag := &model.CheatFlag{
		Date:        date,
		UserID:      userID,
		Reasons:     []string{},
		EvaluatedAt: d.clock.Now(),
	}

	confidence, reasons, err := d.analyze(ctx, date, userID)
	if err != nil {
		d.logger.Warn("cheat evaluation degraded to no flag",
			slog.String("game_date", string(date)),
			slog.String("user_id", string(userID)),
			slog.String("error", err.Error()),
		)
		return flag
	}

	flag.Confidence = confidence
	flag.Reasons = reasons

	if err := d.storage.SaveCheatFlag(ctx, flag); err != nil {
		// Advisory only: losing the annotation must not fail the caller
		d.logger.Warn("failed to persist cheat flag",
			slog.String("game_date", string(date)),
			slog.String("user_id", string(userID)),
			slog.String("error", err.Error()),
		)
	}

	return flag
}

func (d *Detector) analyze(ctx context.Context, date model.GameDate, userID model.UserID) (float64, []string, error) {
	guesses, err := d.storage.GetGuesses(ctx, date, userID)
	if err != nil {
		return 0, nil, err
	}

	reasons := []string{}
	confidence := 0.0

	if d.rapidReveals(guesses) {
		confidence += d.cfg.RapidWeight
		reasons = append(reasons, ReasonRapidReveals)
	}

	instant, err := d.instantSolve(ctx, date, guesses)
	if err != nil {
		return 0, nil, err
	}
	if instant {
		confidence += d.cfg.InstantWeight
		reasons = append(reasons, ReasonInstantSolve)
	}

	burst, err := d.guessTextBurst(ctx, date, userID, guesses)
	if err != nil {
		return 0, nil, err
	}
	if burst {
		confidence += d.cfg.DuplicateWeight
		reasons = append(reasons, ReasonGuessTextBurst)
	}

	if confidence > 1 {
		confidence = 1
	}
	return confidence, reasons, nil
}

// rapidReveals reports whether any consecutive guess pair arrived
// faster than the configured floor
func (d *Detector) rapidReveals(guesses []model.Guess) bool {
	if len(guesses) < 2 {
		return false
	}

	ordered := make([]model.Guess, len(guesses))
	copy(ordered, guesses)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].RevealIndex < ordered[j].RevealIndex
	})

	for i := 1; i < len(ordered); i++ {
		gap := ordered[i].SubmittedAt.Sub(ordered[i-1].SubmittedAt)
		if gap < d.cfg.MinRevealGap {
			return true
		}
	}
	return false
}

// instantSolve reports whether the correct guess landed at reveal 1
// before the stat line was realistically readable
func (d *Detector) instantSolve(ctx context.Context, date model.GameDate, guesses []model.Guess) (bool, error) {
	var solve *model.Guess
	for i := range guesses {
		if guesses[i].Correct && guesses[i].RevealIndex == model.MinRevealIndex {
			solve = &guesses[i]
			break
		}
	}
	if solve == nil {
		return false, nil
	}

	game, err := d.storage.GetDailyGame(ctx, date)
	if err != nil {
		return false, err
	}

	return solve.SubmittedAt.Sub(game.CreatedAt) < d.cfg.MinSolveDelay, nil
}

// guessTextBurst reports whether the user's correct guess text showed
// up from enough distinct users inside the configured window
func (d *Detector) guessTextBurst(ctx context.Context, date model.GameDate, userID model.UserID, guesses []model.Guess) (bool, error) {
	if d.cfg.DuplicateMinUsers <= 1 {
		return false, nil
	}

	var solve *model.Guess
	for i := range guesses {
		if guesses[i].Correct {
			solve = &guesses[i]
			break
		}
	}
	if solve == nil {
		return false, nil
	}

	all, err := d.storage.GetGuessesForDate(ctx, date)
	if err != nil {
		return false, err
	}

	users := map[model.UserID]bool{userID: true}
	for _, g := range all {
		if g.UserID == userID || g.Normalized != solve.Normalized {
			continue
		}
		delta := g.SubmittedAt.Sub(solve.SubmittedAt)
		if delta < 0 {
			delta = -delta
		}
		if delta <= d.cfg.DuplicateWindow {
			users[g.UserID] = true
		}
	}

	return len(users) >= d.cfg.DuplicateMinUsers, nil
}

// Interface for dependency injection
type DetectorInterface interface {
	Evaluate(ctx context.Context, date model.GameDate, userID model.UserID) *model.CheatFlag
}

var _ DetectorInterface = (*Detector)(nil)
