// Package session drives the per-(date, user) guessing state machine:
// NotStarted -> InProgress(k) -> Finished(correct | exhausted).
package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ballknowledge/ballknowledge-go/internal/dependencies/clock"
	"github.com/ballknowledge/ballknowledge-go/internal/model"
	"github.com/ballknowledge/ballknowledge-go/internal/normalize"
	"github.com/ballknowledge/ballknowledge-go/internal/services/daily"
	"github.com/ballknowledge/ballknowledge-go/internal/services/scoring"
	"github.com/ballknowledge/ballknowledge-go/internal/storage"
)

// SubmitOutcome reports the effect of one guess
type SubmitOutcome struct {
	Correct bool `json:"is_correct"`

	// Revealed is how many reveal steps are now visible to the caller.
	// For a terminal outcome it is the step the session ended on.
	Revealed int `json:"revealed"`

	Terminal bool `json:"terminal"`

	// Outcome and Score are set only when Terminal
	Outcome model.SessionOutcome `json:"outcome,omitempty"`
	Score   int                  `json:"score,omitempty"`
}

// Controller evaluates guesses against the daily game
type Controller struct {
	storage storage.Storage
	daily   daily.ServiceInterface
	scoring scoring.ServiceInterface
	clock   clock.Clock
	logger  *slog.Logger
}

// NewController creates a new session controller
func NewController(
	storage storage.Storage,
	daily daily.ServiceInterface,
	scoring scoring.ServiceInterface,
	clock clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		daily:   daily,
		scoring: scoring,
		clock:   clock,
		logger:  logger,
	}
}

// GetState derives the session state for a (date, user) pair from
// persisted rows
func (c *Controller) GetState(ctx context.Context, date model.GameDate, userID model.UserID) (model.SessionState, error) {
	guesses, err := c.storage.GetGuesses(ctx, date, userID)
	if err != nil {
		return model.SessionState{}, err
	}

	result, err := c.storage.GetResult(ctx, date, userID)
	if err != nil && !errors.Is(err, model.ErrResultNotFound) {
		return model.SessionState{}, err
	}

	return model.SessionFromRows(guesses, result), nil
}

// Submit evaluates one guess at the given reveal step.
//
// The caller-provided revealIndex must lie in the 1..5 reveal range and
// equal the session's current step; anything else fails with
// ErrOutOfSequenceGuess. Guesses after the session finished fail with
// ErrTerminalSession. A concurrent duplicate for the same step loses
// the storage race with ErrDuplicateGuess.
func (c *Controller) Submit(ctx context.Context, date model.GameDate, userID model.UserID, revealIndex int, text string) (*SubmitOutcome, error) {
	// Bounds hold regardless of what the stored rows derive to
	if revealIndex < model.MinRevealIndex || revealIndex > model.MaxRevealIndex {
		return nil, model.ErrOutOfSequenceGuess
	}

	if _, err := c.storage.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	game, err := c.daily.GetOrCreate(ctx, date)
	if err != nil {
		return nil, err
	}

	guesses, err := c.storage.GetGuesses(ctx, date, userID)
	if err != nil {
		return nil, err
	}
	result, err := c.storage.GetResult(ctx, date, userID)
	if err != nil && !errors.Is(err, model.ErrResultNotFound) {
		return nil, err
	}

	// Resubmitting an already-played step is a duplicate regardless of
	// whether the session has since finished
	for _, g := range guesses {
		if g.RevealIndex == revealIndex {
			return nil, model.ErrDuplicateGuess
		}
	}

	state := model.SessionFromRows(guesses, result)
	if state.Terminal() {
		return nil, model.ErrTerminalSession
	}
	if revealIndex != state.RevealIndex {
		return nil, model.ErrOutOfSequenceGuess
	}

	player, err := c.storage.GetPlayer(ctx, game.PlayerID)
	if err != nil {
		return nil, err
	}

	correct := c.matches(text, player)

	guess := &model.Guess{
		Date:        date,
		UserID:      userID,
		Text:        text,
		Normalized:  normalize.Key(text),
		Correct:     correct,
		RevealIndex: revealIndex,
		SubmittedAt: c.clock.Now(),
	}
	if err := c.storage.CreateGuess(ctx, guess); err != nil {
		return nil, err
	}

	if correct {
		return c.finish(ctx, date, userID, revealIndex, model.OutcomeCorrect)
	}
	if revealIndex == model.MaxRevealIndex {
		return c.finish(ctx, date, userID, revealIndex, model.OutcomeExhausted)
	}

	// Mismatch mid-session: the next stat line becomes visible
	return &SubmitOutcome{
		Correct:  false,
		Revealed: revealIndex + 1,
		Terminal: false,
	}, nil
}

// matches compares the guess against the player's full name and alias
// set. Exact match on normalized keys only; no partial or fuzzy
// matching.
func (c *Controller) matches(text string, player *model.Player) bool {
	guess := normalize.Parse(text)
	if normalize.Matches(guess, normalize.Parse(player.FullName)) {
		return true
	}
	for _, alias := range player.Aliases {
		if normalize.Matches(guess, normalize.Parse(alias)) {
			return true
		}
	}
	return false
}

// finish persists the terminal Result exactly once and reports the
// session outcome
func (c *Controller) finish(ctx context.Context, date model.GameDate, userID model.UserID, revealed int, outcome model.SessionOutcome) (*SubmitOutcome, error) {
	hintsUsed, err := c.storage.GetHintsUsed(ctx, date, userID)
	if err != nil {
		return nil, err
	}

	correctAttempts := 0
	if outcome == model.OutcomeCorrect {
		correctAttempts = 1
	}

	result := &model.Result{
		Date:            date,
		UserID:          userID,
		CorrectAttempts: correctAttempts,
		Revealed:        revealed,
		Score:           c.scoring.TotalScore(revealed, outcome, hintsUsed),
		CompletedAt:     c.clock.Now(),
	}

	if err := c.storage.CreateResult(ctx, result); err != nil {
		if !errors.Is(err, model.ErrResultExists) {
			return nil, err
		}
		// Concurrent finalize already won; report the persisted row
		result, err = c.storage.GetResult(ctx, date, userID)
		if err != nil {
			return nil, err
		}
	}

	c.logger.Info("session finished",
		slog.String("game_date", string(date)),
		slog.String("user_id", string(userID)),
		slog.String("outcome", string(outcome)),
		slog.Int("revealed", result.Revealed),
		slog.Int("score", result.Score),
	)

	return &SubmitOutcome{
		Correct:  outcome == model.OutcomeCorrect,
		Revealed: result.Revealed,
		Terminal: true,
		Outcome:  outcome,
		Score:    result.Score,
	}, nil
}

// GetResult returns the persisted terminal result for a (date, user)
// pair, or model.ErrResultNotFound while the session is still open
func (c *Controller) GetResult(ctx context.Context, date model.GameDate, userID model.UserID) (*model.Result, error) {
	return c.storage.GetResult(ctx, date, userID)
}

// Answer returns the day's player. Callers expose it only once the
// asking user's session is terminal.
func (c *Controller) Answer(ctx context.Context, date model.GameDate) (*model.Player, error) {
	game, err := c.daily.GetOrCreate(ctx, date)
	if err != nil {
		return nil, err
	}
	return c.storage.GetPlayer(ctx, game.PlayerID)
}

// Interface for dependency injection
type ControllerInterface interface {
	GetState(ctx context.Context, date model.GameDate, userID model.UserID) (model.SessionState, error)
	Submit(ctx context.Context, date model.GameDate, userID model.UserID, revealIndex int, text string) (*SubmitOutcome, error)
	GetResult(ctx context.Context, date model.GameDate, userID model.UserID) (*model.Result, error)
	Answer(ctx context.Context, date model.GameDate) (*model.Player, error)
}

var _ ControllerInterface = (*Controller)(nil)
