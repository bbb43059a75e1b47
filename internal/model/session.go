package model

// SessionPhase is the lifecycle phase of one user's daily session
type SessionPhase string

const (
	SessionNotStarted SessionPhase = "not_started"
	SessionInProgress SessionPhase = "in_progress"
	SessionFinished   SessionPhase = "finished"
)

// SessionOutcome is the terminal outcome of a finished session
type SessionOutcome string

const (
	OutcomeCorrect   SessionOutcome = "correct"
	OutcomeExhausted SessionOutcome = "exhausted"
)

// SessionState is the explicit tagged state of a session, derived from
// persisted rows rather than held in process memory
type SessionState struct {
	Phase SessionPhase `json:"phase"`

	// RevealIndex is the step the next guess must target.
	// Meaningful for SessionNotStarted (always 1) and SessionInProgress.
	RevealIndex int `json:"reveal_index"`

	// Outcome is set only when Phase is SessionFinished
	Outcome SessionOutcome `json:"outcome,omitempty"`
}

// SessionFromRows derives the session state from a user's guesses and
// (optional) result. Guesses must be the complete ordered history for the
// (date, user) pair.
func SessionFromRows(guesses []Guess, result *Result) SessionState {
	if result != nil {
		outcome := OutcomeExhausted
		if result.Correct() {
			outcome = OutcomeCorrect
		}
		return SessionState{Phase: SessionFinished, Outcome: outcome}
	}
	if len(guesses) == 0 {
		return SessionState{Phase: SessionNotStarted, RevealIndex: MinRevealIndex}
	}
	return SessionState{Phase: SessionInProgress, RevealIndex: len(guesses) + 1}
}

// Terminal reports whether no further guesses are accepted
func (s SessionState) Terminal() bool {
	return s.Phase == SessionFinished
}
