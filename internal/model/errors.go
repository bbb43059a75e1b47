package model

import "errors"

// Common errors used across the application
var (
	// Lookup errors
	ErrPlayerNotFound    = errors.New("player not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrDailyGameNotFound = errors.New("no daily game for date")
	ErrResultNotFound    = errors.New("result not found")
	ErrStreakNotFound    = errors.New("streak not found")
	ErrSeasonsNotFound   = errors.New("no season lines for player")
	ErrCheatFlagNotFound = errors.New("no cheat flag recorded")

	// Daily selection errors
	ErrSelectionExhausted = errors.New("no eligible player within exclusion window")

	// Session errors
	ErrOutOfSequenceGuess = errors.New("guess reveal index out of sequence")
	ErrTerminalSession    = errors.New("session already finished")
	ErrDuplicateGuess     = errors.New("guess already submitted for this reveal step")
	ErrResultExists       = errors.New("result already recorded")

	// Hint errors
	ErrUnknownHint     = errors.New("unknown hint kind")
	ErrHintUnavailable = errors.New("hint not available for this player")
)
