package game

import "errors"

var (
	// ErrInvalidState rejects an operation the current phase does not allow.
	ErrInvalidState = errors.New("game: operation invalid for current state")
	// ErrNotAllowed rejects a caller whose identity or role does not match
	// the operation.
	ErrNotAllowed = errors.New("game: not allowed")
	// ErrUnknownPlayer is returned when a player id is not in the roster.
	ErrUnknownPlayer = errors.New("game: no such player")
	// ErrDailyDoubleWager rejects a daily-double wager outside
	// [minimum, max(50 * multiplier, score)].
	ErrDailyDoubleWager = errors.New("game: daily double wager out of range")
	// ErrFinalWager rejects a final-round wager outside [0, score].
	ErrFinalWager = errors.New("game: final round wager out of range")
	// ErrAlreadyAttempted rejects a buzz from a player who already answered
	// the open clue incorrectly.
	ErrAlreadyAttempted = errors.New("game: player already attempted this clue")
	// ErrAnswersLocked rejects final-round submissions after the moderator
	// locks them.
	ErrAnswersLocked = errors.New("game: final round submissions are locked")
	// ErrAlreadyEvaluated rejects settling the same player's final answer
	// twice.
	ErrAlreadyEvaluated = errors.New("game: final answer already evaluated")
)
