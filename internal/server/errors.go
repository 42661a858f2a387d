package server

import (
	"errors"

	"github.com/lox/quizshow/internal/avatar"
	"github.com/lox/quizshow/internal/board"
	"github.com/lox/quizshow/internal/game"
	"github.com/lox/quizshow/internal/questions"
	"github.com/lox/quizshow/internal/registry"
)

// Wire error codes. Codes are stable API; messages are free text.
const (
	codeBadRequest       = "bad_request"
	codeInvalidMessage   = "invalid_message"
	codeUnknownMessage   = "unknown_message_type"
	codeLockTimeout      = "lock_timeout"
	codeUnknownGame      = "unknown_game"
	codeNotAllowed       = "not_allowed"
	codeUnknownPlayer    = "unknown_player"
	codeInvalidGameState = "invalid_game_state"
	codeInvalidWager     = "invalid_wager"
	codeAlreadyAttempted = "already_attempted"
	codeAnswersLocked    = "answers_locked"
	codeAlreadyEvaluated = "already_evaluated"
	codeInvalidLocation  = "invalid_location"
	codeInvalidSquare    = "invalid_square_state"
	codeInvalidBoard     = "invalid_board_request"
	codeNoQuestions      = "no_questions"
	codeInvalidAvatar    = "invalid_avatar"
	codeAvatarTooLarge   = "avatar_too_large"
	codeInternalError    = "internal_error"
)

// errorCode maps an operation error to its wire code.
func errorCode(err error) string {
	switch {
	case errors.Is(err, registry.ErrLockTimeout):
		return codeLockTimeout
	case errors.Is(err, registry.ErrUnknownGame):
		return codeUnknownGame
	case errors.Is(err, game.ErrNotAllowed):
		return codeNotAllowed
	case errors.Is(err, game.ErrUnknownPlayer):
		return codeUnknownPlayer
	case errors.Is(err, game.ErrInvalidState):
		return codeInvalidGameState
	case errors.Is(err, game.ErrDailyDoubleWager), errors.Is(err, game.ErrFinalWager):
		return codeInvalidWager
	case errors.Is(err, game.ErrAlreadyAttempted):
		return codeAlreadyAttempted
	case errors.Is(err, game.ErrAnswersLocked):
		return codeAnswersLocked
	case errors.Is(err, game.ErrAlreadyEvaluated):
		return codeAlreadyEvaluated
	case errors.Is(err, board.ErrInvalidLocation):
		return codeInvalidLocation
	case errors.Is(err, board.ErrInvalidTransition):
		return codeInvalidSquare
	case errors.Is(err, board.ErrTooManyDailyDoubles):
		return codeInvalidBoard
	case errors.Is(err, questions.ErrNoCategories), errors.Is(err, questions.ErrNoFinals):
		return codeNoQuestions
	case errors.Is(err, avatar.ErrNotImage), errors.Is(err, avatar.ErrBadPayload):
		return codeInvalidAvatar
	case errors.Is(err, avatar.ErrTooLarge):
		return codeAvatarTooLarge
	}
	return codeInternalError
}
