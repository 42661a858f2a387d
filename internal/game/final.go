package game

import (
	"fmt"

	"github.com/lox/quizshow/internal/board"
)

// Final is the end-of-game question every remaining player answers
// privately, staking an individual wager.
type Final struct {
	Category         string
	Clue             board.Clue
	Answer           string
	QuestionRevealed bool
	AnswersLocked    bool
}

// FinalRecord tracks one player's final-round submissions and what the
// moderator has disclosed to the audience so far.
type FinalRecord struct {
	Wager          *int64
	Answer         *string
	WagerRevealed  bool
	AnswerRevealed bool
	Evaluated      bool
}

// StartFinalRound leaves the board behind and opens the final question,
// drawn from the pool with the game's own generator. Every player's
// final-round record resets.
func (g *Game) StartFinalRound(src QuestionSource) error {
	if g.phase == FinalJeopardy {
		return ErrInvalidState
	}
	q, err := src.RandomFinal(g.rng)
	if err != nil {
		return err
	}

	g.final = &Final{Category: q.Category, Clue: q.Clue, Answer: q.Answer}
	g.board = nil
	g.phase = FinalJeopardy
	g.controller = PlayerID{}
	g.activePlayer = PlayerID{}
	g.value = 0
	g.attempted = nil
	for _, p := range g.players {
		p.final = FinalRecord{}
	}
	return nil
}

// RevealFinalQuestion shows the final clue to the players.
func (g *Game) RevealFinalQuestion() error {
	if g.phase != FinalJeopardy {
		return ErrInvalidState
	}
	g.final.QuestionRevealed = true
	return nil
}

// LockFinalAnswers stops accepting wager and answer submissions.
func (g *Game) LockFinalAnswers() error {
	if g.phase != FinalJeopardy {
		return ErrInvalidState
	}
	g.final.AnswersLocked = true
	return nil
}

// SubmitFinalWager records a player's stake, bounded by their current score.
// A player whose score is negative has no valid wager.
func (g *Game) SubmitFinalWager(id PlayerID, wager int64) error {
	if g.phase != FinalJeopardy {
		return ErrInvalidState
	}
	if g.final.AnswersLocked {
		return ErrAnswersLocked
	}
	p, ok := g.players[id]
	if !ok {
		return ErrUnknownPlayer
	}
	if wager < 0 || wager > p.Score {
		return fmt.Errorf("%w: %d with score %d", ErrFinalWager, wager, p.Score)
	}
	p.final.Wager = &wager
	return nil
}

// SubmitFinalAnswer records a player's free-text answer.
func (g *Game) SubmitFinalAnswer(id PlayerID, answer string) error {
	if g.phase != FinalJeopardy {
		return ErrInvalidState
	}
	if g.final.AnswersLocked {
		return ErrAnswersLocked
	}
	p, ok := g.players[id]
	if !ok {
		return ErrUnknownPlayer
	}
	p.final.Answer = &answer
	return nil
}

// RevealFinalWager discloses one player's wager to the audience.
func (g *Game) RevealFinalWager(id PlayerID) error {
	if g.phase != FinalJeopardy {
		return ErrInvalidState
	}
	p, ok := g.players[id]
	if !ok {
		return ErrUnknownPlayer
	}
	p.final.WagerRevealed = true
	return nil
}

// RevealFinalAnswer discloses one player's answer to the audience.
func (g *Game) RevealFinalAnswer(id PlayerID) error {
	if g.phase != FinalJeopardy {
		return ErrInvalidState
	}
	p, ok := g.players[id]
	if !ok {
		return ErrUnknownPlayer
	}
	p.final.AnswerRevealed = true
	return nil
}

// EvaluateFinalAnswer settles one player's final answer, crediting or
// debiting their stored wager (0 if they never submitted one). Each player
// settles exactly once.
func (g *Game) EvaluateFinalAnswer(id PlayerID, v Verdict) error {
	if g.phase != FinalJeopardy {
		return ErrInvalidState
	}
	p, ok := g.players[id]
	if !ok {
		return ErrUnknownPlayer
	}
	if p.final.Evaluated {
		return ErrAlreadyEvaluated
	}

	var wager int64
	if p.final.Wager != nil {
		wager = *p.final.Wager
	}
	switch v {
	case Correct:
		p.Score += wager
	case Incorrect:
		p.Score -= wager
	case Skip:
	}
	p.final.Evaluated = true
	return nil
}
