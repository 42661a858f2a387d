package game

import (
	"github.com/lox/quizshow/internal/board"
)

// Audience selects how much a snapshot discloses. Moderator snapshots carry
// clues, answers and hidden wagers; player snapshots only what the table
// would see.
type Audience int

const (
	ForModerator Audience = iota
	ForPlayers
)

// Snapshot is the full client-facing state of a game. It contains no
// tokens and no undisclosed material for its audience, so it can be
// broadcast as-is.
type Snapshot struct {
	IsEnded     bool                  `json:"is_ended"`
	IsModerator bool                  `json:"is_moderator"`
	Moderator   ParticipantView       `json:"moderator"`
	Players     map[string]PlayerView `json:"players"`
	State       StateView             `json:"state"`
}

// ParticipantView is the moderator as clients see them.
type ParticipantView struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// PlayerView is one roster entry. Final is present only during the final
// round.
type PlayerView struct {
	Name      string     `json:"name"`
	Score     int64      `json:"score"`
	AvatarURL string     `json:"avatar_url,omitempty"`
	Final     *FinalView `json:"final,omitempty"`
}

// FinalView reports a player's final-round progress. Wager and Answer are
// populated only for the moderator or once revealed; the Has flags let
// clients show submission progress without the contents.
type FinalView struct {
	HasWager       bool    `json:"has_wager"`
	HasAnswer      bool    `json:"has_answer"`
	Wager          *int64  `json:"wager,omitempty"`
	Answer         *string `json:"answer,omitempty"`
	WagerRevealed  bool    `json:"wager_revealed"`
	AnswerRevealed bool    `json:"answer_revealed"`
	Evaluated      bool    `json:"evaluated"`
}

// StateView is the phase-dependent part of a snapshot. Type always carries
// the phase name; the other fields appear as the phase defines them.
type StateView struct {
	Type         string          `json:"type"`
	Board        *board.View     `json:"board,omitempty"`
	Controller   string          `json:"controller,omitempty"`
	Location     *board.Location `json:"location,omitempty"`
	ActivePlayer string          `json:"active_player,omitempty"`
	Value        int64           `json:"value,omitempty"`
	Final        *FinalStateView `json:"final,omitempty"`
}

// FinalStateView is the final round as clients see it. The clue appears
// once revealed, the answer only to the moderator.
type FinalStateView struct {
	Category         string      `json:"category"`
	QuestionRevealed bool        `json:"question_revealed"`
	AnswersLocked    bool        `json:"answers_locked"`
	Clue             *board.Clue `json:"clue,omitempty"`
	Answer           string      `json:"answer,omitempty"`
}

// Snapshot renders the game for one audience. Pointer fields are copies;
// the snapshot stays valid after the game moves on.
func (g *Game) Snapshot(aud Audience) Snapshot {
	snap := Snapshot{
		IsEnded:     g.Ended,
		IsModerator: aud == ForModerator,
		Moderator: ParticipantView{
			Name:      g.moderator.Name,
			AvatarURL: g.moderator.AvatarURL,
		},
		Players: make(map[string]PlayerView, len(g.players)),
		State:   g.stateView(aud),
	}
	for id, p := range g.players {
		pv := PlayerView{
			Name:      p.Name,
			Score:     p.Score,
			AvatarURL: p.AvatarURL,
		}
		if g.phase == FinalJeopardy {
			pv.Final = p.final.view(aud)
		}
		snap.Players[id.String()] = pv
	}
	return snap
}

func (g *Game) stateView(aud Audience) StateView {
	v := StateView{Type: g.phase.String()}
	switch g.phase {
	case NoBoard:

	case FinalJeopardy:
		fv := &FinalStateView{
			Category:         g.final.Category,
			QuestionRevealed: g.final.QuestionRevealed,
			AnswersLocked:    g.final.AnswersLocked,
		}
		if aud == ForModerator || g.final.QuestionRevealed {
			clue := g.final.Clue
			fv.Clue = &clue
		}
		if aud == ForModerator {
			fv.Answer = g.final.Answer
		}
		v.Final = fv

	default:
		bv := g.board.View(aud == ForModerator, g.phase != DailyDoubleWager)
		v.Board = &bv
		if !g.controller.IsZero() {
			v.Controller = g.controller.String()
		}
		switch g.phase {
		case BuzzerPending, DailyDoubleWager, BuzzerOpen, Answering:
			loc := g.location
			v.Location = &loc
		}
		if g.phase == Answering {
			v.ActivePlayer = g.activePlayer.String()
			v.Value = g.value
		}
	}
	return v
}

func (r *FinalRecord) view(aud Audience) *FinalView {
	v := &FinalView{
		HasWager:       r.Wager != nil,
		HasAnswer:      r.Answer != nil,
		WagerRevealed:  r.WagerRevealed,
		AnswerRevealed: r.AnswerRevealed,
		Evaluated:      r.Evaluated,
	}
	if r.Wager != nil && (aud == ForModerator || r.WagerRevealed) {
		w := *r.Wager
		v.Wager = &w
	}
	if r.Answer != nil && (aud == ForModerator || r.AnswerRevealed) {
		a := *r.Answer
		v.Answer = &a
	}
	return v
}
