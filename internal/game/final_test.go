package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/quizshow/internal/board"
)

func newFinalGame(t *testing.T, names ...string) (*Game, []PlayerID) {
	t.Helper()
	g, ids := newTestGame(t, names...)
	require.NoError(t, g.StartFinalRound(&stubSource{}))
	return g, ids
}

func TestStartFinalRound(t *testing.T) {
	g, ids := newTestGame(t, "Ken")
	loadBoard(t, g, 100, 0, 1)

	// Stale submissions from an earlier final must not survive.
	g.players[ids[0]].final = FinalRecord{Wager: ptr(int64(100)), Evaluated: true}

	require.NoError(t, g.StartFinalRound(&stubSource{}))
	assert.Equal(t, FinalJeopardy, g.Phase())
	assert.Nil(t, g.board, "the board is left behind")
	assert.Equal(t, FinalRecord{}, g.players[ids[0]].final)
	require.NotNil(t, g.final)
	assert.Equal(t, "Potpourri", g.final.Category)
	assert.False(t, g.final.QuestionRevealed)
	assert.False(t, g.final.AnswersLocked)

	// There is no final round after the final round.
	require.ErrorIs(t, g.StartFinalRound(&stubSource{}), ErrInvalidState)
}

func TestFinalWagerBounds(t *testing.T) {
	g, ids := newFinalGame(t, "Ken")
	require.NoError(t, g.SetPlayerScore(ids[0], 750))

	require.ErrorIs(t, g.SubmitFinalWager(ids[0], -1), ErrFinalWager)
	require.ErrorIs(t, g.SubmitFinalWager(ids[0], 751), ErrFinalWager)
	require.NoError(t, g.SubmitFinalWager(ids[0], 0))
	require.NoError(t, g.SubmitFinalWager(ids[0], 750))
	assert.Equal(t, int64(750), *g.players[ids[0]].final.Wager)

	// A negative score leaves no valid stake.
	require.NoError(t, g.SetPlayerScore(ids[0], -100))
	require.ErrorIs(t, g.SubmitFinalWager(ids[0], 0), ErrFinalWager)

	require.ErrorIs(t, g.SubmitFinalWager(NewPlayerID(), 0), ErrUnknownPlayer)
}

func TestFinalSubmissionsOutsideFinalRound(t *testing.T) {
	g, ids := newTestGame(t, "Ken")
	require.ErrorIs(t, g.SubmitFinalWager(ids[0], 0), ErrInvalidState)
	require.ErrorIs(t, g.SubmitFinalAnswer(ids[0], "x"), ErrInvalidState)
	require.ErrorIs(t, g.RevealFinalQuestion(), ErrInvalidState)
	require.ErrorIs(t, g.LockFinalAnswers(), ErrInvalidState)
	require.ErrorIs(t, g.RevealFinalWager(ids[0]), ErrInvalidState)
	require.ErrorIs(t, g.RevealFinalAnswer(ids[0]), ErrInvalidState)
	require.ErrorIs(t, g.EvaluateFinalAnswer(ids[0], Correct), ErrInvalidState)
}

func TestFinalAnswerLocking(t *testing.T) {
	g, ids := newFinalGame(t, "Ken")
	require.NoError(t, g.SetPlayerScore(ids[0], 500))

	require.NoError(t, g.SubmitFinalAnswer(ids[0], "first draft"))
	require.NoError(t, g.SubmitFinalAnswer(ids[0], "what is a revision"))
	assert.Equal(t, "what is a revision", *g.players[ids[0]].final.Answer)

	require.NoError(t, g.LockFinalAnswers())
	require.ErrorIs(t, g.SubmitFinalAnswer(ids[0], "too late"), ErrAnswersLocked)
	require.ErrorIs(t, g.SubmitFinalWager(ids[0], 100), ErrAnswersLocked)
	assert.Equal(t, "what is a revision", *g.players[ids[0]].final.Answer)
}

func TestFinalReveals(t *testing.T) {
	g, ids := newFinalGame(t, "Ken")
	require.NoError(t, g.SetPlayerScore(ids[0], 500))
	require.NoError(t, g.SubmitFinalWager(ids[0], 200))

	require.NoError(t, g.RevealFinalQuestion())
	assert.True(t, g.final.QuestionRevealed)

	require.NoError(t, g.RevealFinalWager(ids[0]))
	assert.True(t, g.players[ids[0]].final.WagerRevealed)
	assert.False(t, g.players[ids[0]].final.AnswerRevealed)

	require.NoError(t, g.RevealFinalAnswer(ids[0]))
	assert.True(t, g.players[ids[0]].final.AnswerRevealed)

	require.ErrorIs(t, g.RevealFinalWager(NewPlayerID()), ErrUnknownPlayer)
}

func TestEvaluateFinalAnswer(t *testing.T) {
	tests := []struct {
		name    string
		wager   *int64
		verdict Verdict
		want    int64
	}{
		{"correct credits the wager", ptr(int64(300)), Correct, 800},
		{"incorrect debits the wager", ptr(int64(300)), Incorrect, 200},
		{"skip never moves the score", ptr(int64(300)), Skip, 500},
		{"no wager defaults to zero", nil, Correct, 500},
		{"no wager defaults to zero on incorrect", nil, Incorrect, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, ids := newFinalGame(t, "Ken")
			require.NoError(t, g.SetPlayerScore(ids[0], 500))
			if tt.wager != nil {
				require.NoError(t, g.SubmitFinalWager(ids[0], *tt.wager))
			}

			require.NoError(t, g.EvaluateFinalAnswer(ids[0], tt.verdict))
			assert.Equal(t, tt.want, g.players[ids[0]].Score)
			assert.True(t, g.players[ids[0]].final.Evaluated)

			// Each player settles exactly once.
			require.ErrorIs(t, g.EvaluateFinalAnswer(ids[0], tt.verdict), ErrAlreadyEvaluated)
			assert.Equal(t, tt.want, g.players[ids[0]].Score)
		})
	}
}

func TestFinalRoundPlayerDeparture(t *testing.T) {
	g, ids := newFinalGame(t, "Ken", "Brad")
	require.NoError(t, g.SubmitFinalAnswer(ids[0], "gone soon"))

	require.NoError(t, g.RemovePlayer(ids[0]))
	assert.Equal(t, FinalJeopardy, g.Phase(), "departures never disturb the final round")
	require.ErrorIs(t, g.EvaluateFinalAnswer(ids[0], Correct), ErrUnknownPlayer)
	require.NoError(t, g.EvaluateFinalAnswer(ids[1], Skip))
}

func ptr[T any](v T) *T { return &v }

func TestFinalQuestionDraw(t *testing.T) {
	src := &stubSource{finals: []FinalQuestion{
		{Category: "A", Clue: board.Clue{Text: "a"}, Answer: "1"},
		{Category: "B", Clue: board.Clue{Text: "b"}, Answer: "2"},
		{Category: "C", Clue: board.Clue{Text: "c"}, Answer: "3"},
	}}

	seen := make(map[string]bool)
	for i := 0; i < 40; i++ {
		g, _ := newTestGame(t, "Ken")
		require.NoError(t, g.StartFinalRound(src))
		seen[g.final.Category] = true
	}
	assert.GreaterOrEqual(t, len(seen), 2, "draws should spread over the pool")
}
