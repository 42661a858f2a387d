package game

import (
	"fmt"
	rand "math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/quizshow/internal/board"
	"github.com/lox/quizshow/internal/seed"
)

// stubSource deals categories round-robin so board contents are predictable
// regardless of the generator.
type stubSource struct {
	next   int
	finals []FinalQuestion
}

func (s *stubSource) RandomCategory(rng *rand.Rand) (board.Category, error) {
	cat := board.Category{Title: fmt.Sprintf("Category %d", s.next), AirYear: 1997}
	for i := 0; i < board.CategoryHeight; i++ {
		cat.Squares[i] = board.NewSquare(
			board.Clue{Text: fmt.Sprintf("clue %d-%d", s.next, i)},
			fmt.Sprintf("answer %d-%d", s.next, i),
		)
	}
	s.next++
	return cat, nil
}

func (s *stubSource) RandomFinal(rng *rand.Rand) (FinalQuestion, error) {
	if len(s.finals) == 0 {
		return FinalQuestion{
			Category: "Potpourri",
			Clue:     board.Clue{Text: "the final clue"},
			Answer:   "the final answer",
		}, nil
	}
	return s.finals[rng.IntN(len(s.finals))], nil
}

func newTestGame(t *testing.T, playerNames ...string) (*Game, []PlayerID) {
	t.Helper()
	g := New("Alex", "", time.Now())
	ids := make([]PlayerID, len(playerNames))
	for i, name := range playerNames {
		ids[i] = g.AddPlayer(NewPlayer(name, ""))
	}
	return g, ids
}

// loadBoard loads a fresh board with no daily doubles unless asked otherwise.
func loadBoard(t *testing.T, g *Game, multiplier int64, dailyDoubles, categories int) {
	t.Helper()
	require.NoError(t, g.LoadNewBoard(&stubSource{}, multiplier, dailyDoubles, categories, seed.Seed(1234)))
}

func TestNewGameStartsWithNoBoard(t *testing.T) {
	g, _ := newTestGame(t)
	assert.Equal(t, NoBoard, g.Phase())
	_, ok := g.Controller()
	assert.False(t, ok)
	assert.False(t, g.Ended)
	assert.NotEmpty(t, g.ModeratorChannel)
	assert.NotEmpty(t, g.PlayerChannel)
	assert.NotEqual(t, g.ModeratorChannel, g.PlayerChannel)
}

func TestAuthorize(t *testing.T) {
	g, ids := newTestGame(t, "Ken")
	player := g.players[ids[0]]

	role, err := g.Authorize(g.ModeratorID(), g.ModeratorToken())
	require.NoError(t, err)
	assert.Equal(t, RoleModerator, role)

	role, err = g.Authorize(ids[0], player.Token())
	require.NoError(t, err)
	assert.Equal(t, RolePlayer, role)

	// Wrong token, swapped tokens and unknown ids all fail the same way.
	_, err = g.Authorize(ids[0], NewToken())
	assert.ErrorIs(t, err, ErrNotAllowed)
	_, err = g.Authorize(ids[0], g.ModeratorToken())
	assert.ErrorIs(t, err, ErrNotAllowed)
	_, err = g.Authorize(g.ModeratorID(), player.Token())
	assert.ErrorIs(t, err, ErrNotAllowed)
	_, err = g.Authorize(NewPlayerID(), player.Token())
	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestLoadNewBoardFromAnyPhase(t *testing.T) {
	g, ids := newTestGame(t, "Ken")
	loadBoard(t, g, 100, 0, 2)
	assert.Equal(t, SquareSelection, g.Phase())
	assert.Equal(t, 1, g.board.ID())

	// Mid-question reload forces the machine back to selection.
	require.NoError(t, g.SelectSquare(ids[0], board.Location{Category: 0, Row: 0}))
	assert.Equal(t, BuzzerPending, g.Phase())
	loadBoard(t, g, 100, 0, 2)
	assert.Equal(t, SquareSelection, g.Phase())
	assert.Equal(t, 2, g.board.ID())

	// Reload also leaves the final round.
	require.NoError(t, g.StartFinalRound(&stubSource{}))
	loadBoard(t, g, 100, 0, 2)
	assert.Equal(t, SquareSelection, g.Phase())
	assert.Equal(t, 3, g.board.ID())
	assert.Nil(t, g.final)
}

func TestLoadNewBoardControllerIsLowestScore(t *testing.T) {
	g, ids := newTestGame(t, "Ken", "Brad")
	require.NoError(t, g.SetPlayerScore(ids[0], 500))
	require.NoError(t, g.SetPlayerScore(ids[1], -200))

	for i := 0; i < 10; i++ {
		loadBoard(t, g, 100, 0, 1)
		controller, ok := g.Controller()
		require.True(t, ok)
		assert.Equal(t, ids[1], controller, "lowest score controls the board")
	}
}

func TestLoadNewBoardTieBreaksAmongLowest(t *testing.T) {
	g, ids := newTestGame(t, "Ken", "Brad", "Larissa")
	require.NoError(t, g.SetPlayerScore(ids[2], 1000))

	seen := make(map[PlayerID]bool)
	for i := 0; i < 50; i++ {
		loadBoard(t, g, 100, 0, 1)
		controller, ok := g.Controller()
		require.True(t, ok)
		assert.NotEqual(t, ids[2], controller, "a leader never takes the board")
		seen[controller] = true
	}
	assert.True(t, seen[ids[0]] && seen[ids[1]], "both tied players should win the draw eventually")
}

func TestLoadNewBoardWithoutPlayers(t *testing.T) {
	g, _ := newTestGame(t)
	loadBoard(t, g, 100, 0, 1)
	_, ok := g.Controller()
	assert.False(t, ok)

	// The next joiner picks up the board.
	id := g.AddPlayer(NewPlayer("Ken", ""))
	controller, ok := g.Controller()
	require.True(t, ok)
	assert.Equal(t, id, controller)
}

func TestLoadNewBoardTooManyDailyDoubles(t *testing.T) {
	g, _ := newTestGame(t, "Ken")
	err := g.LoadNewBoard(&stubSource{}, 100, 6, 1, seed.Seed(1))
	require.ErrorIs(t, err, board.ErrTooManyDailyDoubles)
	assert.Equal(t, NoBoard, g.Phase())
}

func TestSelectSquare(t *testing.T) {
	g, ids := newTestGame(t, "Ken", "Brad")
	loadBoard(t, g, 100, 0, 1)
	controller, _ := g.Controller()
	other := ids[0]
	if other == controller {
		other = ids[1]
	}

	// Only the controller selects.
	err := g.SelectSquare(other, board.Location{Category: 0, Row: 0})
	require.ErrorIs(t, err, ErrNotAllowed)

	require.NoError(t, g.SelectSquare(controller, board.Location{Category: 0, Row: 0}))
	assert.Equal(t, BuzzerPending, g.Phase())

	// The flipped square is out of bounds for reselection later; a second
	// select is already a protocol error by phase.
	err = g.SelectSquare(controller, board.Location{Category: 0, Row: 1})
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestSelectSquareInvalidLocation(t *testing.T) {
	g, ids := newTestGame(t, "Ken")
	loadBoard(t, g, 100, 0, 1)

	err := g.SelectSquare(ids[0], board.Location{Category: 5, Row: 0})
	require.ErrorIs(t, err, board.ErrInvalidLocation)
	assert.Equal(t, SquareSelection, g.Phase(), "failed select leaves the machine put")
}

func TestSelectSquareDailyDouble(t *testing.T) {
	g, ids := newTestGame(t, "Ken")
	// Every square on a one-category board is a daily double.
	loadBoard(t, g, 200, 5, 1)

	require.NoError(t, g.SelectSquare(ids[0], board.Location{Category: 0, Row: 2}))
	assert.Equal(t, DailyDoubleWager, g.Phase())
}

func TestBuzzerFlow(t *testing.T) {
	g, ids := newTestGame(t, "Ken", "Brad")
	loadBoard(t, g, 200, 0, 1)
	controller, _ := g.Controller()

	loc := board.Location{Category: 0, Row: 2}
	require.NoError(t, g.SelectSquare(controller, loc))

	// Nobody can buzz before the moderator opens the race.
	require.ErrorIs(t, g.Buzz(ids[0]), ErrInvalidState)

	require.NoError(t, g.EnableBuzzer())
	assert.Equal(t, BuzzerOpen, g.Phase())

	require.ErrorIs(t, g.Buzz(NewPlayerID()), ErrUnknownPlayer)

	require.NoError(t, g.Buzz(ids[1]))
	assert.Equal(t, Answering, g.Phase())
	assert.Equal(t, ids[1], g.activePlayer)
	assert.Equal(t, int64(600), g.value, "row 2 at multiplier 200")
}

func TestAnswerScoring(t *testing.T) {
	g, ids := newTestGame(t, "Ken", "Brad")
	loadBoard(t, g, 200, 0, 1)
	controller, _ := g.Controller()
	buzzer := ids[0]
	if buzzer == controller {
		buzzer = ids[1]
	}

	loc := board.Location{Category: 0, Row: 2}
	require.NoError(t, g.SelectSquare(controller, loc))
	require.NoError(t, g.EnableBuzzer())
	require.NoError(t, g.Buzz(buzzer))

	// Incorrect debits the stake and reopens the race on the same square.
	require.NoError(t, g.Answer(Incorrect))
	assert.Equal(t, int64(-600), g.players[buzzer].Score)
	assert.Equal(t, BuzzerOpen, g.Phase())
	assert.Equal(t, loc, g.location)
	current, _ := g.Controller()
	assert.Equal(t, controller, current, "incorrect answers never move the board")

	// The other player answers correctly: credit, square finished,
	// board handed over.
	require.NoError(t, g.Buzz(controller))
	require.NoError(t, g.Answer(Correct))
	assert.Equal(t, int64(600), g.players[controller].Score)
	assert.Equal(t, SquareSelection, g.Phase())
	current, _ = g.Controller()
	assert.Equal(t, controller, current)

	sq, err := g.board.SquareAt(loc)
	require.NoError(t, err)
	assert.Equal(t, board.Finished, sq.State())
}

func TestAnswerOnlyFromAnswering(t *testing.T) {
	g, ids := newTestGame(t, "Ken")
	loadBoard(t, g, 100, 0, 1)

	for _, v := range []Verdict{Correct, Incorrect} {
		require.ErrorIs(t, g.Answer(v), ErrInvalidState, "verdict %s from selection", v)
		assert.Equal(t, SquareSelection, g.Phase())
	}

	require.NoError(t, g.SelectSquare(ids[0], board.Location{Category: 0, Row: 0}))
	require.ErrorIs(t, g.Answer(Correct), ErrInvalidState, "no answer before the buzzer opens")
}

func TestRebuzzExclusion(t *testing.T) {
	g, ids := newTestGame(t, "Ken", "Brad")
	loadBoard(t, g, 100, 0, 1)
	controller, _ := g.Controller()

	require.NoError(t, g.SelectSquare(controller, board.Location{Category: 0, Row: 0}))
	require.NoError(t, g.EnableBuzzer())
	require.NoError(t, g.Buzz(ids[0]))
	require.NoError(t, g.Answer(Incorrect))

	// A player who missed is out until the square resolves.
	require.ErrorIs(t, g.Buzz(ids[0]), ErrAlreadyAttempted)
	require.NoError(t, g.Buzz(ids[1]))
	require.NoError(t, g.Answer(Correct))

	// The exclusion clears with the next square.
	require.NoError(t, g.SelectSquare(ids[1], board.Location{Category: 0, Row: 1}))
	require.NoError(t, g.EnableBuzzer())
	require.NoError(t, g.Buzz(ids[0]))
}

func TestSkip(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, g *Game, controller PlayerID)
	}{
		{"from answering", func(t *testing.T, g *Game, controller PlayerID) {
			require.NoError(t, g.EnableBuzzer())
			require.NoError(t, g.Buzz(controller))
		}},
		{"from open buzzer", func(t *testing.T, g *Game, controller PlayerID) {
			require.NoError(t, g.EnableBuzzer())
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, ids := newTestGame(t, "Ken")
			loadBoard(t, g, 100, 0, 1)
			loc := board.Location{Category: 0, Row: 3}
			require.NoError(t, g.SelectSquare(ids[0], loc))
			tt.setup(t, g, ids[0])

			require.NoError(t, g.Answer(Skip))
			assert.Equal(t, SquareSelection, g.Phase())
			assert.Equal(t, int64(0), g.players[ids[0]].Score, "skips never move scores")
			controller, _ := g.Controller()
			assert.Equal(t, ids[0], controller)

			sq, err := g.board.SquareAt(loc)
			require.NoError(t, err)
			assert.Equal(t, board.Finished, sq.State())
		})
	}
}

func TestSkipDailyDoubleWager(t *testing.T) {
	g, ids := newTestGame(t, "Ken")
	loadBoard(t, g, 100, 5, 1)
	loc := board.Location{Category: 0, Row: 1}
	require.NoError(t, g.SelectSquare(ids[0], loc))
	require.Equal(t, DailyDoubleWager, g.Phase())

	require.NoError(t, g.Answer(Skip))
	assert.Equal(t, SquareSelection, g.Phase())
	sq, err := g.board.SquareAt(loc)
	require.NoError(t, err)
	assert.Equal(t, board.Finished, sq.State())
}

func TestSkipInvalidFromSelection(t *testing.T) {
	g, _ := newTestGame(t, "Ken")
	loadBoard(t, g, 100, 0, 1)
	require.ErrorIs(t, g.Answer(Skip), ErrInvalidState)
}

func TestDailyDoubleWagerBounds(t *testing.T) {
	newWagerGame := func(t *testing.T, score int64) (*Game, PlayerID) {
		g, ids := newTestGame(t, "Ken")
		require.NoError(t, g.SetPlayerScore(ids[0], score))
		loadBoard(t, g, 200, 5, 1)
		require.NoError(t, g.SelectSquare(ids[0], board.Location{Category: 0, Row: 0}))
		return g, ids[0]
	}

	t.Run("below minimum", func(t *testing.T) {
		g, _ := newWagerGame(t, 100)
		require.ErrorIs(t, g.SubmitWager(g.controller, 4), ErrDailyDoubleWager)
		require.ErrorIs(t, g.SubmitWager(g.controller, -1), ErrDailyDoubleWager)
		assert.Equal(t, DailyDoubleWager, g.Phase())
	})

	t.Run("cap is max of factor and score", func(t *testing.T) {
		// Score 100 under multiplier 200: cap = max(50*200, 100) = 10000.
		g, _ := newWagerGame(t, 100)
		require.ErrorIs(t, g.SubmitWager(g.controller, 10001), ErrDailyDoubleWager)
		require.NoError(t, g.SubmitWager(g.controller, 10000))
		assert.Equal(t, Answering, g.Phase())
		assert.Equal(t, int64(10000), g.value)
	})

	t.Run("large score raises the cap", func(t *testing.T) {
		g, id := newWagerGame(t, 25000)
		require.ErrorIs(t, g.SubmitWager(g.controller, 25001), ErrDailyDoubleWager)
		require.NoError(t, g.SubmitWager(g.controller, 25000))
		assert.Equal(t, id, g.activePlayer, "daily doubles are answered by the controller")
	})

	t.Run("only the controller wagers", func(t *testing.T) {
		g, _ := newWagerGame(t, 0)
		require.ErrorIs(t, g.SubmitWager(NewPlayerID(), 100), ErrNotAllowed)
	})
}

func TestDailyDoubleScoring(t *testing.T) {
	g, ids := newTestGame(t, "Ken")
	loadBoard(t, g, 200, 5, 1)
	require.NoError(t, g.SelectSquare(ids[0], board.Location{Category: 0, Row: 0}))
	require.NoError(t, g.SubmitWager(ids[0], 3000))
	require.NoError(t, g.Answer(Incorrect))

	assert.Equal(t, int64(-3000), g.players[ids[0]].Score)
	// The lone player already missed, so the reopened buzzer is dead until
	// the moderator skips.
	assert.Equal(t, BuzzerOpen, g.Phase())
	require.ErrorIs(t, g.Buzz(ids[0]), ErrAlreadyAttempted)
	require.NoError(t, g.Answer(Skip))
	assert.Equal(t, SquareSelection, g.Phase())
}

func TestRemovePlayerUnknown(t *testing.T) {
	g, _ := newTestGame(t, "Ken")
	require.ErrorIs(t, g.RemovePlayer(NewPlayerID()), ErrUnknownPlayer)
}

func TestRemoveControllerDuringSelection(t *testing.T) {
	g, ids := newTestGame(t, "Ken", "Brad")
	loadBoard(t, g, 100, 0, 1)
	controller, _ := g.Controller()
	other := ids[0]
	if other == controller {
		other = ids[1]
	}

	require.NoError(t, g.RemovePlayer(controller))
	current, ok := g.Controller()
	require.True(t, ok)
	assert.Equal(t, other, current)

	// Removing the last player leaves the board uncontrolled.
	require.NoError(t, g.RemovePlayer(other))
	_, ok = g.Controller()
	assert.False(t, ok)
	assert.Equal(t, SquareSelection, g.Phase())
}

func TestRemoveNonControllerDuringSelection(t *testing.T) {
	g, ids := newTestGame(t, "Ken", "Brad")
	loadBoard(t, g, 100, 0, 1)
	controller, _ := g.Controller()
	other := ids[0]
	if other == controller {
		other = ids[1]
	}

	require.NoError(t, g.RemovePlayer(other))
	current, ok := g.Controller()
	require.True(t, ok)
	assert.Equal(t, controller, current)
}

func TestRemoveControllerDuringBuzzer(t *testing.T) {
	g, ids := newTestGame(t, "Ken", "Brad")
	loadBoard(t, g, 100, 0, 1)
	controller, _ := g.Controller()
	other := ids[0]
	if other == controller {
		other = ids[1]
	}

	loc := board.Location{Category: 0, Row: 0}
	require.NoError(t, g.SelectSquare(controller, loc))
	require.NoError(t, g.EnableBuzzer())

	// Another player can take over the board mid-question.
	require.NoError(t, g.RemovePlayer(controller))
	assert.Equal(t, BuzzerOpen, g.Phase())
	current, ok := g.Controller()
	require.True(t, ok)
	assert.Equal(t, other, current)

	// With nobody left the square is abandoned.
	require.NoError(t, g.RemovePlayer(other))
	assert.Equal(t, SquareSelection, g.Phase())
	_, ok = g.Controller()
	assert.False(t, ok)
	sq, err := g.board.SquareAt(loc)
	require.NoError(t, err)
	assert.Equal(t, board.Finished, sq.State())
}

func TestRemoveControllerDuringEnableBuzzer(t *testing.T) {
	g, ids := newTestGame(t, "Ken", "Brad")
	loadBoard(t, g, 100, 0, 1)
	controller, _ := g.Controller()
	other := ids[0]
	if other == controller {
		other = ids[1]
	}

	require.NoError(t, g.SelectSquare(controller, board.Location{Category: 0, Row: 0}))
	require.NoError(t, g.RemovePlayer(controller))
	assert.Equal(t, BuzzerPending, g.Phase(), "question stays pending under the new controller")
	current, _ := g.Controller()
	assert.Equal(t, other, current)
}

func TestRemoveControllerDuringDailyDoubleWager(t *testing.T) {
	g, ids := newTestGame(t, "Ken", "Brad")
	loadBoard(t, g, 100, 5, 1)
	controller, _ := g.Controller()
	other := ids[0]
	if other == controller {
		other = ids[1]
	}

	loc := board.Location{Category: 0, Row: 0}
	require.NoError(t, g.SelectSquare(controller, loc))
	require.NoError(t, g.RemovePlayer(controller))

	// Nobody else may take over a wager in progress; the square is gone.
	assert.Equal(t, SquareSelection, g.Phase())
	current, ok := g.Controller()
	require.True(t, ok)
	assert.Equal(t, other, current)
	sq, err := g.board.SquareAt(loc)
	require.NoError(t, err)
	assert.Equal(t, board.Finished, sq.State())
}

func TestRemoveActivePlayerDuringAnswer(t *testing.T) {
	g, ids := newTestGame(t, "Ken", "Brad")
	loadBoard(t, g, 100, 0, 1)
	controller, _ := g.Controller()
	other := ids[0]
	if other == controller {
		other = ids[1]
	}

	loc := board.Location{Category: 0, Row: 0}
	require.NoError(t, g.SelectSquare(controller, loc))
	require.NoError(t, g.EnableBuzzer())
	require.NoError(t, g.Buzz(other))

	require.NoError(t, g.RemovePlayer(other))
	assert.Equal(t, SquareSelection, g.Phase())
	current, ok := g.Controller()
	require.True(t, ok)
	assert.Equal(t, controller, current)
	sq, err := g.board.SquareAt(loc)
	require.NoError(t, err)
	assert.Equal(t, board.Finished, sq.State())
}

func TestRemoveControllerDuringAnswer(t *testing.T) {
	g, ids := newTestGame(t, "Ken", "Brad")
	loadBoard(t, g, 100, 0, 1)
	controller, _ := g.Controller()
	other := ids[0]
	if other == controller {
		other = ids[1]
	}

	require.NoError(t, g.SelectSquare(controller, board.Location{Category: 0, Row: 0}))
	require.NoError(t, g.EnableBuzzer())
	require.NoError(t, g.Buzz(other))

	// The active answer continues under a reassigned controller.
	require.NoError(t, g.RemovePlayer(controller))
	assert.Equal(t, Answering, g.Phase())
	assert.Equal(t, other, g.activePlayer)
	current, _ := g.Controller()
	assert.Equal(t, other, current)

	require.NoError(t, g.Answer(Correct))
	assert.Equal(t, int64(100), g.players[other].Score)
}

func TestRemovePlayerDuringNoBoard(t *testing.T) {
	g, ids := newTestGame(t, "Ken")
	require.NoError(t, g.RemovePlayer(ids[0]))
	assert.Equal(t, NoBoard, g.Phase())
	assert.Equal(t, 0, g.PlayerCount())
}

func TestModeratorOverrides(t *testing.T) {
	g, ids := newTestGame(t, "Ken")

	// No board yet: square overrides have nothing to act on.
	err := g.SetSquareState(board.Location{Category: 0, Row: 0}, board.Finished)
	require.ErrorIs(t, err, ErrInvalidState)

	loadBoard(t, g, 100, 0, 1)
	loc := board.Location{Category: 0, Row: 4}
	require.NoError(t, g.SetSquareState(loc, board.Finished))
	sq, err := g.board.SquareAt(loc)
	require.NoError(t, err)
	assert.Equal(t, board.Finished, sq.State())

	// Score overrides work at any time, including to negative values.
	require.NoError(t, g.SetPlayerScore(ids[0], -12345))
	assert.Equal(t, int64(-12345), g.players[ids[0]].Score)
	require.ErrorIs(t, g.SetPlayerScore(NewPlayerID(), 1), ErrUnknownPlayer)
}

func TestEndToEndScenario(t *testing.T) {
	// The whole happy path: create, join, load, select, buzz, adjudicate.
	g := New("Alex", "", time.Now())
	id := g.AddPlayer(NewPlayer("Ken", ""))

	require.NoError(t, g.LoadNewBoard(&stubSource{}, 100, 0, 1, seed.Seed(42)))
	require.Equal(t, SquareSelection, g.Phase())
	controller, ok := g.Controller()
	require.True(t, ok)
	require.Equal(t, id, controller)

	require.NoError(t, g.SelectSquare(id, board.Location{Category: 0, Row: 0}))
	require.NoError(t, g.EnableBuzzer())
	require.NoError(t, g.Buzz(id))
	require.NoError(t, g.Answer(Correct))

	assert.Equal(t, int64(100), g.players[id].Score)
	assert.Equal(t, SquareSelection, g.Phase())
	controller, ok = g.Controller()
	require.True(t, ok)
	assert.Equal(t, id, controller)
	assert.Equal(t, "WaitingForSquareSelection", g.Phase().String())
}

func TestSeededBoardsReproduce(t *testing.T) {
	build := func() *Game {
		g, _ := newTestGame(t, "Ken")
		require.NoError(t, g.LoadNewBoard(&stubSource{}, 200, 3, 4, seed.Seed(777)))
		return g
	}
	a, b := build(), build()

	va := a.board.View(true, true)
	vb := b.board.View(true, true)
	assert.Equal(t, va.Categories, vb.Categories, "equal seeds build equal boards")
	assert.Equal(t, va.Seed, vb.Seed)
}

func TestParseVerdict(t *testing.T) {
	for _, v := range []Verdict{Correct, Incorrect, Skip} {
		parsed, err := ParseVerdict(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, parsed)
	}
	_, err := ParseVerdict("Maybe")
	assert.Error(t, err)
}
