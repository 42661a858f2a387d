// Package game implements the state machine for one trivia session: square
// selection, wagering, the buzzer race, answer adjudication, the final round
// and roster changes. A Game is not safe for concurrent use; the registry
// serializes access through its per-game lock.
package game

import (
	"fmt"
	"math"
	rand "math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/lox/quizshow/internal/board"
	"github.com/lox/quizshow/internal/randutil"
	"github.com/lox/quizshow/internal/seed"
)

const (
	minDailyDoubleWager  = 5
	maxDailyDoubleFactor = 50
)

// Phase is where a game sits in the turn protocol. There is no terminal
// phase: games end through the Ended flag, which the registry checks.
type Phase int

const (
	NoBoard Phase = iota
	SquareSelection
	BuzzerPending
	DailyDoubleWager
	BuzzerOpen
	Answering
	FinalJeopardy
)

func (p Phase) String() string {
	return [...]string{
		"NoBoard",
		"WaitingForSquareSelection",
		"WaitingForEnableBuzzer",
		"WaitingForDailyDoubleWager",
		"WaitingForBuzzer",
		"WaitingForAnswer",
		"FinalJeopardy",
	}[p]
}

// Verdict is the moderator's ruling on an answer.
type Verdict int

const (
	Correct Verdict = iota
	Incorrect
	Skip
)

func (v Verdict) String() string {
	return [...]string{"Correct", "Incorrect", "Skip"}[v]
}

// ParseVerdict maps the wire name back to a verdict.
func ParseVerdict(s string) (Verdict, error) {
	switch s {
	case "Correct":
		return Correct, nil
	case "Incorrect":
		return Incorrect, nil
	case "Skip":
		return Skip, nil
	}
	return 0, fmt.Errorf("game: unknown verdict %q", s)
}

// FinalQuestion is one entry of the final-round pool.
type FinalQuestion struct {
	Category string
	Clue     board.Clue
	Answer   string
}

// QuestionSource supplies board material. Draws take the caller's generator
// so seeded board loads reproduce exactly.
type QuestionSource interface {
	RandomCategory(rng *rand.Rand) (board.Category, error)
	RandomFinal(rng *rand.Rand) (FinalQuestion, error)
}

// Game is one session. The moderator is not part of the player roster; the
// controller, active player and per-square bookkeeping only ever reference
// roster members.
type Game struct {
	moderatorID PlayerID
	moderator   *Player
	players     map[PlayerID]*Player

	phase        Phase
	board        *board.Board   // nil in NoBoard and FinalJeopardy
	controller   PlayerID       // zero when nobody holds the board
	location     board.Location // square in play, BuzzerPending through Answering
	activePlayer PlayerID       // who is answering, Answering only
	value        int64          // score at stake, Answering only
	attempted    map[PlayerID]bool
	final        *Final

	nextBoardID int
	rng         *rand.Rand // tie breaks and final-question draws; never seed-derived

	StartedAt        time.Time
	ModeratorChannel string
	PlayerChannel    string
	ChatChannel      string
	Ended            bool
}

// New creates a game run by the named moderator. The broadcast channel
// names are unguessable capabilities: clients only learn them from
// create/join responses.
func New(moderatorName, avatarURL string, startedAt time.Time) *Game {
	return &Game{
		moderatorID:      NewPlayerID(),
		moderator:        NewPlayer(moderatorName, avatarURL),
		players:          make(map[PlayerID]*Player),
		phase:            NoBoard,
		rng:              randutil.NewRandom(),
		StartedAt:        startedAt,
		ModeratorChannel: newChannel(),
		PlayerChannel:    newChannel(),
		ChatChannel:      newChannel(),
	}
}

func newChannel() string {
	return "quizshow.chan." + uuid.NewString()
}

func (g *Game) ModeratorID() PlayerID      { return g.moderatorID }
func (g *Game) ModeratorToken() Token      { return g.moderator.token }
func (g *Game) ModeratorName() string      { return g.moderator.Name }
func (g *Game) ModeratorAvatarURL() string { return g.moderator.AvatarURL }
func (g *Game) Phase() Phase               { return g.phase }
func (g *Game) PlayerCount() int           { return len(g.players) }

// Controller returns the player entitled to the next selection or wager,
// if any.
func (g *Game) Controller() (PlayerID, bool) {
	return g.controller, !g.controller.IsZero()
}

// PlayerNames lists the roster for the lobby. Order is unspecified.
func (g *Game) PlayerNames() []string {
	names := make([]string, 0, len(g.players))
	for _, p := range g.players {
		names = append(names, p.Name)
	}
	return names
}

// PlayerName resolves a roster member's display name.
func (g *Game) PlayerName(id PlayerID) (string, bool) {
	p, ok := g.players[id]
	if !ok {
		return "", false
	}
	return p.Name, true
}

// Authorize resolves who the caller is. The id and token must both match.
func (g *Game) Authorize(id PlayerID, token Token) (Role, error) {
	if id == g.moderatorID && g.moderator.CheckToken(token) {
		return RoleModerator, nil
	}
	if p, ok := g.players[id]; ok && p.CheckToken(token) {
		return RolePlayer, nil
	}
	return 0, ErrNotAllowed
}

// AddPlayer puts a player on the roster and returns their new id. Joining a
// game between questions with no controller makes the newcomer controller.
func (g *Game) AddPlayer(p *Player) PlayerID {
	id := NewPlayerID()
	g.players[id] = p
	if g.phase == SquareSelection && g.controller.IsZero() {
		g.controller = id
	}
	return id
}

// RemovePlayer takes a player off the roster and rebalances the machine so
// play never stalls on a departed player.
func (g *Game) RemovePlayer(id PlayerID) error {
	if _, ok := g.players[id]; !ok {
		return ErrUnknownPlayer
	}
	delete(g.players, id)
	replacement := g.anyPlayer() // zero when the roster is now empty

	switch g.phase {
	case NoBoard, FinalJeopardy:
		// Final-round bookkeeping lives on the player record and left with it.

	case SquareSelection:
		if g.controller == id {
			g.controller = replacement
		}

	case BuzzerPending, BuzzerOpen:
		if replacement.IsZero() {
			g.forceFinishSquare()
			g.toSelection(PlayerID{})
		} else if g.controller == id {
			g.controller = replacement
		}

	case DailyDoubleWager:
		if g.controller == id {
			g.forceFinishSquare()
			g.toSelection(replacement)
		}

	case Answering:
		controller := g.controller
		if controller == id {
			controller = replacement
		}
		if g.activePlayer == id {
			g.forceFinishSquare()
			g.toSelection(controller)
		} else {
			g.controller = controller
		}
	}
	return nil
}

// LoadNewBoard replaces the board from any phase. Board contents are fully
// determined by the question store and the seed; the controller is drawn
// uniformly from the players tied for the lowest score.
func (g *Game) LoadNewBoard(src QuestionSource, multiplier int64, dailyDoubles, categories int, s seed.Seed) error {
	g.nextBoardID++
	rng := s.RNG()

	cats := make([]board.Category, categories)
	for i := range cats {
		cat, err := src.RandomCategory(rng)
		if err != nil {
			return err
		}
		cats[i] = cat
	}
	b := board.New(cats, multiplier, g.nextBoardID, s)

	locations, err := board.RandomLocations(rng, dailyDoubles, categories)
	if err != nil {
		return err
	}
	for _, loc := range locations {
		// Sampler output is always on the board.
		_ = b.MarkDailyDouble(loc)
	}

	g.board = b
	g.final = nil
	g.toSelection(g.lowestScorePlayer())
	return nil
}

// SelectSquare flips the chosen square and moves to the wager or buzzer
// step. Only the current controller selects.
func (g *Game) SelectSquare(caller PlayerID, loc board.Location) error {
	if g.phase != SquareSelection || g.controller.IsZero() {
		return ErrInvalidState
	}
	if caller != g.controller {
		return ErrNotAllowed
	}
	if err := g.board.Flip(loc); err != nil {
		return err
	}
	sq, err := g.board.SquareAt(loc)
	if err != nil {
		return err
	}

	g.location = loc
	g.attempted = make(map[PlayerID]bool)
	if sq.IsDailyDouble {
		g.phase = DailyDoubleWager
	} else {
		g.phase = BuzzerPending
	}
	return nil
}

// EnableBuzzer opens the buzzer race for the selected square.
func (g *Game) EnableBuzzer() error {
	if g.phase != BuzzerPending {
		return ErrInvalidState
	}
	g.phase = BuzzerOpen
	return nil
}

// SubmitWager stakes the controller's daily-double bet and puts them on the
// spot to answer. The wager must lie in
// [minDailyDoubleWager, max(maxDailyDoubleFactor * multiplier, score)].
func (g *Game) SubmitWager(caller PlayerID, wager int64) error {
	if g.phase != DailyDoubleWager {
		return ErrInvalidState
	}
	if caller != g.controller {
		return ErrNotAllowed
	}
	if wager < minDailyDoubleWager {
		return fmt.Errorf("%w: %d is below the minimum %d", ErrDailyDoubleWager, wager, minDailyDoubleWager)
	}
	p, ok := g.players[g.controller]
	if !ok {
		return ErrUnknownPlayer
	}
	max := maxDailyDoubleFactor * g.board.Multiplier()
	if p.Score > max {
		max = p.Score
	}
	if wager > max {
		return fmt.Errorf("%w: %d is above the maximum %d", ErrDailyDoubleWager, wager, max)
	}

	g.phase = Answering
	g.activePlayer = g.controller
	g.value = wager
	return nil
}

// Buzz wins the race to answer the open square for its face value. Players
// who already missed this clue are excluded until the square resolves.
func (g *Game) Buzz(id PlayerID) error {
	if g.phase != BuzzerOpen {
		return ErrInvalidState
	}
	if _, ok := g.players[id]; !ok {
		return ErrUnknownPlayer
	}
	if g.attempted[id] {
		return ErrAlreadyAttempted
	}

	g.value = g.board.Value(g.location)
	g.activePlayer = id
	g.phase = Answering
	return nil
}

// Answer applies the moderator's verdict. Correct credits the stake,
// finishes the square and hands the active player the board. Incorrect
// debits the stake and reopens the buzzer for the other players. Skip
// (also valid straight from the buzzer and wager phases) finishes the
// square with no score change and no controller change.
func (g *Game) Answer(v Verdict) error {
	switch {
	case g.phase == Answering && v == Correct:
		p, ok := g.players[g.activePlayer]
		if !ok {
			return ErrUnknownPlayer
		}
		if err := g.board.Finish(g.location); err != nil {
			return err
		}
		p.Score += g.value
		g.toSelection(g.activePlayer)
		return nil

	case g.phase == Answering && v == Incorrect:
		p, ok := g.players[g.activePlayer]
		if !ok {
			return ErrUnknownPlayer
		}
		p.Score -= g.value
		g.attempted[g.activePlayer] = true
		g.activePlayer = PlayerID{}
		g.value = 0
		g.phase = BuzzerOpen
		return nil

	case v == Skip && (g.phase == Answering || g.phase == BuzzerOpen || g.phase == DailyDoubleWager):
		if err := g.board.Finish(g.location); err != nil {
			return err
		}
		g.toSelection(g.controller)
		return nil
	}
	return ErrInvalidState
}

// SetSquareState forces a square's flip state, transition rules aside.
// Moderator override; valid whenever a board is up.
func (g *Game) SetSquareState(loc board.Location, state board.SquareState) error {
	if g.board == nil {
		return ErrInvalidState
	}
	return g.board.SetSquareState(loc, state)
}

// SetPlayerScore forces a player's score. Moderator override.
func (g *Game) SetPlayerScore(id PlayerID, score int64) error {
	p, ok := g.players[id]
	if !ok {
		return ErrUnknownPlayer
	}
	p.Score = score
	return nil
}

// anyPlayer returns an arbitrary roster member, or the zero id. Map order
// makes the pick as arbitrary as it needs to be.
func (g *Game) anyPlayer() PlayerID {
	for id := range g.players {
		return id
	}
	return PlayerID{}
}

// lowestScorePlayer picks uniformly among the players tied for the lowest
// score. The game's own generator keeps the pick unpredictable even on
// seeded boards.
func (g *Game) lowestScorePlayer() PlayerID {
	lowest := int64(math.MaxInt64)
	var tied []PlayerID
	for id, p := range g.players {
		if p.Score < lowest {
			lowest = p.Score
			tied = tied[:0]
		}
		if p.Score == lowest {
			tied = append(tied, id)
		}
	}
	if len(tied) == 0 {
		return PlayerID{}
	}
	return tied[g.rng.IntN(len(tied))]
}

// forceFinishSquare retires the open square regardless of its state, used
// when departures abandon a question mid-play.
func (g *Game) forceFinishSquare() {
	_ = g.board.SetSquareState(g.location, board.Finished)
}

// toSelection returns to square selection under the given controller and
// clears the per-square bookkeeping.
func (g *Game) toSelection(controller PlayerID) {
	g.phase = SquareSelection
	g.controller = controller
	g.activePlayer = PlayerID{}
	g.value = 0
	g.attempted = nil
}
